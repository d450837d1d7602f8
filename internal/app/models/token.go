package models

import "time"

// RefreshToken is a stored long-lived token used to mint new access tokens.
type RefreshToken struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Token      string    `json:"-"`
	ExpiryDate time.Time `json:"expiry_date"`
	IsRevoked  bool      `json:"is_revoked"`
	CreatedAt  time.Time `json:"created_at"`
}

// Expired reports whether the token is past its deadline.
func (t *RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpiryDate)
}
