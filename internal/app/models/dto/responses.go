package dto

import "time"

// APIResponse is the uniform envelope every endpoint answers with.
type APIResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message,omitempty"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewSuccessResponse wraps data in the standard envelope.
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewErrorResponse wraps an error detail in the standard envelope.
func NewErrorResponse(detail ErrorDetail) APIResponse {
	return APIResponse{
		Success:   false,
		Error:     &detail,
		Timestamp: time.Now(),
	}
}

// PageMeta describes the page a list response was cut from.
type PageMeta struct {
	CurrentPage int    `json:"current_page"`
	PerPage     uint64 `json:"per_page"`
	Total       int64  `json:"total"`
	LastPage    int    `json:"last_page"`
	From        int64  `json:"from"`
	To          int64  `json:"to"`
}

// PageLinks carries page navigation URLs.
type PageLinks struct {
	First string `json:"first"`
	Last  string `json:"last"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
}

// ListResponse is a page of records with its pagination metadata. Meta and
// Links are nil when the caller asked for the full set.
type ListResponse struct {
	Items interface{} `json:"items"`
	Meta  *PageMeta   `json:"meta,omitempty"`
	Links *PageLinks  `json:"links,omitempty"`
}

// TokenResponse is returned by login and refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}
