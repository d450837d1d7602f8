package helpers

import "time"

// ParseDuration parses a duration string, returning the fallback on failure.
func ParseDuration(raw string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
