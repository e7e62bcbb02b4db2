package models

import "time"

// Session binds an opaque token to a user for a bounded time window.
// Rows past ExpiresAt are lazily invalid: lookups must treat them as absent.
type Session struct {
	ID        int64
	Token     string
	UserID    int64
	ExpiresAt time.Time
}
