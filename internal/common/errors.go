// Package common contains shared constants and sentinel errors used across
// gallerykeep components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal = errors.New("internal error")

	// Authentication pipeline: missing, invalid or expired session.
	ErrUnauthorized = errors.New("unauthorized")

	// Authorization pipeline: valid session, insufficient role.
	ErrForbidden = errors.New("forbidden")

	// Credential hasher: the stored salt is not valid salt encoding.
	// Distinct from a wrong password, which is a boolean false.
	ErrMalformedSalt = errors.New("malformed salt")

	// Session cookie could not be parsed or its signature did not verify.
	ErrInvalidCookie = errors.New("invalid session cookie")
)
