package models

import "time"

// Role is the privilege level assigned to a user. Readers may browse;
// Writers may additionally create, edit and soft-delete content.
type Role string

const (
	RoleReader Role = "reader"
	RoleWriter Role = "writer"
)

// User is the users table row. PasswordHash and Salt never leave the
// service layer; handlers only ever see the projection returned by the
// identity resolver (ID, Email, Role).
type User struct {
	ID             int64
	Email          string
	Role           Role
	PasswordHash   string
	Salt           string
	VerificationID string
	IsVerified     bool
	CreatedAt      time.Time
}
