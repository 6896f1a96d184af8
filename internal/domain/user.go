package domain

import "time"

// User represents a registered account. PasswordHash is only populated on
// the credential lookup path and never leaves the service layer.
type User struct {
	ID           string
	Name         string
	About        string
	Avatar       string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
