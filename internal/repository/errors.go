package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when a user insert hits the unique email constraint.
	ErrEmailTaken = errors.New("email already registered")
)
