package users

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrAlreadyExists   = errors.New("phone already registered")
	ErrInvalidRole     = errors.New("invalid role")
	ErrNothingToUpdate = errors.New("nothing to update")
)
