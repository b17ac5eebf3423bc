package apartment

import "errors"

var (
	ErrApartmentNotFound = errors.New("apartment not found")
	ErrAlreadyExists     = errors.New("sequence number already taken")
	ErrConcurrentUpdate  = errors.New("apartment was modified concurrently")
	ErrNothingToUpdate   = errors.New("nothing to update")
)
