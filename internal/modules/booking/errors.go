package booking

import "errors"

var (
	ErrApartmentNotFound = errors.New("apartment not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrAlreadyReserved   = errors.New("apartment is already reserved")
	ErrNotReserved       = errors.New("apartment is not reserved")
	ErrNotOwner          = errors.New("caller does not hold the lease")
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrInvalidDate       = errors.New("invalid date")
	ErrConcurrentUpdate  = errors.New("apartment was modified concurrently")
)
