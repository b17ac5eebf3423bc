package booking

import (
	"context"

	"aptbooking/internal/domain"
)

// Store is the persistence the engine needs. Atomic runs fn inside one
// transaction; the Store passed to fn is bound to it and every call made
// through it commits or rolls back together.
type Store interface {
	Atomic(ctx context.Context, fn func(tx Store) error) error
	GetApartmentForUpdate(ctx context.Context, id string) (*domain.Apartment, error)
	GetUserForUpdate(ctx context.Context, id string) (*domain.User, error)
	UpdateApartment(ctx context.Context, a *domain.Apartment) error
	ListByOwner(ctx context.Context, userID string) ([]domain.Apartment, error)
}
