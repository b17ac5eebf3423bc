package admin

import (
	"context"

	"aptbooking/internal/domain"
	"aptbooking/internal/modules/apartment"
	"aptbooking/internal/modules/users"
)

// UserManager is the slice of the users service the admin API drives.
type UserManager interface {
	Create(ctx context.Context, req users.CreateUserRequest, role domain.UserRole) (*domain.User, error)
	FindAll(ctx context.Context, take, skip int) ([]domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, req users.UpdateUserRequest) (*domain.User, error)
	Remove(ctx context.Context, id string) error
}

type ApartmentManager interface {
	Create(ctx context.Context, req apartment.CreateApartmentRequest) (*domain.Apartment, error)
	FindAll(ctx context.Context, take, skip int) ([]domain.Apartment, error)
	FindOne(ctx context.Context, id string) (*domain.Apartment, error)
	Update(ctx context.Context, id string, req apartment.UpdateApartmentRequest) (*domain.Apartment, error)
	Remove(ctx context.Context, id string) error
}

// LeaseReleaser ends a lease without an ownership check.
type LeaseReleaser interface {
	Release(ctx context.Context, apartmentID string) (*domain.Apartment, error)
}
