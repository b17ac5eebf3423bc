package users

import (
	"context"

	"aptbooking/internal/domain"
)

// UserRepository — only the methods the users service uses
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	List(ctx context.Context, take, skip int) ([]domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) (int64, error)
}

// ApartmentLister reads the apartments leased to a user.
type ApartmentLister interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Apartment, error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
}
