package booking

import (
	"context"

	"aptbooking/internal/domain"
	"aptbooking/internal/repository"

	"gorm.io/gorm"
)

// GormStore backs the engine with the gorm repositories.
type GormStore struct {
	db         *gorm.DB
	users      *repository.UserRepository
	apartments *repository.ApartmentRepository
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db:         db,
		users:      repository.NewUserRepository(db),
		apartments: repository.NewApartmentRepository(db),
	}
}

func (s *GormStore) Atomic(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{
			db:         tx,
			users:      s.users.WithTx(tx),
			apartments: s.apartments.WithTx(tx),
		})
	})
}

func (s *GormStore) GetApartmentForUpdate(ctx context.Context, id string) (*domain.Apartment, error) {
	return s.apartments.GetByIDForUpdate(ctx, id)
}

func (s *GormStore) GetUserForUpdate(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByIDForUpdate(ctx, id)
}

func (s *GormStore) UpdateApartment(ctx context.Context, a *domain.Apartment) error {
	return s.apartments.Update(ctx, a)
}

func (s *GormStore) ListByOwner(ctx context.Context, userID string) ([]domain.Apartment, error) {
	return s.apartments.ListByOwner(ctx, userID)
}
