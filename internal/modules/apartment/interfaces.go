package apartment

import (
	"context"

	"aptbooking/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, a *domain.Apartment) error
	GetByID(ctx context.Context, id string) (*domain.Apartment, error)
	ExistsBySequence(ctx context.Context, seq int, excludeID string) (bool, error)
	List(ctx context.Context, take, skip int) ([]domain.Apartment, error)
	Update(ctx context.Context, a *domain.Apartment) error
	Delete(ctx context.Context, id string) error
}
