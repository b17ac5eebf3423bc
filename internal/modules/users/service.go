package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"aptbooking/internal/domain"
	"aptbooking/internal/repository"

	"go.uber.org/zap"
)

// Service owns user records. Passwords only ever leave it as bcrypt hashes.
type Service struct {
	repo       UserRepository
	apartments ApartmentLister
	hasher     PasswordHasher
	log        *zap.Logger
}

func NewService(repo UserRepository, apartments ApartmentLister, hasher PasswordHasher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:       repo,
		apartments: apartments,
		hasher:     hasher,
		log:        log,
	}
}

// Create registers a user with the given role. The phone is probed first and
// the unique index catches whatever slips past the probe.
func (s *Service) Create(ctx context.Context, req CreateUserRequest, role domain.UserRole) (*domain.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	phone := strings.TrimSpace(req.Phone)
	exists, err := s.repo.ExistsByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{
		Phone:        phone,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	s.log.Info("user_created", zap.String("user_id", u.ID), zap.String("role", string(role)))
	return u, nil
}

func (s *Service) FindAll(ctx context.Context, take, skip int) ([]domain.User, error) {
	return s.repo.List(ctx, take, skip)
}

// FindByID returns the user together with the apartments currently leased to
// them.
func (s *Service) FindByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	owned, err := s.apartments.ListByOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Apartments = owned
	return u, nil
}

// FindByPhone is used by authentication; the result still carries the hash.
func (s *Service) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	u, err := s.repo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return u, nil
}

// Update applies the non-nil fields of req. A new phone is re-probed for
// uniqueness and a new password is re-hashed.
func (s *Service) Update(ctx context.Context, id string, req UpdateUserRequest) (*domain.User, error) {
	if req.empty() {
		return nil, ErrNothingToUpdate
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone != u.Phone {
			exists, err := s.repo.ExistsByPhone(ctx, phone)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ErrAlreadyExists
			}
			u.Phone = phone
		}
	}
	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, ErrInvalidRole
		}
		u.Role = *req.Role
	}

	if err := s.repo.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrAlreadyExists
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.log.Info("user_updated", zap.String("user_id", u.ID))
	return u, nil
}

// Remove deletes the user. Apartments they hold are vacated in the same
// transaction.
func (s *Service) Remove(ctx context.Context, id string) error {
	released, err := s.repo.Delete(ctx, id)
	if err != nil {
		return mapNotFound(err)
	}

	s.log.Info("user_removed", zap.String("user_id", id), zap.Int64("released_apartments", released))
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
