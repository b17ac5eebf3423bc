package apartment

import (
	"context"
	"errors"

	"aptbooking/internal/domain"
	"aptbooking/internal/repository"

	"go.uber.org/zap"
)

// Service is the apartment registry. It never touches lease state.
type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log}
}

// Create stores a vacant apartment. The sequence number must be free.
func (s *Service) Create(ctx context.Context, req CreateApartmentRequest) (*domain.Apartment, error) {
	exists, err := s.repo.ExistsBySequence(ctx, req.SequenceNumber, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	a := &domain.Apartment{
		SequenceNumber: req.SequenceNumber,
		Type:           req.Type,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, mapRepoErr(err)
	}

	s.log.Info("apartment_created",
		zap.String("apartment_id", a.ID),
		zap.Int("sequence_number", a.SequenceNumber),
	)
	return a, nil
}

func (s *Service) FindAll(ctx context.Context, take, skip int) ([]domain.Apartment, error) {
	return s.repo.List(ctx, take, skip)
}

func (s *Service) FindOne(ctx context.Context, id string) (*domain.Apartment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return a, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateApartmentRequest) (*domain.Apartment, error) {
	if req.SequenceNumber == nil && req.Type == nil {
		return nil, ErrNothingToUpdate
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	if req.SequenceNumber != nil && *req.SequenceNumber != a.SequenceNumber {
		exists, err := s.repo.ExistsBySequence(ctx, *req.SequenceNumber, a.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrAlreadyExists
		}
		a.SequenceNumber = *req.SequenceNumber
	}
	if req.Type != nil {
		a.Type = *req.Type
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, mapRepoErr(err)
	}

	s.log.Info("apartment_updated", zap.String("apartment_id", a.ID))
	return a, nil
}

func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoErr(err)
	}

	s.log.Info("apartment_removed", zap.String("apartment_id", id))
	return nil
}

func mapRepoErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrApartmentNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrAlreadyExists
	case errors.Is(err, repository.ErrStaleVersion):
		return ErrConcurrentUpdate
	}
	return err
}
