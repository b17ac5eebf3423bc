package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aptbooking/internal/domain"
	"aptbooking/internal/pkg/metrics"
	"aptbooking/internal/repository"

	"go.uber.org/zap"
)

const (
	opReserve   = "reserve"
	opUnreserve = "unreserve"
	opRelease   = "release"
)

// Service is the reservation engine. Every state change loads, checks and
// writes inside one transaction: the apartment and user rows are locked,
// and the apartment write is conditional on the version it was read at.
type Service struct {
	store Store
	log   *zap.Logger
}

func NewService(store Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, log: log}
}

// Reserve leases a vacant apartment to userID for [start, end).
func (s *Service) Reserve(ctx context.Context, apartmentID, userID string, start, end time.Time) (*domain.Apartment, error) {
	var reserved *domain.Apartment

	err := s.store.Atomic(ctx, func(tx Store) error {
		a, err := loadPair(ctx, tx, apartmentID, userID)
		if err != nil {
			return err
		}

		if a.State() == domain.StateLeased {
			return ErrAlreadyReserved
		}
		if !start.Before(end) {
			return ErrInvalidDateRange
		}
		if err := a.Lease(userID, start, end); err != nil {
			return mapTransitionErr(err)
		}

		if err := writeApartment(ctx, tx, a); err != nil {
			return err
		}
		reserved = a
		return nil
	})

	s.record(opReserve, apartmentID, userID, err)
	if err != nil {
		return nil, err
	}
	return reserved, nil
}

// Unreserve ends the caller's own lease. Only the current owner may do it;
// the admin path is Release.
func (s *Service) Unreserve(ctx context.Context, apartmentID, userID string) (*domain.Apartment, error) {
	var vacated *domain.Apartment

	err := s.store.Atomic(ctx, func(tx Store) error {
		a, err := loadPair(ctx, tx, apartmentID, userID)
		if err != nil {
			return err
		}

		if a.State() == domain.StateVacant {
			return ErrNotReserved
		}
		if !a.OwnedBy(userID) {
			return ErrNotOwner
		}
		if err := a.Vacate(); err != nil {
			return mapTransitionErr(err)
		}

		if err := writeApartment(ctx, tx, a); err != nil {
			return err
		}
		vacated = a
		return nil
	})

	s.record(opUnreserve, apartmentID, userID, err)
	if err != nil {
		return nil, err
	}
	return vacated, nil
}

// Release vacates an apartment regardless of who holds it.
func (s *Service) Release(ctx context.Context, apartmentID string) (*domain.Apartment, error) {
	var vacated *domain.Apartment
	var previousOwner string

	err := s.store.Atomic(ctx, func(tx Store) error {
		a, err := tx.GetApartmentForUpdate(ctx, apartmentID)
		if err != nil {
			return mapLoadErr(err, ErrApartmentNotFound)
		}

		if a.CurrentOwnerID != nil {
			previousOwner = *a.CurrentOwnerID
		}
		if err := a.Vacate(); err != nil {
			return mapTransitionErr(err)
		}

		if err := writeApartment(ctx, tx, a); err != nil {
			return err
		}
		vacated = a
		return nil
	})

	s.record(opRelease, apartmentID, previousOwner, err)
	if err != nil {
		return nil, err
	}
	return vacated, nil
}

// FindMyReservations lists the apartments currently leased to userID.
func (s *Service) FindMyReservations(ctx context.Context, userID string) ([]domain.Apartment, error) {
	return s.store.ListByOwner(ctx, userID)
}

// loadPair locks the apartment, then the user. The lock order is fixed so
// two engine transactions cannot deadlock on each other.
func loadPair(ctx context.Context, tx Store, apartmentID, userID string) (*domain.Apartment, error) {
	a, err := tx.GetApartmentForUpdate(ctx, apartmentID)
	if err != nil {
		return nil, mapLoadErr(err, ErrApartmentNotFound)
	}
	if _, err := tx.GetUserForUpdate(ctx, userID); err != nil {
		return nil, mapLoadErr(err, ErrUserNotFound)
	}
	return a, nil
}

// writeApartment persists a only when its lease fields agree with each other.
func writeApartment(ctx context.Context, tx Store, a *domain.Apartment) error {
	if !a.LeaseConsistent() {
		return fmt.Errorf("apartment %s: %w", a.ID, domain.ErrInconsistent)
	}
	return mapWriteErr(tx.UpdateApartment(ctx, a))
}

func mapLoadErr(err, notFound error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return err
}

func mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrStaleVersion) {
		return ErrConcurrentUpdate
	}
	return err
}

func mapTransitionErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrLeaseActive):
		return ErrAlreadyReserved
	case errors.Is(err, domain.ErrLeaseInactive):
		return ErrNotReserved
	case errors.Is(err, domain.ErrInvalidWindow):
		return ErrInvalidDateRange
	case errors.Is(err, domain.ErrMissingOwner):
		return ErrUserNotFound
	}
	return err
}

func (s *Service) record(op, apartmentID, userID string, err error) {
	result := outcome(err)
	metrics.RecordBookingOperation(op, result)

	fields := []zap.Field{
		zap.String("op", op),
		zap.String("apartment_id", apartmentID),
		zap.String("user_id", userID),
		zap.String("result", result),
	}
	switch result {
	case "ok":
		s.log.Info("booking", fields...)
	case "error":
		s.log.Error("booking", append(fields, zap.Error(err))...)
	default:
		s.log.Info("booking_rejected", append(fields, zap.Error(err))...)
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrApartmentNotFound), errors.Is(err, ErrUserNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadyReserved), errors.Is(err, ErrNotReserved), errors.Is(err, ErrConcurrentUpdate):
		return "conflict"
	case errors.Is(err, ErrNotOwner):
		return "forbidden"
	case errors.Is(err, ErrInvalidDateRange):
		return "invalid"
	}
	return "error"
}
