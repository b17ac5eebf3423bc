package domain

import (
	"errors"
	"time"
)

type ApartmentType string

const (
	ApartmentStudio       ApartmentType = "studio"
	ApartmentOneBedroom   ApartmentType = "oneBedroom"
	ApartmentTwoBedroom   ApartmentType = "twoBedroom"
	ApartmentThreeBedroom ApartmentType = "threeBedroom"
	ApartmentFourBedroom  ApartmentType = "fourBedroom"
	ApartmentFiveBedroom  ApartmentType = "fiveBedroom"
)

var ApartmentTypes = []ApartmentType{
	ApartmentStudio,
	ApartmentOneBedroom,
	ApartmentTwoBedroom,
	ApartmentThreeBedroom,
	ApartmentFourBedroom,
	ApartmentFiveBedroom,
}

func (t ApartmentType) Valid() bool {
	for _, v := range ApartmentTypes {
		if v == t {
			return true
		}
	}
	return false
}

// LeaseState is the booking state of an apartment.
type LeaseState string

const (
	StateVacant LeaseState = "vacant"
	StateLeased LeaseState = "leased"
)

var (
	ErrLeaseActive   = errors.New("apartment is already leased")
	ErrLeaseInactive = errors.New("apartment is not leased")
	ErrInvalidWindow = errors.New("lease start must be before lease end")
	ErrMissingOwner  = errors.New("lease owner is required")
	ErrInconsistent  = errors.New("apartment lease fields are inconsistent")
)

type Apartment struct {
	ID             string        `json:"id"`
	SequenceNumber int           `json:"sequence_number"`
	IsOccupied     bool          `json:"is_occupied"`
	Type           ApartmentType `json:"type"`
	LeaseStartDate *time.Time    `json:"lease_start_date"`
	LeaseEndDate   *time.Time    `json:"lease_end_date"`
	CurrentOwnerID *string       `json:"current_owner_id"`
	Version        int64         `json:"-"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (a *Apartment) State() LeaseState {
	if a.IsOccupied {
		return StateLeased
	}
	return StateVacant
}

// Lease moves a vacant apartment to LEASED for ownerID over [start, end).
// The apartment is left untouched when an error is returned.
func (a *Apartment) Lease(ownerID string, start, end time.Time) error {
	if a.State() == StateLeased {
		return ErrLeaseActive
	}
	if ownerID == "" {
		return ErrMissingOwner
	}
	if !start.Before(end) {
		return ErrInvalidWindow
	}

	s, e := start.UTC(), end.UTC()
	owner := ownerID
	a.CurrentOwnerID = &owner
	a.LeaseStartDate = &s
	a.LeaseEndDate = &e
	a.IsOccupied = true
	return nil
}

// Vacate clears the lease of a LEASED apartment.
func (a *Apartment) Vacate() error {
	if a.State() == StateVacant {
		return ErrLeaseInactive
	}
	a.CurrentOwnerID = nil
	a.LeaseStartDate = nil
	a.LeaseEndDate = nil
	a.IsOccupied = false
	return nil
}

// OwnedBy reports whether userID holds the current lease.
func (a *Apartment) OwnedBy(userID string) bool {
	return a.CurrentOwnerID != nil && *a.CurrentOwnerID == userID
}

// LeaseConsistent checks isOccupied <=> owner set and start < end.
func (a *Apartment) LeaseConsistent() bool {
	leased := a.CurrentOwnerID != nil &&
		a.LeaseStartDate != nil &&
		a.LeaseEndDate != nil &&
		a.LeaseStartDate.Before(*a.LeaseEndDate)
	if a.IsOccupied {
		return leased
	}
	return a.CurrentOwnerID == nil && a.LeaseStartDate == nil && a.LeaseEndDate == nil
}
