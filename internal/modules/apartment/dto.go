package apartment

import "aptbooking/internal/domain"

type CreateApartmentRequest struct {
	SequenceNumber int                  `json:"sequence_number" binding:"required,min=1"`
	Type           domain.ApartmentType `json:"type" binding:"required,apartment_type"`
}

// UpdateApartmentRequest never carries lease fields; those change only
// through the booking engine.
type UpdateApartmentRequest struct {
	SequenceNumber *int                  `json:"sequence_number,omitempty" binding:"omitempty,min=1"`
	Type           *domain.ApartmentType `json:"type,omitempty" binding:"omitempty,apartment_type"`
}
