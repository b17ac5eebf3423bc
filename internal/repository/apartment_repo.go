package repository

import (
	"context"
	"time"

	"aptbooking/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApartmentRepository struct {
	db *gorm.DB
}

func NewApartmentRepository(db *gorm.DB) *ApartmentRepository {
	return &ApartmentRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *ApartmentRepository) WithTx(tx *gorm.DB) *ApartmentRepository {
	return &ApartmentRepository{db: tx}
}

func toDomainApartment(m apartmentModel) *domain.Apartment {
	return &domain.Apartment{
		ID:             m.ID,
		SequenceNumber: m.SequenceNumber,
		IsOccupied:     m.IsOccupied,
		Type:           domain.ApartmentType(m.Type),
		LeaseStartDate: m.LeaseStartDate,
		LeaseEndDate:   m.LeaseEndDate,
		CurrentOwnerID: m.CurrentOwnerID,
		Version:        m.Version,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toApartmentModel(a *domain.Apartment) apartmentModel {
	return apartmentModel{
		ID:             a.ID,
		SequenceNumber: a.SequenceNumber,
		IsOccupied:     a.IsOccupied,
		Type:           string(a.Type),
		LeaseStartDate: a.LeaseStartDate,
		LeaseEndDate:   a.LeaseEndDate,
		CurrentOwnerID: a.CurrentOwnerID,
		Version:        a.Version,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func vacantColumns(now time.Time) map[string]any {
	return map[string]any{
		"is_occupied":      false,
		"lease_start_date": nil,
		"lease_end_date":   nil,
		"current_owner_id": nil,
		"version":          gorm.Expr("version + 1"),
		"updated_at":       now,
	}
}

// Create stores a new, vacant apartment.
func (r *ApartmentRepository) Create(ctx context.Context, a *domain.Apartment) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	a.IsOccupied = false
	a.LeaseStartDate = nil
	a.LeaseEndDate = nil
	a.CurrentOwnerID = nil
	a.Version = 1
	a.CreatedAt = now
	a.UpdatedAt = now

	m := toApartmentModel(a)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *ApartmentRepository) GetByID(ctx context.Context, id string) (*domain.Apartment, error) {
	var m apartmentModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainApartment(m), nil
}

// GetByIDForUpdate loads the apartment and holds a row lock until the
// surrounding transaction ends.
func (r *ApartmentRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Apartment, error) {
	var m apartmentModel
	if err := forUpdate(r.db.WithContext(ctx)).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainApartment(m), nil
}

// ExistsBySequence reports whether another apartment already uses seq.
// excludeID may be empty.
func (r *ApartmentRepository) ExistsBySequence(ctx context.Context, seq int, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&apartmentModel{}).
		Where("sequence_number = ?", seq)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *ApartmentRepository) List(ctx context.Context, take, skip int) ([]domain.Apartment, error) {
	take, skip = normalizePaging(take, skip)

	var rows []apartmentModel
	err := r.db.WithContext(ctx).
		Order("sequence_number ASC").
		Limit(take).
		Offset(skip).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainApartments(rows), nil
}

// ListByOwner returns every apartment currently leased to ownerID.
func (r *ApartmentRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Apartment, error) {
	var rows []apartmentModel
	err := r.db.WithContext(ctx).
		Where("current_owner_id = ?", ownerID).
		Order("sequence_number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainApartments(rows), nil
}

// Update persists a and bumps its version. The write only lands when the row
// still carries a.Version; otherwise ErrStaleVersion is returned.
func (r *ApartmentRepository) Update(ctx context.Context, a *domain.Apartment) error {
	a.UpdatedAt = time.Now().UTC()

	tx := r.db.WithContext(ctx).
		Model(&apartmentModel{}).
		Where("id = ? AND version = ?", a.ID, a.Version).
		Updates(map[string]any{
			"sequence_number":  a.SequenceNumber,
			"is_occupied":      a.IsOccupied,
			"type":             string(a.Type),
			"lease_start_date": a.LeaseStartDate,
			"lease_end_date":   a.LeaseEndDate,
			"current_owner_id": a.CurrentOwnerID,
			"version":          gorm.Expr("version + 1"),
			"updated_at":       a.UpdatedAt,
		})
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrStaleVersion
	}

	a.Version++
	return nil
}

func (r *ApartmentRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&apartmentModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func toDomainApartments(rows []apartmentModel) []domain.Apartment {
	out := make([]domain.Apartment, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainApartment(m))
	}
	return out
}
