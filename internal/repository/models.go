package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userModel struct {
	ID           string    `gorm:"column:id;type:varchar(36);primaryKey"`
	Phone        string    `gorm:"column:phone;type:varchar(32);not null;uniqueIndex:idx_users_phone"`
	Name         string    `gorm:"column:name;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         string    `gorm:"column:role;type:varchar(16);not null"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null"`
}

func (userModel) TableName() string { return "users" }

type apartmentModel struct {
	ID             string     `gorm:"column:id;type:varchar(36);primaryKey"`
	SequenceNumber int        `gorm:"column:sequence_number;not null;uniqueIndex:idx_apartments_sequence_number"`
	IsOccupied     bool       `gorm:"column:is_occupied;not null"`
	Type           string     `gorm:"column:type;type:varchar(32);not null"`
	LeaseStartDate *time.Time `gorm:"column:lease_start_date"`
	LeaseEndDate   *time.Time `gorm:"column:lease_end_date"`
	CurrentOwnerID *string    `gorm:"column:current_owner_id;type:varchar(36);index:idx_apartments_current_owner"`
	CurrentOwner   *userModel `gorm:"foreignKey:CurrentOwnerID;references:ID"`
	Version        int64      `gorm:"column:version;not null"`
	CreatedAt      time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;not null"`
}

func (apartmentModel) TableName() string { return "apartments" }

// Models lists the persisted models in dependency order.
func Models() []interface{} {
	return []interface{}{
		&userModel{},
		&apartmentModel{},
	}
}

// forUpdate adds a row lock on dialects that support one. SQLite serialises
// writers at the database level and has no FOR UPDATE.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

func normalizePaging(take, skip int) (int, int) {
	if take <= 0 {
		take = 10
	}
	if take > 100 {
		take = 100
	}
	if skip < 0 {
		skip = 0
	}
	return take, skip
}
