package database

import (
	"fmt"

	"aptbooking/internal/repository"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema. Users go first: apartments carry a
// foreign key to them.
func Migrate(db *gorm.DB) error {
	for _, model := range repository.Models() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migrate %T: %w", model, err)
		}
	}
	return nil
}
