package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
)

// Models lists every table owned by the API, in dependency order
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Recipe{},
		&models.RecipeLike{},
	}
}

// Migrate brings the schema up to date with gorm auto-migration
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}
	return nil
}
