package database

import (
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
)

// AutoMigrate creates or updates the schema for every model this service
// owns. cmd/migrate runs the PostgreSQL-specific DDL (extensions) first.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.Ingredient{},
		&models.RecipeVersion{},
	)
}
