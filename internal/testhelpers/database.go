package testhelpers

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB opens an in-memory SQLite database with the service schema.
// The tables mirror what AutoMigrate produces on PostgreSQL, with JSONB and
// uuid columns mapped to TEXT.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access underlying connection: %v", err)
	}
	// A second connection would get its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)

	statements := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL
		);`,
		`CREATE TABLE recipes (
			id TEXT PRIMARY KEY,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME,
			title TEXT NOT NULL,
			description TEXT,
			difficulty TEXT NOT NULL DEFAULT 'easy',
			prep_time_minutes INTEGER NOT NULL DEFAULT 0,
			cook_time_minutes INTEGER NOT NULL DEFAULT 0,
			servings INTEGER NOT NULL DEFAULT 1,
			instructions TEXT NOT NULL DEFAULT '[]',
			tips TEXT,
			image_url TEXT,
			version_number INTEGER NOT NULL DEFAULT 1,
			parent_recipe_id TEXT,
			branch_name TEXT,
			is_original NUMERIC NOT NULL DEFAULT true,
			author_id TEXT
		);`,
		`CREATE TABLE ingredients (
			id TEXT PRIMARY KEY,
			created_at DATETIME,
			updated_at DATETIME,
			recipe_id TEXT NOT NULL,
			name TEXT NOT NULL,
			amount REAL,
			unit TEXT,
			notes TEXT,
			order_index INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE recipe_versions (
			id TEXT PRIMARY KEY,
			created_at DATETIME,
			recipe_id TEXT NOT NULL,
			version_number INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			difficulty TEXT NOT NULL,
			prep_time_minutes INTEGER NOT NULL DEFAULT 0,
			cook_time_minutes INTEGER NOT NULL DEFAULT 0,
			servings INTEGER NOT NULL DEFAULT 1,
			instructions TEXT NOT NULL DEFAULT '[]',
			tips TEXT,
			image_url TEXT,
			ingredients TEXT NOT NULL DEFAULT '[]',
			change_summary TEXT NOT NULL,
			UNIQUE (recipe_id, version_number)
		);`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create test schema: %v", err)
		}
	}

	return db
}
