package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"

	"github.com/plateful/backend/config"
	"github.com/plateful/backend/internal/database"
)

// Schema bootstrap: PostgreSQL-level DDL that gorm's AutoMigrate cannot
// express runs first over a plain database/sql connection, then AutoMigrate
// brings the tables up to date.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer sqlDB.Close()

	// gen_random_uuid() for primary key defaults
	if _, err := sqlDB.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`); err != nil {
		log.Fatalf("failed to install pgcrypto extension: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to open gorm connection: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	log.Println("Migrations applied")
}
