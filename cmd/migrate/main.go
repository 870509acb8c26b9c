package main

import (
	"log"

	"ai-stemtutor-be/internal/config"
	"ai-stemtutor-be/internal/model"
	"ai-stemtutor-be/pkg/database"
)

// Creates the enums and tables the interaction store needs. Run once against
// a fresh database, safe to re-run.
func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("DB_CONNECTION_STRING is required for migration")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,
		`DO $$ BEGIN
			CREATE TYPE ai_interaction_kind AS ENUM ('solve', 'define');
		EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
		`DO $$ BEGIN
			CREATE TYPE ai_interaction_status AS ENUM ('pending', 'processing', 'completed', 'failed');
		EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			log.Fatalf("Migration statement failed: %v", err)
		}
	}

	if err := db.AutoMigrate(&model.AIInteraction{}); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("✅ Migration completed")
}
