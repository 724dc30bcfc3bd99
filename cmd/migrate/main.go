package main

import (
	"log"
	"os"

	"keep-notes-be/internal/model"
	"keep-notes-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn, false)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Setting up Extensions...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
	}

	log.Println("Step 2: Running AutoMigrate...")
	if err := db.AutoMigrate(&model.NoteDocument{}, &model.Label{}); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 3. Indexes for session loading (user, collection, display order)
	log.Println("Step 3: Creating Indexes...")
	indexSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_note_documents_user_collection_position ON note_documents (user_id, collection, position, created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_labels_user_position ON labels (user_id, position);`,
	}
	for _, sql := range indexSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute index SQL: %v", err)
		}
	}

	log.Println("Success: Database migration completed.")
}
