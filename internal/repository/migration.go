package repository

import (
	"fmt"

	"filevault/internal/domain/file"
	"filevault/internal/domain/user"

	"gorm.io/gorm"
)

// InitSchema creates required extensions and runs Gorm auto-migration.
// Lookups by internal name are the hot path for download/view, hence the
// dedicated unique index on files.internal_name.
func InitSchema(db *gorm.DB) error {
	// Creating extensions usually requires superuser privileges. If this
	// fails, ensure the extension is pre-installed.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return fmt.Errorf("failed to create extension: %w", err)
	}

	if err := db.AutoMigrate(
		&user.User{},
		&file.File{},
	); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	return nil
}
