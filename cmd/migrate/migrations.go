package main

import (
	"gorm.io/gorm"

	"github.com/doc-studio/engine/internal/models"
)

// registerModels returns all models that need migration.
func registerModels() []any {
	return []any{
		&models.User{},
		&models.Project{},
		&models.Section{},
		&models.SectionRevision{},
		&models.SectionFeedback{},
	}
}

// runMigrations executes all database migrations.
func runMigrations(db *gorm.DB) error {
	if err := enableUUIDExtension(db); err != nil {
		return err
	}
	if err := db.AutoMigrate(registerModels()...); err != nil {
		return err
	}
	return runCustomMigrations(db)
}

// runCustomMigrations handles schema changes AutoMigrate can't handle.
func runCustomMigrations(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		addProjectListIndex,
		addHistoryIndexes,
	}
	for _, migration := range migrations {
		if err := migration(db); err != nil {
			return err
		}
	}
	return nil
}

// enableUUIDExtension ensures gen_random_uuid() is available for column defaults.
func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error
}

// addProjectListIndex speeds up the per-user project listing, which sorts by
// last update.
func addProjectListIndex(db *gorm.DB) error {
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_projects_user_updated
		ON projects(user_id, updated_at DESC)
	`).Error
}

// addHistoryIndexes supports chronological loads of revisions and feedback.
func addHistoryIndexes(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_section_revisions_section_created
		ON section_revisions(section_id, created_at)
	`).Error; err != nil {
		return err
	}
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_section_feedback_section_created
		ON section_feedback(section_id, created_at)
	`).Error
}
