package database

import (
	"fmt"

	"gorm.io/gorm"

	"tasktrack/internal/models"
)

// schemaMigration marks an applied migration version.
type schemaMigration struct {
	Version   uint64 `gorm:"primarykey"`
	AppliedAt int64  `gorm:"autoCreateTime"`
}

func (schemaMigration) TableName() string { return "schema_migrations" }

type migration struct {
	version uint64
	name    string
	run     func(tx *gorm.DB) error
}

// migrations is the ordered, append-only list of schema versions. Each entry
// runs at most once; the applied version is recorded in schema_migrations.
var migrations = []migration{
	{
		version: 1,
		name:    "create core tables",
		run: func(tx *gorm.DB) error {
			return tx.AutoMigrate(
				&models.User{},
				&models.Category{},
				&models.Task{},
				&models.Attachment{},
			)
		},
	},
	{
		version: 2,
		name:    "index tasks for the list ordering contract",
		run: func(tx *gorm.DB) error {
			// IF NOT EXISTS is not portable (MySQL rejects it), so the
			// guard lives in the migrator check instead.
			if tx.Migrator().HasIndex(&models.Task{}, "idx_tasks_owner_completed_created_at") {
				return nil
			}
			return tx.Exec(
				"CREATE INDEX idx_tasks_owner_completed_created_at ON tasks (owner_id, completed, created_at)",
			).Error
		},
	},
}

// Migrate applies all pending schema versions in order.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("failed to prepare schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var count int64
		if err := db.Model(&schemaMigration{}).Where("version = ?", m.version).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check migration %d: %w", m.version, err)
		}
		if count > 0 {
			continue
		}

		if err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.run(tx); err != nil {
				return err
			}
			return tx.Create(&schemaMigration{Version: m.version}).Error
		}); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
		}
	}

	return nil
}
