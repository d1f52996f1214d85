package database

import (
	"gorm.io/gorm"
)

var constraintStatements = []string{
	// a period or a reservation never ends before it starts
	`ALTER TABLE periods DROP CONSTRAINT IF EXISTS chk_periods_window`,
	`ALTER TABLE periods ADD CONSTRAINT chk_periods_window CHECK (date_end >= date_start)`,
	`ALTER TABLE reservations DROP CONSTRAINT IF EXISTS chk_reservations_window`,
	`ALTER TABLE reservations ADD CONSTRAINT chk_reservations_window CHECK (date_end >= date_start)`,

	`CREATE INDEX IF NOT EXISTS idx_periods_window ON periods (date_start, date_end)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_user_start ON reservations (user_id, date_start DESC)`,
	// completion sweep and stats
	`CREATE INDEX IF NOT EXISTS idx_reservations_status_end ON reservations (status, date_end)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_created_at ON reservations (created_at)`,
}

// MigrateConstraints adds checks and indexes the booking queries rely on
func MigrateConstraints(db *gorm.DB) error {
	for _, stmt := range constraintStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
