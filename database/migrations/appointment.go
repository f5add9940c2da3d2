package migrations

import (
	"luax.health/configs/configslog"
	"luax.health/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateAppointmentsTable creates appointments with its nullable, cascading
// reference to patients. patients must exist first.
func MigrateAppointmentsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating appointments table...")
	if err := db.AutoMigrate(&models.Appointment{}); err != nil {
		configslog.Log.Error("Failed to migrate appointments table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Appointments table migrated successfully")
	return nil
}

// AddAppointmentLookupIndexes backs the phone lookup and the unread badge
// queries. patient_nrc is indexed from the model tag.
func AddAppointmentLookupIndexes(db *gorm.DB) error {
	statements := []string{
		`CREATE INDEX IF NOT EXISTS idx_appointments_phone_created ON appointments (phone, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_appointments_unread ON appointments (is_read) WHERE is_read = false`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			configslog.Log.Error("Failed to create appointment index", zap.String("sql", stmt), zap.Error(err))
			return err
		}
	}
	return nil
}
