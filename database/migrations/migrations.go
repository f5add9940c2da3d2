package migrations

import (
	"fmt"
	"time"

	"luax.health/configs/configslog"
	"luax.health/models"

	"gorm.io/gorm"
)

// Migration is one schema step. Versions are applied in ascending order and
// never edited once released; add a new step instead.
type Migration struct {
	Version uint
	Name    string
	Up      func(db *gorm.DB) error
}

// All is the ordered list of schema steps.
var All = []Migration{
	{Version: 1, Name: "create_patients", Up: MigratePatientsTable},
	{Version: 2, Name: "create_appointments", Up: MigrateAppointmentsTable},
	{Version: 3, Name: "appointment_lookup_indexes", Up: AddAppointmentLookupIndexes},
}

// Apply runs every step of steps not yet recorded in schema_migrations and
// records it. It returns how many steps ran. Callers own the transaction.
func Apply(db *gorm.DB, steps []Migration) (int, error) {
	if err := db.AutoMigrate(&models.SchemaMigration{}); err != nil {
		return 0, fmt.Errorf("schema_migrations table: %w", err)
	}

	var applied []uint
	if err := db.Model(&models.SchemaMigration{}).Pluck("version", &applied).Error; err != nil {
		return 0, fmt.Errorf("read applied versions: %w", err)
	}
	todo, err := pending(applied, steps)
	if err != nil {
		return 0, err
	}

	for i, step := range todo {
		configslog.SLog.Infof(" -> Applying migration %d_%s", step.Version, step.Name)
		if err := step.Up(db); err != nil {
			return i, fmt.Errorf("migration %d (%s): %w", step.Version, step.Name, err)
		}
		record := models.SchemaMigration{Version: step.Version, Name: step.Name, AppliedAt: time.Now().UTC()}
		if err := db.Create(&record).Error; err != nil {
			return i, fmt.Errorf("record migration %d: %w", step.Version, err)
		}
	}
	return len(todo), nil
}

// pending returns the steps whose versions are not in applied. steps must be
// strictly ascending by version.
func pending(applied []uint, steps []Migration) ([]Migration, error) {
	done := make(map[uint]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	var todo []Migration
	var last uint
	for _, step := range steps {
		if step.Version <= last {
			return nil, fmt.Errorf("migration %d (%s) out of order", step.Version, step.Name)
		}
		last = step.Version
		if !done[step.Version] {
			todo = append(todo, step)
		}
	}
	return todo, nil
}
