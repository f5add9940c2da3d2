package models

import "time"

// SchemaMigration records one applied versioned migration step.
type SchemaMigration struct {
	Version   uint      `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"type:varchar(150);not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (SchemaMigration) TableName() string {
	return "schema_migrations"
}
