package database

import (
	"errors"

	"luax.health/configs/configslog"
	"luax.health/database/migrations"
	"luax.health/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize applies pending migrations and/or seeders in one transaction.
func Initialize(db *gorm.DB, migrate bool, seed bool) (err error) {
	if !migrate && !seed {
		configslog.SLog.Info("Neither migrate nor seed requested, nothing to do.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		configslog.Log.Error("Database transaction could not be started", zap.Error(tx.Error))
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			configslog.Log.Error("Database initialization panicked", zap.Any("panic_info", r))
			panic(r)
		}
		if err != nil {
			configslog.Log.Warn("Rolling back database initialization", zap.Error(err))
			if rbErr := tx.Rollback().Error; rbErr != nil && !errors.Is(rbErr, gorm.ErrInvalidTransaction) {
				configslog.Log.Error("Rollback failed", zap.Error(rbErr))
			}
		}
	}()

	configslog.SLog.Info("Database initialization starting...")

	if migrate {
		if err = RunMigrationsInOrder(tx); err != nil {
			return err
		}
	}
	if seed {
		if err = CheckAndRunSeeders(tx); err != nil {
			return err
		}
	}

	if err = tx.Commit().Error; err != nil {
		configslog.Log.Error("Commit failed", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Database initialization completed")
	return nil
}

func RunMigrationsInOrder(db *gorm.DB) error {
	configslog.SLog.Info("Running migrations...")
	ran, err := migrations.Apply(db, migrations.All)
	if err != nil {
		configslog.Log.Error("Migration failed", zap.Int("applied_before_failure", ran), zap.Error(err))
		return err
	}
	if ran == 0 {
		configslog.SLog.Info("Schema is up to date.")
	} else {
		configslog.SLog.Infof("%d migration(s) applied.", ran)
	}
	return nil
}

func CheckAndRunSeeders(db *gorm.DB) error {
	configslog.SLog.Info(" -> Demo patient seeder running...")
	if err := seeders.SeedDemoPatient(db); err != nil {
		configslog.Log.Error("Demo patient seed failed", zap.Error(err))
		return err
	}

	configslog.SLog.Info(" -> Walk-in appointment seeder running...")
	if err := seeders.SeedWalkInAppointment(db); err != nil {
		configslog.Log.Error("Walk-in appointment seed failed", zap.Error(err))
		return err
	}

	configslog.SLog.Info("All seeders checked/applied.")
	return nil
}
