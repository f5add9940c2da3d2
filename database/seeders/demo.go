package seeders

import (
	"errors"
	"time"

	"luax.health/configs/configslog"
	"luax.health/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DemoPatientNRC      = "123456/10/1"
	DemoPatientEmail    = "demo.patient@example.com"
	DemoPatientPassword = "demo-password"
	demoWalkInPhone     = "0965000000"
)

// SeedDemoPatient creates the development patient account if it is missing.
func SeedDemoPatient(db *gorm.DB) error {
	var existing models.Patient
	err := db.Where("nrc = ?", DemoPatientNRC).First(&existing).Error
	if err == nil {
		configslog.SLog.Debugf("Demo patient %s already exists, skipping.", DemoPatientNRC)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Demo patient lookup failed", zap.Error(err))
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPatientPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	patient := models.Patient{
		NRC:          DemoPatientNRC,
		Name:         "Demo Patient",
		Email:        DemoPatientEmail,
		PasswordHash: string(hash),
		Gender:       "Female",
		Phone:        "0977000000",
		Address:      "Chililabombwe",
	}
	if err := db.Create(&patient).Error; err != nil {
		configslog.Log.Error("Demo patient could not be created", zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Demo patient %s created.", DemoPatientNRC)
	return nil
}

// SeedWalkInAppointment adds one unlinked Pending booking if none exists for
// the demo phone number.
func SeedWalkInAppointment(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Appointment{}).Where("phone = ?", demoWalkInPhone).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		configslog.SLog.Debug("Walk-in demo appointment already exists, skipping.")
		return nil
	}

	appointment := models.Appointment{
		Name:            "Jane Doe",
		Email:           "jane.doe@example.com",
		Phone:           demoWalkInPhone,
		Service:         "Pharmacy",
		AppointmentDate: datatypes.Date(time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, 7)),
		AppointmentTime: "09:00",
		Status:          models.StatusPending,
	}
	if err := db.Omit("Patient").Create(&appointment).Error; err != nil {
		configslog.Log.Error("Walk-in demo appointment could not be created", zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Walk-in demo appointment #%d created.", appointment.ID)
	return nil
}
