package models

import (
	"time"

	"gorm.io/datatypes"
)

// AppointmentStatus is the disposition of a booking.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "Pending"
	StatusConfirmed AppointmentStatus = "Confirmed"
	StatusCancelled AppointmentStatus = "Cancelled"
	StatusCompleted AppointmentStatus = "Completed"
)

// AppointmentStatuses lists the status domain in display order.
var AppointmentStatuses = []AppointmentStatus{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

// IsValid reports whether s belongs to the status domain.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// IsOpen is true for bookings that still expect a visit.
func (s AppointmentStatus) IsOpen() bool {
	return s == StatusPending || s == StatusConfirmed
}

// DateLayout is the wire and display layout of appointment dates.
const DateLayout = "2006-01-02"

// Appointment is a booking request. Walk-in bookings carry their own
// contact fields; portal bookings reference a Patient instead.
type Appointment struct {
	ID              uint              `gorm:"primaryKey"`
	PatientNRC      *string           `gorm:"column:patient_nrc;type:varchar(50);index"`
	Patient         *Patient          `gorm:"foreignKey:PatientNRC;references:NRC;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Name            string            `gorm:"type:varchar(150)"`
	Email           string            `gorm:"type:varchar(150)"`
	Phone           string            `gorm:"type:varchar(30);index"`
	Service         string            `gorm:"type:varchar(150)"`
	AppointmentDate datatypes.Date    `gorm:"not null;index"`
	AppointmentTime string            `gorm:"type:varchar(10)"`
	Message         string            `gorm:"type:text"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'Pending';index"`
	IsRead          bool              `gorm:"not null;default:false;index"`
	CreatedAt       time.Time         `gorm:"index"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// Date returns the requested date as a time.Time at midnight.
func (a *Appointment) Date() time.Time {
	return time.Time(a.AppointmentDate)
}

// DateString formats the requested date as YYYY-MM-DD.
func (a *Appointment) DateString() string {
	return a.Date().Format(DateLayout)
}

// ContactName prefers the linked patient's name over the stored walk-in name.
func (a *Appointment) ContactName() string {
	if a.Patient != nil && a.Patient.Name != "" {
		return a.Patient.Name
	}
	if a.Name != "" {
		return a.Name
	}
	return "Unknown"
}

// ContactEmail returns the address notifications go to; empty when none is known.
func (a *Appointment) ContactEmail() string {
	if a.Patient != nil && a.Patient.Email != "" {
		return a.Patient.Email
	}
	return a.Email
}

func (a *Appointment) ContactPhone() string {
	if a.Patient != nil && a.Patient.Phone != "" {
		return a.Patient.Phone
	}
	return a.Phone
}

// IsLinked reports whether the booking belongs to a portal account.
func (a *Appointment) IsLinked() bool {
	return a.PatientNRC != nil && *a.PatientNRC != ""
}

// IsUpcoming is true for open bookings dated today or later. today must be
// formatted with DateLayout.
func (a *Appointment) IsUpcoming(today string) bool {
	return a.Status.IsOpen() && a.DateString() >= today
}

// ParseDate parses a YYYY-MM-DD form value.
func ParseDate(value string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}
