package models

import "time"

// Patient is a registered portal account keyed by its national registration
// card number (NRC).
type Patient struct {
	NRC               string    `gorm:"column:nrc;primaryKey;type:varchar(50)" form:"nrc"`
	Name              string    `gorm:"type:varchar(150);not null" form:"name"`
	Email             string    `gorm:"type:varchar(150);uniqueIndex;not null" form:"email"`
	PasswordHash      string    `gorm:"column:password;type:varchar(255);not null" form:"-" json:"-"`
	DOB               string    `gorm:"column:dob;type:varchar(20)" form:"dob"`
	Gender            string    `gorm:"type:varchar(20)" form:"gender"`
	Phone             string    `gorm:"type:varchar(30);index" form:"phone"`
	Address           string    `gorm:"type:text" form:"address"`
	BloodType         string    `gorm:"type:varchar(5)" form:"blood_type"`
	Allergies         string    `gorm:"type:text" form:"allergies"`
	EmergencyContact  string    `gorm:"type:varchar(150)" form:"emergency_contact"`
	Occupation        string    `gorm:"type:varchar(100)" form:"occupation"`
	Employer          string    `gorm:"type:varchar(150)" form:"employer"`
	InsuranceProvider string    `gorm:"type:varchar(150)" form:"insurance_provider"`
	PolicyNumber      string    `gorm:"type:varchar(100)" form:"policy_number"`
	CreatedAt         time.Time `gorm:"index"`
}

func (Patient) TableName() string {
	return "patients"
}
