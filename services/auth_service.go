package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"luax.health/configs/configslog"
	"luax.health/models"
	"luax.health/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput is the patient registration form.
type RegisterInput struct {
	NRC               string `form:"nrc" json:"nrc"`
	Name              string `form:"name" json:"name"`
	Email             string `form:"email" json:"email"`
	Password          string `form:"password" json:"-"`
	ConfirmPassword   string `form:"confirm_password" json:"-"`
	DOB               string `form:"dob" json:"dob"`
	Gender            string `form:"gender" json:"gender"`
	Phone             string `form:"phone" json:"phone"`
	Address           string `form:"address" json:"address"`
	BloodType         string `form:"blood_type" json:"blood_type"`
	Allergies         string `form:"allergies" json:"allergies"`
	EmergencyContact  string `form:"emergency_contact" json:"emergency_contact"`
	Occupation        string `form:"occupation" json:"occupation"`
	Employer          string `form:"employer" json:"employer"`
	InsuranceProvider string `form:"insurance_provider" json:"insurance_provider"`
	PolicyNumber      string `form:"policy_number" json:"policy_number"`
}

// IAuthService verifies patient and staff credentials.
type IAuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.Patient, error)
	Authenticate(ctx context.Context, email, password string) (*models.Patient, error)
	AuthenticateAdmin(password string) bool
}

// AuthService implements IAuthService.
type AuthService struct {
	patients      repositories.IPatientRepository
	adminPassword string
	hashCost      int
}

// NewAuthService builds the credential store over patients. adminPassword is
// the single shared staff secret.
func NewAuthService(patients repositories.IPatientRepository, adminPassword string) *AuthService {
	return &AuthService{patients: patients, adminPassword: adminPassword, hashCost: bcrypt.DefaultCost}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a patient account storing only a bcrypt hash of the password.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.Patient, error) {
	nrc := strings.TrimSpace(input.NRC)
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)

	if nrc == "" || name == "" || email == "" || input.Password == "" {
		return nil, newDomainError(ErrValidation, "NRC, name, email and password are required.")
	}
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	exists, err := s.patients.ExistsByNRC(ctx, nrc)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateIdentity
	}
	exists, err = s.patients.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		configslog.Log.Error("Password hashing failed", zap.String("nrc", nrc), zap.Error(err))
		return nil, err
	}

	patient := &models.Patient{
		NRC:               nrc,
		Name:              name,
		Email:             email,
		PasswordHash:      string(hash),
		DOB:               strings.TrimSpace(input.DOB),
		Gender:            strings.TrimSpace(input.Gender),
		Phone:             strings.TrimSpace(input.Phone),
		Address:           strings.TrimSpace(input.Address),
		BloodType:         strings.TrimSpace(input.BloodType),
		Allergies:         strings.TrimSpace(input.Allergies),
		EmergencyContact:  strings.TrimSpace(input.EmergencyContact),
		Occupation:        strings.TrimSpace(input.Occupation),
		Employer:          strings.TrimSpace(input.Employer),
		InsuranceProvider: strings.TrimSpace(input.InsuranceProvider),
		PolicyNumber:      strings.TrimSpace(input.PolicyNumber),
	}
	if err := s.patients.Create(ctx, patient); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			// Lost a race with a concurrent registration.
			return nil, newDomainError(ErrDuplicateKey, "NRC number or email already registered.")
		}
		return nil, err
	}

	configslog.SLog.Infof("Patient registered: NRC %s", patient.NRC)
	return patient, nil
}

// Authenticate checks email and password and returns the full patient record.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.Patient, error) {
	patient, err := s.patients.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEmailNotFound
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(patient.PasswordHash), []byte(password)) != nil {
		configslog.Log.Info("Patient login rejected", zap.String("nrc", patient.NRC))
		return nil, ErrInvalidCredential
	}
	return patient, nil
}

// AuthenticateAdmin compares password with the shared staff secret.
func (s *AuthService) AuthenticateAdmin(password string) bool {
	if password == "" || s.adminPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1
}

var _ IAuthService = (*AuthService)(nil)
