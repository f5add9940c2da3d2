package repositories

import (
	"context"
	"errors"
	"strings"

	"luax.health/configs/configslog"
	"luax.health/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IPatientRepository persists portal accounts.
type IPatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	FindByNRC(ctx context.Context, nrc string) (*models.Patient, error)
	FindByEmail(ctx context.Context, email string) (*models.Patient, error)
	ExistsByNRC(ctx context.Context, nrc string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Search(ctx context.Context, query string) ([]models.Patient, error)
	DeleteWithAppointments(ctx context.Context, nrc string) error
}

// PatientRepository implements IPatientRepository with gorm.
type PatientRepository struct {
	db *gorm.DB
}

// NewPatientRepository returns a repository bound to db.
func NewPatientRepository(db *gorm.DB) IPatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Create inserts a patient. Unique violations on nrc or email surface as ErrDuplicateKey.
func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	if patient == nil || patient.NRC == "" || patient.Email == "" {
		return errors.New("patient without nrc or email cannot be created")
	}
	if err := r.getDB(ctx).Create(patient).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateKey
		}
		configslog.Log.Error("PatientRepository.Create: DB error", zap.String("nrc", patient.NRC), zap.Error(err))
		return err
	}
	return nil
}

func (r *PatientRepository) FindByNRC(ctx context.Context, nrc string) (*models.Patient, error) {
	if nrc == "" {
		return nil, ErrNotFound
	}
	var patient models.Patient
	err := r.getDB(ctx).Where("nrc = ?", nrc).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("PatientRepository.FindByNRC: DB error", zap.String("nrc", nrc), zap.Error(err))
		return nil, err
	}
	return &patient, nil
}

func (r *PatientRepository) FindByEmail(ctx context.Context, email string) (*models.Patient, error) {
	if email == "" {
		return nil, ErrNotFound
	}
	var patient models.Patient
	err := r.getDB(ctx).Where("email = ?", email).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("PatientRepository.FindByEmail: DB error", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return &patient, nil
}

func (r *PatientRepository) ExistsByNRC(ctx context.Context, nrc string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Patient{}).Where("nrc = ?", nrc).Count(&count).Error
	return count > 0, err
}

func (r *PatientRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Patient{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Search matches name, email or nrc case-insensitively; newest first.
// An empty query returns every patient.
func (r *PatientRepository) Search(ctx context.Context, query string) ([]models.Patient, error) {
	var patients []models.Patient
	q := r.getDB(ctx).Model(&models.Patient{})
	if term := strings.TrimSpace(query); term != "" {
		pattern := likePattern(term)
		q = q.Where("name ILIKE ? OR email ILIKE ? OR nrc ILIKE ?", pattern, pattern, pattern)
	}
	if err := q.Order("created_at DESC").Find(&patients).Error; err != nil {
		configslog.Log.Error("PatientRepository.Search: DB error", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	return patients, nil
}

// DeleteWithAppointments removes every appointment referencing nrc and then
// the patient itself, in one transaction.
func (r *PatientRepository) DeleteWithAppointments(ctx context.Context, nrc string) error {
	if nrc == "" {
		return ErrNotFound
	}
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("patient_nrc = ?", nrc).Delete(&models.Appointment{}).Error; err != nil {
			configslog.Log.Error("PatientRepository.DeleteWithAppointments: appointments delete failed", zap.String("nrc", nrc), zap.Error(err))
			return err
		}
		result := tx.Where("nrc = ?", nrc).Delete(&models.Patient{})
		if result.Error != nil {
			configslog.Log.Error("PatientRepository.DeleteWithAppointments: patient delete failed", zap.String("nrc", nrc), zap.Error(result.Error))
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

var _ IPatientRepository = (*PatientRepository)(nil)

// NewPatientRepositoryTx binds a repository to an open transaction.
func NewPatientRepositoryTx(tx *gorm.DB) IPatientRepository {
	return &PatientRepository{db: tx}
}
