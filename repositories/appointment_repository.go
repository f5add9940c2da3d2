package repositories

import (
	"context"
	"errors"
	"time"

	"luax.health/configs/configslog"
	"luax.health/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IAppointmentRepository persists bookings.
type IAppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	FindByID(ctx context.Context, id uint) (*models.Appointment, error)
	FindByIDForPatient(ctx context.Context, id uint, nrc string) (*models.Appointment, error)
	FindLatestByPhone(ctx context.Context, phone string) (*models.Appointment, error)
	ListByPatient(ctx context.Context, nrc string) ([]models.Appointment, error)
	LastCompletedDate(ctx context.Context, nrc string) (*time.Time, error)
	ListAll(ctx context.Context) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, id uint, status models.AppointmentStatus) error
	Delete(ctx context.Context, id uint) error
	MarkAllRead(ctx context.Context) (int64, error)
	CountUnread(ctx context.Context) (int64, error)
}

// AppointmentRepository implements IAppointmentRepository with gorm.
type AppointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository returns a repository bound to db.
func NewAppointmentRepository(db *gorm.DB) IAppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Create inserts a booking; ID and CreatedAt are assigned by the store.
func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	if appointment == nil {
		return errors.New("nil appointment cannot be created")
	}
	if err := r.getDB(ctx).Omit("Patient").Create(appointment).Error; err != nil {
		configslog.Log.Error("AppointmentRepository.Create: DB error", zap.Error(err))
		return err
	}
	return nil
}

// FindByID loads a booking with its patient (when linked).
func (r *AppointmentRepository) FindByID(ctx context.Context, id uint) (*models.Appointment, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var appointment models.Appointment
	err := r.getDB(ctx).Preload("Patient").First(&appointment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("AppointmentRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &appointment, nil
}

// FindByIDForPatient loads a booking only if it belongs to nrc.
func (r *AppointmentRepository) FindByIDForPatient(ctx context.Context, id uint, nrc string) (*models.Appointment, error) {
	if id == 0 || nrc == "" {
		return nil, ErrNotFound
	}
	var appointment models.Appointment
	err := r.getDB(ctx).Preload("Patient").Where("id = ? AND patient_nrc = ?", id, nrc).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("AppointmentRepository.FindByIDForPatient: DB error", zap.Uint("id", id), zap.String("nrc", nrc), zap.Error(err))
		return nil, err
	}
	return &appointment, nil
}

// FindLatestByPhone returns the most recent booking made with phone.
func (r *AppointmentRepository) FindLatestByPhone(ctx context.Context, phone string) (*models.Appointment, error) {
	if phone == "" {
		return nil, ErrNotFound
	}
	var appointments []models.Appointment
	err := r.getDB(ctx).Preload("Patient").
		Where("phone = ?", phone).
		Order("created_at DESC").
		Limit(1).
		Find(&appointments).Error
	if err != nil {
		configslog.Log.Error("AppointmentRepository.FindLatestByPhone: DB error", zap.Error(err))
		return nil, err
	}
	if len(appointments) == 0 {
		return nil, ErrNotFound
	}
	return &appointments[0], nil
}

// ListByPatient returns the patient's bookings by requested date, oldest first.
func (r *AppointmentRepository) ListByPatient(ctx context.Context, nrc string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.getDB(ctx).
		Where("patient_nrc = ?", nrc).
		Order("appointment_date ASC").
		Order("appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		configslog.Log.Error("AppointmentRepository.ListByPatient: DB error", zap.String("nrc", nrc), zap.Error(err))
		return nil, err
	}
	return appointments, nil
}

// LastCompletedDate is the date of the patient's most recent completed
// visit, or nil when there is none.
func (r *AppointmentRepository) LastCompletedDate(ctx context.Context, nrc string) (*time.Time, error) {
	var appointments []models.Appointment
	err := r.getDB(ctx).
		Where("patient_nrc = ? AND status = ?", nrc, models.StatusCompleted).
		Order("appointment_date DESC").
		Limit(1).
		Find(&appointments).Error
	if err != nil {
		configslog.Log.Error("AppointmentRepository.LastCompletedDate: DB error", zap.String("nrc", nrc), zap.Error(err))
		return nil, err
	}
	if len(appointments) == 0 {
		return nil, nil
	}
	date := appointments[0].Date()
	return &date, nil
}

// ListAll returns every booking, newest first, with linked patients loaded.
func (r *AppointmentRepository) ListAll(ctx context.Context) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.getDB(ctx).Preload("Patient").Order("created_at DESC").Find(&appointments).Error
	if err != nil {
		configslog.Log.Error("AppointmentRepository.ListAll: DB error", zap.Error(err))
		return nil, err
	}
	return appointments, nil
}

// UpdateStatus writes status unconditionally; a missing row is ErrNotFound.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id uint, status models.AppointmentStatus) error {
	result := r.getDB(ctx).Model(&models.Appointment{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		configslog.Log.Error("AppointmentRepository.UpdateStatus: DB error", zap.Uint("id", id), zap.String("status", string(status)), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete hard-deletes a booking.
func (r *AppointmentRepository) Delete(ctx context.Context, id uint) error {
	result := r.getDB(ctx).Where("id = ?", id).Delete(&models.Appointment{})
	if result.Error != nil {
		configslog.Log.Error("AppointmentRepository.Delete: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllRead clears the unread flag on every booking and returns how many changed.
func (r *AppointmentRepository) MarkAllRead(ctx context.Context) (int64, error) {
	result := r.getDB(ctx).Model(&models.Appointment{}).Where("is_read = ?", false).Update("is_read", true)
	if result.Error != nil {
		configslog.Log.Error("AppointmentRepository.MarkAllRead: DB error", zap.Error(result.Error))
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *AppointmentRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Appointment{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}

var _ IAppointmentRepository = (*AppointmentRepository)(nil)

// NewAppointmentRepositoryTx binds a repository to an open transaction.
func NewAppointmentRepositoryTx(tx *gorm.DB) IAppointmentRepository {
	return &AppointmentRepository{db: tx}
}
