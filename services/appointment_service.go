package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"luax.health/configs/configslog"
	"luax.health/models"
	"luax.health/repositories"

	"go.uber.org/zap"
)

// BookingInput is a booking form, public or from the patient portal.
// PatientNRC is set by the portal from the session, never from the form.
type BookingInput struct {
	PatientNRC string `form:"-" json:"-"`
	Name       string `form:"name" json:"name"`
	Email      string `form:"email" json:"email"`
	Phone      string `form:"phone" json:"phone"`
	Service    string `form:"service" json:"service"`
	Date       string `form:"date" json:"date"`
	Time       string `form:"time" json:"time"`
	Message    string `form:"message" json:"message"`
}

// PatientOverview is what the patient dashboard shows.
type PatientOverview struct {
	Upcoming  []models.Appointment
	Past      []models.Appointment
	LastVisit *time.Time
}

// IAppointmentService is the appointment lifecycle.
type IAppointmentService interface {
	Create(ctx context.Context, input BookingInput) (*models.Appointment, error)
	Get(ctx context.Context, id uint) (*models.Appointment, error)
	ListForPatient(ctx context.Context, nrc string) ([]models.Appointment, error)
	PatientOverview(ctx context.Context, nrc string) (*PatientOverview, error)
	LastVisit(ctx context.Context, nrc string) (*time.Time, error)
	ListAll(ctx context.Context) ([]models.Appointment, error)
	AdminDashboard(ctx context.Context) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, id uint, status string, notice StatusNotice) (*models.Appointment, error)
	CancelByPatient(ctx context.Context, id uint, nrc string) (*models.Appointment, error)
	Delete(ctx context.Context, id uint) error
	MarkAllRead(ctx context.Context) error
	CountUnread(ctx context.Context) (int64, error)
	Lookup(ctx context.Context, idText, phone string) (*models.Appointment, error)
}

// AppointmentService implements IAppointmentService.
type AppointmentService struct {
	repo     repositories.IAppointmentRepository
	patients repositories.IPatientRepository
	notifier INotificationService
	now      func() time.Time
}

func NewAppointmentService(repo repositories.IAppointmentRepository, patients repositories.IPatientRepository, notifier INotificationService) *AppointmentService {
	return &AppointmentService{repo: repo, patients: patients, notifier: notifier, now: time.Now}
}

// ValidateBooking checks required fields: a patient reference or name and
// phone, plus a well-formed date.
func ValidateBooking(input BookingInput) error {
	if strings.TrimSpace(input.PatientNRC) == "" &&
		(strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Phone) == "") {
		return newDomainError(ErrValidation, "Please fill name, phone and date.")
	}
	date := strings.TrimSpace(input.Date)
	if date == "" {
		return newDomainError(ErrValidation, "Please choose an appointment date.")
	}
	if _, err := models.ParseDate(date); err != nil {
		return newDomainError(ErrValidation, "Invalid appointment date.")
	}
	return nil
}

// Create stores a new Pending, unread booking and sends booking notices.
func (s *AppointmentService) Create(ctx context.Context, input BookingInput) (*models.Appointment, error) {
	if err := ValidateBooking(input); err != nil {
		return nil, err
	}
	date, _ := models.ParseDate(strings.TrimSpace(input.Date))

	appointment := &models.Appointment{
		Name:            strings.TrimSpace(input.Name),
		Email:           strings.TrimSpace(input.Email),
		Phone:           strings.TrimSpace(input.Phone),
		Service:         strings.TrimSpace(input.Service),
		AppointmentDate: date,
		AppointmentTime: strings.TrimSpace(input.Time),
		Message:         strings.TrimSpace(input.Message),
		Status:          models.StatusPending,
		IsRead:          false,
	}

	var patient *models.Patient
	if nrc := strings.TrimSpace(input.PatientNRC); nrc != "" {
		p, err := s.patients.FindByNRC(ctx, nrc)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrPatientNotFound
			}
			return nil, err
		}
		patient = p
		appointment.PatientNRC = &p.NRC
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, err
	}
	appointment.Patient = patient

	configslog.SLog.Infof("Appointment booked: ID %d, service %q, date %s", appointment.ID, appointment.Service, appointment.DateString())
	s.notifier.BookingReceived(ctx, appointment)
	return appointment, nil
}

func (s *AppointmentService) Get(ctx context.Context, id uint) (*models.Appointment, error) {
	appointment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return appointment, nil
}

// ListForPatient returns nrc's bookings ordered by requested date.
func (s *AppointmentService) ListForPatient(ctx context.Context, nrc string) ([]models.Appointment, error) {
	return s.repo.ListByPatient(ctx, nrc)
}

// PartitionForPatient splits bookings into upcoming (open and dated today
// or later) and past (closed or dated before today), keeping input order.
func PartitionForPatient(appointments []models.Appointment, today time.Time) (upcoming, past []models.Appointment) {
	day := today.Format(models.DateLayout)
	for _, a := range appointments {
		if a.IsUpcoming(day) {
			upcoming = append(upcoming, a)
		} else {
			past = append(past, a)
		}
	}
	return upcoming, past
}

// LastVisit is the date of nrc's most recent Completed appointment, or nil.
func (s *AppointmentService) LastVisit(ctx context.Context, nrc string) (*time.Time, error) {
	return s.repo.LastCompletedDate(ctx, nrc)
}

func (s *AppointmentService) PatientOverview(ctx context.Context, nrc string) (*PatientOverview, error) {
	appointments, err := s.repo.ListByPatient(ctx, nrc)
	if err != nil {
		return nil, err
	}
	lastVisit, err := s.LastVisit(ctx, nrc)
	if err != nil {
		return nil, err
	}
	upcoming, past := PartitionForPatient(appointments, s.now())
	return &PatientOverview{Upcoming: upcoming, Past: past, LastVisit: lastVisit}, nil
}

// ListAll returns every booking, newest first.
func (s *AppointmentService) ListAll(ctx context.Context) ([]models.Appointment, error) {
	return s.repo.ListAll(ctx)
}

// AdminDashboard marks every booking read and returns the full list.
func (s *AppointmentService) AdminDashboard(ctx context.Context) ([]models.Appointment, error) {
	if err := s.MarkAllRead(ctx); err != nil {
		return nil, err
	}
	return s.repo.ListAll(ctx)
}

// UpdateStatus sets any status in the domain, from any current status.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id uint, status string, notice StatusNotice) (*models.Appointment, error) {
	newStatus := models.AppointmentStatus(strings.TrimSpace(status))
	if !newStatus.IsValid() {
		return nil, ErrUnknownStatus
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	appointment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	configslog.SLog.Infof("Appointment #%d status set to %s", id, newStatus)

	s.notifier.StatusChanged(ctx, appointment, notice)
	return appointment, nil
}

// CancelByPatient cancels one of nrc's own bookings while it is still Pending.
func (s *AppointmentService) CancelByPatient(ctx context.Context, id uint, nrc string) (*models.Appointment, error) {
	appointment, err := s.repo.FindByIDForPatient(ctx, id, nrc)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	if appointment.Status != models.StatusPending {
		return nil, ErrOnlyPendingCancel
	}

	if err := s.repo.UpdateStatus(ctx, id, models.StatusCancelled); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	appointment.Status = models.StatusCancelled

	configslog.Log.Info("Appointment cancelled by patient", zap.Uint("id", id), zap.String("nrc", nrc))
	s.notifier.CancelledByPatient(ctx, appointment)
	return appointment, nil
}

func (s *AppointmentService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAppointmentNotFound
		}
		return err
	}
	configslog.SLog.Infof("Appointment #%d deleted", id)
	return nil
}

func (s *AppointmentService) MarkAllRead(ctx context.Context) error {
	changed, err := s.repo.MarkAllRead(ctx)
	if err != nil {
		return err
	}
	if changed > 0 {
		configslog.SLog.Debugf("%d appointments marked as read", changed)
	}
	return nil
}

func (s *AppointmentService) CountUnread(ctx context.Context) (int64, error) {
	return s.repo.CountUnread(ctx)
}

// Lookup finds a booking by reference number, or the latest one for phone
// when no reference is given.
func (s *AppointmentService) Lookup(ctx context.Context, idText, phone string) (*models.Appointment, error) {
	idText = strings.TrimSpace(idText)
	phone = strings.TrimSpace(phone)

	var (
		appointment *models.Appointment
		err         error
	)
	switch {
	case idText != "":
		id, convErr := strconv.ParseUint(idText, 10, 64)
		if convErr != nil || id == 0 {
			return nil, ErrAppointmentNotFound
		}
		appointment, err = s.repo.FindByID(ctx, uint(id))
	case phone != "":
		appointment, err = s.repo.FindLatestByPhone(ctx, phone)
	default:
		return nil, newDomainError(ErrValidation, "Please enter your appointment ID or phone number.")
	}

	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return appointment, nil
}

var _ IAppointmentService = (*AppointmentService)(nil)
