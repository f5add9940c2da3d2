package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"luax.health/configs"
	"luax.health/configs/configslog"
	"luax.health/models"
	"luax.health/pkg/mailer"

	"go.uber.org/zap"
)

var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

// IsValidEmail is the syntactic check applied before any mail is sent.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// StatusNotice is the admin's choice of patient notification on a status change.
type StatusNotice struct {
	Notify  bool
	Message string
}

// INotificationService sends best-effort notices. None of its methods fail.
type INotificationService interface {
	Notify(ctx context.Context, recipient, subject, body string)
	BookingReceived(ctx context.Context, appointment *models.Appointment)
	StatusChanged(ctx context.Context, appointment *models.Appointment, notice StatusNotice)
	CancelledByPatient(ctx context.Context, appointment *models.Appointment)
}

// NotificationService composes clinic emails and hands them to a mailer.Sender.
type NotificationService struct {
	sender  mailer.Sender
	clinic  *configs.Clinic
	timeout time.Duration
}

func NewNotificationService(sender mailer.Sender, clinic *configs.Clinic, timeout time.Duration) *NotificationService {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &NotificationService{sender: sender, clinic: clinic, timeout: timeout}
}

// Notify sends one message. Invalid recipients are skipped silently and
// transport errors are logged and swallowed.
func (s *NotificationService) Notify(ctx context.Context, recipient, subject, body string) {
	recipient = strings.TrimSpace(recipient)
	if !IsValidEmail(recipient) {
		return
	}
	sendCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.sender.Send(sendCtx, mailer.Message{To: recipient, Subject: subject, Body: body})
	if err != nil {
		configslog.Log.Warn("Email send failed", zap.String("to", recipient), zap.String("subject", subject), zap.Error(err))
		return
	}
	configslog.Log.Debug("Email sent", zap.String("to", recipient), zap.String("subject", subject))
}

// BookingReceived alerts the clinic inbox and confirms to the patient when
// an address is known.
func (s *NotificationService) BookingReceived(ctx context.Context, appointment *models.Appointment) {
	s.Notify(ctx, s.clinic.Email,
		fmt.Sprintf("New appointment request #%d", appointment.ID),
		fmt.Sprintf("A new appointment has been booked.\n\n%s\nMessage: %s\n",
			s.describe(appointment), appointment.Message),
	)

	s.Notify(ctx, appointment.ContactEmail(),
		"Your Appointment Request Has Been Received",
		fmt.Sprintf("Hello %s,\n\nWe have received your appointment request (reference #%d).\n\n%s\n"+
			"We will contact you to confirm. You can check the status at any time with your reference number.\n\nThank you,\n%s",
			appointment.ContactName(), appointment.ID, s.describe(appointment), s.clinic.Name),
	)
}

// StatusChanged emails the patient when the admin asked for it: the custom
// message when one was given, otherwise the default status text.
func (s *NotificationService) StatusChanged(ctx context.Context, appointment *models.Appointment, notice StatusNotice) {
	if !notice.Notify {
		return
	}
	body := strings.TrimSpace(notice.Message)
	if body == "" {
		body = fmt.Sprintf("Hello %s,\n\nYour appointment on %s for %s has been %s.\n\nThank you,\n%s",
			appointment.ContactName(), appointment.DateString(), serviceLabel(appointment.Service),
			strings.ToLower(string(appointment.Status)), s.clinic.Name)
	}
	s.Notify(ctx, appointment.ContactEmail(), "Appointment Status Update", body)
}

// CancelledByPatient alerts the clinic inbox.
func (s *NotificationService) CancelledByPatient(ctx context.Context, appointment *models.Appointment) {
	s.Notify(ctx, s.clinic.Email,
		fmt.Sprintf("Appointment #%d cancelled by patient", appointment.ID),
		fmt.Sprintf("The patient cancelled their appointment.\n\n%s\n", s.describe(appointment)),
	)
}

func (s *NotificationService) describe(a *models.Appointment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", a.ContactName())
	fmt.Fprintf(&b, "Phone: %s\n", a.ContactPhone())
	if email := a.ContactEmail(); email != "" {
		fmt.Fprintf(&b, "Email: %s\n", email)
	}
	if a.IsLinked() {
		fmt.Fprintf(&b, "NRC: %s\n", *a.PatientNRC)
	}
	fmt.Fprintf(&b, "Service: %s\n", serviceLabel(a.Service))
	fmt.Fprintf(&b, "Date: %s", a.DateString())
	if a.AppointmentTime != "" {
		fmt.Fprintf(&b, " %s", a.AppointmentTime)
	}
	return b.String()
}

func serviceLabel(service string) string {
	if service == "" {
		return "your visit"
	}
	return service
}

var _ INotificationService = (*NotificationService)(nil)
