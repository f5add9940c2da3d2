package services

import (
	"context"
	"errors"
	"testing"

	"luax.health/configs"
	"luax.health/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walkIn(t *testing.T, email string) *models.Appointment {
	t.Helper()
	date, err := models.ParseDate("2025-03-01")
	require.NoError(t, err)
	return &models.Appointment{
		ID: 42, Name: "Jane Doe", Email: email, Phone: "0965000000",
		Service: "Pharmacy", AppointmentDate: date, Status: models.StatusConfirmed,
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("jane.doe@example.co.zm"))
	assert.True(t, IsValidEmail("a_b-c@host-name.org"))
	assert.False(t, IsValidEmail(""))
	assert.False(t, IsValidEmail("jane@localhost"))
	assert.False(t, IsValidEmail("jane doe@example.com"))
	assert.False(t, IsValidEmail("@example.com"))
}

func TestNotifySkipsInvalidRecipient(t *testing.T) {
	sender := &recordingSender{}
	svc := NewNotificationService(sender, configs.DefaultClinic(), 0)

	svc.Notify(context.Background(), "not-an-address", "subject", "body")
	svc.Notify(context.Background(), "", "subject", "body")
	assert.Empty(t, sender.sent)
}

func TestNotifySwallowsTransportErrors(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp: connection refused")}
	svc := NewNotificationService(sender, configs.DefaultClinic(), 0)

	assert.NotPanics(t, func() {
		svc.Notify(context.Background(), "jane@example.com", "subject", "body")
	})
	assert.Len(t, sender.sent, 1)
}

func TestBookingReceivedNotifiesClinicAndPatient(t *testing.T) {
	sender := &recordingSender{}
	clinic := configs.DefaultClinic()
	svc := NewNotificationService(sender, clinic, 0)

	svc.BookingReceived(context.Background(), walkIn(t, "jane@example.com"))

	inbox := sender.to(clinic.Email)
	require.Len(t, inbox, 1)
	assert.Contains(t, inbox[0].Subject, "#42")
	assert.Contains(t, inbox[0].Body, "Jane Doe")
	assert.Contains(t, inbox[0].Body, "0965000000")

	patient := sender.to("jane@example.com")
	require.Len(t, patient, 1)
	assert.Equal(t, "Your Appointment Request Has Been Received", patient[0].Subject)
}

func TestBookingReceivedWithoutPatientEmail(t *testing.T) {
	sender := &recordingSender{}
	clinic := configs.DefaultClinic()
	svc := NewNotificationService(sender, clinic, 0)

	svc.BookingReceived(context.Background(), walkIn(t, ""))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, clinic.Email, sender.sent[0].To)
}

func TestStatusChanged(t *testing.T) {
	ctx := context.Background()

	t.Run("no notice requested", func(t *testing.T) {
		sender := &recordingSender{}
		NewNotificationService(sender, configs.DefaultClinic(), 0).
			StatusChanged(ctx, walkIn(t, "jane@example.com"), StatusNotice{})
		assert.Empty(t, sender.sent)
	})

	t.Run("default text", func(t *testing.T) {
		sender := &recordingSender{}
		NewNotificationService(sender, configs.DefaultClinic(), 0).
			StatusChanged(ctx, walkIn(t, "jane@example.com"), StatusNotice{Notify: true})
		require.Len(t, sender.sent, 1)
		assert.Equal(t, "Appointment Status Update", sender.sent[0].Subject)
		assert.Contains(t, sender.sent[0].Body, "has been confirmed")
		assert.Contains(t, sender.sent[0].Body, "2025-03-01")
	})

	t.Run("custom message", func(t *testing.T) {
		sender := &recordingSender{}
		NewNotificationService(sender, configs.DefaultClinic(), 0).
			StatusChanged(ctx, walkIn(t, "jane@example.com"), StatusNotice{Notify: true, Message: "  See you at 9am.  "})
		require.Len(t, sender.sent, 1)
		assert.Equal(t, "See you at 9am.", sender.sent[0].Body)
	})
}

func TestCancelledByPatientAlertsClinic(t *testing.T) {
	sender := &recordingSender{}
	clinic := configs.DefaultClinic()
	svc := NewNotificationService(sender, clinic, 0)

	nrc := "123456/10/1"
	appointment := walkIn(t, "")
	appointment.PatientNRC = &nrc
	appointment.Patient = &models.Patient{NRC: nrc, Name: "Mary Phiri", Email: "mary@example.com"}
	svc.CancelledByPatient(context.Background(), appointment)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, clinic.Email, sender.sent[0].To)
	assert.Contains(t, sender.sent[0].Body, "NRC: 123456/10/1")
	assert.Contains(t, sender.sent[0].Body, "Mary Phiri")
}
