package services

import (
	"context"
	"testing"
	"time"

	"luax.health/configs"
	"luax.health/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appointmentFixture struct {
	svc          *AppointmentService
	appointments *memoryAppointments
	patients     *memoryPatients
	sender       *recordingSender
	clinic       *configs.Clinic
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()
	patients := newMemoryPatients()
	appointments := newMemoryAppointments(patients)
	sender := &recordingSender{}
	clinic := configs.DefaultClinic()
	svc := NewAppointmentService(appointments, patients, NewNotificationService(sender, clinic, time.Second))
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }
	return &appointmentFixture{svc: svc, appointments: appointments, patients: patients, sender: sender, clinic: clinic}
}

func (f *appointmentFixture) addPatient(t *testing.T, nrc, email string) {
	t.Helper()
	require.NoError(t, f.patients.Create(context.Background(), &models.Patient{
		NRC: nrc, Name: "Mary Phiri", Email: email, Phone: "0977000111", PasswordHash: "x",
	}))
}

func TestCreateWalkInBookingAndStatusUpdate(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	appointment, err := f.svc.Create(ctx, BookingInput{
		Name: "Jane Doe", Email: "jane@example.com", Phone: "0965000000",
		Service: "Pharmacy", Date: "2025-03-01", Time: "09:00",
	})
	require.NoError(t, err)
	assert.NotZero(t, appointment.ID)
	assert.Equal(t, models.StatusPending, appointment.Status)
	assert.False(t, appointment.IsRead)
	assert.False(t, appointment.IsLinked())

	unread, err := f.svc.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	looked, err := f.svc.Lookup(ctx, "", "0965000000")
	require.NoError(t, err)
	assert.Equal(t, appointment.ID, looked.ID)

	before := len(f.sender.to("jane@example.com"))
	updated, err := f.svc.UpdateStatus(ctx, appointment.ID, "Confirmed", StatusNotice{Notify: true})
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, updated.Status)

	got, err := f.svc.Get(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, got.Status)
	assert.Len(t, f.sender.to("jane@example.com"), before+1)
}

func TestCreateSendsBookingNotices(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.svc.Create(context.Background(), BookingInput{
		Name: "Jane Doe", Email: "jane@example.com", Phone: "0965000000", Date: "2025-03-04",
	})
	require.NoError(t, err)
	assert.Len(t, f.sender.to(f.clinic.Email), 1)
	assert.Len(t, f.sender.to("jane@example.com"), 1)
}

func TestCreateValidation(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	cases := map[string]BookingInput{
		"missing phone": {Name: "Jane", Date: "2025-03-01"},
		"missing name":  {Phone: "0965000000", Date: "2025-03-01"},
		"missing date":  {Name: "Jane", Phone: "0965000000"},
		"bad date":      {Name: "Jane", Phone: "0965000000", Date: "01/03/2025"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, input)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.Zero(t, f.appointments.writes)
	assert.Empty(t, f.sender.sent)
}

func TestCreateLinkedBooking(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()
	f.addPatient(t, "123456/10/1", "mary@example.com")

	appointment, err := f.svc.Create(ctx, BookingInput{PatientNRC: "123456/10/1", Service: "Dental Services", Date: "2025-03-10"})
	require.NoError(t, err)
	require.True(t, appointment.IsLinked())
	assert.Equal(t, "Mary Phiri", appointment.ContactName())
	assert.Len(t, f.sender.to("mary@example.com"), 1)

	_, err = f.svc.Create(ctx, BookingInput{PatientNRC: "000/00/0", Date: "2025-03-10"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, ErrPatientNotFound, err)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	appointment, err := f.svc.Create(ctx, BookingInput{Name: "Jane", Phone: "0965000000", Date: "2025-03-01"})
	require.NoError(t, err)
	writes := f.appointments.writes

	_, err = f.svc.UpdateStatus(ctx, appointment.ID, "Archived", StatusNotice{Notify: true})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, writes, f.appointments.writes)

	got, err := f.svc.Get(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status)

	_, err = f.svc.UpdateStatus(ctx, 999, "Completed", StatusNotice{})
	assert.Equal(t, ErrAppointmentNotFound, err)
}

func TestUpdateStatusAllowsAnyTransition(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	appointment, err := f.svc.Create(ctx, BookingInput{Name: "Jane", Phone: "0965000000", Date: "2025-03-01"})
	require.NoError(t, err)

	for _, status := range []string{"Completed", "Pending", "Cancelled", "Confirmed"} {
		updated, err := f.svc.UpdateStatus(ctx, appointment.ID, status, StatusNotice{})
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentStatus(status), updated.Status)
	}
}

func TestCancelByPatient(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()
	f.addPatient(t, "123456/10/1", "mary@example.com")
	f.addPatient(t, "222222/22/2", "other@example.com")

	appointment, err := f.svc.Create(ctx, BookingInput{PatientNRC: "123456/10/1", Date: "2025-03-10"})
	require.NoError(t, err)

	_, err = f.svc.CancelByPatient(ctx, appointment.ID, "222222/22/2")
	assert.Equal(t, ErrAppointmentNotFound, err)

	clinicMail := len(f.sender.to(f.clinic.Email))
	cancelled, err := f.svc.CancelByPatient(ctx, appointment.ID, "123456/10/1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Len(t, f.sender.to(f.clinic.Email), clinicMail+1)

	_, err = f.svc.CancelByPatient(ctx, appointment.ID, "123456/10/1")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelByPatientRequiresPending(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()
	f.addPatient(t, "123456/10/1", "mary@example.com")

	appointment, err := f.svc.Create(ctx, BookingInput{PatientNRC: "123456/10/1", Date: "2025-03-10"})
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, appointment.ID, "Confirmed", StatusNotice{})
	require.NoError(t, err)

	_, err = f.svc.CancelByPatient(ctx, appointment.ID, "123456/10/1")
	assert.Equal(t, ErrOnlyPendingCancel, err)

	got, err := f.svc.Get(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, got.Status)
}

func TestAdminDashboardClearsUnread(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	for _, phone := range []string{"0965000001", "0965000002", "0965000003"} {
		_, err := f.svc.Create(ctx, BookingInput{Name: "Walk-in", Phone: phone, Date: "2025-03-02"})
		require.NoError(t, err)
	}
	unread, err := f.svc.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), unread)

	list, err := f.svc.AdminDashboard(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "0965000003", list[0].Phone)
	for _, a := range list {
		assert.True(t, a.IsRead)
	}

	unread, err = f.svc.CountUnread(ctx)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestLookup(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, BookingInput{Name: "Jane", Phone: "0965000000", Date: "2025-03-01"})
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, BookingInput{Name: "Jane", Phone: "0965000000", Date: "2025-03-08"})
	require.NoError(t, err)

	got, err := f.svc.Lookup(ctx, " 1 ", "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	got, err = f.svc.Lookup(ctx, "", "0965000000")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)

	_, err = f.svc.Lookup(ctx, "", "0000000000")
	assert.Equal(t, ErrAppointmentNotFound, err)

	for _, bad := range []string{"abc", "0", "-3", "999"} {
		_, err = f.svc.Lookup(ctx, bad, "")
		assert.Equal(t, ErrAppointmentNotFound, err, bad)
	}

	_, err = f.svc.Lookup(ctx, "", "  ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteAppointment(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	appointment, err := f.svc.Create(ctx, BookingInput{Name: "Jane", Phone: "0965000000", Date: "2025-03-01"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, appointment.ID))
	_, err = f.svc.Get(ctx, appointment.ID)
	assert.Equal(t, ErrAppointmentNotFound, err)
	assert.Equal(t, ErrAppointmentNotFound, f.svc.Delete(ctx, appointment.ID))
}

func TestPartitionForPatient(t *testing.T) {
	mk := func(date string, status models.AppointmentStatus) models.Appointment {
		d, err := models.ParseDate(date)
		require.NoError(t, err)
		return models.Appointment{AppointmentDate: d, Status: status}
	}
	list := []models.Appointment{
		mk("2025-02-20", models.StatusPending),
		mk("2025-03-01", models.StatusConfirmed),
		mk("2025-03-05", models.StatusCancelled),
		mk("2025-03-09", models.StatusPending),
	}
	today := time.Date(2025, 3, 1, 23, 30, 0, 0, time.UTC)

	upcoming, past := PartitionForPatient(list, today)
	require.Len(t, upcoming, 2)
	require.Len(t, past, 2)
	assert.Equal(t, "2025-03-01", upcoming[0].DateString())
	assert.Equal(t, "2025-03-09", upcoming[1].DateString())
	assert.Equal(t, "2025-02-20", past[0].DateString())
	assert.Equal(t, models.StatusCancelled, past[1].Status)
}

func TestPatientOverview(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()
	f.addPatient(t, "123456/10/1", "mary@example.com")

	done, err := f.svc.Create(ctx, BookingInput{PatientNRC: "123456/10/1", Date: "2025-01-15"})
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, done.ID, "Completed", StatusNotice{})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, BookingInput{PatientNRC: "123456/10/1", Date: "2025-03-20"})
	require.NoError(t, err)

	overview, err := f.svc.PatientOverview(ctx, "123456/10/1")
	require.NoError(t, err)
	assert.Len(t, overview.Upcoming, 1)
	assert.Len(t, overview.Past, 1)
	require.NotNil(t, overview.LastVisit)
	assert.Equal(t, "2025-01-15", overview.LastVisit.Format(models.DateLayout))

	empty, err := f.svc.PatientOverview(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty.Upcoming)
	assert.Nil(t, empty.LastVisit)
}
