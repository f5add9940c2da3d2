package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentContactPrefersPatient(t *testing.T) {
	walkIn := Appointment{Name: "Jane Doe", Email: "jane@example.com", Phone: "0965000000"}
	assert.Equal(t, "Jane Doe", walkIn.ContactName())
	assert.Equal(t, "jane@example.com", walkIn.ContactEmail())
	assert.False(t, walkIn.IsLinked())

	nrc := "123456/10/1"
	linked := Appointment{
		PatientNRC: &nrc,
		Patient:    &Patient{NRC: nrc, Name: "Mary Phiri", Email: "mary@example.com", Phone: "0977000111"},
	}
	assert.True(t, linked.IsLinked())
	assert.Equal(t, "Mary Phiri", linked.ContactName())
	assert.Equal(t, "mary@example.com", linked.ContactEmail())
	assert.Equal(t, "0977000111", linked.ContactPhone())

	assert.Equal(t, "Unknown", (&Appointment{}).ContactName())
}

func TestAppointmentIsUpcoming(t *testing.T) {
	date, err := ParseDate("2025-03-01")
	require.NoError(t, err)

	a := Appointment{AppointmentDate: date, Status: StatusPending}
	assert.True(t, a.IsUpcoming("2025-03-01"))
	assert.True(t, a.IsUpcoming("2025-02-28"))
	assert.False(t, a.IsUpcoming("2025-03-02"))

	a.Status = StatusCompleted
	assert.False(t, a.IsUpcoming("2025-02-28"))
}

func TestStatusDomain(t *testing.T) {
	for _, s := range AppointmentStatuses {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, AppointmentStatus("pending").IsValid())
	assert.False(t, AppointmentStatus("").IsValid())
	assert.True(t, StatusConfirmed.IsOpen())
	assert.False(t, StatusCancelled.IsOpen())
}

func TestParseDateRejectsOtherLayouts(t *testing.T) {
	_, err := ParseDate("01/03/2025")
	assert.Error(t, err)
	d, err := ParseDate("2025-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2025-12-31", (&Appointment{AppointmentDate: d}).DateString())
}
