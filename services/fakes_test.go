package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"luax.health/models"
	"luax.health/pkg/mailer"
	"luax.health/repositories"
)

// memoryPatients is an in-memory IPatientRepository.
type memoryPatients struct {
	mu      sync.Mutex
	byNRC   map[string]*models.Patient
	creates int
}

func newMemoryPatients() *memoryPatients {
	return &memoryPatients{byNRC: map[string]*models.Patient{}}
}

func (m *memoryPatients) Create(_ context.Context, patient *models.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byNRC[patient.NRC]; ok {
		return repositories.ErrDuplicateKey
	}
	for _, p := range m.byNRC {
		if p.Email == patient.Email {
			return repositories.ErrDuplicateKey
		}
	}
	cp := *patient
	cp.CreatedAt = time.Now()
	m.byNRC[patient.NRC] = &cp
	m.creates++
	return nil
}

func (m *memoryPatients) FindByNRC(_ context.Context, nrc string) (*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.byNRC[nrc]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *memoryPatients) FindByEmail(_ context.Context, email string) (*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byNRC {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memoryPatients) ExistsByNRC(ctx context.Context, nrc string) (bool, error) {
	_, err := m.FindByNRC(ctx, nrc)
	return err == nil, nil
}

func (m *memoryPatients) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.FindByEmail(ctx, email)
	return err == nil, nil
}

func (m *memoryPatients) Search(_ context.Context, query string) ([]models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := strings.ToLower(query)
	var out []models.Patient
	for _, p := range m.byNRC {
		if q == "" || strings.Contains(strings.ToLower(p.Name+" "+p.Email+" "+p.NRC), q) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NRC < out[j].NRC })
	return out, nil
}

func (m *memoryPatients) DeleteWithAppointments(_ context.Context, nrc string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byNRC[nrc]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.byNRC, nrc)
	return nil
}

// memoryAppointments is an in-memory IAppointmentRepository.
type memoryAppointments struct {
	mu       sync.Mutex
	nextID   uint
	rows     map[uint]*models.Appointment
	patients *memoryPatients
	writes   int
}

func newMemoryAppointments(patients *memoryPatients) *memoryAppointments {
	return &memoryAppointments{rows: map[uint]*models.Appointment{}, patients: patients}
}

func (m *memoryAppointments) load(a *models.Appointment) *models.Appointment {
	cp := *a
	if cp.IsLinked() && m.patients != nil {
		if p, err := m.patients.FindByNRC(context.Background(), *cp.PatientNRC); err == nil {
			cp.Patient = p
		}
	}
	return &cp
}

func (m *memoryAppointments) Create(_ context.Context, a *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	a.ID = m.nextID
	a.CreatedAt = time.Now().Add(time.Duration(m.nextID) * time.Millisecond)
	cp := *a
	cp.Patient = nil
	m.rows[a.ID] = &cp
	m.writes++
	return nil
}

func (m *memoryAppointments) FindByID(_ context.Context, id uint) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.rows[id]; ok {
		return m.load(a), nil
	}
	return nil, repositories.ErrNotFound
}

func (m *memoryAppointments) FindByIDForPatient(ctx context.Context, id uint, nrc string) (*models.Appointment, error) {
	a, err := m.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.IsLinked() || *a.PatientNRC != nrc {
		return nil, repositories.ErrNotFound
	}
	return a, nil
}

func (m *memoryAppointments) FindLatestByPhone(_ context.Context, phone string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *models.Appointment
	for _, a := range m.rows {
		if a.Phone == phone && (latest == nil || a.CreatedAt.After(latest.CreatedAt)) {
			latest = a
		}
	}
	if latest == nil {
		return nil, repositories.ErrNotFound
	}
	return m.load(latest), nil
}

func (m *memoryAppointments) ListByPatient(_ context.Context, nrc string) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, a := range m.rows {
		if a.IsLinked() && *a.PatientNRC == nrc {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DateString() != out[j].DateString() {
			return out[i].DateString() < out[j].DateString()
		}
		return out[i].AppointmentTime < out[j].AppointmentTime
	})
	return out, nil
}

func (m *memoryAppointments) LastCompletedDate(ctx context.Context, nrc string) (*time.Time, error) {
	list, _ := m.ListByPatient(ctx, nrc)
	var last *time.Time
	for _, a := range list {
		if a.Status == models.StatusCompleted {
			d := a.Date()
			last = &d
		}
	}
	return last, nil
}

func (m *memoryAppointments) ListAll(_ context.Context) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Appointment, 0, len(m.rows))
	for _, a := range m.rows {
		out = append(out, *m.load(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryAppointments) UpdateStatus(_ context.Context, id uint, status models.AppointmentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.Status = status
	m.writes++
	return nil
}

func (m *memoryAppointments) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.rows, id)
	m.writes++
	return nil
}

func (m *memoryAppointments) MarkAllRead(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, a := range m.rows {
		if !a.IsRead {
			a.IsRead = true
			n++
		}
	}
	return n, nil
}

func (m *memoryAppointments) CountUnread(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, a := range m.rows {
		if !a.IsRead {
			n++
		}
	}
	return n, nil
}

// recordingSender captures outgoing mail and optionally fails.
type recordingSender struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg mailer.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return r.err
}

func (r *recordingSender) to(addr string) []mailer.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []mailer.Message
	for _, m := range r.sent {
		if m.To == addr {
			out = append(out, m)
		}
	}
	return out
}

var (
	_ repositories.IPatientRepository     = (*memoryPatients)(nil)
	_ repositories.IAppointmentRepository = (*memoryAppointments)(nil)
)
