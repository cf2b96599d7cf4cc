package appointment

import (
	"context"
	"errors"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

var errFakeNotFound = errors.New("record not found")

// fakeRepo is an in-memory appointment repository. InTx snapshots and
// rolls back on error, mirroring the transactional contract.
type fakeRepo struct {
	barbers      map[uint]models.Barber
	customers    map[uint]models.Customer
	services     map[uint]models.Service
	sessions     map[uint]models.WorkingSession
	slots        map[uint]models.Slot
	appointments map[uint]models.Appointment

	nextAppointmentID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		barbers:      map[uint]models.Barber{},
		customers:    map[uint]models.Customer{},
		services:     map[uint]models.Service{},
		sessions:     map[uint]models.WorkingSession{},
		slots:        map[uint]models.Slot{},
		appointments: map[uint]models.Appointment{},
	}
}

var _ domain.Repository = (*fakeRepo)(nil)

func (f *fakeRepo) snapshot() *fakeRepo {
	c := newFakeRepo()
	for k, v := range f.barbers {
		c.barbers[k] = v
	}
	for k, v := range f.customers {
		c.customers[k] = v
	}
	for k, v := range f.services {
		c.services[k] = v
	}
	for k, v := range f.sessions {
		c.sessions[k] = v
	}
	for k, v := range f.slots {
		c.slots[k] = v
	}
	for k, v := range f.appointments {
		c.appointments[k] = v
	}
	c.nextAppointmentID = f.nextAppointmentID
	return c
}

func (f *fakeRepo) restore(s *fakeRepo) {
	f.barbers = s.barbers
	f.customers = s.customers
	f.services = s.services
	f.sessions = s.sessions
	f.slots = s.slots
	f.appointments = s.appointments
	f.nextAppointmentID = s.nextAppointmentID
}

func (f *fakeRepo) InTx(ctx context.Context, fn func(ctx context.Context, r domain.Repository) error) error {
	before := f.snapshot()
	if err := fn(ctx, f); err != nil {
		f.restore(before)
		return err
	}
	return nil
}

func (f *fakeRepo) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	b, ok := f.barbers[id]
	if !ok {
		return nil, errFakeNotFound
	}
	return &b, nil
}

func (f *fakeRepo) GetCustomer(_ context.Context, id uint) (*models.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, errFakeNotFound
	}
	return &c, nil
}

func (f *fakeRepo) GetServices(_ context.Context, salonID uint, ids []uint) ([]models.Service, error) {
	var out []models.Service
	for _, id := range ids {
		s, ok := f.services[id]
		if !ok || s.SalonID != salonID || !s.Active {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeRepo) GetSlot(_ context.Context, id uint) (*models.Slot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, errFakeNotFound
	}
	return &s, nil
}

func (f *fakeRepo) ClaimSlot(_ context.Context, slotID uint) (bool, error) {
	s, ok := f.slots[slotID]
	if !ok {
		return false, errFakeNotFound
	}
	if s.IsBooked {
		return false, nil
	}
	s.IsBooked = true
	f.slots[slotID] = s
	return true, nil
}

func (f *fakeRepo) ReleaseSlot(_ context.Context, slotID uint) error {
	s, ok := f.slots[slotID]
	if !ok {
		return errFakeNotFound
	}
	s.IsBooked = false
	f.slots[slotID] = s
	return nil
}

func (f *fakeRepo) FindFreeSlot(_ context.Context, barberID uint, date, start, end time.Time) (*models.Slot, error) {
	for _, s := range f.slots {
		session, ok := f.sessions[s.SessionID]
		if !ok || session.BarberID != barberID {
			continue
		}
		if !timezone.SameDate(s.Date, date) || s.IsBooked {
			continue
		}
		if s.StartTime.Equal(start) && s.EndTime.Equal(end) {
			return &s, nil
		}
	}
	return nil, errFakeNotFound
}

func (f *fakeRepo) GetSession(_ context.Context, id uint) (*models.WorkingSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, errFakeNotFound
	}
	return &s, nil
}

func (f *fakeRepo) GetSessionForBarberDate(_ context.Context, barberID uint, date time.Time) (*models.WorkingSession, error) {
	for _, s := range f.sessions {
		if s.BarberID == barberID && timezone.SameDate(s.Date, date) {
			return &s, nil
		}
	}
	return nil, errFakeNotFound
}

func (f *fakeRepo) AddSessionRemaining(_ context.Context, sessionID uint, deltaMin int) error {
	s, ok := f.sessions[sessionID]
	if !ok {
		return errFakeNotFound
	}
	s.RemainingMin += deltaMin
	f.sessions[sessionID] = s
	return nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	f.nextAppointmentID++
	ap.ID = f.nextAppointmentID
	f.appointments[ap.ID] = *ap
	return nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := f.appointments[id]
	if !ok {
		return nil, errFakeNotFound
	}
	return &ap, nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if _, ok := f.appointments[ap.ID]; !ok {
		return errFakeNotFound
	}
	f.appointments[ap.ID] = *ap
	return nil
}

func (f *fakeRepo) ListQueue(_ context.Context, barberID uint, date time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarberID != barberID || ap.Kind != models.AppointmentKindWalkIn {
			continue
		}
		if !timezone.SameDate(ap.Date, date) {
			continue
		}
		if ap.Status != string(domain.StatusCheckedIn) && ap.Status != string(domain.StatusInSalon) {
			continue
		}
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].CheckedInAt, out[j].CheckedInAt
		if ti == nil || tj == nil {
			return out[i].ID < out[j].ID
		}
		if ti.Equal(*tj) {
			return out[i].ID < out[j].ID
		}
		return ti.Before(*tj)
	})
	return out, nil
}
