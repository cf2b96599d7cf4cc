package session

import (
	"context"
	"errors"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

var errFakeNotFound = errors.New("record not found")

// fakeRepo is an in-memory schedule repository. InTx snapshots the state
// and rolls it back when fn fails, mirroring the transactional contract.
type fakeRepo struct {
	barbers      map[uint]models.Barber
	sessions     map[uint]models.WorkingSession
	slots        map[uint]models.Slot
	appointments map[uint]models.Appointment
	leaves       map[uint]models.LeaveRecord

	nextSessionID uint
	nextSlotID    uint
	nextLeaveID   uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		barbers:      map[uint]models.Barber{},
		sessions:     map[uint]models.WorkingSession{},
		slots:        map[uint]models.Slot{},
		appointments: map[uint]models.Appointment{},
		leaves:       map[uint]models.LeaveRecord{},
	}
}

var _ domain.Repository = (*fakeRepo)(nil)

func (f *fakeRepo) snapshot() *fakeRepo {
	c := newFakeRepo()
	for k, v := range f.barbers {
		c.barbers[k] = v
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
	for k, v := range f.leaves {
		c.leaves[k] = v
	}
	c.nextSessionID = f.nextSessionID
	c.nextSlotID = f.nextSlotID
	c.nextLeaveID = f.nextLeaveID
	return c
}

func (f *fakeRepo) restore(s *fakeRepo) {
	f.barbers = s.barbers
	f.sessions = s.sessions
	f.slots = s.slots
	f.appointments = s.appointments
	f.leaves = s.leaves
	f.nextSessionID = s.nextSessionID
	f.nextSlotID = s.nextSlotID
	f.nextLeaveID = s.nextLeaveID
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

func (f *fakeRepo) GetSession(_ context.Context, id uint) (*models.WorkingSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, errFakeNotFound
	}
	return &s, nil
}

func (f *fakeRepo) GetSessionForUpdate(ctx context.Context, id uint) (*models.WorkingSession, error) {
	return f.GetSession(ctx, id)
}

func (f *fakeRepo) ListSessionsForDate(_ context.Context, barberID uint, date time.Time) ([]models.WorkingSession, error) {
	var out []models.WorkingSession
	for _, s := range f.sessions {
		if s.BarberID == barberID && timezone.SameDate(s.Date, date) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (f *fakeRepo) CreateSession(_ context.Context, s *models.WorkingSession) error {
	f.nextSessionID++
	s.ID = f.nextSessionID
	f.sessions[s.ID] = *s
	return nil
}

func (f *fakeRepo) UpdateSession(_ context.Context, s *models.WorkingSession) error {
	if _, ok := f.sessions[s.ID]; !ok {
		return errFakeNotFound
	}
	f.sessions[s.ID] = *s
	return nil
}

func (f *fakeRepo) DeleteSession(_ context.Context, id uint) error {
	delete(f.sessions, id)
	return nil
}

func (f *fakeRepo) RestampSessions(_ context.Context, barberID uint, from time.Time, mode, category, position string) (int64, error) {
	var n int64
	for id, s := range f.sessions {
		if s.BarberID == barberID && !s.Date.Before(from) {
			s.Mode, s.Category, s.Position = mode, category, position
			f.sessions[id] = s
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) ListSlotsForSession(_ context.Context, sessionID uint) ([]models.Slot, error) {
	var out []models.Slot
	for _, s := range f.slots {
		if s.SessionID == sessionID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (f *fakeRepo) ListSlotsForSessionForUpdate(ctx context.Context, sessionID uint) ([]models.Slot, error) {
	return f.ListSlotsForSession(ctx, sessionID)
}

func (f *fakeRepo) CreateSlots(_ context.Context, slots []models.Slot) error {
	for i := range slots {
		f.nextSlotID++
		slots[i].ID = f.nextSlotID
		f.slots[slots[i].ID] = slots[i]
	}
	return nil
}

func (f *fakeRepo) DeleteSlotsIfUnbooked(_ context.Context, ids []uint) (int64, error) {
	var n int64
	for _, id := range ids {
		s, ok := f.slots[id]
		if !ok || s.IsBooked {
			continue
		}
		delete(f.slots, id)
		n++
	}
	return n, nil
}

func (f *fakeRepo) DeleteUnbookedSlots(_ context.Context, sessionID uint) error {
	for id, s := range f.slots {
		if s.SessionID == sessionID && !s.IsBooked {
			delete(f.slots, id)
		}
	}
	return nil
}

func (f *fakeRepo) CountBookedSlots(_ context.Context, sessionID uint) (int64, error) {
	var n int64
	for _, s := range f.slots {
		if s.SessionID == sessionID && s.IsBooked {
			n++
		}
	}
	return n, nil
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

func (f *fakeRepo) ListPreArrivalAppointments(_ context.Context, sessionID uint) ([]models.Appointment, error) {
	slotIDs := map[uint]bool{}
	for id, s := range f.slots {
		if s.SessionID == sessionID {
			slotIDs[id] = true
		}
	}

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.SlotID != nil && slotIDs[*ap.SlotID] && ap.Status == "appointment" {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if _, ok := f.appointments[ap.ID]; !ok {
		return errFakeNotFound
	}
	f.appointments[ap.ID] = *ap
	return nil
}

func (f *fakeRepo) CreateLeaveRecord(_ context.Context, lr *models.LeaveRecord) error {
	f.nextLeaveID++
	lr.ID = f.nextLeaveID
	f.leaves[lr.ID] = *lr
	return nil
}

func (f *fakeRepo) GetLeaveRecord(_ context.Context, id uint) (*models.LeaveRecord, error) {
	lr, ok := f.leaves[id]
	if !ok {
		return nil, errFakeNotFound
	}
	return &lr, nil
}

func (f *fakeRepo) UpdateLeaveRecord(_ context.Context, lr *models.LeaveRecord) error {
	if _, ok := f.leaves[lr.ID]; !ok {
		return errFakeNotFound
	}
	f.leaves[lr.ID] = *lr
	return nil
}
