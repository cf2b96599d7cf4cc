package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestTransferToSlottedBarber(t *testing.T) {
	repo := newFakeRepo()
	seedWorld(repo)
	repo.barbers[9] = models.Barber{ID: 9, SalonID: 3, Name: "Sunil", Mode: "slotted"}

	source := seedSlottedSession(repo, 1, 7, tomorrow())
	target := seedSlottedSession(repo, 2, 9, tomorrow())

	oldSlot := slotAtClock(t, repo, source.ID, "10:00")
	ap := bookOne(t, repo, oldSlot.ID)
	uc := NewTransferAppointment(repo, nil, nil)

	moved, err := uc.Execute(context.Background(), ap.ID, 9)
	require.NoError(t, err)

	assert.Equal(t, uint(9), moved.BarberID)
	require.NotNil(t, moved.SlotID)
	assert.NotEqual(t, oldSlot.ID, *moved.SlotID)
	assert.Equal(t, "10:00", moved.StartTime.Format("15:04"))

	assert.False(t, repo.slots[oldSlot.ID].IsBooked, "source slot must be released")
	assert.True(t, repo.slots[*moved.SlotID].IsBooked)

	assert.Equal(t, 180, repo.sessions[source.ID].RemainingMin, "source capacity restored")
	assert.Equal(t, 150, repo.sessions[target.ID].RemainingMin, "target capacity claimed")
}

func TestTransferSlottedNoMatchingSlot(t *testing.T) {
	repo := newFakeRepo()
	seedWorld(repo)
	repo.barbers[9] = models.Barber{ID: 9, SalonID: 3, Name: "Sunil", Mode: "slotted"}

	source := seedSlottedSession(repo, 1, 7, tomorrow())
	target := seedSlottedSession(repo, 2, 9, tomorrow())

	// Occupy the target's matching slot.
	match := slotAtClock(t, repo, target.ID, "10:00")
	blocked := repo.slots[match.ID]
	blocked.IsBooked = true
	repo.slots[match.ID] = blocked

	oldSlot := slotAtClock(t, repo, source.ID, "10:00")
	ap := bookOne(t, repo, oldSlot.ID)
	uc := NewTransferAppointment(repo, nil, nil)

	_, err := uc.Execute(context.Background(), ap.ID, 9)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNoCapacity))

	// Nothing moved.
	after := repo.appointments[ap.ID]
	assert.Equal(t, uint(7), after.BarberID)
	assert.True(t, repo.slots[oldSlot.ID].IsBooked)
	assert.Equal(t, 150, repo.sessions[source.ID].RemainingMin)
}

func TestTransferToWalkInBarber(t *testing.T) {
	repo := newFakeRepo()
	seedWorld(repo)

	source := seedSlottedSession(repo, 1, 7, today())
	target := seedWalkInSession(repo, 300)

	oldSlot := slotAtClock(t, repo, source.ID, "10:00")
	ap := bookOne(t, repo, oldSlot.ID)
	uc := NewTransferAppointment(repo, nil, nil)

	moved, err := uc.Execute(context.Background(), ap.ID, 8)
	require.NoError(t, err)

	assert.Equal(t, uint(8), moved.BarberID)
	assert.Nil(t, moved.SlotID)
	assert.Equal(t, models.AppointmentKindWalkIn, moved.Kind)

	assert.False(t, repo.slots[oldSlot.ID].IsBooked)
	assert.Equal(t, 180, repo.sessions[source.ID].RemainingMin)
	assert.Equal(t, 270, repo.sessions[target.ID].RemainingMin)
}

func TestTransferWalkInInsufficientCapacity(t *testing.T) {
	repo := newFakeRepo()
	seedWorld(repo)

	source := seedSlottedSession(repo, 1, 7, today())
	seedWalkInSession(repo, 10) // less than the 30-minute haircut

	oldSlot := slotAtClock(t, repo, source.ID, "10:00")
	ap := bookOne(t, repo, oldSlot.ID)
	uc := NewTransferAppointment(repo, nil, nil)

	_, err := uc.Execute(context.Background(), ap.ID, 8)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNoCapacity))

	assert.True(t, repo.slots[oldSlot.ID].IsBooked)
	assert.Equal(t, 150, repo.sessions[source.ID].RemainingMin)
}

func TestTransferWalkInAppointmentToSlottedRejected(t *testing.T) {
	repo := newFakeRepo()
	seedWorld(repo)
	seedWalkInSession(repo, 300)
	seedSlottedSession(repo, 1, 7, today())

	checkin := NewCheckInWalkIn(repo, nil, nil)
	result, err := checkin.Execute(context.Background(), CheckInWalkInInput{
		BarberID:   8,
		CustomerID: 1,
		ServiceIDs: []uint{haircutID},
	})
	require.NoError(t, err)

	uc := NewTransferAppointment(repo, nil, nil)
	_, err = uc.Execute(context.Background(), result.Appointment.ID, 7)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNoCapacity))
}

func TestTransferTerminalAppointmentRejected(t *testing.T) {
	repo := newFakeRepo()
	seedWorld(repo)
	repo.barbers[9] = models.Barber{ID: 9, SalonID: 3, Name: "Sunil", Mode: "slotted"}
	source := seedSlottedSession(repo, 1, 7, tomorrow())
	seedSlottedSession(repo, 2, 9, tomorrow())

	ap := bookOne(t, repo, slotAtClock(t, repo, source.ID, "10:00").ID)

	transition := NewTransitionAppointment(repo, nil, nil)
	_, err := transition.Execute(context.Background(), ap.ID, "completed")
	require.NoError(t, err)

	uc := NewTransferAppointment(repo, nil, nil)
	_, err = uc.Execute(context.Background(), ap.ID, 9)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
}
