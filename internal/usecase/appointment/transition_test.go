package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func bookOne(t *testing.T, repo *fakeRepo, slotID uint) *models.Appointment {
	t.Helper()
	uc := NewBookSlot(repo, nil)
	ap, err := uc.Execute(context.Background(), BookSlotInput{
		SlotID:     slotID,
		CustomerID: 1,
		ServiceIDs: []uint{haircutID},
	})
	require.NoError(t, err)
	return ap
}

func TestTransitionProgressionStampsTimestamps(t *testing.T) {
	repo := newFakeRepo()
	seedWorld(repo)
	session := seedSlottedSession(repo, 1, 7, tomorrow())
	ap := bookOne(t, repo, slotAtClock(t, repo, session.ID, "10:00").ID)
	uc := NewTransitionAppointment(repo, nil, nil)

	ap, err := uc.Execute(context.Background(), ap.ID, "checked_in")
	require.NoError(t, err)
	assert.NotNil(t, ap.CheckedInAt)

	ap, err = uc.Execute(context.Background(), ap.ID, "in_salon")
	require.NoError(t, err)
	assert.NotNil(t, ap.ServiceStartedAt)

	ap, err = uc.Execute(context.Background(), ap.ID, "completed")
	require.NoError(t, err)
	assert.NotNil(t, ap.CompletedAt)

	// Completion keeps the slot claimed and the capacity spent.
	assert.True(t, repo.slots[*ap.SlotID].IsBooked)
	assert.Equal(t, 150, repo.sessions[session.ID].RemainingMin)
}

func TestTransitionCancelReleasesSlotAndCapacity(t *testing.T) {
	repo := newFakeRepo()
	seedWorld(repo)
	session := seedSlottedSession(repo, 1, 7, tomorrow())
	ap := bookOne(t, repo, slotAtClock(t, repo, session.ID, "10:00").ID)
	require.Equal(t, 150, repo.sessions[session.ID].RemainingMin)
	uc := NewTransitionAppointment(repo, nil, nil)

	cancelled, err := uc.Execute(context.Background(), ap.ID, "canceled")
	require.NoError(t, err)

	assert.Equal(t, "canceled", cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.False(t, repo.slots[*ap.SlotID].IsBooked, "cancel must release the slot")
	assert.Equal(t, 180, repo.sessions[session.ID].RemainingMin, "cancel must restore capacity")
}

func TestTransitionCancelWalkInRestoresCapacity(t *testing.T) {
	repo := newFakeRepo()
	seedWorld(repo)
	session := seedWalkInSession(repo, 300)
	checkin := NewCheckInWalkIn(repo, nil, nil)

	result, err := checkin.Execute(context.Background(), CheckInWalkInInput{
		BarberID:   8,
		CustomerID: 1,
		ServiceIDs: []uint{haircutID},
	})
	require.NoError(t, err)
	require.Equal(t, 270, repo.sessions[session.ID].RemainingMin)

	uc := NewTransitionAppointment(repo, nil, nil)
	_, err = uc.Execute(context.Background(), result.Appointment.ID, "canceled")
	require.NoError(t, err)

	assert.Equal(t, 300, repo.sessions[session.ID].RemainingMin)
}

func TestTransitionRejectsBackwards(t *testing.T) {
	repo := newFakeRepo()
	seedWorld(repo)
	session := seedSlottedSession(repo, 1, 7, tomorrow())
	ap := bookOne(t, repo, slotAtClock(t, repo, session.ID, "10:00").ID)
	uc := NewTransitionAppointment(repo, nil, nil)

	_, err := uc.Execute(context.Background(), ap.ID, "completed")
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), ap.ID, "canceled")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))

	// The failed cancel must not have touched slot or capacity.
	assert.True(t, repo.slots[*ap.SlotID].IsBooked)
	assert.Equal(t, 150, repo.sessions[session.ID].RemainingMin)
}

func TestTransitionUnknownAppointment(t *testing.T) {
	repo := newFakeRepo()
	uc := NewTransitionAppointment(repo, nil, nil)

	_, err := uc.Execute(context.Background(), 42, "canceled")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}
