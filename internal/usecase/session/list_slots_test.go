package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSlotsReturnsFutureOpenSlots(t *testing.T) {
	repo := newFakeRepo()
	s := seedSession(t, repo, tomorrow(t))
	uc := NewListSlots(repo)

	out, err := uc.Execute(context.Background(), s.BarberID, s.Date)
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, s.ID, out[0].Session.ID)
	assert.Len(t, out[0].Slots, 12, "a tomorrow session is entirely in the future")
}

func TestListSlotsEmptyForUnknownDate(t *testing.T) {
	repo := newFakeRepo()
	seedSession(t, repo, tomorrow(t))
	uc := NewListSlots(repo)

	out, err := uc.Execute(context.Background(), 7, tomorrow(t).AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.Empty(t, out)
}
