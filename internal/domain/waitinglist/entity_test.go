//go:build unit

package waitinglist_test

import (
	"testing"
	"time"

	"cabin-reserve/internal/domain/reservation"
	"cabin-reserve/internal/domain/waitinglist"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newPendingEntry(t *testing.T) *waitinglist.Entry {
	t.Helper()
	stay, err := reservation.NewStayPeriod(
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return waitinglist.NewEntry(uuid.New(), uuid.New(), stay, 2, 1, baseTime)
}

func newNotifiedEntry(t *testing.T, window time.Duration) *waitinglist.Entry {
	t.Helper()
	e := newPendingEntry(t)
	require.NoError(t, e.Notify(waitinglist.NewNotifyToken(), baseTime, window))
	return e
}

func TestNewEntry(t *testing.T) {
	e := newPendingEntry(t)

	assert.NotEqual(t, uuid.Nil, e.ID())
	assert.Equal(t, waitinglist.StatusPending, e.Status())
	assert.Nil(t, e.NotifyToken())
	assert.Nil(t, e.NotifyExpiresAt())
	assert.Equal(t, baseTime, e.CreatedAt())
	assert.Equal(t, baseTime, e.StatusChangedAt())
}

func TestNotify(t *testing.T) {
	t.Run("pending entry gets token and window", func(t *testing.T) {
		e := newPendingEntry(t)
		err := e.Notify("tok-1", baseTime, 24*time.Hour)
		require.NoError(t, err)

		assert.Equal(t, waitinglist.StatusNotified, e.Status())
		require.NotNil(t, e.NotifyToken())
		assert.Equal(t, "tok-1", *e.NotifyToken())
		require.NotNil(t, e.NotifyExpiresAt())
		assert.Equal(t, baseTime.Add(24*time.Hour), *e.NotifyExpiresAt())
		require.NotNil(t, e.NotifiedAt())
		assert.Equal(t, baseTime, *e.NotifiedAt())
	})

	t.Run("notified entry cannot be notified again", func(t *testing.T) {
		e := newNotifiedEntry(t, 24*time.Hour)
		err := e.Notify("tok-2", baseTime, 24*time.Hour)
		assert.ErrorIs(t, err, waitinglist.ErrNotPending)
	})
}

func TestClaim(t *testing.T) {
	t.Run("notified entry inside window", func(t *testing.T) {
		e := newNotifiedEntry(t, 24*time.Hour)
		resID := uuid.New()

		err := e.Claim(baseTime.Add(time.Hour), &resID)
		require.NoError(t, err)
		assert.Equal(t, waitinglist.StatusClaimed, e.Status())
		require.NotNil(t, e.ClaimedAt())
		require.NotNil(t, e.ClaimedReservationID())
		assert.Equal(t, resID, *e.ClaimedReservationID())
	})

	t.Run("pending entry cannot be claimed", func(t *testing.T) {
		e := newPendingEntry(t)
		err := e.Claim(baseTime, nil)
		assert.ErrorIs(t, err, waitinglist.ErrNotNotified)
	})

	t.Run("claim after window expires fails", func(t *testing.T) {
		e := newNotifiedEntry(t, time.Hour)
		err := e.Claim(baseTime.Add(2*time.Hour), nil)
		assert.ErrorIs(t, err, waitinglist.ErrWindowExpired)
		assert.Equal(t, waitinglist.StatusNotified, e.Status())
	})

	t.Run("claim at the exact deadline succeeds", func(t *testing.T) {
		e := newNotifiedEntry(t, time.Hour)
		err := e.Claim(baseTime.Add(time.Hour), nil)
		assert.NoError(t, err)
	})

	t.Run("double claim fails", func(t *testing.T) {
		e := newNotifiedEntry(t, 24*time.Hour)
		require.NoError(t, e.Claim(baseTime.Add(time.Hour), nil))
		err := e.Claim(baseTime.Add(2*time.Hour), nil)
		assert.ErrorIs(t, err, waitinglist.ErrAlreadyClaimed)
	})
}

func TestExpire(t *testing.T) {
	t.Run("notified entry expires", func(t *testing.T) {
		e := newNotifiedEntry(t, time.Hour)
		now := baseTime.Add(2 * time.Hour)
		require.NoError(t, e.Expire(now))
		assert.Equal(t, waitinglist.StatusExpired, e.Status())
		assert.Equal(t, now, e.StatusChangedAt())
	})

	t.Run("pending entry cannot expire", func(t *testing.T) {
		e := newPendingEntry(t)
		assert.ErrorIs(t, e.Expire(baseTime), waitinglist.ErrNotNotified)
	})

	t.Run("claimed entry cannot expire", func(t *testing.T) {
		e := newNotifiedEntry(t, 24*time.Hour)
		require.NoError(t, e.Claim(baseTime.Add(time.Hour), nil))
		assert.ErrorIs(t, e.Expire(baseTime.Add(2*time.Hour)), waitinglist.ErrNotNotified)
	})
}

func TestIsWindowExpired(t *testing.T) {
	e := newNotifiedEntry(t, time.Hour)

	assert.False(t, e.IsWindowExpired(baseTime))
	assert.False(t, e.IsWindowExpired(baseTime.Add(time.Hour))) // inclusive deadline
	assert.True(t, e.IsWindowExpired(baseTime.Add(time.Hour+time.Second)))

	assert.False(t, newPendingEntry(t).IsWindowExpired(baseTime))
}

func TestNewNotifyToken(t *testing.T) {
	a := waitinglist.NewNotifyToken()
	b := waitinglist.NewNotifyToken()

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, waitinglist.StatusClaimed.IsTerminal())
	assert.True(t, waitinglist.StatusExpired.IsTerminal())
	assert.True(t, waitinglist.StatusRemoved.IsTerminal())

	assert.False(t, waitinglist.StatusPending.IsTerminal())
	assert.False(t, waitinglist.StatusNotified.IsTerminal())
}
