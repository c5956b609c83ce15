//go:build unit

package booking_test

import (
	"testing"
	"time"

	"crafty-kid/internal/domain/booking"
	"crafty-kid/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	scheduleID := uuid.New()
	parentID := uuid.New()
	amount, err := booking.NewMoney(4500)
	require.NoError(t, err)

	b := booking.NewBooking(scheduleID, parentID, amount)

	assert.NotEqual(t, uuid.Nil, b.ID())
	assert.Equal(t, scheduleID, b.ScheduleID())
	assert.Equal(t, parentID, b.ParentID())
	assert.Equal(t, int64(4500), b.Amount().Cents())
	assert.Equal(t, booking.StatusReserved, b.Status())
	assert.Nil(t, b.PaymentIntentID())
	assert.True(t, b.IsPayable())
}

func TestMoney(t *testing.T) {
	t.Run("zero amount is valid", func(t *testing.T) {
		m, err := booking.NewMoney(0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), m.Cents())
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		_, err := booking.NewMoney(-1)
		require.ErrorIs(t, err, booking.ErrNegativeAmount)
	})

	t.Run("dollars conversion", func(t *testing.T) {
		m, err := booking.NewMoney(4550)
		require.NoError(t, err)
		assert.InDelta(t, 45.50, m.Dollars(), 0.001)
	})
}

func TestCanTransition(t *testing.T) {
	testCases := []struct {
		name    string
		from    booking.Status
		to      booking.Status
		allowed bool
	}{
		{"reserved to paid", booking.StatusReserved, booking.StatusPaid, true},
		{"reserved to cancelled", booking.StatusReserved, booking.StatusCancelled, true},
		{"reserved to refunded", booking.StatusReserved, booking.StatusRefunded, false},
		{"paid to refunded", booking.StatusPaid, booking.StatusRefunded, true},
		{"paid to cancelled", booking.StatusPaid, booking.StatusCancelled, true},
		{"paid to reserved", booking.StatusPaid, booking.StatusReserved, false},
		{"cancelled is terminal", booking.StatusCancelled, booking.StatusReserved, false},
		{"refunded is terminal", booking.StatusRefunded, booking.StatusCancelled, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, booking.CanTransition(tc.from, tc.to))
		})
	}
}

func TestValidateCancellation(t *testing.T) {
	now := time.Now()

	t.Run("owner within window", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithScheduleStartsAt(now.Add(48 * time.Hour))
		agg, err := b.BuildDomain()
		require.NoError(t, err)

		assert.NoError(t, agg.ValidateCancellation(b.ParentID, b.ScheduleStartsAt, now))
	})

	t.Run("not owned by requester", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		agg, err := b.BuildDomain()
		require.NoError(t, err)

		err = agg.ValidateCancellation(uuid.New(), b.ScheduleStartsAt, now)
		assert.ErrorIs(t, err, booking.ErrNotOwned)
	})

	t.Run("already cancelled", func(t *testing.T) {
		b := builder.NewBookingBuilder().AsCancelled()
		agg, err := b.BuildDomain()
		require.NoError(t, err)

		err = agg.ValidateCancellation(b.ParentID, b.ScheduleStartsAt, now)
		assert.ErrorIs(t, err, booking.ErrAlreadyCancelled)
	})

	t.Run("refunded counts as cancelled", func(t *testing.T) {
		b := builder.NewBookingBuilder().AsRefunded()
		agg, err := b.BuildDomain()
		require.NoError(t, err)

		err = agg.ValidateCancellation(b.ParentID, b.ScheduleStartsAt, now)
		assert.ErrorIs(t, err, booking.ErrAlreadyCancelled)
	})

	t.Run("window boundary", func(t *testing.T) {
		testCases := []struct {
			name     string
			startsIn time.Duration
			errIs    error
		}{
			{"exactly 24 hours before", 24 * time.Hour, nil},
			{"just inside the window", 24*time.Hour - time.Second, booking.ErrWindowClosed},
			{"well inside the window", time.Hour, booking.ErrWindowClosed},
			{"schedule already started", -time.Hour, booking.ErrWindowClosed},
			{"well outside the window", 72 * time.Hour, nil},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				b := builder.NewBookingBuilder().WithScheduleStartsAt(now.Add(tc.startsIn))
				agg, err := b.BuildDomain()
				require.NoError(t, err)

				err = agg.ValidateCancellation(b.ParentID, b.ScheduleStartsAt, now)
				if tc.errIs == nil {
					assert.NoError(t, err)
				} else {
					assert.ErrorIs(t, err, tc.errIs)
				}
			})
		}
	})
}

func TestCancellationTarget(t *testing.T) {
	t.Run("paid and refunded ends refunded", func(t *testing.T) {
		agg, err := builder.NewBookingBuilder().AsPaid().BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, booking.StatusRefunded, agg.CancellationTarget(true))
	})

	t.Run("paid with failed refund ends cancelled", func(t *testing.T) {
		agg, err := builder.NewBookingBuilder().AsPaid().BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, agg.CancellationTarget(false))
	})

	t.Run("reserved always ends cancelled", func(t *testing.T) {
		agg, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, agg.CancellationTarget(false))
	})
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, booking.StatusReserved.IsActive())
	assert.True(t, booking.StatusPaid.IsActive())
	assert.False(t, booking.StatusCancelled.IsActive())
	assert.False(t, booking.StatusRefunded.IsActive())

	assert.True(t, booking.StatusCancelled.IsTerminal())
	assert.True(t, booking.StatusRefunded.IsTerminal())
	assert.False(t, booking.StatusReserved.IsTerminal())

	assert.False(t, booking.Status("unknown").IsValid())
}
