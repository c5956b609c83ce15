package booking

import (
	"errors"
	"time"
)

var (
	ErrNegativeAmount = errors.New("amount cannot be negative")
	ErrWindowClosed   = errors.New("cancellation window closed")
)

// Cancellations must happen at least this far before the schedule starts.
const CancellationWindow = 24 * time.Hour

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Dollars() float64 {
	return float64(m.cents) / 100.0
}

// ValidateCancellationAt applies the strict "< 24h" rule on the wall-clock
// difference between now and the schedule start.
func ValidateCancellationAt(startsAt, now time.Time) error {
	if startsAt.Sub(now) < CancellationWindow {
		return ErrWindowClosed
	}
	return nil
}
