package repository

import (
	"context"

	"crafty-kid/internal/infra"
	"crafty-kid/internal/infra/db"

	"github.com/google/uuid"
)

// SeatRepository is the seat ledger. Both mutations are single conditional
// UPDATE statements so two concurrent bookings can never both take the last
// seat (no read-then-write pair in handler code).
type SeatRepository struct{}

func NewSeatRepository() *SeatRepository {
	return &SeatRepository{}
}

const claimSeatQuery = `
UPDATE class_schedules
SET seats_remaining = seats_remaining - 1, updated_at = now()
WHERE id = $1 AND seats_remaining > 0`

func (r *SeatRepository) Claim(ctx context.Context, tx db.DBTX, scheduleID uuid.UUID) error {
	tag, err := tx.Exec(ctx, claimSeatQuery, scheduleID)
	if err != nil {
		return infra.WrapRepoErr("failed to claim seat", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("no seats available", nil, infra.KindConflict)
	}
	return nil
}

const releaseSeatQuery = `
UPDATE class_schedules
SET seats_remaining = seats_remaining + 1, updated_at = now()
WHERE id = $1 AND seats_remaining < seats_total`

// Release caps at seats_total; callers guarantee at most one release per
// claimed booking, the cap is the storage-level backstop for the
// 0 <= seats_remaining <= seats_total invariant.
func (r *SeatRepository) Release(ctx context.Context, tx db.DBTX, scheduleID uuid.UUID) error {
	if _, err := tx.Exec(ctx, releaseSeatQuery, scheduleID); err != nil {
		return infra.WrapRepoErr("failed to release seat", err)
	}
	return nil
}
