package repository

import (
	"context"

	"crafty-kid/internal/infra"
	"crafty-kid/internal/infra/db"

	"github.com/google/uuid"
)

type RatingStatsRepository struct{}

func NewRatingStatsRepository() *RatingStatsRepository {
	return &RatingStatsRepository{}
}

const recalcInstructorRatingStatsQuery = `
UPDATE instructors i
SET rating_avg   = COALESCE(s.avg_rating, 0),
    rating_count = COALESCE(s.review_count, 0),
    updated_at   = now()
FROM (
    SELECT AVG(rating)::float8 AS avg_rating, COUNT(*) AS review_count
    FROM reviews
    WHERE target_type = 'instructor' AND target_id = $1 AND flagged = FALSE
) s
WHERE i.id = $1`

// Full recomputation over non-flagged reviews, not an incremental update:
// O(n) per review but always consistent, including after a flag.
func (r *RatingStatsRepository) RecalcInstructorRatingStats(ctx context.Context, tx db.DBTX, instructorID uuid.UUID) error {
	if _, err := tx.Exec(ctx, recalcInstructorRatingStatsQuery, instructorID); err != nil {
		return infra.WrapRepoErr("failed to recalc instructor rating stats", err)
	}
	return nil
}
