package repository

import (
	"context"

	"crafty-kid/internal/domain/review"
	"crafty-kid/internal/infra"
	"crafty-kid/internal/infra/db"
	"crafty-kid/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReviewRepository struct{}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

const createReviewQuery = `
INSERT INTO reviews (id, parent_id, target_type, target_id, booking_id, rating, title, body, verified, flagged, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id`

// Create relies on the unique index over (parent_id, target_type, target_id)
// for the one-review-per-target rule.
func (r *ReviewRepository) Create(ctx context.Context, tx db.DBTX, rev *review.Review) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createReviewQuery,
		rev.ID(),
		rev.ParentID(),
		rev.TargetType().String(),
		rev.TargetID(),
		pgconv.UUIDPtrToPgtype(rev.BookingID()),
		rev.Rating().Value(),
		rev.Title().String(),
		rev.Body().String(),
		rev.Verified(),
		rev.Flagged(),
		rev.CreatedAt(),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("review already exists for target", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create review", err)
	}
	return id, nil
}

const flagReviewQuery = `
UPDATE reviews
SET flagged = TRUE
WHERE id = $1 AND flagged = FALSE`

func (r *ReviewRepository) Flag(ctx context.Context, tx db.DBTX, reviewID uuid.UUID) (bool, error) {
	tag, err := tx.Exec(ctx, flagReviewQuery, reviewID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to flag review", err)
	}
	return tag.RowsAffected() > 0, nil
}
