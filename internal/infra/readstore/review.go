package readstore

import (
	"context"

	"github.com/google/uuid"

	"crafty-kid/internal/infra"
	"crafty-kid/internal/infra/db"
	"crafty-kid/internal/pkg/pgconv"
	"crafty-kid/internal/usecase/queries"
)

const findReviewByIDQuery = `
SELECT id, parent_id, target_type, target_id, rating, title, body, verified, created_at
FROM reviews
WHERE id = $1 AND flagged = FALSE`

// Flagged reviews stay out of every public surface: lists, totals and the
// denormalized instructor aggregates all share the flagged = FALSE predicate.
const findReviewsByTargetQuery = `
SELECT id, parent_id, target_type, target_id, rating, title, body, verified, created_at
FROM reviews
WHERE target_type = $1 AND target_id = $2 AND flagged = FALSE
ORDER BY created_at DESC, id DESC
LIMIT $3 OFFSET $4`

const countReviewsByTargetQuery = `
SELECT COUNT(*)
FROM reviews
WHERE target_type = $1 AND target_id = $2 AND flagged = FALSE`

const instructorRatingStatsQuery = `
SELECT id, rating_avg, rating_count
FROM instructors
WHERE id = $1`

type ReviewReadStore struct {
	db db.DBTX
}

func NewReviewReadStore(db db.DBTX) *ReviewReadStore {
	return &ReviewReadStore{db: db}
}

func (r *ReviewReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReviewView, error) {
	var view queries.ReviewView
	err := r.db.QueryRow(ctx, findReviewByIDQuery, id).Scan(
		&view.ID,
		&view.ParentID,
		&view.TargetType,
		&view.TargetID,
		&view.Rating,
		&view.Title,
		&view.Body,
		&view.Verified,
		&view.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("review not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find review by ID", err)
	}
	return &view, nil
}

func (r *ReviewReadStore) FindByTarget(ctx context.Context, targetType string, targetID uuid.UUID, limit, offset int32) ([]*queries.ReviewView, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, countReviewsByTargetQuery, targetType, targetID).Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count reviews", err)
	}

	rows, err := r.db.Query(ctx, findReviewsByTargetQuery, targetType, targetID, limit, offset)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to list reviews by target", err)
	}
	defer rows.Close()

	views := make([]*queries.ReviewView, 0)
	for rows.Next() {
		var view queries.ReviewView
		err := rows.Scan(
			&view.ID,
			&view.ParentID,
			&view.TargetType,
			&view.TargetID,
			&view.Rating,
			&view.Title,
			&view.Body,
			&view.Verified,
			&view.CreatedAt,
		)
		if err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan review row", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to iterate review rows", err)
	}
	return views, total, nil
}

func (r *ReviewReadStore) GetInstructorRatingStats(ctx context.Context, instructorID uuid.UUID) (*queries.InstructorRatingStats, error) {
	var stats queries.InstructorRatingStats
	err := r.db.QueryRow(ctx, instructorRatingStatsQuery, instructorID).Scan(
		&stats.InstructorID,
		&stats.RatingAvg,
		&stats.RatingCount,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("instructor not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get instructor rating stats", err)
	}
	return &stats, nil
}
