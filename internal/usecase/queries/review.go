package queries

import (
	"context"
	"time"

	"crafty-kid/internal/infra"
	"crafty-kid/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReviewView struct {
	ID         uuid.UUID `json:"id"`
	ParentID   uuid.UUID `json:"parent_id"`
	TargetType string    `json:"target_type"`
	TargetID   uuid.UUID `json:"target_id"`
	Rating     int32     `json:"rating"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Verified   bool      `json:"verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewPage carries offset pagination results: the clients page with
// page/limit and render total/hasMore.
type ReviewPage struct {
	Reviews []*ReviewView `json:"reviews"`
	Total   int64         `json:"total"`
	Page    int           `json:"page"`
	Limit   int           `json:"limit"`
	HasMore bool          `json:"has_more"`
}

type InstructorRatingStats struct {
	InstructorID uuid.UUID `json:"instructor_id"`
	RatingAvg    float64   `json:"rating_avg"`
	RatingCount  int32     `json:"rating_count"`
}

type ReviewReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReviewView, error)
	// FindByTarget lists non-flagged reviews newest first and returns the
	// non-flagged total for the target.
	FindByTarget(ctx context.Context, targetType string, targetID uuid.UUID, limit, offset int32) ([]*ReviewView, int64, error)
	GetInstructorRatingStats(ctx context.Context, instructorID uuid.UUID) (*InstructorRatingStats, error)
}

type ReviewQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReviewView, error)
	ListByTarget(ctx context.Context, targetType string, targetID uuid.UUID, page, limit int) (*ReviewPage, error)
	GetInstructorRatingStats(ctx context.Context, instructorID uuid.UUID) (*InstructorRatingStats, error)
}

type reviewQueriesImpl struct {
	store ReviewReadStore
}

func NewReviewQueries(store ReviewReadStore) ReviewQueries {
	return &reviewQueriesImpl{store: store}
}

func (q *reviewQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReviewView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrReviewNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *reviewQueriesImpl) ListByTarget(ctx context.Context, targetType string, targetID uuid.UUID, page, limit int) (*ReviewPage, error) {
	page = ValidatePage(page)
	limit = ValidateLimit(limit)
	offset := (page - 1) * limit

	rows, total, err := q.store.FindByTarget(ctx, targetType, targetID, int32(limit), int32(offset))
	if err != nil {
		return nil, err
	}

	return &ReviewPage{
		Reviews: rows,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasMore: int64(offset+len(rows)) < total,
	}, nil
}

func (q *reviewQueriesImpl) GetInstructorRatingStats(ctx context.Context, instructorID uuid.UUID) (*InstructorRatingStats, error) {
	return q.store.GetInstructorRatingStats(ctx, instructorID)
}
