package commands

import (
	"context"

	"github.com/google/uuid"

	"crafty-kid/internal/domain/booking"
	"crafty-kid/internal/domain/review"
	"crafty-kid/internal/infra"
	"crafty-kid/internal/pkg/clock"
	"crafty-kid/internal/pkg/errs"
	"crafty-kid/internal/usecase/shared"
)

type SubmitReviewRequest struct {
	TargetType string
	TargetID   uuid.UUID
	BookingID  *uuid.UUID
	Rating     int
	Title      string
	Body       string
}

type SubmitReviewResult struct {
	ReviewID uuid.UUID
	Verified bool
}

type ReviewCommands interface {
	SubmitReview(ctx context.Context, req SubmitReviewRequest, parentID uuid.UUID) (*SubmitReviewResult, error)
	// FlagReview hides a review from all public surfaces and recomputes the
	// affected aggregate. Idempotent: flagging twice is a no-op.
	FlagReview(ctx context.Context, reviewID uuid.UUID) error
}

type reviewUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReviewUseCase(uow shared.UnitOfWork, clk clock.Clock) ReviewCommands {
	return &reviewUseCaseImpl{uow: uow, clock: clk}
}

func (uc *reviewUseCaseImpl) SubmitReview(ctx context.Context, req SubmitReviewRequest, parentID uuid.UUID) (*SubmitReviewResult, error) {
	targetType, err := review.NewTargetType(req.TargetType)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var result SubmitReviewResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if req.BookingID != nil {
			if err := uc.checkEligibility(ctx, tx, *req.BookingID, parentID, targetType, req.TargetID); err != nil {
				return err
			}
		}

		exists, err := tx.Reads().HasReview(ctx, parentID, targetType.String(), req.TargetID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if exists {
			return errs.ErrDuplicateReview
		}

		rev, err := review.NewReview(parentID, targetType, req.TargetID, req.BookingID, req.Rating, req.Title, req.Body, uc.clock.Now())
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		id, err := tx.Reviews().Create(ctx, tx.DB(), rev)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.ErrDuplicateReview
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		result = SubmitReviewResult{ReviewID: id, Verified: rev.Verified()}

		if targetType == review.TargetInstructor {
			return tx.RatingStats().RecalcInstructorRatingStats(ctx, tx.DB(), req.TargetID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// checkEligibility enforces the verified-review rule: the referenced booking
// must be the parent's own, PAID, for a class that actually resolves to the
// review target, and the class must have started.
func (uc *reviewUseCaseImpl) checkEligibility(
	ctx context.Context,
	tx shared.Tx,
	bookingID, parentID uuid.UUID,
	targetType review.TargetType,
	targetID uuid.UUID,
) error {
	snap, err := tx.Reads().BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrReviewNotEligible
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if snap.ParentID != parentID {
		return errs.ErrReviewNotEligible
	}
	if booking.Status(snap.Status) != booking.StatusPaid {
		return errs.ErrReviewNotEligible
	}
	if uc.clock.Now().Before(snap.ScheduleStartsAt) {
		return errs.ErrReviewNotEligible
	}

	switch targetType {
	case review.TargetClass:
		if snap.ClassID != targetID {
			return errs.ErrReviewNotEligible
		}
	case review.TargetInstructor:
		if snap.InstructorID != targetID {
			return errs.ErrReviewNotEligible
		}
	case review.TargetVenue:
		if snap.VenueID != targetID {
			return errs.ErrReviewNotEligible
		}
	}
	return nil
}

func (uc *reviewUseCaseImpl) FlagReview(ctx context.Context, reviewID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ReviewByID(ctx, reviewID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrReviewNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		flagged, err := tx.Reviews().Flag(ctx, tx.DB(), reviewID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !flagged {
			// Already flagged
			return nil
		}

		if snap.TargetType == review.TargetInstructor.String() {
			return tx.RatingStats().RecalcInstructorRatingStats(ctx, tx.DB(), snap.TargetID)
		}
		return nil
	})
}
