//go:build unit

package review_test

import (
	"strings"
	"testing"
	"time"

	"crafty-kid/internal/domain/review"
	"crafty-kid/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.ReviewBuilder)
	errIs  error
}

func TestReview(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewReviewBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.False(t, actual.CreatedAt().IsZero())
		assert.Equal(t, 5, actual.Rating().Value())
		assert.Equal(t, "Wonderful class", actual.Title().String())
		assert.True(t, actual.Verified())
		assert.False(t, actual.Flagged())
	})

	t.Run("rating validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "below minimum rating",
				mutate: func(b *builder.ReviewBuilder) { b.WithRating(0) },
				errIs:  review.ErrInvalidRating,
			},
			{
				name:   "minimum valid rating",
				mutate: func(b *builder.ReviewBuilder) { b.WithRating(1) },
			},
			{
				name:   "maximum valid rating",
				mutate: func(b *builder.ReviewBuilder) { b.WithRating(5) },
			},
			{
				name:   "above maximum rating",
				mutate: func(b *builder.ReviewBuilder) { b.WithRating(6) },
				errIs:  review.ErrInvalidRating,
			},
			{
				name:   "negative rating",
				mutate: func(b *builder.ReviewBuilder) { b.WithRating(-1) },
				errIs:  review.ErrInvalidRating,
			},
		})
	})

	t.Run("title validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "single character title",
				mutate: func(b *builder.ReviewBuilder) { b.WithTitle("a") },
			},
			{
				name: "maximum length title",
				mutate: func(b *builder.ReviewBuilder) {
					b.WithTitle(strings.Repeat("a", review.MaxTitleLength))
				},
			},
			{
				name:   "empty title",
				mutate: func(b *builder.ReviewBuilder) { b.WithTitle("") },
				errIs:  review.ErrEmptyTitle,
			},
			{
				name:   "whitespace only title",
				mutate: func(b *builder.ReviewBuilder) { b.WithTitle("   ") },
				errIs:  review.ErrEmptyTitle,
			},
			{
				name: "title exceeds maximum length",
				mutate: func(b *builder.ReviewBuilder) {
					b.WithTitle(strings.Repeat("a", review.MaxTitleLength+1))
				},
				errIs: review.ErrTitleTooLong,
			},
		})
	})

	t.Run("body validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name: "maximum length body",
				mutate: func(b *builder.ReviewBuilder) {
					b.WithBody(strings.Repeat("a", review.MaxBodyLength))
				},
			},
			{
				name:   "empty body",
				mutate: func(b *builder.ReviewBuilder) { b.WithBody("") },
				errIs:  review.ErrEmptyBody,
			},
			{
				name: "body exceeds maximum length",
				mutate: func(b *builder.ReviewBuilder) {
					b.WithBody(strings.Repeat("a", review.MaxBodyLength+1))
				},
				errIs: review.ErrBodyTooLong,
			},
		})
	})

	t.Run("verified tracks booking presence", func(t *testing.T) {
		verified, err := builder.NewReviewBuilder().BuildDomain()
		require.NoError(t, err)
		assert.True(t, verified.Verified())

		unverified, err := builder.NewReviewBuilder().WithoutBooking().BuildDomain()
		require.NoError(t, err)
		assert.False(t, unverified.Verified())
	})

	t.Run("title and body trimming", func(t *testing.T) {
		parentID := uuid.New()
		targetID := uuid.New()
		now := time.Now()

		actual, err := review.NewReview(parentID, review.TargetClass, targetID, nil, 4, "  Trimmed title  ", "  Trimmed body  ", now)
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.Equal(t, "Trimmed title", actual.Title().String())
		assert.Equal(t, "Trimmed body", actual.Body().String())
	})

	t.Run("UUID uniqueness", func(t *testing.T) {
		parentID := uuid.New()
		targetID := uuid.New()
		now := time.Now()

		review1, err1 := review.NewReview(parentID, review.TargetClass, targetID, nil, 5, "Great!", "Loved it.", now)
		review2, err2 := review.NewReview(parentID, review.TargetClass, targetID, nil, 5, "Great!", "Loved it.", now)

		require.NoError(t, err1)
		require.NoError(t, err2)

		assert.NotEqual(t, review1.ID(), review2.ID())
	})
}

func TestTargetType(t *testing.T) {
	t.Run("valid target types", func(t *testing.T) {
		for _, s := range []string{"class", "instructor", "venue"} {
			tt, err := review.NewTargetType(s)
			require.NoError(t, err)
			assert.Equal(t, s, tt.String())
		}
	})

	t.Run("invalid target type", func(t *testing.T) {
		_, err := review.NewTargetType("parent")
		require.ErrorIs(t, err, review.ErrInvalidTargetType)
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewReviewBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
