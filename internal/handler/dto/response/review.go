package response

import (
	"crafty-kid/internal/usecase/queries"
)

type ReviewResponse struct {
	ID         string `json:"id"`
	ParentID   string `json:"parent_id"`
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	Rating     int32  `json:"rating"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	Verified   bool   `json:"verified"`
	CreatedAt  int64  `json:"created_at"`
}

func FromReviewView(v *queries.ReviewView) *ReviewResponse {
	return &ReviewResponse{
		ID:         v.ID.String(),
		ParentID:   v.ParentID.String(),
		TargetType: v.TargetType,
		TargetID:   v.TargetID.String(),
		Rating:     v.Rating,
		Title:      v.Title,
		Body:       v.Body,
		Verified:   v.Verified,
		CreatedAt:  v.CreatedAt.Unix(),
	}
}

type ReviewPageResponse struct {
	Reviews []*ReviewResponse `json:"reviews"`
	Total   int64             `json:"total"`
	Page    int               `json:"page"`
	Limit   int               `json:"limit"`
	HasMore bool              `json:"hasMore"`
}

func FromReviewPage(p *queries.ReviewPage) *ReviewPageResponse {
	reviews := make([]*ReviewResponse, len(p.Reviews))
	for i, v := range p.Reviews {
		reviews[i] = FromReviewView(v)
	}
	return &ReviewPageResponse{
		Reviews: reviews,
		Total:   p.Total,
		Page:    p.Page,
		Limit:   p.Limit,
		HasMore: p.HasMore,
	}
}

type InstructorRatingStatsResponse struct {
	InstructorID string  `json:"instructor_id"`
	RatingAvg    float64 `json:"rating_avg"`
	RatingCount  int32   `json:"rating_count"`
}

func FromInstructorRatingStats(s *queries.InstructorRatingStats) *InstructorRatingStatsResponse {
	return &InstructorRatingStatsResponse{
		InstructorID: s.InstructorID.String(),
		RatingAvg:    s.RatingAvg,
		RatingCount:  s.RatingCount,
	}
}
