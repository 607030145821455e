// AngelaMos | 2026
// dto.go

package rating

import "time"

type CreateRatingRequest struct {
	Score   int    `json:"score"   validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"omitempty,max=500"`
}

type UpdateRatingRequest struct {
	Score   *int    `json:"score,omitempty"   validate:"omitempty,gte=1,lte=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=500"`
}

func (r *UpdateRatingRequest) ApplyTo(rating *Rating) {
	if r.Score != nil {
		rating.Score = *r.Score
	}
	if r.Comment != nil {
		rating.Comment = *r.Comment
	}
}

type RatingResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RatingWithUserResponse struct {
	RatingResponse
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type RatingStatsResponse struct {
	ProductID    int64       `json:"product_id"`
	Average      float64     `json:"average"`
	Total        int         `json:"total"`
	Distribution map[int]int `json:"distribution"`
}

func ToRatingResponse(r *Rating) RatingResponse {
	return RatingResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		ProductID: r.ProductID,
		Score:     r.Score,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func ToRatingWithUserResponseList(
	ratings []RatingWithUser,
) []RatingWithUserResponse {
	responses := make([]RatingWithUserResponse, 0, len(ratings))
	for i := range ratings {
		responses = append(responses, RatingWithUserResponse{
			RatingResponse: ToRatingResponse(&ratings[i].Rating),
			Username:       ratings[i].Username,
			FirstName:      ratings[i].FirstName,
			LastName:       ratings[i].LastName,
		})
	}
	return responses
}

func ToRatingResponseList(ratings []Rating) []RatingResponse {
	responses := make([]RatingResponse, 0, len(ratings))
	for i := range ratings {
		responses = append(responses, ToRatingResponse(&ratings[i]))
	}
	return responses
}
