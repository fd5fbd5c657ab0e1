package reviews

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	reviewsService "github.com/m04kA/SMC-SalonBooking/internal/service/reviews"
)

// AddReviewRequest HTTP request model
type AddReviewRequest struct {
	Name      string `json:"name"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"`
	BookingID *int64 `json:"bookingId,omitempty"`
}

func (r *AddReviewRequest) ToServiceRequest(userID int64) *reviewsService.AddRequest {
	return &reviewsService.AddRequest{
		UserID:    userID,
		Name:      r.Name,
		Rating:    r.Rating,
		Text:      r.Text,
		BookingID: r.BookingID,
	}
}

type ReviewResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	BookingID *int64    `json:"bookingId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// StatsResponse средняя оценка и распределение по оценкам
type StatsResponse struct {
	Average float64        `json:"average"`
	Count   int            `json:"count"`
	Ratings map[string]int `json:"ratings"` // {"5": 10, "4": 2}
}

func FromReview(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		Name:      r.Name,
		Rating:    r.Rating,
		Text:      r.Text,
		BookingID: r.BookingID,
		CreatedAt: r.CreatedAt,
	}
}

func FromReviews(reviews []*domain.Review) []ReviewResponse {
	resp := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		resp = append(resp, FromReview(r))
	}
	return resp
}
