package reviews

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	reviewsService "github.com/m04kA/SMC-SalonBooking/internal/service/reviews"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRating      = "оценка должна быть от 1 до 5"
	msgInvalidInput       = "проверьте имя и текст отзыва"
	msgInvalidParams      = "некорректные параметры запроса"
	msgAlreadyReviewed    = "вы уже оставили отзыв по этой записи"
	msgBookingNotFound    = "запись не найдена"
	msgForbidden          = "доступ запрещен"
	msgReviewNotFound     = "отзыв не найден"
)

type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleAdd POST /api/v1/reviews
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AddReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reviews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	review, err := h.service.Add(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, reviewsService.ErrInvalidRating):
			handlers.RespondBadRequest(w, msgInvalidRating)
		case errors.Is(err, reviewsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, reviewsService.ErrAlreadyReviewed):
			handlers.RespondConflict(w, msgAlreadyReviewed)
		case errors.Is(err, reviewsService.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, reviewsService.ErrAccessDenied):
			h.logger.Warn("POST /reviews - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("POST /reviews - Failed to add review: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reviews - Review added: review_id=%d, user_id=%d, rating=%d", review.ID, userID, review.Rating)
	handlers.RespondJSON(w, http.StatusCreated, FromReview(review))
}

// HandleList GET /api/v1/admin/reviews
// Query params: limit, rating (optional)
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		limit = parsed
	}

	var rating *int
	if raw := query.Get("rating"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		rating = &parsed
	}

	reviews, err := h.service.List(r.Context(), limit, rating)
	if err != nil {
		if errors.Is(err, reviewsService.ErrInvalidRating) {
			handlers.RespondBadRequest(w, msgInvalidRating)
			return
		}
		h.logger.Error("GET /admin/reviews - Failed to list reviews: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromReviews(reviews))
}

// HandleStats GET /api/v1/admin/reviews/stats
// Query params: hallId (optional)
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	hallID, err := handlers.QueryInt64Ptr(r, "hallId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	summary, err := h.service.Average(r.Context(), hallID)
	if err != nil {
		h.logger.Error("GET /admin/reviews/stats - Failed to get average: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	buckets, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/reviews/stats - Failed to get histogram: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	resp := StatsResponse{
		Average: summary.Average,
		Count:   summary.Count,
		Ratings: make(map[string]int, len(buckets)),
	}
	for _, b := range buckets {
		resp.Ratings[strconv.Itoa(b.Rating)] = b.Count
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// HandleDelete DELETE /api/v1/admin/reviews/{reviewId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	reviewID, err := handlers.PathInt64(r, "reviewId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	if err := h.service.Delete(r.Context(), reviewID); err != nil {
		if errors.Is(err, reviewsService.ErrReviewNotFound) {
			handlers.RespondNotFound(w, msgReviewNotFound)
			return
		}
		h.logger.Error("DELETE /admin/reviews/{id} - Failed to delete review=%d: %v", reviewID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/reviews/{id} - Review deleted: review_id=%d", reviewID)
	w.WriteHeader(http.StatusNoContent)
}
