package reminder_failures

import (
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const (
	msgInvalidLimit = "некорректный limit"
	defaultLimit    = 50
)

type FailureResponse struct {
	ID        int64     `json:"id"`
	BookingID int64     `json:"bookingId"`
	UserID    int64     `json:"userId"`
	Message   string    `json:"message"`
	Reason    string    `json:"reason"`
	FailedAt  time.Time `json:"failedAt"`
}

type FailuresResponse struct {
	Pending  int               `json:"pending"`
	Failures []FailureResponse `json:"failures"`
}

type Handler struct {
	scheduler ReminderScheduler
	logger    Logger
}

func NewHandler(scheduler ReminderScheduler, logger Logger) *Handler {
	return &Handler{
		scheduler: scheduler,
		logger:    logger,
	}
}

// Handle GET /api/v1/admin/reminders/failures
// Недоставленные напоминания и число активных таймеров
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		limit = parsed
	}

	failures, err := h.scheduler.Failures(r.Context(), limit)
	if err != nil {
		h.logger.Error("GET /admin/reminders/failures - Failed to list failures: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FailuresResponse{
		Pending:  h.scheduler.Pending(),
		Failures: fromFailures(failures),
	})
}

func fromFailures(failures []*domain.ReminderFailure) []FailureResponse {
	resp := make([]FailureResponse, 0, len(failures))
	for _, f := range failures {
		resp = append(resp, FailureResponse(*f))
	}
	return resp
}
