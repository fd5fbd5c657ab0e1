package get_available_slots

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const (
	msgInvalidMasterID = "некорректный ID мастера"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidHorizon  = "некорректный горизонт, ожидается число дней от 1 до 365"

	maxHorizonDays = 365
)

type Handler struct {
	service InventoryService
	logger  Logger
}

func NewHandler(service InventoryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/{masterId}/available-slots
// Query params: date (required, YYYY-MM-DD)
// Закрытый или несуществующий день дает пустой список
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	masterID, err := handlers.PathInt64(r, "masterId")
	if err != nil {
		h.logger.Warn("GET /masters/{id}/available-slots - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	date, err := handlers.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /masters/{id}/available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	slots, err := h.service.ListAvailableSlots(r.Context(), date, masterID)
	if err != nil {
		h.logger.Error("GET /masters/{id}/available-slots - Failed to get slots: master_id=%d, error=%v",
			masterID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /masters/{id}/available-slots - Slots retrieved: master_id=%d, date=%s, slots_count=%d",
		masterID, date.Format(domain.DateFormat), len(slots))
	handlers.RespondJSON(w, http.StatusOK, FromSlots(date, masterID, slots))
}

// HandleWorkingDays GET /api/v1/working-days
// Query params: horizon (optional, дней вперед)
func (h *Handler) HandleWorkingDays(w http.ResponseWriter, r *http.Request) {
	horizon := 0
	if raw := r.URL.Query().Get("horizon"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxHorizonDays {
			h.logger.Warn("GET /working-days - Invalid horizon: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidHorizon)
			return
		}
		horizon = parsed
	}

	days, err := h.service.ListWorkingDays(r.Context(), horizon)
	if err != nil {
		h.logger.Error("GET /working-days - Failed to list working days: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDays(days))
}
