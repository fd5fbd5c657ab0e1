package manage_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/inventory"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidSlot        = "некорректный слот: нужны дата, время HH:MM и ID мастера"
	msgDayNotFound        = "рабочий день не найден"
	msgDayHasBookings     = "на этот день есть записи, сначала отмените их"
	msgSlotNotFound       = "слот не найден"
	msgSlotBooked         = "слот занят, сначала отмените запись"
	msgMasterNotFound     = "мастер не найден или неактивен"
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

// HandleAddDay POST /api/v1/admin/working-days
// Повторное добавление дня не создает дубликатов слотов
func (h *Handler) HandleAddDay(w http.ResponseWriter, r *http.Request) {
	var req AddDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/working-days - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := handlers.ParseDate(req.Date)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	created, err := h.service.AddWorkingDay(r.Context(), date)
	if err != nil {
		h.respondError(w, "POST /admin/working-days", err)
		return
	}

	h.logger.Info("POST /admin/working-days - Day added: date=%s, slots=%d", req.Date, created)
	handlers.RespondJSON(w, http.StatusCreated, AddDayResponse{Date: req.Date, SlotsCreated: created})
}

// HandleCloseDay PATCH /api/v1/admin/working-days/{date}
func (h *Handler) HandleCloseDay(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req CloseDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || req.Closed == nil {
		h.logger.Warn("PATCH /admin/working-days/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.CloseDay(r.Context(), date, *req.Closed); err != nil {
		h.respondError(w, "PATCH /admin/working-days/{date}", err)
		return
	}

	h.logger.Info("PATCH /admin/working-days/{date} - Day updated: date=%s, closed=%t",
		date.Format(domain.DateFormat), *req.Closed)
	w.WriteHeader(http.StatusNoContent)
}

// HandleRemoveDay DELETE /api/v1/admin/working-days/{date}
func (h *Handler) HandleRemoveDay(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.RemoveWorkingDay(r.Context(), date); err != nil {
		h.respondError(w, "DELETE /admin/working-days/{date}", err)
		return
	}

	h.logger.Info("DELETE /admin/working-days/{date} - Day removed: date=%s", date.Format(domain.DateFormat))
	w.WriteHeader(http.StatusNoContent)
}

// HandleDaySlots GET /api/v1/admin/working-days/{date}/slots
func (h *Handler) HandleDaySlots(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	slots, err := h.service.ListDaySlots(r.Context(), date)
	if err != nil {
		h.respondError(w, "GET /admin/working-days/{date}/slots", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromSlots(slots))
}

// HandleAddSlot POST /api/v1/admin/slots
func (h *Handler) HandleAddSlot(w http.ResponseWriter, r *http.Request) {
	var req SlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	key, err := req.ToKey()
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	if err := h.service.AddTimeSlot(r.Context(), key); err != nil {
		h.respondError(w, "POST /admin/slots", err)
		return
	}

	h.logger.Info("POST /admin/slots - Slot added: %s", key)
	w.WriteHeader(http.StatusCreated)
}

// HandleRemoveSlot DELETE /api/v1/admin/slots
// Query params: date, time, masterId
func (h *Handler) HandleRemoveSlot(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	masterID, _ := strconv.ParseInt(query.Get("masterId"), 10, 64)
	req := SlotRequest{Date: query.Get("date"), Time: query.Get("time"), MasterID: masterID}

	key, err := req.ToKey()
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	if err := h.service.RemoveTimeSlot(r.Context(), key); err != nil {
		h.respondError(w, "DELETE /admin/slots", err)
		return
	}

	h.logger.Info("DELETE /admin/slots - Slot removed: %s", key)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, inventory.ErrDayNotFound):
		handlers.RespondNotFound(w, msgDayNotFound)
	case errors.Is(err, inventory.ErrDayHasBookings):
		h.logger.Warn("%s - Day has bookings", route)
		handlers.RespondConflict(w, msgDayHasBookings)
	case errors.Is(err, inventory.ErrSlotNotFound):
		handlers.RespondNotFound(w, msgSlotNotFound)
	case errors.Is(err, inventory.ErrSlotBooked):
		h.logger.Warn("%s - Slot is booked", route)
		handlers.RespondConflict(w, msgSlotBooked)
	case errors.Is(err, inventory.ErrMasterNotFound):
		handlers.RespondNotFound(w, msgMasterNotFound)
	case errors.Is(err, inventory.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
	default:
		h.logger.Error("%s - Inventory error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
