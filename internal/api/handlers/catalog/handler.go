package catalog

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	catalogService "github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
)

const (
	msgInvalidID          = "некорректный идентификатор"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные"
	msgHallNotFound       = "зал не найден"
	msgMasterNotFound     = "мастер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgDuplicateName      = "такое название уже существует"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleListHalls GET /api/v1/halls
func (h *Handler) HandleListHalls(w http.ResponseWriter, r *http.Request) {
	halls, err := h.service.ListHalls(r.Context())
	if err != nil {
		h.respondError(w, "GET /halls", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromHalls(halls))
}

// HandleListMasters GET /api/v1/halls/{hallId}/masters
func (h *Handler) HandleListMasters(w http.ResponseWriter, r *http.Request) {
	hallID, err := handlers.PathInt64(r, "hallId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	masters, err := h.service.ListMasters(r.Context(), hallID)
	if err != nil {
		h.respondError(w, "GET /halls/{id}/masters", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromMasters(masters))
}

// HandleListServices GET /api/v1/halls/{hallId}/services
func (h *Handler) HandleListServices(w http.ResponseWriter, r *http.Request) {
	hallID, err := handlers.PathInt64(r, "hallId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	services, err := h.service.ListServices(r.Context(), hallID)
	if err != nil {
		h.respondError(w, "GET /halls/{id}/services", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromServices(services))
}

// HandleRenameHall PATCH /api/v1/admin/halls/{hallId}
func (h *Handler) HandleRenameHall(w http.ResponseWriter, r *http.Request) {
	hallID, err := handlers.PathInt64(r, "hallId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req RenameHallRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/halls/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.RenameHall(r.Context(), hallID, req.Name); err != nil {
		h.respondError(w, "PATCH /admin/halls/{id}", err)
		return
	}

	h.logger.Info("PATCH /admin/halls/{id} - Hall renamed: hall_id=%d", hallID)
	handlers.RespondJSON(w, http.StatusOK, HallResponse{ID: hallID, Name: req.Name})
}

// HandleAddMaster POST /api/v1/admin/masters
func (h *Handler) HandleAddMaster(w http.ResponseWriter, r *http.Request) {
	var req AddMasterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/masters - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	master, err := h.service.AddMaster(r.Context(), req.Name, req.HallID)
	if err != nil {
		h.respondError(w, "POST /admin/masters", err)
		return
	}

	h.logger.Info("POST /admin/masters - Master added: master_id=%d, hall_id=%d", master.ID, master.HallID)
	handlers.RespondJSON(w, http.StatusCreated, FromMaster(master))
}

// HandleDeactivateMaster PATCH /api/v1/admin/masters/{masterId}/deactivate
func (h *Handler) HandleDeactivateMaster(w http.ResponseWriter, r *http.Request) {
	masterID, err := handlers.PathInt64(r, "masterId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.DeactivateMaster(r.Context(), masterID); err != nil {
		h.respondError(w, "PATCH /admin/masters/{id}/deactivate", err)
		return
	}

	h.logger.Info("PATCH /admin/masters/{id}/deactivate - Master deactivated: master_id=%d", masterID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddService POST /api/v1/admin/services
func (h *Handler) HandleAddService(w http.ResponseWriter, r *http.Request) {
	var req AddServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	service, err := h.service.AddService(r.Context(), req.ToDomain())
	if err != nil {
		h.respondError(w, "POST /admin/services", err)
		return
	}

	h.logger.Info("POST /admin/services - Service added: service_id=%d, hall_id=%d", service.ID, service.HallID)
	handlers.RespondJSON(w, http.StatusCreated, FromService(service))
}

// HandleUpdatePrice PATCH /api/v1/admin/services/{serviceId}/price
func (h *Handler) HandleUpdatePrice(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req UpdatePriceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || req.Price == nil {
		h.logger.Warn("PATCH /admin/services/{id}/price - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.UpdateServicePrice(r.Context(), serviceID, *req.Price); err != nil {
		h.respondError(w, "PATCH /admin/services/{id}/price", err)
		return
	}

	h.logger.Info("PATCH /admin/services/{id}/price - Price updated: service_id=%d, price=%d", serviceID, *req.Price)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, catalogService.ErrHallNotFound):
		handlers.RespondNotFound(w, msgHallNotFound)
	case errors.Is(err, catalogService.ErrMasterNotFound):
		handlers.RespondNotFound(w, msgMasterNotFound)
	case errors.Is(err, catalogService.ErrServiceNotFound):
		handlers.RespondNotFound(w, msgServiceNotFound)
	case errors.Is(err, catalogService.ErrDuplicateName):
		handlers.RespondConflict(w, msgDuplicateName)
	case errors.Is(err, catalogService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)
	default:
		h.logger.Error("%s - Catalog error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
