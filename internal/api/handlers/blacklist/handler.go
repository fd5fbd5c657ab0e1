package blacklist

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	blacklistService "github.com/m04kA/SMC-SalonBooking/internal/service/blacklist"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidUserID      = "некорректный ID пользователя"
	msgNotBlacklisted     = "пользователь не в черном списке"
)

type Handler struct {
	service BlacklistService
	logger  Logger
}

func NewHandler(service BlacklistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/admin/blacklist
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/blacklist - Failed to list blacklist: %v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromEntries(entries))
}

// HandleAdd POST /api/v1/admin/blacklist
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blacklist - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	entry, err := h.service.Add(r.Context(), req.UserID, req.Reason)
	if err != nil {
		if errors.Is(err, blacklistService.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidUserID)
			return
		}
		h.logger.Error("POST /admin/blacklist - Failed to add user=%d: %v", req.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/blacklist - User blacklisted: user_id=%d", entry.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromEntry(entry))
}

// HandleRemove DELETE /api/v1/admin/blacklist/{userId}
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	if err := h.service.Remove(r.Context(), userID); err != nil {
		if errors.Is(err, blacklistService.ErrNotBlacklisted) {
			handlers.RespondNotFound(w, msgNotBlacklisted)
			return
		}
		h.logger.Error("DELETE /admin/blacklist/{id} - Failed to remove user=%d: %v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/blacklist/{id} - User removed from blacklist: user_id=%d", userID)
	w.WriteHeader(http.StatusNoContent)
}
