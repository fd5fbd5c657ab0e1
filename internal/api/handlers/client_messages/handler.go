package client_messages

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/notifications"
)

const (
	msgInvalidUserID      = "некорректный ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidText        = "сообщение пустое или слишком длинное"
	msgDeliveryFailed     = "не удалось доставить сообщение"
)

// SendMessageRequest HTTP request model
type SendMessageRequest struct {
	Text string `json:"text"`
}

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/clients/{userId}/messages
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	var req SendMessageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/clients/{id}/messages - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SendToClient(r.Context(), userID, req.Text); err != nil {
		switch {
		case errors.Is(err, notifications.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidText)
		case errors.Is(err, notifications.ErrDeliveryFailed):
			h.logger.Warn("POST /admin/clients/{id}/messages - Delivery failed: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgDeliveryFailed)
		default:
			h.logger.Error("POST /admin/clients/{id}/messages - Failed to send: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/clients/{id}/messages - Message sent: user_id=%d", userID)
	w.WriteHeader(http.StatusNoContent)
}
