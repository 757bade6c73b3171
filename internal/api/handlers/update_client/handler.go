package update_client

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/clients"
)

const (
	msgInvalidClientID    = "некорректный ID клиента"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidClient      = "некорректные данные клиента"
	msgInvalidPhone       = "некорректный формат телефона"
	msgClientNotFound     = "клиент не найден"
)

type Handler struct {
	service ClientService
	logger  Logger
}

func NewHandler(service ClientService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// UpdateClientRequest HTTP request model
type UpdateClientRequest struct {
	FullName *string `json:"fullName,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

// ClientResponse HTTP response model
type ClientResponse struct {
	ID        int64  `json:"id"`
	FullName  string `json:"fullName"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"createdAt"`
}

// Handle PATCH /api/v1/admin/clients/{clientId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clientID, err := strconv.ParseInt(vars["clientId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/clients/{id} - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	var req UpdateClientRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/clients/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	updated, err := h.service.Update(r.Context(), clientID, domain.ClientPatch{
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, clients.ErrClientNotFound):
			h.logger.Warn("PATCH /admin/clients/{id} - Client not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, clients.ErrInvalidPhone):
			h.logger.Warn("PATCH /admin/clients/{id} - Invalid phone: client_id=%d", clientID)
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, clients.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/clients/{id} - Invalid client data: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidClient)

		default:
			h.logger.Error("PATCH /admin/clients/{id} - Failed to update client: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/clients/{id} - Client updated: client_id=%d", clientID)
	handlers.RespondJSON(w, http.StatusOK, &ClientResponse{
		ID:        updated.ID,
		FullName:  updated.FullName,
		Phone:     updated.Phone,
		CreatedAt: updated.CreatedAt.Format(time.RFC3339),
	})
}
