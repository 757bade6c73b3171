package create_client

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/clients"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidClient      = "некорректные данные клиента"
	msgInvalidPhone       = "некорректный формат телефона"
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

// CreateClientRequest HTTP request model
type CreateClientRequest struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

// ClientResponse HTTP response model
type ClientResponse struct {
	ID        int64  `json:"id"`
	FullName  string `json:"fullName"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"createdAt"`
}

// Handle POST /api/v1/clients
// Повторная отправка с тем же телефоном возвращает существующего клиента
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /clients - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	client, err := h.service.FindOrCreate(r.Context(), req.FullName, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, clients.ErrInvalidPhone):
			h.logger.Warn("POST /clients - Invalid phone: phone=%s", req.Phone)
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, clients.ErrInvalidInput):
			h.logger.Warn("POST /clients - Invalid client data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidClient)

		default:
			h.logger.Error("POST /clients - Failed to create client: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /clients - Client resolved: client_id=%d", client.ID)
	handlers.RespondJSON(w, http.StatusOK, &ClientResponse{
		ID:        client.ID,
		FullName:  client.FullName,
		Phone:     client.Phone,
		CreatedAt: client.CreatedAt.Format(time.RFC3339),
	})
}
