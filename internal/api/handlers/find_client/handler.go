package find_client

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/clients"
)

const (
	msgMissingPhone   = "не указан телефон"
	msgClientNotFound = "клиент не найден"
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

// ClientResponse HTTP response model
type ClientResponse struct {
	ID        int64  `json:"id"`
	FullName  string `json:"fullName"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"createdAt"`
}

// Handle GET /api/v1/clients/{phone}
// Используется формой бронирования для автозаполнения имени постоянного клиента
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	phone := mux.Vars(r)["phone"]
	if phone == "" {
		h.logger.Warn("GET /clients/{phone} - Missing phone path parameter")
		handlers.RespondBadRequest(w, msgMissingPhone)
		return
	}

	client, err := h.service.GetByPhone(r.Context(), phone)
	if err != nil {
		switch {
		case errors.Is(err, clients.ErrClientNotFound):
			h.logger.Warn("GET /clients/{phone} - Client not found: phone=%s", phone)
			handlers.RespondNotFound(w, msgClientNotFound)

		default:
			h.logger.Error("GET /clients/{phone} - Failed to get client: phone=%s, error=%v", phone, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/{phone} - Client found: client_id=%d", client.ID)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(client))
}

// FromDomain converts a domain client to the HTTP response model
func FromDomain(c *domain.Client) *ClientResponse {
	return &ClientResponse{
		ID:        c.ID,
		FullName:  c.FullName,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
