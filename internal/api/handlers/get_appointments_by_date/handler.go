package get_appointments_by_date

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	getAppointments "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_appointments"
	"github.com/m04kA/SMC-SalonService/internal/domain"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/appointments/date/{date}
// Записи на дату в порядке времени
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("GET /admin/appointments/date/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	appointments, err := h.service.GetByDate(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /admin/appointments/date/{date} - Failed to get appointments: date=%s, error=%v",
			vars["date"], err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/appointments/date/{date} - Retrieved %d appointments: date=%s",
		len(appointments), vars["date"])
	handlers.RespondJSON(w, http.StatusOK, getAppointments.FromDomainList(appointments))
}
