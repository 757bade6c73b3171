package get_stats

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/stats"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeriod = "начало периода позже конца"
)

type Handler struct {
	service StatsService
	logger  Logger
}

func NewHandler(service StatsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// SummaryResponse HTTP response model сводки
type SummaryResponse struct {
	TodayAppointments int `json:"todayAppointments"`
	WeekAppointments  int `json:"weekAppointments"`
	PendingCount      int `json:"pendingCount"`
	TodayRevenue      int `json:"todayRevenue"` // в центах
}

// RevenueResponse HTTP response model выручки за период
type RevenueResponse struct {
	From         string `json:"from"`
	To           string `json:"to"`
	Appointments int    `json:"appointments"`
	Completed    int    `json:"completed"`
	Revenue      int    `json:"revenue"` // в центах
}

// Handle GET /api/v1/admin/stats
// Без параметров возвращает сводку на сегодня,
// с параметрами from и to возвращает выручку за период
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")

	if fromStr == "" && toStr == "" {
		h.handleSummary(w, r)
		return
	}

	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		h.logger.Warn("GET /admin/stats - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		h.logger.Warn("GET /admin/stats - Invalid to date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	revenue, err := h.service.GetRevenue(r.Context(), from, to)
	if err != nil {
		switch {
		case errors.Is(err, stats.ErrInvalidPeriod):
			h.logger.Warn("GET /admin/stats - Invalid period: from=%s, to=%s", fromStr, toStr)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /admin/stats - Failed to get revenue: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/stats - Revenue retrieved: from=%s, to=%s", fromStr, toStr)
	handlers.RespondJSON(w, http.StatusOK, &RevenueResponse{
		From:         revenue.From.Format(domain.DateFormat),
		To:           revenue.To.Format(domain.DateFormat),
		Appointments: revenue.Appointments,
		Completed:    revenue.Completed,
		Revenue:      revenue.Revenue,
	})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetSummary(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/stats - Failed to get summary: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/stats - Summary retrieved")
	handlers.RespondJSON(w, http.StatusOK, &SummaryResponse{
		TodayAppointments: summary.TodayAppointments,
		WeekAppointments:  summary.WeekAppointments,
		PendingCount:      summary.PendingCount,
		TodayRevenue:      summary.TodayRevenue,
	})
}
