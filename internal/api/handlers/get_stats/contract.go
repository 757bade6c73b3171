package get_stats

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/service/stats"
)

type StatsService interface {
	GetSummary(ctx context.Context) (*stats.Summary, error)
	GetRevenue(ctx context.Context, from, to time.Time) (*stats.PeriodRevenue, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
