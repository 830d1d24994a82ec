package list_closed_days

import (
	"context"

	"github.com/nguyenhau8209/PetHaven/internal/service/schedule/models"
)

type ScheduleService interface {
	ListClosedDays(ctx context.Context) (*models.ClosedDaysResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
