package close_day

import (
	"context"

	"github.com/nguyenhau8209/PetHaven/internal/service/schedule/models"
)

type ScheduleService interface {
	CloseDay(ctx context.Context, req *models.DayRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
