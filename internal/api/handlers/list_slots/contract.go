package list_slots

import (
	"context"

	"github.com/nguyenhau8209/PetHaven/internal/service/schedule/models"
)

type ScheduleService interface {
	ListSlots(ctx context.Context) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
