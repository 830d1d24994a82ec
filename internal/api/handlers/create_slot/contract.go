package create_slot

import (
	"context"

	"github.com/nguyenhau8209/PetHaven/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateSlot(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
