package toggle_slot_day

import (
	"context"

	toggleSlotDay "github.com/nguyenhau8209/PetHaven/internal/usecase/toggle_slot_day"
)

type ToggleSlotDayUseCase interface {
	Execute(ctx context.Context, req *toggleSlotDay.Request) (*toggleSlotDay.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
