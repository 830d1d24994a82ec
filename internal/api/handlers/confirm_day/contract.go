package confirm_day

import (
	"context"

	confirmDay "github.com/nguyenhau8209/PetHaven/internal/usecase/confirm_day"
)

type ConfirmDayUseCase interface {
	Execute(ctx context.Context, req *confirmDay.Request) (*confirmDay.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
