package reset_schedule

import "context"

type ScheduleService interface {
	ResetSchedule(ctx context.Context) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
