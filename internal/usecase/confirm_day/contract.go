package confirm_day

import (
	"context"
	"time"

	"github.com/nguyenhau8209/PetHaven/internal/domain"
)

// BookingRepository интерфейс журнала бронирований
type BookingRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
