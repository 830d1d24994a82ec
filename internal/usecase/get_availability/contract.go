package get_availability

import (
	"context"
	"time"

	"github.com/nguyenhau8209/PetHaven/internal/domain"
)

// SlotRepository интерфейс каталога слотов
type SlotRepository interface {
	List(ctx context.Context) ([]*domain.Slot, error)
}

// BookingRepository интерфейс журнала бронирований
type BookingRepository interface {
	ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// DayOverrideRepository интерфейс переопределений статуса дат
type DayOverrideRepository interface {
	IsClosed(ctx context.Context, date time.Time) (bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
