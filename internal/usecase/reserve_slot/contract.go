package reserve_slot

import (
	"context"
	"time"

	"github.com/nguyenhau8209/PetHaven/internal/domain"
)

// SlotRepository интерфейс каталога слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
}

// BookingRepository интерфейс журнала бронирований
type BookingRepository interface {
	InsertPending(ctx context.Context, slotID int64, date time.Time, requesterID string) (*domain.Booking, error)
}

// DayOverrideRepository интерфейс переопределений статуса дат
type DayOverrideRepository interface {
	IsClosed(ctx context.Context, date time.Time) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
