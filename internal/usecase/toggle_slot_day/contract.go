package toggle_slot_day

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
	FindActive(ctx context.Context, slotID int64, date time.Time) (*domain.Booking, error)
	InsertBlocked(ctx context.Context, slotID int64, date time.Time, requesterID string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
