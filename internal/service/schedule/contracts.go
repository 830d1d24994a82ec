package schedule

import (
	"context"
	"time"

	"github.com/nguyenhau8209/PetHaven/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, s *domain.Slot) (*domain.Slot, error)
	List(ctx context.Context) ([]*domain.Slot, error)
	SetEnabled(ctx context.Context, id int64, enabled bool) error
	EnableAll(ctx context.Context) error
}

// DayOverrideRepository интерфейс репозитория переопределений рабочих дней
type DayOverrideRepository interface {
	CloseDay(ctx context.Context, date time.Time) error
	ReopenDay(ctx context.Context, date time.Time) error
	ReopenAll(ctx context.Context) error
	ListClosed(ctx context.Context, from time.Time) ([]*domain.DayOverride, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
