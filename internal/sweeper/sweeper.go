// Package sweeper фоновая пометка состоявшихся бронирований.
//
// Подтверждённое бронирование, чья дата и время слота остались в прошлом,
// получает флаг consumed. Пара (слот, дата) при этом продолжает
// считаться занятой - флаг нужен отчётам, а не движку доступности.
package sweeper

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	MarkConsumedBefore(ctx context.Context, now time.Time) (int64, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper по расписанию отмечает состоявшиеся бронирования
type Sweeper struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger

	schedule string
	timeout  time.Duration
	cron     *cron.Cron
}

// New создает sweeper с cron-расписанием в стандартном формате,
// например "* * * * *" - каждую минуту
func New(bookingRepo BookingRepository, timeProvider TimeProvider, logger Logger, schedule string, timeout time.Duration) *Sweeper {
	return &Sweeper{
		bookingRepo:  bookingRepo,
		timeProvider: timeProvider,
		logger:       logger,
		schedule:     schedule,
		timeout:      timeout,
		cron:         cron.New(),
	}
}

// Start запускает фоновое расписание
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.sweep); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("Sweeper: started with schedule %q", s.schedule)
	return nil
}

// Stop останавливает расписание и дожидается завершения текущего прохода
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Sweeper: stopped")
}

// Sweep выполняет один проход немедленно. Используется в тестах
// и при старте сервиса, чтобы не ждать первого срабатывания cron
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	return s.bookingRepo.MarkConsumedBefore(ctx, s.timeProvider.Now())
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	marked, err := s.Sweep(ctx)
	if err != nil {
		s.logger.Error("Sweeper: failed to mark consumed bookings: %v", err)
		return
	}

	if marked > 0 {
		s.logger.Info("Sweeper: marked %d bookings as consumed", marked)
	}
}
