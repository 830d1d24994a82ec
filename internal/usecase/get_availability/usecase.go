package get_availability

import (
	"context"
	"fmt"

	"github.com/nguyenhau8209/PetHaven/internal/domain"
)

// UseCase use case вычисления доступных слотов на дату.
//
// Чистый путь чтения: без блокировок и побочных эффектов, безопасен при
// любом количестве параллельных вызовов. Результат - консистентный снимок,
// который может устареть сразу после чтения; гонку с резервом разрешает
// атомарная вставка в журнале бронирований, а не этот usecase.
type UseCase struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	overrideRepo DayOverrideRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	overrideRepo DayOverrideRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		overrideRepo: overrideRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: date=%s", req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.Date.IsZero() {
		uc.logger.Warn("GetAvailability: date is required")
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Закрытый день перекрывает всё: пустой список независимо от
	// состояния слотов и бронирований
	closed, err := uc.overrideRepo.IsClosed(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to check day override for date=%s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to check day override: %v", ErrInternal, err)
	}
	if closed {
		uc.logger.Info("GetAvailability: date=%s is closed by override", req.Date.Format(domain.DateFormat))
		return &Response{Date: req.Date, Slots: []Slot{}}, nil
	}

	// 3. Каталог слотов (уже отсортирован по времени суток)
	slots, err := uc.slotRepo.List(ctx)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	// 4. Активные бронирования на дату
	bookings, err := uc.bookingRepo.ListActiveByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list bookings for date=%s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	// 5. Вычитаем отключённые, занятые и прошедшие по времени слоты
	now := uc.timeProvider.Now()
	available := filterAvailable(slots, bookings, req.Date, now)

	uc.logger.Info("GetAvailability: date=%s, %d of %d slots available",
		req.Date.Format(domain.DateFormat), len(available), len(slots))

	return &Response{Date: req.Date, Slots: available}, nil
}
