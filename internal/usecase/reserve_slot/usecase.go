package reserve_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyenhau8209/PetHaven/internal/domain"
	bookingRepo "github.com/nguyenhau8209/PetHaven/internal/infra/storage/booking"
	slotRepo "github.com/nguyenhau8209/PetHaven/internal/infra/storage/slot"
)

// UseCase use case резервирования слота на дату.
//
// Запись выполняется в сериализуемой транзакции, но корректность инварианта
// "не больше одного активного бронирования на пару (слот, дата)" держится
// не на ней: InsertPending - единственный атомарный INSERT под частичным
// уникальным индексом, поэтому устаревшее чтение доступности никогда не
// приводит к двойному бронированию - проигравший получает ErrSlotNotAvailable.
type UseCase struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	overrideRepo DayOverrideRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	overrideRepo DayOverrideRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		overrideRepo: overrideRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case резервирования слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveSlot: slot=%d, date=%s, requester=%s",
		req.SlotID, req.Date.Format(domain.DateFormat), req.RequesterID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время
	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 3. Проверки и вставка в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Слот существует и не выведен из расписания
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("ReserveSlot: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("ReserveSlot: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}
		if !slot.Enabled {
			uc.logger.Warn("ReserveSlot: slot id=%d is disabled", req.SlotID)
			return ErrSlotDisabled
		}

		// 3.2. Дата не закрыта переопределением
		closed, err := uc.overrideRepo.IsClosed(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("ReserveSlot: failed to check day override for date=%s: %v",
				req.Date.Format(domain.DateFormat), err)
			return fmt.Errorf("%w: failed to check day override: %v", ErrInternal, err)
		}
		if closed {
			uc.logger.Warn("ReserveSlot: date=%s is closed", req.Date.Format(domain.DateFormat))
			return ErrDayClosed
		}

		// 3.3. Дата не в прошлом, а для сегодняшней даты время слота
		// ещё не наступило
		if err := validateDateTime(slot, req.Date, now); err != nil {
			uc.logger.Warn("ReserveSlot: date/time validation failed for slot=%d date=%s: %v",
				req.SlotID, req.Date.Format(domain.DateFormat), err)
			return err
		}

		// 3.4. Атомарная вставка: проверка занятости и запись неделимы
		created, err := uc.bookingRepo.InsertPending(txCtx, req.SlotID, req.Date, req.RequesterID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("ReserveSlot: slot=%d date=%s already taken",
					req.SlotID, req.Date.Format(domain.DateFormat))
				return ErrSlotNotAvailable
			}
			uc.logger.Error("ReserveSlot: failed to insert booking for slot=%d date=%s: %v",
				req.SlotID, req.Date.Format(domain.DateFormat), err)
			return fmt.Errorf("%w: failed to insert booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ReserveSlot: successfully created booking id=%d (slot=%d, date=%s)",
		result.ID, result.SlotID, result.Date.Format(domain.DateFormat))

	return &Response{
		BookingID: result.ID,
		SlotID:    result.SlotID,
		Date:      result.Date,
		Status:    string(result.Status),
		CreatedAt: result.CreatedAt,
	}, nil
}
