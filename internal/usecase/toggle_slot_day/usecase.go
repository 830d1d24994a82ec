package toggle_slot_day

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyenhau8209/PetHaven/internal/domain"
	bookingRepo "github.com/nguyenhau8209/PetHaven/internal/infra/storage/booking"
	slotRepo "github.com/nguyenhau8209/PetHaven/internal/infra/storage/slot"
)

// UseCase use case ручного переключения одного слота на один день.
//
// Закрытие слота на день реализовано синтетическим подтверждённым
// бронированием, а не глобальным флагом слота: глобальный флаг действует
// на все даты сразу, а переключение - только на одну. Открытие отменяет
// любое активное бронирование пары, включая клиентское.
//
// Переключение идемпотентно: повтор в ту же сторону возвращает ActionNone.
type UseCase struct {
	slotRepo    SlotRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case переключения слота на день
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ToggleSlotDay: slot=%d, date=%s, makeAvailable=%t, staff=%s",
		req.SlotID, req.Date.Format(domain.DateFormat), req.MakeAvailable, req.StaffID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ToggleSlotDay: validation failed: %v", err)
		return nil, err
	}

	resp := &Response{
		SlotID: req.SlotID,
		Date:   req.Date,
		Action: ActionNone,
	}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Слот должен существовать; глобальный флаг не проверяется -
		// ручное переключение работает и для отключённых слотов
		if _, err := uc.slotRepo.GetByID(txCtx, req.SlotID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("ToggleSlotDay: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("ToggleSlotDay: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		active, err := uc.bookingRepo.FindActive(txCtx, req.SlotID, req.Date)
		if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("ToggleSlotDay: failed to find active booking for slot=%d date=%s: %v",
				req.SlotID, req.Date.Format(domain.DateFormat), err)
			return fmt.Errorf("%w: failed to find active booking: %v", ErrInternal, err)
		}

		if req.MakeAvailable {
			return uc.free(txCtx, req, active, resp)
		}
		return uc.block(txCtx, req, active, resp)
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ToggleSlotDay: slot=%d, date=%s, action=%s",
		req.SlotID, req.Date.Format(domain.DateFormat), resp.Action)

	return resp, nil
}

// free открывает слот на день: отменяет занимающее его активное бронирование
func (uc *UseCase) free(ctx context.Context, req *Request, active *domain.Booking, resp *Response) error {
	if active == nil {
		// Пара уже открыта
		return nil
	}

	err := uc.bookingRepo.UpdateStatus(ctx, active.ID, domain.ActiveStatuses, domain.StatusCancelled)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNoTransition) {
			// Бронирование успело смениться между чтением и UPDATE;
			// пара в любом случае освободилась или освобождается
			uc.logger.Warn("ToggleSlotDay: booking id=%d changed concurrently", active.ID)
			return nil
		}
		uc.logger.Error("ToggleSlotDay: failed to cancel booking id=%d: %v", active.ID, err)
		return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
	}

	resp.Action = ActionFreed
	resp.BookingID = active.ID
	return nil
}

// block закрывает слот на день синтетическим подтверждённым бронированием
func (uc *UseCase) block(ctx context.Context, req *Request, active *domain.Booking, resp *Response) error {
	if active != nil {
		// Пара уже занята - реальным бронированием или прежней блокировкой
		return nil
	}

	created, err := uc.bookingRepo.InsertBlocked(ctx, req.SlotID, req.Date, req.StaffID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			// Конкурирующий резерв опередил блокировку: слот занят,
			// то есть цель "сделать недоступным" достигнута
			uc.logger.Warn("ToggleSlotDay: slot=%d date=%s taken concurrently",
				req.SlotID, req.Date.Format(domain.DateFormat))
			return nil
		}
		uc.logger.Error("ToggleSlotDay: failed to insert blocking booking for slot=%d date=%s: %v",
			req.SlotID, req.Date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: failed to insert blocking booking: %v", ErrInternal, err)
	}

	resp.Action = ActionBlocked
	resp.BookingID = created.ID
	return nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StaffID == "" {
		return fmt.Errorf("%w: staffID is required", ErrInvalidInput)
	}
	return nil
}
