package confirm_day

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyenhau8209/PetHaven/internal/domain"
	bookingRepo "github.com/nguyenhau8209/PetHaven/internal/infra/storage/booking"
)

// UseCase use case пакетного подтверждения всех ожидающих бронирований дня.
// Моделирует "успех оплаты за день": каждое pending-бронирование даты
// переводится в confirmed.
//
// Каждый переход применяется независимо и атомарно; общий откат пакета
// не выполняется - уже применённые переходы остаются, ошибка каждого
// элемента сообщается отдельно. Повторный запуск идемпотентен: pending
// бронирований не осталось, подтверждать нечего.
type UseCase struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute выполняет use case пакетного подтверждения
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmDay: date=%s", req.Date.Format(domain.DateFormat))

	if req.Date.IsZero() {
		uc.logger.Warn("ConfirmDay: date is required")
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	bookings, err := uc.bookingRepo.ListByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("ConfirmDay: failed to list bookings for date=%s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	resp := &Response{
		Date:    req.Date,
		Results: make([]ItemResult, 0, len(bookings)),
	}

	for _, b := range bookings {
		if b.Status != domain.StatusPending {
			continue
		}

		err := uc.bookingRepo.UpdateStatus(ctx, b.ID,
			[]domain.BookingStatus{domain.StatusPending}, domain.StatusConfirmed)

		item := ItemResult{BookingID: b.ID, Confirmed: err == nil}

		switch {
		case err == nil:
			resp.Confirmed++

		case errors.Is(err, bookingRepo.ErrNoTransition):
			// Бронирование сменило статус между чтением и UPDATE
			// (например, отменено клиентом) - это не сбой пакета
			uc.logger.Warn("ConfirmDay: booking id=%d no longer pending", b.ID)
			item.Error = "booking is no longer pending"
			resp.Failed++

		default:
			uc.logger.Error("ConfirmDay: failed to confirm booking id=%d: %v", b.ID, err)
			item.Error = "storage error"
			resp.Failed++
		}

		resp.Results = append(resp.Results, item)
	}

	uc.logger.Info("ConfirmDay: date=%s, confirmed=%d, failed=%d",
		req.Date.Format(domain.DateFormat), resp.Confirmed, resp.Failed)

	return resp, nil
}
