package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyenhau8209/PetHaven/internal/domain"
	bookingRepo "github.com/nguyenhau8209/PetHaven/internal/infra/storage/booking"
	"github.com/nguyenhau8209/PetHaven/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь может видеть только своё бронирование,
// персонал видит любые
func (s *Service) GetByID(ctx context.Context, id int64, requesterID string, isStaff bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for requester=%s", id, requesterID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа
	if !isStaff && booking.RequesterID != requesterID {
		s.logger.Warn("GetByID: access denied for requester=%s to booking id=%d", requesterID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// ListByDate получает все бронирования даты, включая отменённые.
// Доступно только персоналу, порядок - по времени слота
func (s *Service) ListByDate(ctx context.Context, req *models.GetDayBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListByDate: fetching bookings for date=%s", req.Date.Format(domain.DateFormat))

	if req.Date.IsZero() {
		s.logger.Warn("ListByDate: date is required")
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListByDate(ctx, req.Date)
	if err != nil {
		s.logger.Error("ListByDate: repository error for date=%s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByDate: successfully fetched %d bookings for date=%s",
		len(bookings), req.Date.Format(domain.DateFormat))
	return models.FromDomainBookingList(req.Date, bookings), nil
}

// Confirm подтверждает бронирование (pending -> confirmed)
// Повторное подтверждение уже подтверждённого бронирования - no-op.
// Подтвердить отменённое бронирование нельзя
func (s *Service) Confirm(ctx context.Context, bookingID int64) error {
	s.logger.Info("Confirm: confirming booking id=%d", bookingID)

	err := s.bookingRepo.UpdateStatus(ctx, bookingID,
		[]domain.BookingStatus{domain.StatusPending}, domain.StatusConfirmed)
	if err == nil {
		s.logger.Info("Confirm: successfully confirmed booking id=%d", bookingID)
		return nil
	}

	if !errors.Is(err, bookingRepo.ErrNoTransition) {
		s.logger.Error("Confirm: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	// UPDATE не затронул строк: бронирования нет, оно уже подтверждено
	// или отменено. Перечитываем, чтобы различить эти случаи
	booking, err := s.getBooking(ctx, "Confirm", bookingID)
	if err != nil {
		return err
	}

	if booking.Status == domain.StatusConfirmed {
		s.logger.Info("Confirm: booking id=%d already confirmed", bookingID)
		return nil
	}

	s.logger.Warn("Confirm: booking id=%d has status=%s, cannot confirm", bookingID, booking.Status)
	return fmt.Errorf("%w: cannot confirm booking in status %s", ErrInvalidTransition, booking.Status)
}

// Cancel отменяет бронирование (pending/confirmed -> cancelled)
// Пользователь может отменить только своё бронирование, персонал - любое.
// Повторная отмена уже отменённого бронирования - no-op
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by requester=%s", bookingID, req.RequesterID)

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	// Проверяем права доступа
	if !req.IsStaff && booking.RequesterID != req.RequesterID {
		s.logger.Warn("Cancel: access denied for requester=%s to booking id=%d", req.RequesterID, bookingID)
		return ErrAccessDenied
	}

	if booking.Status == domain.StatusCancelled {
		s.logger.Info("Cancel: booking id=%d already cancelled", bookingID)
		return nil
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return fmt.Errorf("%w: cannot cancel booking in status %s", ErrInvalidTransition, booking.Status)
	}

	err = s.bookingRepo.UpdateStatus(ctx, bookingID,
		domain.ActiveStatuses, domain.StatusCancelled)
	if err == nil {
		s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
		return nil
	}

	if !errors.Is(err, bookingRepo.ErrNoTransition) {
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Гонка: статус сменился между чтением и UPDATE. Если бронирование
	// уже отменено параллельным запросом, цель достигнута
	booking, err = s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	if booking.Status == domain.StatusCancelled {
		s.logger.Info("Cancel: booking id=%d cancelled concurrently", bookingID)
		return nil
	}

	s.logger.Warn("Cancel: booking id=%d changed status concurrently to %s", bookingID, booking.Status)
	return fmt.Errorf("%w: cannot cancel booking in status %s", ErrInvalidTransition, booking.Status)
}

// Вспомогательные методы

// getBooking загружает бронирование, маппит ошибки репозитория на ошибки сервиса
func (s *Service) getBooking(ctx context.Context, method string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", method, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return booking, nil
}
