package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nguyenhau8209/PetHaven/internal/domain"
	slotRepo "github.com/nguyenhau8209/PetHaven/internal/infra/storage/slot"
	"github.com/nguyenhau8209/PetHaven/internal/service/schedule/models"
	"github.com/nguyenhau8209/PetHaven/pkg/types"
)

// Service сервис управления расписанием: каталог слотов и переопределения
// рабочих дней. Бронирования слотов лежат в сервисе bookings
type Service struct {
	slotRepo     SlotRepository
	overrideRepo DayOverrideRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	slotRepo SlotRepository,
	overrideRepo DayOverrideRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:     slotRepo,
		overrideRepo: overrideRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// ListSlots возвращает весь каталог слотов, включая выключенные,
// в порядке времени дня
func (s *Service) ListSlots(ctx context.Context) (*models.SlotListResponse, error) {
	s.logger.Info("ListSlots: fetching slot catalog")

	slots, err := s.slotRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSlots - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListSlots: successfully fetched %d slots", len(slots))
	return models.FromDomainSlotList(slots), nil
}

// CreateSlot добавляет слот в каталог
func (s *Service) CreateSlot(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("CreateSlot: creating slot time=%s", req.TimeOfDay)

	timeOfDay, err := types.NewTimeStringFromString(req.TimeOfDay)
	if err != nil {
		s.logger.Warn("CreateSlot: invalid time=%s: %v", req.TimeOfDay, err)
		return nil, fmt.Errorf("%w: invalid time of day", ErrInvalidInput)
	}

	slot := &domain.Slot{
		TimeOfDay: timeOfDay,
		Enabled:   true,
	}

	created, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotExists) {
			s.logger.Warn("CreateSlot: slot for time=%s already exists", req.TimeOfDay)
			return nil, ErrSlotExists
		}
		s.logger.Error("CreateSlot: repository error for time=%s: %v", req.TimeOfDay, err)
		return nil, fmt.Errorf("%w: CreateSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateSlot: successfully created slot id=%d time=%s", created.ID, req.TimeOfDay)
	return models.FromDomainSlot(created), nil
}

// SetSlotEnabled включает или выключает слот целиком, на все даты.
// Выключение не трогает существующие бронирования
func (s *Service) SetSlotEnabled(ctx context.Context, id int64, req *models.SetSlotEnabledRequest) error {
	s.logger.Info("SetSlotEnabled: slot id=%d enabled=%t", id, req.Enabled)

	if err := s.slotRepo.SetEnabled(ctx, id, req.Enabled); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("SetSlotEnabled: slot id=%d not found", id)
			return ErrSlotNotFound
		}
		s.logger.Error("SetSlotEnabled: repository error for slot id=%d: %v", id, err)
		return fmt.Errorf("%w: SetSlotEnabled - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetSlotEnabled: successfully set slot id=%d enabled=%t", id, req.Enabled)
	return nil
}

// CloseDay закрывает дату целиком: доступность пуста, новые бронирования
// отклоняются. Существующие бронирования даты не отменяются
func (s *Service) CloseDay(ctx context.Context, req *models.DayRequest) error {
	s.logger.Info("CloseDay: closing date=%s", req.Date.Format(domain.DateFormat))

	if err := s.validateDate(req.Date); err != nil {
		s.logger.Warn("CloseDay: %v", err)
		return err
	}

	if err := s.overrideRepo.CloseDay(ctx, req.Date); err != nil {
		s.logger.Error("CloseDay: repository error for date=%s: %v",
			req.Date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: CloseDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CloseDay: successfully closed date=%s", req.Date.Format(domain.DateFormat))
	return nil
}

// ReopenDay снимает закрытие даты. Повторное открытие открытой даты - no-op
func (s *Service) ReopenDay(ctx context.Context, req *models.DayRequest) error {
	s.logger.Info("ReopenDay: reopening date=%s", req.Date.Format(domain.DateFormat))

	if err := s.validateDate(req.Date); err != nil {
		s.logger.Warn("ReopenDay: %v", err)
		return err
	}

	if err := s.overrideRepo.ReopenDay(ctx, req.Date); err != nil {
		s.logger.Error("ReopenDay: repository error for date=%s: %v",
			req.Date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: ReopenDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReopenDay: successfully reopened date=%s", req.Date.Format(domain.DateFormat))
	return nil
}

// ListClosedDays возвращает закрытые даты начиная с сегодняшней
func (s *Service) ListClosedDays(ctx context.Context) (*models.ClosedDaysResponse, error) {
	s.logger.Info("ListClosedDays: fetching closed days")

	overrides, err := s.overrideRepo.ListClosed(ctx, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("ListClosedDays: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListClosedDays - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListClosedDays: successfully fetched %d closed days", len(overrides))
	return models.FromDomainOverrides(overrides), nil
}

// ResetSchedule возвращает расписание к заводскому состоянию: все слоты
// каталога включаются, все закрытия дней снимаются. Бронирования не
// затрагиваются. Обе операции выполняются в одной транзакции
func (s *Service) ResetSchedule(ctx context.Context) error {
	s.logger.Info("ResetSchedule: resetting schedule to defaults")

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.slotRepo.EnableAll(ctx); err != nil {
			return fmt.Errorf("enable all slots: %w", err)
		}
		if err := s.overrideRepo.ReopenAll(ctx); err != nil {
			return fmt.Errorf("reopen all days: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("ResetSchedule: failed to reset: %v", err)
		return fmt.Errorf("%w: ResetSchedule - %v", ErrInternal, err)
	}

	s.logger.Info("ResetSchedule: successfully reset schedule")
	return nil
}

// validateDate проверяет, что дата задана
func (s *Service) validateDate(date time.Time) error {
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
