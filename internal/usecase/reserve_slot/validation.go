package reserve_slot

import (
	"fmt"
	"time"

	"github.com/nguyenhau8209/PetHaven/internal/domain"
	"github.com/nguyenhau8209/PetHaven/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.RequesterID == "" {
		return fmt.Errorf("%w: requesterID is required", ErrInvalidInput)
	}

	return nil
}

// validateDateTime проверяет, что бронирование не относится к прошлому:
// дата не раньше сегодняшней, а для сегодняшней даты время слота строго
// позже текущего
func validateDateTime(slot *domain.Slot, date time.Time, now time.Time) error {
	if isDateInPast(date, now) {
		return ErrDateInPast
	}

	if !isSameDay(date, now) {
		// Будущие даты по времени не фильтруются
		return nil
	}

	nowTime := types.NewTimeString(now)
	if !slot.TimeOfDay.IsAfter(nowTime) {
		return ErrTimeElapsed
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
