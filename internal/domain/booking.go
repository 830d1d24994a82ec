package domain

import (
	"time"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	// StatusPending бронирование создано и ждёт подтверждения
	StatusPending BookingStatus = "pending"

	// StatusConfirmed бронирование подтверждено персоналом или оплатой
	StatusConfirmed BookingStatus = "confirmed"

	// StatusCancelled бронирование отменено (терминальный статус)
	StatusCancelled BookingStatus = "cancelled"
)

// Booking бронирование одного слота на конкретную календарную дату.
// Инвариант: для пары (SlotID, Date) в любой момент существует не больше
// одного бронирования со статусом pending или confirmed. На уровне хранилища
// это обеспечивается частичным уникальным индексом, на уровне кода -
// атомарным InsertPending.
type Booking struct {
	ID     int64
	SlotID int64
	Date   time.Time // Календарная дата без времени

	Status BookingStatus

	// Consumed выставляется, когда подтверждённое бронирование состоялось:
	// дата и время слота остались в прошлом
	Consumed bool

	// RequesterID идентификатор инициатора (subject из токена).
	// Используется только для аудита, не участвует в логике движка.
	RequesterID string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive проверяет, что бронирование занимает пару (слот, дата)
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled проверяет, что бронирование можно отменить
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanTransition проверяет допустимость перехода статуса.
// Разрешённые переходы:
//
//	pending   -> confirmed
//	pending   -> cancelled
//	confirmed -> cancelled
//
// Обратный переход confirmed -> pending запрещён, cancelled терминален.
func CanTransition(from, to BookingStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCancelled
	default:
		return false
	}
}

// ValidStatus проверяет, что строка является известным статусом
func ValidStatus(s string) bool {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}
