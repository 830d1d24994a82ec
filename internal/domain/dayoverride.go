package domain

import "time"

// DayOverride административное переопределение статуса целой даты.
// Наличие записи с Closed = true означает, что ни один слот на эту дату
// не бронируется, независимо от состояния бронирований. Отсутствие записи -
// дата открыта по умолчанию.
//
// Закрытие дня не отменяет уже подтверждённые бронирования: это блокировка
// будущих резервов, а не отзыв прошлых. Отзыв - отдельное явное действие.
type DayOverride struct {
	Date      time.Time
	Closed    bool
	CreatedAt time.Time
}
