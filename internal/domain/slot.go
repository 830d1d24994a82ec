package domain

import (
	"time"

	"github.com/nguyenhau8209/PetHaven/pkg/types"
)

// Slot ежедневный фиксированный слот приёма ("ка").
// Слот не привязан к дате: одна и та же запись описывает, например,
// "окно 09:00" для всех календарных дней.
type Slot struct {
	ID        int64
	TimeOfDay types.TimeString

	// Enabled глобальный флаг: false выводит слот из расписания на всех
	// датах сразу (ремонт, сокращённый штат). Слот не удаляется, пока на
	// него ссылаются бронирования - только отключается.
	Enabled bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasElapsed проверяет, что время слота на дату date уже прошло
// относительно момента now. Для дат, отличных от сегодняшней, слот
// не считается прошедшим.
func (s *Slot) HasElapsed(date time.Time, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		// Будущие даты не фильтруются по времени; прошедшие даты
		// отсекаются валидацией даты раньше
		dateOnly := time.Date(y1, m1, d1, 0, 0, 0, 0, date.Location())
		nowOnly := time.Date(y2, m2, d2, 0, 0, 0, 0, now.Location())
		return dateOnly.Before(nowOnly)
	}

	nowTime := types.NewTimeString(now)
	return !s.TimeOfDay.IsAfter(nowTime)
}
