package get_availability

import (
	"time"

	"github.com/nguyenhau8209/PetHaven/internal/domain"
	"github.com/nguyenhau8209/PetHaven/pkg/types"
)

// filterAvailable вычисляет доступные слоты на дату:
//  1. отключённые слоты убираются;
//  2. слоты с активным бронированием на эту дату убираются;
//  3. если дата - сегодня, убираются слоты, чьё время уже наступило или
//     прошло (timeOfDay <= now); будущие даты по времени не фильтруются;
//  4. порядок входного каталога (по времени суток) сохраняется.
func filterAvailable(
	slots []*domain.Slot,
	bookings []*domain.Booking,
	date time.Time,
	now time.Time,
) []Slot {
	// Занятые слоты - множество slot_id активных бронирований на дату
	taken := make(map[int64]struct{}, len(bookings))
	for _, b := range bookings {
		if b.IsActive() {
			taken[b.SlotID] = struct{}{}
		}
	}

	filterByTime := isSameDay(date, now)
	nowTime := types.NewTimeString(now)

	available := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if !s.Enabled {
			continue
		}
		if _, ok := taken[s.ID]; ok {
			continue
		}
		if filterByTime && !s.TimeOfDay.IsAfter(nowTime) {
			continue
		}
		available = append(available, Slot{
			ID:        s.ID,
			TimeOfDay: s.TimeOfDay,
		})
	}

	return available
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
