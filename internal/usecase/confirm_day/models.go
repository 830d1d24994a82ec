package confirm_day

import "time"

// Request модель запроса пакетного подтверждения за день
type Request struct {
	Date time.Time
}

// ItemResult результат подтверждения одного бронирования
type ItemResult struct {
	BookingID int64
	Confirmed bool
	Error     string // Пустая строка при успехе
}

// Response результат пакетного подтверждения.
// Results содержит запись для каждого бронирования дня, бывшего в статусе
// pending на момент чтения.
type Response struct {
	Date      time.Time
	Confirmed int
	Failed    int
	Results   []ItemResult
}
