package reserve_slot

import (
	"time"
)

// Request модель запроса на резервирование слота
type Request struct {
	SlotID      int64     // ID слота из каталога
	Date        time.Time // Дата бронирования (без времени)
	RequesterID string    // Subject инициатора, только для аудита
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID int64
	SlotID    int64
	Date      time.Time
	Status    string
	CreatedAt time.Time
}
