package get_availability

import (
	"time"

	"github.com/nguyenhau8209/PetHaven/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	Date time.Time // Календарная дата, на которую запрашивается доступность
}

// Slot доступный для бронирования слот
type Slot struct {
	ID        int64
	TimeOfDay types.TimeString
}

// Response модель ответа со списком доступных слотов.
// Слоты отсортированы по времени суток по возрастанию.
type Response struct {
	Date  time.Time
	Slots []Slot
}
