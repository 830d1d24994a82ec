package get_availability

import (
	"time"

	"github.com/nguyenhau8209/PetHaven/internal/domain"
	getAvailability "github.com/nguyenhau8209/PetHaven/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date  string          `json:"date"`
	Slots []AvailableSlot `json:"slots"`
}

// AvailableSlot свободный слот даты
type AvailableSlot struct {
	ID        int64  `json:"id"`
	TimeOfDay string `json:"timeOfDay"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			ID:        slot.ID,
			TimeOfDay: slot.TimeOfDay.String(),
		}
	}

	return &AvailabilityResponse{
		Date:  resp.Date.Format(domain.DateFormat),
		Slots: slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(dateStr string) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{Date: date}, nil
}
