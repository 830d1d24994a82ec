package toggle_slot_day

import (
	"github.com/nguyenhau8209/PetHaven/internal/domain"
	toggleSlotDay "github.com/nguyenhau8209/PetHaven/internal/usecase/toggle_slot_day"
)

// ToggleSlotDayRequest HTTP request model
type ToggleSlotDayRequest struct {
	// Available true - освободить слот на день, false - закрыть
	Available bool `json:"available"`
}

// ToggleSlotDayResponse HTTP response model
type ToggleSlotDayResponse struct {
	SlotID int64  `json:"slotId"`
	Date   string `json:"date"`
	Action string `json:"action"` // "blocked" | "freed" | "none"
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *toggleSlotDay.Response) *ToggleSlotDayResponse {
	return &ToggleSlotDayResponse{
		SlotID: resp.SlotID,
		Date:   resp.Date.Format(domain.DateFormat),
		Action: resp.Action,
	}
}
