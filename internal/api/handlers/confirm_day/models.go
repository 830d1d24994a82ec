package confirm_day

import (
	"github.com/nguyenhau8209/PetHaven/internal/domain"
	confirmDay "github.com/nguyenhau8209/PetHaven/internal/usecase/confirm_day"
)

// ConfirmDayResponse HTTP response model
type ConfirmDayResponse struct {
	Date      string       `json:"date"`
	Confirmed int          `json:"confirmed"`
	Failed    int          `json:"failed"`
	Results   []ItemResult `json:"results"`
}

// ItemResult итог подтверждения одного бронирования
type ItemResult struct {
	BookingID int64  `json:"bookingId"`
	Confirmed bool   `json:"confirmed"`
	Error     string `json:"error,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmDay.Response) *ConfirmDayResponse {
	results := make([]ItemResult, len(resp.Results))
	for i, item := range resp.Results {
		results[i] = ItemResult{
			BookingID: item.BookingID,
			Confirmed: item.Confirmed,
			Error:     item.Error,
		}
	}

	return &ConfirmDayResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		Confirmed: resp.Confirmed,
		Failed:    resp.Failed,
		Results:   results,
	}
}
