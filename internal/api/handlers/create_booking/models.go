package create_booking

import (
	"time"

	"github.com/nguyenhau8209/PetHaven/internal/domain"
	reserveSlot "github.com/nguyenhau8209/PetHaven/internal/usecase/reserve_slot"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SlotID      int64  `json:"slotId"`
	BookingDate string `json:"bookingDate"` // "2025-10-15"
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *CreateBookingRequest) ToUseCaseRequest(requesterID string) (*reserveSlot.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	return &reserveSlot.Request{
		SlotID:      r.SlotID,
		Date:        date,
		RequesterID: requesterID,
	}, nil
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	BookingID   int64     `json:"bookingId"`
	SlotID      int64     `json:"slotId"`
	BookingDate string    `json:"bookingDate"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveSlot.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		BookingID:   resp.BookingID,
		SlotID:      resp.SlotID,
		BookingDate: resp.Date.Format(domain.DateFormat),
		Status:      resp.Status,
		CreatedAt:   resp.CreatedAt,
	}
}
