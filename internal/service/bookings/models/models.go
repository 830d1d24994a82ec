package models

import (
	"time"

	"github.com/nguyenhau8209/PetHaven/internal/domain"
	"github.com/nguyenhau8209/PetHaven/pkg/ptr"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	RequesterID string `json:"requesterId"`
	IsStaff     bool   `json:"-"`
}

// GetDayBookingsRequest запрос на получение бронирований даты
type GetDayBookingsRequest struct {
	Date time.Time `json:"date"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64  `json:"id"`
	SlotID      int64  `json:"slotId"`
	BookingDate string `json:"bookingDate"` // "2025-10-15"
	Status      string `json:"status"`
	Consumed    bool   `json:"consumed"`
	RequesterID string `json:"requesterId"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований даты
type BookingListResponse struct {
	Date     string            `json:"date"`
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:          b.ID,
		SlotID:      b.SlotID,
		BookingDate: b.Date.Format(domain.DateFormat),
		Status:      string(b.Status),
		Consumed:    b.Consumed,
		RequesterID: b.RequesterID,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		resp.CancelledAt = ptr.Ptr(b.CancelledAt.Format(time.RFC3339))
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(date time.Time, bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Date:     date.Format(domain.DateFormat),
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
