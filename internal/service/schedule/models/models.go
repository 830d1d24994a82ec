package models

import (
	"time"

	"github.com/nguyenhau8209/PetHaven/internal/domain"
)

// Request модели

// CreateSlotRequest запрос на создание слота
type CreateSlotRequest struct {
	TimeOfDay string `json:"timeOfDay"` // "09:00"
}

// SetSlotEnabledRequest запрос на включение/выключение слота
type SetSlotEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

// DayRequest запрос с одной календарной датой
type DayRequest struct {
	Date time.Time `json:"date"`
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID        int64  `json:"id"`
	TimeOfDay string `json:"timeOfDay"`
	Enabled   bool   `json:"enabled"`
}

// SlotListResponse ответ со списком слотов каталога
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// ClosedDaysResponse ответ со списком закрытых дней
type ClosedDaysResponse struct {
	Days []string `json:"days"` // "2025-10-15"
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:        s.ID,
		TimeOfDay: s.TimeOfDay.String(),
		Enabled:   s.Enabled,
	}
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.Slot) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
	}

	for _, slot := range slots {
		if slotResp := FromDomainSlot(slot); slotResp != nil {
			resp.Slots = append(resp.Slots, *slotResp)
		}
	}

	return resp
}

// FromDomainOverrides конвертирует список переопределений в DTO
func FromDomainOverrides(overrides []*domain.DayOverride) *ClosedDaysResponse {
	resp := &ClosedDaysResponse{
		Days: make([]string, 0, len(overrides)),
	}

	for _, o := range overrides {
		resp.Days = append(resp.Days, o.Date.Format(domain.DateFormat))
	}

	return resp
}
