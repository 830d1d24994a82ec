package create_slot

import (
	"errors"
	"net/http"

	"github.com/nguyenhau8209/PetHaven/internal/api/handlers"
	"github.com/nguyenhau8209/PetHaven/internal/service/schedule"
	"github.com/nguyenhau8209/PetHaven/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgSlotExists         = "слот на это время уже существует"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Декодируем body
	var req models.CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateSlot(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /slots - Invalid time: time=%s", req.TimeOfDay)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, schedule.ErrSlotExists):
			h.logger.Warn("POST /slots - Slot exists: time=%s", req.TimeOfDay)
			handlers.RespondConflict(w, msgSlotExists)

		default:
			h.logger.Error("POST /slots - Failed to create slot: time=%s, error=%v", req.TimeOfDay, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots - Slot created successfully: slot_id=%d, time=%s", result.ID, result.TimeOfDay)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
