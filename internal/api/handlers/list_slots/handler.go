package list_slots

import (
	"net/http"

	"github.com/nguyenhau8209/PetHaven/internal/api/handlers"
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

// Handle GET /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListSlots(r.Context())
	if err != nil {
		h.logger.Error("GET /slots - Failed to list slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /slots - Slot catalog retrieved successfully: count=%d", len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
