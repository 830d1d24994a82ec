package reset_schedule

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

// Handle POST /api/v1/schedule/reset
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ResetSchedule(r.Context()); err != nil {
		h.logger.Error("POST /schedule/reset - Failed to reset schedule: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /schedule/reset - Schedule reset successfully")
	handlers.RespondJSON(w, http.StatusOK, nil)
}
