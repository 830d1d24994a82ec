package list_closed_days

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

// Handle GET /api/v1/schedule/closed-days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListClosedDays(r.Context())
	if err != nil {
		h.logger.Error("GET /schedule/closed-days - Failed to list closed days: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /schedule/closed-days - Closed days retrieved successfully: count=%d", len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}
