package reopen_day

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/nguyenhau8209/PetHaven/internal/api/handlers"
	"github.com/nguyenhau8209/PetHaven/internal/domain"
	"github.com/nguyenhau8209/PetHaven/internal/service/schedule"
	"github.com/nguyenhau8209/PetHaven/internal/service/schedule/models"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle DELETE /api/v1/schedule/{date}/close
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем date из URL
	vars := mux.Vars(r)
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("DELETE /schedule/{date}/close - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.ReopenDay(r.Context(), &models.DayRequest{Date: date}); err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("DELETE /schedule/{date}/close - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("DELETE /schedule/{date}/close - Failed to reopen day: date=%s, error=%v",
				vars["date"], err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schedule/{date}/close - Day reopened successfully: date=%s", vars["date"])
	handlers.RespondJSON(w, http.StatusOK, nil)
}
