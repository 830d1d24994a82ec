package get_day_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/nguyenhau8209/PetHaven/internal/api/handlers"
	"github.com/nguyenhau8209/PetHaven/internal/domain"
	"github.com/nguyenhau8209/PetHaven/internal/service/bookings"
	"github.com/nguyenhau8209/PetHaven/internal/service/bookings/models"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/{date}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем date из URL
	vars := mux.Vars(r)
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("GET /schedule/{date}/bookings - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.ListByDate(r.Context(), &models.GetDayBookingsRequest{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /schedule/{date}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /schedule/{date}/bookings - Failed to list bookings: date=%s, error=%v",
				vars["date"], err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedule/{date}/bookings - Bookings retrieved successfully: date=%s, count=%d",
		vars["date"], len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
