package confirm_day

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/nguyenhau8209/PetHaven/internal/api/handlers"
	"github.com/nguyenhau8209/PetHaven/internal/domain"
	confirmDay "github.com/nguyenhau8209/PetHaven/internal/usecase/confirm_day"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase ConfirmDayUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmDayUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/schedule/{date}/confirm-pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем date из URL
	vars := mux.Vars(r)
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("POST /schedule/{date}/confirm-pending - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmDay.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, confirmDay.ErrInvalidInput):
			h.logger.Warn("POST /schedule/{date}/confirm-pending - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("POST /schedule/{date}/confirm-pending - Failed to confirm bookings: date=%s, error=%v",
				vars["date"], err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedule/{date}/confirm-pending - Day confirmed: date=%s, confirmed=%d, failed=%d",
		vars["date"], result.Confirmed, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
