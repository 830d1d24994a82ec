package toggle_slot_day

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/nguyenhau8209/PetHaven/internal/api/handlers"
	"github.com/nguyenhau8209/PetHaven/internal/api/middleware"
	"github.com/nguyenhau8209/PetHaven/internal/domain"
	toggleSlotDay "github.com/nguyenhau8209/PetHaven/internal/usecase/toggle_slot_day"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSlotNotFound       = "слот не найден"
	msgUnauthorized       = "требуется авторизация"
)

type Handler struct {
	useCase ToggleSlotDayUseCase
	logger  Logger
}

func NewHandler(useCase ToggleSlotDayUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/schedule/{date}/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.logger.Warn("PATCH /schedule/{date}/slots/{id} - Missing principal in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)

	// Извлекаем date из URL
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("PATCH /schedule/{date}/slots/{id} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Извлекаем slotId из URL
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /schedule/{date}/slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	// Декодируем body
	var req ToggleSlotDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /schedule/{date}/slots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq := &toggleSlotDay.Request{
		SlotID:        slotID,
		Date:          date,
		MakeAvailable: req.Available,
		StaffID:       principal.SubjectID,
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, toggleSlotDay.ErrSlotNotFound):
			h.logger.Warn("PATCH /schedule/{date}/slots/{id} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, toggleSlotDay.ErrInvalidInput):
			h.logger.Warn("PATCH /schedule/{date}/slots/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /schedule/{date}/slots/{id} - Failed to toggle slot: slot_id=%d, date=%s, error=%v",
				slotID, vars["date"], err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /schedule/{date}/slots/{id} - Slot toggled: slot_id=%d, date=%s, action=%s",
		slotID, vars["date"], result.Action)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
