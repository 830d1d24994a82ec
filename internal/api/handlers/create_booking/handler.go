package create_booking

import (
	"errors"
	"net/http"

	"github.com/nguyenhau8209/PetHaven/internal/api/handlers"
	"github.com/nguyenhau8209/PetHaven/internal/api/middleware"
	reserveSlot "github.com/nguyenhau8209/PetHaven/internal/usecase/reserve_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSlotNotFound       = "слот не найден"
	msgSlotDisabled       = "слот отключён"
	msgDayClosed          = "день закрыт для записи"
	msgSlotNotAvailable   = "слот уже занят на эту дату"
	msgDateInPast         = "дата уже прошла"
	msgTimeElapsed        = "время слота на сегодня уже прошло"
	msgUnauthorized       = "требуется авторизация"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing principal in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Декодируем body
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(principal.SubjectID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Резервируем слот
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, reserveSlot.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, reserveSlot.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot taken: slot_id=%d, date=%s", req.SlotID, req.BookingDate)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, reserveSlot.ErrSlotDisabled):
			h.logger.Warn("POST /bookings - Slot disabled: slot_id=%d", req.SlotID)
			handlers.RespondConflict(w, msgSlotDisabled)

		case errors.Is(err, reserveSlot.ErrDayClosed):
			h.logger.Warn("POST /bookings - Day closed: date=%s", req.BookingDate)
			handlers.RespondConflict(w, msgDayClosed)

		case errors.Is(err, reserveSlot.ErrDateInPast):
			h.logger.Warn("POST /bookings - Date in past: date=%s", req.BookingDate)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, reserveSlot.ErrTimeElapsed):
			h.logger.Warn("POST /bookings - Slot time elapsed: slot_id=%d, date=%s", req.SlotID, req.BookingDate)
			handlers.RespondBadRequest(w, msgTimeElapsed)

		case errors.Is(err, reserveSlot.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: slot_id=%d, date=%s, error=%v",
				req.SlotID, req.BookingDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, slot_id=%d, date=%s, requester=%s",
		result.BookingID, result.SlotID, req.BookingDate, principal.SubjectID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
