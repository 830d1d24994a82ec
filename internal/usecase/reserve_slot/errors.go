package reserve_slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("reserve_slot: slot not found")

	// ErrSlotDisabled возвращается, когда слот глобально отключён
	ErrSlotDisabled = errors.New("reserve_slot: slot is disabled")

	// ErrDayClosed возвращается, когда дата закрыта целиком
	ErrDayClosed = errors.New("reserve_slot: day is closed")

	// ErrSlotNotAvailable возвращается, когда пара (слот, дата) уже занята.
	// Ожидаемый и восстановимый исход: вызывающий перечитывает доступность
	// и выбирает другой слот.
	ErrSlotNotAvailable = errors.New("reserve_slot: slot is not available")

	// ErrDateInPast возвращается при попытке бронирования на прошедшую дату
	ErrDateInPast = errors.New("reserve_slot: date is in the past")

	// ErrTimeElapsed возвращается, когда время слота на сегодня уже прошло
	ErrTimeElapsed = errors.New("reserve_slot: slot time has already passed today")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_slot: internal error")
)
