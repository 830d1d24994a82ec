package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotTaken возвращается, когда пара (слот, дата) уже занята активным
	// бронированием. Соответствует нарушению частичного уникального индекса,
	// это ожидаемый исход гонки двух резервов, а не сбой.
	ErrSlotTaken = errors.New("booking.repository: slot already taken for this date")

	// ErrNoTransition возвращается, когда условный UPDATE статуса не изменил
	// ни одной строки: бронирование либо не существует, либо не в одном из
	// допустимых исходных статусов
	ErrNoTransition = errors.New("booking.repository: no matching booking for status transition")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
