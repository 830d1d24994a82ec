package toggle_slot_day

import "time"

// Действия, которые мог выполнить toggle
const (
	// ActionBlocked слот закрыт на день синтетическим бронированием
	ActionBlocked = "blocked"

	// ActionFreed активное бронирование пары отменено, слот снова открыт
	ActionFreed = "freed"

	// ActionNone пара уже была в запрошенном состоянии, ничего не изменилось
	ActionNone = "none"
)

// Request модель запроса переключения слота на конкретный день
type Request struct {
	SlotID int64
	Date   time.Time

	// MakeAvailable true - освободить слот на день (отменить занимающее
	// бронирование), false - закрыть слот на день
	MakeAvailable bool

	// StaffID subject сотрудника, записывается в синтетическое бронирование
	StaffID string
}

// Response результат переключения
type Response struct {
	SlotID int64
	Date   time.Time
	Action string

	// BookingID бронирование, созданное или отменённое переключением
	// (0 при ActionNone)
	BookingID int64
}
