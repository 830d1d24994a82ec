package domain

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, при которых бронирование занимает пару (слот, дата).
// Используется в запросах поиска активных бронирований и в частичном
// уникальном индексе.
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// ActiveStatusStrings возвращает активные статусы как строки для SQL-запросов
func ActiveStatusStrings() []string {
	result := make([]string, len(ActiveStatuses))
	for i, s := range ActiveStatuses {
		result[i] = string(s)
	}
	return result
}
