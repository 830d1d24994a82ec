package types

import (
	"errors"
	"fmt"
	"time"
)

// timeLayout формат времени суток без даты
const timeLayout = "15:04"

var (
	// ErrInvalidTimeString возвращается при некорректном формате строки времени
	ErrInvalidTimeString = errors.New("types: invalid time string format, expected HH:MM")

	// ErrInvalidMinutes возвращается при некорректном значении минут
	ErrInvalidMinutes = errors.New("types: invalid minutes value")
)

// TimeString время суток в формате "HH:MM" без привязки к дате.
// Используется для времени ежедневных слотов: слот задаётся временем суток,
// а конкретный день определяется датой бронирования.
type TimeString string

// parseTimeString разбирает строку строго в формате "HH:MM".
// time.Parse принимает часы без ведущего нуля ("9:00"), а в БД значения
// сравниваются лексикографически, поэтому длина проверяется отдельно.
func parseTimeString(s string) (time.Time, error) {
	if len(s) != len(timeLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return t, nil
}

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := parseTimeString(s)
	if err != nil {
		return "", err
	}
	return NewTimeString(t), nil
}

// String возвращает строковое представление времени
func (t TimeString) String() string {
	return string(t)
}

// IsZero проверяет, что значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет корректность формата
func (t TimeString) Validate() error {
	_, err := parseTimeString(string(t))
	return err
}

// minutes возвращает время как количество минут от полуночи
func (t TimeString) minutes() (int, error) {
	parsed, err := parseTimeString(string(t))
	if err != nil {
		return 0, err
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// IsBefore проверяет, что время строго раньше other.
// Некорректные значения считаются равными (false).
func (t TimeString) IsBefore(other TimeString) bool {
	a, err := t.minutes()
	if err != nil {
		return false
	}
	b, err := other.minutes()
	if err != nil {
		return false
	}
	return a < b
}

// IsAfter проверяет, что время строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, err := t.minutes()
	if err != nil {
		return false
	}
	b, err := other.minutes()
	if err != nil {
		return false
	}
	return a > b
}

// AddMinutes возвращает время, сдвинутое на m минут вперёд.
// Выход за пределы суток считается ошибкой: слоты не пересекают полночь.
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	if m < 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidMinutes, m)
	}
	total, err := t.minutes()
	if err != nil {
		return "", err
	}
	total += m
	if total >= 24*60 {
		return "", fmt.Errorf("%w: result crosses midnight", ErrInvalidMinutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// OnDate совмещает время суток с календарной датой в её локации
func (t TimeString) OnDate(date time.Time) (time.Time, error) {
	parsed, err := parseTimeString(string(t))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0,
		date.Location(),
	), nil
}
