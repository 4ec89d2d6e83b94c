package models

import (
	"fmt"
	"time"
)

const timeOfDayLayout = "15:04:05"

// TimeOfDay время суток с точностью до секунды, в секундах от полуночи.
// Дата в журнале отсутствует, переход через полночь дает отрицательный интервал.
type TimeOfDay int

// ParseTimeOfDay разбирает время в формате HH:MM:SS
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(timeOfDayLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return NewTimeOfDay(t.Hour(), t.Minute(), t.Second()), nil
}

// NewTimeOfDay создает время суток из часов, минут и секунд
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60 + second)
}

// Seconds возвращает количество секунд от полуночи
func (t TimeOfDay) Seconds() int {
	return int(t)
}

// Sub возвращает разницу в секундах t - u (может быть отрицательной)
func (t TimeOfDay) Sub(u TimeOfDay) int {
	return int(t) - int(u)
}

// String форматирует время как HH:MM:SS
func (t TimeOfDay) String() string {
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s%3600/60, s%60)
}

// MarshalText реализует encoding.TextMarshaler
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText реализует encoding.TextUnmarshaler
func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
