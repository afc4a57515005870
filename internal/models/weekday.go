package models

import (
	"strings"
	"time"
)

// Weekday is a time.Weekday exchanged by lower-case name ("sunday", "monday").
type Weekday time.Weekday

func ParseWeekday(s string) (Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(s, d.String()) {
			return Weekday(d), nil
		}
	}
	return 0, &ValidationError{Field: "week_starts_on", Message: "unknown weekday " + s}
}

func (w Weekday) String() string {
	return strings.ToLower(time.Weekday(w).String())
}

func (w Weekday) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

func (w *Weekday) UnmarshalText(data []byte) error {
	parsed, err := ParseWeekday(string(data))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}
