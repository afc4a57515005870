package models

import (
	"fmt"
	"strings"
	"time"
)

const clockLayout = "15:04"

// Clock is a wall-clock time of day with minute precision, exchanged as HH:MM.
type Clock struct {
	Hour   int
	Minute int
}

func ParseClock(s string) (Clock, error) {
	if len(s) != len(clockLayout) {
		return Clock{}, &ValidationError{Field: "time", Message: fmt.Sprintf("time %q must be HH:MM", s)}
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return Clock{}, &ValidationError{Field: "time", Message: fmt.Sprintf("time %q must be HH:MM", s)}
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// ParseOptionalClock treats an empty or blank string as "no time".
func ParseOptionalClock(s string) (*Clock, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	c, err := ParseClock(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c Clock) Before(o Clock) bool {
	return c.Minutes() < o.Minutes()
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(data []byte) error {
	parsed, err := ParseClock(string(data))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
