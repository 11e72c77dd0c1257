package payroll

import (
	"fmt"
	"time"
)

// =============================================================================
// CLOCK TIME - Local time-of-day (HH:MM), no date attached
// =============================================================================

// ClockTime is a local time-of-day with minute precision. The zero value is
// "unset", which is how a period marks a missing start or end time; 00:00
// built through a constructor is a real midnight and stays distinct from it.
type ClockTime struct {
	hour   int
	minute int
	set    bool
}

// NewClock builds a ClockTime from hour [0,23] and minute [0,59].
func NewClock(hour, minute int) (ClockTime, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("%w: %02d:%02d", ErrInvalidClock, hour, minute)
	}
	return ClockTime{hour: hour, minute: minute, set: true}, nil
}

// MustClock is NewClock for literals in tests and defaults.
func MustClock(hour, minute int) ClockTime {
	c, err := NewClock(hour, minute)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseClock parses "HH:MM" (24-hour clock).
func ParseClock(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return ClockTime{hour: t.Hour(), minute: t.Minute(), set: true}, nil
}

func (c ClockTime) Hour() int   { return c.hour }
func (c ClockTime) Minute() int { return c.minute }
func (c ClockTime) IsSet() bool { return c.set }

// MinuteOfDay returns minutes since midnight.
func (c ClockTime) MinuteOfDay() int { return c.hour*minutesPerHour + c.minute }

func (c ClockTime) String() string {
	if !c.set {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", c.hour, c.minute)
}

// =============================================================================
// DATE - Calendar day, no time component
// =============================================================================

// Date is a local calendar day. The zero value is "unset".
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses "2006-01-02".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{t: t}, nil
}

func (d Date) IsZero() bool           { return d.t.IsZero() }
func (d Date) Time() time.Time        { return d.t }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) AddDays(n int) Date     { return Date{t: d.t.AddDate(0, 0, n)} }

func (d Date) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format("2006-01-02")
}
