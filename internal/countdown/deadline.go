package countdown

import (
	"errors"
	"fmt"
	"time"

	"github.com/splshield/splshield-web/internal/config"
)

// Schedule resolves the deadline a display counts down to.
// It is consulted once per mount: a page render, a stream connection or a
// window being opened. The resolved instant is not changed afterwards.
type Schedule interface {
	Deadline(now time.Time) time.Time
}

// Fixed is a deadline pinned to one instant.
type Fixed time.Time

// Deadline returns the pinned instant regardless of now.
func (f Fixed) Deadline(time.Time) time.Time {
	return time.Time(f)
}

// Annual is a deadline recurring every year at Month/Day Hour:Minute UTC.
type Annual struct {
	Month  time.Month
	Day    int
	Hour   int
	Minute int
}

// Deadline returns this year's occurrence, or next year's if it has passed.
// An occurrence equal to now counts as passed.
func (a Annual) Deadline(now time.Time) time.Time {
	year := now.UTC().Year()
	candidate := a.in(year)
	if !now.Before(candidate) {
		candidate = a.in(year + 1)
	}
	return candidate
}

func (a Annual) in(year int) time.Time {
	return time.Date(year, a.Month, a.Day, a.Hour, a.Minute, 0, 0, time.UTC)
}

// ParseDeadline parses an RFC 3339 timestamp into a Fixed schedule.
func ParseDeadline(value string) (Fixed, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return Fixed{}, fmt.Errorf("%s: %w", config.ErrDeadlineParse, err)
	}
	return Fixed(t), nil
}

// ParseAnnual parses a "MM-DDTHH:MM" rule such as "01-06T18:00".
// February 29 is rejected because it does not recur every year.
func ParseAnnual(value string) (Annual, error) {
	t, err := time.Parse(config.AnnualLayout, value)
	if err != nil {
		return Annual{}, fmt.Errorf("%s: %w", config.ErrAnnualParse, err)
	}
	if t.Month() == time.February && t.Day() == 29 {
		return Annual{}, fmt.Errorf("%s: %q does not occur every year", config.ErrAnnualParse, value)
	}
	return Annual{Month: t.Month(), Day: t.Day(), Hour: t.Hour(), Minute: t.Minute()}, nil
}

// NewSchedule builds the schedule from settings. A fixed deadline wins over
// the annual rule. Invalid input is rejected rather than replaced.
func NewSchedule(fixed, annual string) (Schedule, error) {
	if fixed != "" {
		return ParseDeadline(fixed)
	}
	if annual == "" {
		return nil, errors.New(config.ErrAnnualParse)
	}
	return ParseAnnual(annual)
}
