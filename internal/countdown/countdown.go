// Package countdown computes the time left until a fixed deadline and
// delivers it to displays on a fixed cadence.
package countdown

import (
	"fmt"
	"time"

	"github.com/splshield/splshield-web/internal/config"
)

const (
	msPerSecond = 1_000
	msPerMinute = 60_000
	msPerHour   = 3_600_000
	msPerDay    = 86_400_000
)

// Remaining is the non-negative day/hour/minute/second decomposition of the
// time left until a deadline. It is recomputed on every tick and never stored.
type Remaining struct {
	Active  bool  `json:"active"`
	Days    int64 `json:"days"`
	Hours   int   `json:"hours"`
	Minutes int   `json:"minutes"`
	Seconds int   `json:"seconds"`
}

// Display holds the rendered countdown fields.
type Display struct {
	Days    string `json:"days"`
	Hours   string `json:"hours"`
	Minutes string `json:"minutes"`
	Seconds string `json:"seconds"`
}

// Calculate returns the time left between now and deadline.
// Arithmetic is done on absolute epoch milliseconds with truncating division.
// A difference of zero or less means the deadline has been reached.
func Calculate(deadline, now time.Time) Remaining {
	diff := deadline.UnixMilli() - now.UnixMilli()
	if diff <= 0 {
		return Remaining{}
	}

	return Remaining{
		Active:  true,
		Days:    diff / msPerDay,
		Hours:   int(diff / msPerHour % 24),
		Minutes: int(diff / msPerMinute % 60),
		Seconds: int(diff / msPerSecond % 60),
	}
}

// Total returns the whole-second duration implied by the fields.
func (r Remaining) Total() time.Duration {
	return time.Duration(r.Days)*24*time.Hour +
		time.Duration(r.Hours)*time.Hour +
		time.Duration(r.Minutes)*time.Minute +
		time.Duration(r.Seconds)*time.Second
}

// Expired reports whether the deadline has been reached.
func (r Remaining) Expired() bool {
	return !r.Active
}

// Display renders hours, minutes and seconds as two digits. Days are unpadded.
func (r Remaining) Display() Display {
	return Display{
		Days:    fmt.Sprintf(config.DisplayDays, r.Days),
		Hours:   fmt.Sprintf(config.DisplayPadded, r.Hours),
		Minutes: fmt.Sprintf(config.DisplayPadded, r.Minutes),
		Seconds: fmt.Sprintf(config.DisplayPadded, r.Seconds),
	}
}

// String formats the value as "1d 02:03:04".
func (r Remaining) String() string {
	d := r.Display()
	return fmt.Sprintf(config.FormatTrayRemaining, d.Days, d.Hours, d.Minutes, d.Seconds)
}
