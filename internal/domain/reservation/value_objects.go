package reservation

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidStayPeriod = errors.New("invalid stay period")
	ErrInvalidGuestCount = errors.New("invalid guest count")
)

// StayPeriod is an inclusive calendar date range. Both endpoints are
// normalized to UTC midnight; a single-day stay has start == end.
type StayPeriod struct {
	start time.Time
	end   time.Time
}

func NewStayPeriod(start, end time.Time) (StayPeriod, error) {
	s := dateOf(start)
	e := dateOf(end)
	if e.Before(s) {
		return StayPeriod{}, ErrInvalidStayPeriod
	}
	return StayPeriod{start: s, end: e}, nil
}

func (p StayPeriod) Start() time.Time {
	return p.start
}

func (p StayPeriod) End() time.Time {
	return p.end
}

// Overlaps uses inclusive endpoints on both sides: sharing a single day
// counts as an overlap.
func (p StayPeriod) Overlaps(other StayPeriod) bool {
	return !p.end.Before(other.start) && !other.end.Before(p.start)
}

func (p StayPeriod) Equals(other StayPeriod) bool {
	return p.start.Equal(other.start) && p.end.Equal(other.end)
}

func (p StayPeriod) Nights() int {
	return int(p.end.Sub(p.start).Hours() / 24)
}

func (p StayPeriod) String() string {
	return fmt.Sprintf("[%s, %s]", p.start.Format("2006-01-02"), p.end.Format("2006-01-02"))
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type GuestCount struct {
	value int
}

func NewGuestCount(value int) (GuestCount, error) {
	if value < 1 {
		return GuestCount{}, ErrInvalidGuestCount
	}
	return GuestCount{value: value}, nil
}

func (g GuestCount) Value() int {
	return g.value
}
