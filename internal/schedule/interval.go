package schedule

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidInterval  = errors.New("invalid interval: start must be before end")
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrInvalidDate      = errors.New("invalid date")
)

// MinutesPerDay bounds TimeOfDay values.
const MinutesPerDay = 24 * 60

// TimeOfDay is a wall-clock time stored as minutes since midnight.
// The zero value is midnight. Values compare with the usual operators.
type TimeOfDay int

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, ErrInvalidTimeOfDay
	}
	return TimeOfDay(hour*60 + minute), nil
}

// ParseTimeOfDay accepts "HH:MM" and "HH:MM:SS". Times are stored with
// minute resolution, so a seconds component must be "00".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hour, minute, second int
	switch n, _ := fmt.Sscanf(s, "%d:%d:%d", &hour, &minute, &second); n {
	case 2, 3:
		if second != 0 {
			return 0, ErrInvalidTimeOfDay
		}
		return NewTimeOfDay(hour, minute)
	default:
		return 0, ErrInvalidTimeOfDay
	}
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// Add returns the time shifted by the given number of minutes. The result is
// not wrapped at midnight, so it can be used as an exclusive end bound.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:00", t.Hour(), t.Minute())
}

// Date is a calendar date without a time zone. Dates are comparable with ==
// and ordered with Before.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) (Date, error) {
	if month < time.January || month > time.December {
		return Date{}, ErrInvalidDate
	}
	if day < 1 || day > daysIn(year, month) {
		return Date{}, ErrInvalidDate
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(t), nil
}

// DateOf truncates a time.Time to its calendar date in the time's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Interval is a booked time range on a zone's calendar for one day.
// A cancelled interval is kept for history but is inert: every concurrency
// computation and availability search must skip it.
type Interval struct {
	ZoneID    int
	Date      Date
	Start     TimeOfDay
	End       TimeOfDay
	Cancelled bool
}

func NewInterval(zoneID int, date Date, start, end TimeOfDay) (Interval, error) {
	if start >= end {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{ZoneID: zoneID, Date: date, Start: start, End: end}, nil
}

// Overlaps reports whether two intervals share an instant. Intervals are
// half-open, so touching endpoints do not overlap. Intervals on different
// dates never overlap.
func (iv Interval) Overlaps(other Interval) bool {
	if iv.Date != other.Date {
		return false
	}
	return iv.Start < other.End && other.Start < iv.End
}

// ContainsInstant reports whether t falls inside the interval.
func (iv Interval) ContainsInstant(t TimeOfDay) bool {
	return iv.Start <= t && t < iv.End
}
