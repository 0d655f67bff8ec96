package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// LayoutISO is the calendar date layout used for log dates.
const LayoutISO = "2006-01-02"

var (
	// ErrInvalidDate is returned when a value is not a YYYY-MM-DD date.
	ErrInvalidDate = errors.New("model: invalid date")
	// ErrUnknownWeekday is returned for labels outside the seven weekdays.
	ErrUnknownWeekday = errors.New("model: unknown weekday")
)

// Date is a calendar day in YYYY-MM-DD form. It carries no time of day, and
// lexicographic order matches chronological order.
type Date string

// ParseDate validates s and returns it as a Date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(LayoutISO, s)
	if err != nil {
		return "", fmt.Errorf("%w %q", ErrInvalidDate, s)
	}
	return Date(t.Format(LayoutISO)), nil
}

// MustDate parses s and panics on error. Intended for tests and fixtures.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf returns the local calendar day of t.
func DateOf(t time.Time) Date {
	return Date(t.Format(LayoutISO))
}

// Time returns the date at noon UTC, far enough from midnight that zone
// shifts never move it to a neighbouring day.
func (d Date) Time() (time.Time, error) {
	t, err := time.Parse(LayoutISO, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q", ErrInvalidDate, string(d))
	}
	return t.Add(12 * time.Hour), nil
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	t, err := d.Time()
	if err != nil {
		return d
	}
	return Date(t.AddDate(0, 0, n).Format(LayoutISO))
}

// Before reports whether d is an earlier day than other.
func (d Date) Before(other Date) bool {
	return d < other
}

func (d Date) String() string {
	return string(d)
}

// Weekday is a Monday-first day index: Monday=0 … Sunday=6.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayLabels = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Older backups were written with German labels.
var weekdayAliases = map[string]Weekday{
	"montag":     Monday,
	"dienstag":   Tuesday,
	"mittwoch":   Wednesday,
	"donnerstag": Thursday,
	"freitag":    Friday,
	"samstag":    Saturday,
	"sonntag":    Sunday,
	"mon":        Monday,
	"tue":        Tuesday,
	"wed":        Wednesday,
	"thu":        Thursday,
	"fri":        Friday,
	"sat":        Saturday,
	"sun":        Sunday,
}

// Weekdays returns the seven weekdays, Monday first.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// WeekdayLabels returns the canonical labels, Monday first.
func WeekdayLabels() []string {
	out := make([]string, len(weekdayLabels))
	copy(out, weekdayLabels[:])
	return out
}

func (w Weekday) String() string {
	if w < Monday || w > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayLabels[w]
}

// ParseWeekday maps a label (case-insensitive, English or German, full or
// three-letter) to its Weekday.
func ParseWeekday(label string) (Weekday, error) {
	l := strings.ToLower(strings.TrimSpace(label))
	for i, name := range weekdayLabels {
		if strings.ToLower(name) == l {
			return Weekday(i), nil
		}
	}
	if w, ok := weekdayAliases[l]; ok {
		return w, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownWeekday, label)
}

// FromTimeWeekday remaps Go's Sunday=0 numbering to Monday-first.
func FromTimeWeekday(w time.Weekday) Weekday {
	return Weekday((int(w) + 6) % 7)
}

// TimeWeekday converts back to Go's Sunday=0 numbering.
func (w Weekday) TimeWeekday() time.Weekday {
	return time.Weekday((int(w) + 1) % 7)
}

// WeekdayOf is the single conversion point from a date to its weekday.
func WeekdayOf(d Date) (Weekday, error) {
	t, err := d.Time()
	if err != nil {
		return 0, err
	}
	return FromTimeWeekday(t.Weekday()), nil
}

// WeekStart returns the Monday of the week containing d.
func WeekStart(d Date) (Date, error) {
	w, err := WeekdayOf(d)
	if err != nil {
		return "", err
	}
	return d.AddDays(-int(w)), nil
}

// MonthBounds returns the first and last day of the month containing d.
func MonthBounds(d Date) (Date, Date, error) {
	t, err := d.Time()
	if err != nil {
		return "", "", err
	}
	first := time.Date(t.Year(), t.Month(), 1, 12, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return DateOf(first), DateOf(last), nil
}
