package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/uebung/pkg/model"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Month prints a Monday-first calendar of the month containing then. Days
// with completed practice are bold and today is underlined.
func (pp *PrettyPrint) Month(then model.Date, count map[model.Date]int, today model.Date) error {
	t, err := then.Time()
	if err != nil {
		return err
	}
	first := time.Date(t.Year(), t.Month(), 1, 12, 0, 0, 0, time.UTC)

	tf := color.New(color.FgWhite, color.Italic)
	m := fmt.Sprintf("%s %d", first.Month(), first.Year())
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), m)
	_, _ = color.New(color.Faint).Fprintln(pp.out(), "Mo Tu We Th Fr Sa Su")

	// Pad out the start of the month.
	d := model.FromTimeWeekday(first.Weekday())
	_, _ = fmt.Fprint(pp.out(), strings.Repeat("   ", int(d)))

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)
	now := color.New(color.Underline)

	days := DaysIn(first)
	for i := 0; i < days; i++ {
		date := model.DateOf(first.AddDate(0, 0, i))
		printer := l1
		if count[date] > 0 {
			printer = l2
		}
		if date == today {
			printer = now
			if count[date] > 0 {
				printer = color.New(color.Underline, color.Bold)
			}
		}
		_, _ = printer.Fprintf(pp.out(), "%2d", i+1)
		_, _ = fmt.Fprint(pp.out(), " ")

		d++
		if d > model.Sunday {
			d = model.Monday
			_, _ = fmt.Fprint(pp.out(), "\n")
		}
	}
	_, _ = fmt.Fprint(pp.out(), "\n\n")
	return nil
}

func DaysIn(then time.Time) int {
	return time.Date(then.UTC().Year(), then.UTC().Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
