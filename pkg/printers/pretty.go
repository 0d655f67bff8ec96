package printers

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/uebung/pkg/derive"
	"tableflip.dev/uebung/pkg/model"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
	// Width wraps notes. Zero means 72 columns.
	Width int
}

var (
	spacing = strings.Repeat(" ", len("1700000000000  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) width() int {
	if pp.Width > 0 {
		return pp.Width
	}
	return 72
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintf(pp.out(), " %s\n", noun)
	default:
		_, _ = c.Fprintf(pp.out(), " %ss\n", noun)
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Warn prints a yellow notice.
func (pp *PrettyPrint) Warn(format string, args ...any) {
	_, _ = color.New(color.FgYellow).Fprintf(pp.out(), format+"\n", args...)
}

// Done prints a green confirmation.
func (pp *PrettyPrint) Done(format string, args ...any) {
	_, _ = color.New(color.FgGreen).Fprintf(pp.out(), format+"\n", args...)
}

func (pp *PrettyPrint) table() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	return tbl
}

func (pp *PrettyPrint) flush(tbl *uitable.Table) {
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func bold(s string) string {
	return color.New(color.Bold).Sprint(s)
}

func faint(s string) string {
	return color.New(color.Faint).Sprint(s)
}

// Exercises prints templates as a table.
func (pp *PrettyPrint) Exercises(title string, exercises []model.Exercise) {
	pp.TitleWithCount(title, len(exercises), "exercise")
	if len(exercises) == 0 {
		pp.none()
		return
	}
	tbl := pp.table()
	tbl.AddRow(bold("ID"), bold("Name"), bold("Category"), bold("Phase"), bold("Scales"))
	for _, e := range exercises {
		scales := ""
		if e.HasScaleSelector {
			scales = "yes"
		}
		tbl.AddRow(e.ID, e.Name, e.Category, e.Phase, scales)
	}
	pp.flush(tbl)
}

// Log prints one practice log with its details.
func (pp *PrettyPrint) Log(title string, l model.LogEntry) {
	pp.Title(title)
	tbl := pp.table()
	tbl.AddRow(faint("date"), string(l.Date))
	addText := func(label, v string) {
		if v != "" {
			tbl.AddRow(faint(label), v)
		}
	}
	addText("song", l.Song)
	if l.BPM > 0 {
		tbl.AddRow(faint("bpm"), l.BPM)
	}
	addText("book", l.Book)
	addText("page", l.Page)
	if pairs := l.ScalePairs(); len(pairs) > 0 {
		tbl.AddRow(faint("scales"), joinPairs(pairs))
	}
	status := "open"
	if l.Completed {
		status = color.GreenString("completed")
		if l.CompletedAt != nil {
			status += " " + faint(l.CompletedAt.Local().Format("2006-01-02 15:04"))
		}
	}
	tbl.AddRow(faint("status"), status)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.notes("notes", l.Notes)
	pp.notes("global notes", l.GlobalNotes)
	pp.NewLine()
}

func (pp *PrettyPrint) notes(label, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	_, _ = fmt.Fprintln(pp.out(), faint(label))
	for _, line := range strings.Split(wordwrap.String(text, pp.width()-2), "\n") {
		_, _ = fmt.Fprintf(pp.out(), "  %s\n", line)
	}
}

func joinPairs(pairs []model.ScalePair) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

// Categories prints the category set.
func (pp *PrettyPrint) Categories(categories []string) {
	pp.TitleWithCount("Categories", len(categories), "category")
	if len(categories) == 0 {
		pp.none()
		return
	}
	for _, c := range categories {
		_, _ = fmt.Fprintf(pp.out(), "  %s\n", c)
	}
	pp.NewLine()
}

// Phases prints the phase set with usage.
func (pp *PrettyPrint) Phases(phases []derive.PhaseInfo) {
	pp.TitleWithCount("Phases", len(phases), "phase")
	if len(phases) == 0 {
		pp.none()
		return
	}
	tbl := pp.table()
	tbl.AddRow(bold("Phase"), bold("Exercises"), "")
	for _, p := range phases {
		marker := ""
		if p.Current {
			marker = color.CyanString("current")
		}
		tbl.AddRow(strconv.Itoa(p.Phase), p.Exercises, marker)
	}
	pp.flush(tbl)
}

// Schedule prints the weekday to category assignment.
func (pp *PrettyPrint) Schedule(days []string, categories []string) {
	pp.Title("Schedule")
	tbl := pp.table()
	for i, d := range days {
		c := categories[i]
		if c == "" {
			c = faint("-")
		}
		tbl.AddRow(d, c)
	}
	pp.flush(tbl)
}
