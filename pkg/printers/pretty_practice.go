package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/uebung/pkg/backup"
	"tableflip.dev/uebung/pkg/derive"
	"tableflip.dev/uebung/pkg/model"
	"tableflip.dev/uebung/pkg/scales"
)

// Plan prints the exercises scheduled on a day.
func (pp *PrettyPrint) Plan(plan derive.Plan) {
	title := fmt.Sprintf("%s %s · Phase %d", plan.Day, plan.Date, plan.Phase)
	if plan.Category == "" {
		pp.Title(title)
		_, _ = color.New(color.Faint, color.Italic).Fprint(pp.out(), " no category assigned to this day\n\n")
		return
	}
	pp.TitleWithCount(title+" · "+plan.Category, len(plan.Items), "exercise")
	if len(plan.Items) == 0 {
		pp.none()
		return
	}

	done := color.New(color.FgGreen)
	open := color.New(color.Faint)
	for _, it := range plan.Items {
		if pp.ShowID {
			_, _ = color.New(color.FgHiYellow, color.Italic, color.Faint).Fprintf(pp.out(), "%-*d", len(spacing), it.Exercise.ID)
		}
		mark := open.Sprint("○")
		if it.Completed {
			mark = done.Sprint("●")
		}
		_, _ = fmt.Fprintf(pp.out(), "%s %s\n", mark, bold(it.Exercise.Name))

		var details []string
		if it.Song != "" {
			details = append(details, it.Song)
		}
		details = append(details, fmt.Sprintf("%d BPM", it.BPM))
		if it.Book != "" {
			book := it.Book
			if it.Page != "" {
				book += " S. " + it.Page
			}
			details = append(details, book)
		}
		if it.Today == nil && it.Last != nil {
			details = append(details, "last "+string(it.Last.Date))
		}
		_, _ = fmt.Fprintf(pp.out(), "  %s\n", faint(strings.Join(details, " · ")))
		if it.GlobalNotes != "" {
			pp.notes("  global notes", it.GlobalNotes)
		}
	}
	pp.NewLine()
}

// Week prints the weekly overview.
func (pp *PrettyPrint) Week(view derive.WeekView) {
	pp.Title(fmt.Sprintf("Week of %s · Phase %d", view.Start, view.Phase))
	tbl := pp.table()
	tbl.AddRow(bold("Day"), bold("Date"), bold("Category"), bold("Done"), bold("Rate"))
	for _, d := range view.Days {
		category := d.Category
		if category == "" {
			category = faint("-")
		}
		rate := fmt.Sprintf("%d%%", d.Rate)
		switch {
		case len(d.Exercises) == 0:
			rate = faint(rate)
		case d.Rate == 100:
			rate = color.GreenString(rate)
		}
		tbl.AddRow(d.Day, string(d.Date), category, fmt.Sprintf("%d/%d", d.Completed, len(d.Exercises)), rate)
	}
	pp.flush(tbl)
}

var hintText = map[string]string{
	derive.HintLowCompletion: "Try to complete at least 50% of your exercises this week!",
	derive.HintStartWeek:     "Start your week strong - complete your first exercise today!",
	derive.HintActiveWeek:    "Great job! You've completed %d exercises this week!",
}

// Progress prints practice statistics.
func (pp *PrettyPrint) Progress(res derive.ProgressResult, label string) {
	title := "Progress"
	if label != "" {
		title = fmt.Sprintf("Progress · last %s", label)
	}
	pp.Title(title)

	tbl := pp.table()
	tbl.AddRow(faint("completion rate"), fmt.Sprintf("%d%%", res.CompletionRate))
	tbl.AddRow(faint("completed"), fmt.Sprintf("%d of %d", res.Completed, res.Total))
	tbl.AddRow(faint("this week"), res.LastWeek)
	pp.flush(tbl)

	pp.TitleWithCount("Recent activity", len(res.Recent), "day")
	if len(res.Recent) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprint(pp.out(), " No completed exercises yet. Start practicing to see your progress!\n\n")
	}
	for _, day := range res.Recent {
		_, _ = fmt.Fprintf(pp.out(), "%s  %s\n", bold(string(day.Date)), faint(fmt.Sprintf("%d completed", len(day.Logs))))
		for _, l := range day.Logs {
			line := fmt.Sprintf("%d BPM", l.BPM)
			if l.Song != "" {
				line = l.Song + " · " + line
			}
			_, _ = fmt.Fprintf(pp.out(), "  #%d  %s\n", l.ExerciseID, line)
		}
	}
	if len(res.Recent) > 0 {
		pp.NewLine()
	}

	if len(res.Phases) > 0 {
		pt := pp.table()
		pt.AddRow(bold("Phase"), bold("Exercises"), bold("Completed"))
		for _, p := range res.Phases {
			pt.AddRow(p.Phase, p.Exercises, p.CompletedLogs)
		}
		pp.flush(pt)
	}

	y := color.New(color.FgYellow)
	for _, h := range res.Hints {
		text := hintText[h]
		if h == derive.HintActiveWeek {
			text = fmt.Sprintf(text, res.LastWeek)
		}
		_, _ = y.Fprintf(pp.out(), "%s\n", text)
	}
	pp.NewLine()
}

// Coverage prints the scale coverage grid of one exercise.
func (pp *PrettyPrint) Coverage(ex model.Exercise, stats scales.Stats, practiced, today []model.ScalePair) {
	pp.Title(fmt.Sprintf("%s · %d/%d scales (%d%%)", ex.Name, stats.Practiced, stats.Total, stats.Percentage))

	seen := make(map[model.ScalePair]bool, len(practiced))
	for _, p := range practiced {
		seen[p] = true
	}
	now := make(map[model.ScalePair]bool, len(today))
	for _, p := range today {
		now[p] = true
	}

	tbl := pp.table()
	header := []interface{}{""}
	for _, k := range scales.Keys {
		header = append(header, bold(shortKey(k)))
	}
	tbl.AddRow(header...)
	for _, m := range scales.Modes {
		row := []interface{}{m}
		for _, k := range scales.Keys {
			p := model.ScalePair{Key: k, Mode: m}
			switch {
			case now[p]:
				row = append(row, color.CyanString("●"))
			case seen[p]:
				row = append(row, color.GreenString("●"))
			default:
				row = append(row, faint("·"))
			}
		}
		tbl.AddRow(row...)
	}
	pp.flush(tbl)
}

func shortKey(k string) string {
	if i := strings.Index(k, "/"); i > 0 {
		return k[:i]
	}
	return k
}

// Pairs prints a list of scale pairs.
func (pp *PrettyPrint) Pairs(title string, pairs []model.ScalePair) {
	pp.TitleWithCount(title, len(pairs), "scale")
	if len(pairs) == 0 {
		pp.none()
		return
	}
	for _, p := range pairs {
		_, _ = fmt.Fprintf(pp.out(), "  %s\n", p)
	}
	pp.NewLine()
}

// ImportReport prints the per-field outcome of an import.
func (pp *PrettyPrint) ImportReport(r backup.ImportReport) {
	switch {
	case r.Complete():
		pp.Done("Import complete.")
	case r.Partial():
		pp.Warn("Import partial: %d of %d fields applied.", len(r.Applied()), len(r.Fields))
	default:
		pp.Warn("Nothing imported.")
	}
	tbl := pp.table()
	for _, f := range r.Fields {
		state := color.GreenString("applied")
		if !f.Applied {
			state = color.YellowString("skipped") + " " + faint(f.Reason)
		}
		tbl.AddRow(f.Field, state)
	}
	pp.flush(tbl)
}

// BackupReminder nudges towards an export when one is due.
func (pp *PrettyPrint) BackupReminder(hasBackup bool) {
	if hasBackup {
		pp.Warn("It has been a while since your last backup. Run `uebung backup export` to save your data.")
		return
	}
	pp.Warn("Don't forget to back up your practice logs. Run `uebung backup export` to save your data.")
}
