package derive

import (
	"tableflip.dev/uebung/pkg/model"
	"tableflip.dev/uebung/pkg/store"
)

// WeekDay is one column of the weekly overview.
type WeekDay struct {
	Date      model.Date       `json:"date" yaml:"date"`
	Day       string           `json:"weekday" yaml:"weekday"`
	Category  string           `json:"category,omitempty" yaml:"category,omitempty"`
	Exercises []model.Exercise `json:"exercises" yaml:"exercises"`
	Completed int              `json:"completed" yaml:"completed"`
	Rate      int              `json:"rate" yaml:"rate"`
}

// WeekView is the Monday-based week containing a date.
type WeekView struct {
	Start model.Date `json:"start" yaml:"start"`
	Phase int        `json:"phase" yaml:"phase"`
	Days  []WeekDay  `json:"days" yaml:"days"`
}

// Week builds the weekly overview for the week containing date. A day's rate
// is the rounded share of its scheduled exercises completed on that date.
func Week(snap store.Snapshot, date model.Date, phase int) (WeekView, error) {
	start, err := model.WeekStart(date)
	if err != nil {
		return WeekView{}, err
	}
	view := WeekView{Start: start, Phase: phase, Days: make([]WeekDay, 0, 7)}
	for _, day := range model.Weekdays() {
		d := start.AddDays(int(day))
		scheduled := ExercisesScheduledFor(snap, day, phase)
		completed := 0
		for _, e := range scheduled {
			if l, ok := LogFor(snap, e.ID, d); ok && l.Completed {
				completed++
			}
		}
		view.Days = append(view.Days, WeekDay{
			Date:      d,
			Day:       day.String(),
			Category:  CategoryFor(snap, day),
			Exercises: scheduled,
			Completed: completed,
			Rate:      percent(completed, len(scheduled)),
		})
	}
	return view, nil
}

// percent rounds half up, like the browser app did.
func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (part*200 + total) / (total * 2)
}

// Activity counts completed logs per date within [since, until].
func Activity(snap store.Snapshot, since, until model.Date) map[model.Date]int {
	out := make(map[model.Date]int)
	for _, l := range snap.Logs {
		if !l.Completed || l.Date.Before(since) || until.Before(l.Date) {
			continue
		}
		out[l.Date]++
	}
	return out
}
