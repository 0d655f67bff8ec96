package derive

import (
	"tableflip.dev/uebung/pkg/model"
	"tableflip.dev/uebung/pkg/store"
)

// PlanItem is one scheduled exercise of a day together with its logs.
type PlanItem struct {
	Exercise model.Exercise  `json:"exercise" yaml:"exercise"`
	Today    *model.LogEntry `json:"today,omitempty" yaml:"today,omitempty"`
	Last     *model.LogEntry `json:"last,omitempty" yaml:"last,omitempty"`

	// Display values prefer the day's log over the previous one.
	Song        string `json:"song,omitempty" yaml:"song,omitempty"`
	BPM         int    `json:"bpm" yaml:"bpm"`
	Book        string `json:"book,omitempty" yaml:"book,omitempty"`
	Page        string `json:"page,omitempty" yaml:"page,omitempty"`
	Notes       string `json:"notes,omitempty" yaml:"notes,omitempty"`
	GlobalNotes string `json:"global_notes,omitempty" yaml:"global_notes,omitempty"`
	Completed   bool   `json:"completed" yaml:"completed"`
}

// Plan is the dashboard of one date.
type Plan struct {
	Date     model.Date    `json:"date" yaml:"date"`
	Weekday  model.Weekday `json:"-" yaml:"-"`
	Day      string        `json:"weekday" yaml:"weekday"`
	Category string        `json:"category,omitempty" yaml:"category,omitempty"`
	Phase    int           `json:"phase" yaml:"phase"`
	Items    []PlanItem    `json:"items" yaml:"items"`
}

// Completed counts the items completed on the plan's date.
func (p Plan) Completed() int {
	n := 0
	for _, it := range p.Items {
		if it.Completed {
			n++
		}
	}
	return n
}

// DayPlan lists the exercises scheduled on date for phase.
func DayPlan(snap store.Snapshot, date model.Date, phase int) (Plan, error) {
	day, err := model.WeekdayOf(date)
	if err != nil {
		return Plan{}, err
	}
	plan := Plan{
		Date:     date,
		Weekday:  day,
		Day:      day.String(),
		Category: CategoryFor(snap, day),
		Phase:    phase,
		Items:    make([]PlanItem, 0),
	}
	for _, e := range ExercisesScheduledFor(snap, day, phase) {
		plan.Items = append(plan.Items, planItem(snap, e, date))
	}
	return plan, nil
}

func planItem(snap store.Snapshot, e model.Exercise, date model.Date) PlanItem {
	item := PlanItem{
		Exercise:    e,
		BPM:         model.DefaultBPM,
		GlobalNotes: GlobalNotesFor(snap, e.ID),
	}
	if last, ok := LastLogBefore(snap, e.ID, date); ok {
		item.Last = &last
		item.Song, item.Book, item.Page = last.Song, last.Book, last.Page
		if last.BPM > 0 {
			item.BPM = last.BPM
		}
	}
	if today, ok := LogFor(snap, e.ID, date); ok {
		item.Today = &today
		item.Song = firstNonEmpty(today.Song, item.Song)
		item.Book = firstNonEmpty(today.Book, item.Book)
		item.Page = firstNonEmpty(today.Page, item.Page)
		if today.BPM > 0 {
			item.BPM = today.BPM
		}
		item.Notes = today.Notes
		item.Completed = today.Completed
	}
	return item
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
