// Package derive computes read-only views over a store snapshot: what is
// scheduled on a day, which log belongs to which exercise, and the weekly
// and overall progress figures.
package derive

import (
	"tableflip.dev/uebung/pkg/model"
	"tableflip.dev/uebung/pkg/store"
)

// ExercisesInPhase returns the templates of phase in insertion order.
func ExercisesInPhase(snap store.Snapshot, phase int) []model.Exercise {
	out := make([]model.Exercise, 0)
	for _, e := range snap.Exercises {
		if e.Phase == phase {
			out = append(out, e)
		}
	}
	return out
}

// CategoryFor returns the category assigned to day, or "" when the weekday
// has none. Headers stored under another spelling of the weekday still
// match.
func CategoryFor(snap store.Snapshot, day model.Weekday) string {
	if c, ok := snap.DayHeaders[day.String()]; ok {
		return c
	}
	for label, c := range snap.DayHeaders {
		if w, err := model.ParseWeekday(label); err == nil && w == day {
			return c
		}
	}
	return ""
}

// ExercisesScheduledFor returns the templates of phase whose category is
// assigned to day. An unassigned weekday yields an empty list.
func ExercisesScheduledFor(snap store.Snapshot, day model.Weekday, phase int) []model.Exercise {
	out := make([]model.Exercise, 0)
	category := CategoryFor(snap, day)
	if category == "" {
		return out
	}
	for _, e := range ExercisesInPhase(snap, phase) {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// LogsForDate returns every log written for date.
func LogsForDate(snap store.Snapshot, date model.Date) []model.LogEntry {
	out := make([]model.LogEntry, 0)
	for _, l := range snap.Logs {
		if l.Date == date {
			out = append(out, l.Clone())
		}
	}
	return out
}

// LogFor returns the log of exerciseID on date.
func LogFor(snap store.Snapshot, exerciseID int64, date model.Date) (model.LogEntry, bool) {
	for _, l := range snap.Logs {
		if l.ExerciseID == exerciseID && l.Date == date {
			return l.Clone(), true
		}
	}
	return model.LogEntry{}, false
}

// LastLogFor returns the log of exerciseID with the latest date. Among logs
// sharing that date the one saved last wins.
func LastLogFor(snap store.Snapshot, exerciseID int64) (model.LogEntry, bool) {
	return latest(snap.Logs, func(l model.LogEntry) bool {
		return l.ExerciseID == exerciseID
	})
}

// LastLogBefore is LastLogFor restricted to dates before date.
func LastLogBefore(snap store.Snapshot, exerciseID int64, date model.Date) (model.LogEntry, bool) {
	return latest(snap.Logs, func(l model.LogEntry) bool {
		return l.ExerciseID == exerciseID && l.Date.Before(date)
	})
}

// GlobalNotesFor returns the most recent non-empty global notes of
// exerciseID, or "".
func GlobalNotesFor(snap store.Snapshot, exerciseID int64) string {
	l, ok := latest(snap.Logs, func(l model.LogEntry) bool {
		return l.ExerciseID == exerciseID && l.GlobalNotes != ""
	})
	if !ok {
		return ""
	}
	return l.GlobalNotes
}

func latest(logs []model.LogEntry, match func(model.LogEntry) bool) (model.LogEntry, bool) {
	found := -1
	for i, l := range logs {
		if !match(l) {
			continue
		}
		if found < 0 || !l.Date.Before(logs[found].Date) {
			found = i
		}
	}
	if found < 0 {
		return model.LogEntry{}, false
	}
	return logs[found].Clone(), true
}

// Exercise looks a template up by id.
func Exercise(snap store.Snapshot, id int64) (model.Exercise, bool) {
	for _, e := range snap.Exercises {
		if e.ID == id {
			return e, true
		}
	}
	return model.Exercise{}, false
}

// PhaseInfo reports how many templates use a phase and whether it can be
// removed.
type PhaseInfo struct {
	Phase     int  `json:"phase" yaml:"phase"`
	Exercises int  `json:"exercises" yaml:"exercises"`
	Current   bool `json:"current" yaml:"current"`
	Removable bool `json:"removable" yaml:"removable"`
}

// PhaseUsage returns the PhaseInfo of phase.
func PhaseUsage(snap store.Snapshot, phase int) PhaseInfo {
	n := len(ExercisesInPhase(snap, phase))
	return PhaseInfo{
		Phase:     phase,
		Exercises: n,
		Current:   snap.CurrentPhase == phase,
		Removable: n == 0,
	}
}

// Phases returns the PhaseInfo of every phase in the set.
func Phases(snap store.Snapshot) []PhaseInfo {
	out := make([]PhaseInfo, 0, len(snap.Phases))
	for _, p := range snap.Phases {
		out = append(out, PhaseUsage(snap, p))
	}
	return out
}
