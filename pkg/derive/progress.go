package derive

import (
	"sort"
	"time"

	"tableflip.dev/uebung/pkg/model"
	"tableflip.dev/uebung/pkg/store"
)

// RecentDays is how many dates the progress view lists.
const RecentDays = 7

// Hint codes attached to a progress result.
const (
	HintLowCompletion = "low-completion"
	HintStartWeek     = "start-week"
	HintActiveWeek    = "active-week"
)

// DayGroup holds the completed logs of one date.
type DayGroup struct {
	Date model.Date       `json:"date" yaml:"date"`
	Logs []model.LogEntry `json:"logs" yaml:"logs"`
}

// PhaseStat counts templates and completed logs per phase.
type PhaseStat struct {
	Phase         int `json:"phase" yaml:"phase"`
	Exercises     int `json:"exercises" yaml:"exercises"`
	CompletedLogs int `json:"completed_logs" yaml:"completed_logs"`
}

// ProgressResult summarises practice logs within a date window.
type ProgressResult struct {
	Since          model.Date  `json:"since,omitempty" yaml:"since,omitempty"`
	Until          model.Date  `json:"until,omitempty" yaml:"until,omitempty"`
	Total          int         `json:"total" yaml:"total"`
	Completed      int         `json:"completed" yaml:"completed"`
	CompletionRate int         `json:"completion_rate" yaml:"completion_rate"`
	LastWeek       int         `json:"completed_last_week" yaml:"completed_last_week"`
	Recent         []DayGroup  `json:"recent" yaml:"recent"`
	Phases         []PhaseStat `json:"phases" yaml:"phases"`
	Hints          []string    `json:"hints" yaml:"hints"`
}

// Progress computes statistics over the logs dated within [since, until].
// An empty bound leaves that side open. The last-week count is relative to
// now and uses completion time, falling back to the log date.
func Progress(snap store.Snapshot, since, until model.Date, now time.Time) ProgressResult {
	if since != "" && until != "" && until.Before(since) {
		since, until = until, since
	}
	res := ProgressResult{
		Since:  since,
		Until:  until,
		Recent: make([]DayGroup, 0),
		Phases: make([]PhaseStat, 0),
		Hints:  make([]string, 0),
	}

	weekAgo := now.AddDate(0, 0, -7)
	byDate := make(map[model.Date][]model.LogEntry)
	completedByExercise := make(map[int64]int)
	for _, l := range snap.Logs {
		if since != "" && l.Date.Before(since) {
			continue
		}
		if until != "" && until.Before(l.Date) {
			continue
		}
		res.Total++
		if !l.Completed {
			continue
		}
		res.Completed++
		completedByExercise[l.ExerciseID]++
		byDate[l.Date] = append(byDate[l.Date], l.Clone())
		if !completionTime(l).Before(weekAgo) {
			res.LastWeek++
		}
	}
	res.CompletionRate = percent(res.Completed, res.Total)

	dates := make([]model.Date, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[j].Before(dates[i]) })
	if len(dates) > RecentDays {
		dates = dates[:RecentDays]
	}
	for _, d := range dates {
		res.Recent = append(res.Recent, DayGroup{Date: d, Logs: byDate[d]})
	}

	for _, p := range snap.Phases {
		stat := PhaseStat{Phase: p}
		for _, e := range ExercisesInPhase(snap, p) {
			stat.Exercises++
			stat.CompletedLogs += completedByExercise[e.ID]
		}
		res.Phases = append(res.Phases, stat)
	}

	if res.CompletionRate < 50 {
		res.Hints = append(res.Hints, HintLowCompletion)
	}
	if res.LastWeek == 0 {
		res.Hints = append(res.Hints, HintStartWeek)
	} else {
		res.Hints = append(res.Hints, HintActiveWeek)
	}
	return res
}

func completionTime(l model.LogEntry) time.Time {
	if l.CompletedAt != nil && !l.CompletedAt.IsZero() {
		return l.CompletedAt.Time
	}
	t, err := l.Date.Time()
	if err != nil {
		return time.Time{}
	}
	return t
}
