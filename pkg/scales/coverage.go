package scales

import "tableflip.dev/uebung/pkg/model"

// Stats is the coverage of one exercise over the catalog.
type Stats struct {
	Practiced  int `json:"practiced" yaml:"practiced"`
	Total      int `json:"total" yaml:"total"`
	Percentage int `json:"percentage" yaml:"percentage"`
}

// PracticedPairs returns the distinct valid pairs logged for exerciseID on
// any date, in the order they were first seen.
func PracticedPairs(logs []model.LogEntry, exerciseID int64) []model.ScalePair {
	seen := make(map[model.ScalePair]bool)
	out := make([]model.ScalePair, 0)
	for _, l := range logs {
		if l.ExerciseID != exerciseID {
			continue
		}
		for _, p := range l.ScalePairs() {
			if seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// TodayPairs returns the valid pairs of the log for exerciseID on date.
func TodayPairs(logs []model.LogEntry, exerciseID int64, date model.Date) []model.ScalePair {
	for _, l := range logs {
		if l.ExerciseID == exerciseID && l.Date == date {
			return l.ScalePairs()
		}
	}
	return nil
}

// IsPracticed reports whether key/mode was ever logged for exerciseID.
func IsPracticed(logs []model.LogEntry, exerciseID int64, key, mode string) bool {
	want := model.ScalePair{Key: key, Mode: mode}
	for _, p := range PracticedPairs(logs, exerciseID) {
		if p == want {
			return true
		}
	}
	return false
}

// IsPracticedToday reports whether key/mode was logged for exerciseID on
// date.
func IsPracticedToday(logs []model.LogEntry, exerciseID int64, key, mode string, date model.Date) bool {
	want := model.ScalePair{Key: key, Mode: mode}
	for _, p := range TodayPairs(logs, exerciseID, date) {
		if p == want {
			return true
		}
	}
	return false
}

// Coverage counts the catalog pairs practiced for exerciseID. Pairs outside
// the catalog are not counted, so Practiced never exceeds Total.
func Coverage(logs []model.LogEntry, exerciseID int64) Stats {
	n := 0
	for _, p := range PracticedPairs(logs, exerciseID) {
		if InCatalog(p) {
			n++
		}
	}
	return Stats{
		Practiced:  n,
		Total:      Total,
		Percentage: (n*200 + Total) / (Total * 2),
	}
}

// Suggestions returns up to limit catalog pairs not yet practiced for
// exerciseID, keys first then modes. A limit of zero or less returns all of
// them.
func Suggestions(logs []model.LogEntry, exerciseID int64, limit int) []model.ScalePair {
	done := make(map[model.ScalePair]bool)
	for _, p := range PracticedPairs(logs, exerciseID) {
		done[p] = true
	}
	out := make([]model.ScalePair, 0)
	for _, p := range Catalog() {
		if done[p] {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
