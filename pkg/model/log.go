package model

// DefaultBPM is the tempo shown when nothing has been logged yet.
const DefaultBPM = 120

// LogEntry records what was practiced for one exercise on one date. At most
// one entry exists per (ExerciseID, Date).
type LogEntry struct {
	ID               int64      `json:"id"`
	ExerciseID       int64      `json:"exercise_id"`
	Date             Date       `json:"date"`
	Song             string     `json:"song,omitempty"`
	BPM              int        `json:"bpm,omitempty"`
	Page             string     `json:"page,omitempty"`
	Book             string     `json:"book,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	GlobalNotes      string     `json:"global_notes,omitempty"`
	Completed        bool       `json:"completed"`
	CompletedAt      *Timestamp `json:"completed_at,omitempty"`
	ScaleKeys        []string   `json:"scale_keys,omitempty"`
	ScaleModes       []string   `json:"scale_modes,omitempty"`
	HasScaleSelector bool       `json:"has_scale_selector,omitempty"`
}

// ScalePair is a musical key with a mode.
type ScalePair struct {
	Key  string `json:"key"`
	Mode string `json:"mode"`
}

func (p ScalePair) String() string {
	return p.Key + " " + p.Mode
}

// ScalePairs zips the parallel key/mode arrays. Keys whose mode is missing or
// empty are not valid pairs and are dropped.
func (l LogEntry) ScalePairs() []ScalePair {
	pairs := make([]ScalePair, 0, len(l.ScaleKeys))
	for i, key := range l.ScaleKeys {
		if i >= len(l.ScaleModes) || l.ScaleModes[i] == "" {
			continue
		}
		pairs = append(pairs, ScalePair{Key: key, Mode: l.ScaleModes[i]})
	}
	return pairs
}

// SplitPairs returns parallel key and mode arrays for pairs, or nil for both
// when pairs is empty.
func SplitPairs(pairs []ScalePair) ([]string, []string) {
	if len(pairs) == 0 {
		return nil, nil
	}
	keys := make([]string, len(pairs))
	modes := make([]string, len(pairs))
	for i, p := range pairs {
		keys[i] = p.Key
		modes[i] = p.Mode
	}
	return keys, modes
}

// Clone returns a deep copy of the entry.
func (l LogEntry) Clone() LogEntry {
	out := l
	if l.CompletedAt != nil {
		ts := *l.CompletedAt
		out.CompletedAt = &ts
	}
	if l.ScaleKeys != nil {
		out.ScaleKeys = append([]string(nil), l.ScaleKeys...)
	}
	if l.ScaleModes != nil {
		out.ScaleModes = append([]string(nil), l.ScaleModes...)
	}
	return out
}

// CloneLogs deep-copies a slice of entries.
func CloneLogs(in []LogEntry) []LogEntry {
	if in == nil {
		return nil
	}
	out := make([]LogEntry, len(in))
	for i, l := range in {
		out[i] = l.Clone()
	}
	return out
}
