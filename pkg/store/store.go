// Package store owns the practice tracker's canonical collections and their
// persisted form. Each collection lives under its own key and is written on
// its own. A mutation persists first and updates memory only after the write
// succeeded, so memory and storage never silently diverge.
package store

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/uebung/pkg/kv"
	"tableflip.dev/uebung/pkg/logging"
	"tableflip.dev/uebung/pkg/model"
)

// Storage keys, kept compatible with the browser app's localStorage layout.
const (
	KeyExercises    = "musicExercises"
	KeyLogs         = "practiceLogs"
	KeyCategories   = "categories"
	KeyPhases       = "availablePhases"
	KeyCurrentPhase = "currentPhase"
	KeyDayHeaders   = "dayHeaders"
	KeyLastBackup   = "lastBackupDate"
)

// DefaultPhase is the phase selected on first start and after the current
// phase is removed.
const DefaultPhase = 1

// DefaultCategories is the starter category list.
func DefaultCategories() []string {
	cats := []string{"Akkorde", "Tonleitern", "Technik", "Jazz", "Vom-Blatt-Spiel", "Lieder", "Theorie"}
	sort.Strings(cats)
	return cats
}

// DefaultPhases is the starter phase set.
func DefaultPhases() []int {
	return []int{1, 2, 3, 4, 5}
}

// SeedExercises returns the example templates written on first start.
func SeedExercises(now time.Time) []model.Exercise {
	created := model.Stamp(now)
	return []model.Exercise{
		{ID: 1, Category: "Akkorde", Name: "Akkordfolgen", Phase: 1, CreatedAt: created},
		{ID: 2, Category: "Tonleitern", Name: "Tonleiterübung", Phase: 1, CreatedAt: created},
		{ID: 3, Category: "Technik", Name: "Fingerunabhängigkeit", Phase: 1, CreatedAt: created},
	}
}

// Snapshot is a read-only copy of every collection.
type Snapshot struct {
	Exercises    []model.Exercise
	Logs         []model.LogEntry
	Categories   []string
	DayHeaders   map[string]string
	Phases       []int
	CurrentPhase int
	LastBackup   *time.Time
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Exercises:    model.CloneExercises(s.Exercises),
		Logs:         model.CloneLogs(s.Logs),
		Categories:   cloneStrings(s.Categories),
		DayHeaders:   cloneHeaders(s.DayHeaders),
		Phases:       cloneInts(s.Phases),
		CurrentPhase: s.CurrentPhase,
	}
	if s.LastBackup != nil {
		t := *s.LastBackup
		out.LastBackup = &t
	}
	return out
}

// Store holds the collections in memory and writes them through to kv.
type Store struct {
	mu   sync.RWMutex
	kv   kv.Storage
	log  *zap.SugaredLogger
	snap Snapshot
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Store) {
		s.log = logging.OrNop(l)
	}
}

// Load reads every collection from storage, applying defaults for absent
// keys. Default categories, phases and templates are written back so that
// later loads see the same seed.
func Load(storage kv.Storage, now time.Time, opts ...Option) (*Store, error) {
	if storage == nil {
		return nil, errors.New("store: no storage configured")
	}
	s := &Store{kv: storage, log: logging.Nop()}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	if s.snap.Categories, err = loadOrSeed(s, KeyCategories, DefaultCategories); err != nil {
		return nil, err
	}
	if s.snap.Phases, err = loadOrSeed(s, KeyPhases, DefaultPhases); err != nil {
		return nil, err
	}
	if s.snap.Exercises, err = loadOrSeed(s, KeyExercises, func() []model.Exercise { return SeedExercises(now) }); err != nil {
		return nil, err
	}

	logs, _, err := read[[]model.LogEntry](s.kv, KeyLogs)
	if err != nil {
		return nil, err
	}
	s.snap.Logs = logs

	headers, ok, err := read[map[string]string](s.kv, KeyDayHeaders)
	if err != nil {
		return nil, err
	}
	if !ok || headers == nil {
		headers = map[string]string{}
	}
	s.snap.DayHeaders = headers

	phase, ok, err := read[int](s.kv, KeyCurrentPhase)
	if err != nil {
		return nil, err
	}
	if !ok || phase <= 0 {
		phase = DefaultPhase
	}
	s.snap.CurrentPhase = phase

	if s.snap.LastBackup, err = readLastBackup(s.kv); err != nil {
		return nil, err
	}

	s.log.Debugw("store loaded",
		"exercises", len(s.snap.Exercises),
		"logs", len(s.snap.Logs),
		"categories", len(s.snap.Categories),
		"phases", s.snap.Phases,
		"currentPhase", s.snap.CurrentPhase,
	)
	return s, nil
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// persist encodes v and writes it under key. Callers hold s.mu.
func (s *Store) persist(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &kv.StorageError{Op: "encode", Key: key, Err: err}
	}
	if err := s.kv.Write(key, string(data)); err != nil {
		s.log.Warnw("persist failed", "key", key, "error", err)
		return err
	}
	s.log.Debugw("persisted", "key", key, "bytes", len(data))
	return nil
}

func loadOrSeed[T any](s *Store, key string, seed func() T) (T, error) {
	v, ok, err := read[T](s.kv, key)
	if err != nil || ok {
		return v, err
	}
	v = seed()
	s.log.Debugw("seeding default", "key", key)
	if err := s.persist(key, v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

func read[T any](storage kv.Storage, key string) (T, bool, error) {
	var v T
	raw, ok, err := storage.Read(key)
	if err != nil || !ok {
		return v, false, err
	}
	if strings.TrimSpace(raw) == "" || strings.TrimSpace(raw) == "null" {
		return v, false, nil
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return v, false, &kv.StorageError{Op: "decode", Key: key, Err: err}
	}
	return v, true, nil
}

// readLastBackup accepts a JSON string as well as the bare ISO text the
// browser app wrote.
func readLastBackup(storage kv.Storage) (*time.Time, error) {
	raw, ok, err := storage.Read(KeyLastBackup)
	if err != nil || !ok {
		return nil, err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, nil
	}
	var text string
	if err := json.Unmarshal([]byte(raw), &text); err != nil {
		text = raw
	}
	t, err := model.ParseTime(text)
	if err != nil {
		return nil, &kv.StorageError{Op: "decode", Key: KeyLastBackup, Err: err}
	}
	return &t, nil
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func cloneInts(in []int) []int {
	if in == nil {
		return nil
	}
	return append([]int(nil), in...)
}

func cloneHeaders(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
