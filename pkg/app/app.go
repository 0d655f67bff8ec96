package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/uebung/pkg/derive"
	"tableflip.dev/uebung/pkg/logging"
	"tableflip.dev/uebung/pkg/model"
	"tableflip.dev/uebung/pkg/store"
)

// Service provides high-level operations over the practice store.
// It wraps the store, derivations and sessions so the CLI, TUI and MCP
// server can share logic.
type Service struct {
	Store *store.Store
	// Now is the clock. It defaults to time.Now.
	Now func() time.Time
	Log *zap.SugaredLogger
}

var errNoStore = errors.New("app: no store configured")

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) logger() *zap.SugaredLogger {
	return logging.OrNop(s.Log)
}

// Today is the current calendar date.
func (s *Service) Today() model.Date {
	return model.DateOf(s.now())
}

func (s *Service) snapshot(ctx context.Context) (store.Snapshot, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return store.Snapshot{}, err
		}
	}
	if s.Store == nil {
		return store.Snapshot{}, errNoStore
	}
	return s.Store.Snapshot(), nil
}

func (s *Service) ready(ctx context.Context) error {
	_, err := s.snapshot(ctx)
	return err
}

// Snapshot returns a copy of every collection.
func (s *Service) Snapshot(ctx context.Context) (store.Snapshot, error) {
	return s.snapshot(ctx)
}

// Exercises lists templates in insertion order. A phase of zero lists all
// of them.
func (s *Service) Exercises(ctx context.Context, phase int) ([]model.Exercise, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if phase == 0 {
		return snap.Exercises, nil
	}
	return derive.ExercisesInPhase(snap, phase), nil
}

// Exercise returns the template with id.
func (s *Service) Exercise(ctx context.Context, id int64) (model.Exercise, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return model.Exercise{}, err
	}
	e, ok := derive.Exercise(snap, id)
	if !ok {
		return model.Exercise{}, fmt.Errorf("%w: %d", store.ErrExerciseNotFound, id)
	}
	return e, nil
}

// AddExercise creates a template.
func (s *Service) AddExercise(ctx context.Context, in model.ExerciseInput) (model.Exercise, error) {
	if err := s.ready(ctx); err != nil {
		return model.Exercise{}, err
	}
	return s.Store.AddExercise(in, s.now())
}

// UpdateExercise edits the template with id.
func (s *Service) UpdateExercise(ctx context.Context, id int64, in model.ExerciseInput) (model.Exercise, error) {
	if err := s.ready(ctx); err != nil {
		return model.Exercise{}, err
	}
	return s.Store.UpdateExercise(id, in)
}

// Categories returns the sorted category set.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Categories, nil
}

// AddCategory adds name to the category set.
func (s *Service) AddCategory(ctx context.Context, name string) (bool, error) {
	if err := s.ready(ctx); err != nil {
		return false, err
	}
	return s.Store.AddCategory(name)
}

// RemoveCategory drops name and returns how many templates still
// reference it.
func (s *Service) RemoveCategory(ctx context.Context, name string) (bool, int, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return false, 0, err
	}
	removed, err := s.Store.RemoveCategory(name)
	if err != nil {
		return false, 0, err
	}
	orphaned := 0
	for _, e := range snap.Exercises {
		if e.Category == name {
			orphaned++
		}
	}
	if removed && orphaned > 0 {
		s.logger().Infow("category removed with templates", "name", name, "orphaned", orphaned)
	}
	return removed, orphaned, nil
}

// DayAssignment is the category scheduled on one weekday.
type DayAssignment struct {
	Day      string `json:"weekday" yaml:"weekday"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

// Schedule returns the category of every weekday, Monday first.
func (s *Service) Schedule(ctx context.Context) ([]DayAssignment, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DayAssignment, 0, 7)
	for _, d := range model.Weekdays() {
		out = append(out, DayAssignment{Day: d.String(), Category: derive.CategoryFor(snap, d)})
	}
	return out, nil
}

// SetDay assigns category to the weekday label. An empty category clears
// it. The returned flag is false when the category is not in the set.
func (s *Service) SetDay(ctx context.Context, label, category string) (bool, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return false, err
	}
	day, err := model.ParseWeekday(label)
	if err != nil {
		return false, err
	}
	if err := s.Store.SetDayHeader(day, category); err != nil {
		return false, err
	}
	if category == "" {
		return true, nil
	}
	for _, c := range snap.Categories {
		if c == category {
			return true, nil
		}
	}
	return false, nil
}

// Phases returns the usage of each phase.
func (s *Service) Phases(ctx context.Context) ([]derive.PhaseInfo, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return derive.Phases(snap), nil
}

// CurrentPhase returns the selected phase.
func (s *Service) CurrentPhase(ctx context.Context) (int, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return snap.CurrentPhase, nil
}

// AddPhase adds phase to the set.
func (s *Service) AddPhase(ctx context.Context, phase int) (bool, error) {
	if err := s.ready(ctx); err != nil {
		return false, err
	}
	return s.Store.AddPhase(phase)
}

// RemovePhase removes an unused phase.
func (s *Service) RemovePhase(ctx context.Context, phase int) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	return s.Store.RemovePhase(phase)
}

// UsePhase selects phase for the daily views. It must be in the set.
func (s *Service) UsePhase(ctx context.Context, phase int) error {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return err
	}
	for _, p := range snap.Phases {
		if p == phase {
			return s.Store.SetCurrentPhase(phase)
		}
	}
	return fmt.Errorf("%w: %d is not in the phase set", store.ErrInvalidPhase, phase)
}
