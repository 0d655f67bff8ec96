// Package mcp provides the Model Context Protocol server integration for uebung.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/uebung/pkg/app"
	"tableflip.dev/uebung/pkg/derive"
	"tableflip.dev/uebung/pkg/model"
	"tableflip.dev/uebung/pkg/scales"
	"tableflip.dev/uebung/pkg/timeutil"
)

// Service adapts the practice service to the argument shapes of the MCP
// tools and resources.
type Service struct {
	App *app.Service
}

var errNoService = errors.New("practice service is not configured")

// SaveLogOptions captures the parameters of the save_log tool. Nil fields
// keep what a practice session would show.
type SaveLogOptions struct {
	ExerciseID  int64   `json:"exercise_id"`
	Date        string  `json:"date"`
	Song        *string `json:"song"`
	BPM         *int    `json:"bpm"`
	Page        *string `json:"page"`
	Book        *string `json:"book"`
	Notes       *string `json:"notes"`
	GlobalNotes *string `json:"global_notes"`
	Completed   *bool   `json:"completed"`
	Scales      string  `json:"scales"`
}

// ExerciseSummary is an exercise with the weekdays that schedule it.
type ExerciseSummary struct {
	model.Exercise
	Weekdays []string `json:"weekdays"`
	Last     *string  `json:"last_practiced,omitempty"`
}

// NewService wraps the practice service.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

func (s *Service) ready() error {
	if s == nil || s.App == nil {
		return errNoService
	}
	return nil
}

// date parses an optional YYYY-MM-DD value, defaulting to today.
func (s *Service) date(v string) (model.Date, error) {
	if strings.TrimSpace(v) == "" {
		return s.App.Today(), nil
	}
	return model.ParseDate(v)
}

// DayPlan returns the plan of the given day.
func (s *Service) DayPlan(ctx context.Context, date string) (derive.Plan, error) {
	if err := s.ready(); err != nil {
		return derive.Plan{}, err
	}
	d, err := s.date(date)
	if err != nil {
		return derive.Plan{}, err
	}
	return s.App.DayPlan(ctx, d)
}

// SaveLog records practice the way the log command does.
func (s *Service) SaveLog(ctx context.Context, opts SaveLogOptions) (model.LogEntry, error) {
	if err := s.ready(); err != nil {
		return model.LogEntry{}, err
	}
	if opts.ExerciseID == 0 {
		return model.LogEntry{}, errors.New("exercise_id is required")
	}
	d, err := s.date(opts.Date)
	if err != nil {
		return model.LogEntry{}, err
	}
	edits := app.LogEdits{
		Song:        opts.Song,
		BPM:         opts.BPM,
		Page:        opts.Page,
		Book:        opts.Book,
		Notes:       opts.Notes,
		GlobalNotes: opts.GlobalNotes,
		Completed:   opts.Completed,
	}
	for _, raw := range strings.Split(opts.Scales, ",") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		p, err := scales.ParsePair(raw)
		if err != nil {
			return model.LogEntry{}, err
		}
		edits.Scales = append(edits.Scales, p)
	}
	return s.App.LogPractice(ctx, opts.ExerciseID, d, edits)
}

// LastLog returns the most recent log of an exercise, or nil.
func (s *Service) LastLog(ctx context.Context, id int64) (*model.LogEntry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if _, err := s.App.Exercise(ctx, id); err != nil {
		return nil, err
	}
	l, ok, err := s.App.LastLog(ctx, id)
	if err != nil || !ok {
		return nil, err
	}
	return &l, nil
}

// ListExercises returns the templates of phase (0 for all) with their
// schedule.
func (s *Service) ListExercises(ctx context.Context, phase int) ([]ExerciseSummary, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	snap, err := s.App.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	exercises := snap.Exercises
	if phase != 0 {
		exercises = derive.ExercisesInPhase(snap, phase)
	}
	out := make([]ExerciseSummary, 0, len(exercises))
	for _, e := range exercises {
		sum := ExerciseSummary{Exercise: e, Weekdays: []string{}}
		for _, d := range model.Weekdays() {
			if c := derive.CategoryFor(snap, d); c != "" && c == e.Category {
				sum.Weekdays = append(sum.Weekdays, d.String())
			}
		}
		if l, ok := derive.LastLogFor(snap, e.ID); ok {
			date := string(l.Date)
			sum.Last = &date
		}
		out = append(out, sum)
	}
	return out, nil
}

// ScaleCoverage reports the covered pairs of an exercise.
func (s *Service) ScaleCoverage(ctx context.Context, id int64, date string) (app.Coverage, error) {
	if err := s.ready(); err != nil {
		return app.Coverage{}, err
	}
	d, err := s.date(date)
	if err != nil {
		return app.Coverage{}, err
	}
	return s.App.ScaleCoverage(ctx, id, d)
}

// Progress summarises the window named by last, for example "1w".
func (s *Service) Progress(ctx context.Context, last string) (derive.ProgressResult, error) {
	if err := s.ready(); err != nil {
		return derive.ProgressResult{}, err
	}
	days, _, err := timeutil.ParseWindow(last)
	if err != nil {
		return derive.ProgressResult{}, err
	}
	until := s.App.Today()
	return s.App.Progress(ctx, timeutil.Since(until, days), until)
}

// Categories returns the category set.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.App.Categories(ctx)
}

// Schedule returns the weekday assignments.
func (s *Service) Schedule(ctx context.Context) ([]app.DayAssignment, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.App.Schedule(ctx)
}

// ParseExerciseID reads an id given as text.
func ParseExerciseID(v string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid exercise id %q", v)
	}
	return id, nil
}
