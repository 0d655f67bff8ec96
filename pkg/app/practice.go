package app

import (
	"context"

	"tableflip.dev/uebung/pkg/derive"
	"tableflip.dev/uebung/pkg/model"
	"tableflip.dev/uebung/pkg/scales"
	"tableflip.dev/uebung/pkg/session"
)

// DayPlan returns the dashboard of date for the current phase.
func (s *Service) DayPlan(ctx context.Context, date model.Date) (derive.Plan, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return derive.Plan{}, err
	}
	return derive.DayPlan(snap, date, snap.CurrentPhase)
}

// Week returns the weekly overview around date for the current phase.
func (s *Service) Week(ctx context.Context, date model.Date) (derive.WeekView, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return derive.WeekView{}, err
	}
	return derive.Week(snap, date, snap.CurrentPhase)
}

// Progress summarises the logs dated between since and until. Empty bounds
// are open.
func (s *Service) Progress(ctx context.Context, since, until model.Date) (derive.ProgressResult, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return derive.ProgressResult{}, err
	}
	return derive.Progress(snap, since, until, s.now()), nil
}

// LastLog returns the most recent log of exercise id.
func (s *Service) LastLog(ctx context.Context, id int64) (model.LogEntry, bool, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return model.LogEntry{}, false, err
	}
	l, ok := derive.LastLogFor(snap, id)
	return l, ok, nil
}

// Logs returns the logs of date.
func (s *Service) Logs(ctx context.Context, date model.Date) ([]model.LogEntry, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return derive.LogsForDate(snap, date), nil
}

// StartSession opens a practice session over the exercises scheduled on
// date in the current phase.
func (s *Service) StartSession(ctx context.Context, date model.Date) (*session.Session, error) {
	plan, err := s.DayPlan(ctx, date)
	if err != nil {
		return nil, err
	}
	exercises := make([]model.Exercise, 0, len(plan.Items))
	for _, it := range plan.Items {
		exercises = append(exercises, it.Exercise)
	}
	return s.newSession(date, exercises), nil
}

func (s *Service) newSession(date model.Date, exercises []model.Exercise) *session.Session {
	return session.New(s.Store, date, exercises,
		session.WithClock(s.now),
		session.WithLogger(s.logger()),
	)
}

// LogEdits are the fields set for a single log. Nil fields keep the value a
// practice session would show.
type LogEdits struct {
	Song        *string
	BPM         *int
	Page        *string
	Book        *string
	Notes       *string
	GlobalNotes *string
	Completed   *bool
	Scales      []model.ScalePair
}

// LogPractice records edits for exercise id on date the way a one-exercise
// practice session would.
func (s *Service) LogPractice(ctx context.Context, id int64, date model.Date, edits LogEdits) (model.LogEntry, error) {
	ex, err := s.Exercise(ctx, id)
	if err != nil {
		return model.LogEntry{}, err
	}
	sess := s.newSession(date, []model.Exercise{ex})
	if err := applyEdits(sess, edits); err != nil {
		return model.LogEntry{}, err
	}
	if err := sess.Finish(); err != nil {
		return model.LogEntry{}, err
	}
	l, _ := derive.LogFor(s.Store.Snapshot(), id, date)
	return l, nil
}

func applyEdits(sess *session.Session, e LogEdits) error {
	steps := []func() error{
		func() error { return setIf(e.Song, sess.SetSong) },
		func() error { return setIf(e.BPM, sess.SetBPM) },
		func() error { return setIf(e.Page, sess.SetPage) },
		func() error { return setIf(e.Book, sess.SetBook) },
		func() error { return setIf(e.Notes, sess.SetNotes) },
		func() error { return setIf(e.GlobalNotes, sess.SetGlobalNotes) },
		func() error { return setIf(e.Completed, sess.SetCompleted) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	for _, p := range e.Scales {
		if _, err := sess.AddScale(p.Key, p.Mode); err != nil {
			return err
		}
	}
	return nil
}

func setIf[T any](v *T, set func(T) error) error {
	if v == nil {
		return nil
	}
	return set(*v)
}

// Coverage is the scale coverage of one exercise.
type Coverage struct {
	Exercise  model.Exercise    `json:"exercise" yaml:"exercise"`
	Stats     scales.Stats      `json:"stats" yaml:"stats"`
	Practiced []model.ScalePair `json:"practiced" yaml:"practiced"`
	Today     []model.ScalePair `json:"today" yaml:"today"`
}

// ScaleCoverage reports which catalog pairs exercise id has covered.
func (s *Service) ScaleCoverage(ctx context.Context, id int64, date model.Date) (Coverage, error) {
	ex, err := s.Exercise(ctx, id)
	if err != nil {
		return Coverage{}, err
	}
	logs := s.Store.Snapshot().Logs
	today := scales.TodayPairs(logs, id, date)
	if today == nil {
		today = []model.ScalePair{}
	}
	return Coverage{
		Exercise:  ex,
		Stats:     scales.Coverage(logs, id),
		Practiced: scales.PracticedPairs(logs, id),
		Today:     today,
	}, nil
}

// ScaleSuggestions lists up to limit unpracticed pairs for exercise id.
func (s *Service) ScaleSuggestions(ctx context.Context, id int64, limit int) ([]model.ScalePair, error) {
	if _, err := s.Exercise(ctx, id); err != nil {
		return nil, err
	}
	return scales.Suggestions(s.Store.Snapshot().Logs, id, limit), nil
}

// MonthActivity counts completed logs per day of the month containing date.
func (s *Service) MonthActivity(ctx context.Context, date model.Date) (map[model.Date]int, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	first, last, err := model.MonthBounds(date)
	if err != nil {
		return nil, err
	}
	return derive.Activity(snap, first, last), nil
}
