// Package session reconciles the edits of a practice session with the logs
// already saved, and commits the merged values back to the store.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tableflip.dev/uebung/pkg/derive"
	"tableflip.dev/uebung/pkg/logging"
	"tableflip.dev/uebung/pkg/model"
	"tableflip.dev/uebung/pkg/scales"
	"tableflip.dev/uebung/pkg/store"
)

// State is the lifecycle position of a Session.
type State int

const (
	// Empty means nothing was scheduled. Active is never entered.
	Empty State = iota
	// Active means an exercise is being practiced.
	Active
	// Finished is terminal.
	Finished
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Active:
		return "active"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ErrNotActive is returned for edits and moves outside the Active state.
var ErrNotActive = errors.New("session: not active")

// Store is the part of the entity store a session reads from and commits to.
type Store interface {
	Snapshot() store.Snapshot
	SaveLog(entry model.LogEntry, now time.Time) (model.LogEntry, error)
}

// Session walks an ordered list of exercises for one date.
type Session struct {
	ID string

	st        Store
	date      model.Date
	exercises []model.Exercise
	now       func() time.Time
	log       *zap.SugaredLogger

	state   State
	index   int
	buffers map[int64]*buffer
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the time source used for completion timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Session) {
		s.log = logging.OrNop(l)
	}
}

// New starts a session over exercises for date. Without exercises the
// session is Empty.
func New(st Store, date model.Date, exercises []model.Exercise, opts ...Option) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		st:        st,
		date:      date,
		exercises: model.CloneExercises(exercises),
		now:       time.Now,
		log:       logging.Nop(),
		buffers:   make(map[int64]*buffer),
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.exercises) > 0 {
		s.state = Active
	}
	s.log = s.log.With("session", s.ID, "date", date)
	s.log.Debugw("session started", "exercises", len(s.exercises), "state", s.state)
	return s
}

func (s *Session) State() State     { return s.state }
func (s *Session) Index() int       { return s.index }
func (s *Session) Len() int         { return len(s.exercises) }
func (s *Session) Date() model.Date { return s.date }

// Exercises returns the session's exercise list.
func (s *Session) Exercises() []model.Exercise {
	return model.CloneExercises(s.exercises)
}

// Current returns the exercise at the current index.
func (s *Session) Current() (model.Exercise, bool) {
	if s.state != Active {
		return model.Exercise{}, false
	}
	return s.exercises[s.index], true
}

// Next commits the current exercise and moves forward. On the last exercise
// it commits without moving.
func (s *Session) Next() error {
	return s.commitAndMove(1)
}

// Previous commits the current exercise and moves back. On the first
// exercise it commits without moving.
func (s *Session) Previous() error {
	return s.commitAndMove(-1)
}

// Save commits the current exercise and stays on it.
func (s *Session) Save() error {
	return s.commitAndMove(0)
}

// Finish commits the current exercise and ends the session.
func (s *Session) Finish() error {
	if s.state != Active {
		return ErrNotActive
	}
	if _, err := s.commit(); err != nil {
		return err
	}
	s.close()
	return nil
}

// Abandon ends the session without committing pending edits.
func (s *Session) Abandon() {
	if s.state == Active {
		s.log.Debugw("session abandoned", "pending", len(s.buffers))
	}
	s.close()
}

func (s *Session) close() {
	if s.state == Empty {
		return
	}
	s.state = Finished
	s.buffers = make(map[int64]*buffer)
}

func (s *Session) commitAndMove(delta int) error {
	if s.state != Active {
		return ErrNotActive
	}
	if _, err := s.commit(); err != nil {
		return err
	}
	next := s.index + delta
	if next >= 0 && next < len(s.exercises) {
		s.index = next
	}
	return nil
}

// commit writes the effective values of the current exercise.
func (s *Session) commit() (model.LogEntry, error) {
	ex := s.exercises[s.index]
	snap := s.st.Snapshot()
	v := s.resolve(snap, ex)

	var pairs []model.ScalePair
	if b := s.buffers[ex.ID]; b != nil && b.scales != nil {
		pairs = b.scales.Pairs()
	} else {
		pairs = scales.TodayPairs(snap.Logs, ex.ID, s.date)
	}

	now := s.now()
	entry := model.LogEntry{
		ExerciseID:       ex.ID,
		Date:             s.date,
		Song:             v.Song,
		BPM:              v.BPM,
		Page:             v.Page,
		Book:             v.Book,
		Notes:            v.Notes,
		GlobalNotes:      v.GlobalNotes,
		Completed:        v.Completed,
		HasScaleSelector: ex.HasScaleSelector,
	}
	if v.Completed {
		entry.CompletedAt = model.Stamp(now).Ptr()
	}
	entry.ScaleKeys, entry.ScaleModes = model.SplitPairs(pairs)

	saved, err := s.st.SaveLog(entry, now)
	if err != nil {
		s.log.Warnw("commit failed", "exercise", ex.ID, "error", err)
		return model.LogEntry{}, fmt.Errorf("session: commit exercise %d: %w", ex.ID, err)
	}
	s.log.Debugw("committed", "exercise", ex.ID, "log", saved.ID, "completed", saved.Completed, "scales", len(pairs))
	return saved, nil
}

// Effective returns the merged values shown for the current exercise.
func (s *Session) Effective() (Values, error) {
	ex, ok := s.Current()
	if !ok {
		return Values{}, ErrNotActive
	}
	return s.resolve(s.st.Snapshot(), ex), nil
}

func (s *Session) resolve(snap store.Snapshot, ex model.Exercise) Values {
	var today, last *model.LogEntry
	if l, ok := derive.LogFor(snap, ex.ID, s.date); ok {
		today = &l
	}
	if l, ok := derive.LastLogBefore(snap, ex.ID, s.date); ok {
		last = &l
	}
	return resolve(s.buffers[ex.ID], today, last, derive.GlobalNotesFor(snap, ex.ID))
}

func (s *Session) buffer() (*buffer, error) {
	ex, ok := s.Current()
	if !ok {
		return nil, ErrNotActive
	}
	b := s.buffers[ex.ID]
	if b == nil {
		b = &buffer{}
		s.buffers[ex.ID] = b
	}
	return b, nil
}

func (s *Session) SetSong(v string) error {
	b, err := s.buffer()
	if err == nil {
		b.song = &v
	}
	return err
}

func (s *Session) SetBPM(v int) error {
	b, err := s.buffer()
	if err == nil {
		b.bpm = &v
	}
	return err
}

func (s *Session) SetPage(v string) error {
	b, err := s.buffer()
	if err == nil {
		b.page = &v
	}
	return err
}

func (s *Session) SetBook(v string) error {
	b, err := s.buffer()
	if err == nil {
		b.book = &v
	}
	return err
}

func (s *Session) SetNotes(v string) error {
	b, err := s.buffer()
	if err == nil {
		b.notes = &v
	}
	return err
}

func (s *Session) SetGlobalNotes(v string) error {
	b, err := s.buffer()
	if err == nil {
		b.globalNotes = &v
	}
	return err
}

func (s *Session) SetCompleted(v bool) error {
	b, err := s.buffer()
	if err == nil {
		b.completed = &v
	}
	return err
}

// AddScale adds key/mode to the current exercise's selection. The first
// change starts from the pairs currently shown. A duplicate is ignored.
func (s *Session) AddScale(key, mode string) (bool, error) {
	sel, err := s.selection()
	if err != nil {
		return false, err
	}
	return sel.Add(key, mode), nil
}

// RemoveScale drops the pair at index from the current selection.
func (s *Session) RemoveScale(index int) (bool, error) {
	sel, err := s.selection()
	if err != nil {
		return false, err
	}
	return sel.Remove(index), nil
}

func (s *Session) selection() (*scales.Selection, error) {
	v, err := s.Effective()
	if err != nil {
		return nil, err
	}
	b, err := s.buffer()
	if err != nil {
		return nil, err
	}
	if b.scales == nil {
		b.scales = scales.NewSelection(v.Pairs)
	}
	return b.scales, nil
}
