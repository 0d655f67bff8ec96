package store

import (
	"fmt"
	"time"

	"tableflip.dev/uebung/pkg/model"
)

// SaveLog stores entry as the only log for its (exercise, date) pair. Any
// previous entry for the pair is removed and the new one is appended with a
// fresh id.
func (s *Store) SaveLog(entry model.LogEntry, now time.Time) (model.LogEntry, error) {
	if entry.ExerciseID == 0 {
		return model.LogEntry{}, fmt.Errorf("%w: exercise id is required", ErrInvalidLog)
	}
	if _, err := model.ParseDate(string(entry.Date)); err != nil {
		return model.LogEntry{}, fmt.Errorf("%w: %v", ErrInvalidLog, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var maxID int64
	next := make([]model.LogEntry, 0, len(s.snap.Logs)+1)
	replaced := false
	for _, l := range s.snap.Logs {
		if l.ID > maxID {
			maxID = l.ID
		}
		if l.ExerciseID == entry.ExerciseID && l.Date == entry.Date {
			replaced = true
			continue
		}
		next = append(next, l.Clone())
	}
	saved := entry.Clone()
	saved.ID = nextID(now, maxID)
	next = append(next, saved)

	if err := s.persist(KeyLogs, next); err != nil {
		return model.LogEntry{}, err
	}
	s.snap.Logs = next
	s.log.Infow("log saved",
		"id", saved.ID,
		"exercise", saved.ExerciseID,
		"date", saved.Date,
		"completed", saved.Completed,
		"replaced", replaced,
	)
	return saved.Clone(), nil
}
