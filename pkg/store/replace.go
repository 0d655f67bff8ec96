package store

import (
	"sort"
	"time"

	"tableflip.dev/uebung/pkg/model"
)

// The Replace setters overwrite one whole collection. They are used by the
// backup import and keep the given order, except where the collection has a
// fixed ordering rule.

func (s *Store) ReplaceExercises(exercises []model.Exercise) error {
	next := model.CloneExercises(exercises)
	if next == nil {
		next = []model.Exercise{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(KeyExercises, next); err != nil {
		return err
	}
	s.snap.Exercises = next
	return nil
}

func (s *Store) ReplaceLogs(logs []model.LogEntry) error {
	next := model.CloneLogs(logs)
	if next == nil {
		next = []model.LogEntry{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(KeyLogs, next); err != nil {
		return err
	}
	s.snap.Logs = next
	return nil
}

// ReplaceCategories stores the unique, sorted form of categories.
func (s *Store) ReplaceCategories(categories []string) error {
	seen := make(map[string]bool, len(categories))
	next := make([]string, 0, len(categories))
	for _, c := range categories {
		if seen[c] {
			continue
		}
		seen[c] = true
		next = append(next, c)
	}
	sort.Strings(next)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(KeyCategories, next); err != nil {
		return err
	}
	s.snap.Categories = next
	return nil
}

func (s *Store) ReplaceDayHeaders(headers map[string]string) error {
	next := cloneHeaders(headers)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(KeyDayHeaders, next); err != nil {
		return err
	}
	s.snap.DayHeaders = next
	return nil
}

// ReplacePhases stores the unique, ascending form of phases.
func (s *Store) ReplacePhases(phases []int) error {
	seen := make(map[int]bool, len(phases))
	next := make([]int, 0, len(phases))
	for _, p := range phases {
		if seen[p] {
			continue
		}
		seen[p] = true
		next = append(next, p)
	}
	sort.Ints(next)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(KeyPhases, next); err != nil {
		return err
	}
	s.snap.Phases = next
	return nil
}

func (s *Store) ReplaceCurrentPhase(phase int) error {
	return s.SetCurrentPhase(phase)
}

// MarkBackup records t as the time of the last successful export.
func (s *Store) MarkBackup(t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(KeyLastBackup, model.FormatTime(t)); err != nil {
		return err
	}
	t = t.UTC()
	s.snap.LastBackup = &t
	s.log.Infow("backup recorded", "at", model.FormatTime(t))
	return nil
}
