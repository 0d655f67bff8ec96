package store

import (
	"fmt"
	"sort"
	"strings"

	"tableflip.dev/uebung/pkg/model"
)

// AddCategory inserts name into the category set. Adding a name that is
// already present changes nothing and reports false.
func (s *Store) AddCategory(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, fmt.Errorf("%w: name is required", ErrInvalidCategory)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.snap.Categories {
		if c == name {
			return false, nil
		}
	}
	next := append(cloneStrings(s.snap.Categories), name)
	sort.Strings(next)
	if err := s.persist(KeyCategories, next); err != nil {
		return false, err
	}
	s.snap.Categories = next
	s.log.Infow("category added", "name", name)
	return true, nil
}

// RemoveCategory drops name from the set. Templates that reference it are
// left alone and become orphaned.
func (s *Store) RemoveCategory(name string) (bool, error) {
	name = strings.TrimSpace(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]string, 0, len(s.snap.Categories))
	for _, c := range s.snap.Categories {
		if c != name {
			next = append(next, c)
		}
	}
	if len(next) == len(s.snap.Categories) {
		return false, nil
	}
	if err := s.persist(KeyCategories, next); err != nil {
		return false, err
	}
	s.snap.Categories = next
	s.log.Infow("category removed", "name", name)
	return true, nil
}

// SetDayHeader assigns category to the weekday. An empty category clears the
// assignment. Older spellings of the weekday label are folded into the
// canonical one.
func (s *Store) SetDayHeader(day model.Weekday, category string) error {
	if day < model.Monday || day > model.Sunday {
		return fmt.Errorf("%w: %d", model.ErrUnknownWeekday, int(day))
	}
	label := day.String()
	category = strings.TrimSpace(category)

	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneHeaders(s.snap.DayHeaders)
	for k := range next {
		if w, err := model.ParseWeekday(k); err == nil && w == day {
			delete(next, k)
		}
	}
	if category != "" {
		next[label] = category
	}
	if err := s.persist(KeyDayHeaders, next); err != nil {
		return err
	}
	s.snap.DayHeaders = next
	s.log.Infow("day header set", "day", label, "category", category)
	return nil
}

// AddPhase inserts phase into the phase set, keeping numeric order.
func (s *Store) AddPhase(phase int) (bool, error) {
	if phase <= 0 {
		return false, fmt.Errorf("%w: %d", ErrInvalidPhase, phase)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.snap.Phases {
		if p == phase {
			return false, nil
		}
	}
	next := append(cloneInts(s.snap.Phases), phase)
	sort.Ints(next)
	if err := s.persist(KeyPhases, next); err != nil {
		return false, err
	}
	s.snap.Phases = next
	s.log.Infow("phase added", "phase", phase)
	return true, nil
}

// RemovePhase drops phase from the set. It fails with ErrPhaseInUse while any
// template references the phase. Removing the current phase selects
// DefaultPhase.
func (s *Store) RemovePhase(phase int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inUse := 0
	for _, e := range s.snap.Exercises {
		if e.Phase == phase {
			inUse++
		}
	}
	if inUse > 0 {
		return fmt.Errorf("%w: phase %d has %d exercises", ErrPhaseInUse, phase, inUse)
	}

	next := make([]int, 0, len(s.snap.Phases))
	for _, p := range s.snap.Phases {
		if p != phase {
			next = append(next, p)
		}
	}
	if len(next) == len(s.snap.Phases) {
		return nil
	}
	if err := s.persist(KeyPhases, next); err != nil {
		return err
	}
	s.snap.Phases = next
	s.log.Infow("phase removed", "phase", phase)

	if s.snap.CurrentPhase == phase {
		if err := s.persist(KeyCurrentPhase, DefaultPhase); err != nil {
			return err
		}
		s.snap.CurrentPhase = DefaultPhase
		s.log.Infow("current phase reset", "phase", DefaultPhase)
	}
	return nil
}

// SetCurrentPhase selects the phase used by the daily views.
func (s *Store) SetCurrentPhase(phase int) error {
	if phase <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPhase, phase)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(KeyCurrentPhase, phase); err != nil {
		return err
	}
	s.snap.CurrentPhase = phase
	s.log.Infow("current phase set", "phase", phase)
	return nil
}
