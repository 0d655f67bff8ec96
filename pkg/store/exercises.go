package store

import (
	"fmt"
	"time"

	"tableflip.dev/uebung/pkg/model"
)

// nextID returns a time based id that is strictly greater than every id in
// use.
func nextID(now time.Time, maxExisting int64) int64 {
	id := now.UnixMilli()
	if id <= maxExisting {
		id = maxExisting + 1
	}
	return id
}

func validateExercise(in model.ExerciseInput) error {
	switch {
	case in.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidExercise)
	case in.Category == "":
		return fmt.Errorf("%w: category is required", ErrInvalidExercise)
	case in.Phase <= 0:
		return fmt.Errorf("%w: phase must be positive, got %d", ErrInvalidExercise, in.Phase)
	}
	return nil
}

// AddExercise creates a template from in. The id is derived from now and
// never reuses an existing one.
func (s *Store) AddExercise(in model.ExerciseInput, now time.Time) (model.Exercise, error) {
	in = in.Normalize()
	if err := validateExercise(in); err != nil {
		return model.Exercise{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var maxID int64
	for _, e := range s.snap.Exercises {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	ex := in.Apply(model.Exercise{
		ID:        nextID(now, maxID),
		CreatedAt: model.Stamp(now),
	})
	next := append(model.CloneExercises(s.snap.Exercises), ex)
	if err := s.persist(KeyExercises, next); err != nil {
		return model.Exercise{}, err
	}
	s.snap.Exercises = next
	s.log.Infow("exercise added", "id", ex.ID, "name", ex.Name, "phase", ex.Phase)
	return ex, nil
}

// UpdateExercise replaces the editable fields of the template with id.
func (s *Store) UpdateExercise(id int64, in model.ExerciseInput) (model.Exercise, error) {
	in = in.Normalize()
	if err := validateExercise(in); err != nil {
		return model.Exercise{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := model.CloneExercises(s.snap.Exercises)
	for i := range next {
		if next[i].ID != id {
			continue
		}
		next[i] = in.Apply(next[i])
		if err := s.persist(KeyExercises, next); err != nil {
			return model.Exercise{}, err
		}
		s.snap.Exercises = next
		s.log.Infow("exercise updated", "id", id)
		return next[i], nil
	}
	return model.Exercise{}, fmt.Errorf("%w: %d", ErrExerciseNotFound, id)
}

// Exercise returns the template with id.
func (s *Store) Exercise(id int64) (model.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.snap.Exercises {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Exercise{}, fmt.Errorf("%w: %d", ErrExerciseNotFound, id)
}
