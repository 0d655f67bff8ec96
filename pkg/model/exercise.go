// Package model defines the practice tracker's domain types.
package model

import "strings"

// Exercise is a reusable practice template. It is scheduled on the weekdays
// whose day header matches its category.
type Exercise struct {
	ID               int64     `json:"id"`
	Category         string    `json:"category"`
	Name             string    `json:"name"`
	Phase            int       `json:"phase"`
	HasScaleSelector bool      `json:"has_scale_selector,omitempty"`
	CreatedAt        Timestamp `json:"created_at"`
}

// ExerciseInput carries the editable fields of a template.
type ExerciseInput struct {
	Category         string
	Name             string
	Phase            int
	HasScaleSelector bool
}

// Normalize trims the text fields.
func (in ExerciseInput) Normalize() ExerciseInput {
	in.Category = strings.TrimSpace(in.Category)
	in.Name = strings.TrimSpace(in.Name)
	return in
}

// Apply copies the editable fields onto e, leaving ID and CreatedAt alone.
func (in ExerciseInput) Apply(e Exercise) Exercise {
	e.Category = in.Category
	e.Name = in.Name
	e.Phase = in.Phase
	e.HasScaleSelector = in.HasScaleSelector
	return e
}

// CloneExercises returns a copy of the slice.
func CloneExercises(in []Exercise) []Exercise {
	if in == nil {
		return nil
	}
	out := make([]Exercise, len(in))
	copy(out, in)
	return out
}
