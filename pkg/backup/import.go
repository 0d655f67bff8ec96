package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/uebung/pkg/model"
)

// ErrParse is returned when the import is not a JSON object. Nothing is
// changed in that case.
var ErrParse = errors.New("backup: invalid document")

// Field names in import order.
const (
	FieldExercises       = "exercises"
	FieldPracticeLogs    = "practiceLogs"
	FieldDayHeaders      = "dayHeaders"
	FieldCategories      = "categories"
	FieldAvailablePhases = "availablePhases"
	FieldCurrentPhase    = "currentPhase"
)

// FieldError explains why one field of a document was skipped.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("backup: field %q: %s", e.Field, e.Reason)
}

// FieldResult is the outcome of one field.
type FieldResult struct {
	Field   string `json:"field" yaml:"field"`
	Applied bool   `json:"applied" yaml:"applied"`
	Reason  string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// ImportReport lists what an import changed.
type ImportReport struct {
	Fields []FieldResult `json:"fields" yaml:"fields"`
}

// Applied returns the names of the fields that were written.
func (r ImportReport) Applied() []string {
	var out []string
	for _, f := range r.Fields {
		if f.Applied {
			out = append(out, f.Field)
		}
	}
	return out
}

// Skipped returns the fields that were left alone.
func (r ImportReport) Skipped() []FieldResult {
	var out []FieldResult
	for _, f := range r.Fields {
		if !f.Applied {
			out = append(out, f)
		}
	}
	return out
}

// Partial reports whether some but not all fields were applied.
func (r ImportReport) Partial() bool {
	n := len(r.Applied())
	return n > 0 && n < len(r.Fields)
}

// Complete reports whether every field was applied.
func (r ImportReport) Complete() bool {
	return len(r.Fields) > 0 && len(r.Applied()) == len(r.Fields)
}

// Target receives the fields accepted by Import.
type Target interface {
	ReplaceExercises([]model.Exercise) error
	ReplaceLogs([]model.LogEntry) error
	ReplaceDayHeaders(map[string]string) error
	ReplaceCategories([]string) error
	ReplacePhases([]int) error
	ReplaceCurrentPhase(int) error
}

// Import checks every field of raw on its own and hands the well-formed
// ones to target. Absent or malformed fields are skipped and reported.
// Write failures are reported per field and returned joined.
func Import(raw []byte, target Target) (ImportReport, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ImportReport{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if doc == nil {
		return ImportReport{}, fmt.Errorf("%w: not an object", ErrParse)
	}

	steps := []struct {
		field string
		apply func(json.RawMessage) error
	}{
		{FieldExercises, func(m json.RawMessage) error {
			v, err := decodeArray[model.Exercise](FieldExercises, m)
			if err != nil {
				return err
			}
			return target.ReplaceExercises(v)
		}},
		{FieldPracticeLogs, func(m json.RawMessage) error {
			v, err := decodeArray[model.LogEntry](FieldPracticeLogs, m)
			if err != nil {
				return err
			}
			return target.ReplaceLogs(v)
		}},
		{FieldDayHeaders, func(m json.RawMessage) error {
			if !isKind(m, '{') {
				return &FieldError{Field: FieldDayHeaders, Reason: "not an object"}
			}
			var v map[string]string
			if err := json.Unmarshal(m, &v); err != nil {
				return &FieldError{Field: FieldDayHeaders, Reason: "values must be strings"}
			}
			return target.ReplaceDayHeaders(v)
		}},
		{FieldCategories, func(m json.RawMessage) error {
			v, err := decodeArray[string](FieldCategories, m)
			if err != nil {
				return err
			}
			return target.ReplaceCategories(v)
		}},
		{FieldAvailablePhases, func(m json.RawMessage) error {
			v, err := decodeArray[int](FieldAvailablePhases, m)
			if err != nil {
				return err
			}
			for _, p := range v {
				if p <= 0 {
					return &FieldError{Field: FieldAvailablePhases, Reason: fmt.Sprintf("phase %d is not positive", p)}
				}
			}
			return target.ReplacePhases(v)
		}},
		{FieldCurrentPhase, func(m json.RawMessage) error {
			var p int
			if err := json.Unmarshal(m, &p); err != nil || p <= 0 {
				return &FieldError{Field: FieldCurrentPhase, Reason: "not a positive integer"}
			}
			return target.ReplaceCurrentPhase(p)
		}},
	}

	var report ImportReport
	var errs []error
	for _, step := range steps {
		m, ok := doc[step.field]
		if !ok || isNull(m) {
			report.Fields = append(report.Fields, FieldResult{Field: step.field, Reason: "absent"})
			continue
		}
		err := step.apply(m)
		var fe *FieldError
		switch {
		case err == nil:
			report.Fields = append(report.Fields, FieldResult{Field: step.field, Applied: true})
		case errors.As(err, &fe):
			report.Fields = append(report.Fields, FieldResult{Field: step.field, Reason: fe.Reason})
		default:
			report.Fields = append(report.Fields, FieldResult{Field: step.field, Reason: err.Error()})
			errs = append(errs, err)
		}
	}
	return report, errors.Join(errs...)
}

func decodeArray[T any](field string, m json.RawMessage) ([]T, error) {
	if !isKind(m, '[') {
		return nil, &FieldError{Field: field, Reason: "not an array"}
	}
	var v []T
	if err := json.Unmarshal(m, &v); err != nil {
		return nil, &FieldError{Field: field, Reason: "malformed element: " + trimJSONError(err)}
	}
	return v, nil
}

func isKind(m json.RawMessage, open byte) bool {
	m = bytes.TrimSpace(m)
	return len(m) > 0 && m[0] == open
}

func isNull(m json.RawMessage) bool {
	return string(bytes.TrimSpace(m)) == "null"
}

func trimJSONError(err error) string {
	return strings.TrimPrefix(err.Error(), "json: ")
}
