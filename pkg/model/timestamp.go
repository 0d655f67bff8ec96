package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// ParseTime accepts RFC3339 with or without fractional seconds, which covers
// both Go-written values and ISO strings from older browser backups.
func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Timestamp is a point in time that serialises as an RFC3339 string.
type Timestamp struct {
	time.Time
}

// Stamp wraps t as a Timestamp.
func Stamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// Ptr returns a pointer to a Timestamp for t.
func (t Timestamp) Ptr() *Timestamp {
	return &t
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", FormatTime(t.Time))), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(raw)
	return err
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}

// FormatTime renders v in UTC with nanosecond precision.
func FormatTime(v time.Time) string {
	return v.UTC().Format(time.RFC3339Nano)
}
