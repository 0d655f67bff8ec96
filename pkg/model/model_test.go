package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestWeekdayOfIsMondayFirst(t *testing.T) {
	cases := map[string]Weekday{
		"2024-01-01": Monday,
		"2024-01-02": Tuesday,
		"2024-01-06": Saturday,
		"2024-01-07": Sunday,
		"2024-02-29": Thursday,
	}
	for in, want := range cases {
		got, err := WeekdayOf(MustDate(in))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("%s: expected %s, got %s", in, want, got)
		}
	}
}

func TestWeekdayRoundTripIgnoresNativeNumbering(t *testing.T) {
	start := MustDate("2023-12-25")
	for i := 0; i < 21; i++ {
		d := start.AddDays(i)
		w, err := WeekdayOf(d)
		if err != nil {
			t.Fatalf("weekday of %s: %v", d, err)
		}
		back, err := ParseWeekday(w.String())
		if err != nil {
			t.Fatalf("parse %q: %v", w.String(), err)
		}
		if back != w {
			t.Fatalf("%s: label %q parsed to %s", d, w.String(), back)
		}
		tm, _ := d.Time()
		if back.TimeWeekday() != tm.Weekday() {
			t.Fatalf("%s: expected native %s, got %s", d, tm.Weekday(), back.TimeWeekday())
		}
	}
}

func TestParseWeekdayAliases(t *testing.T) {
	for label, want := range map[string]Weekday{"monday": Monday, "Sonntag": Sunday, " fri ": Friday} {
		got, err := ParseWeekday(label)
		if err != nil {
			t.Fatalf("%q: %v", label, err)
		}
		if got != want {
			t.Fatalf("%q: expected %s, got %s", label, want, got)
		}
	}
	if _, err := ParseWeekday("Someday"); !errors.Is(err, ErrUnknownWeekday) {
		t.Fatalf("expected ErrUnknownWeekday, got %v", err)
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2024-13-01"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	d, err := ParseDate(" 2024-03-09 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != "2024-03-09" {
		t.Fatalf("unexpected date %q", d)
	}
	if got := d.AddDays(-9); got != "2024-02-29" {
		t.Fatalf("expected 2024-02-29, got %s", got)
	}
}

func TestWeekStart(t *testing.T) {
	got, err := WeekStart(MustDate("2024-01-07"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2024-01-01" {
		t.Fatalf("expected 2024-01-01, got %s", got)
	}
}

func TestScalePairsDropsKeysWithoutMode(t *testing.T) {
	l := LogEntry{
		ScaleKeys:  []string{"C", "G", "D"},
		ScaleModes: []string{"Dur (Ionisch)", ""},
	}
	pairs := l.ScalePairs()
	if len(pairs) != 1 || pairs[0] != (ScalePair{Key: "C", Mode: "Dur (Ionisch)"}) {
		t.Fatalf("unexpected pairs %v", pairs)
	}
}

func TestTimestampAcceptsBrowserISO(t *testing.T) {
	var e Exercise
	raw := `{"id":1,"category":"Akkorde","name":"Akkordfolgen","phase":1,"created_at":"2024-05-01T09:30:00.123Z"}`
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := time.Date(2024, time.May, 1, 9, 30, 0, 123000000, time.UTC)
	if !e.CreatedAt.Equal(want) {
		t.Fatalf("expected %v, got %v", want, e.CreatedAt)
	}
	out, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Exercise
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal again: %v", err)
	}
	if !back.CreatedAt.Equal(want) {
		t.Fatalf("round trip changed time: %v", back.CreatedAt)
	}
}

func TestLogEntryOmitsEmptyOptionalFields(t *testing.T) {
	out, err := json.Marshal(LogEntry{ID: 1, ExerciseID: 2, Date: "2024-01-01"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":1,"exercise_id":2,"date":"2024-01-01","completed":false}`
	if string(out) != want {
		t.Fatalf("expected %s, got %s", want, out)
	}
}

func TestMonthBounds(t *testing.T) {
	first, last, err := MonthBounds("2024-02-17")
	if err != nil {
		t.Fatalf("MonthBounds: %v", err)
	}
	if first != "2024-02-01" || last != "2024-02-29" {
		t.Fatalf("MonthBounds = %s..%s", first, last)
	}
}
