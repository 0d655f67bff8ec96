package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/uebung/pkg/kv"
	"tableflip.dev/uebung/pkg/model"
	"tableflip.dev/uebung/pkg/store"
)

var now = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

func loadStore(t *testing.T) (*store.Store, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	st, err := store.Load(mem, now)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return st, mem
}

func populated(t *testing.T) *store.Store {
	t.Helper()
	st, _ := loadStore(t)
	if _, err := st.AddExercise(model.ExerciseInput{Category: "Jazz", Name: "ii-V-I", Phase: 2, HasScaleSelector: true}, now); err != nil {
		t.Fatalf("AddExercise: %v", err)
	}
	if err := st.SetDayHeader(model.Friday, "Jazz"); err != nil {
		t.Fatalf("SetDayHeader: %v", err)
	}
	if err := st.SetCurrentPhase(2); err != nil {
		t.Fatalf("SetCurrentPhase: %v", err)
	}
	logs := []model.LogEntry{
		{ExerciseID: 2, Date: "2024-01-09", BPM: 80, ScaleKeys: []string{"C"}, ScaleModes: []string{"Dorisch"}},
		{ExerciseID: 1, Date: "2024-01-08", Song: "Misty", Completed: true, CompletedAt: model.Stamp(now).Ptr()},
	}
	for _, l := range logs {
		if _, err := st.SaveLog(l, now); err != nil {
			t.Fatalf("SaveLog: %v", err)
		}
	}
	return st
}

func TestExportImportRoundTrip(t *testing.T) {
	src := populated(t)
	var buf bytes.Buffer
	if err := Write(&buf, src.Snapshot(), now); err != nil {
		t.Fatalf("Write: %v", err)
	}

	dst, _ := loadStore(t)
	report, err := Import(buf.Bytes(), dst)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if !report.Complete() {
		t.Fatalf("expected a complete import, got %+v", report)
	}

	want := Export(src.Snapshot(), now)
	got := Export(dst.Snapshot(), now)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestExportDocumentLayout(t *testing.T) {
	st, _ := loadStore(t)
	data, err := Export(st.Snapshot(), now).Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{"exercises", "practiceLogs", "dayHeaders", "categories", "availablePhases", "currentPhase", "exportDate", "version"} {
		if _, ok := doc[key]; !ok {
			t.Fatalf("export is missing %q", key)
		}
	}
	if string(doc["version"]) != `"2.0"` || string(doc["exportDate"]) != `"2024-01-15T09:30:00.000Z"` {
		t.Fatalf("version/exportDate = %s %s", doc["version"], doc["exportDate"])
	}
	if string(doc["practiceLogs"]) != "[]" || string(doc["dayHeaders"]) != "{}" {
		t.Fatalf("empty collections = %s %s", doc["practiceLogs"], doc["dayHeaders"])
	}
}

func TestImportMissingCategoriesKeepsThem(t *testing.T) {
	st, _ := loadStore(t)
	before := st.Snapshot().Categories

	raw := `{"exercises":[{"id":42,"category":"Lieder","name":"Volkslied","phase":1,"created_at":"2023-05-01T10:00:00.000Z"}]}`
	report, err := Import([]byte(raw), st)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	snap := st.Snapshot()
	if diff := cmp.Diff(before, snap.Categories); diff != "" {
		t.Fatalf("categories changed (-want +got):\n%s", diff)
	}
	if len(snap.Exercises) != 1 || snap.Exercises[0].ID != 42 {
		t.Fatalf("exercises not replaced: %+v", snap.Exercises)
	}
	if !report.Partial() || report.Complete() {
		t.Fatalf("expected a partial report, got %+v", report)
	}
	if diff := cmp.Diff([]string{FieldExercises}, report.Applied()); diff != "" {
		t.Fatalf("applied (-want +got):\n%s", diff)
	}
}

func TestImportSkipsMalformedFields(t *testing.T) {
	st, _ := loadStore(t)
	before := st.Snapshot()

	raw := `{
		"exercises": {"id": 1},
		"practiceLogs": [{"exercise_id": "one"}],
		"dayHeaders": {"Monday": 3},
		"categories": ["Jazz", 4],
		"availablePhases": [1, -2],
		"currentPhase": "3"
	}`
	report, err := Import([]byte(raw), st)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(report.Applied()) != 0 || len(report.Skipped()) != 6 {
		t.Fatalf("expected every field skipped, got %+v", report)
	}
	if report.Skipped()[0].Reason != "not an array" {
		t.Fatalf("reason = %q", report.Skipped()[0].Reason)
	}
	if diff := cmp.Diff(before, st.Snapshot()); diff != "" {
		t.Fatalf("store changed (-want +got):\n%s", diff)
	}
}

func TestImportParseErrorChangesNothing(t *testing.T) {
	st, mem := loadStore(t)
	writes := mem.Writes()
	for _, raw := range []string{`{"exercises": [`, `[]`, `null`, ``} {
		if _, err := Import([]byte(raw), st); !errors.Is(err, ErrParse) {
			t.Fatalf("Import(%q) err = %v, want ErrParse", raw, err)
		}
	}
	if mem.Writes() != writes {
		t.Fatalf("parse error wrote to storage")
	}
}

func TestImportReportsStorageFailure(t *testing.T) {
	st, mem := loadStore(t)
	mem.Fail(store.KeyCategories, errors.New("quota exceeded"))

	report, err := Import([]byte(`{"categories":["Jazz"],"currentPhase":3}`), st)
	var se *kv.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if diff := cmp.Diff([]string{FieldCurrentPhase}, report.Applied()); diff != "" {
		t.Fatalf("applied (-want +got):\n%s", diff)
	}
	for _, f := range report.Skipped() {
		if f.Field == FieldCategories && !strings.Contains(f.Reason, "quota exceeded") {
			t.Fatalf("categories reason = %q", f.Reason)
		}
	}
}

func TestFileName(t *testing.T) {
	if got := FileName(now); got != "musik-uebung-backup-2024-01-15.json" {
		t.Fatalf("FileName = %q", got)
	}
}

func TestReminderDue(t *testing.T) {
	sixDays := now.Add(-6 * 24 * time.Hour)
	sevenDays := now.Add(-7 * 24 * time.Hour)
	if !ReminderDue(nil, now) {
		t.Fatalf("reminder should be due without a backup")
	}
	if ReminderDue(&sixDays, now) {
		t.Fatalf("reminder due after six days")
	}
	if !ReminderDue(&sevenDays, now) {
		t.Fatalf("reminder not due after seven days")
	}
}
