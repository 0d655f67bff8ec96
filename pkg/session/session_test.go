package session

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/uebung/pkg/derive"
	"tableflip.dev/uebung/pkg/kv"
	"tableflip.dev/uebung/pkg/model"
	"tableflip.dev/uebung/pkg/store"
)

var (
	sessionDate = model.MustDate("2024-01-15")
	commitTime  = time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)
)

func newStore(t *testing.T, logs ...model.LogEntry) (*store.Store, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	st, err := store.Load(mem, commitTime)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(logs) > 0 {
		if err := st.ReplaceLogs(logs); err != nil {
			t.Fatalf("ReplaceLogs: %v", err)
		}
	}
	return st, mem
}

func exercises(st *store.Store) []model.Exercise {
	return st.Snapshot().Exercises
}

func clock() time.Time { return commitTime }

func TestEmptySession(t *testing.T) {
	st, _ := newStore(t)
	s := New(st, sessionDate, nil)
	if s.State() != Empty {
		t.Fatalf("state = %v, want empty", s.State())
	}
	if err := s.Next(); !errors.Is(err, ErrNotActive) {
		t.Fatalf("Next on empty session err = %v", err)
	}
	if _, err := s.Effective(); !errors.Is(err, ErrNotActive) {
		t.Fatalf("Effective on empty session err = %v", err)
	}
	s.Abandon()
	if s.State() != Empty {
		t.Fatalf("abandon changed empty session to %v", s.State())
	}
	if s.ID == "" {
		t.Fatalf("session has no id")
	}
}

func TestCompletedCommitWritesBufferedScales(t *testing.T) {
	st, _ := newStore(t)
	s := New(st, sessionDate, exercises(st)[1:2], WithClock(clock))

	if _, err := s.AddScale("C", "Dur"); err != nil {
		t.Fatalf("AddScale: %v", err)
	}
	if _, err := s.AddScale("G", "Dur"); err != nil {
		t.Fatalf("AddScale: %v", err)
	}
	if err := s.SetCompleted(true); err != nil {
		t.Fatalf("SetCompleted: %v", err)
	}

	v, _ := s.Effective()
	if len(v.Pairs) != 0 {
		t.Fatalf("completed view should show saved pairs only, got %v", v.Pairs)
	}

	if err := s.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	got, ok := derive.LogFor(st.Snapshot(), 2, sessionDate)
	if !ok {
		t.Fatalf("no log written")
	}
	if diff := cmp.Diff([]string{"C", "G"}, got.ScaleKeys); diff != "" {
		t.Fatalf("scale keys (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Dur", "Dur"}, got.ScaleModes); diff != "" {
		t.Fatalf("scale modes (-want +got):\n%s", diff)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(commitTime) {
		t.Fatalf("completed_at = %v, want %v", got.CompletedAt, commitTime)
	}
	if s.State() != Finished {
		t.Fatalf("state = %v, want finished", s.State())
	}
}

func TestResolutionOrder(t *testing.T) {
	prior := model.LogEntry{ID: 1, ExerciseID: 1, Date: "2024-01-08", Song: "Blue Bossa", BPM: 96, Book: "Real Book", Page: "41", Notes: "slow", Completed: true, GlobalNotes: "watch the bridge", ScaleKeys: []string{"C"}, ScaleModes: []string{"Blues"}}
	today := model.LogEntry{ID: 2, ExerciseID: 1, Date: sessionDate, Page: "42"}
	st, _ := newStore(t, prior, today)
	s := New(st, sessionDate, exercises(st)[:1])

	v, err := s.Effective()
	if err != nil {
		t.Fatalf("Effective: %v", err)
	}
	if v.Song != "Blue Bossa" || v.BPM != 96 || v.Book != "Real Book" || v.Page != "42" {
		t.Fatalf("carry forward wrong: %+v", v)
	}
	if v.Notes != "slow" || !v.Completed {
		t.Fatalf("notes/completed not carried forward: %+v", v)
	}
	if v.GlobalNotes != "watch the bridge" {
		t.Fatalf("global notes = %q", v.GlobalNotes)
	}
	if len(v.Pairs) != 0 {
		t.Fatalf("prior pairs carried forward: %v", v.Pairs)
	}
	if v.Today == nil || v.Today.ID != 2 || v.Last == nil || v.Last.ID != 1 {
		t.Fatalf("today/last = %+v / %+v", v.Today, v.Last)
	}

	_ = s.SetSong("")
	_ = s.SetBPM(140)
	_ = s.SetGlobalNotes("new focus")
	v, _ = s.Effective()
	if v.Song != "" || v.BPM != 140 || v.GlobalNotes != "new focus" {
		t.Fatalf("buffer not preferred: %+v", v)
	}
}

func TestNotesAndCompletedFallBackToPriorLog(t *testing.T) {
	prior := model.LogEntry{ID: 1, ExerciseID: 1, Date: "2024-01-08", Notes: "slow hands", Completed: true}
	st, _ := newStore(t, prior)
	s := New(st, sessionDate, exercises(st)[:1], WithClock(clock))

	v, err := s.Effective()
	if err != nil {
		t.Fatalf("Effective: %v", err)
	}
	if v.Notes != "slow hands" || !v.Completed {
		t.Fatalf("notes = %q completed = %v, want prior values", v.Notes, v.Completed)
	}

	_ = s.SetNotes("")
	_ = s.SetCompleted(false)
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _ := derive.LogFor(st.Snapshot(), 1, sessionDate)
	if got.Notes != "" || got.Completed || got.CompletedAt != nil {
		t.Fatalf("buffered clears not written: %+v", got)
	}
}

func TestCommitOmitsEmptyFields(t *testing.T) {
	st, _ := newStore(t)
	s := New(st, sessionDate, exercises(st)[:1], WithClock(clock))
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, ok := derive.LogFor(st.Snapshot(), 1, sessionDate)
	if !ok {
		t.Fatalf("no log written")
	}
	want := model.LogEntry{ID: got.ID, ExerciseID: 1, Date: sessionDate, BPM: model.DefaultBPM}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("log mismatch (-want +got):\n%s", diff)
	}
	if s.State() != Active || s.Index() != 0 {
		t.Fatalf("Save moved the session")
	}
}

func TestNavigationBounds(t *testing.T) {
	st, _ := newStore(t)
	s := New(st, sessionDate, exercises(st), WithClock(clock))

	if err := s.Previous(); err != nil {
		t.Fatalf("Previous: %v", err)
	}
	if s.Index() != 0 {
		t.Fatalf("Previous at start moved to %d", s.Index())
	}
	if _, ok := derive.LogFor(st.Snapshot(), 1, sessionDate); !ok {
		t.Fatalf("Previous at start did not commit")
	}

	_ = s.Next()
	_ = s.Next()
	if s.Index() != 2 {
		t.Fatalf("index = %d, want 2", s.Index())
	}
	_ = s.SetSong("Etude")
	if err := s.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if s.Index() != 2 {
		t.Fatalf("Next at end moved to %d", s.Index())
	}
	got, _ := derive.LogFor(st.Snapshot(), 3, sessionDate)
	if got.Song != "Etude" {
		t.Fatalf("Next at end did not commit: %+v", got)
	}
	if n := len(derive.LogsForDate(st.Snapshot(), sessionDate)); n != 3 {
		t.Fatalf("logs for date = %d, want 3", n)
	}
}

func TestBuffersSurviveNavigation(t *testing.T) {
	st, _ := newStore(t)
	s := New(st, sessionDate, exercises(st), WithClock(clock))
	_ = s.SetNotes("")
	_ = s.SetSong("first")
	_ = s.Next()
	_ = s.Previous()
	v, _ := s.Effective()
	if v.Song != "first" {
		t.Fatalf("buffer lost after navigation: %+v", v)
	}
}

func TestCommitFailureKeepsState(t *testing.T) {
	st, mem := newStore(t)
	s := New(st, sessionDate, exercises(st), WithClock(clock))
	mem.Fail(store.KeyLogs, errors.New("quota exceeded"))

	err := s.Next()
	var se *kv.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if s.Index() != 0 || s.State() != Active {
		t.Fatalf("state changed after failed commit: %v %d", s.State(), s.Index())
	}
	if err := s.Finish(); err == nil || s.State() != Active {
		t.Fatalf("Finish should fail and stay active, got %v %v", err, s.State())
	}

	mem.Fail(store.KeyLogs, nil)
	if err := s.Finish(); err != nil {
		t.Fatalf("Finish after recovery: %v", err)
	}
}

func TestAbandonDropsBuffer(t *testing.T) {
	st, _ := newStore(t)
	s := New(st, sessionDate, exercises(st))
	_ = s.SetSong("unsaved")
	s.Abandon()
	if s.State() != Finished {
		t.Fatalf("state = %v", s.State())
	}
	if logs := st.Snapshot().Logs; len(logs) != 0 {
		t.Fatalf("abandon committed %d logs", len(logs))
	}
	if err := s.SetSong("late"); !errors.Is(err, ErrNotActive) {
		t.Fatalf("edit after abandon err = %v", err)
	}
}

func TestScaleEditsStartFromTodayPairs(t *testing.T) {
	today := model.LogEntry{ID: 1, ExerciseID: 2, Date: sessionDate, ScaleKeys: []string{"D", "E"}, ScaleModes: []string{"Dorisch", "Phrygisch"}}
	st, _ := newStore(t, today)
	s := New(st, sessionDate, exercises(st)[1:2], WithClock(clock))

	if added, _ := s.AddScale("D", "Dorisch"); added {
		t.Fatalf("duplicate pair added")
	}
	if removed, _ := s.RemoveScale(0); !removed {
		t.Fatalf("RemoveScale failed")
	}
	_ = s.Save()
	got, _ := derive.LogFor(st.Snapshot(), 2, sessionDate)
	if diff := cmp.Diff([]model.ScalePair{{Key: "E", Mode: "Phrygisch"}}, got.ScalePairs()); diff != "" {
		t.Fatalf("pairs (-want +got):\n%s", diff)
	}
}
