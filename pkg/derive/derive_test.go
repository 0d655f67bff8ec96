package derive

import (
	"reflect"
	"testing"
	"time"

	"tableflip.dev/uebung/pkg/model"
	"tableflip.dev/uebung/pkg/store"
)

func scalesSnapshot() store.Snapshot {
	return store.Snapshot{
		Exercises: []model.Exercise{
			{ID: 1, Category: "Scales", Name: "Scales", Phase: 1},
			{ID: 2, Category: "Scales", Name: "Arpeggios", Phase: 2},
			{ID: 3, Category: "Jazz", Name: "Voicings", Phase: 1},
		},
		DayHeaders:   map[string]string{"Monday": "Scales"},
		Phases:       []int{1, 2},
		CurrentPhase: 1,
	}
}

func TestExercisesScheduledForMonday(t *testing.T) {
	snap := scalesSnapshot()

	monday, err := model.WeekdayOf("2024-01-01")
	if err != nil {
		t.Fatalf("WeekdayOf: %v", err)
	}
	got := ExercisesScheduledFor(snap, monday, 1)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("Monday schedule = %+v, want [template 1]", got)
	}

	tuesday, _ := model.WeekdayOf("2024-01-02")
	if got := ExercisesScheduledFor(snap, tuesday, 1); got == nil || len(got) != 0 {
		t.Fatalf("Tuesday schedule = %#v, want empty", got)
	}
}

func TestCategoryForAcceptsGermanLabels(t *testing.T) {
	snap := store.Snapshot{DayHeaders: map[string]string{"Mittwoch": "Jazz"}}
	if got := CategoryFor(snap, model.Wednesday); got != "Jazz" {
		t.Fatalf("CategoryFor = %q, want Jazz", got)
	}
	if got := CategoryFor(snap, model.Thursday); got != "" {
		t.Fatalf("CategoryFor = %q, want empty", got)
	}
}

func TestExercisesInPhaseKeepsInsertionOrder(t *testing.T) {
	snap := scalesSnapshot()
	got := ExercisesInPhase(snap, 1)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("ExercisesInPhase = %+v", got)
	}
}

func TestLastLogForPicksLatestDate(t *testing.T) {
	snap := store.Snapshot{Logs: []model.LogEntry{
		{ID: 10, ExerciseID: 1, Date: "2024-01-08", BPM: 90},
		{ID: 11, ExerciseID: 1, Date: "2024-01-01", BPM: 80},
		{ID: 12, ExerciseID: 2, Date: "2024-02-01"},
	}}
	got, ok := LastLogFor(snap, 1)
	if !ok || got.Date != "2024-01-08" {
		t.Fatalf("LastLogFor = %+v, %v", got, ok)
	}
	if _, ok := LastLogFor(snap, 3); ok {
		t.Fatalf("expected no log for exercise 3")
	}
}

func TestLastLogForTieBreaksOnCollectionOrder(t *testing.T) {
	snap := store.Snapshot{Logs: []model.LogEntry{
		{ID: 1, ExerciseID: 1, Date: "2024-01-08", Song: "first"},
		{ID: 2, ExerciseID: 1, Date: "2024-01-08", Song: "second"},
	}}
	got, _ := LastLogFor(snap, 1)
	if got.Song != "second" {
		t.Fatalf("tie-break picked %q, want second", got.Song)
	}
}

func TestGlobalNotesForSkipsEmpty(t *testing.T) {
	snap := store.Snapshot{Logs: []model.LogEntry{
		{ExerciseID: 1, Date: "2024-01-01", GlobalNotes: "relax shoulders"},
		{ExerciseID: 1, Date: "2024-01-08"},
		{ExerciseID: 1, Date: "2023-12-01", GlobalNotes: "old"},
	}}
	if got := GlobalNotesFor(snap, 1); got != "relax shoulders" {
		t.Fatalf("GlobalNotesFor = %q", got)
	}
	if got := GlobalNotesFor(snap, 2); got != "" {
		t.Fatalf("GlobalNotesFor = %q, want empty", got)
	}
}

func TestDayPlanPrefersTodayOverLast(t *testing.T) {
	snap := scalesSnapshot()
	snap.Logs = []model.LogEntry{
		{ExerciseID: 1, Date: "2023-12-25", Song: "Autumn Leaves", BPM: 90, Book: "Real Book", Notes: "old notes"},
		{ExerciseID: 1, Date: "2024-01-01", BPM: 110, Completed: true},
	}

	plan, err := DayPlan(snap, "2024-01-01", 1)
	if err != nil {
		t.Fatalf("DayPlan: %v", err)
	}
	if plan.Day != "Monday" || plan.Category != "Scales" || len(plan.Items) != 1 {
		t.Fatalf("unexpected plan %+v", plan)
	}
	item := plan.Items[0]
	if item.Song != "Autumn Leaves" || item.Book != "Real Book" || item.BPM != 110 || !item.Completed {
		t.Fatalf("unexpected item %+v", item)
	}
	if item.Notes != "" {
		t.Fatalf("notes carried forward: %q", item.Notes)
	}
	if item.Today == nil || item.Last == nil || item.Last.Date != "2023-12-25" {
		t.Fatalf("missing logs on item %+v", item)
	}
	if plan.Completed() != 1 {
		t.Fatalf("Completed = %d", plan.Completed())
	}

	fresh, _ := DayPlan(scalesSnapshot(), "2024-01-08", 1)
	if fresh.Items[0].BPM != model.DefaultBPM {
		t.Fatalf("default bpm = %d", fresh.Items[0].BPM)
	}
}

func TestWeekRates(t *testing.T) {
	snap := scalesSnapshot()
	snap.DayHeaders["Friday"] = "Jazz"
	snap.Exercises = append(snap.Exercises, model.Exercise{ID: 4, Category: "Scales", Name: "Modes", Phase: 1})
	snap.Logs = []model.LogEntry{
		{ExerciseID: 1, Date: "2024-01-01", Completed: true},
		{ExerciseID: 4, Date: "2024-01-01", Completed: false},
		{ExerciseID: 3, Date: "2024-01-05", Completed: true},
	}

	view, err := Week(snap, "2024-01-03", 1)
	if err != nil {
		t.Fatalf("Week: %v", err)
	}
	if view.Start != "2024-01-01" || len(view.Days) != 7 {
		t.Fatalf("unexpected week %+v", view)
	}
	var rates []int
	for _, d := range view.Days {
		rates = append(rates, d.Rate)
	}
	if want := []int{50, 0, 0, 0, 100, 0, 0}; !reflect.DeepEqual(rates, want) {
		t.Fatalf("rates = %v, want %v", rates, want)
	}
	if view.Days[6].Date != "2024-01-07" || view.Days[6].Day != "Sunday" {
		t.Fatalf("last day = %+v", view.Days[6])
	}
}

func TestPercentRoundsHalfUp(t *testing.T) {
	cases := []struct{ part, total, want int }{
		{0, 0, 0}, {1, 3, 33}, {2, 3, 67}, {1, 8, 13}, {3, 3, 100},
	}
	for _, c := range cases {
		if got := percent(c.part, c.total); got != c.want {
			t.Fatalf("percent(%d, %d) = %d, want %d", c.part, c.total, got, c.want)
		}
	}
}

func TestProgress(t *testing.T) {
	now := time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)
	recent := model.Stamp(now.Add(-48 * time.Hour)).Ptr()
	snap := scalesSnapshot()
	snap.Logs = []model.LogEntry{
		{ExerciseID: 1, Date: "2024-01-01", Completed: true},
		{ExerciseID: 3, Date: "2024-01-01", Completed: true},
		{ExerciseID: 1, Date: "2024-01-18", Completed: true, CompletedAt: recent},
		{ExerciseID: 2, Date: "2024-01-19"},
	}

	res := Progress(snap, "", "", now)
	if res.Total != 4 || res.Completed != 3 || res.CompletionRate != 75 || res.LastWeek != 1 {
		t.Fatalf("unexpected totals %+v", res)
	}
	if len(res.Recent) != 2 || res.Recent[0].Date != "2024-01-18" || len(res.Recent[1].Logs) != 2 {
		t.Fatalf("unexpected recent %+v", res.Recent)
	}
	want := []PhaseStat{{Phase: 1, Exercises: 2, CompletedLogs: 3}, {Phase: 2, Exercises: 1}}
	if !reflect.DeepEqual(res.Phases, want) {
		t.Fatalf("phases = %+v, want %+v", res.Phases, want)
	}
	if !reflect.DeepEqual(res.Hints, []string{HintActiveWeek}) {
		t.Fatalf("hints = %v", res.Hints)
	}

	windowed := Progress(snap, "2024-01-10", "", now)
	if windowed.Total != 2 || windowed.CompletionRate != 50 {
		t.Fatalf("windowed = %+v", windowed)
	}

	empty := Progress(store.Snapshot{}, "", "", now)
	if !reflect.DeepEqual(empty.Hints, []string{HintLowCompletion, HintStartWeek}) {
		t.Fatalf("empty hints = %v", empty.Hints)
	}
}

func TestPhaseUsage(t *testing.T) {
	snap := scalesSnapshot()
	snap.Phases = []int{1, 2, 3}
	got := Phases(snap)
	want := []PhaseInfo{
		{Phase: 1, Exercises: 2, Current: true},
		{Phase: 2, Exercises: 1},
		{Phase: 3, Removable: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Phases = %+v, want %+v", got, want)
	}
}

func TestActivity(t *testing.T) {
	snap := store.Snapshot{Logs: []model.LogEntry{
		{ExerciseID: 1, Date: "2024-01-01", Completed: true},
		{ExerciseID: 2, Date: "2024-01-01", Completed: true},
		{ExerciseID: 3, Date: "2024-01-02"},
		{ExerciseID: 1, Date: "2024-02-01", Completed: true},
	}}
	got := Activity(snap, "2024-01-01", "2024-01-31")
	want := map[model.Date]int{"2024-01-01": 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Activity = %v, want %v", got, want)
	}
}
