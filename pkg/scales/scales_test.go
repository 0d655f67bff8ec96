package scales

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/uebung/pkg/model"
)

func TestCatalogSize(t *testing.T) {
	if Total != 156 || len(Catalog()) != 156 {
		t.Fatalf("catalog has %d pairs (Total %d), want 156", len(Catalog()), Total)
	}
	first := Catalog()[0]
	if first.Key != "C" || first.Mode != "Dur (Ionisch)" {
		t.Fatalf("first pair = %+v", first)
	}
}

func TestPracticedPairsAcrossDates(t *testing.T) {
	logs := []model.LogEntry{
		{ExerciseID: 1, Date: "2024-01-01", ScaleKeys: []string{"C", "G"}, ScaleModes: []string{"Dorisch"}},
		{ExerciseID: 1, Date: "2024-01-02", ScaleKeys: []string{"C", "D"}, ScaleModes: []string{"Dorisch", "Blues"}},
		{ExerciseID: 2, Date: "2024-01-02", ScaleKeys: []string{"E"}, ScaleModes: []string{"Blues"}},
	}
	got := PracticedPairs(logs, 1)
	want := []model.ScalePair{{Key: "C", Mode: "Dorisch"}, {Key: "D", Mode: "Blues"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("PracticedPairs mismatch (-want +got):\n%s", diff)
	}
	if IsPracticed(logs, 1, "G", "") || !IsPracticed(logs, 1, "D", "Blues") {
		t.Fatalf("IsPracticed wrong")
	}
	if !IsPracticedToday(logs, 1, "C", "Dorisch", "2024-01-01") || IsPracticedToday(logs, 1, "D", "Blues", "2024-01-01") {
		t.Fatalf("IsPracticedToday wrong")
	}
}

func TestCoverageBounds(t *testing.T) {
	if got := Coverage(nil, 1); got != (Stats{Practiced: 0, Total: 156, Percentage: 0}) {
		t.Fatalf("empty coverage = %+v", got)
	}

	var keys, modes []string
	for _, p := range Catalog() {
		keys = append(keys, p.Key)
		modes = append(modes, p.Mode)
	}
	keys = append(keys, "H", "C")
	modes = append(modes, "Dur (Ionisch)", "Bebop")
	logs := []model.LogEntry{
		{ExerciseID: 1, Date: "2024-01-01", ScaleKeys: keys, ScaleModes: modes},
		{ExerciseID: 1, Date: "2024-01-02", ScaleKeys: keys, ScaleModes: modes},
	}
	got := Coverage(logs, 1)
	if got.Practiced != 156 || got.Percentage != 100 {
		t.Fatalf("full coverage = %+v", got)
	}

	partial := Coverage([]model.LogEntry{{ExerciseID: 1, ScaleKeys: []string{"C"}, ScaleModes: []string{"Blues"}}}, 1)
	if partial.Practiced != 1 || partial.Percentage != 1 {
		t.Fatalf("partial coverage = %+v", partial)
	}
}

func TestSuggestions(t *testing.T) {
	logs := []model.LogEntry{{ExerciseID: 1, ScaleKeys: []string{"C"}, ScaleModes: []string{"Dur (Ionisch)"}}}
	got := Suggestions(logs, 1, 2)
	want := []model.ScalePair{{Key: "C", Mode: "Dorisch"}, {Key: "C", Mode: "Phrygisch"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Suggestions mismatch (-want +got):\n%s", diff)
	}
	if n := len(Suggestions(logs, 1, 0)); n != 155 {
		t.Fatalf("unbounded suggestions = %d, want 155", n)
	}
}

func TestSelection(t *testing.T) {
	s := NewSelection([]model.ScalePair{{Key: "C", Mode: "Blues"}, {Key: "C", Mode: "Blues"}})
	if s.Len() != 1 {
		t.Fatalf("duplicates kept: %v", s.Pairs())
	}
	if !s.Add("G", "Dorisch") || s.Add("G", "Dorisch") || s.Add("A", "") {
		t.Fatalf("Add idempotency broken: %v", s.Pairs())
	}
	if s.Remove(5) || !s.Remove(0) {
		t.Fatalf("Remove bounds broken")
	}
	want := []model.ScalePair{{Key: "G", Mode: "Dorisch"}}
	if diff := cmp.Diff(want, s.Pairs()); diff != "" {
		t.Fatalf("Pairs mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePair(t *testing.T) {
	got, err := ParsePair("g:dur")
	if err != nil || got != (model.ScalePair{Key: "G", Mode: "Dur (Ionisch)"}) {
		t.Fatalf("ParsePair = %+v, %v", got, err)
	}
	got, err = ParsePair("F#/Gb:Moll (Äolisch)")
	if err != nil || got.Key != "F#/Gb" {
		t.Fatalf("ParsePair = %+v, %v", got, err)
	}
	if _, err := ParsePair("C:Pentatonisch"); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("ambiguous mode err = %v", err)
	}
	if _, err := ParsePair("H:Blues"); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("unknown key err = %v", err)
	}
	if _, err := ParsePair("C"); err == nil {
		t.Fatalf("expected error for missing mode")
	}
}

func TestTracksScales(t *testing.T) {
	cases := []struct {
		e    model.Exercise
		want bool
	}{
		{model.Exercise{Name: "Akkordfolgen", Category: "Akkorde"}, false},
		{model.Exercise{Name: "Tonleiterübung", Category: "Technik"}, true},
		{model.Exercise{Name: "Warmup", Category: "Major Scales"}, true},
		{model.Exercise{Name: "Warmup", Category: "Technik", HasScaleSelector: true}, true},
	}
	for _, c := range cases {
		if got := TracksScales(c.e); got != c.want {
			t.Fatalf("TracksScales(%+v) = %v, want %v", c.e, got, c.want)
		}
	}
}
