package printers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/uebung/pkg/backup"
	"tableflip.dev/uebung/pkg/derive"
	"tableflip.dev/uebung/pkg/model"
	"tableflip.dev/uebung/pkg/scales"
)

func newPrinter() (*PrettyPrint, *bytes.Buffer) {
	color.NoColor = true
	var buf bytes.Buffer
	return &PrettyPrint{Out: &buf, Width: 20}, &buf
}

func TestExercisesTable(t *testing.T) {
	pp, buf := newPrinter()
	pp.Exercises("Exercises", []model.Exercise{{ID: 7, Name: "Akkordfolgen", Category: "Akkorde", Phase: 1}})
	out := buf.String()
	for _, want := range []string{"Exercises - 1 exercise", "Akkordfolgen", "Akkorde"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLogWrapsNotes(t *testing.T) {
	pp, buf := newPrinter()
	pp.Log("Last", model.LogEntry{Date: "2024-01-08", BPM: 96, Notes: "keep the wrist loose and relaxed during runs"})
	out := buf.String()
	if !strings.Contains(out, "96") || !strings.Contains(out, "open") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "  keep") && len(line) > 22 {
			t.Fatalf("notes not wrapped: %q", line)
		}
	}
}

func TestPlanWithoutCategory(t *testing.T) {
	pp, buf := newPrinter()
	pp.Plan(derive.Plan{Date: "2024-01-02", Day: "Tuesday", Phase: 1})
	if !strings.Contains(buf.String(), "no category assigned") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestProgressHints(t *testing.T) {
	pp, buf := newPrinter()
	pp.Progress(derive.ProgressResult{LastWeek: 3, CompletionRate: 80, Hints: []string{derive.HintActiveWeek}}, "1w")
	if !strings.Contains(buf.String(), "completed 3 exercises this week") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestImportReportPartial(t *testing.T) {
	pp, buf := newPrinter()
	pp.ImportReport(backup.ImportReport{Fields: []backup.FieldResult{
		{Field: "exercises", Applied: true},
		{Field: "categories", Reason: "absent"},
	}})
	out := buf.String()
	if !strings.Contains(out, "Import partial: 1 of 2") || !strings.Contains(out, "absent") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestCoverageGrid(t *testing.T) {
	pp, buf := newPrinter()
	pp.Coverage(model.Exercise{Name: "Tonleitern"}, scales.Stats{Practiced: 1, Total: 156, Percentage: 1}, []model.ScalePair{{Key: "C", Mode: "Blues"}}, nil)
	out := buf.String()
	if !strings.Contains(out, "1/156 scales (1%)") || !strings.Contains(out, "Chromatisch") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestMonthStartsOnMonday(t *testing.T) {
	pp, buf := newPrinter()
	if err := pp.Month("2024-02-10", map[model.Date]int{"2024-02-01": 1}, "2024-02-10"); err != nil {
		t.Fatalf("Month: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if !strings.Contains(lines[0], "February 2024") || lines[1] != "Mo Tu We Th Fr Sa Su" {
		t.Fatalf("unexpected header:\n%s", buf.String())
	}
	// 2024-02-01 is a Thursday.
	if !strings.HasPrefix(lines[2], "          1  2  3  4") {
		t.Fatalf("unexpected first week %q", lines[2])
	}
}
