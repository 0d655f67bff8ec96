package timeutil

import (
	"testing"

	"tableflip.dev/uebung/pkg/model"
)

func TestParseWindowDefault(t *testing.T) {
	days, label, err := ParseWindow("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 7 {
		t.Fatalf("expected 7 days, got %d", days)
	}
	if label != "1w" {
		t.Fatalf("expected label 1w, got %s", label)
	}
}

func TestParseWindowComposite(t *testing.T) {
	days, label, err := ParseWindow("1mo2w3d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 30+14+3 {
		t.Fatalf("expected 47 days, got %d", days)
	}
	if label != "6w5d" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseWindowErrors(t *testing.T) {
	for _, in := range []string{"abc", "3h", "0d", "2w!"} {
		if _, _, err := ParseWindow(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestSince(t *testing.T) {
	today := model.MustDate("2024-01-15")
	if got := Since(today, 7); got != "2024-01-09" {
		t.Fatalf("Since(7) = %s", got)
	}
	if got := Since(today, 1); got != today {
		t.Fatalf("Since(1) = %s", got)
	}
}
