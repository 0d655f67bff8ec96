package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCommandTree(t *testing.T) {
	root := New()
	want := []string{
		"exercise", "category", "day", "phase", "today", "last", "log",
		"practice", "week", "calendar", "progress", "scales", "backup",
		"info", "version", "completion", "mcp",
	}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Fatalf("command %q not registered: %v", name, err)
		}
	}

	for _, path := range [][]string{
		{"exercise", "add"}, {"exercise", "edit"}, {"exercise", "list"},
		{"category", "remove"}, {"day", "set"}, {"day", "clear"},
		{"phase", "use"}, {"scales", "coverage"}, {"scales", "suggest"},
		{"backup", "export"}, {"backup", "import"}, {"backup", "status"},
	} {
		cmd, _, err := root.Find(path)
		if err != nil || cmd.Name() != path[len(path)-1] {
			t.Fatalf("command %v not registered: %v", path, err)
		}
	}
}

func TestProgressAliases(t *testing.T) {
	root := New()
	for _, alias := range []string{"report", "stats"} {
		cmd, _, err := root.Find([]string{alias})
		if err != nil || cmd.Name() != "progress" {
			t.Fatalf("alias %q does not resolve to progress: %v", alias, err)
		}
	}
}

func TestReadInput(t *testing.T) {
	raw, err := readInput(strings.NewReader(`{"categories":[]}`), "-")
	if err != nil {
		t.Fatalf("stdin: %v", err)
	}
	if string(raw) != `{"categories":[]}` {
		t.Fatalf("unexpected stdin content %q", raw)
	}

	path := filepath.Join(t.TempDir(), "backup.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	raw, err = readInput(nil, path)
	if err != nil || string(raw) != `{}` {
		t.Fatalf("file: %q, %v", raw, err)
	}

	if _, err := readInput(nil, filepath.Join(t.TempDir(), "missing.json")); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestRegularFileIsNotTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if isTerminal(f) {
		t.Fatalf("a regular file reported as terminal")
	}
}
