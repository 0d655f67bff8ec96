package kv

import (
	"errors"
	"path/filepath"
	"testing"
)

func exerciseStorage(t *testing.T, s Storage) {
	t.Helper()

	if _, ok, err := s.Read("practiceLogs"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := s.Write("practiceLogs", `[{"id":1}]`); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Write("categories", `["Jazz"]`); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Write("practiceLogs", `[]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, ok, err := s.Read("practiceLogs")
	if err != nil || !ok {
		t.Fatalf("expected stored key, got ok=%v err=%v", ok, err)
	}
	if got != `[]` {
		t.Fatalf("expected overwritten value, got %q", got)
	}
	got, _, _ = s.Read("categories")
	if got != `["Jazz"]` {
		t.Fatalf("unrelated key changed: %q", got)
	}
}

func TestDiskvStorage(t *testing.T) {
	s, err := NewDiskv(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	exerciseStorage(t, s)
}

func TestDiskvSurvivesReopen(t *testing.T) {
	base := t.TempDir()
	s, err := NewDiskv(base)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Write("currentPhase", "3"); err != nil {
		t.Fatalf("write: %v", err)
	}
	again, err := NewDiskv(base)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, ok, err := again.Read("currentPhase")
	if err != nil || !ok || got != "3" {
		t.Fatalf("expected 3, got %q ok=%v err=%v", got, ok, err)
	}
}

func TestSQLiteStorage(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "uebung.sqlite"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	exerciseStorage(t, s)
}

func TestMemoryStorageFailure(t *testing.T) {
	m := NewMemory()
	exerciseStorage(t, m)

	quota := errors.New("quota exceeded")
	m.Fail("categories", quota)
	err := m.Write("categories", `[]`)
	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if se.Key != "categories" || se.Op != "write" || !errors.Is(err, quota) {
		t.Fatalf("unexpected error %#v", se)
	}
	got, _, _ := m.Read("categories")
	if got != `["Jazz"]` {
		t.Fatalf("failed write changed value: %q", got)
	}
}

func TestOpenSelectsDriver(t *testing.T) {
	s, err := Open(StaticConfig{Backend: DriverMemory})
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	if _, ok := s.(*Memory); !ok {
		t.Fatalf("expected *Memory, got %T", s)
	}
	if _, err := Open(StaticConfig{Backend: "etcd", Path: t.TempDir()}); !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver, got %v", err)
	}
}
