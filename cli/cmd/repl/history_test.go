package repl

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistoryPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)
	for _, line := range []string{"a", "b", "a", "  ", "c", "c"} {
		if err := h.Add(line); err != nil {
			t.Fatalf("Add(%q) error = %v", line, err)
		}
	}

	want := []string{"b", "a", "c"}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := reloaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("reloaded Entries() = %v, want %v", got, want)
	}
}

func TestHistoryLoadMissing(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "missing"))

	if err := h.Load(); err != nil {
		t.Errorf("Load() error = %v, want nil", err)
	}

	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
}

func TestHistoryInMemory(t *testing.T) {
	h := NewHistory("")

	if err := h.Add("x"); err != nil {
		t.Fatal(err)
	}

	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	if line, err := h.Line(0); err != nil || line != "x" {
		t.Errorf("Line(0) = (%q, %v), want (x, nil)", line, err)
	}

	if _, err := h.Line(1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Line(1) error = %v, want ErrOutOfBounds", err)
	}
}
