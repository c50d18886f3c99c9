package tag

import (
	"os"
	"path/filepath"
	"testing"
)

func sessionFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "abc123.jsonl")
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSidecarPath(t *testing.T) {
	got := SidecarPath("/p/ws/abc123.jsonl")
	want := "/p/ws/abc123.tag.json"
	if got != want {
		t.Errorf("SidecarPath() = %q, want %q", got, want)
	}
}

func TestWriteAndRead(t *testing.T) {
	store := NewSidecarStore()
	path := sessionFile(t)

	if err := store.Write(path, "experiment"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	got, err := store.Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if got != "experiment" {
		t.Errorf("Read() = %q, want %q", got, "experiment")
	}

	// Overwrite replaces the previous value.
	if err := store.Write(path, "renamed"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	got, _ = store.Read(path)
	if got != "renamed" {
		t.Errorf("Read() after overwrite = %q, want %q", got, "renamed")
	}
}

func TestReadWithoutSidecar(t *testing.T) {
	store := NewSidecarStore()
	got, err := store.Read(sessionFile(t))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if got != "" {
		t.Errorf("Read() = %q, want empty", got)
	}
}

func TestEmptyWriteDeletesSidecar(t *testing.T) {
	store := NewSidecarStore()
	path := sessionFile(t)

	if err := store.Write(path, "temp"); err != nil {
		t.Fatal(err)
	}
	if err := store.Write(path, ""); err != nil {
		t.Fatalf("clearing Write() error: %v", err)
	}

	if _, err := os.Stat(SidecarPath(path)); !os.IsNotExist(err) {
		t.Error("sidecar file should be deleted, not left empty")
	}
	got, err := store.Read(path)
	if err != nil || got != "" {
		t.Errorf("Read() after clear = (%q, %v), want empty", got, err)
	}
}

func TestClearingAbsentTagIsIdempotent(t *testing.T) {
	store := NewSidecarStore()
	path := sessionFile(t)

	if err := store.Write(path, ""); err != nil {
		t.Errorf("clearing a never-set tag errored: %v", err)
	}
	if err := store.Write(path, "   "); err != nil {
		t.Errorf("clearing with whitespace errored: %v", err)
	}
}

func TestReadCorruptSidecar(t *testing.T) {
	store := NewSidecarStore()
	path := sessionFile(t)

	if err := os.WriteFile(SidecarPath(path), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Read(path); err == nil {
		t.Error("expected error for corrupt sidecar")
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	store := NewSidecarStore()
	path := sessionFile(t)

	if err := store.Write(path, "value"); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		name := e.Name()
		if name != filepath.Base(path) && name != filepath.Base(SidecarPath(path)) {
			t.Errorf("unexpected leftover file %q", name)
		}
	}
}
