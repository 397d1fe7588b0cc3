package fs

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"
)

func TestOpenValidatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	folder, err := NewSystem().Open(tmpDir)
	if err != nil {
		t.Fatalf("Open(%s): %v", tmpDir, err)
	}
	if folder.Ref() == "" {
		t.Error("Ref should return the persistable path")
	}

	if _, err := NewSystem().Open(filepath.Join(tmpDir, "missing")); err == nil {
		t.Error("Open should fail for a missing path")
	}

	file := filepath.Join(tmpDir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewSystem().Open(file); err == nil {
		t.Error("Open should fail for a regular file")
	}
}

func TestWalkListsFilesRecursively(t *testing.T) {
	tmpDir := t.TempDir()
	files := []string{"top.jpg", "sub/one.png", "sub/deep/two.mp4"}
	for _, f := range files {
		full := filepath.Join(tmpDir, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(f), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	folder, err := NewSystem().Open(tmpDir)
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	err = folder.Walk(func(e Entry) error {
		got = append(got, e.RelPath)
		if e.Size == 0 {
			t.Errorf("entry %s: expected non-zero size", e.RelPath)
		}
		if e.ModTime.IsZero() {
			t.Errorf("entry %s: expected mod time", e.RelPath)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	sort.Strings(got)
	expected := []string{"sub/deep/two.mp4", "sub/one.png", "top.jpg"}
	if len(got) != len(expected) {
		t.Fatalf("expected %d entries, got %d: %v", len(expected), len(got), got)
	}
	for i, want := range expected {
		if got[i] != want {
			t.Errorf("entry %d: expected %q, got %q", i, want, got[i])
		}
	}
}

func TestReadFile(t *testing.T) {
	tmpDir := t.TempDir()
	mod := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	full := filepath.Join(tmpDir, "data.bin")
	if err := os.WriteFile(full, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(full, mod, mod); err != nil {
		t.Fatal(err)
	}

	folder, err := NewSystem().Open(tmpDir)
	if err != nil {
		t.Fatal(err)
	}

	data, modTime, err := folder.ReadFile("data.bin")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("expected payload, got %q", data)
	}
	if !modTime.Equal(mod) {
		t.Errorf("expected mod time %v, got %v", mod, modTime)
	}

	if _, _, err := folder.ReadFile("missing.bin"); err == nil {
		t.Error("ReadFile should fail for a missing file")
	}
	if _, _, err := folder.ReadFile("../escape"); err == nil {
		t.Error("ReadFile should reject paths escaping the folder")
	}
}

func TestCreateFile(t *testing.T) {
	tmpDir := t.TempDir()
	folder, err := NewSystem().Open(tmpDir)
	if err != nil {
		t.Fatal(err)
	}

	w, err := folder.CreateFile("new.webm")
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if _, err := io.WriteString(w, "bytes"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "new.webm"))
	if err != nil || string(data) != "bytes" {
		t.Fatalf("expected written file, got %q err=%v", data, err)
	}

	// Existing files must not be overwritten
	if _, err := folder.CreateFile("new.webm"); err == nil {
		t.Error("CreateFile should fail when the file already exists")
	}

	// Names with separators are rejected
	if _, err := folder.CreateFile("sub/child.jpg"); err == nil {
		t.Error("CreateFile should reject names containing separators")
	}
}

func TestVerifyAccessGranted(t *testing.T) {
	tmpDir := t.TempDir()
	folder, err := NewSystem().Open(tmpDir)
	if err != nil {
		t.Fatal(err)
	}

	if !VerifyAccess(folder, false) {
		t.Error("expected read access to a fresh temp dir")
	}
	if !VerifyAccess(folder, true) {
		t.Error("expected write access to a fresh temp dir")
	}
}
