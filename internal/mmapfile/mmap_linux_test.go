//go:build linux

package mmapfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenMapsFileContents(t *testing.T) {
	content := "line one\nline two\nline three\n"
	path := filepath.Join(t.TempDir(), "data.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, ok, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !ok {
		t.Fatal("Open: expected ok=true for a non-empty file")
	}
	defer f.Close()

	if string(f.Bytes()) != content {
		t.Fatalf("Bytes() = %q, want %q", f.Bytes(), content)
	}
}

func TestOpenEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, ok, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if ok || f != nil {
		t.Fatal("Open: expected ok=false, f=nil for an empty file")
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestPageAlign(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0},
		{1, 0},
		{pageSize - 1, 0},
		{pageSize, pageSize},
		{pageSize + 1, pageSize},
	}
	for _, tc := range tests {
		if got := PageAlign(tc.in); got != tc.want {
			t.Errorf("PageAlign(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestReleaseBeforeDoesNotPanic(t *testing.T) {
	content := make([]byte, pageSize*4)
	for i := range content {
		content[i] = 'x'
	}
	path := filepath.Join(t.TempDir(), "big.txt")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, ok, err := Open(path)
	if err != nil || !ok {
		t.Fatalf("Open: ok=%v, err=%v", ok, err)
	}
	defer f.Close()

	f.ReleaseBefore(0)
	f.ReleaseBefore(pageSize * 2)
	f.ReleaseBefore(len(content) + pageSize)
}
