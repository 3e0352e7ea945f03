package customfmt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abbat/timegrep/internal/alias"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "formats.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadRegistersEntries(t *testing.T) {
	path := writeYAML(t, `
formats:
  - name: my-custom-format
    format: "%Y/%m/%d %H:%M:%S"
`)

	n, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if n != 1 {
		t.Fatalf("n = %d, want 1", n)
	}

	got, ok := alias.Resolve("my-custom-format")
	if !ok {
		t.Fatal("Resolve: registered format not found")
	}
	if got != "%Y/%m/%d %H:%M:%S" {
		t.Fatalf("Resolve = %q", got)
	}
}

func TestLoadRejectsMissingName(t *testing.T) {
	path := writeYAML(t, `
formats:
  - format: "%Y/%m/%d"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for a format entry missing a name")
	}
}

func TestLoadRejectsMissingFormat(t *testing.T) {
	path := writeYAML(t, `
formats:
  - name: missing-format
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for a format entry missing a format string")
	}
}

func TestLoadRejectsUncompilableFormat(t *testing.T) {
	path := writeYAML(t, `
formats:
  - name: bad-format
    format: "%Q"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for a format that does not compile")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}
