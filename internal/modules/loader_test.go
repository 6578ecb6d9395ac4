package modules

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, root string, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("mod m\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestResolveSingleFileModule(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "geometry/shapes.lun")

	files, err := NewLoader(root).Resolve([]string{"geometry", "shapes"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "shapes.lun" {
		t.Errorf("Resolve = %v, want the single shapes.lun", files)
	}
}

func TestResolveDirectoryModule(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "geometry/shapes/circle.lun")
	writeSource(t, root, "geometry/shapes/nested/square.lun")
	writeSource(t, root, "geometry/other.lun")

	files, err := NewLoader(root).Resolve([]string{"geometry", "shapes"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Resolve = %v, want circle.lun and nested square.lun", files)
	}
	if filepath.Base(files[0]) != "circle.lun" {
		t.Errorf("results should be sorted, got %v", files)
	}
}

func TestResolveMissingModule(t *testing.T) {
	if _, err := NewLoader(t.TempDir()).Resolve([]string{"nope"}); err == nil {
		t.Fatalf("expected an error for a missing module")
	}
}

func TestResolveEmptyPath(t *testing.T) {
	if _, err := NewLoader(t.TempDir()).Resolve(nil); err == nil {
		t.Fatalf("expected an error for an empty path")
	}
}

func TestModuleName(t *testing.T) {
	l := NewLoader(".")
	if got := l.ModuleName("geometry/shapes.lun"); got != "shapes" {
		t.Errorf("ModuleName = %q, want shapes", got)
	}
}
