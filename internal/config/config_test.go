package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

// scratchDir creates a uniquely named workspace for a config fixture.
func scratchDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "lunar-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("creating scratch dir: %v", err)
	}
	return dir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if cfg.Strict {
		t.Errorf("strict mode should be off by default")
	}
	if !cfg.Warnings.Unreachable {
		t.Errorf("unreachable warnings should be on by default")
	}
	if cfg.Defaults.Int != "i32" || cfg.Defaults.Float != "f64" {
		t.Errorf("literal defaults = %s/%s, want i32/f64", cfg.Defaults.Int, cfg.Defaults.Float)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(scratchDir(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Defaults.Int != "i32" {
		t.Errorf("missing lunar.yaml should yield defaults")
	}
}

func TestLoadReadsYaml(t *testing.T) {
	dir := scratchDir(t)
	writeFile(t, dir, ConfigFileName, "strict: true\ndefaults:\n  int: i64\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Strict {
		t.Errorf("strict not read from yaml")
	}
	if cfg.Defaults.Int != "i64" {
		t.Errorf("defaults.int = %s, want i64", cfg.Defaults.Int)
	}
	if cfg.Defaults.Float != "f64" {
		t.Errorf("unset defaults.float should keep its default, got %s", cfg.Defaults.Float)
	}
}

func TestLoadRejectsInvalidYaml(t *testing.T) {
	dir := scratchDir(t)
	writeFile(t, dir, ConfigFileName, "strict: [broken\n")
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestLoadRejectsInvalidDefaults(t *testing.T) {
	dir := scratchDir(t)
	writeFile(t, dir, ConfigFileName, "defaults:\n  int: i33\n")
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected a validation error for i33")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	dir := scratchDir(t)
	writeFile(t, dir, ConfigFileName, "defaults:\n  int: i64\n")
	t.Setenv("LUNAR_STRICT", "true")
	t.Setenv("LUNAR_DEFAULT_INT", "i16")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Strict {
		t.Errorf("LUNAR_STRICT override ignored")
	}
	if cfg.Defaults.Int != "i16" {
		t.Errorf("LUNAR_DEFAULT_INT override ignored, got %s", cfg.Defaults.Int)
	}
}

func TestDotEnvOverrides(t *testing.T) {
	dir := scratchDir(t)
	writeFile(t, dir, ".env", "LUNAR_DEFAULT_FLOAT=f32\n")
	t.Setenv("LUNAR_DEFAULT_FLOAT", "")
	os.Unsetenv("LUNAR_DEFAULT_FLOAT")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Defaults.Float != "f32" {
		t.Errorf(".env override ignored, got %s", cfg.Defaults.Float)
	}
}

func TestSourceExtensionHelpers(t *testing.T) {
	if !HasSourceExt("geometry/shapes.lun") {
		t.Errorf("shapes.lun should be recognized")
	}
	if HasSourceExt("shapes.go") {
		t.Errorf("shapes.go should not be recognized")
	}
	if got := TrimSourceExt("shapes.lun"); got != "shapes" {
		t.Errorf("TrimSourceExt = %q, want shapes", got)
	}
	if got := TrimSourceExt("no-ext"); got != "no-ext" {
		t.Errorf("TrimSourceExt should pass through unknown names, got %q", got)
	}
}
