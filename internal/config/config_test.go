package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "langident.yaml")
	yaml := `
profile_path: testdata/profiles/sample.ndjson
detection:
  alpha: 0.5
  alpha_width: 0.05
  trials: 7
  max_text_length: 10000
  prob_threshold: 0.1
thresholds:
  review_gap: 0.2
cache:
  ttl_hours: 24
  lru_size: 10000
meili:
  index_name: detection_review
reload:
  interval: 5m
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if C.Detection.Trials != 7 {
		t.Errorf("Trials = %d, want 7", C.Detection.Trials)
	}
	if C.Meili.IndexName != "detection_review" {
		t.Errorf("IndexName = %q, want detection_review", C.Meili.IndexName)
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "langident.yaml")
	if err := os.WriteFile(path, []byte("detection:\n  alpha: 0.5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("LANGIDENT_ALPHA", "0.75")
	t.Setenv("LANGIDENT_PROFILE_PATH", "/tmp/profiles.ndjson")

	if err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if C.Detection.Alpha != 0.75 {
		t.Errorf("Alpha = %v, want 0.75 (env override)", C.Detection.Alpha)
	}
	if C.ProfilePath != "/tmp/profiles.ndjson" {
		t.Errorf("ProfilePath = %q, want override", C.ProfilePath)
	}
}

func TestLoadReturnsErrorForMissingFile(t *testing.T) {
	if err := Load("/nonexistent/path.yaml"); err == nil {
		t.Errorf("expected error loading missing config file")
	}
}
