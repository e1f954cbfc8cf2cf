package detect

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/caiatext/langident/internal/profile"
)

// goldenCase is one end-to-end detection fixture: a text and the
// language a full normalize+extract+detect pass should settle on.
type goldenCase struct {
	Text       string `json:"text"`
	ExpectLang string `json:"expect_lang"`
}

func loadGoldenIndex(t *testing.T) *profile.ProbabilityIndex {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("..", "..", "testdata", "profiles", "sample.ndjson"))
	if err != nil {
		t.Fatalf("read sample profiles: %v", err)
	}
	profiles, err := profile.LoadProfiles(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("load profiles: %v", err)
	}
	idx, err := profile.Build(profiles)
	if err != nil {
		t.Fatalf("build index: %v", err)
	}
	return idx
}

// TestGolden runs every fixture in testdata/golden through a Detector
// built on the shared sample profile set and checks the winning
// language matches what the fixture expects.
func TestGolden(t *testing.T) {
	idx := loadGoldenIndex(t)

	goldenDir := filepath.Join("..", "..", "testdata", "golden")
	entries, err := os.ReadDir(goldenDir)
	if err != nil {
		t.Fatalf("read golden dir: %v", err)
	}

	for _, entry := range entries {
		if filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		entry := entry
		t.Run(entry.Name(), func(t *testing.T) {
			b, err := os.ReadFile(filepath.Join(goldenDir, entry.Name()))
			if err != nil {
				t.Fatalf("read fixture: %v", err)
			}
			var tc goldenCase
			if err := json.Unmarshal(b, &tc); err != nil {
				t.Fatalf("parse fixture: %v", err)
			}

			d, err := New(idx, WithSeed(99))
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			d.Append(tc.Text)
			candidates, err := d.Detect()
			if err != nil {
				t.Fatalf("Detect(%q): %v", tc.Text, err)
			}
			if got := BestLang(candidates); got != tc.ExpectLang {
				t.Errorf("BestLang(%q) = %q, want %q (candidates=%v)", tc.Text, got, tc.ExpectLang, candidates)
			}
		})
	}
}
