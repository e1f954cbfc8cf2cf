package detect

import (
	"testing"

	"github.com/caiatext/langident/internal/profile"
)

// buildTestIndex constructs a tiny two-language index where English text
// is dominated by "th"/"he"/"and"-style grams and French text by
// "le"/"de"/"es"-style grams, enough to separate the two languages
// without needing a real trained profile.
func buildTestIndex(t *testing.T) *profile.ProbabilityIndex {
	t.Helper()
	en := profile.LanguageProfile{
		Name: "en",
		Freq: map[string]int64{
			"t": 400, "h": 300, "e": 500, " th": 200, "the": 150, "th": 250, "he": 200, "and": 100,
		},
		NWords: [3]int64{1200, 900, 400},
	}
	fr := profile.LanguageProfile{
		Name: "fr",
		Freq: map[string]int64{
			"l": 400, "e": 300, "d": 300, "le": 250, "de": 200, "es": 150, "les": 100,
		},
		NWords: [3]int64{1000, 800, 300},
	}
	idx, err := profile.Build([]profile.LanguageProfile{en, fr})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return idx
}

func TestNewRejectsEmptyIndex(t *testing.T) {
	if _, err := New(&profile.ProbabilityIndex{}); err == nil {
		t.Errorf("expected InitParamError for empty index")
	}
}

func TestDetectWithoutAppendIsCantDetectError(t *testing.T) {
	idx := buildTestIndex(t)
	d, err := New(idx, WithSeed(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = d.Detect()
	if _, ok := err.(*CantDetectError); !ok {
		t.Errorf("Detect() without Append err = %v, want *CantDetectError", err)
	}
}

func TestDetectFavorsEnglishText(t *testing.T) {
	idx := buildTestIndex(t)
	d, err := New(idx, WithSeed(42))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	d.Append("the the the and the")
	candidates, err := d.Detect()
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if BestLang(candidates) != "en" {
		t.Errorf("BestLang = %q, want en (candidates=%v)", BestLang(candidates), candidates)
	}
}

func TestDetectCachesUntilClear(t *testing.T) {
	idx := buildTestIndex(t)
	d, err := New(idx, WithSeed(7))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	d.Append("the the the")
	first, err := d.Detect()
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	second, err := d.Detect()
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(first) != len(second) {
		t.Errorf("cached Detect() changed result shape")
	}

	d.Clear()
	if _, err := d.Detect(); err == nil {
		t.Errorf("expected CantDetectError after Clear")
	}
}

func TestDetectOnDigitsOnlyTextIsCantDetectError(t *testing.T) {
	idx := buildTestIndex(t)
	d, err := New(idx, WithSeed(3))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	d.Append("999 000 111")
	_, err = d.Detect()
	if _, ok := err.(*CantDetectError); !ok {
		t.Errorf("Detect() on digits-only text err = %v, want *CantDetectError", err)
	}
}

func TestDetectWithPriorsReturnsCandidates(t *testing.T) {
	idx := buildTestIndex(t)
	d, err := New(idx, WithSeed(5), WithPriors(map[string]float64{"fr": 0.95, "en": 0.05}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	d.Append("the the the the the")
	candidates, err := d.Detect()
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(candidates) == 0 {
		t.Fatalf("expected at least one candidate")
	}
}

func TestNewRejectsNegativeAlpha(t *testing.T) {
	idx := buildTestIndex(t)
	if _, err := New(idx, WithAlpha(-1)); err == nil {
		t.Errorf("expected InitParamError for negative alpha")
	}
}

func TestDetectWithSeedIsReproducible(t *testing.T) {
	idx := buildTestIndex(t)

	run := func() []Candidate {
		d, err := New(idx, WithSeed(1234))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		d.Append("the the the and the he th")
		candidates, err := d.Detect()
		if err != nil {
			t.Fatalf("Detect: %v", err)
		}
		return candidates
	}

	first := run()
	second := run()
	if len(first) != len(second) {
		t.Fatalf("candidate count differs across runs: %v vs %v", first, second)
	}
	for i := range first {
		if first[i].Lang != second[i].Lang || first[i].Prob != second[i].Prob {
			t.Errorf("run %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestConfidenceGapSingleCandidate(t *testing.T) {
	gap := ConfidenceGap([]Candidate{{Lang: "en", Prob: 0.9}})
	if gap <= 0 {
		t.Errorf("ConfidenceGap with one candidate should be +Inf, got %v", gap)
	}
}
