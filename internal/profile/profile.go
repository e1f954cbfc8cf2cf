// Package profile holds per-language n-gram frequency profiles and the
// dense index a Detector scores against.
package profile

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// LanguageProfile is one language's n-gram frequency table as loaded from
// a profile document. Freq maps an n-gram string to a raw occurrence
// count; it is not yet normalized to a probability.
type LanguageProfile struct {
	Name string           `json:"name"`
	Freq map[string]int64 `json:"freq"`
	// NWords holds, per n-gram length (index 0 = unigrams, 1 = bigrams, 2
	// = trigrams), the total occurrence count of all grams of that length
	// in this language's training corpus. It is the denominator used to
	// turn a raw Freq count into a within-language probability.
	NWords [3]int64 `json:"n_words"`
}

// DuplicateLanguageError reports a language code listed twice in the same
// profile set, the "Kannada listed twice" problem from a hand-edited
// profile list.
type DuplicateLanguageError struct {
	A, B string
}

func (e *DuplicateLanguageError) Error() string {
	return fmt.Sprintf("profile: language code %q is listed more than once", e.A)
}

// ValidateLanguageCodes rejects a profile set that lists the same language
// code more than once. It intentionally does not flag near-matches:
// two-letter ISO codes are dense enough that distinct, legitimate
// languages are frequently one edit apart (en/es, de/da, it/id, fa/fi),
// so any edit-distance heuristic here would reject the standard language
// set outright.
func ValidateLanguageCodes(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return &DuplicateLanguageError{A: name, B: name}
		}
		seen[name] = true
	}
	return nil
}

// LoadProfiles decodes a sequence of newline-delimited JSON LanguageProfile
// documents, the format profile conversion emits.
func LoadProfiles(r io.Reader) ([]LanguageProfile, error) {
	dec := json.NewDecoder(r)
	var profiles []LanguageProfile
	for {
		var p LanguageProfile
		if err := dec.Decode(&p); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("profile: decode: %w", err)
		}
		profiles = append(profiles, p)
	}
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	if err := ValidateLanguageCodes(names); err != nil {
		return nil, err
	}
	return profiles, nil
}

// LoadIndexFromFile reads the NDJSON profile set at path, validates and
// builds it into a ProbabilityIndex, and derives a version string from
// the file's contents so callers can detect whether a reload actually
// changed anything. Both cmd/detectsvc's startup and cmd/detectreload's
// poll loop go through this single entry point.
func LoadIndexFromFile(path string) (*ProbabilityIndex, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("profile: read %s: %w", path, err)
	}
	profiles, err := LoadProfiles(bytes.NewReader(b))
	if err != nil {
		return nil, "", err
	}
	idx, err := Build(profiles)
	if err != nil {
		return nil, "", err
	}
	sum := sha256.Sum256(b)
	version := hex.EncodeToString(sum[:])[:12]
	return idx, version, nil
}
