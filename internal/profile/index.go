package profile

import "fmt"

// ProbabilityIndex is a dense, immutable table mapping every n-gram seen
// in any loaded profile to a per-language probability vector. It is built
// once at startup (or by the reload worker) and shared read-only across
// however many Detectors are running concurrently; nothing in this type
// is ever mutated after Build returns.
type ProbabilityIndex struct {
	langs []string
	probs map[string][]float64
}

// Languages returns the index's language codes in the fixed order their
// probabilities appear in every vector.
func (idx *ProbabilityIndex) Languages() []string { return idx.langs }

// LangCount returns the number of languages in the index.
func (idx *ProbabilityIndex) LangCount() int { return len(idx.langs) }

// Lookup returns the probability vector for gram and whether it was
// found. The returned slice must not be mutated by the caller; it is
// shared across every Detector using this index.
func (idx *ProbabilityIndex) Lookup(gram string) ([]float64, bool) {
	v, ok := idx.probs[gram]
	return v, ok
}

// Build assembles a ProbabilityIndex from a set of loaded profiles. Gram
// length must be 1, 2, or 3; any other key length is skipped rather than
// treated as an error, since a hand-edited profile file is the most
// likely source of one.
func Build(profiles []LanguageProfile) (*ProbabilityIndex, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("profile: cannot build index from zero profiles")
	}
	idx := &ProbabilityIndex{
		langs: make([]string, len(profiles)),
		probs: make(map[string][]float64),
	}
	for i, p := range profiles {
		idx.langs[i] = p.Name
	}
	for i, p := range profiles {
		for gram, freq := range p.Freq {
			n := len([]rune(gram))
			if n < 1 || n > 3 {
				continue
			}
			denom := p.NWords[n-1]
			if denom <= 0 {
				continue
			}
			vec, ok := idx.probs[gram]
			if !ok {
				vec = make([]float64, len(idx.langs))
				idx.probs[gram] = vec
			}
			vec[i] = float64(freq) / float64(denom)
		}
	}
	return idx, nil
}
