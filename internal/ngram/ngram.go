// Package ngram implements the rolling 3-rune window that turns a folded
// character stream into overlapping 1-, 2-, and 3-character n-grams.
package ngram

import "github.com/caiatext/langident/internal/normalize"

// Extractor is a small state machine holding the last three folded
// characters seen. Feed it one raw rune at a time with AddChar, then read
// off the n-grams ending at the current position with Get.
//
// The window starts space-filled, so the very first real character
// participates in a bigram with a leading-space context, and the first
// "word" is skipped for unigrams to avoid boundary bias.
type Extractor struct {
	window    [3]rune
	shifts    int // real window shifts performed, capped at 3
	spaceSeen bool
}

// NewExtractor returns a fresh Extractor with a space-filled window.
func NewExtractor() *Extractor {
	return &Extractor{window: [3]rune{' ', ' ', ' '}}
}

// AddChar folds c and shifts it into the window. A space immediately
// following another space is dropped rather than shifted in, so runs of
// whitespace collapse to a single window position.
func (e *Extractor) AddChar(c rune) {
	folded := normalize.Fold(c)
	if folded == ' ' && e.window[2] == ' ' {
		return
	}
	e.window[0], e.window[1], e.window[2] = e.window[1], e.window[2], folded
	if e.shifts < 3 {
		e.shifts++
	}
	if folded == ' ' {
		e.spaceSeen = true
	}
}

// Get returns the n-gram of length n ending at the current window
// position, and false if the window does not yet hold a valid n-gram of
// that length.
func (e *Extractor) Get(n int) (string, bool) {
	switch n {
	case 1:
		if e.window[2] == ' ' || !e.spaceSeen {
			return "", false
		}
		return string(e.window[2]), true
	case 2:
		// w[1] is populated from the very first shift onward: it holds
		// the sentinel leading space until a second real character
		// arrives, and the spec wants that sentinel-prefixed bigram
		// ("<space>X") emitted, not suppressed.
		if e.shifts < 1 || (e.window[1] == ' ' && e.window[2] == ' ') {
			return "", false
		}
		return string([]rune{e.window[1], e.window[2]}), true
	case 3:
		if e.shifts < 3 || (e.window[0] == ' ' && e.window[1] == ' ' && e.window[2] == ' ') {
			return "", false
		}
		return string(e.window[:]), true
	default:
		return "", false
	}
}
