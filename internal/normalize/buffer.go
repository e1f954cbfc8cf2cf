// Package normalize implements the character-folding and text-cleaning
// stage that sits in front of n-gram extraction: folding code points to a
// small fixed alphabet by Unicode block, composing Vietnamese diacritic
// sequences, stripping URLs/emails, and rebalancing Latin-vs-non-Latin bias
// before a detection run.
package normalize

import (
	"io"
	"regexp"
)

// DefaultMaxTextLength is the default bound on accumulated buffer size, in
// runes.
const DefaultMaxTextLength = 10000

var (
	// Go's regexp caps a single repeat count at 1000, so the 1..2076
	// character URL tail is spelled as three consecutive bounded runs.
	urlPattern   = regexp.MustCompile(`https?://[-_.?&~;+=/#0-9A-Za-z]{1,1000}[-_.?&~;+=/#0-9A-Za-z]{0,1000}[-_.?&~;+=/#0-9A-Za-z]{0,76}`)
	emailPattern = regexp.MustCompile(`[-_.0-9A-Za-z]{1,64}@[-_0-9A-Za-z]{1,255}[-_.0-9A-Za-z]{1,255}`)
)

// Buffer accumulates normalized text up to a bounded length. It is not
// safe for concurrent use; each Detector owns one.
type Buffer struct {
	runes  []rune
	maxLen int
}

// NewBuffer returns a Buffer bounded to maxLen runes. A non-positive maxLen
// falls back to DefaultMaxTextLength.
func NewBuffer(maxLen int) *Buffer {
	if maxLen <= 0 {
		maxLen = DefaultMaxTextLength
	}
	return &Buffer{maxLen: maxLen}
}

// SetMaxLength changes the bound. Shrinking below the current length does
// not truncate already-accumulated text.
func (b *Buffer) SetMaxLength(maxLen int) {
	if maxLen > 0 {
		b.maxLen = maxLen
	}
}

// Append strips URLs and emails, composes Vietnamese diacritic sequences,
// and copies the result into the buffer, collapsing runs of spaces down to
// one and stopping once the buffer reaches its max length.
func (b *Buffer) Append(text string) {
	if len(b.runes) >= b.maxLen {
		return
	}
	text = urlPattern.ReplaceAllString(text, " ")
	text = emailPattern.ReplaceAllString(text, " ")
	text = ComposeVietnamese(text)

	for _, r := range text {
		if len(b.runes) >= b.maxLen {
			break
		}
		if r == ' ' && len(b.runes) > 0 && b.runes[len(b.runes)-1] == ' ' {
			continue
		}
		b.runes = append(b.runes, r)
	}
}

// AppendReader drains r and appends its contents the same way Append does.
// A read error other than io.EOF is surfaced verbatim. Some foreign-runtime
// Reader ports report EOF by returning a negative byte count instead of
// io.EOF; that is treated as EOF here too rather than passed to strings
// handling that would reject it.
func (b *Buffer) AppendReader(r io.Reader) error {
	chunk := make([]byte, 4096)
	var pending []byte
	for len(b.runes) < b.maxLen {
		n, err := r.Read(chunk)
		if n < 0 {
			break
		}
		if n > 0 {
			pending = append(pending, chunk[:n]...)
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		if n == 0 {
			break
		}
	}
	b.Append(string(pending))
	return nil
}

// latinExtAddLo and latinExtAddHi bound the Latin Extended Additional
// block, carved out of the "non-Latin" count in CleaningText because it
// holds Latin letters with stacked diacritics (Vietnamese among them), not
// a genuinely foreign script.
const (
	latinExtAddLo = 0x1E00
	latinExtAddHi = 0x1EFF
)

// CleaningText deletes ASCII-range characters from the buffer when they
// are heavily outnumbered by non-Latin characters — a short Latin
// trademark or leftover URL fragment embedded in a non-Latin document
// otherwise biases the detector toward the wrong script.
func (b *Buffer) CleaningText() {
	var latin, nonLatin int
	for _, r := range b.runes {
		if r >= 0x0041 && r <= 0x007A {
			latin++
		}
		if r >= 0x0300 && !(r >= latinExtAddLo && r <= latinExtAddHi) {
			nonLatin++
		}
	}
	if latin*2 >= nonLatin {
		return
	}

	filtered := b.runes[:0]
	for _, r := range b.runes {
		if r >= 0x0041 && r <= 0x007A {
			continue
		}
		filtered = append(filtered, r)
	}
	b.runes = filtered
}

// Runes returns the accumulated buffer. The caller must not mutate it.
func (b *Buffer) Runes() []rune { return b.runes }

// String returns the accumulated buffer as a string.
func (b *Buffer) String() string { return string(b.runes) }

// Len returns the number of accumulated runes.
func (b *Buffer) Len() int { return len(b.runes) }

// Reset clears the buffer, keeping the configured max length.
func (b *Buffer) Reset() {
	b.runes = nil
}
