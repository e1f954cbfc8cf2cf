package normalize

import "testing"

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   rune
		want rune
	}{
		{"control maps to space", '\t', ' '},
		{"ascii letter passes through", 'a', 'a'},
		{"ascii upper passes through", 'Z', 'Z'},
		{"digit at or below 0x40 maps to space", '5', ' '},
		{"curly brace above 0x7a maps to space", '{', ' '},
		{"tilde above 0x7a maps to space", '~', ' '},
		{"DEL maps to space", '\x7f', ' '},
		{"accented latin-1 passes through", 'é', 'é'},
		{"nbsp maps to space", ' ', ' '},
		{"multiplication sign maps to space", '×', ' '},
		{"arabic folds to block tag", 'ا', 0x0600},
		{"cyrillic supplementary folds", 'Ԁ', 0x0500},
		{"basic cyrillic passes through", 'а', 'а'},
		{"hiragana folds", 'あ', 0x3040},
		{"katakana folds", 'ア', 0x30A0},
		{"cjk folds", '中', cjkTag},
		{"hangul syllable folds", '가', hangulTag},
		{"hangul jamo folds", 'ᄀ', hangulTag},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fold(tt.in); got != tt.want {
				t.Errorf("Fold(%U) = %U, want %U", tt.in, got, tt.want)
			}
		})
	}
}

func TestFoldAlphabetIsFinite(t *testing.T) {
	seen := make(map[rune]bool)
	for r := rune(0); r < 0x10000; r++ {
		seen[Fold(r)] = true
	}
	if len(seen) > 200 {
		t.Errorf("folded alphabet has %d distinct values, expected a small fixed set", len(seen))
	}
}

func TestComposeVietnamese(t *testing.T) {
	decomposed := "ấ" // a + combining circumflex + combining acute
	want := "ấ"
	if got := ComposeVietnamese(decomposed); got != want {
		t.Errorf("ComposeVietnamese(%q) = %q, want %q", decomposed, got, want)
	}
}

func TestBufferAppendCollapsesSpaces(t *testing.T) {
	b := NewBuffer(100)
	b.Append("hello   world")
	if got, want := b.String(), "hello world"; got != want {
		t.Errorf("buffer = %q, want %q", got, want)
	}
}

func TestBufferAppendAcrossCallsCollapsesBoundarySpace(t *testing.T) {
	b1 := NewBuffer(100)
	b1.Append("hello world")

	b2 := NewBuffer(100)
	b2.Append("hello ")
	b2.Append(" world")

	if b1.String() != b2.String() {
		t.Errorf("chunked append = %q, single append = %q", b2.String(), b1.String())
	}
}

func TestBufferStripsURLsAndEmails(t *testing.T) {
	b := NewBuffer(200)
	b.Append("contact us at http://example.com/path or admin@example.com today")
	if got := b.String(); got != "contact us at or today" {
		t.Errorf("buffer = %q", got)
	}
}

func TestBufferMaxLength(t *testing.T) {
	b := NewBuffer(5)
	b.Append("abcdefghij")
	if got := b.Len(); got != 5 {
		t.Errorf("Len() = %d, want 5", got)
	}
}

func TestBufferCleaningTextRemovesLatinWhenNonLatinDominates(t *testing.T) {
	b := NewBuffer(100)
	// 5 ASCII letters against 11 CJK characters: 5*2 < 11, so the Latin
	// letters are removed.
	b.Append("Apple 苹果公司在中国销售产品")
	b.CleaningText()
	for _, r := range b.Runes() {
		if r >= 0x0041 && r <= 0x007A {
			t.Errorf("expected no ASCII-range runes left, buffer = %q", b.String())
			break
		}
	}
}

func TestBufferCleaningTextKeepsLatinWhenDominant(t *testing.T) {
	b := NewBuffer(100)
	b.Append("The quick brown fox jumps over the lazy dog")
	before := b.String()
	b.CleaningText()
	if b.String() != before {
		t.Errorf("buffer changed when Latin dominates: %q -> %q", before, b.String())
	}
}
