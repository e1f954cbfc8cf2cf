package normalize

import "golang.org/x/text/unicode/norm"

// ComposeVietnamese rewrites decomposed Vietnamese diacritic sequences
// (base letter plus one or two combining marks, e.g. "a" + COMBINING
// CIRCUMFLEX ACCENT + COMBINING ACUTE ACCENT) into their canonical
// single-rune precomposed form ("ấ"). It is exactly NFC canonical
// composition: the (base, combining-mark) -> precomposed mapping the spec
// calls for is the same table golang.org/x/text/unicode/norm already
// carries.
func ComposeVietnamese(s string) string {
	return norm.NFC.String(s)
}
