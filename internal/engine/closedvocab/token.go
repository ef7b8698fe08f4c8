package closedvocab

import (
	"unicode"
	"unicode/utf8"
)

// isWordRune reports whether r continues a token for boundary checks:
// letters, digits, combining marks, and connector punctuation. Hyphens and
// other punctuation break tokens.
func isWordRune(r rune) bool {
	if r == utf8.RuneError || r == 0 {
		return false
	}
	return unicode.IsLetter(r) ||
		unicode.IsNumber(r) ||
		unicode.In(r, unicode.Mn, unicode.Pc)
}

// boundaryOK reports whether [start,end) sits on token boundaries in s:
// neither adjacent character may continue the same alphanumeric token. This
// is what keeps "fps" from matching inside "chips".
func boundaryOK(s string, start, end int) bool {
	var prev, next rune
	if start > 0 {
		prev, _ = utf8.DecodeLastRuneInString(s[:start])
	}
	if end < len(s) {
		next, _ = utf8.DecodeRuneInString(s[end:])
	}
	return !isWordRune(prev) && !isWordRune(next)
}

// foldASCII returns a lowercased copy of s. Only ASCII letters are folded so
// byte offsets into the fold line up exactly with the original string.
func foldASCII(s string) []byte {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return b
}
