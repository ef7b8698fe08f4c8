// Package heuristic implements the anchor-plus-classifier tiers: verb-centered
// action phrases and lighting-descriptor phrases. Anchors come from closed
// word lists; the surrounding open-class content is classified semantically.
package heuristic

import "unicode"

// token is one word of the input with its byte offsets.
type token struct {
	text  string // original casing
	lower string
	start int
	end   int
}

// tokenize splits text into word tokens (letters, digits, apostrophes,
// in-word hyphens), preserving offsets into the original string.
func tokenize(text string) []token {
	var toks []token
	runes := []rune(text)
	bytePos := 0
	i := 0
	for i < len(runes) {
		r := runes[i]
		if !isWordChar(r) {
			bytePos += len(string(r))
			i++
			continue
		}
		start := bytePos
		j := i
		for j < len(runes) && isWordChar(runes[j]) {
			bytePos += len(string(runes[j]))
			j++
		}
		word := string(runes[i:j])
		toks = append(toks, token{
			text:  word,
			lower: lowerASCII(word),
			start: start,
			end:   bytePos,
		})
		i = j
	}
	return toks
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '-'
}

// lowerASCII lowercases ASCII letters only, keeping byte length stable.
func lowerASCII(s string) string {
	b := []byte(s)
	changed := false
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 32
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(b)
}

// punctuationBetween reports whether the original text between two offsets
// contains sentence punctuation, which bounds phrase extension.
func punctuationBetween(text string, from, to int) bool {
	for _, r := range text[from:to] {
		switch r {
		case '.', ',', ';', ':', '!', '?', '(', ')', '[', ']', '"', '\n':
			return true
		}
	}
	return false
}

// stopWords bound rightward phrase extension at clause edges. Prepositions
// and determiners stay inside the phrase ("running through the field").
var stopWords = map[string]struct{}{
	"and": {}, "or": {}, "but": {}, "then": {}, "while": {}, "because": {},
	"that": {}, "which": {}, "who": {}, "where": {}, "when": {}, "if": {},
	"so": {}, "although": {}, "though": {}, "until": {}, "unless": {},
}

func isStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}
