package heuristic

import "strings"

// irregularForms overrides the regular inflection rules for verbs whose past
// or participle forms are not derivable mechanically.
var irregularForms = map[string][]string{
	"run":    {"runs", "ran", "running"},
	"sit":    {"sits", "sat", "sitting"},
	"stand":  {"stands", "stood", "standing"},
	"lie":    {"lies", "lay", "lying"},
	"lean":   {"leans", "leaned", "leant", "leaning"},
	"sleep":  {"sleeps", "slept", "sleeping"},
	"hold":   {"holds", "held", "holding"},
	"throw":  {"throws", "threw", "thrown", "throwing"},
	"catch":  {"catches", "caught", "catching"},
	"swim":   {"swims", "swam", "swum", "swimming"},
	"fly":    {"flies", "flew", "flown", "flying"},
	"ride":   {"rides", "rode", "ridden", "riding"},
	"fall":   {"falls", "fell", "fallen", "falling"},
	"rise":   {"rises", "rose", "risen", "rising"},
	"creep":  {"creeps", "crept", "creeping"},
	"freeze": {"freezes", "froze", "frozen", "freezing"},
	"kneel":  {"kneels", "knelt", "kneeling"},
}

// surfaceForms expands a base verb to its surface forms: base, third-person
// singular, past, and gerund, applying consonant doubling and silent-e
// dropping, with irregular overrides. Computed once at startup.
func surfaceForms(base string) []string {
	forms := []string{base}
	if irr, ok := irregularForms[base]; ok {
		return append(forms, irr...)
	}

	// Third-person singular.
	switch {
	case strings.HasSuffix(base, "s"), strings.HasSuffix(base, "x"),
		strings.HasSuffix(base, "z"), strings.HasSuffix(base, "ch"),
		strings.HasSuffix(base, "sh"):
		forms = append(forms, base+"es")
	case strings.HasSuffix(base, "y") && !endsVowelY(base):
		forms = append(forms, base[:len(base)-1]+"ies")
	default:
		forms = append(forms, base+"s")
	}

	// Past and gerund share the stem adjustment.
	stem := base
	switch {
	case strings.HasSuffix(base, "e"):
		stem = base[:len(base)-1]
		forms = append(forms, stem+"ed", stem+"ing")
	case doublesFinalConsonant(base):
		stem = base + base[len(base)-1:]
		forms = append(forms, stem+"ed", stem+"ing")
	case strings.HasSuffix(base, "y") && !endsVowelY(base):
		forms = append(forms, base[:len(base)-1]+"ied", base+"ing")
	default:
		forms = append(forms, base+"ed", base+"ing")
	}

	return forms
}

// endsVowelY reports whether the word ends in vowel+y ("play"), which keeps
// the y under inflection.
func endsVowelY(w string) bool {
	if len(w) < 2 || w[len(w)-1] != 'y' {
		return false
	}
	return isVowel(w[len(w)-2])
}

// doublesFinalConsonant applies the CVC doubling rule for short verbs
// ("spin" -> "spinning"); w and x never double.
func doublesFinalConsonant(w string) bool {
	if len(w) < 3 {
		return false
	}
	a, b, c := w[len(w)-3], w[len(w)-2], w[len(w)-1]
	if c == 'w' || c == 'x' || c == 'y' {
		return false
	}
	return !isVowel(a) && isVowel(b) && !isVowel(c)
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
