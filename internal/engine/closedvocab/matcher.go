// Package closedvocab implements Tier 1: exact matching of the closed
// vocabulary via a multi-pattern automaton, with word-boundary checks and
// contextual disambiguation for terms that double as everyday words.
package closedvocab

import (
	"strings"

	"github.com/bharm16/prompt-builder-sub009/internal/model"
	"github.com/bharm16/prompt-builder-sub009/internal/vocab"
)

// contextWindow is how far (bytes, each side) the matcher looks for camera
// cues or suppressing collocations around an ambiguous term.
const contextWindow = 50

// ambiguousTerms are vocabulary terms that are also common verbs or nouns
// outside cinematography ("pan the dough", "a truck drove by"). They only
// match with a positive camera cue nearby.
var ambiguousTerms = map[string]struct{}{
	"pan": {}, "pans": {}, "panning": {}, "panned": {},
	"crane": {}, "cranes": {},
	"truck": {}, "trucks": {}, "trucking": {},
	"dolly": {}, "tilt": {}, "tilts": {}, "tilting": {},
}

// cameraCues are substrings that count as independent camera context.
// "cinemat" intentionally catches cinematic/cinematography.
var cameraCues = []string{
	"camera", "shot", "lens", "footage", "frame", "framing",
	"cinemat", "film", "scene", "angle", "pov", "close-up", "wide",
}

// suppressors are culinary/domestic collocations that kill an ambiguous
// match outright, camera context or not.
var suppressors = []string{
	"frying pan", "saucepan", "sauce pan", "pan fry", "pan-fry", "pan sear",
	"bread", "dough", "kitchen", "oven", "stove", "skillet", "bake", "baking",
	"crane fly", "paper crane", "origami",
	"truck driver", "pickup truck", "dump truck", "semi truck", "tow truck",
}

type entry struct {
	role string
	term string
	n    int // byte length of the lowercased term
}

// Matcher holds the compiled automaton plus per-pattern metadata. Build it
// once; Match is read-only and safe for concurrent use.
type Matcher struct {
	ac      *automaton
	entries []entry
}

// New compiles the vocabulary into a Matcher. Pattern-compilation cost is
// paid here once and amortized across all future calls.
func New(v *vocab.Store) *Matcher {
	m := &Matcher{ac: newAutomaton()}
	for _, role := range v.Roles() {
		for _, term := range v.Terms(role) {
			id := int32(len(m.entries))
			m.entries = append(m.entries, entry{role: role, term: term, n: len(term)})
			m.ac.insert([]byte(term), id)
		}
	}
	m.ac.build()
	return m
}

// Match scans text once and returns every accepted vocabulary occurrence at
// confidence 1.0. Candidates keep the original casing of the source text.
func (m *Matcher) Match(text string) []model.Candidate {
	if text == "" || len(m.entries) == 0 {
		return nil
	}
	folded := foldASCII(text)
	lower := string(folded)

	var out []model.Candidate
	m.ac.scan(folded, func(end int, id int32) {
		e := m.entries[id]
		start := end - e.n
		if !boundaryOK(text, start, end) {
			return
		}
		if _, amb := ambiguousTerms[e.term]; amb && !cameraContextOK(lower, start, end) {
			return
		}
		out = append(out, model.Candidate{
			Span: model.Span{
				Text:       text[start:end],
				Role:       e.role,
				Confidence: 1.0,
				Start:      start,
				End:        end,
			},
			Source: model.SourceClosedVocab,
		})
	})
	return out
}

// cameraContextOK applies the disambiguation policy for ambiguous terms:
// a suppressing collocation anywhere in the window rejects the match, and
// otherwise an independent camera cue must appear outside the match itself.
func cameraContextOK(lower string, start, end int) bool {
	ws := max(0, start-contextWindow)
	we := min(len(lower), end+contextWindow)
	window := lower[ws:we]

	for _, bad := range suppressors {
		if strings.Contains(window, bad) {
			return false
		}
	}

	// Cue must be independent of the matched term itself.
	around := lower[ws:start] + " " + lower[end:we]
	for _, cue := range cameraCues {
		if strings.Contains(around, cue) {
			return true
		}
	}
	return false
}
