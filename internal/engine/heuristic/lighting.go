package heuristic

import (
	"log/slog"

	"github.com/bharm16/prompt-builder-sub009/internal/engine/semantic"
	"github.com/bharm16/prompt-builder-sub009/internal/model"
)

// lightingNouns is the closed anchor set for the lighting tier.
var lightingNouns = map[string]struct{}{
	"light": {}, "lights": {}, "lighting": {}, "lit": {},
	"shadow": {}, "shadows": {}, "glow": {}, "highlight": {},
	"highlights": {}, "illumination": {}, "glare": {}, "gleam": {},
	"shimmer": {}, "backlight": {}, "lamplight": {}, "sunlight": {},
	"moonlight": {}, "candlelight": {},
}

// lightingCompounds are collocations where the anchor noun is not a lighting
// descriptor at all; any hit kills the anchor.
var lightingCompounds = []string{
	"traffic light", "traffic lights", "brake light", "brake lights",
	"green light", "light switch", "light year", "light years",
	"light beer", "light snack", "light rail",
}

// maxLeftTokens bounds the adjective run collected before a lighting noun.
const maxLeftTokens = 3

// leftRunExcluded keeps determiners, pronouns, and prepositions out of the
// adjective run.
var leftRunExcluded = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "his": {}, "her": {}, "their": {},
	"its": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"some": {}, "any": {}, "no": {}, "of": {}, "in": {}, "on": {},
	"at": {}, "by": {}, "with": {}, "from": {}, "into": {}, "under": {},
	"over": {}, "through": {}, "is": {}, "was": {}, "are": {}, "were": {},
}

// Lighting extracts adjective-plus-noun lighting phrases and classifies them
// against the lighting prototype clusters.
type Lighting struct {
	cls   *semantic.Classifier
	floor float64
}

func NewLighting(cls *semantic.Classifier, floor float64) *Lighting {
	return &Lighting{cls: cls, floor: floor}
}

// Extract finds anchored lighting phrases in text. An anchor with no
// preceding descriptive run is dropped; a bare "light" says nothing.
func (l *Lighting) Extract(text string) []model.Candidate {
	toks := tokenize(text)
	var out []model.Candidate

	for i, tok := range toks {
		if _, ok := lightingNouns[tok.lower]; !ok {
			continue
		}
		if isCompound(toks, i) {
			continue
		}

		lo := i
		for lo > 0 && i-lo < maxLeftTokens {
			prev := toks[lo-1]
			if _, excluded := leftRunExcluded[prev.lower]; excluded {
				break
			}
			if isStopWord(prev.lower) {
				break
			}
			if _, anchor := lightingNouns[prev.lower]; anchor {
				break
			}
			if punctuationBetween(text, prev.end, toks[lo].start) {
				break
			}
			lo--
		}
		if lo == i {
			continue
		}

		phrase := text[toks[lo].start:toks[i].end]
		res, err := l.cls.Classify(phrase)
		if err != nil {
			slog.Warn("lighting classification failed", "phrase", phrase, "error", err)
			continue
		}
		if res.Role == "" {
			continue
		}
		out = append(out, model.Candidate{
			Span: model.Span{
				Text:       phrase,
				Role:       res.Role,
				Confidence: res.Similarity,
				Start:      toks[lo].start,
				End:        toks[i].end,
			},
			Source: model.SourceLighting,
		})
	}
	return out
}

// isCompound checks the anchor against the collocation blacklist using its
// immediate neighbors.
func isCompound(toks []token, i int) bool {
	var forms []string
	if i > 0 {
		forms = append(forms, toks[i-1].lower+" "+toks[i].lower)
	}
	if i+1 < len(toks) {
		forms = append(forms, toks[i].lower+" "+toks[i+1].lower)
	}
	for _, f := range forms {
		for _, c := range lightingCompounds {
			if f == c {
				return true
			}
		}
	}
	return false
}
