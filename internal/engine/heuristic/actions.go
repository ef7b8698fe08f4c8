package heuristic

import (
	"log/slog"
	"strings"

	"github.com/bharm16/prompt-builder-sub009/internal/engine/semantic"
	"github.com/bharm16/prompt-builder-sub009/internal/model"
)

// baseVerbs is the closed anchor set for the action tier. Surface forms are
// generated at startup via surfaceForms.
var baseVerbs = []string{
	"walk", "run", "jump", "spin", "climb", "dance", "sprint", "stroll",
	"crawl", "leap", "slide", "glide", "march", "wander", "drift", "float",
	"swim", "fly", "ride", "fall", "rise", "creep", "kneel",
	"sit", "stand", "lie", "lean", "rest", "wait", "pause", "sleep", "freeze",
	"wave", "point", "nod", "reach", "shrug", "clap", "raise", "gesture",
	"turn", "look", "gaze", "stare", "glance", "smile", "laugh",
	"hold", "carry", "throw", "catch", "push", "pull", "lift", "grab",
	// Camera-movement homonyms; suppressed under camera context below.
	"pan", "tilt", "track", "zoom", "crane", "dolly", "truck",
}

// cameraAmbiguousVerbs double as camera movements. Under strong camera
// context the closed-vocabulary tier owns that territory, so the action tier
// stands down.
var cameraAmbiguousVerbs = map[string]struct{}{
	"pan": {}, "tilt": {}, "track": {}, "zoom": {}, "crane": {},
	"dolly": {}, "truck": {},
}

// standaloneVerbs are meaningful with no descriptive content around them.
var standaloneVerbs = map[string]struct{}{
	"wait": {}, "pause": {}, "freeze": {}, "rest": {},
}

const (
	maxRightTokens      = 5
	cameraContextWindow = 50
)

var cameraContextCues = []string{"camera", "shot", "lens", "footage", "frame"}

// Actions extracts verb-centered phrases and classifies them against the
// action prototype clusters.
type Actions struct {
	cls     *semantic.Classifier
	anchors map[string]string // surface form -> base verb
	floor   float64
}

// NewActions expands every base verb to its surface forms once.
func NewActions(cls *semantic.Classifier, floor float64) *Actions {
	anchors := make(map[string]string, len(baseVerbs)*4)
	for _, base := range baseVerbs {
		for _, form := range surfaceForms(base) {
			anchors[form] = base
		}
	}
	return &Actions{cls: cls, anchors: anchors, floor: floor}
}

// Extract finds anchored action phrases in text. Classifier failures drop the
// phrase, never the call.
func (a *Actions) Extract(text string) []model.Candidate {
	toks := tokenize(text)
	var out []model.Candidate

	for i, tok := range toks {
		base, ok := a.anchors[tok.lower]
		if !ok {
			continue
		}
		if _, amb := cameraAmbiguousVerbs[base]; amb && hasCameraContext(text, tok.start, tok.end) {
			continue
		}

		// Left: immediately preceding adverb run.
		lo := i
		for lo > 0 && isAdverb(toks[lo-1].lower) &&
			!punctuationBetween(text, toks[lo-1].end, toks[lo].start) {
			lo--
		}

		// Right: bounded by token count, stop word, punctuation, next anchor.
		hi := i
		for hi+1 < len(toks) && hi-i < maxRightTokens {
			next := toks[hi+1]
			if isStopWord(next.lower) {
				break
			}
			if _, isAnchor := a.anchors[next.lower]; isAnchor {
				break
			}
			if punctuationBetween(text, toks[hi].end, next.start) {
				break
			}
			hi++
		}

		hasContent := lo < i || hi > i
		if !hasContent {
			if _, allow := standaloneVerbs[base]; !allow {
				continue
			}
			// A standalone allow-listed verb is a state by itself.
			out = append(out, model.Candidate{
				Span: model.Span{
					Text:       tok.text,
					Role:       "action.state",
					Confidence: a.floor,
					Start:      tok.start,
					End:        tok.end,
				},
				Source: model.SourceAction,
			})
			continue
		}

		// The span keeps the full phrase, but only the surrounding content
		// is classified: the anchor verb must not lend similarity itself.
		phrase := text[toks[lo].start:toks[hi].end]
		content := make([]string, 0, hi-lo)
		for j := lo; j <= hi; j++ {
			if j == i {
				continue
			}
			content = append(content, toks[j].text)
		}
		res, err := a.cls.Classify(strings.Join(content, " "))
		if err != nil {
			slog.Warn("action classification failed", "phrase", phrase, "error", err)
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
				End:        toks[hi].end,
			},
			Source: model.SourceAction,
		})
	}
	return out
}

// isAdverb is the cheap open-class test for the left extension: -ly forms
// plus a few common bare adverbs.
func isAdverb(w string) bool {
	if len(w) > 3 && strings.HasSuffix(w, "ly") {
		return true
	}
	switch w {
	case "fast", "hard", "still", "well":
		return true
	}
	return false
}

// hasCameraContext reports whether the window around [start,end) contains a
// camera cue outside the match itself.
func hasCameraContext(text string, start, end int) bool {
	lo := max(0, start-cameraContextWindow)
	hi := min(len(text), end+cameraContextWindow)
	window := strings.ToLower(text[lo:start] + " " + text[end:hi])
	for _, cue := range cameraContextCues {
		if strings.Contains(window, cue) {
			return true
		}
	}
	return false
}
