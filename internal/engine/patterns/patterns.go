// Package patterns implements the technical regex tier: numeric attributes
// like frame rate, focal length, and aspect ratio that a literal vocabulary
// cannot enumerate. Rules are ordered; each carries a fixed confidence and an
// optional contextual validator.
package patterns

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bharm16/prompt-builder-sub009/internal/model"
)

// Rule is one technical pattern. Validate, when set, may veto a regex match
// based on the surrounding text.
type Rule struct {
	Name       string
	Role       string
	Confidence float64
	re         *regexp.Regexp
	Validate   func(text string, start, end int) bool
}

// commonAspectRatios is the membership table for the aspect-ratio validator.
// Arbitrary "3:2 odds" style ratios are rejected unless the words aspect or
// ratio appear nearby.
var commonAspectRatios = map[string]struct{}{
	"16:9": {}, "9:16": {}, "4:3": {}, "3:4": {}, "21:9": {}, "1:1": {},
	"2:1": {}, "4:5": {}, "5:4": {}, "2.35:1": {}, "2.39:1": {}, "1.85:1": {},
	"1.33:1": {}, "1.78:1": {},
}

// Rules returns the ordered rule set. The dash-ranged f-stop rule precedes
// the single-value rule so "f/2.8-f/5.6" is consumed as one span.
func Rules() []Rule {
	return []Rule{
		{
			Name:       "frameRate",
			Role:       "technical.frameRate",
			Confidence: 0.95,
			re:         regexp.MustCompile(`(?i)\b\d{2,3}\s*fps\b`),
		},
		{
			Name:       "frameRateWords",
			Role:       "technical.frameRate",
			Confidence: 0.9,
			re:         regexp.MustCompile(`(?i)\b\d{2,3}\s*frames?\s+per\s+second\b`),
		},
		{
			Name:       "duration",
			Role:       "technical.duration",
			Confidence: 0.85,
			re:         regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?[\s-]*(?:seconds?|secs?|minutes?|mins?)\b`),
		},
		{
			Name:       "resolution",
			Role:       "technical.resolution",
			Confidence: 0.95,
			re:         regexp.MustCompile(`(?i)\b(?:\d{3,4}p|[48]k|uhd)\b`),
		},
		{
			Name:       "aspectRatio",
			Role:       "technical.aspectRatio",
			Confidence: 0.9,
			re:         regexp.MustCompile(`\b\d{1,2}(?:\.\d{1,2})?:\d{1,2}(?:\.\d{1,2})?\b`),
			Validate:   validAspectRatio,
		},
		{
			Name:       "focalLength",
			Role:       "camera.lens",
			Confidence: 0.9,
			re:         regexp.MustCompile(`(?i)\b\d{1,4}\s*mm\b`),
			Validate:   validFocalLength,
		},
		{
			Name:       "apertureRange",
			Role:       "camera.aperture",
			Confidence: 0.85,
			re:         regexp.MustCompile(`(?i)\bf/?\d+(?:\.\d+)?\s*[-–]\s*f?/?\d+(?:\.\d+)?\b`),
		},
		{
			Name:       "aperture",
			Role:       "camera.aperture",
			Confidence: 0.95,
			re:         regexp.MustCompile(`(?i)\bf/\d+(?:\.\d+)?\b`),
		},
		{
			Name:       "colorTemperature",
			Role:       "lighting.colorTemperature",
			Confidence: 0.9,
			re:         regexp.MustCompile(`(?i)\b\d{3,5}\s*k(?:elvin)?\b`),
			Validate:   validColorTemperature,
		},
	}
}

// Matcher applies every rule independently; one text may match several rules
// at different offsets. Safe for concurrent use after construction.
type Matcher struct {
	rules []Rule
}

// New compiles the fixed rule set once.
func New() *Matcher {
	return &Matcher{rules: Rules()}
}

// Match collects all rule matches over text.
func (m *Matcher) Match(text string) []model.Candidate {
	if text == "" {
		return nil
	}
	var out []model.Candidate
	claimed := make([][2]int, 0, 4) // ranges consumed by earlier rules for the same role

	for _, r := range m.rules {
		for _, loc := range r.re.FindAllStringIndex(text, -1) {
			start, end := loc[0], loc[1]
			if r.Validate != nil && !r.Validate(text, start, end) {
				continue
			}
			if overlapsClaimed(claimed, r.Role, out, start, end) {
				continue
			}
			claimed = append(claimed, [2]int{start, end})
			out = append(out, model.Candidate{
				Span: model.Span{
					Text:       text[start:end],
					Role:       r.Role,
					Confidence: r.Confidence,
					Start:      start,
					End:        end,
				},
				Source: model.SourcePattern,
			})
		}
	}
	return out
}

// overlapsClaimed reports whether [start,end) intersects a span an earlier
// (higher-priority) rule already produced for the same role. This is what
// makes rule order meaningful: the ranged f-stop form swallows the single
// form inside it.
func overlapsClaimed(claimed [][2]int, role string, prev []model.Candidate, start, end int) bool {
	for i, c := range prev {
		if c.Role != role {
			continue
		}
		r := claimed[i]
		if start < r[1] && end > r[0] {
			return true
		}
	}
	return false
}

func validAspectRatio(text string, start, end int) bool {
	if _, ok := commonAspectRatios[text[start:end]]; ok {
		return true
	}
	lo := max(0, start-30)
	hi := min(len(text), end+30)
	near := strings.ToLower(text[lo:hi])
	return strings.Contains(near, "aspect") || strings.Contains(near, "ratio")
}

// validFocalLength keeps the mm rule from labeling arbitrary millimeter
// measurements; real lens focal lengths sit in a narrow numeric band.
func validFocalLength(text string, start, end int) bool {
	s := strings.ToLower(strings.TrimSpace(text[start:end]))
	s = strings.TrimSpace(strings.TrimSuffix(s, "mm"))
	n, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return n >= 8 && n <= 1200
}

func validColorTemperature(text string, start, end int) bool {
	s := strings.ToLower(text[start:end])
	s = strings.TrimSuffix(s, "elvin")
	s = strings.TrimSuffix(s, "k")
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return n >= 1000 && n <= 20000
}
