package openvocab

import (
	"log/slog"
	"sort"

	"github.com/bharm16/prompt-builder-sub009/internal/engine/taxonomy"
)

// defaultLabelMap maps the model's open label vocabulary to taxonomy roles.
// The label strings are what the span model was curated against; the roles
// must exist in the taxonomy or the entry is dropped at startup.
var defaultLabelMap = map[string]string{
	"camera movement": "camera.movement",
	"camera angle":    "camera.angle",
	"shot type":       "camera.shotType",
	"camera lens":     "camera.lens",
	"lighting":        "lighting.quality",
	"light source":    "lighting.source",
	"time of day":     "lighting.timeOfDay",
	"location":        "environment.location",
	"weather":         "environment.weather",
	"atmosphere":      "environment.atmosphere",
	"time period":     "environment.timePeriod",
	"person":          "subject.identity",
	"appearance":      "subject.appearance",
	"wardrobe":        "subject.wardrobe",
	"action":          "action.movement",
	"gesture":         "action.gesture",
	"mood":            "style.mood",
	"visual style":    "style.aesthetic",
	"film emulation":  "style.filmEmulation",
	"color grade":     "style.colorGrade",
	"music":           "audio.music",
	"ambient sound":   "audio.ambience",
}

// Mapping is the validated label→role table plus the label vocabulary sent
// to the worker.
type Mapping struct {
	roles  map[string]string
	labels []string
}

// NewMapping validates raw against the taxonomy. Entries whose role does not
// exist are logged and dropped; the label is then never sent to the worker,
// so the model cannot return it.
func NewMapping(raw map[string]string, tax *taxonomy.Store) *Mapping {
	m := &Mapping{roles: make(map[string]string, len(raw))}
	for label, role := range raw {
		if !tax.ValidRole(role) {
			slog.Warn("dropping label mapped to unknown taxonomy role",
				"label", label, "role", role)
			continue
		}
		m.roles[label] = role
		m.labels = append(m.labels, label)
	}
	sort.Strings(m.labels)
	return m
}

// DefaultMapping builds the curated mapping against tax.
func DefaultMapping(tax *taxonomy.Store) *Mapping {
	return NewMapping(defaultLabelMap, tax)
}

// Role resolves a worker label to its taxonomy role.
func (m *Mapping) Role(label string) (string, bool) {
	role, ok := m.roles[label]
	return role, ok
}

// Labels returns the sorted open label vocabulary.
func (m *Mapping) Labels() []string {
	return m.labels
}
