package merge

import (
	"strings"

	"github.com/bharm16/prompt-builder-sub009/internal/engine/taxonomy"
	"github.com/bharm16/prompt-builder-sub009/internal/model"
)

// extraHeaderLabels are section names that appear in prompt templates but are
// not taxonomy branch labels.
var extraHeaderLabels = []string{"motion", "color", "look", "sound"}

// headerLabels is the lowercased set of section names whose standalone
// occurrence inside header scaffolding must not be labeled as content.
func headerLabels(tax *taxonomy.Store) map[string]struct{} {
	set := make(map[string]struct{})
	for _, label := range tax.BranchLabels() {
		set[strings.ToLower(label)] = struct{}{}
	}
	for _, label := range extraHeaderLabels {
		set[label] = struct{}{}
	}
	return set
}

// suppressHeaders removes short spans that are really template scaffolding:
// the text matches a known section label and the surrounding line looks like
// a markdown or label header ("## Camera", "**Camera:**", "Camera:").
func (m *Merger) suppressHeaders(text string, spans []model.Candidate) []model.Candidate {
	out := spans[:0]
	for _, s := range spans {
		if m.isHeaderSpan(text, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (m *Merger) isHeaderSpan(text string, c model.Candidate) bool {
	if len(strings.Fields(c.Text)) > 2 {
		return false
	}
	if _, ok := m.headers[strings.ToLower(strings.TrimSpace(c.Text))]; !ok {
		return false
	}

	lineStart := strings.LastIndexByte(text[:c.Start], '\n') + 1
	lineEnd := len(text)
	if i := strings.IndexByte(text[c.End:], '\n'); i >= 0 {
		lineEnd = c.End + i
	}
	pre := strings.TrimSpace(text[lineStart:c.Start])
	post := strings.TrimSpace(text[c.End:lineEnd])

	// "## Camera"
	if pre != "" && strings.Trim(pre, "#") == "" {
		return true
	}
	// "**Camera:**" / "**Camera**"
	if strings.HasSuffix(pre, "**") &&
		(strings.HasPrefix(post, ":**") || strings.HasPrefix(post, "**")) {
		return true
	}
	// "Camera:" at line start
	if pre == "" && strings.HasPrefix(post, ":") {
		return true
	}
	return false
}
