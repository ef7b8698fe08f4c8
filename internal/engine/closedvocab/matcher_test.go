package closedvocab

import (
	"strings"
	"testing"

	"github.com/bharm16/prompt-builder-sub009/internal/engine/taxonomy"
	"github.com/bharm16/prompt-builder-sub009/internal/model"
	"github.com/bharm16/prompt-builder-sub009/internal/vocab"
)

func testMatcher(t *testing.T) *Matcher {
	t.Helper()
	return New(vocab.Default(taxonomy.Default()))
}

func rolesAt(cands []model.Candidate, text string) []string {
	var out []string
	for _, c := range cands {
		if c.Text == text {
			out = append(out, c.Role)
		}
	}
	return out
}

func TestVerbatimTermConfidenceOne(t *testing.T) {
	m := testMatcher(t)
	cands := m.Match("a scene at golden hour over the bay")

	var found *model.Candidate
	for i := range cands {
		if cands[i].Text == "golden hour" {
			found = &cands[i]
		}
	}
	if found == nil {
		t.Fatalf("no span for verbatim term; got %+v", cands)
	}
	if found.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want exactly 1.0", found.Confidence)
	}
	if found.Role != "lighting.timeOfDay" {
		t.Errorf("Role = %q, want lighting.timeOfDay", found.Role)
	}
	if found.Source != model.SourceClosedVocab {
		t.Errorf("Source = %q, want %q", found.Source, model.SourceClosedVocab)
	}
}

func TestOffsetsIndexOriginalText(t *testing.T) {
	m := testMatcher(t)
	text := "Golden Hour light, then DUSK"
	for _, c := range m.Match(text) {
		if text[c.Start:c.End] != c.Text {
			t.Errorf("text[%d:%d] = %q, want %q", c.Start, c.End, text[c.Start:c.End], c.Text)
		}
	}
	// Casing comes from the source text, never from the vocabulary.
	if got := rolesAt(m.Match(text), "Golden Hour"); len(got) == 0 {
		t.Error("case-insensitive match lost original casing")
	}
}

func TestEmbeddedTokenRejected(t *testing.T) {
	m := testMatcher(t)
	for _, text := range []string{"chipsdusk", "duskchips", "xduskx"} {
		for _, c := range m.Match(text) {
			if c.Text == "dusk" {
				t.Errorf("%q: embedded term must not match", text)
			}
		}
	}
}

func TestAmbiguousTermNeedsCameraCue(t *testing.T) {
	m := testMatcher(t)

	// Positive camera context within the window.
	with := m.Match("the camera slowly pans across the valley")
	if len(rolesAt(with, "pans")) == 0 {
		t.Error("expected camera.movement span for \"pans\" with camera cue")
	}

	// No cue at all.
	without := m.Match("she pans for gold in the river")
	if len(rolesAt(without, "pans")) != 0 {
		t.Error("ambiguous term matched without camera context")
	}
}

func TestCulinarySuppression(t *testing.T) {
	m := testMatcher(t)
	cands := m.Match("she began to pan the bread dough")
	for _, c := range cands {
		if c.Role == "camera.movement" {
			t.Errorf("culinary context must suppress camera.movement, got %+v", c)
		}
	}

	// Suppressor wins even when a cue word is present.
	cands = m.Match("in this shot she began to pan the bread dough")
	if len(rolesAt(cands, "pan")) != 0 {
		t.Error("suppressor collocation must beat a camera cue")
	}
}

func TestUnambiguousMultiwordTermNeedsNoCue(t *testing.T) {
	m := testMatcher(t)
	cands := m.Match("a tracking shot through the market")
	if len(rolesAt(cands, "tracking shot")) == 0 {
		t.Error("multiword movement term should match without extra context")
	}
}

func TestEmptyVocabularyFindsNothing(t *testing.T) {
	m := New(vocab.Empty())
	if got := m.Match("golden hour, slow pan"); got != nil {
		t.Errorf("empty vocabulary produced %d candidates", len(got))
	}
}

func TestScanIsLinearish(t *testing.T) {
	// Not a benchmark, just a sanity check that a large input with many
	// matches completes and every match keeps the offset invariant.
	m := testMatcher(t)
	text := strings.Repeat("golden hour light over the city street, ", 500)
	cands := m.Match(text)
	if len(cands) < 500 {
		t.Fatalf("expected at least 500 matches, got %d", len(cands))
	}
	for _, c := range cands {
		if text[c.Start:c.End] != c.Text {
			t.Fatal("offset invariant violated")
		}
	}
}
