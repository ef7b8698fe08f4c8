package heuristic

import (
	"testing"

	"github.com/bharm16/prompt-builder-sub009/internal/engine/embedder"
	"github.com/bharm16/prompt-builder-sub009/internal/engine/semantic"
	"github.com/bharm16/prompt-builder-sub009/internal/model"
)

const testFloor = 0.25

func testActions(t *testing.T) *Actions {
	t.Helper()
	cls := semantic.New(embedder.NewHashing(0), semantic.ActionClusters(), testFloor)
	return NewActions(cls, testFloor)
}

func testLighting(t *testing.T) *Lighting {
	t.Helper()
	cls := semantic.New(embedder.NewHashing(0), semantic.LightingClusters(), testFloor)
	return NewLighting(cls, testFloor)
}

func spanTexts(cands []model.Candidate) []string {
	var out []string
	for _, c := range cands {
		out = append(out, c.Text)
	}
	return out
}

func TestTokenizeOffsets(t *testing.T) {
	toks := tokenize("A close-up, she's walking")
	want := []string{"A", "close-up", "she's", "walking"}
	if len(toks) != len(want) {
		t.Fatalf("tokens = %v, want %v", spanToks(toks), want)
	}
	text := "A close-up, she's walking"
	for i, tok := range toks {
		if tok.text != want[i] {
			t.Errorf("token %d = %q, want %q", i, tok.text, want[i])
		}
		if text[tok.start:tok.end] != tok.text {
			t.Errorf("offsets wrong for %q: [%d,%d)", tok.text, tok.start, tok.end)
		}
	}
}

func spanToks(toks []token) []string {
	var out []string
	for _, tok := range toks {
		out = append(out, tok.text)
	}
	return out
}

func TestSurfaceForms(t *testing.T) {
	tests := []struct {
		base string
		want []string
	}{
		{"walk", []string{"walks", "walked", "walking"}},
		{"pan", []string{"pans", "panned", "panning"}},
		{"dance", []string{"dances", "danced", "dancing"}},
		{"carry", []string{"carries", "carried", "carrying"}},
		{"run", []string{"runs", "ran", "running"}},
		{"freeze", []string{"freezes", "froze", "frozen", "freezing"}},
	}
	for _, tt := range tests {
		forms := map[string]bool{}
		for _, f := range surfaceForms(tt.base) {
			forms[f] = true
		}
		if !forms[tt.base] {
			t.Errorf("surfaceForms(%q) missing the base form", tt.base)
		}
		for _, f := range tt.want {
			if !forms[f] {
				t.Errorf("surfaceForms(%q) missing %q (got %v)", tt.base, f, forms)
			}
		}
	}
}

func TestActionsMovementPhrase(t *testing.T) {
	got := testActions(t).Extract("a man running through the field at dawn")
	if len(got) != 1 {
		t.Fatalf("candidates = %v, want one", spanTexts(got))
	}
	c := got[0]
	if c.Text != "running through the field at dawn" && c.Text != "running through the field" {
		t.Errorf("Text = %q, want the extended verb phrase", c.Text)
	}
	if c.Role != "action.movement" {
		t.Errorf("Role = %q, want action.movement", c.Role)
	}
	if c.Source != model.SourceAction {
		t.Errorf("Source = %q", c.Source)
	}
	if c.Confidence < testFloor {
		t.Errorf("Confidence = %v, below floor", c.Confidence)
	}
}

func TestActionsLeftAdverbRun(t *testing.T) {
	text := "she is slowly walking toward the door"
	got := testActions(t).Extract(text)
	if len(got) != 1 {
		t.Fatalf("candidates = %v, want one", spanTexts(got))
	}
	if got[0].Text != "slowly walking toward the door" {
		t.Errorf("Text = %q, want the adverb included", got[0].Text)
	}
	if text[got[0].Start:got[0].End] != got[0].Text {
		t.Errorf("offset invariant violated: %+v", got[0])
	}
}

func TestActionsStandaloneAllowList(t *testing.T) {
	got := testActions(t).Extract("she told him to wait.")
	if len(got) != 1 {
		t.Fatalf("candidates = %v, want one standalone", spanTexts(got))
	}
	if got[0].Text != "wait" || got[0].Role != "action.state" {
		t.Errorf("got %q as %q, want wait as action.state", got[0].Text, got[0].Role)
	}

	// A bare verb outside the allow-list has nothing to classify.
	if got := testActions(t).Extract("they dance."); len(got) != 0 {
		t.Errorf("bare non-allow-listed verb produced %v", spanTexts(got))
	}
}

func TestActionsCameraAmbiguousSuppression(t *testing.T) {
	got := testActions(t).Extract("the camera slowly pans across the valley")
	for _, c := range got {
		if c.Text == "slowly pans across the valley" || c.Text == "pans" {
			t.Errorf("camera-context verb phrase not suppressed: %q", c.Text)
		}
	}
}

func TestActionsUnrelatedPhraseDropped(t *testing.T) {
	// "pans" without camera context reaches the classifier but nothing in the
	// action clusters resembles panning for gold.
	got := testActions(t).Extract("she pans for gold nearby")
	if len(got) != 0 {
		t.Errorf("candidates = %v, want none", spanTexts(got))
	}
}

func TestActionsAnchorExcludedFromScoring(t *testing.T) {
	// The verb overlaps the movement examples, but the surrounding content is
	// what gets classified and "plates" resembles none of the clusters.
	got := testActions(t).Extract("a performer spinning plates")
	if len(got) != 0 {
		t.Errorf("candidates = %v, want none", spanTexts(got))
	}
}

func TestLightingPhrase(t *testing.T) {
	text := "bathed in soft diffused light from the window"
	got := testLighting(t).Extract(text)
	if len(got) != 1 {
		t.Fatalf("candidates = %v, want one", spanTexts(got))
	}
	c := got[0]
	if c.Text != "soft diffused light" {
		t.Errorf("Text = %q, want soft diffused light", c.Text)
	}
	if c.Role != "lighting.quality" {
		t.Errorf("Role = %q, want lighting.quality", c.Role)
	}
	if c.Source != model.SourceLighting {
		t.Errorf("Source = %q", c.Source)
	}
	if text[c.Start:c.End] != c.Text {
		t.Errorf("offset invariant violated: %+v", c)
	}
}

func TestLightingGoldenHour(t *testing.T) {
	got := testLighting(t).Extract("golden hour light spills over the hills")
	if len(got) != 1 {
		t.Fatalf("candidates = %v, want one", spanTexts(got))
	}
	if got[0].Role != "lighting.timeOfDay" {
		t.Errorf("Role = %q, want lighting.timeOfDay", got[0].Role)
	}
}

func TestLightingBareNounDropped(t *testing.T) {
	if got := testLighting(t).Extract("turn on the light"); len(got) != 0 {
		t.Errorf("bare noun produced %v", spanTexts(got))
	}
}

func TestLightingCompoundBlacklist(t *testing.T) {
	if got := testLighting(t).Extract("stopped at a red traffic light downtown"); len(got) != 0 {
		t.Errorf("compound collocation produced %v", spanTexts(got))
	}
}
