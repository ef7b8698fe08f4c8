package output

import (
	"testing"

	"github.com/bharm16/prompt-builder-sub009/internal/model"
)

func testExtraction() model.Extraction {
	return model.Extraction{
		ID:   "doc-1",
		Text: "a 35mm tracking shot at golden hour",
		Spans: []model.Span{
			{Text: "35mm", Role: "camera.lens", Confidence: 1.0, Start: 2, End: 6},
			{Text: "golden hour", Role: "lighting.timeOfDay", Confidence: 1.0, Start: 24, End: 35},
		},
		Stats: model.Stats{
			Tiers:       []model.TierStats{{Source: "closed-vocab", Count: 2, Millis: 0.4}},
			TotalMillis: 0.4,
		},
	}
}

func TestParseVerbosity(t *testing.T) {
	cases := []struct {
		in   string
		want Verbosity
	}{
		{"minimal", Minimal},
		{"standard", Standard},
		{"full", Full},
		{"", Standard},
		{"verbose", Standard},
	}
	for _, c := range cases {
		if got := ParseVerbosity(c.in); got != c.want {
			t.Errorf("ParseVerbosity(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatMinimal(t *testing.T) {
	got := Format(testExtraction(), Minimal)
	if got.Text != "" {
		t.Error("Minimal should strip the input text")
	}
	if len(got.Stats.Tiers) != 0 || got.Stats.TotalMillis != 0 {
		t.Error("Minimal should strip stats")
	}
	if len(got.Spans) != 2 {
		t.Errorf("spans must survive Minimal, got %d", len(got.Spans))
	}
	if got.ID != "doc-1" {
		t.Errorf("ID must survive Minimal, got %q", got.ID)
	}
}

func TestFormatStandard(t *testing.T) {
	got := Format(testExtraction(), Standard)
	if got.Text == "" {
		t.Error("Standard should keep the input text")
	}
	if len(got.Stats.Tiers) != 0 {
		t.Error("Standard should strip stats")
	}
}

func TestFormatFull(t *testing.T) {
	got := Format(testExtraction(), Full)
	if got.Text == "" || len(got.Stats.Tiers) != 1 {
		t.Errorf("Full should keep everything: %+v", got)
	}
}

func TestFormatDoesNotMutateInput(t *testing.T) {
	ex := testExtraction()
	Format(ex, Minimal)
	if ex.Text == "" || len(ex.Stats.Tiers) == 0 {
		t.Error("Format must operate on a copy")
	}
}
