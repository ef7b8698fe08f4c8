package spanmark

// Span is one labeled region of the input text. This is the stable public
// type; internal representations may evolve independently without breaking
// consumers.
type Span struct {
	Text       string  `json:"text"`       // exact substring of the input
	Role       string  `json:"role"`       // taxonomy role, e.g. camera.lens
	Confidence float64 `json:"confidence"` // 0..1
	Start      int     `json:"start"`      // byte offset, inclusive
	End        int     `json:"end"`        // byte offset, exclusive
}

// TierStats reports one extraction tier's contribution.
type TierStats struct {
	Tier   string  `json:"tier"`
	Count  int     `json:"count"`
	Millis float64 `json:"millis"`
}

// Result is the outcome of one extraction.
type Result struct {
	Spans       []Span      `json:"spans"`
	Tiers       []TierStats `json:"tiers"`
	TotalMillis float64     `json:"totalMillis"`
}
