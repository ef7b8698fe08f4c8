package model

// Source identifies which extraction tier produced a candidate span.
type Source string

const (
	// SourceClosedVocab marks spans found by the closed-vocabulary automaton.
	SourceClosedVocab Source = "closed-vocab"
	// SourcePattern marks spans found by the technical pattern rules.
	SourcePattern Source = "pattern"
	// SourceAction marks spans found by the verb-anchor heuristic.
	SourceAction Source = "action-heuristic"
	// SourceLighting marks spans found by the lighting-anchor heuristic.
	SourceLighting Source = "lighting"
	// SourceOpenVocab marks spans returned by the open-vocabulary worker.
	SourceOpenVocab Source = "open-vocab"
)

// Span is the public output unit: a labeled substring of the input text.
// Offsets are half-open byte offsets into the original input, so
// text[Start:End] == Text always holds.
type Span struct {
	Text       string  `json:"text"`
	Role       string  `json:"role"`
	Confidence float64 `json:"confidence"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
}

// Candidate is an intermediate span that still carries provenance.
// Candidates are never mutated after creation; the Source tag is stripped by
// an explicit projection (Public) at the engine boundary.
type Candidate struct {
	Span
	Source Source `json:"source"`
}

// Public projects a candidate to its public span, dropping provenance.
func (c Candidate) Public() Span {
	return c.Span
}

// Valid reports whether the candidate is structurally sound: non-empty text
// and sane offsets. Structurally broken candidates are excluded during merge
// rather than surfaced as errors.
func (c Candidate) Valid(inputLen int) bool {
	return c.Text != "" && c.Start >= 0 && c.Start < c.End && c.End <= inputLen
}

// TierStats records observability counters for one extraction tier.
type TierStats struct {
	Source Source  `json:"source"`
	Count  int     `json:"count"`
	Millis float64 `json:"millis"`
}

// Stats aggregates per-tier counts and latencies for one extraction call.
// It is observability data only; nothing downstream branches on it.
type Stats struct {
	Tiers       []TierStats `json:"tiers"`
	TotalMillis float64     `json:"totalMillis"`
}
