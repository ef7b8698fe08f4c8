package model

// Document is a single prompt text flowing through the pipeline.
type Document struct {
	ID   string `json:"id,omitempty"`
	Text string `json:"text"`
}

// Extraction is the pipeline's output record: the input document plus the
// merged spans and per-tier stats.
type Extraction struct {
	ID    string `json:"id,omitempty"`
	Text  string `json:"text,omitempty"`
	Spans []Span `json:"spans"`
	Stats Stats  `json:"stats,omitzero"`
}
