// Package openvocab integrates the Tier 2 span model, which runs in a
// separate worker process. Requests and responses are JSON lines over the
// worker's stdio, correlated by a monotonically increasing id.
package openvocab

import "encoding/json"

// Message types accepted by the worker.
const (
	typeInitialize = "initialize"
	typeWarmup     = "warmup"
	typeInference  = "inference"
)

type request struct {
	ID      uint64 `json:"id"`
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type response struct {
	ID     uint64          `json:"id"`
	OK     bool            `json:"ok"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// initPayload configures the worker once at spawn time; it is not re-sent
// per request.
type initPayload struct {
	ModelPath     string             `json:"modelPath"`
	Labels        []string           `json:"labels"`
	Thresholds    map[string]float64 `json:"thresholds,omitempty"`
	TimeoutMillis int64              `json:"timeoutMillis"`
}

type inferencePayload struct {
	Text      string   `json:"text"`
	Labels    []string `json:"labels"`
	Threshold float64  `json:"threshold"`
}

// detection is one labeled span from the worker, with the model's raw score.
type detection struct {
	Label string  `json:"label"`
	Start int     `json:"start"`
	End   int     `json:"end"`
	Score float64 `json:"score"`
}

type inferenceResult struct {
	Detections []detection `json:"detections"`
}

// calibrate maps a raw model score s against threshold t into [0.5, 1.0]:
// max(0,(s−t)/(1−t))·0.5 + 0.5. A score exactly at threshold calibrates to
// 0.5; scores below threshold return 0, meaning the detection is dropped
// outright rather than emitted at low confidence.
func calibrate(score, threshold float64) float64 {
	if score < threshold || threshold >= 1 {
		return 0
	}
	return (score-threshold)/(1-threshold)*0.5 + 0.5
}
