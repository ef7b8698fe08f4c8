// Package spanmark provides a tiered span extraction engine that labels
// spans of video-shot prompt text with taxonomy roles.
//
// Quick start:
//
//	s, err := spanmark.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	res, _ := s.Extract(ctx, "a 35mm close-up at golden hour")
//	for _, span := range res.Spans {
//	    fmt.Println(span.Text, span.Role) // 35mm camera.lens ...
//	}
//
// Without a configured ONNX model the semantic tiers run on a deterministic
// lexical-hashing embedder: reduced recall, never an error. The Spanmark
// instance is safe for concurrent use. Create once, reuse across requests.
package spanmark
