package embedder

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// hashDim is the fallback embedding dimensionality.
const hashDim = 256

// Hashing is a bag-of-words embedder: each token (and adjacent token bigram)
// is hashed into a fixed-dimension vector, which is then L2-normalized.
// Identical phrases embed identically and overlapping phrases score high
// cosine similarity, which is exactly what prototype classification needs
// when no learned model is available. Stateless and safe for concurrent use.
type Hashing struct {
	dim int
}

// NewHashing creates a hashing embedder with the given dimensionality.
func NewHashing(dim int) *Hashing {
	if dim <= 0 {
		dim = hashDim
	}
	return &Hashing{dim: dim}
}

// Embed produces the hashed bag-of-words vector for text.
func (h *Hashing) Embed(text string) ([]float32, error) {
	vec := make([]float32, h.dim)
	toks := hashTokens(text)
	for i, tok := range toks {
		vec[h.bucket(tok)]++
		if i > 0 {
			vec[h.bucket(toks[i-1]+" "+tok)]++
		}
	}
	l2Normalize(vec)
	return vec, nil
}

// EmbedBatch embeds each text independently.
func (h *Hashing) EmbedBatch(texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := h.Embed(t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Close is a no-op; the hashing embedder holds no resources.
func (h *Hashing) Close() error { return nil }

func (h *Hashing) bucket(tok string) int {
	f := fnv.New32a()
	f.Write([]byte(tok))
	return int(f.Sum32() % uint32(h.dim))
}

// hashTokens lowercases and splits on anything that is not a letter, digit,
// or apostrophe.
func hashTokens(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

// l2Normalize scales vec to unit length in place. Zero vectors stay zero.
func l2Normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	inv := float32(1.0 / math.Sqrt(sum))
	for i := range vec {
		vec[i] *= inv
	}
}
