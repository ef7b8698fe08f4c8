// Package semantic scores free phrases against prototype clusters by
// embedding cosine similarity. It backs the action and lighting tiers: the
// anchor heuristics find candidate phrases, this package decides which
// taxonomy role, if any, the phrase belongs to.
package semantic

import (
	"fmt"
	"math"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/bharm16/prompt-builder-sub009/internal/engine/embedder"
)

// Result is the best-scoring cluster for a phrase. Role is empty when no
// cluster clears the similarity floor.
type Result struct {
	Role       string
	Similarity float64
}

// Classifier holds one embedder and one cluster set. Prototype embeddings
// are computed lazily on first use and cached for the process lifetime;
// phrase embeddings go through a short-lived cache since prompt texts repeat
// the same descriptive fragments heavily.
type Classifier struct {
	emb      embedder.Embedder
	clusters []Cluster
	floor    float64

	once    sync.Once
	initErr error
	protos  [][][]float32 // [cluster][example] -> vector

	phrases *gocache.Cache
}

// New creates a classifier over the given clusters. Phrases scoring below
// floor classify to no role.
func New(emb embedder.Embedder, clusters []Cluster, floor float64) *Classifier {
	return &Classifier{
		emb:      emb,
		clusters: clusters,
		floor:    floor,
		phrases:  gocache.New(10*time.Minute, 30*time.Minute),
	}
}

// Classify returns the best-matching cluster role for phrase, or an empty
// role when nothing clears the floor.
func (c *Classifier) Classify(phrase string) (Result, error) {
	if err := c.init(); err != nil {
		return Result{}, err
	}

	vec, err := c.embedPhrase(phrase)
	if err != nil {
		return Result{}, fmt.Errorf("semantic: embed phrase: %w", err)
	}

	best := Result{Similarity: -1}
	for ci, cluster := range c.clusters {
		// A cluster's score is its closest example.
		for _, proto := range c.protos[ci] {
			if sim := cosineSimilarity(vec, proto); sim > best.Similarity {
				best = Result{Role: cluster.Role, Similarity: sim}
			}
		}
	}

	if best.Similarity < c.floor {
		return Result{Similarity: best.Similarity}, nil
	}
	return best, nil
}

// init embeds every cluster example exactly once; concurrent callers share
// the same computation.
func (c *Classifier) init() error {
	c.once.Do(func() {
		c.protos = make([][][]float32, len(c.clusters))
		for ci, cluster := range c.clusters {
			vecs, err := c.emb.EmbedBatch(cluster.Examples)
			if err != nil {
				c.initErr = fmt.Errorf("semantic: embed prototypes for %s: %w", cluster.Role, err)
				return
			}
			c.protos[ci] = vecs
		}
	})
	return c.initErr
}

func (c *Classifier) embedPhrase(phrase string) ([]float32, error) {
	if v, ok := c.phrases.Get(phrase); ok {
		return v.([]float32), nil
	}
	vec, err := c.emb.Embed(phrase)
	if err != nil {
		return nil, err
	}
	c.phrases.Set(phrase, vec, gocache.DefaultExpiration)
	return vec, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
