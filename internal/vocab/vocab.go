// Package vocab loads the closed vocabulary: a static mapping from taxonomy
// role to literal terms. A default vocabulary ships embedded in the binary;
// an external YAML file can replace it. Load failures degrade to an empty
// vocabulary so the rest of the pipeline keeps running.
package vocab

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bharm16/prompt-builder-sub009/internal/engine/taxonomy"
)

//go:embed vocabulary.yaml
var embedded []byte

// Store is the read-only term table, built once at startup.
type Store struct {
	terms map[string][]string // role -> lowercased, deduped terms
	roles []string            // sorted, for deterministic iteration
}

// Load parses YAML bytes into a Store, dropping roles the taxonomy does not
// recognize. Terms are lowercased and deduped; original casing is always
// recovered from the scanned text, never from the vocabulary.
func Load(data []byte, tax *taxonomy.Store) (*Store, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("vocab: parse: %w", err)
	}

	s := &Store{terms: make(map[string][]string, len(raw))}
	for role, list := range raw {
		if !tax.ValidRole(role) {
			slog.Warn("vocab: dropping unknown taxonomy role", "role", role)
			continue
		}
		seen := make(map[string]struct{}, len(list))
		var acc []string
		for _, t := range list {
			t = strings.ToLower(strings.TrimSpace(t))
			if t == "" {
				continue
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			acc = append(acc, t)
		}
		if len(acc) == 0 {
			continue
		}
		sort.Strings(acc)
		s.terms[role] = acc
		s.roles = append(s.roles, role)
	}
	sort.Strings(s.roles)
	return s, nil
}

// LoadFile reads a vocabulary YAML file. Missing or corrupt files degrade to
// an empty store with a logged warning rather than failing startup.
func LoadFile(path string, tax *taxonomy.Store) *Store {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("vocab: cannot read vocabulary file, continuing with empty vocabulary",
			"path", path, "error", err)
		return Empty()
	}
	s, err := Load(data, tax)
	if err != nil {
		slog.Warn("vocab: cannot parse vocabulary file, continuing with empty vocabulary",
			"path", path, "error", err)
		return Empty()
	}
	return s
}

// Default returns the embedded vocabulary. The embedded resource is validated
// by tests, so a parse failure here still degrades rather than aborting.
func Default(tax *taxonomy.Store) *Store {
	s, err := Load(embedded, tax)
	if err != nil {
		slog.Error("vocab: embedded vocabulary is corrupt", "error", err)
		return Empty()
	}
	return s
}

// Empty returns a store with no terms. Tier 1 then finds nothing, but the
// pipeline does not fail.
func Empty() *Store {
	return &Store{terms: map[string][]string{}}
}

// Roles returns the roles that have at least one term, sorted.
func (s *Store) Roles() []string {
	return s.roles
}

// Terms returns the term list for a role.
func (s *Store) Terms(role string) []string {
	return s.terms[role]
}

// Len returns the total number of (role, term) pairs.
func (s *Store) Len() int {
	n := 0
	for _, v := range s.terms {
		n += len(v)
	}
	return n
}
