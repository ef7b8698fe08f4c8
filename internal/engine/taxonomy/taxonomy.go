package taxonomy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bharm16/prompt-builder-sub009/internal/model"
)

// Store holds the validated taxonomy category set. It is built once at
// process start and read-only afterwards, so it is safe for concurrent use.
type Store struct {
	cats     map[string]model.TaxonomyCategory
	roles    map[string]struct{}
	branches map[string]string // category id -> top-level branch id
}

// New builds a Store from a category list. Category IDs must be unique and
// parent references must resolve; both are author errors, not runtime ones.
func New(cats []model.TaxonomyCategory) (*Store, error) {
	s := &Store{
		cats:     make(map[string]model.TaxonomyCategory, len(cats)),
		roles:    make(map[string]struct{}, len(cats)*8),
		branches: make(map[string]string, len(cats)),
	}
	for _, c := range cats {
		if c.ID == "" {
			return nil, fmt.Errorf("taxonomy: category with empty id")
		}
		if _, dup := s.cats[c.ID]; dup {
			return nil, fmt.Errorf("taxonomy: duplicate category %q", c.ID)
		}
		s.cats[c.ID] = c
	}

	for id, c := range s.cats {
		branch, err := s.resolveBranch(id)
		if err != nil {
			return nil, err
		}
		s.branches[id] = branch
		for _, attr := range c.ValidAttributes {
			s.roles[id+"."+attr] = struct{}{}
		}
	}
	return s, nil
}

// resolveBranch walks ParentID links up to the top-level category.
func (s *Store) resolveBranch(id string) (string, error) {
	cur := id
	for hops := 0; ; hops++ {
		if hops > len(s.cats) {
			return "", fmt.Errorf("taxonomy: parent cycle at %q", id)
		}
		c, ok := s.cats[cur]
		if !ok {
			return "", fmt.Errorf("taxonomy: category %q references missing parent %q", id, cur)
		}
		if c.ParentID == "" {
			return cur, nil
		}
		cur = c.ParentID
	}
}

// ValidRole reports whether role names a known category.attribute pair.
func (s *Store) ValidRole(role string) bool {
	_, ok := s.roles[role]
	return ok
}

// ParentBranch returns the top-level taxonomy branch that owns the role
// (e.g. "camera" for "camera.lens"), or "" for unknown roles. Overlap
// resolution is scoped per branch.
func (s *Store) ParentBranch(role string) string {
	i := strings.LastIndex(role, ".")
	if i < 0 {
		return ""
	}
	return s.branches[role[:i]]
}

// Specificity is the dotted depth of a role. Deeper roles win specificity
// tie-breaks during merge.
func Specificity(role string) int {
	if role == "" {
		return 0
	}
	return strings.Count(role, ".") + 1
}

// Category looks up a category by id.
func (s *Store) Category(id string) (model.TaxonomyCategory, bool) {
	c, ok := s.cats[id]
	return c, ok
}

// Roles returns all valid role identifiers in sorted order.
func (s *Store) Roles() []string {
	out := make([]string, 0, len(s.roles))
	for r := range s.roles {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// BranchLabels returns the display labels of all top-level categories in
// sorted order. The merge engine uses them to spot section-header scaffolding.
func (s *Store) BranchLabels() []string {
	var out []string
	for _, c := range s.cats {
		if c.ParentID == "" {
			out = append(out, c.Label)
		}
	}
	sort.Strings(out)
	return out
}
