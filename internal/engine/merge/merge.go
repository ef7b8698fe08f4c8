// Package merge combines candidate spans from every tier into one
// deduplicated result. Overlaps are resolved per taxonomy parent branch with
// a fixed tie-break order; spans from different branches may overlap freely.
package merge

import (
	"sort"

	"github.com/bharm16/prompt-builder-sub009/internal/engine/taxonomy"
	"github.com/bharm16/prompt-builder-sub009/internal/model"
)

// Strategy selects the third tie-break between overlapping same-branch spans.
const (
	StrategyLongest    = "longest"
	StrategyConfidence = "confidence"
)

// Options control the overlap tie-break order. Defaults: source priority on,
// longest-match-first.
type Options struct {
	SourcePriority bool
	Strategy       string
}

// DefaultOptions returns the shipped tie-break configuration.
func DefaultOptions() Options {
	return Options{SourcePriority: true, Strategy: StrategyLongest}
}

// Merger resolves candidate overlaps against one taxonomy.
type Merger struct {
	tax     *taxonomy.Store
	opts    Options
	headers map[string]struct{}
}

func New(tax *taxonomy.Store, opts Options) *Merger {
	if opts.Strategy == "" {
		opts.Strategy = StrategyLongest
	}
	return &Merger{tax: tax, opts: opts, headers: headerLabels(tax)}
}

// Merge returns the winning spans. Malformed candidates (empty text, bad
// offsets, unknown roles) are silently excluded. The result is deterministic
// and stable under reordering of cands.
func (m *Merger) Merge(text string, cands []model.Candidate) []model.Candidate {
	valid := make([]model.Candidate, 0, len(cands))
	for _, c := range cands {
		if !c.Valid(len(text)) || !m.tax.ValidRole(c.Role) {
			continue
		}
		valid = append(valid, c)
	}

	// The full sort key makes processing order independent of input order.
	sort.Slice(valid, func(i, j int) bool {
		a, b := valid[i], valid[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End > b.End
		}
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.Role != b.Role {
			return a.Role < b.Role
		}
		return tierRank(a.Source) < tierRank(b.Source)
	})

	var accepted []model.Candidate
	for _, cand := range valid {
		branch := m.tax.ParentBranch(cand.Role)

		var overlapping []int
		for i, acc := range accepted {
			if m.tax.ParentBranch(acc.Role) == branch && overlaps(cand, acc) {
				overlapping = append(overlapping, i)
			}
		}
		if len(overlapping) == 0 {
			accepted = append(accepted, cand)
			continue
		}

		// The candidate must strictly beat every overlapping incumbent;
		// ties keep the incumbent.
		wins := true
		for _, i := range overlapping {
			if !m.beats(cand, accepted[i]) {
				wins = false
				break
			}
		}
		if !wins {
			continue
		}

		kept := accepted[:0]
		evict := make(map[int]struct{}, len(overlapping))
		for _, i := range overlapping {
			evict[i] = struct{}{}
		}
		for i, acc := range accepted {
			if _, out := evict[i]; !out {
				kept = append(kept, acc)
			}
		}
		accepted = append(kept, cand)
	}

	accepted = m.suppressHeaders(text, accepted)

	sort.Slice(accepted, func(i, j int) bool {
		a, b := accepted[i], accepted[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return a.Role < b.Role
	})
	return accepted
}

// beats reports whether a strictly wins over b under the configured
// tie-break order: source priority, specificity, length-or-confidence,
// leftmost start.
func (m *Merger) beats(a, b model.Candidate) bool {
	if m.opts.SourcePriority {
		if ra, rb := tierRank(a.Source), tierRank(b.Source); ra != rb {
			return ra < rb
		}
	}
	if sa, sb := taxonomy.Specificity(a.Role), taxonomy.Specificity(b.Role); sa != sb {
		return sa > sb
	}
	la, lb := a.End-a.Start, b.End-b.Start
	if m.opts.Strategy == StrategyConfidence {
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if la != lb {
			return la > lb
		}
	} else {
		if la != lb {
			return la > lb
		}
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
	}
	return a.Start < b.Start
}

// tierRank orders sources by trust: exact tiers, then the open-vocabulary
// model, then the heuristics.
func tierRank(s model.Source) int {
	switch s {
	case model.SourceClosedVocab, model.SourcePattern:
		return 0
	case model.SourceOpenVocab:
		return 1
	default:
		return 2
	}
}

func overlaps(a, b model.Candidate) bool {
	return a.Start < b.End && a.End > b.Start
}
