package closedvocab

// Multi-pattern automaton (Aho-Corasick) over lowercased ASCII-folded bytes.
// Built once at startup from the whole vocabulary; a single left-to-right
// scan then reports every pattern occurrence, so matching is O(len(text) +
// total matches) regardless of vocabulary size.

type node struct {
	next map[byte]int32
	fail int32
	out  []int32 // pattern IDs ending at this state
}

type automaton struct {
	nodes []node
	built bool
}

func newAutomaton() *automaton {
	return &automaton{nodes: []node{{next: map[byte]int32{}}}}
}

// insert adds a pattern under an integer ID. Must be called before build.
func (a *automaton) insert(pat []byte, id int32) {
	if len(pat) == 0 || a.built {
		return
	}
	state := int32(0)
	for _, b := range pat {
		nxt, ok := a.nodes[state].next[b]
		if !ok {
			nxt = int32(len(a.nodes))
			a.nodes[state].next[b] = nxt
			a.nodes = append(a.nodes, node{next: map[byte]int32{}})
		}
		state = nxt
	}
	a.nodes[state].out = append(a.nodes[state].out, id)
}

// build computes failure links breadth-first and merges suffix outputs so
// the scan never has to chase fail chains for reporting.
func (a *automaton) build() {
	queue := make([]int32, 0, len(a.nodes))
	for _, s := range a.nodes[0].next {
		a.nodes[s].fail = 0
		queue = append(queue, s)
	}

	for qi := 0; qi < len(queue); qi++ {
		r := queue[qi]
		for b, s := range a.nodes[r].next {
			queue = append(queue, s)

			f := a.nodes[r].fail
			for {
				if nxt, ok := a.nodes[f].next[b]; ok && nxt != s {
					a.nodes[s].fail = nxt
					break
				}
				if f == 0 {
					a.nodes[s].fail = 0
					break
				}
				f = a.nodes[f].fail
			}
			a.nodes[s].out = append(a.nodes[s].out, a.nodes[a.nodes[s].fail].out...)
		}
	}
	a.built = true
}

// scan walks text once and invokes fn(end, id) for every match, where end is
// the exclusive byte offset at which pattern id finishes.
func (a *automaton) scan(text []byte, fn func(end int, id int32)) {
	state := int32(0)
	for i, b := range text {
		for {
			if nxt, ok := a.nodes[state].next[b]; ok {
				state = nxt
				break
			}
			if state == 0 {
				break
			}
			state = a.nodes[state].fail
		}
		for _, id := range a.nodes[state].out {
			fn(i+1, id)
		}
	}
}
