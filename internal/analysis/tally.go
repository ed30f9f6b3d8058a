package analysis

// tally counts keys and remembers the order each key was first seen in
type tally struct {
	order  []string
	counts map[string]int
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(key string) {
	if _, seen := t.counts[key]; !seen {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

// mode returns the most frequent key. Ties go to the key seen first.
func (t *tally) mode() (string, int) {
	best, bestCount := "", 0
	for _, key := range t.order {
		if c := t.counts[key]; c > bestCount {
			best, bestCount = key, c
		}
	}
	return best, bestCount
}
