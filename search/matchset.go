package search

// MatchSet accumulates which predicates matched which candidate index.
// It is a multiset: the count records how many predicates matched, and a
// count of at least one means "matched by at least one active predicate",
// so unioning per-predicate results never double-counts an item.
type MatchSet map[int]int

// Add records a predicate match for the given item index.
func (m MatchSet) Add(index int) {
	m[index]++
}

// Has reports whether the index was matched by any predicate.
func (m MatchSet) Has(index int) bool {
	return m[index] > 0
}

// Len returns the number of distinct matched indices.
func (m MatchSet) Len() int {
	return len(m)
}
