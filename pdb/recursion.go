package pdb

// computeRecursion implements §4.1's "Recursion bitset" algorithm for a
// single non-terminal n, per I6: during closure computation, when a
// closure item shares n's non-terminal, OR in LeftRecursive if the seed
// item generating that closure member is at the start position, else
// RightRecursive.
//
// A non-terminal recurses into itself if some rule of n, read at some
// position, has a closure that re-derives n. We approximate "the seed is
// at start" by checking each of n's own start items directly: if the
// closure of a start item reaches n, that is left recursion (I6's bit0
// clause, since the seed itself is at sym_index==0). If a closure taken
// from a non-start position of one of n's rules reaches n, that is right
// recursion (bit1).
func computeRecursion(b *builder, n NonTermId, closures map[StaticItem][]StaticItem) RecursionType {
	var rt RecursionType
	for _, rid := range b.nonTermRules[n] {
		ln := b.rules[rid].Len()
		for i := uint16(0); i < ln; i++ {
			seed := StaticItem{Rule: rid, SymIndex: i}
			if b.closureReaches(closures[seed], n) {
				if i == 0 {
					rt |= RecursesAtStart
				} else {
					rt |= RecursesNotAtStart
				}
			}
		}
	}
	return rt
}

// closureReaches reports whether any item in a closure set belongs to
// non-terminal n.
func (b *builder) closureReaches(closure []StaticItem, n NonTermId) bool {
	for _, it := range closure {
		if b.rules[it.Rule].NonTerm == n {
			return true
		}
	}
	return false
}
