package pdb

import "golang.org/x/exp/slices"

// followSafetyBound caps the follow-set BFS of computeFollow; exceeding it
// indicates a malformed cyclic grammar (§7 FollowSetOverflow) rather than
// a legitimate, merely-large grammar.
const followSafetyBound = 1 << 20

// computeFollow implements §4.1's "Follow set" algorithm for every
// non-terminal at once:
//
//  1. seed follow_base[n] with (r, i) for every item whose symbol at i is
//     non-terminal n (or, in scanner mode, token-non-terminal n).
//  2. for each n, BFS: walk items in follow_base[n]; if an item is
//     penultimate (its next step reduces), enqueue the reduction target's
//     non-terminal; accumulate every visited item into follow[n].
//
// Returns the per-non-terminal follow sets, and reports overflow via the
// ok return value (false ⇒ the safety bound was exceeded).
func computeFollow(b *builder, scannerMode bool) (map[NonTermId][]StaticItem, bool) {
	base := make(map[NonTermId][]StaticItem)
	for rid, rule := range b.rules {
		for i, rs := range rule.Symbols {
			var target NonTermId
			match := false
			switch {
			case rs.Sym.Kind == SymNonTerminal:
				target, match = rs.Sym.NonTerm, true
			case scannerMode && rs.Sym.Kind == SymTokenNonTerminal:
				target, match = rs.Sym.NonTerm, true
			}
			if match {
				base[target] = append(base[target], StaticItem{Rule: RuleId(rid), SymIndex: uint16(i)})
			}
		}
	}

	follow := make(map[NonTermId][]StaticItem, len(b.nonTermRules))
	budget := followSafetyBound
	for n := range b.nonTermRules {
		nt := NonTermId(n)
		visited := map[StaticItem]bool{}
		queue := append([]StaticItem(nil), base[nt]...)
		for _, it := range queue {
			visited[it] = true
		}
		for len(queue) > 0 {
			budget--
			if budget <= 0 {
				return follow, false
			}
			cur := queue[0]
			queue = queue[1:]
			rule := b.rules[cur.Rule]
			// penultimate: the next step (cur.SymIndex+1) is at the end
			// of the rule, i.e. reducing cur's rule activates its caller.
			if cur.SymIndex+1 == rule.Len() {
				reduceTarget := rule.NonTerm
				for _, it := range base[reduceTarget] {
					if !visited[it] {
						visited[it] = true
						queue = append(queue, it)
					}
				}
			}
		}
		items := make([]StaticItem, 0, len(visited))
		for it := range visited {
			items = append(items, it)
		}
		// visited is a map: iterating it directly would make follow[nt]'s
		// order depend on Go's randomized map iteration. Sort by (Rule,
		// SymIndex) so repeated builds of the same grammar agree (§5,P4).
		slices.SortFunc(items, func(a, b StaticItem) bool {
			if a.Rule != b.Rule {
				return a.Rule < b.Rule
			}
			return a.SymIndex < b.SymIndex
		})
		follow[nt] = items
	}
	return follow, true
}
