package pdb

// computeClosure computes the closure of the single seed item (r, i) per
// §4.1's "Closure" algorithm and I4: a BFS fixed point of adding all start
// items of any non-terminal found at the dot, excluding the seed itself
// and excluding any complete item (dot at end of rule). For scanner-mode
// grammars, closures additionally expand across TokenNonTerminal symbols,
// mirroring how a NonTerminal expansion works.
func computeClosure(b *builder, r RuleId, i uint16, scannerMode bool) []StaticItem {
	type key = StaticItem
	seed := key{Rule: r, SymIndex: i}
	visited := map[key]bool{seed: true}
	queue := []key{seed}
	var out []StaticItem

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		rule := b.rules[cur.Rule]
		if cur.SymIndex >= rule.Len() {
			continue // complete items never contribute to, or appear in, a closure
		}
		sym := rule.Symbols[cur.SymIndex].Sym

		var target NonTermId
		expand := false
		switch {
		case sym.Kind == SymNonTerminal:
			target, expand = sym.NonTerm, true
		case scannerMode && sym.Kind == SymTokenNonTerminal:
			target, expand = sym.NonTerm, true
		}
		if !expand {
			continue
		}
		for _, rid := range b.nonTermRules[target] {
			start := key{Rule: rid, SymIndex: 0}
			if visited[start] {
				continue
			}
			visited[start] = true
			// An empty rule (I2 edge case) is a complete item at
			// sym_index 0; it is still visited so traversal terminates
			// through it, but only non-complete items are stored (I4).
			if start.SymIndex < b.rules[rid].Len() {
				out = append(out, start)
			}
			queue = append(queue, start)
		}
	}
	return out
}
