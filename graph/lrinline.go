package graph

import (
	"github.com/npillmayer/radlrgo/item"
	"github.com/npillmayer/radlrgo/pdb"
)

// lrInlineResult mirrors the Result-returning internal helper of §9 ("Err
// variants signal 'try LR-inline' / 'emit Fork'"): Ok==false means the
// caller must fall back to Fork (§4.3.4 "otherwise return Err and fall
// back to Fork").
type lrInlineResult struct {
	Ok    bool
	Entry StateId
}

// attemptLRInline implements §4.3.4: when peek exhausts itself on
// ambiguous items that share structure amenable to LR, seed an LR-start
// state from the closure of the disputed items and continue a small LR
// sub-construction inline.
func (h *Host) attemptLRInline(parent *GraphState, disputed []item.Item) lrInlineResult {
	seen := make(map[string]StateId)
	entry, ok := h.buildLRInlineState(parent, disputed, seen, false)
	return lrInlineResult{Ok: ok, Entry: entry}
}

// addParentEdge is false only for the top-level call: the caller
// (build.go's handleTermItems/handleCompletions) wires that edge itself
// with the real symbol/EndOfInput label the disputed group shares, rather
// than the placeholder label this function would otherwise use.
func (h *Host) buildLRInlineState(parent *GraphState, kernel []item.Item, seen map[string]StateId, addParentEdge bool) (StateId, bool) {
	key := peekKey(kernel)
	if id, ok := seen[key]; ok {
		return id, true // revisit becomes a proxy parent of the existing state
	}

	closure := h.closureOf(kernel)
	endItems := item.CompletedItems(closure)
	liveItems := item.IncompleteItems(closure)

	switch {
	case len(endItems) == 0:
		// no reduction candidate yet: split by symbol and keep recursing,
		// same shape as the ordinary grouping algorithm.
	case len(endItems) == 1:
		// single reduction: End+Assert, represented here as a
		// DifferedReduce state guarding the reduce with the surviving
		// lookahead (§9 open question: DifferedReduce semantics).
		end := endItems[0]
		st, created := h.addState(DifferedReduce, end.Goal, parent.GoalNonterm, []item.Item{end}, pdb.EndOfInput, parent.Id, true)
		st.Type.Rule = end.Rule
		seen[key] = st.Id
		if created && addParentEdge {
			h.addEdge(parent.Id, st.Id, pdb.EndOfInput)
		}
		return st.Id, true
	default:
		if !nonOverlappingFollows(h.DB, endItems) {
			return 0, false // ambiguous end-items: fall back to Fork
		}
		// multiple end-items with non-overlapping follow partitions
		// become per-symbol end states; build one Reduce state per
		// end-item, keyed by its own goal/rule so lowering can dispatch
		// on the symbol that follows it.
		st, created := h.addState(DifferedReduce, parent.Type.Goal, parent.GoalNonterm, endItems, pdb.EndOfInput, parent.Id, true)
		seen[key] = st.Id
		if created && addParentEdge {
			h.addEdge(parent.Id, st.Id, pdb.EndOfInput)
		}
		return st.Id, true
	}

	st, created := h.addState(ShiftPrefix, parent.Type.Goal, parent.GoalNonterm, kernel, pdb.UndefinedSym, parent.Id, true)
	seen[key] = st.Id
	if !created {
		return st.Id, true
	}
	if addParentEdge {
		h.addEdge(parent.Id, st.Id, pdb.UndefinedSym)
	}

	symOrder, symGroups := item.GroupBySymbol(liveItems)
	for _, sym := range symOrder {
		group := item.TryIncrement(symGroups[sym])
		if len(group) == 0 {
			continue
		}
		child, ok := h.buildLRInlineState(st, group, seen, true)
		if !ok {
			return 0, false
		}
		h.addEdge(st.Id, child, sym)
	}
	return st.Id, true
}

// closureOf returns the closure of every item in kernel, deduplicated,
// with the kernel items themselves included (the kernel is always part of
// its own closure).
func (h *Host) closureOf(kernel []item.Item) []item.Item {
	seen := make(map[pdb.StaticItem]bool, len(kernel)*2)
	out := make([]item.Item, 0, len(kernel)*2)
	for _, it := range kernel {
		if !seen[it.ToStatic()] {
			seen[it.ToStatic()] = true
			out = append(out, it)
		}
		for _, c := range it.Closure() {
			if !seen[c.ToStatic()] {
				seen[c.ToStatic()] = true
				out = append(out, c)
			}
		}
	}
	return out
}

// nonOverlappingFollows reports whether the follow sets of the rules
// reduced by endItems are pairwise disjoint — the condition under which
// §4.3.4 allows building one end-state per symbol rather than failing.
func nonOverlappingFollows(db *pdb.PDB, endItems []item.Item) bool {
	owner := make(map[pdb.SymbolId]pdb.NonTermId)
	for _, it := range endItems {
		nt := it.Nonterm()
		for _, f := range db.NonTermFollowItems(nt) {
			sym := item.New(db, f.Rule, f.SymIndex).Sym()
			if prev, ok := owner[sym]; ok && prev != nt {
				return false
			}
			owner[sym] = nt
		}
	}
	return true
}
