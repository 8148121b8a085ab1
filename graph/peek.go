package graph

import (
	"fmt"

	"github.com/npillmayer/radlrgo/item"
	"github.com/npillmayer/radlrgo/pdb"
)

// peekAttempt tracks the (symbol, kernel-hash) pairs visited during one
// peek expansion (§4.3.3 step 3: "Track visited (sym, kernel-hash) pairs
// in peek_ids; if a pair recurs, the attempt becomes unresolvable").
type peekAttempt struct {
	lanes   map[uint32]int // lane_counter per goal
	visited map[string]bool
}

func newPeekAttempt() *peekAttempt {
	return &peekAttempt{lanes: make(map[uint32]int), visited: make(map[string]bool)}
}

// peekResult is what attemptPeek returns: either a resolved chain of Peek
// states terminating in PeekEndComplete/Fail leaves, or Resolved==false,
// signalling the caller (build.go) to fall through to LR-inline / Fork
// (§4.3.3 step 3).
type peekResult struct {
	Resolved bool
	Entry    StateId // first Peek state created for this attempt
}

// attemptPeek implements §4.3.3: peek is only attempted when items span
// more than one goal and share a term symbol; it partitions by goal,
// re-groups by symbol, and recurses until either a single lane survives
// (PeekEndComplete) or the same (symbol, kernel) pair recurs (unresolvable).
func (h *Host) attemptPeek(parent *GraphState, items []item.Item) peekResult {
	goals, goalGroups := item.GroupByGoal(item.TermItems(items))
	if len(goals) < 2 {
		return peekResult{Resolved: false}
	}
	attempt := newPeekAttempt()
	for i, g := range goals {
		attempt.lanes[g] = i
	}
	entry, ok := h.buildPeekLevel(parent, goalGroups, attempt, parent.Type.Goal, false)
	return peekResult{Resolved: ok, Entry: entry}
}

// buildPeekLevel builds one level of the peek chain: for every term-symbol
// group that spans more than one goal it creates a child Peek state whose
// kernel is the incremented items of all lanes (§4.3.3 step 2), then
// recurses (step 3). A peek path terminates when all surviving items
// belong to a single lane (step 5, PeekEndComplete); items that are
// out-of-scope-only map to a Fail leaf (step 4).
//
// addParentEdge is false only for the very first level of an attempt: the
// caller (build.go's handleTermItems) wires that edge itself, labeled with
// the real symbol the group shares, rather than the placeholder label used
// between peek levels.
func (h *Host) buildPeekLevel(parent *GraphState, goalGroups map[uint32][]item.Item, attempt *peekAttempt, goalNonterm pdb.NonTermId, addParentEdge bool) (StateId, bool) {
	var allItems []item.Item
	for _, items := range goalGroups {
		allItems = append(allItems, items...)
	}

	if len(goalGroups) == 1 {
		var goal uint32
		for g := range goalGroups {
			goal = g
		}
		leaf, created := h.addState(PeekEndComplete, goal, goalNonterm, allItems, pdb.EndOfInput, parent.Id, true)
		leaf.Type.Kind = PeekEndComplete
		leaf.Type.Goal = goal
		if created && addParentEdge {
			h.addEdge(parent.Id, leaf.Id, pdb.EndOfInput)
		}
		return leaf.Id, true
	}

	symOrder, symGroups := item.GroupBySymbol(allItems)
	spanning := false
	for _, sym := range symOrder {
		_, groups := item.GroupByGoal(symGroups[sym])
		if len(groups) > 1 {
			spanning = true
		}
	}
	if !spanning {
		// Items no longer share a distinguishing symbol at this depth:
		// out-of-scope-only remainders become a Fail leaf so peeking
		// never resolves a goal that is not truly reachable (step 4).
		if allOutOfScope(allItems) {
			leaf, created := h.addState(Fail, 0, goalNonterm, nil, pdb.UndefinedSym, parent.Id, true)
			if created && addParentEdge {
				h.addEdge(parent.Id, leaf.Id, pdb.UndefinedSym)
			}
			return leaf.Id, true
		}
		return 0, false
	}

	kernel := item.TryIncrement(allItems)
	key := peekKey(kernel)
	if attempt.visited[key] {
		return 0, false // recurring (sym, kernel) pair: unresolvable (step 3)
	}
	attempt.visited[key] = true

	peekState, created := h.addState(Peek, parent.Type.Goal, goalNonterm, kernel, pdb.UndefinedSym, parent.Id, true)
	peekState.ResolveItems = allItems
	if created && addParentEdge {
		h.addEdge(parent.Id, peekState.Id, pdb.UndefinedSym)
	}
	if !created {
		return peekState.Id, true
	}

	_, nextGoalGroups := item.GroupByGoal(kernel)
	if _, ok := h.buildPeekLevel(peekState, nextGoalGroups, attempt, goalNonterm, true); !ok {
		return 0, false
	}
	return peekState.Id, true
}

func allOutOfScope(items []item.Item) bool {
	for _, it := range items {
		if !it.IsOutOfScope() {
			return false
		}
	}
	return len(items) > 0
}

func peekKey(items []item.Item) string {
	abs := item.ToAbsolute(items)
	return fmt.Sprintf("%v", abs)
}
