package graph

import (
	"sort"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/npillmayer/radlrgo/config"
	radlrerrors "github.com/npillmayer/radlrgo/errors"
	"github.com/npillmayer/radlrgo/item"
	"github.com/npillmayer/radlrgo/pdb"
)

// BuildGraph implements the public contract of §4.3: construct a Host
// representing every decision a parser (or scanner) must make for a given
// entry non-terminal.
//
//   - Seeds the worklist with a Start state whose kernel is the set of
//     start items of entryNonterm, one item per rule, each tagged with a
//     unique goal id.
//   - While the worklist is non-empty, pops a state, computes its kernel
//     closure, and partitions it into completed / term / non-term items,
//     applying §4.3.1–§4.3.6 to each partition.
//
// Errors are accumulated into report rather than returned directly,
// matching §7's "every ambiguity error carries the conflicting items...
// the compilation reports each error once per graph build" — a non-empty
// report means no further states should be trusted for this entry.
func BuildGraph(db *pdb.PDB, entryNonterm pdb.NonTermId, kind Kind, cfg config.Config, report *radlrerrors.Report) *Host {
	h := newHost(db, kind, cfg)
	h.rootNonterms[entryNonterm] = true

	rules := db.NonTermRules(entryNonterm)
	kernel := make([]item.Item, len(rules))
	for i, r := range rules {
		kernel[i] = item.StartItem(db, r, uint32(i))
	}
	start, _ := h.addState(Start, 0, entryNonterm, kernel, pdb.UndefinedSym, 0, false)
	h.Start = start.Id

	worklist := []*GraphState{start}
	for len(worklist) > 0 {
		s := worklist[0]
		worklist = worklist[1:]
		created := h.expandState(s, report)
		worklist = append(worklist, created...)
	}
	return h
}

// expandState computes s's kernel closure, partitions it, and applies
// §4.3's disambiguation rules to each partition, returning the newly
// created child states so the caller can enqueue them (FIFO, §5).
func (h *Host) expandState(s *GraphState, report *radlrerrors.Report) []*GraphState {
	var closure []item.Item
	if h.Kind == ScannerGraph {
		closure = scannerClosure(h, s.Kernel)
	} else {
		closure = h.closureOf(s.Kernel)
	}

	completed := item.CompletedItems(closure)
	termItems := item.TermItems(closure)
	nontermItems := item.NontermItems(closure)
	if h.Kind == ScannerGraph {
		termItems = append(termItems, item.TokenNontermItems(closure)...)
	}

	var created []*GraphState

	if len(completed) > 0 {
		created = append(created, h.handleCompletions(s, completed, report)...)
	}

	if len(termItems) > 0 {
		created = append(created, h.handleTermItems(s, termItems, report)...)
	}

	if len(nontermItems) > 0 {
		byTarget := h.callTargetsForNonterms(s, nontermItems)
		h.buildGotoSubstate(s, closure, byTarget)
		// byTarget is keyed by non-terminal id; iterate in sorted key
		// order rather than native map order so the states appended to
		// the worklist (and therefore their creation order, §5) do not
		// depend on Go's randomized map iteration.
		nts := maps.Keys(byTarget)
		slices.Sort(nts)
		for _, nt := range nts {
			if gs, ok := h.State(byTarget[nt]); ok {
				created = append(created, gs)
			}
		}
	}

	return dedupCreated(created)
}

// handleTermItems implements the bulk of §4.3.1/§4.3.3: group term items
// by active symbol, merge occluding groups, and for any group spanning
// more than one goal attempt peek, then LR-inline, then Fork (parser mode
// only — scanners never peek, §8 P6); a group within a single goal becomes
// a plain shift child.
func (h *Host) handleTermItems(s *GraphState, termItems []item.Item, report *radlrerrors.Report) []*GraphState {
	order, groups := item.GroupBySymbol(termItems)
	order, groups, _ = h.mergeOccludingGroups(order, groups)
	if h.Kind == ParserGraph && !h.Cfg.AllowOccludingSymbols && !h.Cfg.OcclusionTrackingMode {
		// Occluding groups were left unmerged: report each occluding pair
		// as an ambiguity instead of absorbing it (§4.3.1, §6.4).
		for _, a := range order {
			for _, b := range order {
				if a.Occludes(b) {
					report.Addf(radlrerrors.UnresolvableAmbiguityParser, h.DB.NonTermFriendlyName(s.GoalNonterm),
						"%s occludes %s and occluding symbols are not allowed", a, b)
				}
			}
		}
	}
	sort.Slice(order, func(i, j int) bool { return h.DB.ToVal(order[i]) < h.DB.ToVal(order[j]) })

	var created []*GraphState
	for _, sym := range order {
		group := groups[sym]
		goals, _ := item.GroupByGoal(group)

		if h.Kind == ParserGraph && len(goals) > 1 {
			res := h.attemptPeek(s, group)
			if res.Resolved {
				h.addEdge(s.Id, res.Entry, sym)
				if child, ok := h.State(res.Entry); ok {
					created = append(created, child)
				}
				continue
			}
			lr := h.attemptLRInline(s, group)
			if lr.Ok {
				h.addEdge(s.Id, lr.Entry, sym)
				if child, ok := h.State(lr.Entry); ok {
					created = append(created, child)
				}
				continue
			}
			fork, forkCreated := h.buildFork(s, group)
			h.addEdge(s.Id, fork.Id, sym)
			created = append(created, forkCreated...)
			continue
		}

		kind := Shift
		if s.Type.Kind == Start {
			kind = KernelShift
		}
		next := item.TryIncrement(group)
		child, wasCreated := h.addState(kind, s.Type.Goal, s.GoalNonterm, next, sym, s.Id, true)
		h.addEdge(s.Id, child.Id, sym)
		if wasCreated {
			created = append(created, child)
		}
	}
	return created
}

// handleCompletions implements the dispatch of §4.3.2 on how many distinct
// goals the completed items belong to. It computes no follow items for a
// completed item; the choice rests on the goal count and graph kind alone.
func (h *Host) handleCompletions(s *GraphState, completed []item.Item, report *radlrerrors.Report) []*GraphState {
	goals, goalGroups := item.GroupByGoal(completed)
	var created []*GraphState

	switch {
	case len(goals) == 1 && h.Kind == ScannerGraph:
		it := completed[0]
		kind := Reduce
		if len(it.DB().NonTermRules(it.Nonterm())) == 1 {
			kind = AssignToken
		}
		rs, wasCreated := h.addState(kind, it.Goal, s.GoalNonterm, nil, pdb.EndOfInput, s.Id, true)
		rs.Type.Rule = it.Rule
		rs.Type.Completes = uint32(it.Len)
		h.addEdge(s.Id, rs.Id, pdb.EndOfInput)
		if wasCreated {
			created = append(created, rs)
		}

	case len(goals) == 1:
		it := completed[0]
		kind := NonTerminalComplete
		if !h.rootNonterms[it.Nonterm()] {
			kind = NonTermCompleteOOS
		}
		rs, wasCreated := h.addState(kind, it.Goal, s.GoalNonterm, nil, pdb.EndOfInput, s.Id, true)
		rs.Type.Rule = it.Rule
		rs.Type.Completes = uint32(it.Len)
		h.addEdge(s.Id, rs.Id, pdb.EndOfInput)
		if wasCreated {
			created = append(created, rs)
		}

	default:
		if h.Kind == ScannerGraph {
			winner, tie := highestPrecedenceTier(completed)
			if tie {
				report.Addf(radlrerrors.UnresolvableAmbiguityScanner, h.DB.NonTermFriendlyName(s.GoalNonterm),
					"%d items tie at the highest precedence tier", len(completed))
				break
			}
			rs, wasCreated := h.addState(AssignToken, winner.Goal, s.GoalNonterm, nil, pdb.EndOfInput, s.Id, true)
			rs.Type.Rule = winner.Rule
			h.addEdge(s.Id, rs.Id, pdb.EndOfInput)
			if wasCreated {
				created = append(created, rs)
			}
			break
		}

		lr := h.attemptLRInline(s, completed)
		if lr.Ok {
			h.addEdge(s.Id, lr.Entry, pdb.EndOfInput)
			if child, ok := h.State(lr.Entry); ok {
				created = append(created, child)
			}
			break
		}
		fork, forkCreated := h.buildFork(s, completed)
		h.addEdge(s.Id, fork.Id, pdb.EndOfInput)
		created = append(created, forkCreated...)
	}

	_ = goalGroups
	return created
}

// highestPrecedenceTier implements the scanner-mode resolution ladder of
// §4.3.2/§4.3.1: ExclusiveDefined > Defined > TokenNonTerminal > Class.
// tie==true iff more than one item shares the winning tier.
func highestPrecedenceTier(completed []item.Item) (item.Item, bool) {
	best := completed[0]
	bestTier := best.Sym().Tier()
	count := 1
	for _, it := range completed[1:] {
		t := it.Sym().Tier()
		switch {
		case t > bestTier:
			best, bestTier, count = it, t, 1
		case t == bestTier:
			count++
		}
	}
	return best, count > 1
}

// callTargetsForNonterms implements §4.3.5/§4.3.6's supporting machinery:
// for each distinct non-terminal active in s's closure, create (or reuse)
// the state reached once that non-terminal's sub-parse completes —
// modelled directly as the classic-LR goto successor (the incremented
// kernel for every item active on that non-terminal), which is the
// simplification recorded in DESIGN.md for the call/return bookkeeping of
// the original KernelCall/InternalCall split.
func (h *Host) callTargetsForNonterms(s *GraphState, nontermItems []item.Item) map[pdb.NonTermId]StateId {
	order, groups := item.GroupBySymbol(nontermItems)
	sort.Slice(order, func(i, j int) bool { return h.DB.ToVal(order[i]) < h.DB.ToVal(order[j]) })
	out := make(map[pdb.NonTermId]StateId)
	for _, sym := range order {
		group := groups[sym]
		nt := sym.NonTerm
		next := item.TryIncrement(group)
		kind := InternalCall
		if s.Type.Kind == Start {
			kind = KernelCall
		}
		child, wasCreated := h.addState(kind, s.Type.Goal, s.GoalNonterm, next, sym, s.Id, true)
		child.Type.NonTerm = nt
		if wasCreated {
			h.addEdge(s.Id, child.Id, sym)
		}
		out[nt] = child.Id
	}
	return out
}

// buildFork emits a Fork state with one ForkBase child per remaining goal
// group, the last resort of §4.3.2/§4.3.4 when neither peek nor LR-inline
// resolves the ambiguity.
func (h *Host) buildFork(s *GraphState, items []item.Item) (*GraphState, []*GraphState) {
	fork, created := h.addState(Fork, s.Type.Goal, s.GoalNonterm, items, pdb.UndefinedSym, s.Id, true)
	var out []*GraphState
	if !created {
		return fork, out
	}
	goals, groups := item.GroupByGoal(items)
	for _, g := range goals {
		base, wasCreated := h.addState(ForkBase, g, s.GoalNonterm, groups[g], pdb.UndefinedSym, fork.Id, true)
		h.addEdge(fork.Id, base.Id, pdb.UndefinedSym)
		if wasCreated {
			out = append(out, base)
		}
	}
	return fork, out
}

func dedupCreated(states []*GraphState) []*GraphState {
	seen := make(map[StateId]bool, len(states))
	out := make([]*GraphState, 0, len(states))
	for _, s := range states {
		if s == nil || seen[s.Id] {
			continue
		}
		seen[s.Id] = true
		out = append(out, s)
	}
	return out
}
