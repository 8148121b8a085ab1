package graph

import (
	"github.com/npillmayer/radlrgo/item"
	"github.com/npillmayer/radlrgo/pdb"
)

// GotoDisposition is the outcome attached to one transition out of a goto
// sub-state (§4.3.6): NonTerminalResolve (direct goto), NonTerminalShiftLoop
// (push-self then goto), or NonTerminalComplete (pass).
type GotoDisposition struct {
	NonTerm     pdb.NonTermId
	Disposition StateKind // one of NonTerminalResolve, NonTerminalShiftLoop, NonTerminalComplete
	Target      StateId
}

// buildGotoSubstate attaches a companion "goto" state to s when s has
// non-terminal items in its kernel closure (§4.3.6). It dispatches on the
// reducing non-terminal id of the just-completed child. The goto state is
// only emitted if its successor set is non-empty, matching "The goto
// state is only emitted if its successor set is non-empty."
func (h *Host) buildGotoSubstate(s *GraphState, closure []item.Item, byNontermTarget map[pdb.NonTermId]StateId) []GotoDisposition {
	nontermItems := item.NontermItems(closure)
	if len(nontermItems) == 0 {
		return nil
	}
	_, groups := item.GroupByGoal(nontermItems)
	var dispositions []GotoDisposition
	seen := make(map[pdb.NonTermId]bool)
	for _, items := range groups {
		for _, it := range items {
			nt := it.GetType().NonTerm
			if seen[nt] {
				continue
			}
			seen[nt] = true
			target, hasTarget := byNontermTarget[nt]
			switch {
			case !hasTarget:
				// no successor state reachable under this non-terminal:
				// nothing to dispatch to, so this non-terminal
				// contributes no disposition (empty successor set).
				continue
			case nt == s.GoalNonterm && len(nontermItems) == 1:
				dispositions = append(dispositions, GotoDisposition{NonTerm: nt, Disposition: NonTerminalShiftLoop, Target: target})
			case it.IsComplete():
				dispositions = append(dispositions, GotoDisposition{NonTerm: nt, Disposition: NonTerminalComplete, Target: target})
			default:
				dispositions = append(dispositions, GotoDisposition{NonTerm: nt, Disposition: NonTerminalResolve, Target: target})
			}
		}
	}
	if len(dispositions) == 0 {
		return nil
	}
	gotoKernel := make([]item.Item, len(nontermItems))
	copy(gotoKernel, nontermItems)
	gs, created := h.addState(NonTerminalResolve, s.Type.Goal, s.GoalNonterm, gotoKernel, pdb.UndefinedSym, s.Id, true)
	if created {
		for _, d := range dispositions {
			h.addEdge(gs.Id, d.Target, pdb.NonTerminalSym(d.NonTerm))
		}
	}
	s.GotoState = gs.Id.AsGoto()
	s.HasGoto = true
	return dispositions
}
