package lower

import (
	"fmt"

	"github.com/cnf/structhash"

	"github.com/npillmayer/radlrgo/graph"
	"github.com/npillmayer/radlrgo/item"
	"github.com/npillmayer/radlrgo/pdb"
)

// stateName computes the deterministic, pointer-free name of §4.4 ("all
// interned names are derived from rule indices / kernel hashes, never
// pointer identity"). The root state's name is overridden by the caller
// with entryName; this function supplies the kernel-hash name used by
// every other state, and by the root before the override is applied.
func stateName(s *graph.GraphState) string {
	abs := item.ToAbsolute(s.Kernel)
	h, err := structhash.Hash(struct {
		Kind string // StateKind by name, so the hash survives StateKind renumbering
		Goal uint32
		Kern []pdb.StaticItem
	}{Kind: s.Type.Kind.String(), Goal: s.Type.Goal, Kern: abs}, 1)
	if err != nil {
		panic("lower: stateName: " + err.Error())
	}
	return fmt.Sprintf("%s_%s", kindTag(s), h)
}

// gotoName names a state's companion goto sub-state, distinguished from
// its owner by a fixed suffix (§4.3.6).
func gotoName(s *graph.GraphState) string {
	return stateName(s) + "_goto"
}

// thenName suffixes a post-reduce continuation, per §4.4 ("the post-reduce
// variant, if any, is suffixed _then").
func thenName(name string) string {
	return name + "_then"
}

func kindTag(s *graph.GraphState) string {
	switch s.Type.Kind {
	case graph.Start:
		return "start"
	case graph.Shift, graph.KernelShift:
		return "shift"
	case graph.KernelCall, graph.InternalCall:
		return "call"
	case graph.Peek, graph.PeekEndComplete:
		return "peek"
	case graph.Fork, graph.ForkBase:
		return "fork"
	case graph.Reduce, graph.AssignToken, graph.AssignAndFollow, graph.DifferedReduce:
		return "reduce"
	case graph.NonTerminalComplete, graph.NonTermCompleteOOS, graph.ScannerCompleteOOS, graph.Complete:
		return "complete"
	default:
		return "state"
	}
}

// scannerGroupName hashes a scanner's terminal set into the stable name
// referenced by a parser match header's `:<name>` suffix (§4.4). Only the
// terminals passed in are hashed; no skipped-token set is part of the name.
func scannerGroupName(terms []pdb.SymbolId) string {
	abs := make([]pdb.SymbolId, len(terms))
	copy(abs, terms)
	h, err := structhash.Hash(struct{ Terms []pdb.SymbolId }{Terms: abs}, 1)
	if err != nil {
		panic("lower: scannerGroupName: " + err.Error())
	}
	return "scan_" + h
}
