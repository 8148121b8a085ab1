package lower

import (
	"sort"

	"github.com/npillmayer/radlrgo/graph"
	"github.com/npillmayer/radlrgo/pdb"
)

// Lower implements the stage-C contract of §4.4:
// lower(GraphHost, entry_name) -> []ParseState. It walks h in deterministic
// order (DFS from the root, tie-broken by StateId — §4.4 "Determinism"),
// emits one ParseState per GraphState plus one per goto sub-state, and
// overwrites the root state's hash-name with entryName.
func Lower(h *graph.Host, entryName string) []ParseState {
	names := make(map[graph.StateId]string)
	for _, s := range h.States() {
		names[s.Id] = stateName(s)
	}
	if start, ok := h.State(h.Start); ok {
		names[start.Id] = entryName
	}

	order := dfsOrder(h)

	out := make([]ParseState, 0, len(order)*2)
	for _, s := range order {
		out = append(out, ParseState{Name: names[s.Id], Body: lowerBody(h, s, names)})
		if s.HasGoto {
			out = append(out, ParseState{Name: gotoName(s), Body: lowerGoto(h, s, names)})
		}
	}
	return out
}

// dfsOrder walks h from its root, visiting each state's children in
// SymbolId-bytecode order (already what Host.Edges returns), tie-breaking
// revisits by StateId so the traversal is identical across runs (§4.4).
func dfsOrder(h *graph.Host) []*graph.GraphState {
	visited := make(map[graph.StateId]bool)
	var out []*graph.GraphState
	var visit func(id graph.StateId)
	visit = func(id graph.StateId) {
		if visited[id] {
			return
		}
		visited[id] = true
		s, ok := h.State(id)
		if !ok {
			return
		}
		out = append(out, s)
		for _, e := range h.Edges(id) {
			visit(e.To)
		}
	}
	visit(h.Start)

	// Goto companion states are never the target of a real edge — they are
	// reached only through s.GotoState on the state that owns them, and
	// Lower already emits their body via lowerGoto. Excluding their ids
	// here keeps the fallback below from re-lowering them a second time as
	// a bogus, unreachable "pass" state.
	gotoCompanions := make(map[graph.StateId]bool)
	for _, s := range h.States() {
		if s.HasGoto {
			gotoCompanions[s.GotoState.Base()] = true
		}
	}

	// Any other state unreachable from Start (such as the intermediate
	// states a failed peek or LR-inline attempt leaves interned in the host)
	// is appended in id order so lowering never silently drops a state.
	rest := h.States()
	sort.Slice(rest, func(i, j int) bool { return rest[i].Id < rest[j].Id })
	for _, s := range rest {
		if !visited[s.Id] && !gotoCompanions[s.Id] {
			visited[s.Id] = true
			out = append(out, s)
		}
	}
	return out
}

// lowerBody dispatches on a state's StateKind to build its <stmt> body
// (§4.4, §6.1).
func lowerBody(h *graph.Host, s *graph.GraphState, names map[graph.StateId]string) Stmt {
	switch s.Type.Kind {
	case graph.Start, graph.Shift, graph.KernelShift, graph.ShiftPrefix, graph.Peek:
		return lowerDispatch(h, s, names)
	case graph.KernelCall, graph.InternalCall:
		return StmtSeq{Push(names[edgeTarget(h, s)]), Goto(calleeEntry(h, s, names))}
	case graph.PeekEndComplete:
		return Goto(names[edgeTarget(h, s)])
	case graph.Reduce, graph.AssignToken, graph.AssignAndFollow, graph.DifferedReduce:
		return lowerReduce(h, s)
	case graph.NonTerminalComplete:
		// Completing the host's own entry non-terminal finishes the
		// parse outright (§8 scenario 1: "...reduce(rule 0, 2 symbols
		// to S), accept").
		return StmtSeq{lowerReduce(h, s), Accept()}
	case graph.NonTermCompleteOOS, graph.ScannerCompleteOOS:
		// Completing a non-root non-terminal only reduces; control
		// returns to the caller's goto companion state rather than
		// accepting (§8 scenario 3's intermediate reduces).
		return lowerReduce(h, s)
	case graph.Complete:
		return Accept()
	case graph.Fail:
		return Fail()
	case graph.Fork, graph.ForkBase:
		return lowerFork(h, s, names)
	default:
		return Pass()
	}
}

// lowerDispatch builds the match block shared by every state whose
// children are selected by an input axis (§4.4's "match: <input-type>
// {...}" form): the InputType of the first outgoing edge's label is the
// match axis, and every outgoing edge becomes one clause of that match,
// whatever axis its own label belongs to.
func lowerDispatch(h *graph.Host, s *graph.GraphState, names map[graph.StateId]string) Stmt {
	edges := h.Edges(s.Id)
	if len(edges) == 0 {
		return lowerLeaf(s)
	}

	axis := inputTypeOf(edges[0].Label)
	m := Match{Input: axis}
	if axis == TokenInput && h.Kind == graph.ScannerGraph {
		m.ScannerRef = scannerGroupName(labelsOf(edges))
	}

	for _, e := range edges {
		val := h.DB.ToVal(e.Label)
		body := childBody(s, e, names)
		m.Clauses = append(m.Clauses, Clause{Vals: []int32{val}, Body: body})
	}
	return m
}

// childBody builds the body of one dispatch clause: the opcode that
// consumes e's label (shift, peek, or nothing for end-of-input, which has
// no byte to consume) followed by the goto to the child state.
func childBody(s *graph.GraphState, e *graph.Edge, names map[graph.StateId]string) StmtSeq {
	if e.Label.Kind == pdb.SymEndOfInput {
		return StmtSeq{Goto(names[e.To])}
	}
	return StmtSeq{childOpcode(s), Goto(names[e.To])}
}

func lowerLeaf(s *graph.GraphState) Stmt {
	if s.IsErrorState() {
		return Fail()
	}
	return Pass()
}

// childOpcode names the simple that precedes a goto in a dispatch clause:
// a kernel-shift/shift state consumes a symbol (shift), a peek state only
// inspects one (peek).
func childOpcode(s *graph.GraphState) Simple {
	if s.Type.Kind == graph.Peek {
		return Peek()
	}
	return Shift()
}

func inputTypeOf(sym pdb.SymbolId) InputType {
	switch sym.Kind {
	case pdb.SymNonTerminal, pdb.SymTokenNonTerminal:
		return NonTerminalInput
	case pdb.SymTerminal:
		return TokenInput
	case pdb.SymChar:
		return ByteInput
	case pdb.SymCodepoint:
		return CodepointInput
	case pdb.SymEndOfInput:
		return EndOfFileInput
	case pdb.SymClassSpace, pdb.SymClassTab, pdb.SymClassNewline, pdb.SymClassIdentifier, pdb.SymClassNumber, pdb.SymClassSymbol:
		return ClassInput
	default:
		return DefaultInput
	}
}

func labelsOf(edges []*graph.Edge) []pdb.SymbolId {
	out := make([]pdb.SymbolId, len(edges))
	for i, e := range edges {
		out[i] = e.Label
	}
	return out
}

// lowerReduce emits the "reduce <n> symbols to <nonterm-bc-id> with rule
// <rule-bc-id>" simple for a completion state (§6.1).
func lowerReduce(h *graph.Host, s *graph.GraphState) Simple {
	nontermBc := h.DB.ToVal(pdb.NonTerminalSym(h.DB.RuleNonTerm(s.Type.Rule)))
	return Reduce(int(s.Type.Completes), nontermBc, int32(s.Type.Rule))
}

// lowerFork renders a Fork as a sequence of pushes onto each ForkBase
// lane, since §6.1's instruction grammar has no dedicated fork opcode —
// the runtime's existing push/pop machinery already models "try this
// continuation, and if it fails, try the next."
func lowerFork(h *graph.Host, s *graph.GraphState, names map[graph.StateId]string) Stmt {
	var seq StmtSeq
	for _, e := range h.Edges(s.Id) {
		seq = append(seq, Push(names[e.To]))
	}
	return seq
}

// lowerGoto builds the companion goto sub-state's body (§4.3.6): one
// clause per GotoDisposition, keyed by the reducing non-terminal's
// bytecode id.
func lowerGoto(h *graph.Host, s *graph.GraphState, names map[graph.StateId]string) Stmt {
	m := Match{Input: NonTerminalInput}
	for _, e := range h.Edges(s.GotoState.Base()) {
		val := h.DB.ToVal(e.Label)
		m.Clauses = append(m.Clauses, Clause{Vals: []int32{val}, Body: StmtSeq{Goto(names[e.To])}})
	}
	return m
}

func edgeTarget(h *graph.Host, s *graph.GraphState) graph.StateId {
	edges := h.Edges(s.Id)
	if len(edges) == 0 {
		return s.Id
	}
	return edges[0].To
}

// calleeEntry names the entry point of the non-terminal a KernelCall /
// InternalCall state invokes (§4.3.5 "the runtime ... gotos m's entry").
// That entry lives in a different Host — the one built for non-terminal
// m itself — so it is named independently of this host's state ids, by
// m's stable friendly name, the same convention Lower uses for its own
// root state (entryName).
func calleeEntry(h *graph.Host, s *graph.GraphState, names map[graph.StateId]string) string {
	if s.Type.Kind == graph.KernelCall || s.Type.Kind == graph.InternalCall {
		return "entry_" + h.DB.NonTermFriendlyName(s.Type.NonTerm)
	}
	return names[s.Id]
}
