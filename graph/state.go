package graph

import (
	"github.com/npillmayer/radlrgo/item"
	"github.com/npillmayer/radlrgo/pdb"
)

// StateId is an opaque handle to a GraphState within a GraphHost. The high
// bit marks a "goto-variant" state — the companion dispatch state attached
// to a state with non-terminal items (§3, §4.3.6).
type StateId uint32

const gotoVariantBit StateId = 1 << 31

// AsGoto returns the goto-variant id paired with s.
func (s StateId) AsGoto() StateId { return s | gotoVariantBit }

// IsGotoVariant reports whether s names a goto sub-state.
func (s StateId) IsGotoVariant() bool { return s&gotoVariantBit != 0 }

// Base strips the goto-variant bit, returning the id of the owning state.
func (s StateId) Base() StateId { return s &^ gotoVariantBit }

// StateKind tags the variant carried by a StateType (§4.3).
type StateKind uint8

const (
	Start StateKind = iota
	Shift
	KernelShift
	KernelCall
	InternalCall
	NonTerminalShiftLoop
	NonTerminalResolve
	NonTerminalComplete
	NonTermCompleteOOS
	ScannerCompleteOOS
	Peek
	PeekEndComplete
	ShiftPrefix
	DifferedReduce
	Reduce
	AssignToken
	AssignAndFollow
	Complete
	Fail
	Fork
	ForkBase
	Follow
	BreadcrumbTransition
	BreadcrumbShiftCompletion
	BreadcrumbEndCompletion
)

var stateKindNames = map[StateKind]string{
	Start:                     "Start",
	Shift:                     "Shift",
	KernelShift:               "KernelShift",
	KernelCall:                "KernelCall",
	InternalCall:              "InternalCall",
	NonTerminalShiftLoop:      "NonTerminalShiftLoop",
	NonTerminalResolve:        "NonTerminalResolve",
	NonTerminalComplete:       "NonTerminalComplete",
	NonTermCompleteOOS:        "NonTermCompleteOOS",
	ScannerCompleteOOS:        "ScannerCompleteOOS",
	Peek:                      "Peek",
	PeekEndComplete:           "PeekEndComplete",
	ShiftPrefix:               "ShiftPrefix",
	DifferedReduce:            "DifferedReduce",
	Reduce:                    "Reduce",
	AssignToken:               "AssignToken",
	AssignAndFollow:           "AssignAndFollow",
	Complete:                  "Complete",
	Fail:                      "Fail",
	Fork:                      "Fork",
	ForkBase:                  "ForkBase",
	Follow:                    "Follow",
	BreadcrumbTransition:      "BreadcrumbTransition",
	BreadcrumbShiftCompletion: "BreadcrumbShiftCompletion",
	BreadcrumbEndCompletion:   "BreadcrumbEndCompletion",
}

func (k StateKind) String() string { return stateKindNames[k] }

// StateType is the tagged state-variant type of §4.3: most kinds carry no
// payload; KernelCall/InternalCall carry a target non-terminal, Reduce
// carries a rule and completion count, PeekEndComplete/Fork-family carry a
// goal id. AssignToken states carry the rule they complete in Rule; the
// builder sets Term on no state.
type StateType struct {
	Kind      StateKind
	NonTerm   pdb.NonTermId
	Rule      pdb.RuleId
	Completes uint32
	Goal      uint32
	Term      pdb.TermId
}

// GraphState is one node of a GraphHost (§3). Kernels, not full closures,
// are stored: the closure is recomputed on demand by the builder, matching
// the PDB's "materialize once, re-derive per use" philosophy for anything
// that isn't itself cached.
type GraphState struct {
	Id          StateId
	Type        StateType
	IncomingSym pdb.SymbolId
	Parent      StateId
	HasParent   bool
	Kernel      []item.Item
	// ResolveItems holds the items a Peek state resolves between, kept
	// alongside the (already-incremented) Kernel for diagnostics.
	ResolveItems []item.Item
	GotoState    StateId
	HasGoto      bool
	Hash         uint64
	// GoalNonterm is the non-terminal this state's worklist belongs to —
	// the entry non-terminal for a parser graph, or the scanner's
	// synthetic root non-terminal for a scanner graph.
	GoalNonterm pdb.NonTermId
}

// IsErrorState reports whether s has an empty kernel, the CFSM-derived
// notion of an unreachable/dead configuration (mirrors gorgo's
// CFSMState.isErrorState).
func (s *GraphState) IsErrorState() bool {
	return len(s.Kernel) == 0
}
