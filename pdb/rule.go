package pdb

import "github.com/npillmayer/radlrgo"

// RuleSymbol is one (SymbolId, originalIndex) pair within a rule body
// (§3): originalIndex survives symbol-group merging so diagnostics and
// AST construction can still point back at the grammar author's source
// position.
type RuleSymbol struct {
	Sym           SymbolId
	OriginalIndex uint16
}

// Rule is an ordered sequence of RuleSymbols reducing to one non-terminal,
// with an optional AST-token reference (out of scope here, carried only so
// ReductionType classification in build.go can see whether one is present).
type Rule struct {
	NonTerm     NonTermId
	Symbols     []RuleSymbol
	HasASTToken bool
}

// Len returns the number of symbols in the rule's right-hand side.
func (r Rule) Len() uint16 {
	return uint16(len(r.Symbols))
}

// TokenData associates a defined terminal with the scanner non-terminal
// that recognizes it (§3).
type TokenData struct {
	Sym            SymbolId
	DisplayName    radlrgo.IString
	ScannerNonTerm NonTermId
	Term           TermId
}

// EntryPoint names one exported start symbol of the grammar (§3, §8
// scenario 6).
type EntryPoint struct {
	NonTerm      NonTermId
	Guid         string // process-unique id: a uuid.New() string assigned in Build
	FriendlyName radlrgo.IString
	EntryState   radlrgo.IString
	ExitState    radlrgo.IString
	ExportId     uint32
}

// ReductionType classifies a complete item's reduction behaviour (§4.1).
type ReductionType uint8

const (
	// LeftRecursive: the rule is left-recursive (its closure reaches its
	// own non-terminal from the start position).
	LeftRecursive ReductionType = iota
	// SemanticAction: the rule carries an AST construction body.
	SemanticAction
	// SingleTerminal: the rule has exactly one symbol, a terminal.
	SingleTerminal
	// SingleNonTerminal: the rule has exactly one symbol, a non-terminal.
	SingleNonTerminal
	// Mixed: none of the above apply.
	Mixed
)

func (rt ReductionType) String() string {
	switch rt {
	case LeftRecursive:
		return "left-recursive"
	case SemanticAction:
		return "semantic-action"
	case SingleTerminal:
		return "single-terminal"
	case SingleNonTerminal:
		return "single-nonterminal"
	default:
		return "mixed"
	}
}

// RecursionType is a two-bit set classifying how a non-terminal recurses
// into itself (§4.1 "Recursion bitset", I6).
type RecursionType uint8

const (
	// RecursesAtStart (bit0): some item of n is at sym_index==0 and its
	// closure reaches n — left recursion is present.
	RecursesAtStart RecursionType = 1 << iota
	// RecursesNotAtStart (bit1): some item not at start has a closure
	// reaching n — right (or general) recursion is present.
	RecursesNotAtStart
)

// IsLeftRecursive reports whether bit0 is set.
func (rt RecursionType) IsLeftRecursive() bool { return rt&RecursesAtStart != 0 }

// IsRightRecursive reports whether bit1 is set.
func (rt RecursionType) IsRightRecursive() bool { return rt&RecursesNotAtStart != 0 }
