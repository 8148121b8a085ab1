/*
Package pdb implements stage (A) of the parser-construction pipeline: it
turns a normalized grammar into a ParserDatabase (PDB) — an immutable,
shared index of non-terminals, rules, symbols, item closures, follow sets
and recursion classifications that every later stage reads but never
mutates (§3, §4.1).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package pdb

import (
	"github.com/npillmayer/radlrgo"
	"github.com/npillmayer/radlrgo/internal/trace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'radlr.pdb'.
func tracer() tracing.Trace { return trace.For("pdb") }

// StaticItem is an Item projected down to its storable identity: the rule
// it belongs to and the dot position within it (§3). Provenance fields
// (origin, origin_state, goal) are not part of a StaticItem — they are
// re-attached by the caller when the closure is read back out (item.Item's
// Closure method does this).
type StaticItem struct {
	Rule     RuleId
	SymIndex uint16
}

// GrammarInput is the normalized grammar handed to Build: the external
// collaborator product named in spec §1 ("the grammar parser and AST ...
// produces a normalized rule list consumed by stage A").
type GrammarInput struct {
	Name         string
	Interner     *radlrgo.Interner
	NonTermNames []string    // index == NonTermId
	NonTermRules [][]RuleId  // index == NonTermId
	Rules        []Rule      // index == RuleId
	Tokens       []TokenData // scanner-synthesized tokens
	EntryPoints  []EntryPointSpec
	CustomStates map[NonTermId]string
	Valid        bool
}

// EntryPointSpec is the builder-facing counterpart of EntryPoint, before
// names have been interned and a guid assigned.
type EntryPointSpec struct {
	NonTerm      NonTermId
	FriendlyName string
	ExportId     uint32
}

// PDB is the immutable ParserDatabase built by Build. Once returned, a PDB
// is shared read-only by every graph build for the grammar (§5): multiple
// goroutines may call its accessors concurrently.
type PDB struct {
	name     string
	interner *radlrgo.Interner
	valid    bool

	nonTermName  []radlrgo.IString
	nonTermRules [][]RuleId

	rules []Rule

	tokens []TokenData

	entryPoints  []EntryPoint
	customStates map[NonTermId]radlrgo.IString

	// closures[(r,i)] is the cached closure of item (r, i), excluding the
	// seed and any complete items (I4).
	closures map[StaticItem][]StaticItem

	// follow[n] is the cached follow set of non-terminal n (I5).
	follow map[NonTermId][]StaticItem

	// recursion[n] is the recursion bitset of non-terminal n (I6).
	recursion map[NonTermId]RecursionType

	// reduceType[r] is the ReductionType of rule r's complete item (§4.1).
	reduceType []ReductionType
}

// Valid reports whether the underlying grammar was well-formed. A PDB
// built from an invalid grammar (GrammarInput.Valid == false) carries
// Valid() == false; downstream stages must refuse to build from it (§4.1
// contract "Failure").
func (p *PDB) Valid() bool { return p.valid }

// Name returns the grammar's name.
func (p *PDB) Name() string { return p.name }

// StringStore returns the interner shared by this PDB and every consumer
// of it (§6.2 string_store()).
func (p *PDB) StringStore() *radlrgo.Interner { return p.interner }

// NonTermCount returns the number of non-terminals in the grammar.
func (p *PDB) NonTermCount() int { return len(p.nonTermName) }

// NonTermSym returns the NonTerminal SymbolId for n (§6.2 nonterm_sym).
func (p *PDB) NonTermSym(n NonTermId) SymbolId { return NonTerminalSym(n) }

// NonTermGuidName returns the grammar-author-facing name of n, as
// originally written (§6.2 nonterm_guid_name).
func (p *PDB) NonTermGuidName(n NonTermId) string {
	return p.interner.Lookup(p.nonTermName[n])
}

// NonTermFriendlyName returns a display name for n; identical to the guid
// name unless a later stage has renamed it for diagnostics (§6.2
// nonterm_friendly_name).
func (p *PDB) NonTermFriendlyName(n NonTermId) string {
	return p.NonTermGuidName(n)
}

// NonTermRules returns the rule ids reducing to n, in declaration order
// (§6.2 nonterm_rules).
func (p *PDB) NonTermRules(n NonTermId) []RuleId {
	return p.nonTermRules[n]
}

// Rule returns the rule body for r (§6.2 rule).
func (p *PDB) Rule(r RuleId) Rule {
	return p.rules[r]
}

// RuleCount returns the number of rules in the grammar.
func (p *PDB) RuleCount() int { return len(p.rules) }

// RuleNonTerm returns the non-terminal r reduces to (§6.2 rule_nonterm).
func (p *PDB) RuleNonTerm(r RuleId) NonTermId {
	return p.rules[r].NonTerm
}

// RuleLen returns the number of symbols in r's right-hand side (I2).
func (p *PDB) RuleLen(r RuleId) uint16 {
	return p.rules[r].Len()
}

// GetClosure returns the cached closure of item (r, i) (§6.2 get_closure).
func (p *PDB) GetClosure(r RuleId, symIndex uint16) []StaticItem {
	return p.closures[StaticItem{Rule: r, SymIndex: symIndex}]
}

// NonTermFollowItems returns the cached follow set of n (§6.2
// nonterm_follow_items).
func (p *PDB) NonTermFollowItems(n NonTermId) []StaticItem {
	return p.follow[n]
}

// NonTermRecursionType returns the recursion bitset of n (§6.2
// nonterm_recursion_type).
func (p *PDB) NonTermRecursionType(n NonTermId) RecursionType {
	return p.recursion[n]
}

// GetReduceType returns the ReductionType of rule r (§6.2 get_reduce_type).
func (p *PDB) GetReduceType(r RuleId) ReductionType {
	return p.reduceType[r]
}

// TokData returns the TokenData for a given terminal (§6.2 tok_data).
func (p *PDB) TokData(t TermId) (TokenData, bool) {
	for _, td := range p.tokens {
		if td.Term == t {
			return td, true
		}
	}
	return TokenData{}, false
}

// TokVal returns the bytecode discriminator for a terminal (§6.2 tok_val,
// §6.3 to_val): defined terminals are numbered directly by their TermId,
// offset past the fixed low-numbered class space.
func (p *PDB) TokVal(t TermId) int32 {
	return int32(t) + classSpaceSize
}

// classSpaceSize is the number of reserved low ids for generic classes
// (§6.3): Space, HorizontalTab, NewLine, Identifier, Number, Symbol.
const classSpaceSize = 6

// ToVal returns the bytecode discriminator for any SymbolId (§6.3).
func (p *PDB) ToVal(s SymbolId) int32 {
	switch s.Kind {
	case SymClassSpace:
		return 0
	case SymClassTab:
		return 1
	case SymClassNewline:
		return 2
	case SymClassIdentifier:
		return 3
	case SymClassNumber:
		return 4
	case SymClassSymbol:
		return 5
	case SymTerminal:
		return p.TokVal(s.Term)
	case SymChar, SymCodepoint:
		// Literal symbols live charSpaceOffset past the class space, so a
		// literal byte/codepoint does not collide with a defined terminal's
		// TokVal or a non-terminal's value while the grammar has fewer
		// than 1<<20 terminals and fewer than 1<<20 non-terminals.
		return int32(s.Char) + classSpaceSize + charSpaceOffset
	case SymEndOfInput:
		return -1
	case SymNonTerminal, SymTokenNonTerminal:
		return int32(s.NonTerm) + classSpaceSize + 1<<20
	default:
		return -2
	}
}

// charSpaceOffset separates literal char/codepoint bytecode values from the
// defined-terminal range (§6.3); see ToVal for the sizes up to which the
// ranges stay disjoint.
const charSpaceOffset = 1 << 21

// EntryPoints returns every exported entry point (§6.2 entry_points).
func (p *PDB) EntryPoints() []EntryPoint {
	return p.entryPoints
}

// EntryNontermKeys returns the non-terminal ids of every entry point, in
// the same order as EntryPoints (§6.2 entry_nterm_keys).
func (p *PDB) EntryNontermKeys() []NonTermId {
	keys := make([]NonTermId, len(p.entryPoints))
	for i, ep := range p.entryPoints {
		keys[i] = ep.NonTerm
	}
	return keys
}

// CustomState returns a custom-state override name for n, if the grammar
// specified one (§6.2 custom_state(n)); see SUPPLEMENTED FEATURES item 3
// in SPEC_FULL.md.
func (p *PDB) CustomState(n NonTermId) (string, bool) {
	if is, ok := p.customStates[n]; ok {
		return p.interner.Lookup(is), true
	}
	return "", false
}
