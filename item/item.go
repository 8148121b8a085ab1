/*
Package item implements the Item algebra of §4.2: the universal currency
passed between pdb and graph. An Item is a cursor position within a rule,
plus provenance (origin, origin_state, goal) describing which top-level
goal it descends from as it flows between graph states.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package item

import (
	"fmt"

	"github.com/npillmayer/radlrgo/pdb"
)

// Item is a position (the "dot") within a rule: A → α • β (GLOSSARY). It
// is small enough (32 bytes on 64-bit platforms, within the 24–32 byte
// budget of §5) to pass by value throughout the graph builder.
type Item struct {
	Rule     pdb.RuleId
	Len      uint16
	SymIndex uint16

	// Origin, OriginState and Goal are provenance: which lane/goal (§4.3,
	// GLOSSARY "Lane / Goal") this item descends from, and which graph
	// state it entered the current traversal from. They travel with the
	// item rather than through a side-table (§9 "Per-item closure link
	// side-table" → "store provenance inside the Item value itself").
	Origin      uint32
	OriginState uint32
	Goal        uint32

	db *pdb.PDB
}

// New creates an Item at the given rule and dot position, with no
// provenance set. db must be the PDB the rule belongs to.
func New(db *pdb.PDB, r pdb.RuleId, symIndex uint16) Item {
	return Item{Rule: r, Len: db.RuleLen(r), SymIndex: symIndex, db: db}
}

// StartItem creates the start item (dot at position 0) of rule r, tagged
// with the given goal id (§4.3 "Seeds worklist with a Start state whose
// kernel is the set of start items of entry_nonterm ... each tagged with a
// unique goal id").
func StartItem(db *pdb.PDB, r pdb.RuleId, goal uint32) Item {
	it := New(db, r, 0)
	it.Goal = goal
	return it
}

// IsComplete reports whether the dot is at the end of the rule (I1).
func (i Item) IsComplete() bool {
	return i.SymIndex == i.Len
}

// Increment advances the dot by one position. Returns ok=false if the item
// is already complete.
func (i Item) Increment() (Item, bool) {
	if i.IsComplete() {
		return i, false
	}
	i.SymIndex++
	return i, true
}

// Decrement moves the dot back by one position. Returns ok=false if the
// item is already at the start.
func (i Item) Decrement() (Item, bool) {
	if i.SymIndex == 0 {
		return i, false
	}
	i.SymIndex--
	return i, true
}

// Sym returns the symbol at the dot, or pdb.EndOfInput if the item is
// complete.
func (i Item) Sym() pdb.SymbolId {
	if i.IsComplete() {
		return pdb.EndOfInput
	}
	return i.db.Rule(i.Rule).Symbols[i.SymIndex].Sym
}

// Type classifies the symbol at the dot (§4.2 get_type).
type Type uint8

const (
	TypeTerminal Type = iota
	TypeNonTerminal
	TypeTokenNonTerminal
	TypeCompleted
)

// TypeInfo is the result of GetType: a Type tag plus the payload relevant
// to it (the symbol for terminals, the non-terminal for the rest).
type TypeInfo struct {
	Kind       Type
	Sym        pdb.SymbolId
	NonTerm    pdb.NonTermId
}

// GetType classifies this item's dot position (§4.2 get_type): Terminal,
// NonTerminal, TokenNonTerminal(NonTermId, SymbolId), or
// Completed(NonTermId).
func (i Item) GetType() TypeInfo {
	if i.IsComplete() {
		return TypeInfo{Kind: TypeCompleted, NonTerm: i.Nonterm()}
	}
	sym := i.Sym()
	switch sym.Kind {
	case pdb.SymNonTerminal:
		return TypeInfo{Kind: TypeNonTerminal, Sym: sym, NonTerm: sym.NonTerm}
	case pdb.SymTokenNonTerminal:
		return TypeInfo{Kind: TypeTokenNonTerminal, Sym: sym, NonTerm: sym.NonTerm}
	default:
		return TypeInfo{Kind: TypeTerminal, Sym: sym}
	}
}

// Nonterm returns the non-terminal this item's rule reduces to.
func (i Item) Nonterm() pdb.NonTermId {
	return i.db.RuleNonTerm(i.Rule)
}

// Align preserves (Rule, Len, SymIndex) but copies provenance
// (Origin/OriginState/Goal) from other; used so items retain their
// provenance as they flow between states (§4.2 align).
func (i Item) Align(other Item) Item {
	i.Origin = other.Origin
	i.OriginState = other.OriginState
	i.Goal = other.Goal
	return i
}

// ToOrigin sets the origin provenance field.
func (i Item) ToOrigin(origin uint32) Item {
	i.Origin = origin
	return i
}

// ToOriginState sets the origin-state provenance field.
func (i Item) ToOriginState(state uint32) Item {
	i.OriginState = state
	return i
}

// ToOOS ("to out-of-scope") marks an item as introduced only to handle the
// follow of a non-terminal at the edge of the current entry's reachable
// language (GLOSSARY "Out-of-scope item"); it reuses the Origin field as a
// sentinel since out-of-scope items never reduce inside the current graph.
const outOfScopeOrigin = ^uint32(0)

func (i Item) ToOOS() Item {
	i.Origin = outOfScopeOrigin
	return i
}

// IsOutOfScope reports whether ToOOS was applied to this item.
func (i Item) IsOutOfScope() bool {
	return i.Origin == outOfScopeOrigin
}

// Prefix returns the symbols consumed so far (before the dot).
func (i Item) Prefix() []pdb.SymbolId {
	rule := i.db.Rule(i.Rule)
	out := make([]pdb.SymbolId, i.SymIndex)
	for k := uint16(0); k < i.SymIndex; k++ {
		out[k] = rule.Symbols[k].Sym
	}
	return out
}

// Closure returns this item's cached closure (§4.1), re-expanded to full
// Items carrying the seed's provenance (§4.2 closure).
func (i Item) Closure() []Item {
	static := i.db.GetClosure(i.Rule, i.SymIndex)
	out := make([]Item, len(static))
	for k, s := range static {
		it := New(i.db, s.Rule, s.SymIndex)
		out[k] = it.Align(i)
	}
	return out
}

// ToStatic projects this item down to its storable (Rule, SymIndex)
// identity, stripping provenance.
func (i Item) ToStatic() pdb.StaticItem {
	return pdb.StaticItem{Rule: i.Rule, SymIndex: i.SymIndex}
}

// DB returns the PDB this item was created against.
func (i Item) DB() *pdb.PDB { return i.db }

func (i Item) String() string {
	rule := i.db.Rule(i.Rule)
	return fmt.Sprintf("[%s -> %s . %s]@g%d",
		i.db.NonTermFriendlyName(rule.NonTerm), symsString(rule.Symbols[:i.SymIndex]), symsString(rule.Symbols[i.SymIndex:]), i.Goal)
}

func symsString(syms []pdb.RuleSymbol) string {
	s := ""
	for k, rs := range syms {
		if k > 0 {
			s += " "
		}
		s += rs.Sym.String()
	}
	return s
}
