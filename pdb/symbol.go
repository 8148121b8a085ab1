package pdb

import "fmt"

// NonTermId, RuleId and TermId are opaque 32-bit handles into a PDB,
// stable for the lifetime of the program once assigned (§3).
type NonTermId uint32

// RuleId indexes PDB.rules.
type RuleId uint32

// TermId maps 1:1 to a scanner-synthesized token (§3).
type TermId uint32

// SymbolKind tags the variant carried by a SymbolId.
type SymbolKind uint8

const (
	SymTerminal SymbolKind = iota
	SymNonTerminal
	SymTokenNonTerminal
	SymClassSpace
	SymClassTab
	SymClassNewline
	SymClassIdentifier
	SymClassNumber
	SymClassSymbol
	SymChar
	SymCodepoint
	SymEndOfInput
	SymDefault
	SymUndefined
)

// IsClass reports whether k is one of the six generic character classes.
func (k SymbolKind) IsClass() bool {
	switch k {
	case SymClassSpace, SymClassTab, SymClassNewline, SymClassIdentifier, SymClassNumber, SymClassSymbol:
		return true
	}
	return false
}

// PrecedenceTier orders symbol groups for conflict resolution (§4.3.1),
// highest first: ExclusiveDefined > Defined > TokenNonTerminal > Class.
type PrecedenceTier uint8

const (
	TierClass PrecedenceTier = iota
	TierTokenNonTerminal
	TierDefined
	TierExclusiveDefined
)

// SymbolId is the tagged-variant symbol type of §3: Terminal(TermId),
// NonTerminal(NonTermId), TokenNonTerminal(NonTermId), one of six character
// classes, Char(rune), Codepoint(rune), EndOfInput, Default or Undefined.
// Every variant carries a precedence used to resolve occlusion and
// completion conflicts.
type SymbolId struct {
	Kind       SymbolKind
	Term       TermId    // valid iff Kind == SymTerminal
	NonTerm    NonTermId // valid iff Kind == SymNonTerminal || SymTokenNonTerminal
	Char       rune      // valid iff Kind == SymChar || SymCodepoint
	Precedence uint16
	Exclusive  bool // "ExclusiveDefined": this literal occludes nothing beneath it
}

// Terminal constructs a terminal SymbolId.
func Terminal(t TermId, precedence uint16) SymbolId {
	return SymbolId{Kind: SymTerminal, Term: t, Precedence: precedence}
}

// NonTerminalSym constructs a non-terminal SymbolId.
func NonTerminalSym(n NonTermId) SymbolId {
	return SymbolId{Kind: SymNonTerminal, NonTerm: n}
}

// TokenNonTerminalSym constructs a scanner-mode token-non-terminal SymbolId.
func TokenNonTerminalSym(n NonTermId) SymbolId {
	return SymbolId{Kind: SymTokenNonTerminal, NonTerm: n, Precedence: uint16(TierTokenNonTerminal)}
}

// CharSym constructs a literal single-character SymbolId.
func CharSym(c rune, exclusive bool) SymbolId {
	prec := uint16(TierDefined)
	if exclusive {
		prec = uint16(TierExclusiveDefined)
	}
	return SymbolId{Kind: SymChar, Char: c, Precedence: prec, Exclusive: exclusive}
}

// CodepointSym constructs a literal Unicode-codepoint SymbolId.
func CodepointSym(c rune) SymbolId {
	return SymbolId{Kind: SymCodepoint, Char: c, Precedence: uint16(TierDefined)}
}

// ClassSym constructs one of the six generic-class SymbolIds.
func ClassSym(k SymbolKind) SymbolId {
	if !k.IsClass() {
		panic("pdb: ClassSym called with a non-class SymbolKind")
	}
	return SymbolId{Kind: k, Precedence: uint16(TierClass)}
}

// EndOfInput is the reserved sentinel symbol for end-of-input.
var EndOfInput = SymbolId{Kind: SymEndOfInput}

// DefaultSym is the catch-all symbol used in a match's "default" clause.
var DefaultSym = SymbolId{Kind: SymDefault}

// UndefinedSym is the zero-value placeholder symbol.
var UndefinedSym = SymbolId{Kind: SymUndefined}

// Tier returns the precedence tier this symbol occupies for conflict
// resolution (§4.3.1).
func (s SymbolId) Tier() PrecedenceTier {
	switch s.Kind {
	case SymChar, SymCodepoint:
		if s.Exclusive {
			return TierExclusiveDefined
		}
		return TierDefined
	case SymTokenNonTerminal:
		return TierTokenNonTerminal
	default:
		return TierClass
	}
}

// IsTerminal reports whether s can appear at the dot of a shift item, i.e.
// is anything other than a plain non-terminal.
func (s SymbolId) IsTerminal() bool {
	return s.Kind != SymNonTerminal
}

// Occludes reports whether s occludes other, i.e. every input accepted by
// s is also accepted by other (§4.3.1, GLOSSARY "Occlusion"):
//   - Char/Codepoint occludes the generic class its value falls into.
//   - TokenNonTerminal is never reported as occluding a class.
func (s SymbolId) Occludes(other SymbolId) bool {
	if !other.Kind.IsClass() {
		return false
	}
	switch s.Kind {
	case SymChar, SymCodepoint:
		return classOf(s.Char) == other.Kind
	case SymTokenNonTerminal:
		// A SymbolId does not carry the scanner rule behind a token
		// non-terminal, so which classes it could emit is not known here.
		return false
	}
	return false
}

// classOf returns the generic character class c belongs to.
func classOf(c rune) SymbolKind {
	switch {
	case c == ' ':
		return SymClassSpace
	case c == '\t':
		return SymClassTab
	case c == '\n' || c == '\r':
		return SymClassNewline
	case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		return SymClassIdentifier
	case c >= '0' && c <= '9':
		return SymClassNumber
	default:
		return SymClassSymbol
	}
}

func (s SymbolId) String() string {
	switch s.Kind {
	case SymTerminal:
		return fmt.Sprintf("T(%d)", s.Term)
	case SymNonTerminal:
		return fmt.Sprintf("N(%d)", s.NonTerm)
	case SymTokenNonTerminal:
		return fmt.Sprintf("TN(%d)", s.NonTerm)
	case SymChar:
		return fmt.Sprintf("Char(%q)", s.Char)
	case SymCodepoint:
		return fmt.Sprintf("Codepoint(%d)", s.Char)
	case SymEndOfInput:
		return "EOF"
	case SymDefault:
		return "default"
	case SymClassSpace:
		return "c:space"
	case SymClassTab:
		return "c:tab"
	case SymClassNewline:
		return "c:nl"
	case SymClassIdentifier:
		return "c:id"
	case SymClassNumber:
		return "c:num"
	case SymClassSymbol:
		return "c:sym"
	default:
		return "undefined"
	}
}

// Equal reports whether two SymbolIds denote the same symbol, ignoring
// precedence (which is derived, not part of identity).
func (s SymbolId) Equal(o SymbolId) bool {
	return s.Kind == o.Kind && s.Term == o.Term && s.NonTerm == o.NonTerm && s.Char == o.Char
}
