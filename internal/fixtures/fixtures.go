/*
Package fixtures builds small, hand-written GrammarInputs used across the
core's test suites (pdb, item, graph, lower) — the Go counterpart of
gorgo's lr.NewGrammarBuilder test grammars (e.g. lr/tables_test.go's
"Sum -> Sum '+' Mult | Mult" family), adapted to construct pdb.GrammarInput
values directly rather than go through a builder API, since the core's
grammar input is produced upstream by a grammar parser that is out of
scope here (§1 Non-goal: "not a grammar front-end").
*/
package fixtures

import (
	"github.com/npillmayer/radlrgo"
	"github.com/npillmayer/radlrgo/pdb"
)

// NonTerms indexes the non-terminals built by a fixture, keyed by the name
// passed to GrammarBuilder.NonTerm, so test code can refer to them without
// hard-coding NonTermId values.
type NonTerms map[string]pdb.NonTermId

// GrammarBuilder is a minimal, test-only grammar assembler: just enough to
// express the fixture grammars below without duplicating the normalization
// logic (name interning, rule-list grouping) in every test.
type GrammarBuilder struct {
	name     string
	interner *radlrgo.Interner
	names    []string
	byName   NonTerms
	rules    [][]pdb.RuleId
	allRules []pdb.Rule
}

// NewGrammarBuilder starts a fixture grammar named name.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{
		name:     name,
		interner: radlrgo.NewInterner(),
		byName:   make(NonTerms),
	}
}

// NonTerm declares (or returns the existing id for) a non-terminal.
func (b *GrammarBuilder) NonTerm(name string) pdb.NonTermId {
	if id, ok := b.byName[name]; ok {
		return id
	}
	id := pdb.NonTermId(len(b.names))
	b.names = append(b.names, name)
	b.rules = append(b.rules, nil)
	b.byName[name] = id
	return id
}

// Rule appends a production nt -> syms to the grammar, returning its id.
func (b *GrammarBuilder) Rule(nt pdb.NonTermId, syms ...pdb.SymbolId) pdb.RuleId {
	rs := make([]pdb.RuleSymbol, len(syms))
	for i, s := range syms {
		rs[i] = pdb.RuleSymbol{Sym: s, OriginalIndex: uint16(i)}
	}
	r := pdb.RuleId(len(b.allRules))
	b.allRules = append(b.allRules, pdb.Rule{NonTerm: nt, Symbols: rs})
	b.rules[nt] = append(b.rules[nt], r)
	return r
}

// Terminal interns name and returns a defined Char terminal symbol for it
// (tests only ever need symbol identity, not lexeme matching).
func (b *GrammarBuilder) Terminal(ch rune) pdb.SymbolId {
	return pdb.CharSym(ch, false)
}

// Build finalizes the fixture into a normalized GrammarInput and its name
// index, ready for pdb.Build.
func (b *GrammarBuilder) Build() (pdb.GrammarInput, NonTerms) {
	return pdb.GrammarInput{
		Name:         b.name,
		Interner:     b.interner,
		NonTermNames: append([]string(nil), b.names...),
		NonTermRules: b.rules,
		Rules:        b.allRules,
		Valid:        true,
	}, b.byName
}

// ExprGrammar builds the classic left-recursive expression grammar used
// throughout gorgo's own lr package tests:
//
//	Goal   -> Sum
//	Sum    -> Sum '+' Mult | Mult
//	Mult   -> Mult '*' Value | Value
//	Value  -> '(' Sum ')' | 'n'
//
// It exercises left recursion (I6), multi-level precedence climbing, and
// a parenthesized recursive case in one compact fixture.
func ExprGrammar() (pdb.GrammarInput, NonTerms) {
	b := NewGrammarBuilder("expr")
	goal := b.NonTerm("Goal")
	sum := b.NonTerm("Sum")
	mult := b.NonTerm("Mult")
	value := b.NonTerm("Value")

	b.Rule(goal, pdb.NonTerminalSym(sum))
	b.Rule(sum, pdb.NonTerminalSym(sum), b.Terminal('+'), pdb.NonTerminalSym(mult))
	b.Rule(sum, pdb.NonTerminalSym(mult))
	b.Rule(mult, pdb.NonTerminalSym(mult), b.Terminal('*'), pdb.NonTerminalSym(value))
	b.Rule(mult, pdb.NonTerminalSym(value))
	b.Rule(value, b.Terminal('('), pdb.NonTerminalSym(sum), b.Terminal(')'))
	b.Rule(value, b.Terminal('n'))

	return b.Build()
}

// AmbiguousIfGrammar builds the textbook dangling-else grammar, the
// minimal fixture for exercising peek / LR-inline / Fork resolution (§4.3.3,
// §4.3.4):
//
//	Goal -> Stmt
//	Stmt -> 'i' Stmt 'e' Stmt | 'i' Stmt | 'x'
func AmbiguousIfGrammar() (pdb.GrammarInput, NonTerms) {
	b := NewGrammarBuilder("dangling-else")
	goal := b.NonTerm("Goal")
	stmt := b.NonTerm("Stmt")

	b.Rule(goal, pdb.NonTerminalSym(stmt))
	b.Rule(stmt, b.Terminal('i'), pdb.NonTerminalSym(stmt), b.Terminal('e'), pdb.NonTerminalSym(stmt))
	b.Rule(stmt, b.Terminal('i'), pdb.NonTerminalSym(stmt))
	b.Rule(stmt, b.Terminal('x'))

	return b.Build()
}

// EmptyRuleGrammar builds a grammar containing an epsilon production, the
// minimal fixture for I2/I3's "rule of length 0" edge case:
//
//	Goal -> Opt 'x'
//	Opt  -> 'a' | ε
func EmptyRuleGrammar() (pdb.GrammarInput, NonTerms) {
	b := NewGrammarBuilder("optional")
	goal := b.NonTerm("Goal")
	opt := b.NonTerm("Opt")

	b.Rule(goal, pdb.NonTerminalSym(opt), b.Terminal('x'))
	b.Rule(opt, b.Terminal('a'))
	b.Rule(opt) // epsilon: zero symbols

	return b.Build()
}

// SingleTokenGrammar builds the smallest possible non-trivial grammar
// (§8's "single-token grammar" scenario): one rule, one terminal.
func SingleTokenGrammar() (pdb.GrammarInput, NonTerms) {
	b := NewGrammarBuilder("single-token")
	goal := b.NonTerm("Goal")
	b.Rule(goal, b.Terminal('a'))
	return b.Build()
}

// RightRecursiveGrammar builds a right-recursive list grammar, the
// counterpart fixture to ExprGrammar's left recursion (I6 RecursesNotAtStart).
//
//	Goal -> List
//	List -> 'a' List | 'a'
func RightRecursiveGrammar() (pdb.GrammarInput, NonTerms) {
	b := NewGrammarBuilder("right-recursive-list")
	goal := b.NonTerm("Goal")
	list := b.NonTerm("List")

	b.Rule(goal, pdb.NonTerminalSym(list))
	b.Rule(list, b.Terminal('a'), pdb.NonTerminalSym(list))
	b.Rule(list, b.Terminal('a'))

	return b.Build()
}
