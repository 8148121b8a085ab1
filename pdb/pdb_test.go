package pdb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/npillmayer/radlrgo/internal/fixtures"
	"github.com/npillmayer/radlrgo/pdb"
)

func TestBuild_ExprGrammar(t *testing.T) {
	input, names := fixtures.ExprGrammar()
	db := pdb.Build(input, false)

	assert.True(t, db.Valid())
	assert.Equal(t, 4, db.NonTermCount())
	assert.Equal(t, 7, db.RuleCount())

	sum := names["Sum"]
	assert.True(t, db.NonTermRecursionType(sum).IsLeftRecursive())
	assert.False(t, db.NonTermRecursionType(sum).IsRightRecursive())
}

func TestBuild_RightRecursiveGrammar(t *testing.T) {
	input, names := fixtures.RightRecursiveGrammar()
	db := pdb.Build(input, false)

	list := names["List"]
	assert.True(t, db.Valid())
	assert.True(t, db.NonTermRecursionType(list).IsRightRecursive())
	assert.False(t, db.NonTermRecursionType(list).IsLeftRecursive())
}

func TestBuild_EmptyRuleGrammar(t *testing.T) {
	input, names := fixtures.EmptyRuleGrammar()
	db := pdb.Build(input, false)

	assert.True(t, db.Valid())
	opt := names["Opt"]
	rules := db.NonTermRules(opt)
	assert.Len(t, rules, 2)

	var sawEpsilon bool
	for _, r := range rules {
		if db.RuleLen(r) == 0 {
			sawEpsilon = true
		}
	}
	assert.True(t, sawEpsilon, "expected one epsilon rule for Opt")
}

func TestGetClosure_IncludesDescendants(t *testing.T) {
	input, names := fixtures.ExprGrammar()
	db := pdb.Build(input, false)

	goal := names["Goal"]
	rules := db.NonTermRules(goal)
	closure := db.GetClosure(rules[0], 0)

	// Goal -> . Sum should close over every alternative of Sum, Mult and
	// Value transitively (I4).
	assert.NotEmpty(t, closure)
	sum := names["Sum"]
	var sawSumAlt bool
	for _, it := range closure {
		if db.RuleNonTerm(it.Rule) == sum {
			sawSumAlt = true
		}
	}
	assert.True(t, sawSumAlt)
}

func TestNonTermFollowItems_NoOverflowOnAcyclicGrammar(t *testing.T) {
	input, names := fixtures.ExprGrammar()
	db := pdb.Build(input, false)
	assert.True(t, db.Valid())
	assert.NotEmpty(t, db.NonTermFollowItems(names["Sum"]))
}

func TestTokVal_MonotonicPastClassSpace(t *testing.T) {
	input, _ := fixtures.SingleTokenGrammar()
	db := pdb.Build(input, false)
	assert.True(t, db.Valid())

	a := db.ToVal(pdb.ClassSym(pdb.SymClassSpace))
	b := db.ToVal(pdb.Terminal(0, 0))
	assert.Less(t, a, b)
}

func TestBuild_KeywordGrammar_LexesAndWalksTokens(t *testing.T) {
	input, names, kl, err := fixtures.KeywordGrammar()
	assert.NoError(t, err)

	words, err := kl.Tokenize("if pass end")
	assert.NoError(t, err)
	assert.Equal(t, []string{"if", "pass", "end"}, words)

	db := pdb.Build(input, true)
	assert.True(t, db.Valid())

	tok, ok := db.TokData(kl.TermId("if"))
	assert.True(t, ok)
	assert.Equal(t, names["ScanIf"], tok.ScannerNonTerm)
}

func TestEntryPoints_OneGuidPerEntry(t *testing.T) {
	input, names := fixtures.ExprGrammar()
	input.EntryPoints = []pdb.EntryPointSpec{{NonTerm: names["Goal"], FriendlyName: "Goal", ExportId: 1}}
	db := pdb.Build(input, false)

	eps := db.EntryPoints()
	assert.Len(t, eps, 1)
	assert.NotEmpty(t, eps[0].Guid)
	assert.Equal(t, []pdb.NonTermId{names["Goal"]}, db.EntryNontermKeys())
}
