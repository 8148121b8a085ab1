package item_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/npillmayer/radlrgo/internal/fixtures"
	"github.com/npillmayer/radlrgo/item"
	"github.com/npillmayer/radlrgo/pdb"
)

func TestStartItem_IsIncomplete(t *testing.T) {
	input, names := fixtures.SingleTokenGrammar()
	db := pdb.Build(input, false)
	r := db.NonTermRules(names["Goal"])[0]

	it := item.StartItem(db, r, 0)
	assert.False(t, it.IsComplete())
	assert.Equal(t, item.TypeTerminal, it.GetType().Kind)
}

func TestIncrement_ReachesComplete(t *testing.T) {
	input, names := fixtures.SingleTokenGrammar()
	db := pdb.Build(input, false)
	r := db.NonTermRules(names["Goal"])[0]

	it := item.StartItem(db, r, 0)
	next, ok := it.Increment()
	assert.True(t, ok)
	assert.True(t, next.IsComplete())

	_, ok = next.Increment()
	assert.False(t, ok, "incrementing a complete item must fail")
}

func TestAlign_PreservesProvenance(t *testing.T) {
	input, names := fixtures.ExprGrammar()
	db := pdb.Build(input, false)
	r := db.NonTermRules(names["Sum"])[0]

	seed := item.StartItem(db, r, 42)
	other := item.New(db, r, 1)
	aligned := other.Align(seed)

	assert.Equal(t, uint32(42), aligned.Goal)
	assert.Equal(t, uint16(1), aligned.SymIndex)
}

func TestClosure_ExpandsNonTerminalDot(t *testing.T) {
	input, names := fixtures.ExprGrammar()
	db := pdb.Build(input, false)
	r := db.NonTermRules(names["Goal"])[0]

	it := item.StartItem(db, r, 0)
	closure := it.Closure()
	assert.NotEmpty(t, closure)
	for _, c := range closure {
		assert.Equal(t, it.Goal, c.Goal, "closure items must inherit the seed's goal")
	}
}

func TestGroupBySymbol_PreservesFirstSeenOrder(t *testing.T) {
	input, names := fixtures.AmbiguousIfGrammar()
	db := pdb.Build(input, false)
	stmt := names["Stmt"]
	rules := db.NonTermRules(stmt)

	items := make([]item.Item, len(rules))
	for i, r := range rules {
		items[i] = item.StartItem(db, r, uint32(i))
	}
	order, groups := item.GroupBySymbol(items)
	assert.Len(t, order, 2) // 'i' and 'x'
	for _, s := range order {
		assert.NotEmpty(t, groups[s])
	}
}

func TestOutOfScope_RoundTrips(t *testing.T) {
	input, names := fixtures.SingleTokenGrammar()
	db := pdb.Build(input, false)
	r := db.NonTermRules(names["Goal"])[0]

	it := item.StartItem(db, r, 0)
	assert.False(t, it.IsOutOfScope())
	oos := it.ToOOS()
	assert.True(t, oos.IsOutOfScope())
}
