package lower_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/npillmayer/radlrgo/config"
	radlrerrors "github.com/npillmayer/radlrgo/errors"
	"github.com/npillmayer/radlrgo/graph"
	"github.com/npillmayer/radlrgo/internal/fixtures"
	"github.com/npillmayer/radlrgo/lower"
	"github.com/npillmayer/radlrgo/pdb"
)

func buildAndLower(t *testing.T, g func() (pdb.GrammarInput, fixtures.NonTerms), entry string) []lower.ParseState {
	t.Helper()
	input, names := g()
	db := pdb.Build(input, false)
	assert.True(t, db.Valid())
	report := &radlrerrors.Report{}
	h := graph.BuildGraph(db, names[entry], graph.ParserGraph, config.Default(), report)
	assert.True(t, report.OK())
	return lower.Lower(h, "entry_"+entry)
}

func TestLower_RootStateNamedAfterEntry(t *testing.T) {
	states := buildAndLower(t, fixtures.SingleTokenGrammar, "Goal")
	assert.NotEmpty(t, states)
	assert.Equal(t, "entry_Goal", states[0].Name)
}

func TestLower_EveryStateHasAUniqueName(t *testing.T) {
	states := buildAndLower(t, fixtures.ExprGrammar, "Goal")
	seen := make(map[string]bool, len(states))
	for _, s := range states {
		assert.False(t, seen[s.Name], "duplicate state name %q", s.Name)
		seen[s.Name] = true
	}
}

func TestLower_RenderProducesNonEmptyText(t *testing.T) {
	states := buildAndLower(t, fixtures.ExprGrammar, "Goal")
	out := lower.Render(states)
	assert.True(t, strings.Contains(out, "entry_Goal =>"))
}

func TestLower_ReduceStatesCarryRuleBytecode(t *testing.T) {
	states := buildAndLower(t, fixtures.SingleTokenGrammar, "Goal")
	var sawReduce bool
	for _, s := range states {
		if strings.Contains(s.Body.String(), "reduce") {
			sawReduce = true
		}
	}
	assert.True(t, sawReduce, "expected at least one reduce instruction")
}

func TestRender_JoinsRecordsWithBlankLine(t *testing.T) {
	states := []lower.ParseState{
		{Name: "a", Body: lower.Pass()},
		{Name: "b", Body: lower.Fail()},
	}
	out := lower.Render(states)
	assert.Equal(t, "a => pass\n\nb => fail", out)
}
