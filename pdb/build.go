package pdb

import (
	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/npillmayer/radlrgo"
)

// builder holds the working state Build threads through the sub-
// algorithms in closure.go, follow.go and recursion.go. It is never
// exposed outside this package; PDB is the only durable output.
type builder struct {
	rules        []Rule
	nonTermRules [][]RuleId
}

// Build transforms a normalized grammar into a PDB satisfying invariants
// I1–I6 (§4.1's contract). The only failure mode at this stage is an
// invalid input grammar, which produces a PDB with Valid()==false rather
// than an error return — semantic errors belong to earlier stages, per
// the contract's "Failure" clause.
//
// scannerMode selects whether closures and follow sets expand across
// TokenNonTerminal symbols (§4.1 "For scanner rules, closures additionally
// expand across TokenNonTerminal").
func Build(g GrammarInput, scannerMode bool) *PDB {
	tracer().Debugf("building PDB %q (scanner=%v) from %d rule(s)", g.Name, scannerMode, len(g.Rules))

	p := &PDB{
		name:         g.Name,
		interner:     g.Interner,
		valid:        g.Valid,
		nonTermRules: g.NonTermRules,
		rules:        g.Rules,
		tokens:       g.Tokens,
		customStates: make(map[NonTermId]radlrgo.IString, len(g.CustomStates)),
	}
	for n, name := range g.NonTermNames {
		p.nonTermName = append(p.nonTermName, g.Interner.Intern(name))
		_ = n
	}
	for n, name := range g.CustomStates {
		p.customStates[n] = g.Interner.Intern(name)
	}

	if !g.Valid {
		tracer().Errorf("grammar %q is not valid; PDB carries no analyses", g.Name)
		return p
	}

	b := &builder{rules: g.Rules, nonTermRules: g.NonTermRules}

	// --- Item enumeration + closures (§4.1 "Item enumeration", "Closure") ---
	p.closures = make(map[StaticItem][]StaticItem)
	for rid, rule := range g.Rules {
		ln := rule.Len()
		for i := uint16(0); i <= ln; i++ {
			if i == ln {
				continue // complete items have no closure (I4)
			}
			seed := StaticItem{Rule: RuleId(rid), SymIndex: i}
			p.closures[seed] = computeClosure(b, RuleId(rid), i, scannerMode)
		}
	}

	// --- Follow sets (§4.1 "Follow set") ---
	follow, ok := computeFollow(b, scannerMode)
	p.follow = follow
	if !ok {
		tracer().Errorf("follow-set computation for %q exceeded its safety bound", g.Name)
	}

	// --- Recursion bitset (§4.1 "Recursion bitset", I6) ---
	p.recursion = make(map[NonTermId]RecursionType, len(g.NonTermRules))
	for n := range g.NonTermRules {
		p.recursion[NonTermId(n)] = computeRecursion(b, NonTermId(n), p.closures)
	}

	// --- Reduction classification (§4.1 "Reduction classification") ---
	p.reduceType = make([]ReductionType, len(g.Rules))
	for rid, rule := range g.Rules {
		p.reduceType[rid] = classifyReduction(p, RuleId(rid), rule)
	}

	// --- Entry points (§3 EntryPoint) ---
	for _, ep := range g.EntryPoints {
		p.entryPoints = append(p.entryPoints, EntryPoint{
			NonTerm:      ep.NonTerm,
			Guid:         uuid.New().String(),
			FriendlyName: g.Interner.Intern(ep.FriendlyName),
			EntryState:   g.Interner.Intern(ep.FriendlyName + "_entry"),
			ExitState:    g.Interner.Intern(ep.FriendlyName + "_exit"),
			ExportId:     ep.ExportId,
		})
	}

	// Entry points are declared in whatever order the grammar front-end
	// happened to emit them; sort by non-terminal id so EntryPoints() and
	// EntryNontermKeys() are stable across runs (§5 determinism) without
	// requiring the caller to pre-sort its GrammarInput.
	slices.SortFunc(p.entryPoints, func(a, b EntryPoint) bool { return a.NonTerm < b.NonTerm })

	tracer().Infof("PDB %q built: %d non-terminal(s), %d rule(s), %d entry point(s)",
		g.Name, len(g.NonTermRules), len(g.Rules), len(p.entryPoints))
	return p
}

// classifyReduction implements §4.1's "Reduction classification":
// LeftRecursive if the rule is left-recursive, else SemanticAction if it
// carries an AST body, else SingleTerminal/SingleNonTerminal if L==1,
// else Mixed.
func classifyReduction(p *PDB, r RuleId, rule Rule) ReductionType {
	if p.recursion[rule.NonTerm].IsLeftRecursive() && ruleIsLeftRecursive(p, r, rule) {
		return LeftRecursive
	}
	if rule.HasASTToken {
		return SemanticAction
	}
	if rule.Len() == 1 {
		switch rule.Symbols[0].Sym.Kind {
		case SymNonTerminal, SymTokenNonTerminal:
			return SingleNonTerminal
		default:
			return SingleTerminal
		}
	}
	return Mixed
}

// ruleIsLeftRecursive reports whether this specific rule (not merely its
// non-terminal) is left recursive: its start item's closure reaches its
// own non-terminal.
func ruleIsLeftRecursive(p *PDB, r RuleId, rule Rule) bool {
	if rule.Len() == 0 {
		return false
	}
	closure := p.closures[StaticItem{Rule: r, SymIndex: 0}]
	for _, it := range closure {
		if p.rules[it.Rule].NonTerm == rule.NonTerm {
			return true
		}
	}
	// A rule directly starting with its own non-terminal is trivially
	// left-recursive even though such a self-seed is excluded from its
	// own closure by definition (I4 excludes the seed).
	return rule.Symbols[0].Sym.Kind == SymNonTerminal && rule.Symbols[0].Sym.NonTerm == rule.NonTerm
}
