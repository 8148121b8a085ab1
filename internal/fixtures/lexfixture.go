package fixtures

import (
	"sort"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/npillmayer/radlrgo/pdb"
)

// KeywordLexer compiles a lexmachine DFA over a fixed keyword set, the Go
// counterpart of gorgo's lr/scanner.NewLMAdapter (see lr/scanner/lexmachine.go):
// every keyword becomes one lexmachine pattern whose action wraps the match
// into a lexmachine.Token tagged with a stable, sorted token id. Fixtures
// that want scanner-synthesized terminals (pdb.TokenData, §3) go through
// this instead of the bare pdb.CharSym used by the hand-written grammars
// above, so the scanner-fixture path exercises the same lexing library the
// rest of the module's tokenizer-facing tooling is grounded on.
type KeywordLexer struct {
	Lexer *lexmachine.Lexer
	ids   map[string]int
	byId  map[int]string
}

// NewKeywordLexer compiles one lexmachine pattern per keyword, in sorted
// order so the resulting token ids (and therefore TermIds derived from
// them) are stable across runs regardless of the order keywords were
// declared in.
func NewKeywordLexer(keywords []string) (*KeywordLexer, error) {
	sorted := append([]string(nil), keywords...)
	sort.Strings(sorted)

	ids := make(map[string]int, len(sorted))
	byId := make(map[int]string, len(sorted))
	for i, kw := range sorted {
		ids[kw] = i
		byId[i] = kw
	}

	lx := lexmachine.NewLexer()
	for _, kw := range sorted {
		id := ids[kw]
		lx.Add([]byte(kw), func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
			return s.Token(id, string(m.Bytes), m), nil
		})
	}
	lx.Add([]byte(`( |\t|\n)+`), func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return nil, nil // whitespace is skipped, matching scanner.Skip's convention
	})
	if err := lx.Compile(); err != nil {
		return nil, err
	}
	return &KeywordLexer{Lexer: lx, ids: ids, byId: byId}, nil
}

// TermId returns the stable TermId assigned to keyword kw.
func (kl *KeywordLexer) TermId(kw string) pdb.TermId {
	return pdb.TermId(kl.ids[kw])
}

// Tokenize runs the compiled DFA over input and returns the matched
// keywords in order, exercising the lexer the way a real front-end would
// before handing a GrammarInput's Tokens to pdb.Build — fixtures use this
// to sanity-check a keyword set actually lexes before wiring it into a
// grammar.
func (kl *KeywordLexer) Tokenize(input string) ([]string, error) {
	scan, err := kl.Lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	var out []string
	for {
		tok, err, eof := scan.Next()
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is {
				scan.TC = ui.FailTC
				continue
			}
			return out, err
		}
		if eof {
			break
		}
		if tok == nil {
			continue
		}
		t := tok.(*lexmachine.Token)
		out = append(out, kl.byId[t.Type])
	}
	return out, nil
}

// KeywordGrammar builds a tiny scanner+parser grammar whose terminals are
// lexmachine-lexed keywords rather than single characters:
//
//	Goal  -> Stmt
//	Stmt  -> 'if' Stmt 'end' | 'pass'
//
// TokenData entries tie each keyword's TermId back to a (synthetic)
// scanner non-terminal, the shape pdb.Build's scanner-mode callers expect
// for PDB.TokData lookups (§3, §6.2).
func KeywordGrammar() (pdb.GrammarInput, NonTerms, *KeywordLexer, error) {
	kl, err := NewKeywordLexer([]string{"if", "end", "pass"})
	if err != nil {
		return pdb.GrammarInput{}, nil, nil, err
	}

	b := NewGrammarBuilder("keyword-if")
	goal := b.NonTerm("Goal")
	stmt := b.NonTerm("Stmt")
	scanIf := b.NonTerm("ScanIf")
	scanEnd := b.NonTerm("ScanEnd")
	scanPass := b.NonTerm("ScanPass")

	ifSym := pdb.Terminal(kl.TermId("if"), uint16(pdb.TierDefined))
	endSym := pdb.Terminal(kl.TermId("end"), uint16(pdb.TierDefined))
	passSym := pdb.Terminal(kl.TermId("pass"), uint16(pdb.TierDefined))

	b.Rule(goal, pdb.NonTerminalSym(stmt))
	b.Rule(stmt, ifSym, pdb.NonTerminalSym(stmt), endSym)
	b.Rule(stmt, passSym)

	input, names := b.Build()
	input.Tokens = []pdb.TokenData{
		{Sym: ifSym, ScannerNonTerm: scanIf, Term: kl.TermId("if")},
		{Sym: endSym, ScannerNonTerm: scanEnd, Term: kl.TermId("end")},
		{Sym: passSym, ScannerNonTerm: scanPass, Term: kl.TermId("pass")},
	}
	return input, names, kl, nil
}
