package graph

import (
	"github.com/npillmayer/radlrgo/config"
	radlrerrors "github.com/npillmayer/radlrgo/errors"
	"github.com/npillmayer/radlrgo/item"
	"github.com/npillmayer/radlrgo/pdb"
)

// BuildScannerGraph is the scanner-mode entry point of §4.3.7: identical
// worklist algorithm to BuildGraph, but the resulting Host never contains a
// Peek state (P6). Completions in a scanner graph become Reduce or
// AssignToken states; handleCompletions creates no NonTermCompleteOOS
// state here, so the ScannerCompleteOOS rewrite below finds none to change.
//
// scannerRoot is the synthetic non-terminal grouping every token rule the
// scanner must recognize in this scan group (§3 "scanner group"); its
// NonTermRules are the start alternatives the scanner races against each
// other, the same way BuildGraph races a parser entry's alternatives.
func BuildScannerGraph(db *pdb.PDB, scannerRoot pdb.NonTermId, cfg config.Config, report *radlrerrors.Report) *Host {
	h := BuildGraph(db, scannerRoot, ScannerGraph, cfg, report)
	markOutOfScopeCompletions(h)
	return h
}

// markOutOfScopeCompletions rewrites any NonTermCompleteOOS state of a
// scanner graph into ScannerCompleteOOS — §4.3.7's only behavioural divergence that the
// shared worklist cannot express locally, since "is this non-terminal a
// root of this particular build" is already known by the time
// handleCompletions runs, but the scanner/parser distinction in naming the
// resulting state is cheaper to apply as a post-pass than to thread an
// extra parameter through every call in build.go.
func markOutOfScopeCompletions(h *Host) {
	if h.Kind != ScannerGraph {
		return
	}
	for _, s := range h.States() {
		if s.Type.Kind == NonTermCompleteOOS {
			s.Type.Kind = ScannerCompleteOOS
		}
	}
}

// scannerClosure extends an ordinary closure with token-non-terminal
// expansion (§4.3.7: "closures cross token-non-terminals"): any item whose
// dot sits on a TokenNonTerminal additionally contributes the closure of
// that token-non-terminal's own start items, since in scanner mode a token
// rule may itself invoke another token rule.
func scannerClosure(h *Host, kernel []item.Item) []item.Item {
	base := h.closureOf(kernel)
	seen := make(map[pdb.StaticItem]bool, len(base))
	for _, it := range base {
		seen[it.ToStatic()] = true
	}
	out := append([]item.Item(nil), base...)
	for _, it := range base {
		info := it.GetType()
		if info.Kind != item.TypeTokenNonTerminal {
			continue
		}
		for _, r := range h.DB.NonTermRules(info.NonTerm) {
			start := item.StartItem(h.DB, r, it.Goal).Align(it)
			if seen[start.ToStatic()] {
				continue
			}
			seen[start.ToStatic()] = true
			out = append(out, start)
			for _, c := range start.Closure() {
				if !seen[c.ToStatic()] {
					seen[c.ToStatic()] = true
					out = append(out, c)
				}
			}
		}
	}
	return out
}
