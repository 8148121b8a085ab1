/*
Package errors implements the error taxonomy of §7: the kinds of failure
the parser-construction core can report, and a Report type that
accumulates them for a single build. Following the guidance of §9
("Global mutable journal of errors" → "Reports struct passed by mutable
reference, never global"), a Report is always owned by its caller — there
is no package-level error sink.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package errors

import (
	"fmt"
	"strings"

	"github.com/npillmayer/radlrgo"
)

// Kind classifies a core error, per §7's taxonomy (kinds, not type names).
type Kind uint8

const (
	// GrammarInvalid: the grammar is not well-formed. Surfaced from pdb;
	// downstream stages refuse to build on a PDB carrying this error.
	GrammarInvalid Kind = iota + 1

	// UnresolvableAmbiguityParser: multiple goal lanes remain after peek
	// and LR-inline, forking disabled or impossible.
	UnresolvableAmbiguityParser

	// UnresolvableAmbiguityScanner: two items in the highest-precedence
	// tier claim the same input.
	UnresolvableAmbiguityScanner

	// IrrecoverableState: the graph builder reached a configuration its
	// own rules forbid. Indicates a bug in the builder, not bad grammar
	// input; surfaced as a typed error here. This package has no
	// debug-build assertion for it.
	IrrecoverableState

	// FollowSetOverflow: the follow-set BFS of §4.1 exceeded its safety
	// bound, indicating a malformed cyclic grammar.
	FollowSetOverflow
)

func (k Kind) String() string {
	switch k {
	case GrammarInvalid:
		return "grammar-invalid"
	case UnresolvableAmbiguityParser:
		return "unresolvable-ambiguity(parser)"
	case UnresolvableAmbiguityScanner:
		return "unresolvable-ambiguity(scanner)"
	case IrrecoverableState:
		return "irrecoverable-state"
	case FollowSetOverflow:
		return "follow-set-overflow"
	default:
		return "unknown"
	}
}

// ConflictItem names one of the competing items behind an ambiguity error,
// carrying enough provenance for a caller to point at the offending rule.
type ConflictItem struct {
	RuleName string
	Span     radlrgo.Span
}

// Error is one diagnostic produced during a build.
type Error struct {
	Kind       Kind
	Message    string
	Conflicts  []ConflictItem // populated for the two ambiguity kinds
	GrammarRef string         // interned grammar name or entry-point name
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Kind, e.Message)
	if e.GrammarRef != "" {
		fmt.Fprintf(&b, " (in %s)", e.GrammarRef)
	}
	for _, c := range e.Conflicts {
		fmt.Fprintf(&b, "\n  conflicting item: %s %s", c.RuleName, c.Span)
	}
	return b.String()
}

// Report accumulates the Errors produced by one build (one PDB build, or
// one graph build for one entry non-terminal / scanner group). A non-empty
// Report means: no partial states are emitted for that entry, per §7's
// user-visible behaviour; other entry non-terminals continue independently.
type Report struct {
	errs []*Error
}

// Add appends an error to the report.
func (r *Report) Add(e *Error) {
	r.errs = append(r.errs, e)
}

// Addf is a convenience constructor for simple, conflict-free errors.
func (r *Report) Addf(kind Kind, grammarRef, format string, args ...interface{}) {
	r.Add(&Error{Kind: kind, Message: fmt.Sprintf(format, args...), GrammarRef: grammarRef})
}

// OK reports whether the build succeeded, i.e. no errors were recorded.
func (r *Report) OK() bool {
	return len(r.errs) == 0
}

// Errors returns the accumulated errors in the order they were added.
func (r *Report) Errors() []*Error {
	return r.errs
}

// AsError bundles the report into a single error value suitable for
// returning from a Result-shaped function (spec §7's
// Result<Vec<ParseState>, Vec<Error>>); returns nil if the report is empty.
func (r *Report) AsError() error {
	if r.OK() {
		return nil
	}
	msgs := make([]string, len(r.errs))
	for i, e := range r.errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("%d error(s):\n%s", len(r.errs), strings.Join(msgs, "\n"))
}
