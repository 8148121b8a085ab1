/*
Package lower implements stage (C) of the parser-construction pipeline
(§4.4): it walks a finished GraphHost and emits one ParseState per
GraphState (plus one per goto sub-state), in the textual instruction
grammar of §6.1.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package lower

import (
	"fmt"
	"strings"
)

// InputType is the axis a match block peeks before dispatching to a
// clause (§4.4, §6.1).
type InputType uint8

const (
	NonTerminalInput InputType = iota
	TokenInput
	ByteInput
	CodepointInput
	ClassInput
	EndOfFileInput
	DefaultInput
)

func (t InputType) String() string {
	switch t {
	case NonTerminalInput:
		return "NONTERMINAL"
	case TokenInput:
		return "TOKEN"
	case ByteInput:
		return "BYTE"
	case CodepointInput:
		return "CODEPOINT"
	case ClassInput:
		return "CLASS"
	case EndOfFileInput:
		return "ENDOFFILE"
	default:
		return "DEFAULT"
	}
}

// Simple is one instruction of the <simple> production in §6.1: an
// opcode plus its (already-formatted) operand, or no operand at all.
type Simple struct {
	Op  string
	Arg string
}

func (s Simple) String() string {
	if s.Arg == "" {
		return s.Op
	}
	return s.Op + " " + s.Arg
}

// Pass, Fail, Accept, Shift, Scan, Peek, PeekSkip, Skip and Reset are the
// zero-operand simples of §6.1.
func Pass() Simple     { return Simple{Op: "pass"} }
func Fail() Simple     { return Simple{Op: "fail"} }
func Accept() Simple   { return Simple{Op: "accept"} }
func Shift() Simple    { return Simple{Op: "shift"} }
func Scan() Simple     { return Simple{Op: "scan"} }
func Peek() Simple     { return Simple{Op: "peek"} }
func PeekSkip() Simple { return Simple{Op: "peek-skip"} }
func Skip() Simple     { return Simple{Op: "skip"} }
func Reset() Simple    { return Simple{Op: "reset"} }

// Pop, Goto, Push, SetTok are the operand-carrying simples.
func Pop(n int) Simple       { return Simple{Op: "pop", Arg: fmt.Sprintf("%d", n)} }
func Goto(name string) Simple { return Simple{Op: "goto", Arg: name} }
func Push(name string) Simple { return Simple{Op: "push", Arg: name} }
func SetTok(n uint32) Simple  { return Simple{Op: "set-tok", Arg: fmt.Sprintf("%d", n)} }
func SetLine() Simple          { return Simple{Op: "set-line"} }

// Reduce builds the "reduce <n> symbols to <nonterm-bc-id> with rule
// <rule-bc-id>" simple.
func Reduce(n int, nontermBc, ruleBc int32) Simple {
	return Simple{Op: "reduce", Arg: fmt.Sprintf("%d symbols to %d with rule %d", n, nontermBc, ruleBc)}
}

// StmtSeq renders a "then"-joined sequence of simples (§6.1 <stmt-seq>).
type StmtSeq []Simple

func (seq StmtSeq) String() string {
	parts := make([]string, len(seq))
	for i, s := range seq {
		parts[i] = s.String()
	}
	return strings.Join(parts, " then ")
}

// Clause is one "(<val> | <val> ...) { <stmt-seq> }" arm of a match block.
type Clause struct {
	Vals []int32
	Body StmtSeq
}

func (c Clause) String() string {
	vals := make([]string, len(c.Vals))
	for i, v := range c.Vals {
		vals[i] = fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("(%s) { %s }", strings.Join(vals, " | "), c.Body)
}

// Match is a "match: <InputType>[:<name>] { <clauses> [default {...}] }"
// block, the dispatch form of §4.4 used whenever a state's children are
// selected by an input axis rather than unconditional.
type Match struct {
	Input      InputType
	ScannerRef string // set iff Input == TokenInput and a scanner group backs it
	Clauses    []Clause
	Default    StmtSeq // nil if the match has no default arm
}

func (m Match) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "match: %s", m.Input)
	if m.ScannerRef != "" {
		fmt.Fprintf(&b, ":%s", m.ScannerRef)
	}
	b.WriteString(" {\n")
	for _, c := range m.Clauses {
		fmt.Fprintf(&b, "  %s\n", c)
	}
	if m.Default != nil {
		fmt.Fprintf(&b, "  default { %s }\n", m.Default)
	}
	b.WriteString("}")
	return b.String()
}

// Stmt is the top-level body of a ParseState: either a single Simple or
// a Match (§6.1 <stmt> := <simple> | <match>).
type Stmt interface {
	String() string
}

// ParseState is one emitted record of the stage-C output (§6.1 <state>).
type ParseState struct {
	Name string
	Body Stmt
}

func (p ParseState) String() string {
	return fmt.Sprintf("%s => %s", p.Name, p.Body)
}

// Render joins a slice of ParseStates into the textual IR file described
// by §6.1, records separated by a blank line (match blocks span multiple
// lines).
func Render(states []ParseState) string {
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = s.String()
	}
	return strings.Join(parts, "\n\n")
}
