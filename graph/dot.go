package graph

import (
	"fmt"
	"io"
)

// WriteDot exports h to the Graphviz Dot format, the supplemental
// diagnostic export grounded on gorgo's lr.CFSM.CFSM2GraphViz — ported
// from a file-opening method to an io.Writer-accepting function so callers
// (cmd/radlrc, tests) can point it at a file, a buffer, or stdout alike.
func (h *Host) WriteDot(w io.Writer) error {
	if _, err := io.WriteString(w, "digraph {\n"+
		"graph [splines=true, fontname=Helvetica, fontsize=10];\n"+
		"node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];\n"+
		"edge [fontname=Helvetica, fontsize=10];\n\n"); err != nil {
		return err
	}
	for _, s := range h.States() {
		if _, err := fmt.Fprintf(w, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.Id, dotColor(s), s.Id, dotEscape(s)); err != nil {
			return err
		}
	}
	for _, s := range h.States() {
		for _, e := range h.Edges(s.Id) {
			if _, err := fmt.Fprintf(w, "s%03d -> s%03d [label=\"%s\"]\n", e.From, e.To, e.Label); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(w, "}\n")
	return err
}

// dotColor flags error states and accepting states distinctly, mirroring
// gorgo's nodecolor (Accept -> lightgray, else white).
func dotColor(s *GraphState) string {
	switch s.Type.Kind {
	case NonTerminalComplete, Complete, AssignToken, AssignAndFollow:
		return "lightgray"
	}
	if s.IsErrorState() {
		return "lightpink"
	}
	return "white"
}

// dotEscape renders a state's kind and kernel items for a record-shaped
// Dot label, escaping the characters Graphviz's record shape treats
// specially.
func dotEscape(s *GraphState) string {
	label := s.Type.Kind.String()
	for _, it := range s.Kernel {
		label += "\\n" + dotSanitize(it.String())
	}
	return label
}

func dotSanitize(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{', '}', '|', '<', '>', '"':
			out = append(out, '\\', s[i])
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}
