/*
Package radlrgo implements the parser-construction core of a context-free
grammar compiler: the pipeline that turns a normalized grammar into a
deterministic parse-state graph, and lowers that graph into a linear list of
named parse states for a table- or bytecode-driven runtime.

The pipeline has three stages, each living in its own sub-package:

■ pdb: Package pdb builds a ParserDatabase from a normalized grammar —
item closures, follow sets, recursion classification and reduction
types — once per grammar, shared immutably by every later stage.

■ graph: Package graph builds a GraphHost per entry non-terminal (or
scanner group): a worklist-driven state-machine construction that
disambiguates item sets via terminal lookahead, completion-follow
analysis and bounded peek, falling back to LR-inline construction or a
Fork state when ambiguity cannot be resolved locally.

■ lower: Package lower serializes a GraphHost into a deterministic,
named list of ParseStates carrying match/goto/reduce/shift/peek
instructions (see the IR types in package lower's ir.go for the
instruction grammar).

Supporting packages:

■ item: the Item algebra shared between pdb and graph.

■ errors: the error taxonomy and per-build diagnostic Report.

■ config: the handful of environment knobs the core reads.

This module does not parse grammar source, generate AST-reducer code, or
execute the parsers it builds — see cmd/radlrc for a CLI harness that
drives the three stages end to end.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package radlrgo
