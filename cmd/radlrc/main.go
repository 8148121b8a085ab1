/*
Command radlrc drives the parser-construction core from the command line:
it loads a grammar already normalized into a pdb.GrammarInput by an
upstream grammar front-end (out of scope for this module, §1), builds the
ParserDatabase, builds a GraphHost per requested entry non-terminal, lowers
each to its textual parse-state IR, and either prints the IR or exports a
state graph to Graphviz Dot.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/pflag"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/radlrgo/config"
	radlrerrors "github.com/npillmayer/radlrgo/errors"
	"github.com/npillmayer/radlrgo/graph"
	"github.com/npillmayer/radlrgo/internal/fixtures"
	"github.com/npillmayer/radlrgo/lower"
	"github.com/npillmayer/radlrgo/pdb"
)

// buildConfig is the on-disk TOML shape read from -config, giving the core
// config knobs of §6.4 a file-based counterpart to the gconf-backed flags
// (grounded on gorgo's own "flags override gconf defaults" convention).
type buildConfig struct {
	AllowOccludingSymbols   bool `toml:"allow_occluding_symbols"`
	EnableBreadcrumbParsing bool `toml:"enable_breadcrumb_parsing"`
}

func main() {
	gtrace.SyntaxTracer = gologadapter.New()

	var (
		traceLevel = pflag.String("trace", "Info", "Trace level [Debug|Info|Error]")
		configPath = pflag.String("config", "", "Path to a TOML build-config file")
		entry      = pflag.String("entry", "Goal", "Entry non-terminal to build a parser graph for")
		dotPath    = pflag.String("dot", "", "Write the built graph to this Graphviz Dot file")
		fixture    = pflag.String("fixture", "expr", "Built-in fixture grammar to build (expr|dangling-else|optional|single-token|right-recursive|keyword)")
		repl       = pflag.Bool("repl", false, "Start an interactive session for inspecting the built graph")
	)
	pflag.Parse()

	tracer().SetTraceLevel(tracing.TraceLevelFromString(*traceLevel))
	pterm.Info.Println("radlrc: building parser-construction core artifacts")

	cfg := config.Default()
	if *configPath != "" {
		var bc buildConfig
		if _, err := toml.DecodeFile(*configPath, &bc); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
		cfg.AllowOccludingSymbols = bc.AllowOccludingSymbols
		cfg.EnableBreadcrumbParsing = bc.EnableBreadcrumbParsing
	}

	input, names, err := loadFixture(*fixture)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}

	db := pdb.Build(input, false)
	if !db.Valid() {
		pterm.Error.Println("grammar failed validation")
		os.Exit(1)
	}

	entryId, ok := names[*entry]
	if !ok {
		pterm.Error.Printfln("unknown entry non-terminal %q", *entry)
		os.Exit(1)
	}

	report := &radlrerrors.Report{}
	h := graph.BuildGraph(db, entryId, graph.ParserGraph, cfg, report)
	if !report.OK() {
		for _, e := range report.Errors() {
			pterm.Error.Println(e.Error())
		}
		os.Exit(1)
	}
	pterm.Success.Printfln("built %d states for entry %q", len(h.States()), *entry)

	states := lower.Lower(h, "entry_"+*entry)
	fmt.Println(lower.Render(states))

	if *dotPath != "" {
		f, err := os.Create(*dotPath)
		if err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
		defer f.Close()
		if err := h.WriteDot(f); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
		pterm.Info.Printfln("wrote graph to %s", *dotPath)
	}

	if *repl {
		runRepl(h, db)
	}
}

// loadFixture maps a -fixture name to one of the built-in grammars in
// internal/fixtures; a real grammar front-end would replace this with a
// file loader producing the same pdb.GrammarInput shape.
func loadFixture(name string) (pdb.GrammarInput, fixtures.NonTerms, error) {
	switch name {
	case "expr":
		g, n := fixtures.ExprGrammar()
		return g, n, nil
	case "dangling-else":
		g, n := fixtures.AmbiguousIfGrammar()
		return g, n, nil
	case "optional":
		g, n := fixtures.EmptyRuleGrammar()
		return g, n, nil
	case "single-token":
		g, n := fixtures.SingleTokenGrammar()
		return g, n, nil
	case "right-recursive":
		g, n := fixtures.RightRecursiveGrammar()
		return g, n, nil
	case "keyword":
		g, n, _, err := fixtures.KeywordGrammar()
		return g, n, err
	default:
		return pdb.GrammarInput{}, nil, fmt.Errorf("unknown fixture %q", name)
	}
}

// runRepl starts a small interactive session for poking at a built graph,
// grounded on terex/terexlang/trepl's readline-driven loop.
func runRepl(h *graph.Host, db *pdb.PDB) {
	rl, err := readline.New("radlrc> ")
	if err != nil {
		tracer().Errorf(err.Error())
		return
	}
	defer rl.Close()
	pterm.Info.Println("Quit with <ctrl>D. Commands: states")
	for {
		line, err := rl.Readline()
		if err != nil {
			break
		}
		switch {
		case line == "states":
			for _, s := range h.States() {
				fmt.Printf("s%03d %s\n", s.Id, s.Type.Kind)
			}
		default:
			pterm.Warning.Println("unrecognized command")
		}
	}
	println("Good bye!")
}

func tracer() tracing.Trace {
	return gtrace.SyntaxTracer
}
