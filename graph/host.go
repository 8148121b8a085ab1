/*
Package graph implements stage (B) of the parser-construction pipeline
(§4.3): a worklist-driven state expansion that disambiguates item sets
through terminal lookahead, completion-follow analysis and bounded peek,
falling back to LR-inline construction or a Fork state when local
disambiguation fails.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package graph

import (
	"sort"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/npillmayer/radlrgo/config"
	"github.com/npillmayer/radlrgo/internal/trace"
	"github.com/npillmayer/radlrgo/item"
	"github.com/npillmayer/radlrgo/pdb"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'radlr.graph'.
func tracer() tracing.Trace { return trace.For("graph") }

// Kind distinguishes a parser graph from a scanner graph (§4.3.7): the
// algorithm is identical, but scanner graphs never peek and their
// out-of-scope completions use ScannerCompleteOOS instead of
// NonTermCompleteOOS.
type Kind uint8

const (
	ParserGraph Kind = iota
	ScannerGraph
)

// Edge is a directed, symbol-labeled transition between two states.
type Edge struct {
	From, To StateId
	Label    pdb.SymbolId
}

// Host is the GraphHost of §3: all states built for one entry
// non-terminal (or one scanner group), their id→state map, the kind of
// graph, the root non-terminal set, and a reference to the PDB they were
// built against. A Host is unique per build-graph invocation (§3
// lifecycle) and is dropped after lowering.
type Host struct {
	DB   *pdb.PDB
	Kind Kind
	Cfg  config.Config

	states      *treeset.Set // of *GraphState, ordered by Id (stateComparator)
	byId        map[StateId]*GraphState
	edges       *arraylist.List // of *Edge
	nextId      StateId
	internIndex map[string]StateId // structhash(kind,kernel) -> first StateId created for it

	rootNonterms map[pdb.NonTermId]bool
	Start        StateId
}

func stateComparator(a, b interface{}) int {
	s1 := a.(*GraphState)
	s2 := b.(*GraphState)
	return utils.IntComparator(int(s1.Id), int(s2.Id))
}

// newHost creates an empty Host ready for the worklist algorithm in
// build.go.
func newHost(db *pdb.PDB, kind Kind, cfg config.Config) *Host {
	return &Host{
		DB:           db,
		Kind:         kind,
		Cfg:          cfg,
		states:       treeset.NewWith(stateComparator),
		byId:         make(map[StateId]*GraphState),
		edges:        arraylist.New(),
		internIndex:  make(map[string]StateId),
		rootNonterms: make(map[pdb.NonTermId]bool),
	}
}

// States returns every state in the host, ordered by StateId — the
// determinism invariant of §5 ("states are appended to the graph in the
// order they are first created").
func (h *Host) States() []*GraphState {
	vals := h.states.Values()
	out := make([]*GraphState, len(vals))
	for i, v := range vals {
		out[i] = v.(*GraphState)
	}
	return out
}

// State looks up a state by id.
func (h *Host) State(id StateId) (*GraphState, bool) {
	s, ok := h.byId[id]
	return s, ok
}

// Edges returns every edge leaving s, sorted by label's bytecode value for
// deterministic iteration (§5: "symbol groups are sorted by SymbolId").
func (h *Host) Edges(from StateId) []*Edge {
	out := make([]*Edge, 0, 2)
	it := h.edges.Iterator()
	for it.Next() {
		e := it.Value().(*Edge)
		if e.From == from {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return h.DB.ToVal(out[i].Label) < h.DB.ToVal(out[j].Label)
	})
	return out
}

// kernelKey computes the structural hash used for interning (§4.3 "New
// states are interned by (state_type, hash(kernel))"; §8 P7), grounded on
// gorgo's earley.hash helper (structhash.Hash over an anonymous struct).
func kernelKey(kind StateKind, goal uint32, kernel []item.Item) string {
	abs := item.ToAbsolute(kernel)
	sort.Slice(abs, func(i, j int) bool {
		if abs[i].Rule != abs[j].Rule {
			return abs[i].Rule < abs[j].Rule
		}
		return abs[i].SymIndex < abs[j].SymIndex
	})
	h, err := structhash.Hash(struct {
		Kind   StateKind
		Goal   uint32
		Kernel []pdb.StaticItem
	}{Kind: kind, Goal: goal, Kernel: abs}, 1)
	if err != nil {
		// structhash only fails on unhashable types; our payload is
		// always plain data, so this would indicate a bug, not bad
		// input (§7 IrrecoverableState is the semantic analogue).
		panic("graph: kernelKey: " + err.Error())
	}
	return h
}

// addState interns a state by (kind, goal, kernel): if an equivalent
// state already exists it is returned unchanged (duplicates merge, §4.3
// "New states are interned ... and enqueued only on first creation;
// duplicates merge"), otherwise a new state is created, appended in
// creation order, and its id returned alongside created=true so the
// caller knows to enqueue it.
func (h *Host) addState(kind StateKind, goal uint32, goalNonterm pdb.NonTermId, kernel []item.Item, incoming pdb.SymbolId, parent StateId, hasParent bool) (*GraphState, bool) {
	key := kernelKey(kind, goal, kernel)
	if id, ok := h.internIndex[key]; ok {
		s := h.byId[id]
		return s, false
	}
	id := h.nextId
	h.nextId++
	s := &GraphState{
		Id:          id,
		Type:        StateType{Kind: kind, Goal: goal},
		IncomingSym: incoming,
		Parent:      parent,
		HasParent:   hasParent,
		Kernel:      kernel,
		GoalNonterm: goalNonterm,
	}
	h.internIndex[key] = id
	h.byId[id] = s
	h.states.Add(s)
	return s, true
}

func (h *Host) addEdge(from, to StateId, label pdb.SymbolId) {
	h.edges.Add(&Edge{From: from, To: to, Label: label})
}
