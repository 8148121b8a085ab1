package graph

import (
	"github.com/npillmayer/radlrgo/item"
	"github.com/npillmayer/radlrgo/pdb"
)

// OcclusionTable records, for a class symbol, which defined/token symbols
// occlude it (§4.3.1, §6.4). Nothing in the graph builder fills or reads
// it: mergeOccludingGroups decides each merge from SymbolId.Occludes
// directly.
type OcclusionTable struct {
	occludedBy map[pdb.SymbolKind][]pdb.SymbolId
}

// NewOcclusionTable creates an empty table.
func NewOcclusionTable() *OcclusionTable {
	return &OcclusionTable{occludedBy: make(map[pdb.SymbolKind][]pdb.SymbolId)}
}

// Record notes that occluder occludes the class symbol class.
func (t *OcclusionTable) Record(occluder, class pdb.SymbolId) {
	for _, s := range t.occludedBy[class.Kind] {
		if s.Equal(occluder) {
			return
		}
	}
	t.occludedBy[class.Kind] = append(t.occludedBy[class.Kind], occluder)
}

// mergeOccludingGroups implements §4.3.1's symbol-group occlusion merge:
// two groups occlude when one symbol can be matched by another (a literal
// occludes the generic class its value falls into; a token-non-terminal
// occludes a class it could emit). Occluding groups are merged, the
// lower-precedence "generic" group absorbing the higher-precedence
// "defined" group's items, so that peek (not blind shifting) is what
// distinguishes them afterwards.
//
// The merge runs when h.Kind == ScannerGraph (scanners always merge) or
// when h.Cfg.AllowOccludingSymbols is set; otherwise an occlusion that
// would have been merged is left as a distinct group, which build.go
// turns into a reported ambiguity instead of a silent absorption.
func (h *Host) mergeOccludingGroups(order []pdb.SymbolId, groups map[pdb.SymbolId][]item.Item) ([]pdb.SymbolId, map[pdb.SymbolId][]item.Item, bool) {
	merge := h.Kind == ScannerGraph || h.Cfg.AllowOccludingSymbols
	if !merge {
		return order, groups, false
	}
	var classOrder []pdb.SymbolId
	for _, s := range order {
		if s.Kind.IsClass() {
			classOrder = append(classOrder, s)
		}
	}
	if len(classOrder) == 0 {
		return order, groups, false
	}
	merged := false
	newOrder := make([]pdb.SymbolId, 0, len(order))
	newGroups := make(map[pdb.SymbolId][]item.Item, len(groups))
	absorbedInto := make(map[pdb.SymbolId]pdb.SymbolId)
	for _, class := range classOrder {
		for _, other := range order {
			if other.Kind.IsClass() || other.Equal(class) {
				continue
			}
			if _, already := absorbedInto[other]; already {
				continue
			}
			if other.Occludes(class) {
				absorbedInto[other] = class
				merged = true
			}
		}
	}
	for _, s := range order {
		if target, ok := absorbedInto[s]; ok {
			newGroups[target] = append(newGroups[target], groups[s]...)
			continue
		}
		newOrder = append(newOrder, s)
		newGroups[s] = append(newGroups[s], groups[s]...)
	}
	return newOrder, newGroups, merged
}
