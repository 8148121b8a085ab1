package item

import "github.com/npillmayer/radlrgo/pdb"

// The functions below are the Go counterpart of §4.2's "Container
// extension traits over collections of items": Rust's extension-trait
// methods on iterators become plain free functions over []Item here,
// since Go has no equivalent of IntoIterator adapters on user types.

// TermItems filters items whose dot sits on a terminal.
func TermItems(items []Item) []Item {
	return filter(items, func(i Item) bool { return i.GetType().Kind == TypeTerminal })
}

// NontermItems filters items whose dot sits on a (non-token) non-terminal.
func NontermItems(items []Item) []Item {
	return filter(items, func(i Item) bool { return i.GetType().Kind == TypeNonTerminal })
}

// TokenNontermItems filters items whose dot sits on a token-non-terminal.
func TokenNontermItems(items []Item) []Item {
	return filter(items, func(i Item) bool { return i.GetType().Kind == TypeTokenNonTerminal })
}

// IncompleteItems filters out complete items.
func IncompleteItems(items []Item) []Item {
	return filter(items, func(i Item) bool { return !i.IsComplete() })
}

// CompletedItems filters down to complete items.
func CompletedItems(items []Item) []Item {
	return filter(items, func(i Item) bool { return i.IsComplete() })
}

// InscopeItems filters out items marked out-of-scope (ToOOS).
func InscopeItems(items []Item) []Item {
	return filter(items, func(i Item) bool { return !i.IsOutOfScope() })
}

// OutscopeItems filters down to items marked out-of-scope.
func OutscopeItems(items []Item) []Item {
	return filter(items, func(i Item) bool { return i.IsOutOfScope() })
}

// ToAbsolute strips provenance from every item, returning their
// StaticItem identity (used for kernel-hash interning, §4.3 "New states
// are interned by (state_type, hash(kernel))").
func ToAbsolute(items []Item) []pdb.StaticItem {
	out := make([]pdb.StaticItem, len(items))
	for k, i := range items {
		out[k] = i.ToStatic()
	}
	return out
}

// TryIncrement increments every item, dropping any that are already
// complete (a try_increment over the whole collection).
func TryIncrement(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, i := range items {
		if next, ok := i.Increment(); ok {
			out = append(out, next)
		}
	}
	return out
}

// TryDecrement decrements every item, dropping any already at the start.
func TryDecrement(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, i := range items {
		if prev, ok := i.Decrement(); ok {
			out = append(out, prev)
		}
	}
	return out
}

// GroupBySymbol partitions items by the symbol at their dot, preserving
// first-seen group order — the symbol-grouping step of §4.3: "Term items
// are grouped by active SymbolId."
func GroupBySymbol(items []Item) ([]pdb.SymbolId, map[pdb.SymbolId][]Item) {
	var order []pdb.SymbolId
	groups := make(map[pdb.SymbolId][]Item)
	for _, i := range items {
		s := i.Sym()
		if _, ok := groups[s]; !ok {
			order = append(order, s)
		}
		groups[s] = append(groups[s], i)
	}
	return order, groups
}

// GroupByGoal partitions items by their Goal provenance field.
func GroupByGoal(items []Item) ([]uint32, map[uint32][]Item) {
	var order []uint32
	groups := make(map[uint32][]Item)
	for _, i := range items {
		if _, ok := groups[i.Goal]; !ok {
			order = append(order, i.Goal)
		}
		groups[i.Goal] = append(groups[i.Goal], i)
	}
	return order, groups
}

func filter(items []Item, keep func(Item) bool) []Item {
	out := make([]Item, 0, len(items))
	for _, i := range items {
		if keep(i) {
			out = append(out, i)
		}
	}
	return out
}
