package radlrgo

import (
	"fmt"
	"sync"
)

// --- Interned strings -------------------------------------------------

// IString is a handle into an Interner. Two IStrings compare equal iff the
// underlying text is identical; comparison is therefore O(1) and never
// touches the text itself.
type IString uint32

// Undefined is the zero-value IString. Index 0 of every Interner is
// reserved for it, so Lookup(Undefined) returns "".
const Undefined IString = 0

// Interner is an append-only, thread-safe string table. It is the only
// piece of mutable state shared across concurrent graph builds (§5): calls
// to Intern from independent builds may interleave freely and will return
// identical ids for identical text.
type Interner struct {
	mu   sync.Mutex
	strs []string
	ids  map[string]IString
}

// NewInterner creates an empty, ready-to-use Interner.
func NewInterner() *Interner {
	in := &Interner{
		strs: make([]string, 1, 64), // index 0 reserved for Undefined
		ids:  make(map[string]IString, 64),
	}
	return in
}

// Intern returns the IString for s, allocating a new one on first sight.
func (in *Interner) Intern(s string) IString {
	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.ids[s]; ok {
		return id
	}
	id := IString(len(in.strs))
	in.strs = append(in.strs, s)
	in.ids[s] = id
	return id
}

// Lookup returns the text for id, or "" if id was never interned by in.
func (in *Interner) Lookup(id IString) string {
	in.mu.Lock()
	defer in.mu.Unlock()
	if int(id) >= len(in.strs) {
		return ""
	}
	return in.strs[id]
}

// --- Spans --------------------------------------------------------------

// Span captures a half-open run of input positions (x…y), used to attach
// grammar-path provenance to diagnostics (§7).
type Span [2]uint64

// From returns the start value of a span.
func (s Span) From() uint64 { return s[0] }

// To returns the end value of a span.
func (s Span) To() uint64 { return s[1] }

// Len returns the length of (x…y).
func (s Span) Len() uint64 { return s[1] - s[0] }

// IsNull reports whether the span carries no position information.
func (s Span) IsNull() bool { return s == Span{} }

// Extend grows s so that it also covers other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
