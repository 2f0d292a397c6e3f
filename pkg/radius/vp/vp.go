// Package vp defines the decoder's output unit (the attribute/value pair)
// and the ordered cursor it is appended to, per spec.md section 3.
package vp

import "github.com/openradius/raddecode/pkg/radius/dictionary"

// NoTag marks a VP with no RFC 2868 tag.
const NoTag = -1

// Pair is a produced attribute/value pair. Value holds a Go-native typed
// value whose concrete type matches Descriptor.Type (see Box), except when
// Descriptor has IsUnknown set, in which case Value is always []byte.
//
// Go has no arena allocator; Descriptor and Value are owned by normal GC
// rather than a caller-supplied arena, which resolves the "language without
// arenas should clone descriptor data or use reference counting" guidance of
// spec.md section 9 in the simplest available way.
type Pair struct {
	Descriptor *dictionary.Descriptor
	Tag        int // NoTag, or 1..31
	Value      any
	Tainted    bool
}

// Cursor is an ordered append-only sink of VPs.
type Cursor struct {
	pairs []Pair
}

// Append adds a VP to the tail of the cursor.
func (c *Cursor) Append(p Pair) {
	c.pairs = append(c.pairs, p)
}

// Splice appends the contents of other to the tail of c, in order.
func (c *Cursor) Splice(other *Cursor) {
	c.pairs = append(c.pairs, other.pairs...)
}

// Pairs returns the VPs accumulated so far, in wire order.
func (c *Cursor) Pairs() []Pair {
	return c.pairs
}

// Len reports how many VPs have been appended.
func (c *Cursor) Len() int {
	return len(c.pairs)
}

// Context carries the per-packet secret material shared by every obfuscation
// scheme and TLV/VSA/extended decode within a single decode call. Immutable
// during a decode, per spec.md section 3.
type Context struct {
	Secret              []byte
	Vector              [16]byte
	TunnelPasswordZeros bool
}
