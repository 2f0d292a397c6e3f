package dictionary

import (
	"fmt"
	"sort"
)

// Memory is a plain in-memory Dictionary, the shape produced by both
// pkg/radius/dictionary/builtin and pkg/radius/dictionary/loader. Unknown
// descriptors it fabricates are cached for the lifetime of the Dictionary so
// repeated decodes of the same unknown attribute/vendor share one instance,
// matching the DAG-of-descriptors ownership model of spec.md section 9.
type Memory struct {
	root       *Descriptor
	vendors    map[uint32]*Vendor
	unknownVnd map[uint32]*Vendor
	unknownAtt map[unknownKey]*Descriptor
}

type unknownKey struct {
	parent *Descriptor
	pen    uint32
	number uint32
}

// New creates an empty dictionary with a synthetic root descriptor. Callers
// populate it via Root().AddChild and RegisterVendor.
func New() *Memory {
	return &Memory{
		root:       NewDescriptor(0, "Root", TypeStruct, nil, Flags{}),
		vendors:    make(map[uint32]*Vendor),
		unknownVnd: make(map[uint32]*Vendor),
		unknownAtt: make(map[unknownKey]*Descriptor),
	}
}

func (m *Memory) Root() *Descriptor { return m.root }

func (m *Memory) ChildByNum(parent *Descriptor, number uint32) *Descriptor {
	return parent.ChildByNum(number)
}

func (m *Memory) ChildByType(parent *Descriptor, t SemanticType) *Descriptor {
	return parent.ChildByType(t)
}

// RegisterVendor adds a vendor record, keyed by PEN.
func (m *Memory) RegisterVendor(v *Vendor) {
	m.vendors[v.PEN] = v
}

func (m *Memory) VendorByNum(pen uint32) *Vendor {
	return m.vendors[pen]
}

// Vendors returns every registered vendor, sorted by PEN, for tooling that
// walks the dictionary (e.g. "raddecode dictionary").
func (m *Memory) Vendors() []*Vendor {
	out := make([]*Vendor, 0, len(m.vendors))
	for _, v := range m.vendors {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PEN < out[j].PEN })
	return out
}

// UnknownAfromFields fabricates (or returns a cached) placeholder descriptor
// of semantic type octets for an attribute number absent from the
// dictionary, preserving parent/vendor lineage per spec.md section 3.
func (m *Memory) UnknownAfromFields(parent *Descriptor, pen uint32, number uint32) *Descriptor {
	key := unknownKey{parent: parent, pen: pen, number: number}
	if d, ok := m.unknownAtt[key]; ok {
		return d
	}
	name := fmt.Sprintf("Attr-%d", number)
	if pen != 0 {
		name = fmt.Sprintf("Vendor-%d-Attr-%d", pen, number)
	}
	d := NewDescriptor(number, name, TypeOctets, parent, Flags{IsUnknown: true})
	m.unknownAtt[key] = d
	return d
}

// UnknownVendorAfromNum fabricates (or returns a cached) placeholder vendor
// record for a PEN absent from the dictionary. The fabricated vendor uses
// the RFC 2865 default TLV schema (1-byte type, 1-byte length).
func (m *Memory) UnknownVendorAfromNum(pen uint32) *Vendor {
	if v, ok := m.unknownVnd[pen]; ok {
		return v
	}
	v := NewVendor(pen, fmt.Sprintf("Vendor-%d", pen), 1, 1)
	v.IsUnknown = true
	m.unknownVnd[pen] = v
	return v
}

var _ Dictionary = (*Memory)(nil)
