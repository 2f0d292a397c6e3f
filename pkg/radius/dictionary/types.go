// Package dictionary defines the attribute/vendor descriptor model consumed by
// pkg/radius/decode. Loading descriptors and persisting them lives in sibling
// packages (builtin, loader, dictsource, unknowncache); this package defines
// the shapes those packages produce and the decoder consumes, plus Memory
// (the in-memory Dictionary, which also fabricates unknown descriptors) and
// the Live wrapper.
package dictionary

import "sort"

// SemanticType is the wire-level interpretation of an attribute's value.
type SemanticType int

const (
	TypeInvalid SemanticType = iota
	TypeString
	TypeOctets
	TypeIPv4Addr
	TypeIPv6Addr
	TypeIPv4Prefix
	TypeIPv6Prefix
	TypeComboIPAddr
	TypeComboIPPrefix
	TypeBool
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint64
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeFloat32
	TypeFloat64
	TypeDate
	TypeTimeDelta
	TypeEthernet
	TypeIfID
	TypeSize
	TypeAbinary
	TypeTLV
	TypeStruct
	TypeVSA
	TypeVendor
	TypeExtended
)

func (t SemanticType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeOctets:
		return "octets"
	case TypeIPv4Addr:
		return "ipv4_addr"
	case TypeIPv6Addr:
		return "ipv6_addr"
	case TypeIPv4Prefix:
		return "ipv4_prefix"
	case TypeIPv6Prefix:
		return "ipv6_prefix"
	case TypeComboIPAddr:
		return "combo_ip_addr"
	case TypeComboIPPrefix:
		return "combo_ip_prefix"
	case TypeBool:
		return "bool"
	case TypeUint8:
		return "uint8"
	case TypeUint16:
		return "uint16"
	case TypeUint32:
		return "uint32"
	case TypeUint64:
		return "uint64"
	case TypeInt8:
		return "int8"
	case TypeInt16:
		return "int16"
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeFloat32:
		return "float32"
	case TypeFloat64:
		return "float64"
	case TypeDate:
		return "date"
	case TypeTimeDelta:
		return "time_delta"
	case TypeEthernet:
		return "ethernet"
	case TypeIfID:
		return "ifid"
	case TypeSize:
		return "size"
	case TypeAbinary:
		return "abinary"
	case TypeTLV:
		return "tlv"
	case TypeStruct:
		return "struct"
	case TypeVSA:
		return "vsa"
	case TypeVendor:
		return "vendor"
	case TypeExtended:
		return "extended"
	default:
		return "invalid"
	}
}

// Subtype identifies the obfuscation scheme applied to an attribute's value
// on the wire, per spec.md section 3 "flags.subtype".
type Subtype int

const (
	SubtypeNone Subtype = iota
	SubtypeUserPassword
	SubtypeTunnelPassword
	SubtypeAscendSecret
)

// Flags mirrors the dictionary flag bundle of spec.md section 3.
type Flags struct {
	HasTag    bool    // tag byte (0x01-0x1F) allowed ahead of the value
	Subtype   Subtype // obfuscation scheme
	Concat    bool    // RFC 2869 long-octets concatenation
	Extra     bool    // long-extended flag byte present (RFC 6929)
	Length    int     // fixed width in bytes, 0 if variable
	IsUnknown bool    // fabricated placeholder, absent from the loaded dictionary
}

// StructField describes one fixed-width field of a struct-typed attribute,
// decoded in order before any TLV tail (spec.md section 4.8 step 5,
// "struct").
type StructField struct {
	Name  string
	Type  SemanticType
	Width int // bytes; 0 selects the semantic type's default width
}

// Descriptor is an immutable attribute record as loaded from (or fabricated
// on behalf of) the dictionary. Descriptors form a DAG: TLV/struct/vendor
// children point back at Parent.
type Descriptor struct {
	Number   uint32
	Name     string
	Type     SemanticType
	Parent   *Descriptor
	Flags    Flags
	Vendor   *Vendor // non-nil when Number is scoped under a vendor (VSA child)
	Struct   []StructField
	children map[uint32]*Descriptor
	byType   map[SemanticType]*Descriptor
}

// NewDescriptor builds a descriptor with an empty child table, ready to have
// children attached via AddChild.
func NewDescriptor(number uint32, name string, typ SemanticType, parent *Descriptor, flags Flags) *Descriptor {
	return &Descriptor{
		Number:   number,
		Name:     name,
		Type:     typ,
		Parent:   parent,
		Flags:    flags,
		children: make(map[uint32]*Descriptor),
		byType:   make(map[SemanticType]*Descriptor),
	}
}

// AddChild registers d as a child of parent, indexed by attribute number and
// (for combo_ip_addr/combo_ip_prefix resolution) by semantic type.
func (parent *Descriptor) AddChild(d *Descriptor) {
	if parent.children == nil {
		parent.children = make(map[uint32]*Descriptor)
	}
	if parent.byType == nil {
		parent.byType = make(map[SemanticType]*Descriptor)
	}
	parent.children[d.Number] = d
	if _, exists := parent.byType[d.Type]; !exists {
		parent.byType[d.Type] = d
	}
}

// ChildByNum resolves a child descriptor by attribute number. Returns nil if
// absent — callers fabricate an unknown descriptor in that case.
func (parent *Descriptor) ChildByNum(number uint32) *Descriptor {
	if parent == nil || parent.children == nil {
		return nil
	}
	return parent.children[number]
}

// ChildByType resolves a child descriptor by semantic type, used to find the
// v4/v6 sibling of a combo_ip_addr/combo_ip_prefix attribute.
func (parent *Descriptor) ChildByType(t SemanticType) *Descriptor {
	if parent == nil || parent.byType == nil {
		return nil
	}
	return parent.byType[t]
}

// Children returns every direct child descriptor, sorted by attribute
// number, for tooling that walks the dictionary (e.g. "raddecode
// dictionary").
func (parent *Descriptor) Children() []*Descriptor {
	if parent == nil {
		return nil
	}
	out := make([]*Descriptor, 0, len(parent.children))
	for _, c := range parent.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Vendor is a vendor record resolved by Private Enterprise Number, carrying
// the TLV schema its sub-attributes use on the wire.
type Vendor struct {
	PEN         uint32
	Name        string
	TypeWidth   int // 1, 2, or 4
	LengthWidth int // 0, 1, or 2
	IsWiMAX     bool
	Root        *Descriptor // synthetic root whose children are this vendor's attributes
	IsUnknown   bool
}

// NewVendor creates a vendor record with a fresh synthetic root descriptor.
func NewVendor(pen uint32, name string, typeWidth, lengthWidth int) *Vendor {
	v := &Vendor{PEN: pen, Name: name, TypeWidth: typeWidth, LengthWidth: lengthWidth}
	v.Root = NewDescriptor(0, name, TypeVendor, nil, Flags{})
	v.Root.Vendor = v
	return v
}

// Dictionary is the external collaborator consulted by pkg/radius/decode, per
// spec.md section 6 "Dictionary interface consumed".
type Dictionary interface {
	Root() *Descriptor
	ChildByNum(parent *Descriptor, number uint32) *Descriptor
	ChildByType(parent *Descriptor, t SemanticType) *Descriptor
	VendorByNum(pen uint32) *Vendor
	UnknownAfromFields(parent *Descriptor, pen uint32, number uint32) *Descriptor
	UnknownVendorAfromNum(pen uint32) *Vendor
}
