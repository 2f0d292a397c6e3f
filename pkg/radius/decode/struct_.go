package decode

import (
	"github.com/openradius/raddecode/pkg/radius/dictionary"
	"github.com/openradius/raddecode/pkg/radius/rerr"
	"github.com/openradius/raddecode/pkg/radius/vp"
	"github.com/openradius/raddecode/pkg/radius/wire"
)

func defaultWidthFor(t dictionary.SemanticType) int {
	min, max := sizeRange(t)
	if min == max && min > 0 {
		return min
	}
	return 0
}

// decodeStruct decodes a struct-typed attribute's fixed-width fields in
// order, then any trailing TLV tail, per spec.md section 4.8 item 5. If the
// tail fails TLV validation, the already-decoded fixed fields are kept and
// the unparsed remainder is attached as a single unknown-octets sibling
// rather than discarding the whole attribute — the Open Question resolution
// recorded in SPEC_FULL.md.
func decodeStruct(dict dictionary.Dictionary, pctx *vp.Context, parent *dictionary.Descriptor, data []byte, attrLen, depth int) (*vp.Cursor, error) {
	local := &vp.Cursor{}
	off := 0
	for _, f := range parent.Struct {
		width := f.Width
		if width == 0 {
			width = defaultWidthFor(f.Type)
		}
		if width == 0 || off+width > attrLen {
			return nil, rerr.New(rerr.KindInsufficientData, "struct: field truncated")
		}
		raw, err := wire.BoundsCopy(data, off, width)
		if err != nil {
			return nil, err
		}
		val, err := parseLeaf(f.Type, raw)
		if err != nil {
			return nil, err
		}
		fieldDesc := dictionary.NewDescriptor(0, f.Name, f.Type, parent, dictionary.Flags{})
		local.Append(vp.Pair{Descriptor: fieldDesc, Tag: vp.NoTag, Value: val, Tainted: true})
		off += width
	}

	if off < attrLen {
		tail := data[off:attrLen]
		tailCur, err := decodeTLV(dict, pctx, parent, tail, depth+1)
		if err != nil {
			unk := dict.UnknownAfromFields(parent, 0, parent.Number)
			local.Append(vp.Pair{Descriptor: unk, Tag: vp.NoTag, Value: append([]byte(nil), tail...), Tainted: true})
		} else {
			local.Splice(tailCur)
		}
	}
	return local, nil
}
