package decode

import (
	"github.com/openradius/raddecode/pkg/radius/dictionary"
	"github.com/openradius/raddecode/pkg/radius/rerr"
	"github.com/openradius/raddecode/pkg/radius/vp"
	"github.com/openradius/raddecode/pkg/radius/wire"
)

// decodeWiMAX reassembles a WiMAX Forum T33-001 fragmented Vendor-Specific
// attribute, per spec.md section 4.6. Each fragment carries the usual
// 4-byte PEN, then a 3-byte fragment header (attribute number, fragment
// length, continuation flag in the high bit) ahead of its data. When the
// continuation bit is clear in the first fragment, the attribute is decoded
// in place; otherwise this walks forward across subsequent top-level
// Vendor-Specific attributes (vsaNumber identifies that repeated type) until
// a fragment with the continuation bit clear terminates the run.
func decodeWiMAX(dict dictionary.Dictionary, pctx *vp.Context, vsaNumber uint32, vendor *dictionary.Vendor, data []byte, attrLen, packetLen, depth int) (*vp.Cursor, int, error) {
	if attrLen < 4+3 {
		return nil, 0, rerr.New(rerr.KindInsufficientData, "wimax: fragment header truncated")
	}
	pen, err := wire.Uint32(data, 0)
	if err != nil {
		return nil, 0, err
	}
	wimaxAttr := data[4]
	wimaxLen := int(data[5])
	cont := data[6]
	if wimaxLen+4 != attrLen {
		return nil, 0, rerr.New(rerr.KindMalformedStructure, "wimax: first fragment length mismatch")
	}

	combined := append([]byte(nil), data[7:attrLen]...)
	consumed := attrLen

	if cont&0x80 != 0 {
		off := attrLen
		for {
			if off+2 > packetLen {
				return nil, 0, rerr.New(rerr.KindInsufficientData, "wimax: missing final fragment")
			}
			outerType := data[off]
			outerLen := int(data[off+1])
			if outerType != byte(vsaNumber) || outerLen < 2 || off+outerLen > packetLen {
				return nil, 0, rerr.New(rerr.KindMalformedStructure, "wimax: fragment shape violation")
			}
			fragAttrLen := outerLen - 2
			fragData := data[off+2 : off+outerLen]
			if fragAttrLen < 4+3 {
				return nil, 0, rerr.New(rerr.KindInsufficientData, "wimax: fragment header truncated")
			}
			fragPEN, err := wire.Uint32(fragData, 0)
			if err != nil || fragPEN != pen {
				return nil, 0, rerr.New(rerr.KindMalformedStructure, "wimax: fragment PEN mismatch")
			}
			fragAttr := fragData[4]
			fragLen := int(fragData[5])
			fragCont := fragData[6]
			if fragAttr != wimaxAttr {
				return nil, 0, rerr.New(rerr.KindMalformedStructure, "wimax: fragment attribute number mismatch")
			}
			if fragLen+4 != fragAttrLen {
				return nil, 0, rerr.New(rerr.KindMalformedStructure, "wimax: fragment length mismatch")
			}
			combined = append(combined, fragData[7:fragAttrLen]...)
			consumed += outerLen
			off += outerLen
			if fragCont&0x80 == 0 {
				break
			}
		}
	}

	child := dict.ChildByNum(vendor.Root, uint32(wimaxAttr))
	if child == nil {
		child = dict.UnknownAfromFields(vendor.Root, vendor.PEN, uint32(wimaxAttr))
	}

	local := &vp.Cursor{}
	if _, err := decodePairValue(dict, local, pctx, child, combined, len(combined), len(combined), depth+1, false); err != nil {
		return nil, 0, err
	}
	return local, consumed, nil
}
