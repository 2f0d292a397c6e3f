package decode

import (
	"github.com/openradius/raddecode/pkg/radius/dictionary"
	"github.com/openradius/raddecode/pkg/radius/rerr"
	"github.com/openradius/raddecode/pkg/radius/vp"
)

// decodeExtended decodes an RFC 6929 extended attribute: a 1-byte extended
// attribute number, an optional flag byte (when the descriptor is
// "long-extended", flags.extra) whose high bit signals "more fragments", and
// the value. When the more-fragments bit is set this scans forward across
// subsequent top-level attributes sharing topNumber until a fragment with
// the bit clear terminates the run, per spec.md section 4.5.
//
// data is the full lookahead window (length packetLen); attrLen bounds this
// first fragment's own declared value.
func decodeExtended(dict dictionary.Dictionary, pctx *vp.Context, ext *dictionary.Descriptor, topNumber uint32, data []byte, attrLen, packetLen, depth int) (*vp.Cursor, int, error) {
	if attrLen < 1 {
		return nil, 0, rerr.New(rerr.KindInsufficientData, "extended: missing extended attribute number")
	}
	extType := uint32(data[0])
	hdrLen := 1
	more := false
	if ext.Flags.Extra {
		if attrLen < 2 {
			return nil, 0, rerr.New(rerr.KindInsufficientData, "extended: missing long-extended flag byte")
		}
		more = data[1]&0x80 != 0
		hdrLen = 2
	}

	child := dict.ChildByNum(ext, extType)
	if child == nil {
		child = dict.UnknownAfromFields(ext, 0, extType)
	}

	if !ext.Flags.Extra || !more {
		payload := data[hdrLen:attrLen]
		local := &vp.Cursor{}
		if _, err := decodePairValue(dict, local, pctx, child, payload, len(payload), len(payload), depth+1, true); err != nil {
			return nil, 0, err
		}
		return local, attrLen, nil
	}

	combined := append([]byte(nil), data[hdrLen:attrLen]...)
	consumed := attrLen
	off := attrLen
	for {
		if off+2 > packetLen {
			return nil, 0, rerr.New(rerr.KindInsufficientData, "extended: missing final fragment")
		}
		outerType := data[off]
		outerLen := int(data[off+1])
		if uint32(outerType) != topNumber || outerLen < 4 || off+outerLen > packetLen {
			return nil, 0, rerr.New(rerr.KindMalformedStructure, "extended: fragment shape violation")
		}
		fragAttrLen := outerLen - 2
		fragData := data[off+2 : off+outerLen]
		if fragAttrLen < 2 {
			return nil, 0, rerr.New(rerr.KindInsufficientData, "extended: fragment header truncated")
		}
		fragExtType := uint32(fragData[0])
		fragFlag := fragData[1]
		if fragExtType != extType {
			return nil, 0, rerr.New(rerr.KindMalformedStructure, "extended: fragment attribute number mismatch")
		}
		combined = append(combined, fragData[2:fragAttrLen]...)
		consumed += outerLen
		off += outerLen
		if fragFlag&0x80 == 0 {
			break
		}
	}

	local := &vp.Cursor{}
	if _, err := decodePairValue(dict, local, pctx, child, combined, len(combined), len(combined), depth+1, true); err != nil {
		return nil, 0, err
	}
	return local, consumed, nil
}
