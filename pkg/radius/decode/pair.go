package decode

import (
	"github.com/openradius/raddecode/pkg/radius/dictionary"
	"github.com/openradius/raddecode/pkg/radius/rerr"
	"github.com/openradius/raddecode/pkg/radius/vp"
)

// cuiAttributeNumber is Chargeable-User-Identity (RFC 4372), the one
// attribute spec.md section 4.10 singles out: a declared length of exactly 2
// (empty value) still emits a VP, where every other attribute of that length
// is silently skipped.
const cuiAttributeNumber = 89

// DecodePair decodes the single top-level attribute at the start of data and
// appends whatever VPs it produces onto cur, per spec.md section 4.10.
// data is the remainder of the packet from this attribute's type byte
// onward — decode_extended/decode_wimax/decode_concat need that full window
// to reassemble fragments that span subsequent attributes.
//
// Only header-level violations here (buffer shorter than 2 bytes, declared
// length under 2, or declared length overrunning the packet) are hard
// errors; everything past the header degrades to a raw VP instead, so a
// caller walking a packet attribute-by-attribute never has to guess how far
// a malformed record reached — DecodePair always reports how many bytes it
// consumed.
func DecodePair(dict dictionary.Dictionary, cur *vp.Cursor, pctx *vp.Context, data []byte) (int, error) {
	if len(data) < 2 {
		return 0, rerr.New(rerr.KindInsufficientData, "decode_pair: header underflow")
	}
	typ := uint32(data[0])
	declaredLen := int(data[1])
	if declaredLen < 2 {
		return 0, rerr.New(rerr.KindInsufficientData, "decode_pair: declared length under 2")
	}
	if declaredLen > len(data) {
		return 0, rerr.New(rerr.KindOverflow, "decode_pair: declared length exceeds remaining packet")
	}

	root := dict.Root()
	child := dict.ChildByNum(root, typ)
	if child == nil {
		child = dict.UnknownAfromFields(root, 0, typ)
	}

	if declaredLen == 2 {
		if typ == cuiAttributeNumber {
			cur.Append(vp.Pair{Descriptor: child, Tag: vp.NoTag, Value: []byte{}, Tainted: true})
		}
		return 2, nil
	}

	remaining := data[2:]
	attrLen := declaredLen - 2
	packetLen := len(remaining)

	consumed, err := decodePairValue(dict, cur, pctx, child, remaining, attrLen, packetLen, 0, false)
	if err != nil {
		// Defensive only: decodePairValue's documented contract is to
		// never propagate past its own raw fallback except the nil-parent
		// sanity case, which cannot occur here since child is never nil.
		n := attrLen
		if n > len(remaining) {
			n = len(remaining)
		}
		raw := append([]byte(nil), remaining[:n]...)
		unk := dict.UnknownAfromFields(root, 0, typ)
		cur.Append(vp.Pair{Descriptor: unk, Tag: vp.NoTag, Value: raw, Tainted: true})
		consumed = attrLen
	}
	return 2 + consumed, nil
}
