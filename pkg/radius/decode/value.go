package decode

import (
	"github.com/openradius/raddecode/pkg/radius/dictionary"
	"github.com/openradius/raddecode/pkg/radius/obfuscate"
	"github.com/openradius/raddecode/pkg/radius/rerr"
	"github.com/openradius/raddecode/pkg/radius/vp"
)

// maxAttrLen is the sanity ceiling on a single attribute's declared value
// length (spec.md section 4.8 step 1). No real RADIUS attribute approaches
// this; it exists to stop a corrupt length field from causing unbounded
// fragment-scan work.
const maxAttrLen = 128 * 1024

// decodePairValue decodes one attribute body under parent, per spec.md
// section 4.8. data is the lookahead window starting at the attribute's
// value; attrLen is this attribute's own declared value length; packetLen
// bounds how far beyond attrLen fragment-reassembly sub-decoders (concat,
// extended, WiMAX) may look — it equals attrLen for every recursive call
// that is not a direct top-level dispatch, since only top-level attribute
// types fragment. nestedUnderExtended is set only by decodeExtended's own
// recursive calls, and tells a TypeVSA parent that it is an RFC 6929 section
// 2.4 Extended-Vendor-Specific attribute (PEN(4)+vendor-type(1)+value, a
// single vendor sub-attribute) rather than a top-level Vendor-Specific
// attribute (PEN(4)+vendor-schema TLV list).
//
// On any recoverable failure decodePairValue falls back to a single raw
// octets VP under a fabricated unknown descriptor rather than propagating an
// error — it is the one place in the decoder where that conversion happens,
// per spec.md section 4.8's closing "on any failure it falls back to raw
// octets rather than aborting". The non-nil error return exists only for the
// nil-parent sanity case, which a correctly wired dictionary never produces.
func decodePairValue(dict dictionary.Dictionary, cur *vp.Cursor, pctx *vp.Context, parent *dictionary.Descriptor, data []byte, attrLen, packetLen, depth int, nestedUnderExtended bool) (int, error) {
	if parent == nil {
		return 0, rerr.New(rerr.KindSanity, "decode_pair_value: nil parent descriptor")
	}
	if attrLen == 0 {
		return 0, nil
	}
	if attrLen > packetLen || attrLen > maxAttrLen || depth > maxDepth {
		return fallbackRaw(cur, dict, parent, data, attrLen), nil
	}

	if parent.Flags.Concat {
		combined, consumed, err := decodeConcat(parent.Number, data, attrLen, packetLen)
		if err != nil {
			return fallbackRaw(cur, dict, parent, data, attrLen), nil
		}
		cur.Append(vp.Pair{Descriptor: parent, Tag: vp.NoTag, Value: combined, Tainted: true})
		return consumed, nil
	}

	body := data[:attrLen]
	tag := vp.NoTag

	switch {
	case parent.Flags.Subtype == dictionary.SubtypeTunnelPassword:
		if len(body) == 0 {
			return fallbackRaw(cur, dict, parent, data, attrLen), nil
		}
		if b := body[0]; b >= 1 && b <= 0x1F {
			tag = int(b)
		}
		body = body[1:]
	case parent.Flags.HasTag && len(body) > 0 && body[0] < 0x20 &&
		(parent.Type == dictionary.TypeString || parent.Type == dictionary.TypeUint32):
		b := body[0]
		if b >= 1 && b <= 0x1F {
			tag = int(b)
		}
		switch parent.Type {
		case dictionary.TypeString:
			body = body[1:]
		case dictionary.TypeUint32:
			if len(body) >= 4 {
				nb := append([]byte(nil), body...)
				nb[0] = 0
				body = nb
			}
		}
	}

	if parent.Flags.Subtype != dictionary.SubtypeNone {
		var plain []byte
		var err error
		switch parent.Flags.Subtype {
		case dictionary.SubtypeUserPassword:
			if parent.Flags.Length > 0 {
				plain, err = obfuscate.DecodeUserPasswordRaw(body, pctx.Secret, pctx.Vector)
			} else {
				plain, err = obfuscate.DecodeUserPassword(body, pctx.Secret, pctx.Vector)
			}
		case dictionary.SubtypeTunnelPassword:
			plain, err = obfuscate.DecodeTunnelPassword(body, pctx.Secret, pctx.Vector, pctx.TunnelPasswordZeros)
		case dictionary.SubtypeAscendSecret:
			plain, err = obfuscate.DecodeAscendSecret(body, pctx.Secret, pctx.Vector)
		}
		if err != nil {
			return fallbackRaw(cur, dict, parent, data, attrLen), nil
		}
		body = plain
	}

	effective := parent
	switch parent.Type {
	case dictionary.TypeComboIPAddr:
		switch len(body) {
		case 4:
			effective = dict.ChildByType(parent.Parent, dictionary.TypeIPv4Addr)
		case 16:
			effective = dict.ChildByType(parent.Parent, dictionary.TypeIPv6Addr)
		}
		if effective == nil {
			return fallbackRaw(cur, dict, parent, data, attrLen), nil
		}
	case dictionary.TypeComboIPPrefix:
		if len(body) <= 6 {
			effective = dict.ChildByType(parent.Parent, dictionary.TypeIPv4Prefix)
		} else {
			effective = dict.ChildByType(parent.Parent, dictionary.TypeIPv6Prefix)
		}
		if effective == nil {
			return fallbackRaw(cur, dict, parent, data, attrLen), nil
		}
	}

	if !isContainer(effective.Type) {
		min, max := sizeRange(effective.Type)
		if len(body) < min || len(body) > max {
			return fallbackRaw(cur, dict, parent, data, attrLen), nil
		}
	}

	switch effective.Type {
	case dictionary.TypeExtended:
		sub, consumed, err := decodeExtended(dict, pctx, effective, parent.Number, data, attrLen, packetLen, depth+1)
		if err != nil {
			return fallbackRaw(cur, dict, parent, data, attrLen), nil
		}
		cur.Splice(sub)
		return consumed, nil

	case dictionary.TypeVSA:
		sub, consumed, err := decodeVSA(dict, pctx, effective, parent.Number, data, attrLen, packetLen, depth+1, nestedUnderExtended)
		if err != nil {
			return fallbackRaw(cur, dict, parent, data, attrLen), nil
		}
		cur.Splice(sub)
		return consumed, nil

	case dictionary.TypeTLV:
		sub, err := decodeTLV(dict, pctx, effective, body, depth+1)
		if err != nil {
			return fallbackRaw(cur, dict, parent, data, attrLen), nil
		}
		cur.Splice(sub)
		return attrLen, nil

	case dictionary.TypeStruct:
		sub, err := decodeStruct(dict, pctx, effective, body, len(body), depth+1)
		if err != nil {
			return fallbackRaw(cur, dict, parent, data, attrLen), nil
		}
		cur.Splice(sub)
		return attrLen, nil

	default:
		val, err := parseLeaf(effective.Type, body)
		if err != nil {
			return fallbackRaw(cur, dict, parent, data, attrLen), nil
		}
		cur.Append(vp.Pair{Descriptor: effective, Tag: tag, Value: val, Tainted: true})
		return attrLen, nil
	}
}

// fallbackRaw replaces parent with a fabricated unknown octets descriptor
// carrying the attribute's original bytes verbatim, per spec.md section 4.8
// step 6. Returns the number of bytes consumed (attrLen), so the caller's
// accounting stays correct even though decoding failed.
func fallbackRaw(cur *vp.Cursor, dict dictionary.Dictionary, parent *dictionary.Descriptor, data []byte, attrLen int) int {
	grandparent := parent.Parent
	pen := uint32(0)
	if grandparent != nil && grandparent.Vendor != nil {
		pen = grandparent.Vendor.PEN
	}
	unk := dict.UnknownAfromFields(grandparent, pen, parent.Number)

	n := attrLen
	if n > len(data) {
		n = len(data)
	}
	raw := append([]byte(nil), data[:n]...)
	cur.Append(vp.Pair{Descriptor: unk, Tag: vp.NoTag, Value: raw, Tainted: true})
	return attrLen
}
