// Package decode implements the recursive attribute decoder of spec.md
// section 4: TLV well-formedness checking, the concat/TLV/extended/WiMAX/VSA
// sub-decoders, the per-attribute value dispatcher, and the top-level
// decode_pair entry point.
package decode

import "github.com/openradius/raddecode/pkg/radius/rerr"

// maxDepth bounds TLV/VSA/struct/extended recursion (spec.md section 9:
// "recommended bound of 10"). Exceeding it collapses the attribute to raw
// rather than risking a stack blowout on adversarial input.
const maxDepth = 10

// DecodeTLVOK walks buf as a sequence of (type, length) records under the
// given widths and reports the first well-formedness violation, per spec.md
// section 4.2. typeWidth is 1, 2, or 4 bytes; lengthWidth is 0 (no length
// field — a single record fills the rest of buf), 1, or 2 bytes.
//
// A zero attribute number is normally forbidden, except when typeWidth==1 —
// the Colubris quirk spec.md section 4.2 calls out by name, where vendors are
// known to emit type-1 records numbered from zero.
func DecodeTLVOK(buf []byte, typeWidth, lengthWidth int) error {
	if lengthWidth == 0 {
		return nil
	}
	off := 0
	for off < len(buf) {
		if off+typeWidth > len(buf) {
			return rerr.New(rerr.KindInsufficientData, "tlv: truncated type field")
		}

		var typ uint32
		switch typeWidth {
		case 1:
			typ = uint32(buf[off])
		case 2:
			typ = uint32(buf[off])<<8 | uint32(buf[off+1])
			if typ == 0 {
				return rerr.New(rerr.KindMalformedStructure, "tlv: zero attribute number")
			}
		case 4:
			if buf[off] != 0 {
				return rerr.New(rerr.KindMalformedStructure, "tlv: nonzero reserved byte in 4-byte type")
			}
			typ = uint32(buf[off+1])<<16 | uint32(buf[off+2])<<8 | uint32(buf[off+3])
			if typ == 0 {
				return rerr.New(rerr.KindMalformedStructure, "tlv: zero attribute number")
			}
		default:
			return rerr.New(rerr.KindSanity, "tlv: unsupported type width")
		}

		lenOff := off + typeWidth
		if lenOff+lengthWidth > len(buf) {
			return rerr.New(rerr.KindInsufficientData, "tlv: truncated length field")
		}

		var recLen int
		switch lengthWidth {
		case 1:
			recLen = int(buf[lenOff])
		case 2:
			if buf[lenOff] != 0 {
				return rerr.New(rerr.KindMalformedStructure, "tlv: nonzero reserved byte in 2-byte length")
			}
			recLen = int(buf[lenOff+1])
		default:
			return rerr.New(rerr.KindSanity, "tlv: unsupported length width")
		}

		if recLen < typeWidth+lengthWidth {
			return rerr.New(rerr.KindMalformedStructure, "tlv: record shorter than its own header")
		}
		if off+recLen > len(buf) {
			return rerr.New(rerr.KindOverflow, "tlv: record overruns buffer")
		}
		off += recLen
	}
	return nil
}

// readTLVHeader re-derives one record's (number, total length, value offset)
// from an already-validated buffer. Called only after DecodeTLVOK has
// confirmed buf is well-formed, so the error returns here are defensive.
func readTLVHeader(buf []byte, typeWidth, lengthWidth int) (number uint32, recLen int, valOff int, err error) {
	if len(buf) < typeWidth {
		return 0, 0, 0, rerr.New(rerr.KindInsufficientData, "tlv: truncated type field")
	}
	switch typeWidth {
	case 1:
		number = uint32(buf[0])
	case 2:
		number = uint32(buf[0])<<8 | uint32(buf[1])
	case 4:
		number = uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
	default:
		return 0, 0, 0, rerr.New(rerr.KindSanity, "tlv: unsupported type width")
	}

	valOff = typeWidth + lengthWidth
	if lengthWidth == 0 {
		return number, len(buf), valOff, nil
	}
	if len(buf) < valOff {
		return 0, 0, 0, rerr.New(rerr.KindInsufficientData, "tlv: truncated length field")
	}
	switch lengthWidth {
	case 1:
		recLen = int(buf[typeWidth])
	case 2:
		recLen = int(buf[typeWidth])<<8 | int(buf[typeWidth+1])
	}
	if recLen < valOff || recLen > len(buf) {
		return 0, 0, 0, rerr.New(rerr.KindOverflow, "tlv: record length out of range")
	}
	return number, recLen, valOff, nil
}
