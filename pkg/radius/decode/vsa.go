package decode

import (
	"github.com/openradius/raddecode/pkg/radius/dictionary"
	"github.com/openradius/raddecode/pkg/radius/rerr"
	"github.com/openradius/raddecode/pkg/radius/vp"
	"github.com/openradius/raddecode/pkg/radius/wire"
)

// decodeVSA decodes a Vendor-Specific attribute body: a 4-byte Private
// Enterprise Number followed by a vendor-schema TLV sequence, per spec.md
// section 4.7. vsaNumber is the enclosing top-level attribute number (used
// only to recognize WiMAX continuation fragments); packetLen extends beyond
// attrLen only when this call originates directly from DecodePair, which is
// exactly when fragment lookahead is legitimate.
//
// nestedUnderExtended selects the RFC 6929 section 2.4 Extended-Vendor-
// Specific shape instead: data is PEN(4) + vendor-type(1) + value, a single
// vendor sub-attribute rather than a vendor-schema TLV list, since an
// extended attribute's own length already delimits the one sub-attribute it
// carries. Neither a vendor-length byte nor WiMAX continuation fragments
// exist in that shape — fragmentation for an Extended-Vendor-Specific
// attribute is handled by decodeExtended's own long-extended reassembly
// before this is ever called.
func decodeVSA(dict dictionary.Dictionary, pctx *vp.Context, parent *dictionary.Descriptor, vsaNumber uint32, data []byte, attrLen, packetLen, depth int, nestedUnderExtended bool) (*vp.Cursor, int, error) {
	if depth > maxDepth {
		return nil, 0, depthExceeded()
	}
	if attrLen < 4 {
		return nil, 0, rerr.New(rerr.KindInsufficientData, "vsa: missing PEN")
	}
	if data[0] != 0 {
		return nil, 0, rerr.New(rerr.KindMalformedStructure, "vsa: nonzero PEN top byte")
	}
	pen, err := wire.Uint32(data, 0)
	if err != nil {
		return nil, 0, err
	}

	vendor := dict.VendorByNum(pen)
	if vendor == nil {
		vendor = dict.UnknownVendorAfromNum(pen)
	}

	if nestedUnderExtended {
		if attrLen < 5 {
			return nil, 0, rerr.New(rerr.KindInsufficientData, "vsa: extended-vendor-specific missing vendor type")
		}
		vendorType := uint32(data[4])
		child := dict.ChildByNum(vendor.Root, vendorType)
		if child == nil {
			child = dict.UnknownAfromFields(vendor.Root, pen, vendorType)
		}
		value := data[5:attrLen]
		local := &vp.Cursor{}
		if _, err := decodePairValue(dict, local, pctx, child, value, len(value), len(value), depth+1, false); err != nil {
			return nil, 0, err
		}
		return local, attrLen, nil
	}

	if vendor.IsWiMAX {
		cur, consumed, err := decodeWiMAX(dict, pctx, vsaNumber, vendor, data, attrLen, packetLen, depth)
		return cur, consumed, err
	}

	body := data[4:attrLen]
	if err := DecodeTLVOK(body, vendor.TypeWidth, vendor.LengthWidth); err != nil {
		return nil, 0, err
	}

	local := &vp.Cursor{}
	off := 0
	for off < len(body) {
		number, recLen, valOff, err := readTLVHeader(body[off:], vendor.TypeWidth, vendor.LengthWidth)
		if err != nil {
			return nil, 0, err
		}
		child := dict.ChildByNum(vendor.Root, number)
		if child == nil {
			child = dict.UnknownAfromFields(vendor.Root, pen, number)
		}
		valLen := recLen - valOff
		valData := body[off+valOff : off+recLen]
		if _, err := decodePairValue(dict, local, pctx, child, valData, valLen, valLen, depth+1, false); err != nil {
			return nil, 0, err
		}
		off += recLen
	}
	return local, attrLen, nil
}
