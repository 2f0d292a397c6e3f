package decode

import (
	"github.com/openradius/raddecode/pkg/radius/dictionary"
	"github.com/openradius/raddecode/pkg/radius/vp"
)

// decodeTLV walks a nested TLV container (1-byte type, 1-byte length) under
// parent, per spec.md section 4.4. Output VPs are staged on a local cursor
// and only merged onto the caller's cursor by the caller itself, on full
// success — on any structural violation this returns an error and the
// caller discards the local list entirely.
func decodeTLV(dict dictionary.Dictionary, pctx *vp.Context, parent *dictionary.Descriptor, data []byte, depth int) (*vp.Cursor, error) {
	if depth > maxDepth {
		return nil, depthExceeded()
	}
	if err := DecodeTLVOK(data, 1, 1); err != nil {
		return nil, err
	}

	local := &vp.Cursor{}
	off := 0
	for off < len(data) {
		number, recLen, valOff, err := readTLVHeader(data[off:], 1, 1)
		if err != nil {
			return nil, err
		}

		child := dict.ChildByNum(parent, number)
		if child == nil {
			child = dict.UnknownAfromFields(parent, 0, number)
		}

		valLen := recLen - valOff
		valData := data[off+valOff : off+recLen]
		if _, err := decodePairValue(dict, local, pctx, child, valData, valLen, valLen, depth+1, false); err != nil {
			return nil, err
		}
		off += recLen
	}
	return local, nil
}
