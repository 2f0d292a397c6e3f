package decode

// decodeConcat reassembles RFC 2869 long-octets fragments: a run of
// consecutive top-level attributes sharing the same type byte (e.g.
// EAP-Message), concatenated into one value. data starts at the value of the
// first fragment; attrLen is that first fragment's declared value length;
// packetLen bounds how far into data subsequent (type, length) headers may be
// read. Returns the combined value and the total bytes consumed across every
// fragment absorbed (spec.md section 4.3).
func decodeConcat(typ uint32, data []byte, attrLen, packetLen int) (value []byte, consumed int, err error) {
	value = append(value, data[:attrLen]...)
	consumed = attrLen

	off := attrLen
	for off+2 <= packetLen {
		t := uint32(data[off])
		l := int(data[off+1])
		if t != typ {
			break
		}
		if l < 2 || off+l > packetLen {
			break
		}
		value = append(value, data[off+2:off+l]...)
		consumed += l
		off += l
	}
	return value, consumed, nil
}
