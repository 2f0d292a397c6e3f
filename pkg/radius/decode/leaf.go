package decode

import (
	"math"
	"net"
	"time"

	"github.com/openradius/raddecode/pkg/radius/dictionary"
	"github.com/openradius/raddecode/pkg/radius/rerr"
)

// parseLeaf interprets body (already range-checked by sizeRange) as a
// Go-native value for t, per spec.md section 4.9. Failure here is always
// caught by the caller and turned into a raw fallback.
func parseLeaf(t dictionary.SemanticType, body []byte) (any, error) {
	switch t {
	case dictionary.TypeString:
		return string(body), nil
	case dictionary.TypeOctets, dictionary.TypeAbinary:
		return append([]byte(nil), body...), nil
	case dictionary.TypeBool:
		return body[0] != 0, nil
	case dictionary.TypeUint8:
		return uint8(body[0]), nil
	case dictionary.TypeInt8:
		return int8(body[0]), nil
	case dictionary.TypeUint16:
		return uint16(body[0])<<8 | uint16(body[1]), nil
	case dictionary.TypeInt16:
		return int16(uint16(body[0])<<8 | uint16(body[1])), nil
	case dictionary.TypeUint32:
		return be32(body), nil
	case dictionary.TypeInt32:
		return int32(be32(body)), nil
	case dictionary.TypeUint64:
		return be64(body), nil
	case dictionary.TypeInt64:
		return int64(be64(body)), nil
	case dictionary.TypeSize:
		return be64(body), nil
	case dictionary.TypeFloat32:
		return math.Float32frombits(be32(body)), nil
	case dictionary.TypeFloat64:
		return math.Float64frombits(be64(body)), nil
	case dictionary.TypeDate:
		return time.Unix(int64(be32(body)), 0).UTC(), nil
	case dictionary.TypeTimeDelta:
		return time.Duration(be32(body)) * time.Second, nil
	case dictionary.TypeEthernet:
		return net.HardwareAddr(append([]byte(nil), body...)), nil
	case dictionary.TypeIfID:
		return append([]byte(nil), body...), nil
	case dictionary.TypeIPv4Addr:
		ip := make(net.IP, 4)
		copy(ip, body)
		return ip, nil
	case dictionary.TypeIPv6Addr:
		ip := make(net.IP, 16)
		copy(ip, body)
		return ip, nil
	case dictionary.TypeIPv4Prefix:
		return parseIPv4Prefix(body)
	case dictionary.TypeIPv6Prefix:
		return parseIPv6Prefix(body)
	default:
		return nil, rerr.New(rerr.KindMalformedStructure, "leaf: unhandled semantic type")
	}
}

func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func be64(b []byte) uint64 {
	var v uint64
	for _, x := range b[:8] {
		v = v<<8 | uint64(x)
	}
	return v
}

// parseIPv4Prefix decodes reserved(1) || prefix_len(1) || up to 4 address
// bytes per spec.md section 4.9. Bits past prefix_len are masked off on
// output but are not required to already be zero on input.
func parseIPv4Prefix(raw []byte) (*net.IPNet, error) {
	if len(raw) < 2 {
		return nil, rerr.New(rerr.KindInsufficientData, "ipv4_prefix: too short")
	}
	if raw[0] != 0 {
		return nil, rerr.New(rerr.KindMalformedStructure, "ipv4_prefix: nonzero reserved byte")
	}
	plen := int(raw[1])
	if plen > 32 {
		return nil, rerr.New(rerr.KindMalformedStructure, "ipv4_prefix: prefix length > 32")
	}
	addrBytes := raw[2:]
	if len(addrBytes) > 4 {
		return nil, rerr.New(rerr.KindMalformedStructure, "ipv4_prefix: address field longer than 4 bytes")
	}
	var ip [4]byte
	copy(ip[:], addrBytes)
	mask := net.CIDRMask(plen, 32)
	return &net.IPNet{IP: net.IP(ip[:]).Mask(mask), Mask: mask}, nil
}

// parseIPv6Prefix decodes reserved(1) || prefix_len(1) || up to 16 address
// bytes. If masking the declared prefix length changes any supplied address
// byte, the value fails the round-trip check and the caller raw-falls-back
// instead (spec.md section 4.9).
func parseIPv6Prefix(raw []byte) (*net.IPNet, error) {
	if len(raw) < 2 {
		return nil, rerr.New(rerr.KindInsufficientData, "ipv6_prefix: too short")
	}
	if raw[0] != 0 {
		return nil, rerr.New(rerr.KindMalformedStructure, "ipv6_prefix: nonzero reserved byte")
	}
	plen := int(raw[1])
	if plen > 128 {
		return nil, rerr.New(rerr.KindMalformedStructure, "ipv6_prefix: prefix length > 128")
	}
	addrBytes := raw[2:]
	if len(addrBytes) > 16 {
		return nil, rerr.New(rerr.KindMalformedStructure, "ipv6_prefix: address field longer than 16 bytes")
	}
	need := (plen + 7) / 8
	if len(addrBytes) < need {
		return nil, rerr.New(rerr.KindMalformedStructure, "ipv6_prefix: address field shorter than prefix length")
	}
	var ip [16]byte
	copy(ip[:], addrBytes)
	mask := net.CIDRMask(plen, 128)
	masked := net.IP(ip[:]).Mask(mask)
	for i, b := range addrBytes {
		if masked[i] != b {
			return nil, rerr.New(rerr.KindMalformedStructure, "ipv6_prefix: nonzero bits past prefix length")
		}
	}
	return &net.IPNet{IP: masked, Mask: mask}, nil
}
