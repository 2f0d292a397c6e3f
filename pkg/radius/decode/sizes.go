package decode

import "github.com/openradius/raddecode/pkg/radius/dictionary"

// sizeRange returns the (min, max) byte-length range a semantic type's body
// must fall within after tag stripping and obfuscation unwrap, per spec.md
// section 4.8 step 4. Container types (tlv/struct/vsa/vendor/extended) have
// no fixed range here — their own sub-decoder validates shape.
func sizeRange(t dictionary.SemanticType) (min, max int) {
	switch t {
	case dictionary.TypeBool, dictionary.TypeUint8, dictionary.TypeInt8:
		return 1, 1
	case dictionary.TypeUint16, dictionary.TypeInt16:
		return 2, 2
	case dictionary.TypeUint32, dictionary.TypeInt32, dictionary.TypeFloat32,
		dictionary.TypeDate, dictionary.TypeTimeDelta, dictionary.TypeIPv4Addr:
		return 4, 4
	case dictionary.TypeUint64, dictionary.TypeInt64, dictionary.TypeFloat64, dictionary.TypeSize:
		return 8, 8
	case dictionary.TypeIfID:
		return 8, 8
	case dictionary.TypeEthernet:
		return 6, 6
	case dictionary.TypeIPv6Addr:
		return 16, 16
	case dictionary.TypeIPv4Prefix:
		return 2, 6
	case dictionary.TypeIPv6Prefix:
		return 2, 18
	case dictionary.TypeComboIPAddr:
		return 4, 16
	case dictionary.TypeComboIPPrefix:
		return 2, 18
	case dictionary.TypeString, dictionary.TypeOctets, dictionary.TypeAbinary:
		return 0, 253
	default:
		return 0, 253
	}
}

// isContainer reports whether t is decoded by its own sub-decoder rather
// than sizeRange + parseLeaf.
func isContainer(t dictionary.SemanticType) bool {
	switch t {
	case dictionary.TypeTLV, dictionary.TypeStruct, dictionary.TypeVSA,
		dictionary.TypeVendor, dictionary.TypeExtended:
		return true
	default:
		return false
	}
}
