package decode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openradius/raddecode/pkg/radius/decode"
	"github.com/openradius/raddecode/pkg/radius/dictionary"
	"github.com/openradius/raddecode/pkg/radius/dictionary/builtin"
	"github.com/openradius/raddecode/pkg/radius/obfuscate"
	"github.com/openradius/raddecode/pkg/radius/vp"
)

var testVector = [16]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f}

func testContext() *vp.Context {
	return &vp.Context{Secret: []byte("testing123"), Vector: testVector}
}

// S1 — User-Name.
func TestDecodePair_S1_UserName(t *testing.T) {
	dict := builtin.New()
	cur := &vp.Cursor{}
	data := []byte{0x01, 0x07, 'b', 'o', 'b', 'b', 'y'}

	consumed, err := decode.DecodePair(dict, cur, testContext(), data)
	require.NoError(t, err)
	assert.Equal(t, 7, consumed)
	require.Equal(t, 1, cur.Len())
	assert.Equal(t, "User-Name", cur.Pairs()[0].Descriptor.Name)
	assert.Equal(t, "bobby", cur.Pairs()[0].Value)
}

// S2 — obfuscated User-Password.
func TestDecodePair_S2_UserPassword(t *testing.T) {
	dict := builtin.New()
	cur := &vp.Cursor{}
	ctx := testContext()

	cipher := obfuscate.EncodeUserPassword([]byte("hello"), ctx.Secret, ctx.Vector)
	require.Len(t, cipher, 16)

	data := append([]byte{0x02, byte(2 + len(cipher))}, cipher...)
	consumed, err := decode.DecodePair(dict, cur, ctx, data)
	require.NoError(t, err)
	assert.Equal(t, len(data), consumed)
	require.Equal(t, 1, cur.Len())
	assert.Equal(t, "hello", cur.Pairs()[0].Value)
}

// S3 — Vendor-Specific / Cisco-AVPair.
func TestDecodePair_S3_CiscoAVPair(t *testing.T) {
	dict := builtin.New()
	cur := &vp.Cursor{}

	value := "shell:priv-lvl=15"
	// Vendor-Specific: type(26) len PEN(4)=9 sub-type(1)=1 sub-len(1) value
	subLen := 2 + len(value)
	body := []byte{0, 0, 0, 9, 1, byte(subLen)}
	body = append(body, []byte(value)...)
	data := append([]byte{26, byte(2 + len(body))}, body...)

	consumed, err := decode.DecodePair(dict, cur, testContext(), data)
	require.NoError(t, err)
	assert.Equal(t, len(data), consumed)
	require.Equal(t, 1, cur.Len())
	assert.Equal(t, "Cisco-AVPair", cur.Pairs()[0].Descriptor.Name)
	assert.Equal(t, value, cur.Pairs()[0].Value)
}

// S4 — long-extended fragmented.
func TestDecodePair_S4_LongExtendedFragments(t *testing.T) {
	dict := builtin.New()
	cur := &vp.Cursor{}

	part1 := []byte{0xAA, 0xBB, 0xCC}
	part2 := []byte{0xDD, 0xEE}

	frag1 := append([]byte{1, 0x80}, part1...) // ext-type 1, more-bit set
	attr1 := append([]byte{245, byte(2 + len(frag1))}, frag1...)

	frag2 := append([]byte{1, 0x00}, part2...) // ext-type 1, more-bit clear
	attr2 := append([]byte{245, byte(2 + len(frag2))}, frag2...)

	data := append(append([]byte{}, attr1...), attr2...)

	consumed, err := decode.DecodePair(dict, cur, testContext(), data)
	require.NoError(t, err)
	assert.Equal(t, len(data), consumed)
	require.Equal(t, 1, cur.Len())
	assert.Equal(t, append(append([]byte{}, part1...), part2...), cur.Pairs()[0].Value)
}

// S5 — malformed TLV inside VSA degrades to one raw octets VP.
func TestDecodePair_S5_MalformedVSA(t *testing.T) {
	dict := builtin.New()
	cur := &vp.Cursor{}

	// Cisco VSA whose single child declares a length overrunning the VSA body.
	body := []byte{0, 0, 0, 9, 1, 0xFF, 'x'}
	data := append([]byte{26, byte(2 + len(body))}, body...)

	consumed, err := decode.DecodePair(dict, cur, testContext(), data)
	require.NoError(t, err)
	assert.Equal(t, len(data), consumed)
	require.Equal(t, 1, cur.Len())
	assert.Equal(t, dictionary.TypeOctets, cur.Pairs()[0].Descriptor.Type)
	assert.True(t, cur.Pairs()[0].Descriptor.Flags.IsUnknown)
}

// S6 — Chargeable-User-Identity empty special case, vs. silent skip for any
// other attribute number of the same length.
func TestDecodePair_S6_CUIEmpty(t *testing.T) {
	dict := builtin.New()

	t.Run("cui", func(t *testing.T) {
		cur := &vp.Cursor{}
		consumed, err := decode.DecodePair(dict, cur, testContext(), []byte{89, 2})
		require.NoError(t, err)
		assert.Equal(t, 2, consumed)
		require.Equal(t, 1, cur.Len())
		assert.Equal(t, []byte{}, cur.Pairs()[0].Value)
	})

	t.Run("other attribute", func(t *testing.T) {
		cur := &vp.Cursor{}
		consumed, err := decode.DecodePair(dict, cur, testContext(), []byte{1, 2})
		require.NoError(t, err)
		assert.Equal(t, 2, consumed)
		assert.Equal(t, 0, cur.Len())
	})
}

func TestDecodePair_HeaderErrors(t *testing.T) {
	dict := builtin.New()
	cur := &vp.Cursor{}

	_, err := decode.DecodePair(dict, cur, testContext(), []byte{1})
	assert.Error(t, err)

	_, err = decode.DecodePair(dict, cur, testContext(), []byte{1, 1})
	assert.Error(t, err)

	_, err = decode.DecodePair(dict, cur, testContext(), []byte{1, 10, 'a'})
	assert.Error(t, err)
}

// WiMAX Forum T33-001 continuation: a 2-fragment Vendor-Specific attribute
// whose fragments reassemble into one WiMAX-Release octets value.
func TestDecodePair_WiMAXContinuationFragments(t *testing.T) {
	dict := builtin.New()
	cur := &vp.Cursor{}

	pen := []byte{0x00, 0x00, 0x60, 0xB5} // 24757, WiMAX PEN
	part1 := []byte{0xAA, 0xBB}
	part2 := []byte{0xCC, 0xDD, 0xEE}

	value1 := append(append([]byte{}, pen...), 27, byte(3+len(part1)), 0x80)
	value1 = append(value1, part1...)
	attr1 := append([]byte{26, byte(2 + len(value1))}, value1...)

	value2 := append(append([]byte{}, pen...), 27, byte(3+len(part2)), 0x00)
	value2 = append(value2, part2...)
	attr2 := append([]byte{26, byte(2 + len(value2))}, value2...)

	data := append(append([]byte{}, attr1...), attr2...)

	consumed, err := decode.DecodePair(dict, cur, testContext(), data)
	require.NoError(t, err)
	assert.Equal(t, len(data), consumed)
	require.Equal(t, 1, cur.Len())
	assert.Equal(t, "WiMAX-Release", cur.Pairs()[0].Descriptor.Name)
	assert.Equal(t, append(append([]byte{}, part1...), part2...), cur.Pairs()[0].Value)
}

// Extended-Vendor-Specific (RFC 6929 section 2.4): a vendor sub-attribute
// nested under an extended attribute, consuming PEN(4)+vendor-type(1)
// inline rather than a vendor-schema TLV list.
func TestDecodePair_ExtendedVendorSpecific(t *testing.T) {
	dict := builtin.New()
	cur := &vp.Cursor{}

	value := "shell:priv-lvl=15"
	payload := append([]byte{0x00, 0x00, 0x00, 0x09, 0x01}, []byte(value)...) // Cisco PEN=9, vendor-type=1 (Cisco-AVPair)
	extValue := append([]byte{0x01}, payload...)                             // extended-type=1 (Extended-Vendor-Specific)
	data := append([]byte{241, byte(2 + len(extValue))}, extValue...)

	consumed, err := decode.DecodePair(dict, cur, testContext(), data)
	require.NoError(t, err)
	assert.Equal(t, len(data), consumed)
	require.Equal(t, 1, cur.Len())
	assert.Equal(t, "Cisco-AVPair", cur.Pairs()[0].Descriptor.Name)
	assert.Equal(t, value, cur.Pairs()[0].Value)
}

func TestDecodePair_UnknownAttribute(t *testing.T) {
	dict := builtin.New()
	cur := &vp.Cursor{}

	data := []byte{250, 5, 'a', 'b', 'c'}
	consumed, err := decode.DecodePair(dict, cur, testContext(), data)
	require.NoError(t, err)
	assert.Equal(t, 5, consumed)
	require.Equal(t, 1, cur.Len())
	assert.True(t, cur.Pairs()[0].Descriptor.Flags.IsUnknown)
	assert.Equal(t, []byte("abc"), cur.Pairs()[0].Value)
}
