package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openradius/raddecode/pkg/radius/wire"
)

func TestBoundsCopy(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04}

	out, err := wire.BoundsCopy(buf, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x03}, out)

	// mutating the returned slice must not alias buf.
	out[0] = 0xFF
	assert.Equal(t, byte(0x02), buf[1])
}

func TestBoundsCopy_ShortBuffer(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03}

	_, err := wire.BoundsCopy(buf, 2, 5)
	require.Error(t, err)
	var short wire.ErrShortBuffer
	require.ErrorAs(t, err, &short)
	assert.Equal(t, 7, short.Want)
	assert.Equal(t, 3, short.Have)
}

func TestBoundsCopy_NegativeOffset(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03}
	_, err := wire.BoundsCopy(buf, -1, 2)
	require.Error(t, err)
}

func TestUint16(t *testing.T) {
	buf := wire.PutUint16(0xBEEF)
	v, err := wire.Uint16(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), v)

	_, err = wire.Uint16(buf, 1)
	assert.Error(t, err)
}

func TestUint24(t *testing.T) {
	buf := []byte{0x01, 0xAB, 0xCD}
	v, err := wire.Uint24(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x01ABCD), v)

	_, err = wire.Uint24(buf, 1)
	assert.Error(t, err)
}

func TestUint32(t *testing.T) {
	buf := wire.PutUint32(0xDEADBEEF)
	v, err := wire.Uint32(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), v)

	_, err = wire.Uint32(buf, 1)
	assert.Error(t, err)
}

func TestUint64(t *testing.T) {
	buf := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}
	v, err := wire.Uint64(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0001020304050607), v)

	_, err = wire.Uint64(buf, 1)
	assert.Error(t, err)
}
