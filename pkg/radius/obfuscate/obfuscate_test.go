package obfuscate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openradius/raddecode/pkg/radius/obfuscate"
	"github.com/openradius/raddecode/pkg/radius/rerr"
)

var testVector = [16]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f}

var testSecret = []byte("testing123")

func TestUserPassword_RoundTrip(t *testing.T) {
	for _, plain := range [][]byte{[]byte("hello"), []byte("a"), []byte(""), []byte("exactly-sixteen!")} {
		cipher := obfuscate.EncodeUserPassword(plain, testSecret, testVector)
		assert.Equal(t, 0, len(cipher)%16)

		got, err := obfuscate.DecodeUserPassword(cipher, testSecret, testVector)
		require.NoError(t, err)
		assert.Equal(t, plain, got)
	}
}

func TestUserPassword_TruncatesAt128(t *testing.T) {
	cipher := make([]byte, 160)
	for i := range cipher {
		cipher[i] = byte(i)
	}
	got, err := obfuscate.DecodeUserPassword(cipher, testSecret, testVector)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got), 128)
}

func TestUserPassword_EmptyCiphertextIsInsufficientData(t *testing.T) {
	_, err := obfuscate.DecodeUserPassword(nil, testSecret, testVector)
	require.Error(t, err)
	assert.Equal(t, rerr.KindInsufficientData, rerr.KindOf(err))
}

func TestUserPasswordRaw_KeepsTrailingNulPadding(t *testing.T) {
	cipher := obfuscate.EncodeUserPassword([]byte("hi"), testSecret, testVector)
	got, err := obfuscate.DecodeUserPasswordRaw(cipher, testSecret, testVector)
	require.NoError(t, err)
	// raw variant keeps the zero padding that DecodeUserPassword trims.
	assert.Equal(t, 16, len(got))
	assert.Equal(t, []byte("hi"), got[:2])
}

func TestTunnelPassword_RoundTrip(t *testing.T) {
	salt := [2]byte{0x80, 0x01}
	for _, plain := range [][]byte{[]byte("secretvalue"), []byte("x"), []byte("")} {
		cipher := obfuscate.EncodeTunnelPassword(plain, testSecret, testVector, salt)
		got, err := obfuscate.DecodeTunnelPassword(cipher, testSecret, testVector, false)
		require.NoError(t, err)
		assert.Equal(t, plain, got)
	}
}

func TestTunnelPassword_TooShort(t *testing.T) {
	_, err := obfuscate.DecodeTunnelPassword([]byte{0x01}, testSecret, testVector, false)
	require.Error(t, err)
	assert.Equal(t, rerr.KindInsufficientData, rerr.KindOf(err))
}

func TestTunnelPassword_EmbeddedLengthTooLarge(t *testing.T) {
	salt := [2]byte{0xAB, 0xCD}
	plain := []byte("ok")
	cipher := obfuscate.EncodeTunnelPassword(plain, testSecret, testVector, salt)

	// Flip the first ciphertext byte (the encrypted embedded-length byte, at
	// index 2 after the 2-byte salt) so it decrypts to a length far larger
	// than the remaining block. XOR is commutative with the keystream, so
	// XORing in a known delta flips the decrypted byte by that same delta
	// without needing to know the key.
	cipher[2] ^= byte(len(plain)) ^ 0xF0

	_, err := obfuscate.DecodeTunnelPassword(cipher, testSecret, testVector, false)
	require.Error(t, err)
	assert.Equal(t, rerr.KindCryptoMismatch, rerr.KindOf(err))
}

func TestTunnelPassword_ZerosAcceptsZeroPadding(t *testing.T) {
	salt := [2]byte{0x00, 0x01}
	cipher := obfuscate.EncodeTunnelPassword([]byte("short"), testSecret, testVector, salt)

	_, err := obfuscate.DecodeTunnelPassword(cipher, testSecret, testVector, true)
	require.NoError(t, err)
}

func TestAscendSecret_RoundTrip(t *testing.T) {
	plain := []byte("shared-secret-value")
	cipher := obfuscate.EncodeAscendSecret(plain, testSecret, testVector)
	got, err := obfuscate.DecodeAscendSecret(cipher, testSecret, testVector)
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestAscendSecret_TruncatesAtFirstNul(t *testing.T) {
	plain := []byte("abc\x00def")
	cipher := obfuscate.EncodeAscendSecret(plain, testSecret, testVector)
	got, err := obfuscate.DecodeAscendSecret(cipher, testSecret, testVector)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
}

func TestAscendSecret_EmptyPayloadIsInsufficientData(t *testing.T) {
	_, err := obfuscate.DecodeAscendSecret(nil, testSecret, testVector)
	require.Error(t, err)
	assert.Equal(t, rerr.KindInsufficientData, rerr.KindOf(err))
}
