// Package obfuscate implements the three RADIUS value-obfuscation schemes
// of spec.md section 4.1: User-Password (RFC 2865), Tunnel-Password (RFC
// 2868, salted), and Ascend-Secret. All three are pure functions over
// (ciphertext, shared secret, request authenticator) — no RADIUS framing,
// dictionary, or VP knowledge leaks in here, so they can be fuzzed and
// round-tripped independently of the decoder.
//
// MD5 is mandated by the RFCs these schemes implement; there is no
// third-party replacement to reach for — crypto/md5 is the correct tool
// here, not a stdlib shortcut around one.
package obfuscate

import (
	"bytes"
	"crypto/md5"

	"github.com/openradius/raddecode/pkg/radius/rerr"
)

const maxUserPasswordLen = 128

// DecodeUserPassword reverses RFC 2865 section 5.2 User-Password
// obfuscation. Ciphertext longer than 128 bytes is silently truncated.
// Trailing NUL bytes are trimmed from the result — the well-known
// asymmetry where a password ending in NUL cannot be distinguished from
// padding (spec.md section 9) is inherent here and intentionally
// reproduced.
func DecodeUserPassword(ciphertext, secret []byte, vector [16]byte) ([]byte, error) {
	plain, err := decodeUserPasswordRaw(ciphertext, secret, vector)
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(plain, "\x00"), nil
}

// DecodeUserPasswordRaw is DecodeUserPassword without trailing-NUL
// trimming, used when the dictionary flags a fixed width for the
// attribute (e.g. MS-MPPE-Send-Key), per spec.md section 4.8 step 3.
func DecodeUserPasswordRaw(ciphertext, secret []byte, vector [16]byte) ([]byte, error) {
	return decodeUserPasswordRaw(ciphertext, secret, vector)
}

func decodeUserPasswordRaw(ciphertext, secret []byte, vector [16]byte) ([]byte, error) {
	if len(ciphertext) == 0 {
		return nil, rerr.New(rerr.KindInsufficientData, "user-password: empty ciphertext")
	}
	if len(ciphertext) > maxUserPasswordLen {
		ciphertext = ciphertext[:maxUserPasswordLen]
	}

	plain := make([]byte, 0, len(ciphertext))
	prevBlock := vector[:]
	for off := 0; off < len(ciphertext); off += 16 {
		end := off + 16
		if end > len(ciphertext) {
			end = len(ciphertext)
		}
		block := ciphertext[off:end]

		key := md5SumOf(secret, prevBlock)
		out := make([]byte, len(block))
		for i := range block {
			out[i] = block[i] ^ key[i]
		}
		plain = append(plain, out...)
		prevBlock = block
	}
	return plain, nil
}

// EncodeUserPassword is the inverse of DecodeUserPassword, used by tests to
// exercise the idempotence property of spec.md section 8, invariant 5. It
// pads the plaintext with NULs up to the next 16-byte boundary, mirroring
// what a RADIUS client actually transmits.
func EncodeUserPassword(plaintext, secret []byte, vector [16]byte) []byte {
	padded := make([]byte, ((len(plaintext)+15)/16)*16)
	if len(padded) == 0 {
		padded = make([]byte, 16)
	}
	copy(padded, plaintext)

	cipher := make([]byte, len(padded))
	prevBlock := vector[:]
	for off := 0; off < len(padded); off += 16 {
		block := padded[off : off+16]
		key := md5SumOf(secret, prevBlock)
		out := cipher[off : off+16]
		for i := range block {
			out[i] = block[i] ^ key[i]
		}
		prevBlock = out
	}
	return cipher
}

// DecodeTunnelPassword reverses RFC 2868 section 3.5 Tunnel-Password
// obfuscation. data is salt(2) || ciphertext, with the tag byte already
// stripped by the caller (spec.md section 4.8 step 2). zeros enforces the
// tunnel_password_zeros packet-context flag.
func DecodeTunnelPassword(data, secret []byte, vector [16]byte, zeros bool) ([]byte, error) {
	if len(data) < 2 {
		return nil, rerr.New(rerr.KindInsufficientData, "tunnel-password: shorter than salt")
	}
	if len(data) <= 3 {
		return []byte{}, nil
	}
	salt := data[0:2]
	ciphertext := data[2:]

	plain := make([]byte, 0, len(ciphertext))
	key := md5SumOf(secret, vector[:], salt)
	for off := 0; off < len(ciphertext); off += 16 {
		end := off + 16
		if end > len(ciphertext) {
			end = len(ciphertext)
		}
		block := ciphertext[off:end]
		out := make([]byte, len(block))
		for i := range block {
			out[i] = block[i] ^ key[i]
		}
		plain = append(plain, out...)
		if len(block) == 16 {
			key = md5SumOf(secret, block)
		}
	}

	if len(plain) == 0 {
		return nil, rerr.New(rerr.KindCryptoMismatch, "tunnel-password: no data after salt")
	}
	dataLen := int(plain[0])
	rest := plain[1:]
	if dataLen > len(rest) {
		return nil, rerr.New(rerr.KindCryptoMismatch, "tunnel-password: shared secret probably incorrect")
	}
	if zeros {
		for _, b := range rest[dataLen:] {
			if b != 0 {
				return nil, rerr.New(rerr.KindCryptoMismatch, "tunnel-password: nonzero trailing byte under tunnel_password_zeros")
			}
		}
	}

	out := make([]byte, dataLen)
	copy(out, rest[:dataLen])
	return out, nil
}

// EncodeTunnelPassword is the inverse of DecodeTunnelPassword, used by
// idempotence tests.
func EncodeTunnelPassword(plaintext, secret []byte, vector [16]byte, salt [2]byte) []byte {
	dataLen := len(plaintext)
	body := make([]byte, 1+dataLen)
	body[0] = byte(dataLen)
	copy(body[1:], plaintext)

	padded := len(body)
	if padded%16 != 0 {
		padded += 16 - padded%16
	}
	plain := make([]byte, padded)
	copy(plain, body)

	cipher := make([]byte, padded)
	key := md5SumOf(secret, vector[:], salt[:])
	for off := 0; off < padded; off += 16 {
		block := plain[off : off+16]
		out := cipher[off : off+16]
		for i := range block {
			out[i] = block[i] ^ key[i]
		}
		key = md5SumOf(secret, out)
	}

	out := make([]byte, 2+len(cipher))
	copy(out[0:2], salt[:])
	copy(out[2:], cipher)
	return out
}

// DecodeAscendSecret reverses the single-block MD5-based Ascend-Secret
// obfuscation: MD5(vector || secret) XORed with the payload, with the
// result truncated at the first NUL (strlen semantics) as spec.md section
// 4.1 describes.
func DecodeAscendSecret(data, secret []byte, vector [16]byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, rerr.New(rerr.KindInsufficientData, "ascend-secret: empty payload")
	}
	key := md5SumOf(vector[:], secret)
	out := make([]byte, len(data))
	for i := range data {
		out[i] = data[i] ^ key[i%len(key)]
	}
	if idx := bytes.IndexByte(out, 0); idx >= 0 {
		out = out[:idx]
	}
	return out, nil
}

// EncodeAscendSecret is the inverse of DecodeAscendSecret, used by tests.
func EncodeAscendSecret(plaintext, secret []byte, vector [16]byte) []byte {
	key := md5SumOf(vector[:], secret)
	out := make([]byte, len(plaintext))
	for i := range plaintext {
		out[i] = plaintext[i] ^ key[i%len(key)]
	}
	return out
}

func md5SumOf(parts ...[]byte) []byte {
	h := md5.New()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}
