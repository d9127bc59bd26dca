package core

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() (ed25519.PublicKey, ed25519.PrivateKey) {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(i + 1)
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return priv.Public().(ed25519.PublicKey), priv
}

// sign reproduces what a wallet does: hash the message, prefix the id, sign.
func sign(priv ed25519.PrivateKey, message []byte, signatureID *int32) []byte {
	hash := sha256.Sum256(message)
	buf := hash[:]
	if signatureID != nil {
		id := uint32(*signatureID)
		buf = append([]byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)}, hash[:]...)
	}
	return ed25519.Sign(priv, buf)
}

func int32Ptr(v int32) *int32 {
	return &v
}

func TestVerifySignature(t *testing.T) {
	pub, priv := testKey()
	message := BuildChallenge("https://example.test", "0:"+testAccountHex, 1700000000)

	sig := sign(priv, message, nil)
	assert.True(t, VerifySignature(pub, message, sig, nil))

	for i := 0; i < len(sig)*8; i++ {
		flipped := append([]byte(nil), sig...)
		flipped[i/8] ^= 1 << (i % 8)
		require.False(t, VerifySignature(pub, message, flipped, nil), "signature bit %d", i)
	}

	for i := 0; i < len(message)*8; i++ {
		flipped := append([]byte(nil), message...)
		flipped[i/8] ^= 1 << (i % 8)
		require.False(t, VerifySignature(pub, flipped, sig, nil), "message bit %d", i)
	}

	otherPub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	assert.False(t, VerifySignature(otherPub, message, sig, nil))
	assert.False(t, VerifySignature(pub[:16], message, sig, nil))
	assert.False(t, VerifySignature(pub, message, sig[:63], nil))
}

func TestVerifySignatureDomainSeparation(t *testing.T) {
	pub, priv := testKey()
	message := []byte("I want to login at https://example.test with address 0:00 at 1")

	sig := sign(priv, message, int32Ptr(1))
	assert.True(t, VerifySignature(pub, message, sig, int32Ptr(1)))
	assert.False(t, VerifySignature(pub, message, sig, int32Ptr(2)))
	assert.False(t, VerifySignature(pub, message, sig, nil))

	for bit := 0; bit < 32; bit++ {
		id := int32(1) ^ int32(uint32(1)<<bit)
		require.False(t, VerifySignature(pub, message, sig, &id), "signature id bit %d", bit)
	}

	unprefixed := sign(priv, message, nil)
	assert.False(t, VerifySignature(pub, message, unprefixed, int32Ptr(1)))

	negative := sign(priv, message, int32Ptr(-239))
	assert.True(t, VerifySignature(pub, message, negative, int32Ptr(-239)))
}

func TestSignedPayload(t *testing.T) {
	message := []byte("payload")
	hash := sha256.Sum256(message)

	assert.Equal(t, hash[:], SignedPayload(message, nil))

	prefixed := SignedPayload(message, int32Ptr(-1))
	require.Len(t, prefixed, 36)
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, prefixed[:4])
	assert.Equal(t, hash[:], prefixed[4:])
	assert.Equal(t, []byte{0, 0, 1, 0}, SignedPayload(message, int32Ptr(256))[:4])
}

func TestDecodeSignature(t *testing.T) {
	_, priv := testKey()
	sig := sign(priv, []byte("message"), nil)

	for name, text := range map[string]string{
		"base64":    base64.StdEncoding.EncodeToString(sig),
		"hex":       hex.EncodeToString(sig),
		"0x hex":    "0x" + hex.EncodeToString(sig),
		"upper hex": "0X" + hex.EncodeToString(sig),
	} {
		t.Run(name, func(t *testing.T) {
			decoded, err := DecodeSignature(text)
			require.NoError(t, err)
			assert.Equal(t, sig, decoded)
		})
	}

	for name, text := range map[string]string{
		"empty":       "",
		"short":       base64.StdEncoding.EncodeToString(sig[:63]),
		"long hex":    hex.EncodeToString(append(sig, 0)),
		"not encoded": "definitely not a signature!",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeSignature(text)
			assert.ErrorIs(t, err, ErrSignatureFormat)
		})
	}
}

func TestDecodePublicKey(t *testing.T) {
	pub, _ := testKey()

	key, err := DecodePublicKey(hex.EncodeToString(pub))
	require.NoError(t, err)
	assert.Equal(t, pub, key)

	key, err = DecodePublicKey("0x" + hex.EncodeToString(pub))
	require.NoError(t, err)
	assert.Equal(t, pub, key)

	_, err = DecodePublicKey(hex.EncodeToString(pub[:31]))
	assert.ErrorIs(t, err, ErrInvalidPublicKey)

	_, err = DecodePublicKey("xyz")
	assert.ErrorIs(t, err, ErrInvalidPublicKey)
}
