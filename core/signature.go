package core

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// DecodePublicKey decodes a hex encoded Ed25519 public key, with or without 0x.
func DecodePublicKey(text string) (ed25519.PublicKey, error) {
	key, err := decodeHex(text)
	if err != nil {
		return nil, fmt.Errorf("failed to decode public key: %w", ErrInvalidPublicKey)
	}
	if len(key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes: %w", ed25519.PublicKeySize, ErrInvalidPublicKey)
	}
	return ed25519.PublicKey(key), nil
}

// DecodeSignature accepts base64 first and falls back to hex. A 128 character
// hex string is also valid base64, so a base64 result of the wrong size does
// not end the search.
func DecodeSignature(text string) ([]byte, error) {
	if sig, err := base64.StdEncoding.DecodeString(text); err == nil && len(sig) == ed25519.SignatureSize {
		return sig, nil
	}
	if sig, err := decodeHex(text); err == nil && len(sig) == ed25519.SignatureSize {
		return sig, nil
	}
	return nil, ErrSignatureFormat
}

// SignedPayload is the buffer a wallet signs for message: sha256(message),
// prefixed with the big-endian signature id when one is given.
func SignedPayload(message []byte, signatureID *int32) []byte {
	hash := sha256.Sum256(message)
	if signatureID == nil {
		return hash[:]
	}

	payload := make([]byte, 4, 4+len(hash))
	binary.BigEndian.PutUint32(payload, uint32(*signatureID))
	return append(payload, hash[:]...)
}

// VerifySignature reports whether signature was produced by the key over the
// payload of message and signatureID.
func VerifySignature(publicKey ed25519.PublicKey, message, signature []byte, signatureID *int32) bool {
	if len(publicKey) != ed25519.PublicKeySize || len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(publicKey, SignedPayload(message, signatureID), signature)
}

func decodeHex(text string) ([]byte, error) {
	if !strings.HasPrefix(text, "0x") && !strings.HasPrefix(text, "0X") {
		text = "0x" + text
	}
	return hexutil.Decode(text)
}
