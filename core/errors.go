package core

import "errors"

// Sign-in and session errors. Every one of them is terminal: the request is
// rejected with a client error and nothing is retried.
var (
	ErrAddressParse          = errors.New("address matches no accepted encoding")
	ErrAddressMismatch       = errors.New("address does not belong to public key")
	ErrInvalidPublicKey      = errors.New("invalid public key")
	ErrUnsupportedWalletType = errors.New("unsupported wallet type")
	ErrSignatureFormat       = errors.New("signature must decode to 64 bytes")
	ErrInvalidSignature      = errors.New("invalid signature")
	ErrTimestampFromFuture   = errors.New("login timestamp is in the future")
	ErrLoginExpired          = errors.New("login has expired")

	ErrNoAuthHeader      = errors.New("authorization header is required")
	ErrInvalidAuthHeader = errors.New("invalid authorization header format")
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenExpired      = errors.New("token has expired")
)
