package core

import "time"

// LoginRequest is the untrusted sign-in payload submitted by a wallet.
type LoginRequest struct {
	PublicKey   string     // Hex encoded 32-byte Ed25519 key
	Address     string     // Address text exactly as the wallet displayed and signed it
	WalletType  WalletType // Wallet contract variant controlling the address
	Timestamp   uint64     // Client-claimed unix seconds embedded in the challenge
	Signature   string     // Base64 or hex encoded 64-byte signature
	SignatureID *int32     // Optional network discriminator mixed into the signed hash
}

// SessionClaims is what a session token asserts about its bearer
type SessionClaims struct {
	Subject   string    // Canonical text of the wallet address
	IssuedAt  time.Time // Service clock at issuance
	ExpiresAt time.Time // IssuedAt + AccessTokenLifetime
}

// AuthConfig is loaded once at start-up and shared read-only by all requests.
type AuthConfig struct {
	AccessTokenLifetime time.Duration
	SessionSecret       []byte
	// OriginURL is echoed verbatim into the challenge message.
	OriginURL string
}

// LoginEvent describes a completed sign-in
type LoginEvent struct {
	Address    string    `json:"address"`
	WalletType string    `json:"wallet_type"`
	IssuedAt   time.Time `json:"issued_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}
