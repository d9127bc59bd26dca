package ports

import (
	"crypto/ed25519"

	"github.com/layer-3/marketauth/core"
)

// AddressDeriver computes the address of the wallet contract a key controls.
// Implementations must be pure: equal inputs give identical addresses.
type AddressDeriver interface {
	DeriveAddress(publicKey ed25519.PublicKey, walletType core.WalletType, workchain int8) (core.CanonicalAddress, error)
}
