package deriver

import (
	"crypto/ed25519"
	"fmt"

	"github.com/layer-3/marketauth/core"
	"github.com/layer-3/marketauth/ports"
	"github.com/xssnick/tonutils-go/ton/wallet"
)

const (
	// DefaultSubwallet is the wallet id base used by v3 and v4 wallets; the
	// workchain id is added to it.
	DefaultSubwallet = wallet.DefaultSubwallet

	// MainnetGlobalID is the network id baked into v5 wallet ids
	MainnetGlobalID int32 = -239
	// TestnetGlobalID is the testnet network id
	TestnetGlobalID int32 = -3
)

// TonDeriver derives wallet addresses from the contract state init, using the
// wallet code shipped with tonutils-go.
type TonDeriver struct {
	networkGlobalID int32
}

// NewTonDeriver creates a deriver for the given network
func NewTonDeriver(networkGlobalID int32) ports.AddressDeriver {
	return &TonDeriver{networkGlobalID: networkGlobalID}
}

// DeriveAddress computes the address controlled by publicKey through a wallet
// contract of walletType deployed in workchain.
func (d *TonDeriver) DeriveAddress(publicKey ed25519.PublicKey, walletType core.WalletType, workchain int8) (core.CanonicalAddress, error) {
	if len(publicKey) != ed25519.PublicKeySize {
		return core.CanonicalAddress{}, core.ErrInvalidPublicKey
	}

	var version wallet.VersionConfig
	subwallet := uint32(DefaultSubwallet + int64(workchain))

	switch walletType {
	case core.WalletV3R1:
		version = wallet.V3R1
	case core.WalletV3R2:
		version = wallet.V3R2
	case core.WalletV4R2:
		version = wallet.V4R2
	case core.WalletV5R1:
		version = wallet.ConfigV5R1Final{
			NetworkGlobalID: d.networkGlobalID,
			Workchain:       workchain,
		}
		subwallet = 0
	default:
		return core.CanonicalAddress{}, fmt.Errorf("%s: %w", walletType, core.ErrUnsupportedWalletType)
	}

	addr, err := wallet.AddressFromPubKey(publicKey, version, subwallet)
	if err != nil {
		return core.CanonicalAddress{}, fmt.Errorf("failed to derive %s address: %w", walletType, err)
	}

	// The state init hash is the account id; the workchain is where the
	// contract lives.
	derived := core.CanonicalAddress{Workchain: workchain}
	copy(derived.AccountID[:], addr.Data())
	return derived, nil
}
