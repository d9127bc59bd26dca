package core

import (
	"fmt"
	"strings"
)

// WalletType names a supported wallet contract variant
type WalletType uint8

const (
	WalletUnknown WalletType = iota
	WalletV3R1
	WalletV3R2
	WalletV4R2
	WalletV5R1
)

var walletTypeNames = map[WalletType]string{
	WalletV3R1: "v3r1",
	WalletV3R2: "v3r2",
	WalletV4R2: "v4r2",
	WalletV5R1: "v5r1",
}

// WalletTypes lists the supported variants in declaration order.
func WalletTypes() []WalletType {
	return []WalletType{WalletV3R1, WalletV3R2, WalletV4R2, WalletV5R1}
}

// ParseWalletType accepts "v4r2", "V4R2" and the "wallet_v4r2" spelling used by
// wallet SDKs.
func ParseWalletType(s string) (WalletType, error) {
	name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "wallet_")
	for t, n := range walletTypeNames {
		if n == name {
			return t, nil
		}
	}
	return WalletUnknown, fmt.Errorf("%q: %w", s, ErrUnsupportedWalletType)
}

func (t WalletType) String() string {
	if n, ok := walletTypeNames[t]; ok {
		return n
	}
	return "unknown"
}
