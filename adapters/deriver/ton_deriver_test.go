package deriver

import (
	"crypto/ed25519"
	"encoding/hex"
	"testing"

	"github.com/layer-3/marketauth/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPublicKey() ed25519.PublicKey {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(0xa0 + i)
	}
	return ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
}

// knownPublicKey is the key tonutils-go pins its v3 address test on.
const knownPublicKey = "dcc39550bb494f4b493e7efe1aa18ea31470f33a2553c568cb74a17ed56790c1"

func TestDeriveAddressKnownVectors(t *testing.T) {
	key, err := hex.DecodeString(knownPublicKey)
	require.NoError(t, err)

	cases := []struct {
		name       string
		network    int32
		walletType core.WalletType
		workchain  int8
		want       string
	}{
		{"v3r1", MainnetGlobalID, core.WalletV3R1, 0, "EQCH-6BQr0o5rETJU1s0lYRPB1yGtrqdC-OYa81jc3MbiUwv"},
		{"v3r2", MainnetGlobalID, core.WalletV3R2, 0, "EQCvoBT5Keb46oUhI_DpX0WXFDdX9ZyxXBfX3FC9cZa90nQP"},
		{"v4r2", MainnetGlobalID, core.WalletV4R2, 0, "EQAwwdowWbBKkrnRlbY8CUEzy_pgK9pIvOKP2eqcD01EWgBR"},
		{"v4r2 masterchain", MainnetGlobalID, core.WalletV4R2, -1, "Ef8RH4gURcGr8RY0taF4Psrr6H9GFlnZEO_b-qUxx8eiXd4g"},
		{"v5r1", MainnetGlobalID, core.WalletV5R1, 0, "EQAg-EZkKvPFRi_kvrV7nCdQsIMnL8G08RUNB4eW5nbfO0k9"},
		{"v5r1 masterchain", MainnetGlobalID, core.WalletV5R1, -1, "Ef-LbyjJ9-L-cmiuFL1rmpUTDkGQZTxy_rxzo2xQxi0aP-QT"},
		{"v5r1 testnet", TestnetGlobalID, core.WalletV5R1, 0, "EQA8Xz-JDmG1CRRsD0tYdRSR-MOweFgnUlFOuXuWGEu1a13h"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			want, err := core.ParseAddress(tc.want)
			require.NoError(t, err)

			got, err := NewTonDeriver(tc.network).DeriveAddress(key, tc.walletType, tc.workchain)
			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.Equal(t, tc.want, got.UserFriendly(true))
		})
	}
}

func TestDeriveAddressRoundTrip(t *testing.T) {
	d := NewTonDeriver(MainnetGlobalID)
	key := testPublicKey()

	for _, wt := range core.WalletTypes() {
		for _, wc := range []int8{0, -1} {
			addr, err := d.DeriveAddress(key, wt, wc)
			require.NoError(t, err, wt.String())
			assert.Equal(t, wc, addr.Workchain)

			again, err := d.DeriveAddress(key, wt, wc)
			require.NoError(t, err)
			assert.Equal(t, addr, again, "derivation must be deterministic")

			parsed, err := core.ParseAddress(addr.String())
			require.NoError(t, err)
			assert.Equal(t, addr, parsed)

			parsed, err = core.ParseAddress(addr.UserFriendly(false))
			require.NoError(t, err)
			assert.Equal(t, addr, parsed)
		}
	}
}

func TestDeriveAddressDistinguishesInputs(t *testing.T) {
	d := NewTonDeriver(MainnetGlobalID)
	key := testPublicKey()

	seen := map[core.CanonicalAddress]core.WalletType{}
	for _, wt := range core.WalletTypes() {
		addr, err := d.DeriveAddress(key, wt, 0)
		require.NoError(t, err)
		_, dup := seen[addr]
		assert.False(t, dup, "%s collides with %s", wt, seen[addr])
		seen[addr] = wt
	}

	otherKey, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	a, err := d.DeriveAddress(key, core.WalletV4R2, 0)
	require.NoError(t, err)
	b, err := d.DeriveAddress(otherKey, core.WalletV4R2, 0)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	mainnet, err := d.DeriveAddress(key, core.WalletV5R1, 0)
	require.NoError(t, err)
	testnet, err := NewTonDeriver(TestnetGlobalID).DeriveAddress(key, core.WalletV5R1, 0)
	require.NoError(t, err)
	assert.NotEqual(t, mainnet, testnet)
}

func TestDeriveAddressRejects(t *testing.T) {
	d := NewTonDeriver(MainnetGlobalID)

	_, err := d.DeriveAddress(testPublicKey(), core.WalletUnknown, 0)
	assert.ErrorIs(t, err, core.ErrUnsupportedWalletType)

	_, err = d.DeriveAddress(testPublicKey()[:31], core.WalletV4R2, 0)
	assert.ErrorIs(t, err, core.ErrInvalidPublicKey)
}
