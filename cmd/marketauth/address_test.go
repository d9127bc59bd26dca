package main

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/layer-3/marketauth/adapters/deriver"
	"github.com/layer-3/marketauth/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAddressDeriveAndParse(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	copy(seed, "cli seed")
	pub := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)

	want, err := deriver.NewTonDeriver(deriver.MainnetGlobalID).DeriveAddress(pub, core.WalletV4R2, 0)
	require.NoError(t, err)

	out, err := runCLI(t, "address", "derive", "--public-key", hex.EncodeToString(pub), "--wallet-type", "v4r2")
	require.NoError(t, err)
	assert.Contains(t, out, "raw:            "+want.String())
	assert.Contains(t, out, want.UserFriendly(true))

	out, err = runCLI(t, "address", "parse", want.UserFriendly(false))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "raw:            "+want.String()))
}

func TestAddressParseRejects(t *testing.T) {
	_, err := runCLI(t, "address", "parse", "nonsense")
	assert.ErrorIs(t, err, core.ErrAddressParse)
}
