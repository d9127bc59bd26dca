package main

import (
	"fmt"

	"github.com/layer-3/marketauth/adapters/deriver"
	"github.com/layer-3/marketauth/core"
	"github.com/spf13/cobra"
)

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Inspect wallet addresses",
}

var addressParseCmd = &cobra.Command{
	Use:   "parse <address>",
	Short: "Print every encoding of an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := core.ParseAddress(args[0])
		if err != nil {
			return err
		}
		printAddress(cmd, addr)
		return nil
	},
}

var (
	derivePublicKey  string
	deriveWalletType string
	deriveWorkchain  int8
	deriveTestnet    bool
)

var addressDeriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive the wallet address controlled by a public key",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := core.DecodePublicKey(derivePublicKey)
		if err != nil {
			return err
		}
		walletType, err := core.ParseWalletType(deriveWalletType)
		if err != nil {
			return err
		}

		networkID := deriver.MainnetGlobalID
		if deriveTestnet {
			networkID = deriver.TestnetGlobalID
		}
		addr, err := deriver.NewTonDeriver(networkID).DeriveAddress(key, walletType, deriveWorkchain)
		if err != nil {
			return err
		}
		printAddress(cmd, addr)
		return nil
	},
}

func printAddress(cmd *cobra.Command, addr core.CanonicalAddress) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "raw:            %s\n", addr)
	fmt.Fprintf(out, "bounceable:     %s\n", addr.UserFriendly(true))
	fmt.Fprintf(out, "non-bounceable: %s\n", addr.UserFriendly(false))
}

func init() {
	addressDeriveCmd.Flags().StringVar(&derivePublicKey, "public-key", "", "hex encoded Ed25519 public key")
	addressDeriveCmd.Flags().StringVar(&deriveWalletType, "wallet-type", "v4r2", "wallet contract: v3r1, v3r2, v4r2 or v5r1")
	addressDeriveCmd.Flags().Int8Var(&deriveWorkchain, "workchain", 0, "workchain id")
	addressDeriveCmd.Flags().BoolVar(&deriveTestnet, "testnet", false, "derive v5 wallets for testnet")
	_ = addressDeriveCmd.MarkFlagRequired("public-key")

	addressCmd.AddCommand(addressParseCmd, addressDeriveCmd)
}
