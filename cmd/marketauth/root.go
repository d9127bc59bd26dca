package main

import "github.com/spf13/cobra"

var configPath string

var rootCmd = &cobra.Command{
	Use:           "marketauth",
	Short:         "Wallet sign-in for the marketplace API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (TOML)")
	rootCmd.AddCommand(serveCmd, addressCmd)
}
