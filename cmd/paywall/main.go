package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

const (
	version = "1.0.0"
	banner  = `
╔═══════════════════════════════════════════╗
║          ChainPaywall v%s              ║
║      Pay-per-unlock content on-chain      ║
╚═══════════════════════════════════════════╝
`
)

var configPath string

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "paywall",
	Short: "ChainPaywall - pay-per-unlock content settled by token transfers",
	Long: `ChainPaywall sells text content for stablecoin transfers. Buyers pay an amount
whose fractional digits carry the invoice id; the payment watcher follows token
transfers to seller wallets and unlocks the content once the invoice is paid.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to configuration file")

	rootCmd.AddCommand(runCmd, encodeCmd, decodeCmd, schemaCmd, checkpointCmd)
}
