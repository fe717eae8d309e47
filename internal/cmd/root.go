// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/dotandev/sunfee/internal/cache"
	"github.com/dotandev/sunfee/internal/config"
	"github.com/dotandev/sunfee/internal/fee"
	"github.com/dotandev/sunfee/internal/logger"
	"github.com/dotandev/sunfee/internal/rpc"
	"github.com/dotandev/sunfee/internal/tron"
	"github.com/dotandev/sunfee/internal/updater"
	"github.com/spf13/cobra"
)

// Global flag variables
var (
	NetworkFlag string
	NodeURLFlag string
	APIKeyFlag  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sunfee",
	Short: "Tron transaction fee estimator and send validator",
	Long: `Sunfee estimates the resource consumption and currency cost of Tron
transactions before they are signed and broadcast.

Key features:
  - Quote bandwidth, energy, and TRX costs for any raw transaction
  - Simulate smart contract calls to measure their energy use
  - Validate that a sender can afford a transfer plus all fees
  - Inspect an account's free and staked resource balances
  - Keep a local history of past fee quotes

Examples:
  sunfee quote tx.json --owner TJRab...                Quote a transaction
  sunfee quote tx.json --network nile                  Quote against Nile testnet
  sunfee validate --from TJRab... --to TVjs... --amount 1000000
  sunfee resources TJRab...                            Show resource balances
  sunfee params                                        Show current fee prices

Get started with 'sunfee quote --help' or visit the documentation.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Check for updates asynchronously (non-blocking)
		checkForUpdatesAsync()
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// checkForUpdatesAsync runs the update check in a goroutine to not block CLI startup
func checkForUpdatesAsync() {
	go func() {
		checker := updater.NewChecker(Version)
		checker.CheckForUpdates()
	}()
}

// loadConfig loads configuration and layers the global flags on top
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logger.Logger.Warn("Falling back to default configuration", "error", err)
		cfg = config.DefaultConfig()
	}

	if NetworkFlag != "" {
		cfg.Network = config.Network(NetworkFlag)
	}
	if NodeURLFlag != "" {
		cfg.NodeURL = NodeURLFlag
	}
	if APIKeyFlag != "" {
		cfg.APIKey = APIKeyFlag
	}

	logger.SetLevel(logger.ParseLevel(cfg.LogLevel))

	return cfg
}

// newRPCClient builds the full node client for interactive use. A --node-url
// override pins the client to that endpoint; otherwise transient node errors
// are retried with backoff.
func newRPCClient(cfg *config.Config) *rpc.Client {
	if NodeURLFlag != "" {
		return rpc.NewClientWithURL(cfg.NodeURL, cfg.APIKey)
	}
	return rpc.NewClientWithRetry(cfg.APIKey, rpc.DefaultRetryConfig())
}

// newCalculator wires the client, parameter cache, and calculator together
func newCalculator(cfg *config.Config, client *rpc.Client) *fee.Calculator {
	params := cache.NewTTL[[]tron.ChainParameter](cache.Config{TTL: cfg.ParamTTL})
	return fee.NewCalculator(fee.NewCachedParameterSource(client, params))
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: "fees", Title: "Fee Commands:"},
		&cobra.Group{ID: "utility", Title: "Utility Commands:"},
	)

	rootCmd.PersistentFlags().StringVar(
		&NetworkFlag,
		"network",
		"",
		"Target network (mainnet, shasta, nile)",
	)

	rootCmd.PersistentFlags().StringVar(
		&NodeURLFlag,
		"node-url",
		"",
		"Override the full node URL",
	)

	rootCmd.PersistentFlags().StringVar(
		&APIKeyFlag,
		"api-key",
		"",
		"TronGrid API key (falls back to SUNFEE_API_KEY)",
	)
}
