// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dotandev/sunfee/internal/fee"
	"github.com/dotandev/sunfee/internal/logger"
	"github.com/dotandev/sunfee/internal/quotestore"
	"github.com/dotandev/sunfee/internal/tron"
	"github.com/spf13/cobra"
)

var (
	quoteOwnerFlag  string
	quoteNoSaveFlag bool
)

var quoteCmd = &cobra.Command{
	Use:     "quote [transaction.json]",
	GroupID: "fees",
	Short:   "Estimate the fees of an unsigned transaction",
	Long: `Read a raw transaction in the full node JSON format and report what it
will cost to broadcast: the bandwidth and energy it consumes from the
owner's balances, and the TRX billed for anything those balances do not
cover.

Pass '-' to read the transaction from stdin. When --owner is given, the
account's current resource balances are fetched and offset against the
transaction's needs; without it the quote assumes zero free resources.`,
	Example: `  # Quote a transaction against the owner's resources
  sunfee quote tx.json --owner TJRabPrwbZy45sbavfcjinPJC18kjpRTv8

  # Quote from stdin with no resource offsets
  cat tx.json | sunfee quote -

  # Quote on the Nile testnet
  sunfee quote tx.json --network nile`,
	Args: cobra.ExactArgs(1),
	RunE: runQuote,
}

func runQuote(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig()
	client := newRPCClient(cfg)
	calc := newCalculator(cfg, client)

	tx, err := readTransaction(args[0])
	if err != nil {
		return err
	}

	input := fee.ComputeFeeInput{
		Network:     cfg.Network,
		Transaction: tx,
		FeeLimitSun: tx.RawData.FeeLimit,
	}

	if quoteOwnerFlag != "" {
		resources, err := client.GetAccountResource(ctx, cfg.Network, quoteOwnerFlag)
		if err != nil {
			return fmt.Errorf("failed to fetch resources for %s: %w", quoteOwnerFlag, err)
		}
		input.AvailableEnergy = resources.AvailableEnergy()
		input.AvailableBandwidth = resources.AvailableBandwidth()
	}

	breakdown, err := calc.ComputeFee(ctx, input)
	if err != nil {
		return err
	}

	fmt.Printf("Fee quote (%s)\n", cfg.Network)
	printBreakdown(breakdown)

	if !quoteNoSaveFlag {
		saveQuote(cfg.HistoryPath, string(cfg.Network), quoteOwnerFlag, breakdown)
	}

	return nil
}

// readTransaction loads the full node transaction JSON from a file or stdin
func readTransaction(path string) (*tron.Transaction, error) {
	var data []byte
	var err error

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read transaction: %w", err)
	}

	var tx tron.Transaction
	if err := json.Unmarshal(data, &tx); err != nil {
		return nil, fmt.Errorf("failed to parse transaction JSON: %w", err)
	}

	return &tx, nil
}

// saveQuote appends the quote to the local history. History failures never
// fail the quote itself.
func saveQuote(path, network, owner string, breakdown fee.Breakdown) {
	store, err := quotestore.Open(path)
	if err != nil {
		logger.Logger.Warn("Quote history unavailable", "error", err)
		return
	}
	defer store.Close()

	if err := store.Save(&quotestore.Quote{
		Network:   network,
		Owner:     owner,
		Breakdown: breakdown,
	}); err != nil {
		logger.Logger.Warn("Failed to record quote", "error", err)
	}
}

func init() {
	quoteCmd.Flags().StringVar(&quoteOwnerFlag, "owner", "", "Account whose resource balances offset the cost")
	quoteCmd.Flags().BoolVar(&quoteNoSaveFlag, "no-save", false, "Skip recording the quote in local history")

	rootCmd.AddCommand(quoteCmd)
}
