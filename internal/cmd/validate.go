// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/dotandev/sunfee/internal/send"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	validateFromFlag         string
	validateToFlag           string
	validateAssetFlag        string
	validateAmountFlag       string
	validateAssetBalanceFlag string
)

var validateCmd = &cobra.Command{
	Use:     "validate",
	GroupID: "fees",
	Short:   "Check that a sender can afford a transfer plus its fees",
	Long: `Run the two-stage affordability check for a planned transfer: first that
the sender holds the amount being sent, then that the TRX balance covers
the amount plus every currency-denominated fee component.

Amounts are given in the asset's smallest unit (sun for TRX). For TRC10
and TRC20 sends, pass the sender's token balance with --asset-balance;
token balance lookups are outside this tool.`,
	Example: `  # Validate a 1 TRX send
  sunfee validate --from TJRab... --to TVjs... --amount 1000000

  # Validate a TRC20 token send
  sunfee validate --from TJRab... --to TVjs... \
    --asset TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t \
    --amount 25000000 --asset-balance 30000000`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig()
	client := newRPCClient(cfg)
	validator := send.NewValidator(newCalculator(cfg, client), client)

	amount, err := decimal.NewFromString(validateAmountFlag)
	if err != nil {
		return fmt.Errorf("invalid --amount %q: %w", validateAmountFlag, err)
	}

	assetBalance := decimal.Zero
	if validateAssetBalanceFlag != "" {
		assetBalance, err = decimal.NewFromString(validateAssetBalanceFlag)
		if err != nil {
			return fmt.Errorf("invalid --asset-balance %q: %w", validateAssetBalanceFlag, err)
		}
	}

	result, err := validator.Validate(ctx, send.ValidateInput{
		Network:      cfg.Network,
		From:         validateFromFlag,
		To:           validateToFlag,
		Asset:        validateAssetFlag,
		Amount:       amount,
		AssetBalance: assetBalance,
	})
	if err != nil {
		return err
	}

	if result.Valid {
		successColor.Println("Send is valid")
		if len(result.Breakdown) > 0 {
			fmt.Println("Estimated fees:")
			printBreakdown(result.Breakdown)
		}
		return nil
	}

	failColor.Printf("Send rejected: %s\n", result.ErrorCode)
	if len(result.Breakdown) > 0 {
		fmt.Println("Quoted fees:")
		printBreakdown(result.Breakdown)
	}
	return fmt.Errorf("send rejected: %s", result.ErrorCode)
}

func init() {
	validateCmd.Flags().StringVar(&validateFromFlag, "from", "", "Sender address")
	validateCmd.Flags().StringVar(&validateToFlag, "to", "", "Recipient address")
	validateCmd.Flags().StringVar(&validateAssetFlag, "asset", send.NativeAsset, "Asset to send: TRX, a TRC10 id, or a TRC20 contract address")
	validateCmd.Flags().StringVar(&validateAmountFlag, "amount", "", "Amount in the asset's smallest unit")
	validateCmd.Flags().StringVar(&validateAssetBalanceFlag, "asset-balance", "", "Sender's token balance in smallest units (non-TRX assets)")

	validateCmd.MarkFlagRequired("from")   //nolint:errcheck
	validateCmd.MarkFlagRequired("to")     //nolint:errcheck
	validateCmd.MarkFlagRequired("amount") //nolint:errcheck

	rootCmd.AddCommand(validateCmd)
}
