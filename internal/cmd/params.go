// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/dotandev/sunfee/internal/fee"
	"github.com/dotandev/sunfee/internal/tron"
	"github.com/spf13/cobra"
)

var paramsAllFlag bool

var paramsCmd = &cobra.Command{
	Use:     "params",
	GroupID: "fees",
	Short:   "Show the network's current fee parameters",
	Long: `Fetch the chain parameters that govern fee pricing and print the
bandwidth and energy unit prices in sun. Parameters the node does not
report fall back to the protocol defaults.`,
	Example: `  # Show fee prices on mainnet
  sunfee params

  # Dump every chain parameter on Nile
  sunfee params --network nile --all`,
	Args: cobra.NoArgs,
	RunE: runParams,
}

func runParams(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig()
	client := newRPCClient(cfg)

	params, err := client.GetChainParameters(ctx, cfg.Network)
	if err != nil {
		return err
	}

	bandwidthPrice, ok := tron.FindParameter(params, tron.ParamTransactionFee)
	if !ok {
		bandwidthPrice = fee.DefaultBandwidthPriceSun
	}
	energyPrice, ok := tron.FindParameter(params, tron.ParamEnergyFee)
	if !ok {
		energyPrice = fee.DefaultEnergyPriceSun
	}

	fmt.Printf("Fee parameters (%s)\n", cfg.Network)
	labelColor.Printf("  %-20s %d sun\n", "Bandwidth price", bandwidthPrice)
	labelColor.Printf("  %-20s %d sun\n", "Energy price", energyPrice)

	if paramsAllFlag {
		fmt.Println()
		for _, p := range params {
			if p.Value == nil {
				continue
			}
			fmt.Printf("  %-45s %d\n", p.Key, *p.Value)
		}
	}

	return nil
}

func init() {
	paramsCmd.Flags().BoolVar(&paramsAllFlag, "all", false, "Print every reported chain parameter")

	rootCmd.AddCommand(paramsCmd)
}
