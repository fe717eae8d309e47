// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resourcesCmd = &cobra.Command{
	Use:     "resources [address]",
	GroupID: "fees",
	Short:   "Show an account's bandwidth and energy balances",
	Long: `Fetch the account's resource state from the full node and print the
free and staked allowances alongside what remains spendable right now.`,
	Example: `  # Show resource balances for an account
  sunfee resources TJRabPrwbZy45sbavfcjinPJC18kjpRTv8`,
	Args: cobra.ExactArgs(1),
	RunE: runResources,
}

func runResources(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig()
	client := newRPCClient(cfg)

	address := args[0]
	resources, err := client.GetAccountResource(ctx, cfg.Network, address)
	if err != nil {
		return err
	}

	fmt.Printf("Resources for %s (%s)\n", address, cfg.Network)
	fmt.Println()

	labelColor.Println("Bandwidth")
	fmt.Printf("  %-12s %d / %d\n", "Free", resources.FreeNetUsed, resources.FreeNetLimit)
	fmt.Printf("  %-12s %d / %d\n", "Staked", resources.NetUsed, resources.NetLimit)
	successColor.Printf("  %-12s %d\n", "Available", resources.AvailableBandwidth())
	fmt.Println()

	labelColor.Println("Energy")
	fmt.Printf("  %-12s %d / %d\n", "Used", resources.EnergyUsed, resources.EnergyLimit)
	successColor.Printf("  %-12s %d\n", "Available", resources.AvailableEnergy())

	return nil
}

func init() {
	rootCmd.AddCommand(resourcesCmd)
}
