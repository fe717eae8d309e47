// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"time"

	"github.com/dotandev/sunfee/internal/quotestore"
	"github.com/spf13/cobra"
)

var (
	historyLimitFlag int
	historyOwnerFlag string
	pruneAgeFlag     time.Duration
)

var historyCmd = &cobra.Command{
	Use:     "history",
	GroupID: "utility",
	Short:   "List previously computed fee quotes",
	Long: `Show quotes recorded by 'sunfee quote', newest first. Filter with
--owner and the global --network flag.`,
	Example: `  # Show the last ten quotes
  sunfee history --limit 10

  # Show quotes for one account on Nile
  sunfee history --owner TJRab... --network nile`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old quotes from the local history",
	Example: `  # Drop quotes older than a month
  sunfee history prune --older-than 720h`,
	Args: cobra.NoArgs,
	RunE: runHistoryPrune,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	store, err := quotestore.Open(cfg.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	quotes, err := store.Search(quotestore.SearchParams{
		Network: NetworkFlag,
		Owner:   historyOwnerFlag,
		Limit:   historyLimitFlag,
	})
	if err != nil {
		return err
	}

	if len(quotes) == 0 {
		fmt.Println("No quotes recorded yet.")
		return nil
	}

	for _, quote := range quotes {
		owner := quote.Owner
		if owner == "" {
			owner = "(no owner)"
		}
		labelColor.Printf("%s  %s  %s\n", quote.Timestamp.Format(time.RFC3339), quote.Network, owner)
		printBreakdown(quote.Breakdown)
		fmt.Println()
	}

	return nil
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	store, err := quotestore.Open(cfg.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.Prune(pruneAgeFlag)
	if err != nil {
		return err
	}

	fmt.Printf("Removed %d quote(s)\n", removed)
	return nil
}

func init() {
	historyCmd.Flags().IntVar(&historyLimitFlag, "limit", 20, "Maximum number of quotes to show")
	historyCmd.Flags().StringVar(&historyOwnerFlag, "owner", "", "Only show quotes for this account")

	historyPruneCmd.Flags().DurationVar(&pruneAgeFlag, "older-than", 30*24*time.Hour, "Delete quotes older than this")

	historyCmd.AddCommand(historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}
