// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/dotandev/sunfee/internal/fee"
	"github.com/fatih/color"
)

var (
	labelColor   = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	failColor    = color.New(color.FgRed)
)

// printBreakdown renders a fee breakdown as an aligned list. An empty
// breakdown means every resource need was covered by zero-cost balances.
func printBreakdown(breakdown fee.Breakdown) {
	if len(breakdown) == 0 {
		successColor.Println("No fees: the transaction consumes nothing")
		return
	}

	for _, comp := range breakdown {
		switch comp.Kind {
		case fee.ResourceNative:
			warnColor.Printf("  %-10s %s %s\n", "TRX", comp.Amount, comp.Symbol)
		case fee.ResourceEnergy:
			labelColor.Printf("  %-10s %s\n", "Energy", comp.Amount)
		case fee.ResourceBandwidth:
			labelColor.Printf("  %-10s %s\n", "Bandwidth", comp.Amount)
		default:
			fmt.Printf("  %-10s %s %s\n", comp.Kind, comp.Amount, comp.Symbol)
		}
	}
}
