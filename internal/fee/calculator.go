// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package fee

import (
	"context"

	"github.com/dotandev/sunfee/internal/config"
	"github.com/dotandev/sunfee/internal/errors"
	"github.com/dotandev/sunfee/internal/logger"
	"github.com/dotandev/sunfee/internal/telemetry"
	"github.com/dotandev/sunfee/internal/tron"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// Default prices in sun, used when the chain parameter list omits the entry
const (
	DefaultBandwidthPriceSun = 1000
	DefaultEnergyPriceSun    = 100
)

// SunPerTRX converts the smallest currency unit to the display unit
const SunPerTRX = 1_000_000

// trxPrecision is the fixed render precision for TRX amounts
const trxPrecision = 6

// ResourceKind identifies what a fee component is paid in
type ResourceKind string

const (
	ResourceEnergy    ResourceKind = "energy"
	ResourceBandwidth ResourceKind = "bandwidth"
	ResourceNative    ResourceKind = "native"
)

// Component is one line of a fee breakdown. Amount is always a decimal
// string so downstream JSON serialization never goes through a binary float.
type Component struct {
	Kind    ResourceKind `json:"kind"`
	Amount  string       `json:"amount"`
	Symbol  string       `json:"symbol"`
	AssetID string       `json:"asset_id,omitempty"`
	IconURL string       `json:"icon_url,omitempty"`
}

// Breakdown is an ordered list of fee components. Order is significant for
// display: energy, then bandwidth, then native currency. Zero-amount
// components are never present.
type Breakdown []Component

// ComputeFeeInput carries everything ComputeFee needs. Resource balances are
// supplied by the caller; the engine never fetches them itself.
type ComputeFeeInput struct {
	Network            config.Network
	Transaction        *tron.Transaction
	AvailableEnergy    int64
	AvailableBandwidth int64
	// FeeLimitSun is the caller's optional cap on the currency fee.
	// Exceeding it is reported in logs, not enforced here.
	FeeLimitSun int64
}

// Calculator produces fee breakdowns for pending transactions. Stateless
// aside from the injected source, so concurrent calls need no coordination.
type Calculator struct {
	source    ParameterSource
	estimator *Estimator
}

// NewCalculator creates a Calculator backed by the given parameter source
func NewCalculator(source ParameterSource) *Calculator {
	return &Calculator{
		source:    source,
		estimator: NewEstimator(source),
	}
}

// ComputeFee determines how much of each free resource the transaction will
// consume and how much TRX must be paid for any shortfall.
//
// Bandwidth is all-or-nothing: the chain cannot spend partial free
// bandwidth, so either the whole cost fits in the free balance or the whole
// cost is billed in currency. Energy is consumed partially: free energy is
// always spent first and only the overage is billed.
//
// The only propagated failure is a chain parameter fetch failure while an
// overage needs pricing; silently omitting a required payment would
// under-quote the fee and risk broadcasting an underfunded transaction.
func (c *Calculator) ComputeFee(ctx context.Context, input ComputeFeeInput) (Breakdown, error) {
	tracer := telemetry.GetTracer()
	ctx, span := tracer.Start(ctx, "fee_compute")
	span.SetAttributes(attribute.String("network", string(input.Network)))
	defer span.End()

	bandwidthNeeded := CalculateBandwidth(input.Transaction)
	energyNeeded := c.estimator.CalculateEnergy(ctx, input.Network, input.Transaction)

	span.SetAttributes(
		attribute.Int64("fee.bandwidth_needed", bandwidthNeeded),
		attribute.String("fee.energy_needed", energyNeeded.String()),
	)

	availableEnergy := decimal.NewFromInt(input.AvailableEnergy)
	needed := decimal.NewFromInt(bandwidthNeeded)

	// All-or-nothing bandwidth accounting
	var bandwidthConsumed, bandwidthOverage decimal.Decimal
	if input.AvailableBandwidth >= bandwidthNeeded {
		bandwidthConsumed = needed
	} else {
		bandwidthOverage = needed
	}

	// Partial energy accounting: free energy first, overage billed
	energyConsumed := decimal.Min(energyNeeded, availableEnergy)
	energyOverage := decimal.Max(energyNeeded.Sub(availableEnergy), decimal.Zero)

	logger.Logger.Debug("Fee accounting",
		"bandwidth_needed", bandwidthNeeded,
		"bandwidth_consumed", bandwidthConsumed.String(),
		"bandwidth_overage", bandwidthOverage.String(),
		"energy_needed", energyNeeded.String(),
		"energy_consumed", energyConsumed.String(),
		"energy_overage", energyOverage.String(),
	)

	trxCost := decimal.Zero
	if bandwidthOverage.IsPositive() || energyOverage.IsPositive() {
		cost, err := c.priceOverage(ctx, input.Network, bandwidthOverage, energyOverage)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		trxCost = cost

		if input.FeeLimitSun > 0 {
			limit := decimal.NewFromInt(input.FeeLimitSun).Div(decimal.NewFromInt(SunPerTRX))
			if trxCost.GreaterThan(limit) {
				logger.Logger.Warn("Estimated fee exceeds caller fee limit",
					"estimated_trx", trxCost.StringFixed(trxPrecision),
					"fee_limit_trx", limit.StringFixed(trxPrecision),
				)
			}
		}
	}

	netCfg, _ := config.NetworkConfigFor(input.Network)

	var breakdown Breakdown
	if energyConsumed.IsPositive() {
		breakdown = append(breakdown, Component{
			Kind:   ResourceEnergy,
			Amount: energyConsumed.String(),
			Symbol: "Energy",
		})
	}
	if bandwidthConsumed.IsPositive() {
		breakdown = append(breakdown, Component{
			Kind:   ResourceBandwidth,
			Amount: bandwidthConsumed.String(),
			Symbol: "Bandwidth",
		})
	}
	if trxCost.IsPositive() {
		breakdown = append(breakdown, Component{
			Kind:    ResourceNative,
			Amount:  trxCost.StringFixed(trxPrecision),
			Symbol:  "TRX",
			AssetID: netCfg.CurrencyID,
		})
	}

	span.SetAttributes(attribute.Int("fee.components", len(breakdown)))

	return breakdown, nil
}

// priceOverage converts resource overages to a TRX amount using current
// chain parameters. Missing parameter entries fall back to fixed defaults;
// a failed fetch propagates as ErrChainParamsUnavailable.
func (c *Calculator) priceOverage(ctx context.Context, network config.Network, bandwidthOverage, energyOverage decimal.Decimal) (decimal.Decimal, error) {
	params, err := c.source.GetChainParameters(ctx, network)
	if err != nil {
		return decimal.Zero, errors.WrapChainParamsUnavailable(err)
	}

	bandwidthPrice := decimal.NewFromInt(DefaultBandwidthPriceSun)
	if v, ok := tron.FindParameter(params, tron.ParamTransactionFee); ok {
		bandwidthPrice = decimal.NewFromInt(v)
	} else {
		logger.Logger.Debug("Bandwidth price missing from chain parameters, using default",
			"default_sun", DefaultBandwidthPriceSun,
		)
	}

	energyPrice := decimal.NewFromInt(DefaultEnergyPriceSun)
	if v, ok := tron.FindParameter(params, tron.ParamEnergyFee); ok {
		energyPrice = decimal.NewFromInt(v)
	} else {
		logger.Logger.Debug("Energy price missing from chain parameters, using default",
			"default_sun", DefaultEnergyPriceSun,
		)
	}

	costSun := bandwidthOverage.Mul(bandwidthPrice).Add(energyOverage.Mul(energyPrice))

	return costSun.Div(decimal.NewFromInt(SunPerTRX)), nil
}
