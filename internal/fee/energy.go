// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package fee

import (
	"context"

	"github.com/dotandev/sunfee/internal/config"
	"github.com/dotandev/sunfee/internal/logger"
	"github.com/dotandev/sunfee/internal/tron"
	"github.com/shopspring/decimal"
)

// FallbackEnergyEstimate is the conservative per-invocation estimate used
// whenever simulation is impossible or inconclusive. Sized to cover a typical
// TRC20 transfer to a fresh address with headroom, so a degraded estimate
// never under-quotes the fee.
const FallbackEnergyEstimate = 130_000

// Estimator determines how much energy a pending transaction will consume.
// Direct transfers are free; contract calls are simulated through the
// injected ParameterSource with a fixed fallback when simulation degrades.
type Estimator struct {
	source ParameterSource
}

// NewEstimator creates an Estimator backed by the given source
func NewEstimator(source ParameterSource) *Estimator {
	return &Estimator{source: source}
}

// CalculateEnergy sums the energy estimate of every contract invocation in
// the transaction. Never returns an error: every degraded path contributes
// the fallback constant instead.
func (e *Estimator) CalculateEnergy(ctx context.Context, network config.Network, tx *tron.Transaction) decimal.Decimal {
	total := decimal.Zero

	if tx == nil || len(tx.RawData.Contract) == 0 {
		logger.Logger.Info("Transaction carries no contract invocations, energy is zero")
		return total
	}

	for _, contract := range tx.RawData.Contract {
		switch contract.Type {
		case tron.ContractTransfer, tron.ContractTransferAsset:
			// Plain transfers consume bandwidth only

		case tron.ContractTriggerSmart:
			total = total.Add(e.EstimateSmartContractEnergy(ctx, network, contract.Parameter.Value))

		default:
			logger.Logger.Warn("Unknown contract type, using conservative energy estimate",
				"type", contract.Type,
				"fallback", FallbackEnergyEstimate,
			)
			total = total.Add(decimal.NewFromInt(FallbackEnergyEstimate))
		}
	}

	return total
}

// EstimateSmartContractEnergy estimates one smart contract invocation by
// simulating it as a constant call. All failure paths degrade to
// FallbackEnergyEstimate; this method never propagates an error.
func (e *Estimator) EstimateSmartContractEnergy(ctx context.Context, network config.Network, value tron.ContractValue) decimal.Decimal {
	fallback := decimal.NewFromInt(FallbackEnergyEstimate)

	if value.Data == "" {
		logger.Logger.Debug("Contract invocation has no call data, using fallback estimate")
		return fallback
	}

	selector, params, ok := SplitCallData(value.Data)
	if !ok {
		logger.Logger.Debug("Call data too short to carry a selector, using fallback estimate",
			"data_len", len(value.Data),
		)
		return fallback
	}

	signature, known := LookupSelector(selector)
	if !known {
		logger.Logger.Debug("Unknown function selector, simulating as generic transfer",
			"selector", selector,
		)
	}

	result, err := e.source.TriggerConstantContract(ctx, network, &tron.TriggerConstantRequest{
		OwnerAddress:     value.OwnerAddress,
		ContractAddress:  value.ContractAddress,
		FunctionSelector: signature,
		Parameter:        params,
	})
	if err != nil {
		logger.Logger.Warn("Energy simulation failed, using fallback estimate",
			"contract", value.ContractAddress,
			"error", err,
		)
		return fallback
	}

	if result.EnergyUsed <= 0 {
		logger.Logger.Warn("Energy simulation returned no usable value, using fallback estimate",
			"contract", value.ContractAddress,
		)
		return fallback
	}

	// The simulated value is used verbatim; no safety margin is applied here
	return decimal.NewFromInt(result.EnergyUsed)
}
