// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package send

import (
	"context"
	goerrors "errors"
	"strings"

	"github.com/dotandev/sunfee/internal/config"
	"github.com/dotandev/sunfee/internal/errors"
	"github.com/dotandev/sunfee/internal/fee"
	"github.com/dotandev/sunfee/internal/logger"
	"github.com/dotandev/sunfee/internal/tron"
	"github.com/shopspring/decimal"
)

// NativeAsset identifies the chain's native currency in ValidateInput.Asset
const NativeAsset = "TRX"

// Machine-readable validation failure codes
const (
	CodeInsufficientBalance           = "insufficient_balance"
	CodeInsufficientBalanceToCoverFee = "insufficient_balance_to_cover_fee"
)

// Representative serialized sizes used to cost a transfer before the real
// transaction is built. A native transfer raw payload runs just over 130
// bytes; a TRC20 transfer carries a 68-byte call data blob on top.
const (
	representativeTransferBytes = 132
	representativeTriggerBytes  = 200
)

// FeeQuoter produces a fee breakdown for a candidate transaction
type FeeQuoter interface {
	ComputeFee(ctx context.Context, input fee.ComputeFeeInput) (fee.Breakdown, error)
}

// AccountSource supplies the sender's balance and resource state
type AccountSource interface {
	GetAccount(ctx context.Context, network config.Network, address string) (*tron.Account, error)
	GetAccountResource(ctx context.Context, network config.Network, address string) (*tron.AccountResource, error)
}

// ValidateInput describes a requested transfer. Amount is denominated in the
// asset's smallest unit. For non-native assets the caller supplies the
// sender's asset balance; balance lookups for arbitrary tokens are outside
// this engine.
type ValidateInput struct {
	Network config.Network
	From    string
	To      string
	// Asset is NativeAsset for TRX, otherwise the token's contract address
	// (TRC20) or asset id (TRC10)
	Asset        string
	Amount       decimal.Decimal
	AssetBalance decimal.Decimal
}

// Result is the outcome of a validation. ErrorCode is set when Valid is false.
type Result struct {
	Valid     bool           `json:"valid"`
	ErrorCode string         `json:"error_code,omitempty"`
	Breakdown fee.Breakdown  `json:"breakdown,omitempty"`
}

// Validator decides whether a sender can afford a transfer plus all fees
type Validator struct {
	quoter   FeeQuoter
	accounts AccountSource
}

// NewValidator creates a Validator from its two collaborators
func NewValidator(quoter FeeQuoter, accounts AccountSource) *Validator {
	return &Validator{
		quoter:   quoter,
		accounts: accounts,
	}
}

// Validate runs the two-stage affordability check. The asset balance is
// checked before any fee computation so an obviously underfunded send never
// costs a remote call. Only infrastructure failures surface as errors;
// affordability failures come back as a Result with an error code.
func (v *Validator) Validate(ctx context.Context, input ValidateInput) (*Result, error) {
	native := isNative(input.Asset)

	nativeBalance, err := v.nativeBalance(ctx, input.Network, input.From)
	if err != nil {
		return nil, err
	}

	// Stage one: does the sender hold the amount being sent
	assetBalance := input.AssetBalance
	if native {
		assetBalance = nativeBalance
	}
	if assetBalance.LessThan(input.Amount) {
		logger.Logger.Info("Send rejected: asset balance below amount",
			"asset", input.Asset,
			"amount", input.Amount.String(),
			"balance", assetBalance.String(),
		)
		return &Result{Valid: false, ErrorCode: CodeInsufficientBalance}, nil
	}

	// Stage two: cost the transfer and check the native balance covers
	// amount plus every currency-denominated fee component
	resources, err := v.accounts.GetAccountResource(ctx, input.Network, input.From)
	if err != nil {
		return nil, err
	}

	breakdown, err := v.quoter.ComputeFee(ctx, fee.ComputeFeeInput{
		Network:            input.Network,
		Transaction:        v.representativeTransaction(input),
		AvailableEnergy:    resources.AvailableEnergy(),
		AvailableBandwidth: resources.AvailableBandwidth(),
	})
	if err != nil {
		return nil, err
	}

	requiredSun := decimal.Zero
	if native {
		requiredSun = input.Amount
	}
	for _, comp := range breakdown {
		if comp.Kind == fee.ResourceNative {
			trx, err := decimal.NewFromString(comp.Amount)
			if err != nil {
				continue
			}
			requiredSun = requiredSun.Add(trx.Mul(decimal.NewFromInt(fee.SunPerTRX)))
		}
	}

	if nativeBalance.LessThan(requiredSun) {
		logger.Logger.Info("Send rejected: native balance cannot cover amount plus fees",
			"required_sun", requiredSun.String(),
			"balance_sun", nativeBalance.String(),
		)
		return &Result{
			Valid:     false,
			ErrorCode: CodeInsufficientBalanceToCoverFee,
			Breakdown: breakdown,
		}, nil
	}

	return &Result{Valid: true, Breakdown: breakdown}, nil
}

// nativeBalance fetches the sender's TRX balance in sun. An account the
// chain has never seen holds nothing.
func (v *Validator) nativeBalance(ctx context.Context, network config.Network, address string) (decimal.Decimal, error) {
	account, err := v.accounts.GetAccount(ctx, network, address)
	if err != nil {
		if goerrors.Is(err, errors.ErrAccountNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return decimal.NewFromInt(account.Balance), nil
}

// representativeTransaction builds a stand-in transaction sized and shaped
// like the transfer being validated, so its fee quote matches what the real
// signed transaction will cost.
func (v *Validator) representativeTransaction(input ValidateInput) *tron.Transaction {
	if isNative(input.Asset) {
		return &tron.Transaction{
			RawDataHex: strings.Repeat("00", representativeTransferBytes),
			RawData: tron.RawData{
				Contract: []tron.Contract{{
					Type: tron.ContractTransfer,
					Parameter: tron.ContractParameter{
						Value: tron.ContractValue{
							OwnerAddress: input.From,
							ToAddress:    input.To,
							Amount:       input.Amount.IntPart(),
						},
					},
				}},
			},
		}
	}

	// TRC10 asset ids are numeric; anything else is treated as a TRC20
	// contract call whose energy must be simulated
	if isNumeric(input.Asset) {
		return &tron.Transaction{
			RawDataHex: strings.Repeat("00", representativeTransferBytes),
			RawData: tron.RawData{
				Contract: []tron.Contract{{
					Type: tron.ContractTransferAsset,
					Parameter: tron.ContractParameter{
						Value: tron.ContractValue{
							OwnerAddress: input.From,
							ToAddress:    input.To,
							AssetName:    input.Asset,
							Amount:       input.Amount.IntPart(),
						},
					},
				}},
			},
		}
	}

	return &tron.Transaction{
		RawDataHex: strings.Repeat("00", representativeTriggerBytes),
		RawData: tron.RawData{
			Contract: []tron.Contract{{
				Type: tron.ContractTriggerSmart,
				Parameter: tron.ContractParameter{
					Value: tron.ContractValue{
						OwnerAddress:    input.From,
						ContractAddress: input.Asset,
						Data:            transferCallData(input.To, input.Amount),
					},
				},
			}},
		},
	}
}

func isNative(asset string) bool {
	return strings.EqualFold(asset, NativeAsset) || asset == ""
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// transferCallData encodes a transfer(address,uint256) payload for
// representative costing. Addresses already in hex pass through; the exact
// argument bytes only influence the simulation, not the sizing.
func transferCallData(to string, amount decimal.Decimal) string {
	addr := strings.TrimPrefix(strings.ToLower(to), "0x")
	return "a9059cbb" + leftPad(addr, 64) + leftPad(amount.Coefficient().Text(16), 64)
}

func leftPad(s string, width int) string {
	if len(s) >= width {
		return s[len(s)-width:]
	}
	return strings.Repeat("0", width-len(s)) + s
}
