// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for comparison with errors.Is
var (
	ErrChainParamsUnavailable        = errors.New("chain parameters unavailable")
	ErrRPCConnectionFailed           = errors.New("RPC connection failed")
	ErrRPCTimeout                    = errors.New("RPC request timed out")
	ErrSimulationFailed              = errors.New("constant contract simulation failed")
	ErrInvalidNetwork                = errors.New("invalid network")
	ErrMarshalFailed                 = errors.New("failed to marshal request")
	ErrUnmarshalFailed               = errors.New("failed to unmarshal response")
	ErrAccountNotFound               = errors.New("account not found")
	ErrInsufficientBalance           = errors.New("insufficient balance")
	ErrInsufficientBalanceToCoverFee = errors.New("insufficient balance to cover fee")
)

// Wrap functions for consistent error wrapping
func WrapChainParamsUnavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrChainParamsUnavailable, err)
}

func WrapRPCConnectionFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrRPCConnectionFailed, err)
}

func WrapRPCTimeout(err error) error {
	return fmt.Errorf("%w: %w", ErrRPCTimeout, err)
}

func WrapSimulationFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrSimulationFailed, err)
}

func WrapInvalidNetwork(network string) error {
	return fmt.Errorf("%w: %s. Must be one of: mainnet, shasta, nile", ErrInvalidNetwork, network)
}

func WrapMarshalFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrMarshalFailed, err)
}

func WrapUnmarshalFailed(err error, output string) error {
	return fmt.Errorf("%w: %w, output: %s", ErrUnmarshalFailed, err, output)
}

func WrapAccountNotFound(address string) error {
	return fmt.Errorf("%w: %s", ErrAccountNotFound, address)
}

func WrapInsufficientBalance(asset string) error {
	return fmt.Errorf("%w: %s", ErrInsufficientBalance, asset)
}

func WrapInsufficientBalanceToCoverFee(required, available string) error {
	return fmt.Errorf("%w: required %s TRX, available %s TRX", ErrInsufficientBalanceToCoverFee, required, available)
}
