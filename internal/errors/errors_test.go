// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapChainParamsUnavailable(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := WrapChainParamsUnavailable(cause)

	assert.True(t, errors.Is(err, ErrChainParamsUnavailable))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWrapRPCConnectionFailed(t *testing.T) {
	cause := fmt.Errorf("dial tcp: timeout")
	err := WrapRPCConnectionFailed(cause)

	assert.True(t, errors.Is(err, ErrRPCConnectionFailed))
	assert.Contains(t, err.Error(), "dial tcp")
}

func TestWrapInvalidNetwork(t *testing.T) {
	err := WrapInvalidNetwork("ropsten")

	assert.True(t, errors.Is(err, ErrInvalidNetwork))
	assert.Contains(t, err.Error(), "ropsten")
	assert.Contains(t, err.Error(), "mainnet")
}

func TestWrapInsufficientBalance(t *testing.T) {
	err := WrapInsufficientBalance("TRX")

	assert.True(t, errors.Is(err, ErrInsufficientBalance))
	assert.False(t, errors.Is(err, ErrInsufficientBalanceToCoverFee))
}

func TestWrapInsufficientBalanceToCoverFee(t *testing.T) {
	err := WrapInsufficientBalanceToCoverFee("12.500000", "3.000000")

	assert.True(t, errors.Is(err, ErrInsufficientBalanceToCoverFee))
	assert.Contains(t, err.Error(), "12.500000")
	assert.Contains(t, err.Error(), "3.000000")
}

func TestWrapSimulationFailedPreservesCause(t *testing.T) {
	cause := fmt.Errorf("status code 503")
	err := WrapSimulationFailed(cause)

	assert.True(t, errors.Is(err, ErrSimulationFailed))
	assert.Contains(t, err.Error(), "503")
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrChainParamsUnavailable,
		ErrRPCConnectionFailed,
		ErrSimulationFailed,
		ErrInvalidNetwork,
		ErrInsufficientBalance,
		ErrInsufficientBalanceToCoverFee,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "sentinel %v should not match %v", a, b)
		}
	}
}
