// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package fee

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/dotandev/sunfee/internal/config"
	"github.com/dotandev/sunfee/internal/tron"
)

// stubSource is an in-memory ParameterSource for tests
type stubSource struct {
	params    []tron.ChainParameter
	paramsErr error

	simResult *tron.TriggerConstantResult
	simErr    error

	paramCalls int32
	simCalls   int32
	lastSim    *tron.TriggerConstantRequest
}

func (s *stubSource) GetChainParameters(ctx context.Context, network config.Network) ([]tron.ChainParameter, error) {
	atomic.AddInt32(&s.paramCalls, 1)
	if s.paramsErr != nil {
		return nil, s.paramsErr
	}
	return s.params, nil
}

func (s *stubSource) TriggerConstantContract(ctx context.Context, network config.Network, req *tron.TriggerConstantRequest) (*tron.TriggerConstantResult, error) {
	atomic.AddInt32(&s.simCalls, 1)
	s.lastSim = req
	if s.simErr != nil {
		return nil, s.simErr
	}
	return s.simResult, nil
}

func paramList(bandwidthPrice, energyPrice int64) []tron.ChainParameter {
	return []tron.ChainParameter{
		{Key: tron.ParamTransactionFee, Value: &bandwidthPrice},
		{Key: tron.ParamEnergyFee, Value: &energyPrice},
	}
}

func simResult(energyUsed int64) *tron.TriggerConstantResult {
	r := &tron.TriggerConstantResult{EnergyUsed: energyUsed}
	r.Result.Result = true
	return r
}

// rawHexOfLen builds a raw_data_hex string that decodes to n bytes
func rawHexOfLen(n int) string {
	return strings.Repeat("ab", n)
}

func nativeTransferTx(rawBytes int) *tron.Transaction {
	return &tron.Transaction{
		RawDataHex: rawHexOfLen(rawBytes),
		RawData: tron.RawData{
			Contract: []tron.Contract{{
				Type: tron.ContractTransfer,
				Parameter: tron.ContractParameter{
					Value: tron.ContractValue{
						OwnerAddress: "41a614f803b6fd780986a42c78ec9c7f77e6ded13c",
						ToAddress:    "41b3dcf27c251da9363f1a4888257c16676cf54edf",
						Amount:       1_000_000,
					},
				},
			}},
		},
	}
}

func smartContractTx(rawBytes int, data string) *tron.Transaction {
	return &tron.Transaction{
		RawDataHex: rawHexOfLen(rawBytes),
		RawData: tron.RawData{
			Contract: []tron.Contract{{
				Type: tron.ContractTriggerSmart,
				Parameter: tron.ContractParameter{
					Value: tron.ContractValue{
						OwnerAddress:    "41a614f803b6fd780986a42c78ec9c7f77e6ded13c",
						ContractAddress: "41a2726afbecbd8e936000ed684cef5e2f5cf43008",
						Data:            data,
					},
				},
			}},
		},
	}
}

// trc20TransferData is a transfer(address,uint256) call payload
const trc20TransferData = "a9059cbb" +
	"000000000000000000000041b3dcf27c251da9363f1a4888257c16676cf54edf" +
	"00000000000000000000000000000000000000000000000000000000000f4240"
