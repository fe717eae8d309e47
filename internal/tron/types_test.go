// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package tron

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawBytes(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		wantLen int
	}{
		{"empty", "", 0},
		{"simple", "0a02", 2},
		{"with 0x prefix", "0x0a02ab", 3},
		{"odd length drops trailing nibble", "0a02a", 2},
		{"invalid suffix keeps valid prefix", "0a02zz", 2},
		{"fully invalid", "zzzz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &Transaction{RawDataHex: tt.hex}
			assert.Len(t, tx.RawBytes(), tt.wantLen)
		})
	}
}

func TestFindParameter(t *testing.T) {
	bandwidth := int64(1000)
	params := []ChainParameter{
		{Key: "getMaintenanceTimeInterval"},
		{Key: ParamTransactionFee, Value: &bandwidth},
	}

	v, ok := FindParameter(params, ParamTransactionFee)
	assert.True(t, ok)
	assert.Equal(t, int64(1000), v)

	// Entry present but value omitted counts as absent
	_, ok = FindParameter(params, "getMaintenanceTimeInterval")
	assert.False(t, ok)

	_, ok = FindParameter(params, ParamEnergyFee)
	assert.False(t, ok)
}

func TestAccountResourceAvailability(t *testing.T) {
	res := &AccountResource{
		FreeNetLimit: 600,
		FreeNetUsed:  100,
		NetLimit:     1000,
		NetUsed:      400,
		EnergyLimit:  50000,
		EnergyUsed:   20000,
	}

	assert.Equal(t, int64(1100), res.AvailableBandwidth())
	assert.Equal(t, int64(30000), res.AvailableEnergy())
}

func TestAccountResourceNeverNegative(t *testing.T) {
	res := &AccountResource{FreeNetUsed: 700, EnergyUsed: 10}

	assert.Equal(t, int64(0), res.AvailableBandwidth())
	assert.Equal(t, int64(0), res.AvailableEnergy())
}

func TestTransactionUnmarshal(t *testing.T) {
	payload := `{
		"visible": false,
		"txID": "5c72a3...",
		"raw_data_hex": "0a02ab5f2208",
		"raw_data": {
			"contract": [{
				"type": "TriggerSmartContract",
				"parameter": {
					"type_url": "type.googleapis.com/protocol.TriggerSmartContract",
					"value": {
						"owner_address": "41a614f803b6fd780986a42c78ec9c7f77e6ded13c",
						"contract_address": "41a2726afbecbd8e936000ed684cef5e2f5cf43008",
						"data": "a9059cbb0000000000000000000000410000000000000000000000000000000000000001"
					}
				}
			}]
		}
	}`

	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(payload), &tx))

	require.Len(t, tx.RawData.Contract, 1)
	c := tx.RawData.Contract[0]
	assert.Equal(t, ContractTriggerSmart, c.Type)
	assert.NotEmpty(t, c.Parameter.Value.Data)
	assert.Equal(t, 6, len(tx.RawBytes()))
}

func TestChainParametersResponseUnmarshal(t *testing.T) {
	payload := `{"chainParameter":[{"key":"getEnergyFee","value":100},{"key":"getWitnessPayPerBlock"}]}`

	var resp ChainParametersResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))

	require.Len(t, resp.ChainParameter, 2)
	v, ok := FindParameter(resp.ChainParameter, ParamEnergyFee)
	assert.True(t, ok)
	assert.Equal(t, int64(100), v)
}
