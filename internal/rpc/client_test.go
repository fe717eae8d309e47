// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package rpc

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dotandev/sunfee/internal/config"
	sunfeeerrors "github.com/dotandev/sunfee/internal/errors"
	"github.com/dotandev/sunfee/internal/tron"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestGetChainParameters(t *testing.T) {
	ms := NewMockServer(map[string]MockRoute{
		"/wallet/getchainparameters": {
			StatusCode: http.StatusOK,
			Body: tron.ChainParametersResponse{
				ChainParameter: []tron.ChainParameter{
					{Key: tron.ParamTransactionFee, Value: int64Ptr(1000)},
					{Key: tron.ParamEnergyFee, Value: int64Ptr(100)},
					{Key: "getWitnessPayPerBlock", Value: int64Ptr(16000000)},
				},
			},
		},
	})
	defer ms.Close()

	client := NewClientWithURL(ms.URL(), "")

	params, err := client.GetChainParameters(context.Background(), config.NetworkMainnet)
	require.NoError(t, err)
	require.Len(t, params, 3)

	v, ok := tron.FindParameter(params, tron.ParamTransactionFee)
	assert.True(t, ok)
	assert.Equal(t, int64(1000), v)
}

func TestGetChainParametersNodeError(t *testing.T) {
	ms := NewMockServer(map[string]MockRoute{
		"/wallet/getchainparameters": {
			StatusCode: http.StatusInternalServerError,
			Body:       map[string]string{"Error": "internal"},
		},
	})
	defer ms.Close()

	client := NewClientWithURL(ms.URL(), "")

	_, err := client.GetChainParameters(context.Background(), config.NetworkMainnet)
	require.Error(t, err)

	var nodeErr *NodeError
	assert.True(t, errors.As(err, &nodeErr))
	assert.Equal(t, http.StatusInternalServerError, nodeErr.Status)
}

func TestGetChainParametersRateLimited(t *testing.T) {
	ms := NewMockServer(map[string]MockRoute{
		"/wallet/getchainparameters": {
			StatusCode: http.StatusTooManyRequests,
		},
	})
	defer ms.Close()

	client := NewClientWithURL(ms.URL(), "")

	_, err := client.GetChainParameters(context.Background(), config.NetworkMainnet)
	require.Error(t, err)
	assert.True(t, IsRateLimitError(err))
}

func TestTriggerConstantContract(t *testing.T) {
	ms := NewMockServer(map[string]MockRoute{
		"/wallet/triggerconstantcontract": {
			StatusCode: http.StatusOK,
			Body: map[string]interface{}{
				"result":      map[string]interface{}{"result": true},
				"energy_used": 64285,
			},
		},
	})
	defer ms.Close()

	client := NewClientWithURL(ms.URL(), "")

	result, err := client.TriggerConstantContract(context.Background(), config.NetworkMainnet, &tron.TriggerConstantRequest{
		OwnerAddress:     "TJRabPrwbZy45sbavfcjinPJC18kjpRTv8",
		ContractAddress:  "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t",
		FunctionSelector: "transfer(address,uint256)",
	})
	require.NoError(t, err)
	assert.True(t, result.Result.Result)
	assert.Equal(t, int64(64285), result.EnergyUsed)
}

func TestTriggerConstantContractWrapsFailure(t *testing.T) {
	ms := NewMockServer(map[string]MockRoute{})
	defer ms.Close()

	client := NewClientWithURL(ms.URL(), "")

	_, err := client.TriggerConstantContract(context.Background(), config.NetworkMainnet, &tron.TriggerConstantRequest{
		FunctionSelector: "transfer(address,uint256)",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, sunfeeerrors.ErrSimulationFailed))
}

func TestGetAccountResource(t *testing.T) {
	ms := NewMockServer(map[string]MockRoute{
		"/wallet/getaccountresource": {
			StatusCode: http.StatusOK,
			Body: tron.AccountResource{
				FreeNetLimit: 600,
				FreeNetUsed:  334,
				EnergyLimit:  30000,
			},
		},
	})
	defer ms.Close()

	client := NewClientWithURL(ms.URL(), "")

	res, err := client.GetAccountResource(context.Background(), config.NetworkNile, "TJRabPrwbZy45sbavfcjinPJC18kjpRTv8")
	require.NoError(t, err)
	assert.Equal(t, int64(266), res.AvailableBandwidth())
	assert.Equal(t, int64(30000), res.AvailableEnergy())
}

func TestGetAccount(t *testing.T) {
	ms := NewMockServer(map[string]MockRoute{
		"/wallet/getaccount": {
			StatusCode: http.StatusOK,
			Body: tron.Account{
				Address: "TJRabPrwbZy45sbavfcjinPJC18kjpRTv8",
				Balance: 2500000,
			},
		},
	})
	defer ms.Close()

	client := NewClientWithURL(ms.URL(), "")

	account, err := client.GetAccount(context.Background(), config.NetworkMainnet, "TJRabPrwbZy45sbavfcjinPJC18kjpRTv8")
	require.NoError(t, err)
	assert.Equal(t, int64(2500000), account.Balance)
}

func TestGetAccountNotFound(t *testing.T) {
	// An inactive account answers with an empty object
	ms := NewMockServer(map[string]MockRoute{
		"/wallet/getaccount": {
			StatusCode: http.StatusOK,
			Body:       map[string]interface{}{},
		},
	})
	defer ms.Close()

	client := NewClientWithURL(ms.URL(), "")

	_, err := client.GetAccount(context.Background(), config.NetworkMainnet, "TUnknown")
	require.Error(t, err)
	assert.True(t, errors.Is(err, sunfeeerrors.ErrAccountNotFound))
}

func TestBaseURLResolution(t *testing.T) {
	client := NewClient("")

	url, err := client.baseURL(config.NetworkShasta)
	require.NoError(t, err)
	assert.Equal(t, config.ShastaNodeURL, url)

	_, err = client.baseURL(config.Network("goerli"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, sunfeeerrors.ErrInvalidNetwork))
}

func TestAuthTransportSetsAPIKeyHeader(t *testing.T) {
	var gotKey string
	ms := NewMockServer(map[string]MockRoute{
		"/wallet/getchainparameters": {
			StatusCode: http.StatusOK,
			Body:       tron.ChainParametersResponse{},
		},
	})
	defer ms.Close()

	// Wrap the mock with a capture of the header
	base := http.DefaultTransport
	capture := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		gotKey = req.Header.Get("TRON-PRO-API-KEY")
		return base.RoundTrip(req)
	})

	client := NewClientWithURL(ms.URL(), "secret-key")
	client.http = &http.Client{Transport: &authTransport{apiKey: "secret-key", transport: capture}}

	_, err := client.GetChainParameters(context.Background(), config.NetworkMainnet)
	require.NoError(t, err)
	assert.Equal(t, "secret-key", gotKey)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }
