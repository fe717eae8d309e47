// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dotandev/sunfee/internal/config"
	"github.com/dotandev/sunfee/internal/errors"
	"github.com/dotandev/sunfee/internal/logger"
	"github.com/dotandev/sunfee/internal/telemetry"
	"github.com/dotandev/sunfee/internal/tron"
	"go.opentelemetry.io/otel/attribute"
)

// Full node HTTP API paths
const (
	pathGetChainParameters      = "/wallet/getchainparameters"
	pathTriggerConstantContract = "/wallet/triggerconstantcontract"
	pathGetAccountResource      = "/wallet/getaccountresource"
	pathGetAccount              = "/wallet/getaccount"
)

const defaultRequestTimeout = 30 * time.Second

// authTransport is a custom HTTP RoundTripper that adds the TronGrid API key
// header to every request
type authTransport struct {
	apiKey    string
	transport http.RoundTripper
}

// RoundTrip implements http.RoundTripper interface
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.apiKey != "" {
		req.Header.Set("TRON-PRO-API-KEY", t.apiKey)
	}
	return t.transport.RoundTrip(req)
}

// Client handles interactions with a Tron full node over its HTTP API.
// A single client serves every supported network; the target node is resolved
// per call from the network argument unless a base URL override is set.
type Client struct {
	http        *http.Client
	overrideURL string
	apiKey      string // stored for reference, not logged
}

// NewClient creates a new full node client.
// The API key can be provided via the apiKey parameter or the SUNFEE_API_KEY
// environment variable.
func NewClient(apiKey string) *Client {
	if apiKey == "" {
		apiKey = os.Getenv("SUNFEE_API_KEY")
	}

	if apiKey != "" {
		logger.Logger.Debug("RPC client initialized with API key")
	} else {
		logger.Logger.Debug("RPC client initialized without API key")
	}

	return &Client{
		http:   createHTTPClient(apiKey, nil),
		apiKey: apiKey,
	}
}

// NewClientWithURL creates a client pinned to a custom node URL. The network
// argument passed to each call is still recorded for tracing but no longer
// selects the endpoint.
func NewClientWithURL(url string, apiKey string) *Client {
	c := NewClient(apiKey)
	c.overrideURL = url
	return c
}

// NewClientWithRetry creates a client whose transport retries rate-limited
// and transient node failures with exponential backoff. The fee engine never
// retries on its own; this is an opt-in for interactive callers.
func NewClientWithRetry(apiKey string, retryConfig RetryConfig) *Client {
	c := NewClient(apiKey)
	c.http = createHTTPClient(apiKey, NewRetryTransport(retryConfig, nil))
	return c
}

// createHTTPClient creates an HTTP client with optional authentication
func createHTTPClient(apiKey string, transport http.RoundTripper) *http.Client {
	if transport == nil {
		transport = http.DefaultTransport
	}
	if apiKey != "" {
		transport = &authTransport{apiKey: apiKey, transport: transport}
	}
	return &http.Client{
		Transport: transport,
		Timeout:   defaultRequestTimeout,
	}
}

// baseURL resolves the node base URL for a network
func (c *Client) baseURL(network config.Network) (string, error) {
	if c.overrideURL != "" {
		return c.overrideURL, nil
	}
	netCfg, err := config.NetworkConfigFor(network)
	if err != nil {
		return "", err
	}
	return netCfg.NodeURL, nil
}

// GetChainParameters fetches the network-wide fee parameters
func (c *Client) GetChainParameters(ctx context.Context, network config.Network) ([]tron.ChainParameter, error) {
	tracer := telemetry.GetTracer()
	ctx, span := tracer.Start(ctx, "rpc_get_chain_parameters")
	span.SetAttributes(attribute.String("network", string(network)))
	defer span.End()

	logger.Logger.Debug("Fetching chain parameters", "network", network)

	var resp tron.ChainParametersResponse
	if err := c.do(ctx, network, http.MethodGet, pathGetChainParameters, nil, &resp); err != nil {
		span.RecordError(err)
		logger.Logger.Error("Failed to fetch chain parameters", "network", network, "error", err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("parameters.count", len(resp.ChainParameter)))
	logger.Logger.Info("Chain parameters fetched successfully", "network", network, "count", len(resp.ChainParameter))

	return resp.ChainParameter, nil
}

// TriggerConstantContract performs a read-only simulated execution of a
// contract call and reports its energy consumption. The node may legitimately
// report zero energy for calls it could not execute; interpreting that is the
// caller's concern.
func (c *Client) TriggerConstantContract(ctx context.Context, network config.Network, req *tron.TriggerConstantRequest) (*tron.TriggerConstantResult, error) {
	tracer := telemetry.GetTracer()
	ctx, span := tracer.Start(ctx, "rpc_trigger_constant_contract")
	span.SetAttributes(
		attribute.String("network", string(network)),
		attribute.String("contract.address", req.ContractAddress),
		attribute.String("contract.function", req.FunctionSelector),
	)
	defer span.End()

	logger.Logger.Debug("Simulating contract call",
		"network", network,
		"contract", req.ContractAddress,
		"function", req.FunctionSelector,
	)

	var result tron.TriggerConstantResult
	if err := c.do(ctx, network, http.MethodPost, pathTriggerConstantContract, req, &result); err != nil {
		span.RecordError(err)
		logger.Logger.Warn("Constant contract simulation failed", "contract", req.ContractAddress, "error", err)
		return nil, errors.WrapSimulationFailed(err)
	}

	span.SetAttributes(attribute.Int64("simulation.energy_used", result.EnergyUsed))
	logger.Logger.Info("Constant contract simulation completed",
		"contract", req.ContractAddress,
		"energy_used", result.EnergyUsed,
	)

	return &result, nil
}

// GetAccountResource fetches the account's current energy and bandwidth state
func (c *Client) GetAccountResource(ctx context.Context, network config.Network, address string) (*tron.AccountResource, error) {
	tracer := telemetry.GetTracer()
	ctx, span := tracer.Start(ctx, "rpc_get_account_resource")
	span.SetAttributes(
		attribute.String("network", string(network)),
		attribute.String("account.address", address),
	)
	defer span.End()

	logger.Logger.Debug("Fetching account resources", "address", address, "network", network)

	var resource tron.AccountResource
	req := &tron.GetAccountRequest{Address: address, Visible: true}
	if err := c.do(ctx, network, http.MethodPost, pathGetAccountResource, req, &resource); err != nil {
		span.RecordError(err)
		logger.Logger.Error("Failed to fetch account resources", "address", address, "error", err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("account.available_energy", resource.AvailableEnergy()),
		attribute.Int64("account.available_bandwidth", resource.AvailableBandwidth()),
	)

	return &resource, nil
}

// GetAccount fetches the account's native currency balance in sun.
// The node answers an empty object for accounts that have never been
// activated; that surfaces as ErrAccountNotFound.
func (c *Client) GetAccount(ctx context.Context, network config.Network, address string) (*tron.Account, error) {
	tracer := telemetry.GetTracer()
	ctx, span := tracer.Start(ctx, "rpc_get_account")
	span.SetAttributes(
		attribute.String("network", string(network)),
		attribute.String("account.address", address),
	)
	defer span.End()

	logger.Logger.Debug("Fetching account", "address", address, "network", network)

	var account tron.Account
	req := &tron.GetAccountRequest{Address: address, Visible: true}
	if err := c.do(ctx, network, http.MethodPost, pathGetAccount, req, &account); err != nil {
		span.RecordError(err)
		logger.Logger.Error("Failed to fetch account", "address", address, "error", err)
		return nil, err
	}

	if account.Address == "" {
		logger.Logger.Warn("Account not found on chain", "address", address, "network", network)
		return nil, errors.WrapAccountNotFound(address)
	}

	span.SetAttributes(attribute.Int64("account.balance_sun", account.Balance))

	return &account, nil
}

// do executes a single request against the full node and decodes the JSON
// response into out
func (c *Client) do(ctx context.Context, network config.Network, method, path string, body, out interface{}) error {
	base, err := c.baseURL(network)
	if err != nil {
		return err
	}

	// Set a timeout if context doesn't have one
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultRequestTimeout)
		defer cancel()
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.WrapMarshalFailed(err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, base+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.WrapRPCConnectionFailed(err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return c.handleNodeError(resp.StatusCode, respBytes)
	}

	if err := json.Unmarshal(respBytes, out); err != nil {
		return errors.WrapUnmarshalFailed(err, string(respBytes))
	}

	return nil
}

// handleNodeError provides typed errors for node request failures
func (c *Client) handleNodeError(status int, body []byte) error {
	switch status {
	case http.StatusTooManyRequests:
		logger.Logger.Warn("Rate limit exceeded", "status", status)
		return &RateLimitError{Message: "rate limit exceeded, please try again later"}
	case http.StatusNotFound:
		return &NodeError{Status: status, Detail: "endpoint not found"}
	default:
		logger.Logger.Error("Node error", "status", status, "body", string(body))
		return &NodeError{Status: status, Detail: string(body)}
	}
}

// NodeError indicates that the full node answered with a non-OK status
type NodeError struct {
	Status int
	Detail string
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node error (status %d): %s", e.Status, e.Detail)
}

// RateLimitError indicates that too many requests have been made
// and the client should back off.
type RateLimitError struct {
	Message string
}

func (e *RateLimitError) Error() string {
	return e.Message
}

// IsRateLimitError checks if error is a rate limit error
func IsRateLimitError(err error) bool {
	_, ok := err.(*RateLimitError)
	return ok
}
