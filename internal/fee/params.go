// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package fee

import (
	"context"

	"github.com/dotandev/sunfee/internal/cache"
	"github.com/dotandev/sunfee/internal/config"
	"github.com/dotandev/sunfee/internal/logger"
	"github.com/dotandev/sunfee/internal/tron"
)

// ParameterSource supplies network-wide fee parameters and the constant
// contract simulation capability. Implemented by the rpc full node client;
// injected so the engine stays testable without a network.
type ParameterSource interface {
	GetChainParameters(ctx context.Context, network config.Network) ([]tron.ChainParameter, error)
	TriggerConstantContract(ctx context.Context, network config.Network, req *tron.TriggerConstantRequest) (*tron.TriggerConstantResult, error)
}

// CachedParameterSource decorates a ParameterSource with a TTL cache for
// chain parameters. Parameters change on the chain's maintenance cadence,
// so slightly stale reads are acceptable to every caller. Simulations pass
// through uncached since they are transaction-specific.
type CachedParameterSource struct {
	source ParameterSource
	params *cache.TTL[[]tron.ChainParameter]
}

// NewCachedParameterSource wraps source with the given cache collaborator
func NewCachedParameterSource(source ParameterSource, params *cache.TTL[[]tron.ChainParameter]) *CachedParameterSource {
	return &CachedParameterSource{
		source: source,
		params: params,
	}
}

// GetChainParameters returns cached parameters when fresh, fetching and
// repopulating on a miss
func (s *CachedParameterSource) GetChainParameters(ctx context.Context, network config.Network) ([]tron.ChainParameter, error) {
	key := string(network)

	if params, ok := s.params.Get(key); ok {
		logger.Logger.Debug("Chain parameters served from cache", "network", network)
		return params, nil
	}

	params, err := s.source.GetChainParameters(ctx, network)
	if err != nil {
		return nil, err
	}

	s.params.Set(key, params)
	return params, nil
}

// TriggerConstantContract delegates to the underlying source
func (s *CachedParameterSource) TriggerConstantContract(ctx context.Context, network config.Network, req *tron.TriggerConstantRequest) (*tron.TriggerConstantResult, error) {
	return s.source.TriggerConstantContract(ctx, network, req)
}
