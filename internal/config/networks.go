// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"github.com/dotandev/sunfee/internal/errors"
)

type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkShasta  Network = "shasta"
	NetworkNile    Network = "nile"
)

var validNetworks = map[string]bool{
	string(NetworkMainnet): true,
	string(NetworkShasta):  true,
	string(NetworkNile):    true,
}

// Full node HTTP API base URLs for each network
const (
	MainnetNodeURL = "https://api.trongrid.io"
	ShastaNodeURL  = "https://api.shasta.trongrid.io"
	NileNodeURL    = "https://nile.trongrid.io"
)

// NetworkConfig represents a Tron network configuration
type NetworkConfig struct {
	Name        string
	NodeURL     string
	CurrencyID  string
	ChainPrefix byte
}

// Predefined network configurations.
// CurrencyID follows the CAIP-19 scheme the host wallet uses to key assets.
var (
	MainnetConfig = NetworkConfig{
		Name:        "mainnet",
		NodeURL:     MainnetNodeURL,
		CurrencyID:  "tron:0x2b6653dc/slip44:195",
		ChainPrefix: 0x41,
	}

	ShastaConfig = NetworkConfig{
		Name:        "shasta",
		NodeURL:     ShastaNodeURL,
		CurrencyID:  "tron:0x94a9059e/slip44:195",
		ChainPrefix: 0x41,
	}

	NileConfig = NetworkConfig{
		Name:        "nile",
		NodeURL:     NileNodeURL,
		CurrencyID:  "tron:0xcd8690dc/slip44:195",
		ChainPrefix: 0x41,
	}
)

// NetworkConfigFor resolves a network identifier to its configuration
func NetworkConfigFor(net Network) (NetworkConfig, error) {
	switch net {
	case NetworkMainnet:
		return MainnetConfig, nil
	case NetworkShasta:
		return ShastaConfig, nil
	case NetworkNile:
		return NileConfig, nil
	default:
		return NetworkConfig{}, errors.WrapInvalidNetwork(string(net))
	}
}

// IsValidNetwork reports whether the given identifier names a supported network
func IsValidNetwork(name string) bool {
	return validNetworks[name]
}
