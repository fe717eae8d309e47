// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package tron

import (
	"encoding/hex"
	"strings"
)

// Contract type discriminants as they appear on the full node HTTP API
const (
	ContractTransfer      = "TransferContract"
	ContractTransferAsset = "TransferAssetContract"
	ContractTriggerSmart  = "TriggerSmartContract"
)

// Chain parameter keys consumed by the fee engine
const (
	ParamTransactionFee = "getTransactionFee" // bandwidth price, sun per byte
	ParamEnergyFee      = "getEnergyFee"      // energy price, sun per unit
)

// Transaction is a transfer or contract-call descriptor as returned by the
// full node. The fee engine treats it as read-only: bandwidth is derived
// from RawDataHex, energy from the contract list.
type Transaction struct {
	Visible    bool     `json:"visible,omitempty"`
	TxID       string   `json:"txID,omitempty"`
	Signature  []string `json:"signature,omitempty"`
	RawDataHex string   `json:"raw_data_hex"`
	RawData    RawData  `json:"raw_data"`
}

type RawData struct {
	RefBlockBytes string     `json:"ref_block_bytes,omitempty"`
	RefBlockHash  string     `json:"ref_block_hash,omitempty"`
	Expiration    int64      `json:"expiration,omitempty"`
	Timestamp     int64      `json:"timestamp,omitempty"`
	FeeLimit      int64      `json:"fee_limit,omitempty"`
	Contract      []Contract `json:"contract"`
}

type Contract struct {
	Type      string            `json:"type"`
	Parameter ContractParameter `json:"parameter"`
}

type ContractParameter struct {
	TypeURL string        `json:"type_url,omitempty"`
	Value   ContractValue `json:"value"`
}

// ContractValue is the union of the kind-specific parameter payloads the fee
// engine cares about. Fields not relevant to a given contract type are empty.
type ContractValue struct {
	OwnerAddress    string `json:"owner_address,omitempty"`
	ToAddress       string `json:"to_address,omitempty"`
	Amount          int64  `json:"amount,omitempty"`
	AssetName       string `json:"asset_name,omitempty"`
	ContractAddress string `json:"contract_address,omitempty"`
	Data            string `json:"data,omitempty"`
	CallValue       int64  `json:"call_value,omitempty"`
}

// RawBytes decodes RawDataHex into bytes. Tolerant by design: a 0x prefix is
// stripped, an odd trailing nibble is dropped and a partially valid string
// contributes only its decodable prefix, so callers sizing a transaction
// never see an error.
func (t *Transaction) RawBytes() []byte {
	s := strings.TrimPrefix(t.RawDataHex, "0x")
	if len(s)%2 != 0 {
		s = s[:len(s)-1]
	}

	buf := make([]byte, len(s)/2)
	n, _ := hex.Decode(buf, []byte(s))
	return buf[:n]
}

// ChainParameter is one sparse network-wide constant. Value is a pointer
// because the node legitimately omits it for unset parameters.
type ChainParameter struct {
	Key   string `json:"key"`
	Value *int64 `json:"value,omitempty"`
}

// ChainParametersResponse is the wallet/getchainparameters envelope
type ChainParametersResponse struct {
	ChainParameter []ChainParameter `json:"chainParameter"`
}

// FindParameter returns the value of the named parameter, or false when the
// entry is absent or carries no value.
func FindParameter(params []ChainParameter, key string) (int64, bool) {
	for _, p := range params {
		if p.Key == key && p.Value != nil {
			return *p.Value, true
		}
	}
	return 0, false
}

// TriggerConstantRequest is the wallet/triggerconstantcontract request body
type TriggerConstantRequest struct {
	OwnerAddress     string `json:"owner_address"`
	ContractAddress  string `json:"contract_address"`
	FunctionSelector string `json:"function_selector"`
	Parameter        string `json:"parameter,omitempty"`
	Visible          bool   `json:"visible,omitempty"`
}

// TriggerConstantResult is the simulation outcome. EnergyUsed is zero when
// the node could not execute the call.
type TriggerConstantResult struct {
	Result struct {
		Result  bool   `json:"result"`
		Code    string `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"result"`
	EnergyUsed     int64    `json:"energy_used,omitempty"`
	ConstantResult []string `json:"constant_result,omitempty"`
}

// AccountResource is the wallet/getaccountresource response subset the engine
// consumes. Staked and free bandwidth are tracked separately by the chain.
type AccountResource struct {
	FreeNetLimit int64 `json:"freeNetLimit,omitempty"`
	FreeNetUsed  int64 `json:"freeNetUsed,omitempty"`
	NetLimit     int64 `json:"NetLimit,omitempty"`
	NetUsed      int64 `json:"NetUsed,omitempty"`
	EnergyLimit  int64 `json:"EnergyLimit,omitempty"`
	EnergyUsed   int64 `json:"EnergyUsed,omitempty"`
}

// AvailableBandwidth returns the bandwidth units the account can still spend
func (r *AccountResource) AvailableBandwidth() int64 {
	free := r.FreeNetLimit - r.FreeNetUsed
	staked := r.NetLimit - r.NetUsed
	total := free + staked
	if total < 0 {
		return 0
	}
	return total
}

// AvailableEnergy returns the energy units the account can still spend
func (r *AccountResource) AvailableEnergy() int64 {
	avail := r.EnergyLimit - r.EnergyUsed
	if avail < 0 {
		return 0
	}
	return avail
}

// Account is the wallet/getaccount response subset used for balance checks.
// Balance is denominated in sun.
type Account struct {
	Address string `json:"address,omitempty"`
	Balance int64  `json:"balance,omitempty"`
}

// GetAccountRequest is the wallet/getaccount and wallet/getaccountresource
// request body
type GetAccountRequest struct {
	Address string `json:"address"`
	Visible bool   `json:"visible,omitempty"`
}
