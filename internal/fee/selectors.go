// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package fee

import (
	"strings"
)

// DefaultFunctionSignature is the signature assumed for selectors the table
// does not know. Simulating an unknown call as a TRC20 transfer is a
// deliberate approximation: it keeps the simulation path alive for novel
// contracts at the cost of possibly misestimating their energy. Do not
// "fix" this without product input.
const DefaultFunctionSignature = "transfer(address,uint256)"

// selectorSignatures maps well-known 4-byte function selectors (hex encoded,
// lower case) to their canonical signatures. Covers the TRC20 standard plus
// common DeFi entry points.
var selectorSignatures = map[string]string{
	"a9059cbb": "transfer(address,uint256)",
	"095ea7b3": "approve(address,uint256)",
	"23b872dd": "transferFrom(address,address,uint256)",
	"70a08231": "balanceOf(address)",
	"dd62ed3e": "allowance(address,address)",
	"18160ddd": "totalSupply()",
	"06fdde03": "name()",
	"95d89b41": "symbol()",
	"313ce567": "decimals()",
	"39509351": "increaseAllowance(address,uint256)",
	"a457c2d7": "decreaseAllowance(address,uint256)",
	"40c10f19": "mint(address,uint256)",
	"42966c68": "burn(uint256)",
	"d0e30db0": "deposit()",
	"2e1a7d4d": "withdraw(uint256)",
}

// LookupSelector resolves a 4-byte selector to a human-readable signature.
// known is false when the selector fell back to DefaultFunctionSignature.
func LookupSelector(selector string) (signature string, known bool) {
	signature, known = selectorSignatures[strings.ToLower(selector)]
	if !known {
		signature = DefaultFunctionSignature
	}
	return signature, known
}

// SplitCallData splits a hex call data blob into its 4-byte selector and the
// ABI-encoded argument remainder. ok is false when the blob is too short to
// carry a selector.
func SplitCallData(data string) (selector, params string, ok bool) {
	data = strings.TrimPrefix(strings.TrimSpace(data), "0x")
	if len(data) < 8 {
		return "", "", false
	}
	return data[:8], data[8:], true
}
