// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package fee

import (
	"github.com/dotandev/sunfee/internal/tron"
)

// Bandwidth cost of a transaction is its serialized size plus the bytes the
// network appends when the transaction is signed and framed. One bandwidth
// unit covers one byte.
const (
	// SignatureOverheadBytes is one ECDSA signature
	SignatureOverheadBytes = 65
	// ProtocolFramingBytes covers result flags and protobuf framing added on broadcast
	ProtocolFramingBytes = 69
	// BandwidthOverheadBytes is the total fixed overhead per transaction
	BandwidthOverheadBytes = SignatureOverheadBytes + ProtocolFramingBytes
)

// CalculateBandwidth computes the bandwidth units a transaction will consume.
// Pure and total: derived solely from the raw serialized byte length,
// independent of contract kind, and never fails.
func CalculateBandwidth(tx *tron.Transaction) int64 {
	if tx == nil {
		return BandwidthOverheadBytes
	}
	return int64(len(tx.RawBytes())) + BandwidthOverheadBytes
}
