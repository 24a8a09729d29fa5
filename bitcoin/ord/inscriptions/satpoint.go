// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package inscriptions

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// satPointSeparator defines the separator between the outpoint and the
// byte offset in a SatPoint string.
const satPointSeparator string = ":"

// SatPoint identifies a single satoshi's location by the outpoint that
// currently holds it and its byte offset within that outpoint's value.
type SatPoint struct {
	Outpoint wire.OutPoint
	Offset   uint64
}

// String returns the SatPoint as "<txid>:<vout>:<offset>".
func (s SatPoint) String() string {
	return fmt.Sprintf("%s%s%d", s.Outpoint.String(), satPointSeparator, s.Offset)
}

// NewSatPointFromString parses a SatPoint from its "<txid>:<vout>:<offset>" string form.
func NewSatPointFromString(s string) (SatPoint, error) {
	parts := strings.Split(s, satPointSeparator)
	if len(parts) != 3 {
		return SatPoint{}, fmt.Errorf("invalid satpoint format: %s", s)
	}

	txHash, err := chainhash.NewHashFromStr(parts[0])
	if err != nil {
		return SatPoint{}, fmt.Errorf("invalid satpoint txid: %w", err)
	}

	vout, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return SatPoint{}, fmt.Errorf("invalid satpoint vout: %w", err)
	}

	offset, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return SatPoint{}, fmt.Errorf("invalid satpoint offset: %w", err)
	}

	return SatPoint{
		Outpoint: *wire.NewOutPoint(txHash, uint32(vout)),
		Offset:   offset,
	}, nil
}
