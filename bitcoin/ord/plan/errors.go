// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package plan

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/wire"

	"github.com/ord-envelope/inscribe/bitcoin/ord/inscriptions"
)

// ErrNoCardinalUTXOs describes that no UTXO is available to carry a
// freshly-chosen satpoint: every candidate is already inscribed or is the
// cursed companion's own outpoint.
var ErrNoCardinalUTXOs = errors.New("no cardinal utxos")

// SatAlreadyInscribedError describes that the chosen satpoint itself
// already carries an inscription and AllowReinscribe was not set.
type SatAlreadyInscribedError struct {
	Satpoint inscriptions.SatPoint
}

// Error implements the error interface.
func (e *SatAlreadyInscribedError) Error() string {
	return fmt.Sprintf("sat %s already inscribed", e.Satpoint)
}

// UtxoAlreadyInscribedError describes that the chosen satpoint's UTXO
// carries an inscription elsewhere in the same output and
// IgnoreUTXOInscriptions was not set.
type UtxoAlreadyInscribedError struct {
	Outpoint      wire.OutPoint
	InscriptionID *inscriptions.ID
	Satpoint      inscriptions.SatPoint
}

// Error implements the error interface.
func (e *UtxoAlreadyInscribedError) Error() string {
	return fmt.Sprintf("utxo %s already inscribed with %s at %s", e.Outpoint, e.InscriptionID, e.Satpoint)
}

// ErrRevealOutputDust describes that, after deducting the reveal fee, a
// reveal's postage output would fall below its script's dust threshold.
var ErrRevealOutputDust = errors.New("reveal transaction output would be dust")

// ErrRevealFeeUnderflow describes that a reveal's postage output cannot
// even cover its own fee.
var ErrRevealFeeUnderflow = errors.New("reveal transaction output value insufficient to pay transaction fee")

// TxWeightExceedsStandardError describes that a reveal transaction's
// measured weight exceeds MaxStandardTxWeight and BypassWeightLimit was
// not set.
type TxWeightExceedsStandardError struct {
	Actual int64
}

// Error implements the error interface.
func (e *TxWeightExceedsStandardError) Error() string {
	return fmt.Sprintf("reveal transaction weight %d exceeds maximum standard transaction weight %d", e.Actual, MaxStandardTxWeight)
}
