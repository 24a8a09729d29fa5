// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package plan

import (
	"math/big"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// MaxStandardTxWeight mirrors Bitcoin Core's MAX_STANDARD_TX_WEIGHT.
const MaxStandardTxWeight = 400_000

// WitnessScaleFactor discounts witness bytes by this factor when
// converting transaction weight to virtual bytes.
const WitnessScaleFactor = 4

// dummySchnorrSignatureSize is a maximum-length (non-annex) schnorr
// signature: 64 bytes, plus one sighash-type byte when the hash type is
// not SigHashDefault.
const dummySchnorrSignatureSize = 64

// transactionWeight computes tx's weight in weight units:
// baseSize*(scale-1) + totalSize, the same formula used throughout the
// btcsuite ecosystem for measuring segwit transactions.
func transactionWeight(tx *wire.MsgTx) int64 {
	baseSize := tx.SerializeSizeStripped()
	totalSize := tx.SerializeSize()

	return int64(baseSize*(WitnessScaleFactor-1) + totalSize)
}

// estimateRevealFee charges feeRate (satoshi per virtual byte) against the
// weight skeleton would measure once a dummy witness — maximum-length
// signature, the real leaf script, the real control block — is installed
// at scriptPathIndex.
func estimateRevealFee(skeleton *wire.MsgTx, scriptPathIndex int, leafScript, controlBlock []byte, cursed bool, feeRate *big.Int) *big.Int {
	dummy := skeleton.Copy()

	sig := make([]byte, dummySchnorrSignatureSize)
	if cursed {
		sig = append(sig, byte(txscript.SigHashAll|txscript.SigHashAnyOneCanPay))
	}

	dummy.TxIn[scriptPathIndex].Witness = wire.TxWitness{sig, leafScript, controlBlock}

	// One extra weight unit is charged on top of the measured weight; the
	// division below rounds up on its own.
	weight := transactionWeight(dummy) + 1

	fee := new(big.Int).Mul(big.NewInt(weight), feeRate)
	fee.Add(fee, big.NewInt(WitnessScaleFactor-1)) // ceil division.
	fee.Div(fee, big.NewInt(WitnessScaleFactor))

	return fee
}
