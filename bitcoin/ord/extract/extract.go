// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package extract

import (
	"github.com/btcsuite/btcd/wire"

	"github.com/ord-envelope/inscribe/bitcoin/ord/inscriptions"
)

// TransactionInscription pairs a recovered Inscription with the position
// it was found at: the index of the input that carried it, and its
// position among the (possibly several) envelopes carried by that one
// input's witness script.
type TransactionInscription struct {
	inscriptions.Inscription
	TxInIndex  uint32
	TxInOffset uint32
}

// Extract scans every input of tx for inscription envelopes and returns
// every one it finds, ordered first by input index, then by position
// within that input's witness script. Inputs whose witness carries no
// envelope, or whose witness cannot be parsed as one (key-path spends,
// malformed scripts, unrecognized even tags, ...), are silently skipped:
// extraction is a best-effort scan over a transaction that may contain
// any mix of ordinary and inscription-carrying inputs.
func Extract(tx *wire.MsgTx) []TransactionInscription {
	var result []TransactionInscription

	for inputIndex, txIn := range tx.TxIn {
		found, err := inscriptions.ParseFromWitness(txIn.Witness)
		if err != nil || len(found) == 0 {
			continue
		}

		for offset, inscription := range found {
			result = append(result, TransactionInscription{
				Inscription: *inscription,
				TxInIndex:   uint32(inputIndex),
				TxInOffset:  uint32(offset),
			})
		}
	}

	return result
}
