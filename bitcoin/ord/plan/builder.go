// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package plan

import (
	"math/big"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"

	"github.com/ord-envelope/inscribe/bitcoin"
	"github.com/ord-envelope/inscribe/bitcoin/txbuilder"
)

// TransactionBuilder constructs the commit transaction funding a batch of
// reveal outputs. The planner never assembles a commit transaction's
// inputs, change, or alignment itself — it delegates input selection and
// meeting the commit fee rate to this collaborator.
type TransactionBuilder interface {
	BuildCommitTx(params txbuilder.CommitParams) (tx *wire.MsgTx, usedUTXOs []*bitcoin.UTXO, fee *big.Int, err error)
}

// DefaultTransactionBuilder is the TransactionBuilder backed by
// bitcoin/txbuilder's UTXO selection and fee-rate sizing.
type DefaultTransactionBuilder struct {
	inner *txbuilder.TxBuilder
}

// NewDefaultTransactionBuilder is a constructor for DefaultTransactionBuilder.
func NewDefaultTransactionBuilder(networkParams *chaincfg.Params) *DefaultTransactionBuilder {
	return &DefaultTransactionBuilder{inner: txbuilder.NewTxBuilder(networkParams)}
}

// BuildCommitTx implements TransactionBuilder.
func (b *DefaultTransactionBuilder) BuildCommitTx(params txbuilder.CommitParams) (*wire.MsgTx, []*bitcoin.UTXO, *big.Int, error) {
	return b.inner.BuildCommitTx(params)
}
