// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

// Package node defines the read-only and commit-side collaborator
// interfaces a host application supplies to bitcoin/ord/plan: a view of
// spendable outputs and prior inscriptions, and the means to sign,
// broadcast, and decode raw transactions. bitcoin/ord/plan never talks
// to a node directly — these interfaces exist so a caller's own RPC or
// indexer client can be adapted to what the planner needs without the
// planner importing any particular client library.
package node

import (
	"context"
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/ord-envelope/inscribe/bitcoin/ord/inscriptions"
)

// UTXOSource reports the caller's currently spendable outputs and their
// satoshi amounts, the same shape bitcoin/ord/plan.Options.UTXOs expects.
type UTXOSource interface {
	UTXOs(ctx context.Context) (map[wire.OutPoint]*big.Int, error)
}

// InscriptionIndex reports every satpoint currently carrying an
// inscription, the same shape bitcoin/ord/plan.Options.PriorInscriptions
// expects.
type InscriptionIndex interface {
	PriorInscriptions(ctx context.Context) (map[inscriptions.SatPoint]*inscriptions.ID, error)
}

// TransactionFetcher resolves a transaction hash to its decoded form,
// needed to confirm a commit transaction has confirmed before a reveal
// referencing it is broadcast, and to re-measure an already-built
// transaction's weight.
type TransactionFetcher interface {
	FetchTransaction(ctx context.Context, hash *chainhash.Hash) (*wire.MsgTx, error)
}

// Index bundles the read-only collaborators a planner call needs to
// assemble bitcoin/ord/plan.Options from live node state.
type Index interface {
	UTXOSource
	InscriptionIndex
	TransactionFetcher
}

// Signer signs the commit transaction's own wallet inputs — the
// non-reveal inputs bitcoin/txbuilder.BuildCommitTx selects. It does not
// sign reveal transactions: bitcoin/ord/plan signs those itself using
// the ephemeral per-inscription keypair, since the planner — not an
// external collaborator — holds that key.
type Signer interface {
	SignCommitTx(ctx context.Context, tx *wire.MsgTx, prevOuts map[wire.OutPoint]*wire.TxOut) error
}

// Broadcaster submits a fully-signed transaction to the network and
// reports its confirmation status.
type Broadcaster interface {
	Broadcast(ctx context.Context, tx *wire.MsgTx) (*wire.OutPoint, error)
	Confirmed(ctx context.Context, txHash *chainhash.Hash) (bool, error)
}
