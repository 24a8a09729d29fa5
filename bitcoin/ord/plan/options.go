// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package plan

import (
	"math/big"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"

	"github.com/ord-envelope/inscribe/bitcoin/ord/inscriptions"
)

// CompanionInput describes a caller-supplied input prepended to a cursed
// reveal transaction: the outpoint being spent, the TxOut it previously
// held (needed for sighash computation and fee counting), and an optional
// destination for its value once it comes back out the other side.
type CompanionInput struct {
	Outpoint wire.OutPoint
	TxOut    *wire.TxOut

	// CursedDestination, if set, receives the companion's value in the
	// reveal transaction; otherwise the companion's original script is
	// reused.
	CursedDestination string
}

// Options configures a single Plan call.
type Options struct {
	Network *chaincfg.Params

	// Satpoint pins the satoshi to inscribe; nil triggers automatic
	// selection from UTXOs. The chosen satpoint is checked by the
	// reinscription gate and returned as Result.Satpoint; it is not passed
	// to the Builder, so the commit transaction's inputs are selected from
	// UTXOs without regard to it and need not include its outpoint.
	Satpoint *inscriptions.SatPoint

	// PriorInscriptions maps every currently-inscribed satpoint to the
	// inscription sitting on it, used by the reinscription gate.
	PriorInscriptions map[inscriptions.SatPoint]*inscriptions.ID

	// UTXOs is the caller's view of spendable outputs and their
	// satoshi amounts.
	UTXOs map[wire.OutPoint]*big.Int

	// ChangeAddresses holds two change addresses. Only ChangeAddresses[0]
	// is passed to the commit transaction builder; ChangeAddresses[1] is
	// not used.
	ChangeAddresses [2]string

	// Destinations receives each reveal's output; fewer destinations
	// than payloads wraps round-robin (destinations[i % len(destinations)]).
	Destinations []string

	// AlignmentAddress names an address for an alignment output that
	// would place the chosen satpoint at offset zero of its reveal input.
	// Plan does not read this field and does not pass it to the Builder
	// (txbuilder.CommitParams has no alignment field), so no alignment
	// output is produced by either the default or a custom Builder.
	AlignmentAddress string

	// CompanionInput, when set, requests a cursed-variant plan: a
	// second input/output pair prepended ahead of every reveal's own
	// input/output, signed with SigHashAll|SigHashAnyOneCanPay.
	CompanionInput *CompanionInput

	CommitFeeRate *big.Int // satoshi per virtual byte.
	RevealFeeRate *big.Int // satoshi per virtual byte.

	// MaxCommitInputs caps how many UTXOs the commit builder may spend;
	// zero means unbounded.
	MaxCommitInputs int

	// BypassWeightLimit skips the standard transaction weight check on
	// every reveal.
	BypassWeightLimit bool

	// Postage is the satoshi value every reveal output carries once its
	// fee has been deducted.
	Postage *big.Int

	// Cursed requests the companion-input reveal variant (see
	// CompanionInput); it is implied by CompanionInput being non-nil,
	// but kept separate so a caller can request the
	// SigHashAll|SigHashAnyOneCanPay signing path without actually
	// needing a companion input.
	Cursed bool

	// AllowReinscribe permits choosing a satpoint that already carries
	// an inscription.
	AllowReinscribe bool

	// IgnoreUTXOInscriptions permits choosing a satpoint on a UTXO that
	// carries an inscription elsewhere in that same UTXO.
	IgnoreUTXOInscriptions bool

	// SingleKey, when true, reuses one ephemeral reveal keypair across
	// every payload in the batch instead of minting one per payload.
	SingleKey bool

	// Builder constructs the commit transaction; NewDefaultTransactionBuilder
	// is used when nil.
	Builder TransactionBuilder
}
