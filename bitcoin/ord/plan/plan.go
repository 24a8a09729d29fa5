// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package plan

import (
	"bytes"
	"errors"
	"math/big"
	"sort"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcwallet/wallet/txrules"

	"github.com/ord-envelope/inscribe/bitcoin"
	"github.com/ord-envelope/inscribe/bitcoin/ord/inscriptions"
	"github.com/ord-envelope/inscribe/bitcoin/ord/reveal"
	"github.com/ord-envelope/inscribe/bitcoin/txbuilder"
)

// satoshiPerVByteToPerKVByte converts a satoshi-per-virtual-byte fee rate
// to the satoshi-per-kilo-virtual-byte unit bitcoin/txbuilder works in.
func satoshiPerVByteToPerKVByte(perVByte *big.Int) *big.Int {
	return new(big.Int).Mul(perVByte, big.NewInt(1000))
}

// Result is the outcome of a successful Plan call: the unsigned commit
// transaction, the signed reveal transactions spending it, and the
// recovery keypair for each reveal.
type Result struct {
	Satpoint         inscriptions.SatPoint
	CommitTx         *wire.MsgTx
	RevealTxs        []*wire.MsgTx
	RecoveryKeyPairs []*TweakedKeyPair
}

// Plan builds an unsigned commit transaction funding one reveal per
// payload, and fully signed reveal transactions spending it.
func Plan(payloads []*inscriptions.Inscription, opts Options) (*Result, error) {
	if len(payloads) == 0 {
		return nil, errors.New("no payloads provided")
	}
	if len(opts.Destinations) == 0 {
		return nil, errors.New("no destinations provided")
	}

	satpoint, err := selectSatpoint(opts)
	if err != nil {
		return nil, err
	}

	if err := reinscriptionGate(satpoint, opts); err != nil {
		return nil, err
	}

	keys, scripts, err := reveal.Batch(payloads, opts.SingleKey)
	if err != nil {
		return nil, err
	}

	// A companion input implies the SigHashAll|SigHashAnyOneCanPay path.
	anyoneCanPay := opts.Cursed || opts.CompanionInput != nil

	revealScripts := make([][]byte, len(payloads))
	revealAmounts := make([]*big.Int, len(payloads))
	for i, script := range scripts {
		pkScript, err := script.PkScript()
		if err != nil {
			return nil, err
		}

		controlBlock, err := script.ControlBlock()
		if err != nil {
			return nil, err
		}

		skeleton := wire.NewMsgTx(2)
		sp := 0
		if opts.CompanionInput != nil {
			skeleton.AddTxIn(wire.NewTxIn(&opts.CompanionInput.Outpoint, nil, nil))
			skeleton.AddTxOut(wire.NewTxOut(opts.CompanionInput.TxOut.Value, opts.CompanionInput.TxOut.PkScript))
			sp = 1
		}
		skeleton.AddTxIn(wire.NewTxIn(&wire.OutPoint{}, nil, nil))
		skeleton.AddTxOut(wire.NewTxOut(0, pkScript))

		fee := estimateRevealFee(skeleton, sp, script.LeafScript, controlBlock, anyoneCanPay, opts.RevealFeeRate)

		revealScripts[i] = pkScript
		revealAmounts[i] = new(big.Int).Add(fee, opts.Postage)
	}

	builder := opts.Builder
	if builder == nil {
		builder = NewDefaultTransactionBuilder(opts.Network)
	}

	fundingUTXOs := fundingUTXOsExcept(opts)

	commitTx, _, _, err := builder.BuildCommitTx(txbuilder.CommitParams{
		FundingUTXOs:     fundingUTXOs,
		RevealScripts:    revealScripts,
		RevealAmounts:    revealAmounts,
		MaxInputs:        opts.MaxCommitInputs,
		SatoshiPerKVByte: satoshiPerVByteToPerKVByte(opts.CommitFeeRate),
		ChangeAddress:    opts.ChangeAddresses[0],
	})
	if err != nil {
		return nil, err
	}

	firstVout := -1
	for idx, out := range commitTx.TxOut {
		if bytes.Equal(out.PkScript, revealScripts[0]) {
			firstVout = idx
			break
		}
	}
	if firstVout == -1 {
		return nil, errors.New("commit output for first inscription not found")
	}

	commitTxHash := commitTx.TxHash()

	revealTxs := make([]*wire.MsgTx, len(payloads))
	recoveryKeyPairs := make([]*TweakedKeyPair, len(payloads))

	for i := range payloads {
		commitOutputIndex := firstVout + i
		if commitOutputIndex >= len(commitTx.TxOut) {
			return nil, errors.New("commit transaction has too few outputs for payload batch")
		}
		commitPrevOut := commitTx.TxOut[commitOutputIndex]

		tx := wire.NewMsgTx(2)
		prevOuts := make(map[wire.OutPoint]*wire.TxOut, 2)

		sp := 0
		if opts.CompanionInput != nil {
			companionPkScript := opts.CompanionInput.TxOut.PkScript
			if opts.CompanionInput.CursedDestination != "" {
				addr, err := btcutil.DecodeAddress(opts.CompanionInput.CursedDestination, opts.Network)
				if err != nil {
					return nil, err
				}

				companionPkScript, err = txscript.PayToAddrScript(addr)
				if err != nil {
					return nil, err
				}
			}

			tx.AddTxIn(wire.NewTxIn(&opts.CompanionInput.Outpoint, nil, nil))
			tx.AddTxOut(wire.NewTxOut(opts.CompanionInput.TxOut.Value, companionPkScript))
			prevOuts[opts.CompanionInput.Outpoint] = opts.CompanionInput.TxOut

			sp = 1
		}

		revealOutpoint := wire.NewOutPoint(&commitTxHash, uint32(commitOutputIndex))
		tx.AddTxIn(wire.NewTxIn(revealOutpoint, nil, nil))
		prevOuts[*revealOutpoint] = commitPrevOut

		destination := opts.Destinations[i%len(opts.Destinations)]
		destAddr, err := btcutil.DecodeAddress(destination, opts.Network)
		if err != nil {
			return nil, err
		}

		destPkScript, err := txscript.PayToAddrScript(destAddr)
		if err != nil {
			return nil, err
		}

		tx.AddTxOut(wire.NewTxOut(commitPrevOut.Value, destPkScript))

		controlBlock, err := scripts[i].ControlBlock()
		if err != nil {
			return nil, err
		}

		fee := estimateRevealFee(tx, sp, scripts[i].LeafScript, controlBlock, anyoneCanPay, opts.RevealFeeRate)

		newValue := new(big.Int).Sub(big.NewInt(tx.TxOut[sp].Value), fee)
		if newValue.Sign() < 0 {
			return nil, ErrRevealFeeUnderflow
		}
		if txrules.IsDustAmount(btcutil.Amount(newValue.Int64()), len(tx.TxOut[sp].PkScript), txrules.DefaultRelayFeePerKb) {
			return nil, ErrRevealOutputDust
		}
		tx.TxOut[sp].Value = newValue.Int64()

		hashType := txscript.SigHashDefault
		if anyoneCanPay {
			hashType = txscript.SigHashAll | txscript.SigHashAnyOneCanPay
		}

		prevOutFetcher := txscript.NewMultiPrevOutFetcher(prevOuts)
		sigHashes := txscript.NewTxSigHashes(tx, prevOutFetcher)

		sig, err := txscript.RawTxInTapscriptSignature(
			tx, sigHashes, sp, commitPrevOut.Value, commitPrevOut.PkScript,
			scripts[i].TapLeaf(), hashType, keys[i].PrivateKey)
		if err != nil {
			return nil, err
		}

		tx.TxIn[sp].Witness = wire.TxWitness{sig, scripts[i].LeafScript, controlBlock}

		recoveryKeyPair, err := NewTweakedKeyPair(keys[i], scripts[i], opts.Network)
		if err != nil {
			return nil, err
		}

		recoveryPkScript, err := txscript.PayToAddrScript(recoveryKeyPair.Address)
		if err != nil {
			return nil, err
		}
		if !bytes.Equal(recoveryPkScript, commitPrevOut.PkScript) {
			return nil, errors.New("recovery keypair does not match commit output address")
		}

		weight := transactionWeight(tx)
		if !opts.BypassWeightLimit && weight > MaxStandardTxWeight {
			return nil, &TxWeightExceedsStandardError{Actual: weight}
		}

		revealTxs[i] = tx
		recoveryKeyPairs[i] = recoveryKeyPair
	}

	return &Result{
		Satpoint:         satpoint,
		CommitTx:         commitTx,
		RevealTxs:        revealTxs,
		RecoveryKeyPairs: recoveryKeyPairs,
	}, nil
}

// selectSatpoint returns opts.Satpoint if set, otherwise picks any UTXO
// not already carrying an inscription and not the cursed companion's own
// outpoint.
func selectSatpoint(opts Options) (inscriptions.SatPoint, error) {
	if opts.Satpoint != nil {
		return *opts.Satpoint, nil
	}

	inscribedOutpoints := make(map[wire.OutPoint]struct{}, len(opts.PriorInscriptions))
	for sp := range opts.PriorInscriptions {
		inscribedOutpoints[sp.Outpoint] = struct{}{}
	}

	for outpoint := range opts.UTXOs {
		if opts.CompanionInput != nil && outpoint == opts.CompanionInput.Outpoint {
			continue
		}
		if _, inscribed := inscribedOutpoints[outpoint]; inscribed {
			continue
		}

		return inscriptions.SatPoint{Outpoint: outpoint, Offset: 0}, nil
	}

	return inscriptions.SatPoint{}, ErrNoCardinalUTXOs
}

// reinscriptionGate enforces the reinscription policy before any network
// or wallet operation runs.
func reinscriptionGate(satpoint inscriptions.SatPoint, opts Options) error {
	for sp, id := range opts.PriorInscriptions {
		switch {
		case sp == satpoint:
			if !opts.AllowReinscribe {
				return &SatAlreadyInscribedError{Satpoint: satpoint}
			}
		case sp.Outpoint == satpoint.Outpoint:
			if !opts.IgnoreUTXOInscriptions {
				return &UtxoAlreadyInscribedError{Outpoint: satpoint.Outpoint, InscriptionID: id, Satpoint: sp}
			}
		}
	}

	return nil
}

// fundingUTXOsExcept converts opts.UTXOs to the sorted-by-amount-desc
// bitcoin.UTXO slice bitcoin/txbuilder expects, excluding the cursed
// companion's own outpoint when one is configured.
func fundingUTXOsExcept(opts Options) []bitcoin.UTXO {
	utxos := make([]bitcoin.UTXO, 0, len(opts.UTXOs))
	for outpoint, amount := range opts.UTXOs {
		if opts.CompanionInput != nil && outpoint == opts.CompanionInput.Outpoint {
			continue
		}

		utxos = append(utxos, bitcoin.UTXO{
			TxHash: outpoint.Hash.String(),
			Index:  outpoint.Index,
			Amount: new(big.Int).Set(amount),
		})
	}

	sort.Slice(utxos, func(i, j int) bool {
		return utxos[i].Amount.Cmp(utxos[j].Amount) > 0
	})

	return utxos
}
