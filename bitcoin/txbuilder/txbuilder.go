// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package txbuilder

import (
	"errors"
	"math/big"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/ord-envelope/inscribe/bitcoin"
	"github.com/ord-envelope/inscribe/internal/numbers"
)

const (
	// txVersion defines transaction version for this builder.
	txVersion int32 = 2
)

var (
	// headerSizeVBytes defined rough tx header size in vBytes.
	headerSizeVBytes = big.NewInt(11)
	// inputSizeVBytes defined rough tx input size in vBytes.
	inputSizeVBytes = big.NewInt(90)
	// outputSizeVBytes defined rough tx output size in vBytes.
	outputSizeVBytes = big.NewInt(30)
)

// TxBuilder provides transaction building related logic.
type TxBuilder struct {
	networkParams *chaincfg.Params
}

// NewTxBuilder is a constructor for TxBuilder.
func NewTxBuilder(networkParams *chaincfg.Params) *TxBuilder {
	return &TxBuilder{
		networkParams: networkParams,
	}
}

// CommitParams describes the data needed to build a commit transaction
// funding one or more reveal scripts.
type CommitParams struct {
	FundingUTXOs     []bitcoin.UTXO // must be sorted by amount desc.
	RevealScripts    [][]byte       // one P2TR scriptPubKey per reveal output, in reveal input order.
	RevealAmounts    []*big.Int     // value of each reveal output (reveal fee plus postage), same length/order as RevealScripts.
	MaxInputs        int            // caps how many FundingUTXOs are eligible for selection; 0 means unbounded.
	SatoshiPerKVByte *big.Int       // fee rate in satoshi per kilo virtual byte.
	ChangeAddress    string
}

// BuildCommitTx constructs the commit transaction that funds the reveal
// scripts at exactly params.RevealAmounts each, selecting funding UTXOs
// to cover that total plus the estimated fee at params.SatoshiPerKVByte,
// and returning any leftover as a change output.
//
//	outputs:
//	┌─────────┬──────────────┬────────────────────────────────────────┐
//	│  index  │     type     │             description                │
//	├=========┼==============┼========================================┤
//	│ 0 - k-1 │ reveal output│ one per reveal script, in caller order  │
//	├─────────┼──────────────┼────────────────────────────────────────┤
//	│       k │ base output  │ change, if any amount is left over.     │
//	└─────────┴──────────────┴────────────────────────────────────────┘
func (b *TxBuilder) BuildCommitTx(params CommitParams) (*wire.MsgTx, []*bitcoin.UTXO, *big.Int, error) {
	if len(params.RevealScripts) != len(params.RevealAmounts) {
		return nil, nil, nil, errors.New("reveal scripts and reveal amounts must have the same length")
	}
	if len(params.RevealScripts) == 0 {
		return nil, nil, nil, errors.New("no reveal scripts provided")
	}

	totalRevealAmount := big.NewInt(0)
	for _, amount := range params.RevealAmounts {
		totalRevealAmount.Add(totalRevealAmount, amount)
	}

	outputs := len(params.RevealScripts) + 1 // reveal outputs plus change, change dropped below if zero.

	fundingUTXOs := params.FundingUTXOs
	if params.MaxInputs > 0 && params.MaxInputs < len(fundingUTXOs) {
		fundingUTXOs = fundingUTXOs[:params.MaxInputs] // sorted by amount desc, so this keeps the largest ones.
	}

	usedUTXOs, totalAmount, fee, err := PrepareUTXOs(fundingUTXOs, 0, outputs, totalRevealAmount, params.SatoshiPerKVByte)
	if err != nil {
		return nil, nil, nil, err
	}

	tx := wire.NewMsgTx(txVersion)
	for _, utxo := range usedUTXOs {
		utxoHash, err := chainhash.NewHashFromStr(utxo.TxHash)
		if err != nil {
			return nil, nil, nil, err
		}

		tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(utxoHash, utxo.Index), nil, nil))
	}

	bitcoinAmount := new(big.Int).Sub(totalAmount, fee)

	for i, script := range params.RevealScripts {
		amount := params.RevealAmounts[i]
		if numbers.IsLess(bitcoinAmount, amount) {
			return nil, nil, nil, bitcoin.ErrInsufficientNativeBalance
		}

		tx.AddTxOut(wire.NewTxOut(amount.Int64(), script))
		bitcoinAmount.Sub(bitcoinAmount, amount)
	}

	if numbers.IsPositive(bitcoinAmount) {
		if err := b.addOutput(tx, bitcoinAmount, bitcoinAmount, params.ChangeAddress); err != nil {
			return nil, nil, nil, err
		}
	}

	return tx, usedUTXOs, fee, nil
}

// PrepareUTXOs selects utxos to cover rough estimated fee.
// Returns used utxos, total satoshi amount of utxos, rough estimation in satoshi and error if any.
func PrepareUTXOs(utxos []bitcoin.UTXO, inputs, outputs int, transferAmount, satoshiPerKVByte *big.Int) (usedUTXOs []*bitcoin.UTXO, totalAmount, roughEstimate *big.Int, err error) {
	satFn := func(u *bitcoin.UTXO) *big.Int { return u.Amount }

	for i := 1; i <= len(utxos); i++ {
		// vB * ( sat / kvB ) = 1000 sat.
		roughEstimate = new(big.Int).Mul(RoughTxSizeEstimate(i+inputs, outputs), satoshiPerKVByte)
		roughEstimate.Div(roughEstimate, big.NewInt(1000)) // sat.

		usedUTXOs, totalAmount, err = SelectUTXO(utxos, satFn, new(big.Int).Add(roughEstimate, transferAmount), i, insufficientNativeBalanceError)
		if err != nil {
			if errors.Is(err, bitcoin.ErrInsufficientNativeBalance) {
				continue
			}

			return nil, nil, nil, err
		}

		return usedUTXOs, totalAmount, roughEstimate, nil
	}

	return nil, nil, nil, bitcoin.ErrInsufficientNativeBalance
}

// RoughTxSizeEstimate returns Tx rough estimated size in vBytes.
// TODO: increase precision.
func RoughTxSizeEstimate(inputs, outputs int) *big.Int {
	size := new(big.Int).Set(headerSizeVBytes)
	size.Add(size, new(big.Int).Mul(inputSizeVBytes, big.NewInt(int64(inputs))))
	size.Add(size, new(big.Int).Mul(outputSizeVBytes, big.NewInt(int64(outputs))))

	return size
}

// SelectUTXO is a partly greedy selection algorithm for UTXOs with 'requiredUTXOs' parameter.
// Returns list of selected by algorithm UTXOs with total amount, counted by passed amount function.
func SelectUTXO(utxos []bitcoin.UTXO, amountFn func(*bitcoin.UTXO) *big.Int, minAmount *big.Int, requiredUTXOs int,
	insufficientBalanceError *InsufficientError) (usedUTXOs []*bitcoin.UTXO, totalAmount *big.Int, _ error) {
	if len(utxos) < requiredUTXOs {
		return nil, nil, bitcoin.ErrInvalidUTXOAmount
	}

	usedUTXOs = make([]*bitcoin.UTXO, 0, requiredUTXOs)
	totalAmount = big.NewInt(0)
	var startIdx = 0
	var usedIdxs = make([]int, 0)

	// find the closest by amount UTXO that is grater then minAmount or take the biggest possible.
	for idx, utxo := range utxos {
		if numbers.IsGreater(minAmount, amountFn(&utxo)) {
			break
		}

		startIdx = idx
	}

	usedIdxs = append(usedIdxs, startIdx)
	totalAmount.Add(totalAmount, amountFn(&utxos[startIdx]))
	usedUTXOs = append(usedUTXOs, &utxos[startIdx])
	requiredUTXOs--

	// pick bigger amount if total amount do not cover minAmount, otherwise - the smallest to pass requiredUTXOs.
	for ; requiredUTXOs > 0; requiredUTXOs-- {
		idx := selectUnused(startIdx, len(utxos), usedIdxs, !numbers.IsGreater(minAmount, totalAmount))
		if idx == -1 {
			return nil, nil, bitcoin.ErrInvalidUTXOAmount
		}

		usedIdxs = append(usedIdxs, idx)
		totalAmount.Add(totalAmount, amountFn(&utxos[idx]))
		usedUTXOs = append(usedUTXOs, &utxos[idx])
	}

	if numbers.IsGreater(minAmount, totalAmount) {
		return nil, nil, insufficientBalanceError.clarify(minAmount, totalAmount)
	}

	return usedUTXOs, totalAmount, nil
}

// addOutput adds output to transaction, subtracts amount from unallocated amount.
func (b *TxBuilder) addOutput(tx *wire.MsgTx, amount, unallocatedAmount *big.Int, address string) error {
	if numbers.IsLess(unallocatedAmount, amount) {
		return errors.New("unallocated amount is less than the amount in provided inputs")
	}

	recipientAddress, err := btcutil.DecodeAddress(address, b.networkParams)
	if err != nil {
		return err
	}

	destinationAddrByte, err := txscript.PayToAddrScript(recipientAddress)
	if err != nil {
		return err
	}

	tx.AddTxOut(wire.NewTxOut(amount.Int64(), destinationAddrByte))
	unallocatedAmount.Sub(unallocatedAmount, amount)

	return nil
}

// selectUnused returns first unused idx depending on search direction.
func selectUnused(start, end int, usedIdxs []int, reversed bool) int {
	if reversed {
		for idx := end - 1; idx >= start; idx-- {
			if !isUsed(idx, usedIdxs) {
				return idx
			}
		}
	} else {
		for idx := start; idx < end; idx++ {
			if !isUsed(idx, usedIdxs) {
				return idx
			}
		}
	}

	return -1
}

// isUsed returns true id idx is in usedIdxs.
func isUsed(idx int, usedIdxs []int) bool {
	for _, used := range usedIdxs {
		if used == idx {
			return true
		}
	}

	return false
}
