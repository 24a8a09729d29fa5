// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package plan

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"github.com/ord-envelope/inscribe/bitcoin/ord/reveal"
	"github.com/ord-envelope/inscribe/internal/descriptorchecksum"
)

// TweakedKeyPair is a reveal keypair after taproot-tweaking by its
// script-tree merkle root — the form that actually controls the
// corresponding commit output, and the form a recovery descriptor needs.
type TweakedKeyPair struct {
	PrivateKey *btcec.PrivateKey
	Address    *btcutil.AddressTaproot
}

// NewTweakedKeyPair tweaks key's private key by script's single-leaf
// merkle root and derives the resulting P2TR address under network.
func NewTweakedKeyPair(key *reveal.Key, script *reveal.Script, network *chaincfg.Params) (*TweakedKeyPair, error) {
	tapHash := script.Tree.RootNode.TapHash()
	tweaked := txscript.TweakTaprootPrivKey(*key.PrivateKey, tapHash[:])

	address, err := btcutil.NewAddressTaproot(schnorr.SerializePubKey(tweaked.PubKey()), network)
	if err != nil {
		return nil, err
	}

	return &TweakedKeyPair{PrivateKey: tweaked, Address: address}, nil
}

// Descriptor returns the rawtr(<wif>)#<checksum> recovery descriptor for
// k, for importing into a wallet to recover funds if the reveal is
// never broadcast.
func (k *TweakedKeyPair) Descriptor(network *chaincfg.Params) (string, error) {
	wif, err := btcutil.NewWIF(k.PrivateKey, network, true)
	if err != nil {
		return "", err
	}

	return descriptorchecksum.AddChecksum("rawtr(" + wif.String() + ")")
}
