// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package reveal

import (
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"github.com/ord-envelope/inscribe/bitcoin/ord/inscriptions"
	"github.com/ord-envelope/inscribe/bitcoin/utils"
)

// Key is an ephemeral keypair minted for a single reveal script. Its
// private key is needed only long enough to sign the reveal transaction's
// script-path spend; once the reveal is broadcast it serves no further
// purpose except backing the recovery descriptor.
type Key struct {
	PrivateKey *btcec.PrivateKey
}

// NewKey mints a fresh, uniformly random reveal key.
func NewKey() (*Key, error) {
	privateKey, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}

	return &Key{PrivateKey: privateKey}, nil
}

// MustNewKey uses NewKey, panics in case of error.
func MustNewKey() *Key {
	key, err := NewKey()
	if err != nil {
		panic(err)
	}

	return key
}

// PubKey returns the key's public key.
func (k *Key) PubKey() *btcec.PublicKey {
	return k.PrivateKey.PubKey()
}

// SerializedPubKey returns the 32-byte x-only encoding used inside a
// reveal leaf script and as the taproot internal key.
func (k *Key) SerializedPubKey() []byte {
	return schnorr.SerializePubKey(k.PrivateKey.PubKey())
}

// Script is the single-leaf taproot tree holding one inscription's reveal
// script: {<pubkey> OP_CHECKSIG <envelope>}. The leaf is spendable by a
// single ephemeral signature — it exists only to carry the envelope, not
// to gate funds behind a real access-control policy.
type Script struct {
	LeafScript  []byte
	Tree        *txscript.IndexedTapScriptTree
	InternalKey *btcec.PublicKey
}

// NewScript builds the reveal leaf script for inscription, signable by key,
// and assembles the (degenerate, one-leaf) taproot script tree around it.
func NewScript(key *Key, inscription *inscriptions.Inscription) (*Script, error) {
	leafScript, err := inscription.IntoScriptForWitness(key.SerializedPubKey(), false)
	if err != nil {
		return nil, err
	}

	tree, err := utils.NewTapScriptTreeFromRawScripts(leafScript)
	if err != nil {
		return nil, err
	}

	return &Script{
		LeafScript:  leafScript,
		Tree:        tree,
		InternalKey: key.PubKey(),
	}, nil
}

// Address returns the P2TR commit address inscribing funds must be sent
// to before the reveal transaction can spend them via this leaf.
func (s *Script) Address(chainParams *chaincfg.Params) (*btcutil.AddressTaproot, error) {
	tapScriptRootHash := s.Tree.RootNode.TapHash()
	outputKey := txscript.ComputeTaprootOutputKey(s.InternalKey, tapScriptRootHash[:])

	return btcutil.NewAddressTaproot(schnorr.SerializePubKey(outputKey), chainParams)
}

// PkScript returns the raw scriptPubKey of Address, for building the
// commit transaction's output without going through address encoding.
func (s *Script) PkScript() ([]byte, error) {
	tapScriptRootHash := s.Tree.RootNode.TapHash()
	outputKey := txscript.ComputeTaprootOutputKey(s.InternalKey, tapScriptRootHash[:])

	return txscript.PayToTaprootScript(outputKey)
}

// ControlBlock returns the serialized control block proving LeafScript is
// committed to by the output key, as required in the reveal input's
// witness alongside the signature and leaf script.
func (s *Script) ControlBlock() ([]byte, error) {
	if len(s.Tree.LeafMerkleProofs) == 0 {
		return nil, errors.New("reveal script tree has no leaves")
	}

	controlBlock := s.Tree.LeafMerkleProofs[0].ToControlBlock(s.InternalKey)

	return controlBlock.ToBytes()
}

// TapLeaf returns the tapscript leaf backing this reveal script, as
// needed by txscript's tapscript signature helpers.
func (s *Script) TapLeaf() txscript.TapLeaf {
	return txscript.NewBaseTapLeaf(s.LeafScript)
}

// Batch mints reveal keys and scripts for a group of inscriptions revealed
// together. When singleKey is true every inscription's leaf is signed by
// the same ephemeral key (one recovery descriptor covers the whole
// batch); otherwise each inscription gets its own key.
func Batch(inscriptionsList []*inscriptions.Inscription, singleKey bool) ([]*Key, []*Script, error) {
	if len(inscriptionsList) == 0 {
		return nil, nil, errors.New("no inscriptions provided")
	}

	keys := make([]*Key, len(inscriptionsList))
	scripts := make([]*Script, len(inscriptionsList))

	var shared *Key
	if singleKey {
		key, err := NewKey()
		if err != nil {
			return nil, nil, err
		}

		shared = key
	}

	for i, inscription := range inscriptionsList {
		key := shared
		if key == nil {
			generated, err := NewKey()
			if err != nil {
				return nil, nil, err
			}

			key = generated
		}

		script, err := NewScript(key, inscription)
		if err != nil {
			return nil, nil, err
		}

		keys[i] = key
		scripts[i] = script
	}

	return keys, scripts, nil
}
