// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package inscriptions

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// inscriptionOrdTag defines ord tag for inscription to disambiguate inscriptions from other uses of envelopes.
const inscriptionOrdTag string = "ord"

// cursedTagValue is the ASCII value pushed alongside TagUnbound. Its
// content is informational only and MUST NOT be interpreted by a parser.
const cursedTagValue string = "cursed"

// maxBodyDataPushLen defines maximum size of the data push for bitcoin scripts.
const maxBodyDataPushLen int = 520

// Inscription is a content blob: a body plus an optional content-type,
// both independently optional.
type Inscription struct {
	ContentType string
	Body        []byte
}

// AppendToBuilder appends this inscription's envelope to builder:
// OP_FALSE OP_IF "ord" [content-type tag] [cursed tag, if requested]
// [body] OP_ENDIF. When cursed is true the even-numbered TagUnbound
// sentinel is emitted after the content-type tag, producing an envelope
// a conformant parser must reject. Callers building a taproot reveal
// leaf are expected to have already added PUSH(pubkey) OP_CHECKSIG to
// builder.
func (i *Inscription) AppendToBuilder(builder *txscript.ScriptBuilder, cursed bool) *txscript.ScriptBuilder {
	builder.AddOp(txscript.OP_FALSE)
	builder.AddOp(txscript.OP_IF)
	builder.AddData([]byte(inscriptionOrdTag))

	if len(i.ContentType) != 0 {
		builder.AddOps(TagContentType.IntoDataPush())
		builder.AddData([]byte(i.ContentType))
	}

	if cursed {
		builder.AddOps(TagUnbound.IntoDataPush())
		builder.AddData([]byte(cursedTagValue))
	}

	if len(i.Body) != 0 {
		builder.AddOp(txscript.OP_0)
		for _, chunk := range i.PrepareBody() {
			builder.AddData(chunk)
		}
	}

	builder.AddOp(txscript.OP_ENDIF)

	return builder
}

// IntoScript returns Inscription as a standalone script:
// OP_FALSE OP_IF "ord" [tag value]* [OP_0 [body chunk]*] OP_ENDIF, where
// the OP_0 body marker is emitted only for a non-empty body.
func (i *Inscription) IntoScript(cursed bool) ([]byte, error) {
	return i.AppendToBuilder(txscript.NewScriptBuilder(), cursed).Script()
}

// PrepareBody returns Inscription body as array of bytes arrays with maxBodyDataPushLen size.
func (i *Inscription) PrepareBody() [][]byte {
	buffer := make([][]byte, 0, (len(i.Body)/maxBodyDataPushLen)+1)
	start := 0
	end := maxBodyDataPushLen
	for len(i.Body) >= end {
		buffer = append(buffer, i.Body[start:end])
		start = end
		end += maxBodyDataPushLen
	}

	if start < len(i.Body) {
		buffer = append(buffer, i.Body[start:])
	}

	return buffer
}

// IntoScriptForWitness returns Inscription as a script with pubKey verify at the beginning for witness data.
func (i *Inscription) IntoScriptForWitness(serializedPubKey []byte, cursed bool) ([]byte, error) {
	builder := txscript.NewScriptBuilder()
	builder.AddData(serializedPubKey)
	builder.AddOp(txscript.OP_CHECKSIG)

	return i.AppendToBuilder(builder, cursed).Script()
}

// IntoAddress returns generated address from inscription script data.
func (i *Inscription) IntoAddress(publicKey string, chainParams *chaincfg.Params, cursed bool) (string, error) {
	pubKey, err := hex.DecodeString(publicKey)
	if err != nil {
		return "", err
	}

	pubKeyBtcec, err := btcec.ParsePubKey(pubKey)
	if err != nil {
		return "", err
	}

	serializedPubKey := schnorr.SerializePubKey(pubKeyBtcec)
	pkScript, err := i.IntoScriptForWitness(serializedPubKey, cursed)
	if err != nil {
		return "", err
	}

	tapLeaf := txscript.NewBaseTapLeaf(pkScript)
	tapScriptTree := txscript.AssembleTaprootScriptTree(tapLeaf)
	tapScriptRootHash := tapScriptTree.RootNode.TapHash()
	outputKey := txscript.ComputeTaprootOutputKey(pubKeyBtcec, tapScriptRootHash[:])

	addr, err := btcutil.NewAddressTaproot(schnorr.SerializePubKey(outputKey), chainParams)
	if err != nil {
		return "", err
	}

	return addr.String(), nil
}

// VBytesSize returns estimated inscription input size in virtual bytes.
func (i *Inscription) VBytesSize(cursed bool) (int, error) {
	script, err := i.IntoScript(cursed)
	if err != nil {
		return 0, err
	}

	// INFO: pubkey size [1 byte] + pubkey [32 bytes] + OP_CHECKSIG [1 byte] + inscription script size [variable].
	bytesSize := len(script) + 34
	// INFO: use ceil approach.
	vBytesSize := bytesSize / 4
	if bytesSize%4 != 0 {
		vBytesSize++
	}

	return vBytesSize, nil
}
