// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package inscriptions_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/txscript"
	"github.com/stretchr/testify/require"

	"github.com/ord-envelope/inscribe/bitcoin/ord/inscriptions"
)

func TestParseRoundTrip(t *testing.T) {
	tests := []*inscriptions.Inscription{
		{},
		{ContentType: "text/plain;charset=utf-8", Body: []byte("hello, world")},
		{ContentType: "application/json", Body: []byte(`{"a":1}`)},
		{ContentType: "image/png"},
	}

	for _, original := range tests {
		script, err := original.IntoScript(false)
		require.NoError(t, err)

		parsed, err := inscriptions.Parse(script)
		require.NoError(t, err)
		require.Equal(t, original.ContentType, parsed.ContentType)
		require.Equal(t, original.Body, parsed.Body)
	}
}

func TestParseChunking(t *testing.T) {
	body := bytes.Repeat([]byte{0xAB}, 1041)
	original := &inscriptions.Inscription{ContentType: "application/octet-stream", Body: body}

	chunks := original.PrepareBody()
	require.Len(t, chunks, 3) // 520 + 520 + 1.

	script, err := original.IntoScript(false)
	require.NoError(t, err)

	parsed, err := inscriptions.Parse(script)
	require.NoError(t, err)
	require.Equal(t, body, parsed.Body)
}

func TestParseEmptyEnvelopeIsValid(t *testing.T) {
	builder := txscript.NewScriptBuilder()
	builder.AddOp(txscript.OP_FALSE).AddOp(txscript.OP_IF).AddData([]byte("ord")).AddOp(txscript.OP_ENDIF)
	script, err := builder.Script()
	require.NoError(t, err)

	parsed, err := inscriptions.Parse(script)
	require.NoError(t, err)
	require.Empty(t, parsed.ContentType)
	require.Nil(t, parsed.Body)
}

func TestParseTrailingOpcodesIgnored(t *testing.T) {
	original := &inscriptions.Inscription{ContentType: "text/plain", Body: []byte("x")}
	envelope, err := original.IntoScript(false)
	require.NoError(t, err)

	builder := txscript.NewScriptBuilder()
	builder.AddOp(txscript.OP_CHECKSIG) // preceding, unrelated opcode.
	script, err := builder.Script()
	require.NoError(t, err)
	script = append(script, envelope...)
	script = append(script, txscript.OP_CHECKSIG) // trailing, unrelated opcode.

	parsed, err := inscriptions.Parse(script)
	require.NoError(t, err)
	require.Equal(t, original.ContentType, parsed.ContentType)
	require.Equal(t, original.Body, parsed.Body)
}

func TestParseAllMultipleEnvelopesPerScript(t *testing.T) {
	first := &inscriptions.Inscription{ContentType: "text/plain", Body: []byte("first")}
	second := &inscriptions.Inscription{ContentType: "text/plain", Body: []byte("second")}

	firstScript, err := first.IntoScript(false)
	require.NoError(t, err)
	secondScript, err := second.IntoScript(false)
	require.NoError(t, err)

	all, err := inscriptions.ParseAll(append(firstScript, secondScript...))
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, []byte("first"), all[0].Body)
	require.Equal(t, []byte("second"), all[1].Body)
}

func TestParseUnrecognizedEvenFieldRejected(t *testing.T) {
	builder := txscript.NewScriptBuilder()
	builder.AddOp(txscript.OP_FALSE).AddOp(txscript.OP_IF).AddData([]byte("ord"))
	builder.AddOps([]byte{txscript.OP_DATA_1, 0x42}) // even, unrecognized tag (also the cursed sentinel).
	builder.AddData([]byte("cursed"))
	builder.AddOp(txscript.OP_ENDIF)
	script, err := builder.Script()
	require.NoError(t, err)

	_, err = inscriptions.Parse(script)
	require.Error(t, err)

	var evenFieldErr *inscriptions.UnrecognizedEvenFieldError
	require.True(t, errors.As(err, &evenFieldErr))
	require.EqualValues(t, 0x42, evenFieldErr.Tag)
}

func TestParseUnrecognizedEvenFieldTagTwoRejected(t *testing.T) {
	builder := txscript.NewScriptBuilder()
	builder.AddOp(txscript.OP_FALSE).AddOp(txscript.OP_IF).AddData([]byte("ord"))
	builder.AddOps([]byte{txscript.OP_DATA_1, 0x02}) // even, unrecognized tag.
	builder.AddData([]byte{0x00})
	builder.AddOp(txscript.OP_ENDIF)
	script, err := builder.Script()
	require.NoError(t, err)

	_, err = inscriptions.Parse(script)
	require.Error(t, err)

	var evenFieldErr *inscriptions.UnrecognizedEvenFieldError
	require.True(t, errors.As(err, &evenFieldErr))
	require.EqualValues(t, 0x02, evenFieldErr.Tag)
}

func TestParseUnrecognizedOddFieldIgnored(t *testing.T) {
	builder := txscript.NewScriptBuilder()
	builder.AddOp(txscript.OP_FALSE).AddOp(txscript.OP_IF).AddData([]byte("ord"))
	builder.AddOps([]byte{txscript.OP_DATA_1, 0xfd}) // odd (253), unknown.
	builder.AddData([]byte("ignored"))
	builder.AddOps([]byte{txscript.OP_DATA_1, 0x01}) // TagContentType.
	builder.AddData([]byte("text/plain"))
	builder.AddOp(txscript.OP_ENDIF)
	script, err := builder.Script()
	require.NoError(t, err)

	parsed, err := inscriptions.Parse(script)
	require.NoError(t, err)
	require.Equal(t, "text/plain", parsed.ContentType)
}

func TestParseDuplicateFieldRejected(t *testing.T) {
	builder := txscript.NewScriptBuilder()
	builder.AddOp(txscript.OP_FALSE).AddOp(txscript.OP_IF).AddData([]byte("ord"))
	builder.AddOps([]byte{txscript.OP_DATA_1, 0x01}).AddData([]byte("text/plain"))
	builder.AddOps([]byte{txscript.OP_DATA_1, 0x01}).AddData([]byte("text/html"))
	builder.AddOp(txscript.OP_ENDIF)
	script, err := builder.Script()
	require.NoError(t, err)

	_, err = inscriptions.Parse(script)
	require.Error(t, err)
	require.True(t, errors.Is(err, inscriptions.ErrRepeatedFieldData))
}

func TestParseFromWitnessEmpty(t *testing.T) {
	_, err := inscriptions.ParseFromWitness(nil)
	require.ErrorIs(t, err, inscriptions.ErrEmptyWitness)
}

func TestParseFromWitnessKeyPathSpend(t *testing.T) {
	_, err := inscriptions.ParseFromWitness([][]byte{make([]byte, 64)})
	require.ErrorIs(t, err, inscriptions.ErrKeyPathSpend)
}

func TestParseFromWitnessNoInscriptionIsNotAnError(t *testing.T) {
	witness := [][]byte{make([]byte, 64), {0x51}, {0xc0}}
	found, err := inscriptions.ParseFromWitness(witness)
	require.NoError(t, err)
	require.Nil(t, found)
}
