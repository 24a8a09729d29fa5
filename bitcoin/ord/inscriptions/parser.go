// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package inscriptions

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// ParseAll scans script for every inscription envelope it contains and
// returns them in the order they appear. Parsing is byte-exact: it walks
// the real instruction stream via txscript.ScriptTokenizer rather than a
// disassembled string, so arbitrary push payloads (including ones that
// would look like opcodes in a text disassembly) can never be
// misinterpreted.
//
// Any malformed envelope (bad push length, unterminated OP_IF, an even tag
// this parser does not recognize, ...) aborts the whole scan and returns
// the error for that envelope; envelopes already parsed are still
// returned alongside it.
func ParseAll(script []byte) ([]*Inscription, error) {
	var (
		found     []*Inscription
		tokenizer = txscript.MakeScriptTokenizer(0, script)
	)

	for tokenizer.Next() {
		if tokenizer.Opcode() != txscript.OP_FALSE {
			continue
		}
		if !tokenizer.Next() || tokenizer.Opcode() != txscript.OP_IF {
			continue
		}
		if !tokenizer.Next() || string(tokenizer.Data()) != inscriptionOrdTag {
			continue
		}

		inscription, err := parseEnvelopeBody(&tokenizer)
		if err != nil {
			return found, err
		}

		found = append(found, inscription)
	}

	if err := tokenizer.Err(); err != nil {
		return found, &ErrInvalidInscription{Err: err}
	}

	if len(found) == 0 {
		return nil, errNoInscription
	}

	return found, nil
}

// Parse parses the single inscription envelope expected in script.
func Parse(script []byte) (*Inscription, error) {
	all, err := ParseAll(script)
	if err != nil {
		return nil, err
	}

	return all[0], nil
}

// ParseFromWitness recovers every inscription envelope carried by a single
// input's witness, stripping a taproot annex if present. It returns
// (nil, nil) when the witness is a valid script-path spend that simply
// carries no envelope, which is the common case for ordinary funding
// inputs — callers scanning many inputs should treat that as "nothing
// here", not as a parse failure.
func ParseFromWitness(witness wire.TxWitness) ([]*Inscription, error) {
	if len(witness) == 0 {
		return nil, ErrEmptyWitness
	}

	w := witness
	if len(w) >= 2 && len(w[len(w)-1]) > 0 && w[len(w)-1][0] == txscript.TaprootAnnexTag {
		w = w[:len(w)-1]
	}

	// A script-path spend carries at least {..., script, control-block}.
	if len(w) < 2 {
		return nil, ErrKeyPathSpend
	}

	script := w[len(w)-2]

	inscriptions, err := ParseAll(script)
	if err != nil {
		if errors.Is(err, errNoInscription) {
			return nil, nil
		}

		return nil, err
	}

	return inscriptions, nil
}

// parseEnvelopeBody parses the tag/value pairs and optional body of a
// single envelope, with the tokenizer already positioned just after the
// "ord" protocol identifier push. It consumes through the closing
// OP_ENDIF.
func parseEnvelopeBody(tokenizer *txscript.ScriptTokenizer) (*Inscription, error) {
	inscription := new(Inscription)

	for tokenizer.Next() {
		if tokenizer.Opcode() == txscript.OP_ENDIF {
			return inscription, nil
		}

		tagData := tokenizer.Data()
		if len(tagData) > 1 {
			return nil, &ErrInvalidInscription{Err: fmt.Errorf("invalid tag push length: %d", len(tagData))}
		}

		// OP_0 (empty push) marks the start of the body: all remaining
		// pushes until OP_ENDIF are body chunks, concatenated.
		if len(tagData) == 0 {
			if err := inscription.consumeBody(tokenizer); err != nil {
				return nil, err
			}

			return inscription, nil
		}

		tag := Tag(tagData[0])

		if !tokenizer.Next() {
			return nil, &ErrInvalidInscription{Err: fmt.Errorf("missing value for tag 0x%s", tag.HexString())}
		}

		value := append([]byte(nil), tokenizer.Data()...)
		if err := inscription.fillFieldByTag(tag, value); err != nil {
			return nil, err
		}
	}

	if err := tokenizer.Err(); err != nil {
		return nil, &ErrInvalidInscription{Err: err}
	}

	return nil, &ErrInvalidInscription{Err: errors.New("unterminated envelope")}
}

// consumeBody reads body pushes until OP_ENDIF, concatenating them into
// inscription.Body.
func (i *Inscription) consumeBody(tokenizer *txscript.ScriptTokenizer) error {
	var body []byte
	for tokenizer.Next() {
		if tokenizer.Opcode() == txscript.OP_ENDIF {
			if len(body) != 0 {
				i.Body = body
			}

			return nil
		}

		body = append(body, tokenizer.Data()...)
	}

	if err := tokenizer.Err(); err != nil {
		return &ErrInvalidInscription{Err: err}
	}

	return &ErrInvalidInscription{Err: errors.New("unterminated envelope body")}
}

// fillFieldByTag fills the Inscription field identified by tag with value.
// Unknown odd tags are ignored for forward compatibility; unknown even
// tags abort parsing, per the protocol's tag-parity rule.
func (i *Inscription) fillFieldByTag(tag Tag, value []byte) error {
	switch tag {
	case TagContentType:
		if len(i.ContentType) != 0 {
			return &ErrInvalidInscription{Err: ErrRepeatedFieldData}
		}

		i.ContentType = string(value)
	default:
		if byte(tag)%2 == 0 {
			return &UnrecognizedEvenFieldError{Tag: tag}
		}
		// unknown odd tag: ignored for forward compatibility.
	}

	return nil
}
