// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package inscriptions

import (
	"errors"
	"fmt"
)

// ErrEmptyWitness describes that the input carries no witness data at all,
// so no envelope can possibly be present.
var ErrEmptyWitness = errors.New("witness is empty")

// ErrKeyPathSpend describes that the input's witness is a key-path spend
// (a single signature, optionally with an annex) and therefore carries no
// tapscript, so no envelope can be present.
var ErrKeyPathSpend = errors.New("witness is a key-path spend")

// errNoInscription is returned by the tokenizer scan (ParseAll, and Parse
// through it) when a script contains no envelope at all. It is not an
// error condition for callers scanning many inputs looking for the ones
// that do carry one, so ParseFromWitness translates it into an empty,
// error-free result.
var errNoInscription = errors.New("no inscription envelope in script")

// ErrRepeatedFieldData describes that a single-valued tag was pushed more
// than once in the same envelope.
var ErrRepeatedFieldData = errors.New("field already filled")

// ErrInvalidInscription wraps a lower-level parsing failure (malformed
// push data, a tokenizer error, an unterminated envelope, ...).
type ErrInvalidInscription struct {
	Err error
}

// Error implements the error interface.
func (e *ErrInvalidInscription) Error() string {
	return fmt.Sprintf("invalid inscription: %s", e.Err)
}

// Unwrap allows errors.Is/errors.As to reach the underlying cause.
func (e *ErrInvalidInscription) Unwrap() error {
	return e.Err
}

// UnrecognizedEvenFieldError describes that the envelope used a tag this
// parser does not understand, and the tag number is even. Per the
// forward-compatibility rule, an even unknown tag must abort parsing
// instead of being silently skipped the way an odd unknown tag would be.
type UnrecognizedEvenFieldError struct {
	Tag Tag
}

// Error implements the error interface.
func (e *UnrecognizedEvenFieldError) Error() string {
	return fmt.Sprintf("unrecognized even field: tag 0x%s", e.Tag.HexString())
}
