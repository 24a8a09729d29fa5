// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package txbuilder

import (
	"fmt"
	"math/big"

	"github.com/ord-envelope/inscribe/bitcoin"
)

// InsufficientError describes an insufficient native balance error, with
// the shortfall amounts attached once known.
type InsufficientError struct {
	Need *big.Int
	Have *big.Int
}

// insufficientNativeBalanceError is the base InsufficientError returned by
// UTXO selection before the shortfall amounts are known.
var insufficientNativeBalanceError = &InsufficientError{}

// NewInsufficientError is a constructor for InsufficientError.
func NewInsufficientError(need, have *big.Int) *InsufficientError {
	return &InsufficientError{Need: need, Have: have}
}

// Error returns error description.
func (e *InsufficientError) Error() string {
	if e.Have == nil || e.Need == nil {
		return bitcoin.ErrInsufficientNativeBalance.Error()
	}

	return fmt.Sprintf("%s: need %s, have %s", bitcoin.ErrInsufficientNativeBalance, e.Need, e.Have)
}

// Unwrap lets callers match InsufficientError with errors.Is(err, bitcoin.ErrInsufficientNativeBalance).
func (e *InsufficientError) Unwrap() error {
	return bitcoin.ErrInsufficientNativeBalance
}

// clarify returns a copy of e with Need and Have values set.
func (e *InsufficientError) clarify(need, have *big.Int) *InsufficientError {
	return &InsufficientError{Need: need, Have: have}
}
