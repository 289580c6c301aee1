package ledger

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	ErrNotInitialized      = errors.New("ledger not initialized")
	ErrUnauthorized        = errors.New("caller not authorized")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidRate         = errors.New("invalid rate")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAmountOverflow      = errors.New("amount overflows max supply")
)

// RateError reports a SetGlobalRate call that does not strictly decrease
// the rate. It carries both values so callers can show what was rejected.
type RateError struct {
	current   *big.Int
	attempted *big.Int
}

func NewRateError(current, attempted *big.Int) *RateError {
	return &RateError{current, attempted}
}

func (e *RateError) Error() string {
	return fmt.Sprintf("global rate may only decrease. current %v, attempted %v", e.current, e.attempted)
}

func (e *RateError) Current() *big.Int {
	return e.current
}

func (e *RateError) Attempted() *big.Int {
	return e.attempted
}
