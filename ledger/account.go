package ledger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/rebaselabs/go-rebase/common/helper"
)

// Account is the durable per-address record. Principal holds settled units
// only; interest accrued since LastSettled stays virtual until the next
// settlement folds it in. Rate is the personal rate fixed when the account
// last acquired units.
type Account struct {
	Principal   *big.Int
	Rate        *big.Int
	LastSettled uint64
}

func NewAccount() *Account {
	return &Account{
		Principal: new(big.Int),
		Rate:      new(big.Int),
	}
}

func (a *Account) Serialize() ([]byte, error) {
	return rlp.EncodeToBytes(a)
}

func (a *Account) Deserialize(buf []byte) error {
	return rlp.DecodeBytes(buf, a)
}

// BalanceAt returns principal plus the interest accrued between LastSettled
// and at, computed as principal * (Precision + rate*elapsed) / Precision.
// The multiplication runs strictly before the division so truncation only
// happens once. A timestamp at or before LastSettled counts as zero elapsed
// time.
func (a *Account) BalanceAt(at uint64) *big.Int {
	if a.Principal.Sign() == 0 {
		return new(big.Int)
	}

	elapsed := a.elapsed(at)
	if elapsed == 0 || a.Rate.Sign() == 0 {
		return helper.BigCopy(a.Principal)
	}

	factor := new(big.Int).Mul(a.Rate, new(big.Int).SetUint64(elapsed))
	factor.Add(factor, Precision)

	balance := new(big.Int).Mul(a.Principal, factor)
	return balance.Div(balance, Precision)
}

// Settle folds the accrued interest into the principal and advances
// LastSettled. It returns the interest that was folded in. LastSettled
// never moves backwards, so settling at an old timestamp is a no-op.
func (a *Account) Settle(at uint64) *big.Int {
	balance := a.BalanceAt(at)
	interest := new(big.Int).Sub(balance, a.Principal)

	a.Principal = balance
	if at > a.LastSettled {
		a.LastSettled = at
	}
	return interest
}

func (a *Account) elapsed(at uint64) uint64 {
	if at <= a.LastSettled {
		return 0
	}
	return at - a.LastSettled
}
