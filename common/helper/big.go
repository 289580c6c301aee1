package helper

import "math/big"

const (
	MaxUint64 = 1<<64 - 1
)

var (
	Big0 = big.NewInt(0)
	Big1 = big.NewInt(1)

	Tt256   = BigPow(2, 256)
	Tt256m1 = new(big.Int).Sub(Tt256, Big1)
)

// BigPow returns a ** b as a big integer.
func BigPow(a, b int64) *big.Int {
	r := big.NewInt(a)
	return r.Exp(r, big.NewInt(b), nil)
}

// BigCopy returns a copy of v, treating nil as zero.
func BigCopy(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
