package helper

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBigPow(t *testing.T) {
	assert.Equal(t, big.NewInt(1024), BigPow(2, 10))
	assert.Equal(t, big.NewInt(1), BigPow(10, 0))
}

func TestTt256m1(t *testing.T) {
	expected, ok := new(big.Int).SetString("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", 16)
	assert.True(t, ok)
	assert.Zero(t, Tt256m1.Cmp(expected))
}

func TestBigCopy(t *testing.T) {
	assert.Zero(t, BigCopy(nil).Sign())

	src := big.NewInt(42)
	cp := BigCopy(src)
	cp.Add(cp, Big1)
	assert.Equal(t, int64(42), src.Int64())
	assert.Equal(t, int64(43), cp.Int64())
}
