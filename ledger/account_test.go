package ledger

import (
	"math/big"
	"testing"

	"github.com/magiconair/properties/assert"

	"github.com/rebaselabs/go-rebase/common/helper"
)

func accountWith(principal *big.Int, rate *big.Int, lastSettled uint64) *Account {
	acct := NewAccount()
	acct.Principal = helper.BigCopy(principal)
	acct.Rate = helper.BigCopy(rate)
	acct.LastSettled = lastSettled
	return acct
}

// 1e18 units at rate 5e10 earn 1.8e14 per hour.
func TestBalanceAtHourOfAccrual(t *testing.T) {
	acct := accountWith(helper.BigPow(10, 18), big.NewInt(50000000000), 1000000)

	assert.Equal(t, acct.BalanceAt(1000000+3600).String(), "1000180000000000000")
}

func TestBalanceAtLinearInTime(t *testing.T) {
	acct := accountWith(helper.BigPow(10, 18), big.NewInt(50000000000), 1000000)

	b0 := acct.BalanceAt(1000000)
	b1 := acct.BalanceAt(1000000 + 3600)
	b2 := acct.BalanceAt(1000000 + 7200)

	first := new(big.Int).Sub(b1, b0)
	second := new(big.Int).Sub(b2, b1)
	assert.Equal(t, second.String(), first.String())
}

func TestBalanceAtZeroElapsed(t *testing.T) {
	acct := accountWith(big.NewInt(700), big.NewInt(50000000000), 1000000)

	assert.Equal(t, acct.BalanceAt(1000000).String(), "700")
}

// A timestamp before the last settlement reads as if no time passed.
func TestBalanceAtClampsPastTimestamps(t *testing.T) {
	acct := accountWith(big.NewInt(700), big.NewInt(50000000000), 1000000)

	assert.Equal(t, acct.BalanceAt(999).String(), "700")
}

func TestBalanceAtZeroPrincipal(t *testing.T) {
	acct := accountWith(new(big.Int), big.NewInt(50000000000), 1000000)

	assert.Equal(t, acct.BalanceAt(2000000).String(), "0")
}

func TestBalanceAtZeroRate(t *testing.T) {
	acct := accountWith(big.NewInt(700), new(big.Int), 1000000)

	assert.Equal(t, acct.BalanceAt(2000000).String(), "700")
}

// The numerator is assembled completely before the single division, so
// sub-unit interest per second still accumulates across the whole window.
// Dividing rate*elapsed by the precision first would truncate to zero here.
func TestBalanceAtDividesOnce(t *testing.T) {
	third := new(big.Int).Div(Precision, big.NewInt(3))
	acct := accountWith(big.NewInt(10), third, 0)

	assert.Equal(t, acct.BalanceAt(1).String(), "13")
}

func TestSettleFoldsInterest(t *testing.T) {
	acct := accountWith(helper.BigPow(10, 18), big.NewInt(50000000000), 1000000)

	interest := acct.Settle(1000000 + 3600)

	assert.Equal(t, interest.String(), "180000000000000")
	assert.Equal(t, acct.Principal.String(), "1000180000000000000")
	assert.Equal(t, acct.LastSettled, uint64(1000000+3600))
}

func TestSettleNeverRewinds(t *testing.T) {
	acct := accountWith(big.NewInt(700), big.NewInt(50000000000), 1000000)

	interest := acct.Settle(500)

	assert.Equal(t, interest.String(), "0")
	assert.Equal(t, acct.Principal.String(), "700")
	assert.Equal(t, acct.LastSettled, uint64(1000000))
}

func TestAccountSerializeRoundTrip(t *testing.T) {
	acct := accountWith(helper.BigPow(10, 18), big.NewInt(50000000000), 1234567890)

	data, err := acct.Serialize()
	if err != nil {
		t.Fatal(err)
	}

	decoded := NewAccount()
	if err := decoded.Deserialize(data); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, decoded.Principal.String(), acct.Principal.String())
	assert.Equal(t, decoded.Rate.String(), acct.Rate.String())
	assert.Equal(t, decoded.LastSettled, acct.LastSettled)
}
