package vault

import (
	"math/big"

	"github.com/rebaselabs/go-rebase/common/types"
)

const (
	DepositEventName = "deposit"
	RedeemEventName  = "redeem"
)

type DepositEvent struct {
	Account types.Address
	Amount  *big.Int
}

type RedeemEvent struct {
	Account types.Address
	Amount  *big.Int
}
