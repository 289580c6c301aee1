package ledger

import (
	"math/big"

	"github.com/rebaselabs/go-rebase/common/types"
)

const (
	MintEventName        = "mint"
	BurnEventName        = "burn"
	TransferEventName    = "transfer"
	RateChangedEventName = "rateChanged"
)

type MintEvent struct {
	Account types.Address
	Amount  *big.Int
}

type BurnEvent struct {
	Account types.Address
	Amount  *big.Int
}

type TransferEvent struct {
	From   types.Address
	To     types.Address
	Amount *big.Int
}

type RateChangedEvent struct {
	Rate      *big.Int
	Timestamp uint64
}

type stagedEvent struct {
	name    string
	payload interface{}
}
