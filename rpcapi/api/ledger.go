package api

import (
	"time"

	"github.com/inconshreveable/log15"

	"github.com/rebaselabs/go-rebase/common/types"
	"github.com/rebaselabs/go-rebase/ledger"
)

// The RPC boundary is where the ambient clock turns into the explicit
// timestamp every ledger operation takes.
func nowTimestamp() uint64 {
	return uint64(time.Now().Unix())
}

type AccountInfo struct {
	Address     string `json:"address"`
	Balance     string `json:"balance"`
	Principal   string `json:"principal"`
	Rate        string `json:"rate"`
	LastSettled uint64 `json:"lastSettled"`
}

type RateStampInfo struct {
	Timestamp uint64 `json:"timestamp"`
	Rate      string `json:"rate"`
}

// LedgerApi is the read-only query surface over the accrual ledger.
// Mutations stay in-process; off-chain consumers only observe.
type LedgerApi struct {
	ledger *ledger.Ledger
	log    log15.Logger
}

func NewLedgerApi(ld *ledger.Ledger) *LedgerApi {
	return &LedgerApi{
		ledger: ld,
		log:    log15.New("module", "rpc/ledger"),
	}
}

// GetBalance answers addr's balance as of now, virtual interest included.
func (api *LedgerApi) GetBalance(addrStr string, reply *string) error {
	addr, err := types.HexToAddress(addrStr)
	if err != nil {
		return err
	}

	balance, err := api.ledger.BalanceOf(addr, nowTimestamp())
	if err != nil {
		return err
	}
	*reply = balance.String()
	return nil
}

// GetAccount answers the whole stored record plus the live balance.
func (api *LedgerApi) GetAccount(addrStr string, reply *AccountInfo) error {
	addr, err := types.HexToAddress(addrStr)
	if err != nil {
		return err
	}

	acct, err := api.ledger.GetAccount(addr)
	if err != nil {
		return err
	}

	*reply = AccountInfo{
		Address:     addr.String(),
		Balance:     acct.BalanceAt(nowTimestamp()).String(),
		Principal:   acct.Principal.String(),
		Rate:        acct.Rate.String(),
		LastSettled: acct.LastSettled,
	}
	return nil
}

func (api *LedgerApi) GetGlobalRate(noop interface{}, reply *string) error {
	rate, err := api.ledger.GlobalRate()
	if err != nil {
		return err
	}
	*reply = rate.String()
	return nil
}

func (api *LedgerApi) GetRateHistory(noop interface{}, reply *[]RateStampInfo) error {
	stamps, err := api.ledger.RateHistory()
	if err != nil {
		return err
	}

	infos := make([]RateStampInfo, 0, len(stamps))
	for _, stamp := range stamps {
		infos = append(infos, RateStampInfo{Timestamp: stamp.Timestamp, Rate: stamp.Rate.String()})
	}
	*reply = infos
	return nil
}

func (api *LedgerApi) GetTotalSupply(noop interface{}, reply *string) error {
	supply, err := api.ledger.TotalSupply()
	if err != nil {
		return err
	}
	*reply = supply.String()
	return nil
}
