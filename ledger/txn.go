package ledger

import (
	"math/big"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/rebaselabs/go-rebase/common/helper"
	"github.com/rebaselabs/go-rebase/common/types"
	"github.com/rebaselabs/go-rebase/store"
)

// Txn stages the writes of one ledger operation. Reads see the staged
// records first and fall back to the store, so an operation observes its
// own writes before they land. Nothing touches disk until the ledger
// commits the whole transaction as one batch; returning an error from the
// update callback discards everything.
type Txn struct {
	ld *Ledger

	accounts map[types.Address]*Account
	rate     *big.Int
	supply   *big.Int
	history  []RateStamp
	events   []stagedEvent
}

// RateStamp is one entry of the global rate history.
type RateStamp struct {
	Timestamp uint64
	Rate      *big.Int
}

func newTxn(ld *Ledger) *Txn {
	return &Txn{
		ld:       ld,
		accounts: make(map[types.Address]*Account),
	}
}

// Mint settles the account, re-stamps its personal rate with the current
// global rate and credits amount. The re-stamp happens on every mint, so a
// top-up after a rate cut drags the whole holding down to the new rate.
func (txn *Txn) Mint(caller, addr types.Address, amount *big.Int, at uint64) error {
	if !txn.ld.auth.CanMintBurn(caller) {
		return ErrUnauthorized
	}
	if !validAmount(amount) || amount.Cmp(MaxAmount) == 0 {
		return ErrInvalidAmount
	}

	rate, err := txn.globalRate()
	if err != nil {
		return err
	}

	acct, err := txn.account(addr)
	if err != nil {
		return err
	}

	interest := acct.Settle(at)
	if err := txn.addSupply(interest); err != nil {
		return err
	}

	acct.Rate = helper.BigCopy(rate)
	acct.Principal.Add(acct.Principal, amount)
	if err := txn.addSupply(amount); err != nil {
		return err
	}

	if txn.supply.Cmp(MaxAmount) > 0 {
		return ErrAmountOverflow
	}

	txn.emit(MintEventName, MintEvent{Account: addr, Amount: helper.BigCopy(amount)})
	return nil
}

// Burn settles the account and debits amount. MaxAmount resolves to the
// whole settled balance. It returns the amount actually burned.
func (txn *Txn) Burn(caller, addr types.Address, amount *big.Int, at uint64) (*big.Int, error) {
	if !txn.ld.auth.CanMintBurn(caller) {
		return nil, ErrUnauthorized
	}
	if !validAmount(amount) {
		return nil, ErrInvalidAmount
	}

	acct, err := txn.account(addr)
	if err != nil {
		return nil, err
	}

	interest := acct.Settle(at)
	if err := txn.addSupply(interest); err != nil {
		return nil, err
	}

	if amount.Cmp(MaxAmount) == 0 {
		amount = helper.BigCopy(acct.Principal)
	}
	if amount.Cmp(acct.Principal) > 0 {
		return nil, ErrInsufficientBalance
	}

	acct.Principal.Sub(acct.Principal, amount)
	if err := txn.subSupply(amount); err != nil {
		return nil, err
	}

	txn.emit(BurnEventName, BurnEvent{Account: addr, Amount: helper.BigCopy(amount)})
	return helper.BigCopy(amount), nil
}

// Transfer settles both sides and moves amount from one to the other.
// MaxAmount resolves to the sender's whole settled balance. A receiver with
// zero settled principal inherits the sender's personal rate. It returns
// the amount actually moved.
func (txn *Txn) Transfer(from, to types.Address, amount *big.Int, at uint64) (*big.Int, error) {
	if !validAmount(amount) {
		return nil, ErrInvalidAmount
	}

	sender, err := txn.account(from)
	if err != nil {
		return nil, err
	}
	receiver, err := txn.account(to)
	if err != nil {
		return nil, err
	}

	if err := txn.addSupply(sender.Settle(at)); err != nil {
		return nil, err
	}
	if from != to {
		if err := txn.addSupply(receiver.Settle(at)); err != nil {
			return nil, err
		}
	}

	if amount.Cmp(MaxAmount) == 0 {
		amount = helper.BigCopy(sender.Principal)
	}
	if amount.Cmp(sender.Principal) > 0 {
		return nil, ErrInsufficientBalance
	}

	if receiver.Principal.Sign() == 0 {
		receiver.Rate = helper.BigCopy(sender.Rate)
	}

	sender.Principal.Sub(sender.Principal, amount)
	receiver.Principal.Add(receiver.Principal, amount)

	txn.emit(TransferEventName, TransferEvent{From: from, To: to, Amount: helper.BigCopy(amount)})
	return helper.BigCopy(amount), nil
}

// SetGlobalRate replaces the global rate. The new rate must be strictly
// lower than the current one.
func (txn *Txn) SetGlobalRate(caller types.Address, newRate *big.Int, at uint64) error {
	if !txn.ld.auth.CanSetRate(caller) {
		return ErrUnauthorized
	}
	if newRate == nil || newRate.Sign() < 0 {
		return ErrInvalidRate
	}

	current, err := txn.globalRate()
	if err != nil {
		return err
	}
	if newRate.Cmp(current) >= 0 {
		return NewRateError(current, helper.BigCopy(newRate))
	}

	txn.rate = helper.BigCopy(newRate)
	txn.history = append(txn.history, RateStamp{Timestamp: at, Rate: helper.BigCopy(newRate)})
	txn.emit(RateChangedEventName, RateChangedEvent{Rate: helper.BigCopy(newRate), Timestamp: at})
	return nil
}

// Settle folds the accrued interest of one account into its principal.
// Anyone may trigger it; it only realizes what the account already earned.
func (txn *Txn) Settle(addr types.Address, at uint64) error {
	acct, err := txn.account(addr)
	if err != nil {
		return err
	}
	return txn.addSupply(acct.Settle(at))
}

// BalanceOf returns the account's balance at the given time, staged state
// included. It does not mutate anything.
func (txn *Txn) BalanceOf(addr types.Address, at uint64) (*big.Int, error) {
	acct, err := txn.peekAccount(addr)
	if err != nil {
		return nil, err
	}
	return acct.BalanceAt(at), nil
}

// account returns the staged record, loading it from the store on first
// access. Mutations on the returned record are part of the transaction.
func (txn *Txn) account(addr types.Address) (*Account, error) {
	if acct, ok := txn.accounts[addr]; ok {
		return acct, nil
	}

	acct, err := txn.ld.loadAccount(addr)
	if err != nil {
		return nil, err
	}
	txn.accounts[addr] = acct
	return acct, nil
}

// peekAccount reads without staging.
func (txn *Txn) peekAccount(addr types.Address) (*Account, error) {
	if acct, ok := txn.accounts[addr]; ok {
		return acct, nil
	}
	return txn.ld.loadAccount(addr)
}

func (txn *Txn) globalRate() (*big.Int, error) {
	if txn.rate != nil {
		return helper.BigCopy(txn.rate), nil
	}
	return txn.ld.loadGlobalRate()
}

func (txn *Txn) addSupply(delta *big.Int) error {
	if err := txn.loadSupply(); err != nil {
		return err
	}
	txn.supply.Add(txn.supply, delta)
	return nil
}

func (txn *Txn) subSupply(delta *big.Int) error {
	if err := txn.loadSupply(); err != nil {
		return err
	}
	txn.supply.Sub(txn.supply, delta)
	return nil
}

func (txn *Txn) loadSupply() error {
	if txn.supply != nil {
		return nil
	}
	supply, err := txn.ld.loadSupply()
	if err != nil {
		return err
	}
	txn.supply = supply
	return nil
}

func (txn *Txn) emit(name string, payload interface{}) {
	txn.events = append(txn.events, stagedEvent{name: name, payload: payload})
}

func (txn *Txn) commit(batch *leveldb.Batch) error {
	for addr, acct := range txn.accounts {
		data, err := acct.Serialize()
		if err != nil {
			return err
		}
		batch.Put(store.CreateAccountKey(addr), data)
	}

	if txn.rate != nil {
		data, err := encodeBig(txn.rate)
		if err != nil {
			return err
		}
		batch.Put(store.CreateGlobalRateKey(), data)
	}

	if txn.supply != nil {
		data, err := encodeBig(txn.supply)
		if err != nil {
			return err
		}
		batch.Put(store.CreateSupplyKey(), data)
	}

	for _, stamp := range txn.history {
		data, err := encodeBig(stamp.Rate)
		if err != nil {
			return err
		}
		batch.Put(store.CreateRateHistoryKey(stamp.Timestamp), data)
	}

	return nil
}

func validAmount(amount *big.Int) bool {
	return amount != nil && amount.Sign() >= 0
}
