package ledger

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/inconshreveable/log15"
	"github.com/olebedev/emitter"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/rebaselabs/go-rebase/common/helper"
	"github.com/rebaselabs/go-rebase/common/types"
	"github.com/rebaselabs/go-rebase/store"
)

var (
	// Precision is the fixed-point scale for rates. A rate r grows a
	// principal p by p*r/Precision per second.
	Precision = helper.BigPow(10, 18)

	// MaxAmount is the caller-side sentinel for "everything available".
	MaxAmount = helper.Tt256m1
)

const eventChanSize = 32

// Authority answers the yes-or-no capability questions the ledger asks
// before running a restricted operation. Granting and revoking live
// elsewhere.
type Authority interface {
	CanMintBurn(addr types.Address) bool
	CanSetRate(addr types.Address) bool
}

// Ledger is the accrual engine. It owns every account record, the global
// rate and the settled supply, all durable in the store. Mutations run
// through Update so each operation lands as one batch or not at all.
//
// Execution is serialized by one lock. Throughput is not a concern here
// and a single writer keeps the all-or-nothing semantics trivial.
type Ledger struct {
	store *store.Store
	auth  Authority

	mu sync.RWMutex

	events *emitter.Emitter
	log    log15.Logger
}

func New(s *store.Store, auth Authority) *Ledger {
	return &Ledger{
		store:  s,
		auth:   auth,
		events: emitter.New(eventChanSize),
		log:    log15.New("module", "ledger"),
	}
}

// InitGlobalRate seeds the global rate on first start and stamps the first
// history entry. A rate already on disk wins, so restarting with a
// different configured rate changes nothing.
func (ld *Ledger) InitGlobalRate(rate *big.Int, at uint64) error {
	ld.mu.Lock()
	defer ld.mu.Unlock()

	has, err := ld.store.Has(store.CreateGlobalRateKey())
	if err != nil {
		return err
	}
	if has {
		ld.log.Info("global rate already initialized")
		return nil
	}

	if rate == nil || rate.Sign() < 0 {
		return ErrInvalidRate
	}

	data, err := encodeBig(rate)
	if err != nil {
		return err
	}

	batch := ld.store.NewBatch()
	batch.Put(store.CreateGlobalRateKey(), data)
	batch.Put(store.CreateRateHistoryKey(at), data)
	if err := ld.store.Write(batch); err != nil {
		return err
	}

	ld.log.Info("global rate initialized", "rate", rate, "at", at)
	return nil
}

// Update runs fn against a fresh transaction and commits the staged state
// as one batch. An error from fn discards everything: no store write, no
// events. Events fire only after the batch is durable.
func (ld *Ledger) Update(fn func(txn *Txn) error) error {
	ld.mu.Lock()
	defer ld.mu.Unlock()

	txn := newTxn(ld)
	if err := fn(txn); err != nil {
		return err
	}

	batch := ld.store.NewBatch()
	if err := txn.commit(batch); err != nil {
		return err
	}
	if err := ld.store.Write(batch); err != nil {
		return err
	}

	for _, ev := range txn.events {
		ld.events.Emit(ev.name, ev.payload)
	}
	return nil
}

// Mint credits amount to addr, restricted to mint/burn capability holders.
func (ld *Ledger) Mint(caller, addr types.Address, amount *big.Int, at uint64) error {
	return ld.Update(func(txn *Txn) error {
		return txn.Mint(caller, addr, amount, at)
	})
}

// Burn debits amount from addr and returns what was actually burned,
// which differs from amount when the MaxAmount sentinel was passed.
func (ld *Ledger) Burn(caller, addr types.Address, amount *big.Int, at uint64) (*big.Int, error) {
	var burned *big.Int
	err := ld.Update(func(txn *Txn) error {
		var err error
		burned, err = txn.Burn(caller, addr, amount, at)
		return err
	})
	if err != nil {
		return nil, err
	}
	return burned, nil
}

// Transfer moves amount between two accounts and returns what was actually
// moved.
func (ld *Ledger) Transfer(from, to types.Address, amount *big.Int, at uint64) (*big.Int, error) {
	var moved *big.Int
	err := ld.Update(func(txn *Txn) error {
		var err error
		moved, err = txn.Transfer(from, to, amount, at)
		return err
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// SetGlobalRate lowers the global rate. Raising or holding it fails.
func (ld *Ledger) SetGlobalRate(caller types.Address, newRate *big.Int, at uint64) error {
	return ld.Update(func(txn *Txn) error {
		return txn.SetGlobalRate(caller, newRate, at)
	})
}

// BalanceOf returns addr's balance at the given time, accrued interest
// included. Pure view: nothing is settled, nothing is written.
func (ld *Ledger) BalanceOf(addr types.Address, at uint64) (*big.Int, error) {
	ld.mu.RLock()
	defer ld.mu.RUnlock()

	acct, err := ld.loadAccount(addr)
	if err != nil {
		return nil, err
	}
	return acct.BalanceAt(at), nil
}

// GetAccount returns a copy of the stored record. An address never seen
// before reads as an empty account.
func (ld *Ledger) GetAccount(addr types.Address) (*Account, error) {
	ld.mu.RLock()
	defer ld.mu.RUnlock()
	return ld.loadAccount(addr)
}

func (ld *Ledger) PrincipalOf(addr types.Address) (*big.Int, error) {
	acct, err := ld.GetAccount(addr)
	if err != nil {
		return nil, err
	}
	return acct.Principal, nil
}

// AccountRate returns the personal rate locked in when addr last acquired
// units.
func (ld *Ledger) AccountRate(addr types.Address) (*big.Int, error) {
	acct, err := ld.GetAccount(addr)
	if err != nil {
		return nil, err
	}
	return acct.Rate, nil
}

func (ld *Ledger) LastSettled(addr types.Address) (uint64, error) {
	acct, err := ld.GetAccount(addr)
	if err != nil {
		return 0, err
	}
	return acct.LastSettled, nil
}

func (ld *Ledger) GlobalRate() (*big.Int, error) {
	ld.mu.RLock()
	defer ld.mu.RUnlock()
	return ld.loadGlobalRate()
}

// TotalSupply is the sum of all settled principals. Interest that has
// accrued but not yet been folded in is not counted.
func (ld *Ledger) TotalSupply() (*big.Int, error) {
	ld.mu.RLock()
	defer ld.mu.RUnlock()
	return ld.loadSupply()
}

// RateHistory returns every global rate the system has had, newest first.
func (ld *Ledger) RateHistory() ([]RateStamp, error) {
	ld.mu.RLock()
	defer ld.mu.RUnlock()

	iter := ld.store.NewIterator(util.BytesPrefix([]byte{store.RateHistoryKeyPrefix}))
	defer iter.Release()

	var stamps []RateStamp
	for ok := iter.Last(); ok; ok = iter.Prev() {
		rate, err := decodeBig(iter.Value())
		if err != nil {
			return nil, err
		}
		stamps = append(stamps, RateStamp{
			Timestamp: store.BytesToUint64(iter.Key()[1:]),
			Rate:      rate,
		})
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return stamps, nil
}

// IterateAccounts walks every stored account record. Returning false from
// the callback stops the walk.
func (ld *Ledger) IterateAccounts(iterateFunc func(addr types.Address, acct *Account) bool) error {
	ld.mu.RLock()
	defer ld.mu.RUnlock()

	iter := ld.store.NewIterator(util.BytesPrefix([]byte{store.AccountKeyPrefix}))
	defer iter.Release()

	for iter.Next() {
		addr, err := types.BytesToAddress(iter.Key()[1:])
		if err != nil {
			return err
		}

		acct := NewAccount()
		if err := acct.Deserialize(iter.Value()); err != nil {
			return err
		}

		if !iterateFunc(addr, acct) {
			break
		}
	}
	return iter.Error()
}

// Events is the notification bus. Topics are the *EventName constants;
// each event carries its payload struct as the single argument.
func (ld *Ledger) Events() *emitter.Emitter {
	return ld.events
}

func (ld *Ledger) loadAccount(addr types.Address) (*Account, error) {
	data, err := ld.store.Get(store.CreateAccountKey(addr))
	if err != nil {
		return nil, err
	}

	acct := NewAccount()
	if len(data) == 0 {
		return acct, nil
	}
	if err := acct.Deserialize(data); err != nil {
		return nil, err
	}
	return acct, nil
}

func (ld *Ledger) loadGlobalRate() (*big.Int, error) {
	data, err := ld.store.Get(store.CreateGlobalRateKey())
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrNotInitialized
	}
	return decodeBig(data)
}

func (ld *Ledger) loadSupply() (*big.Int, error) {
	data, err := ld.store.Get(store.CreateSupplyKey())
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return new(big.Int), nil
	}
	return decodeBig(data)
}

func encodeBig(v *big.Int) ([]byte, error) {
	return rlp.EncodeToBytes(v)
}

func decodeBig(data []byte) (*big.Int, error) {
	v := new(big.Int)
	if err := rlp.DecodeBytes(data, v); err != nil {
		return nil, err
	}
	return v, nil
}
