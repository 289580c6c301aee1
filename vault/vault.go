package vault

import (
	"errors"
	"math/big"
	"sync"

	"github.com/inconshreveable/log15"
	"github.com/olebedev/emitter"

	"github.com/rebaselabs/go-rebase/common/helper"
	"github.com/rebaselabs/go-rebase/common/types"
	"github.com/rebaselabs/go-rebase/ledger"
)

var (
	ErrRedeemTransfer      = errors.New("redeem base transfer failed")
	ErrInvalidBaseAmount   = errors.New("invalid base amount")
	ErrInsufficientReserve = errors.New("insufficient base balance")
)

const eventChanSize = 32

// Ledger is the narrow capability surface the vault holds on the accrual
// ledger: mint, burn and balance queries, entered through one atomic unit
// of work so a failed step discards the whole call.
type Ledger interface {
	Update(fn func(txn *ledger.Txn) error) error
	BalanceOf(addr types.Address, at uint64) (*big.Int, error)
}

// BaseLedger is the base-asset custody collaborator. Transfer must move
// exactly amount or fail without side effects.
type BaseLedger interface {
	Transfer(from, to types.Address, amount *big.Int) error
	BalanceOf(addr types.Address) (*big.Int, error)
}

// Vault exchanges the base asset for ledger units 1:1 at deposit time and
// back at redemption. It owns an address that holds the base reserve and
// the mint/burn grant. One mutex serializes deposit against redeem, same
// discipline as the ledger itself.
type Vault struct {
	addr   types.Address
	ledger Ledger
	base   BaseLedger

	mu sync.Mutex

	events *emitter.Emitter
	log    log15.Logger
}

func New(addr types.Address, ld Ledger, base BaseLedger) *Vault {
	return &Vault{
		addr:   addr,
		ledger: ld,
		base:   base,
		events: emitter.New(eventChanSize),
		log:    log15.New("module", "vault"),
	}
}

func (v *Vault) Address() types.Address {
	return v.addr
}

// Reserve is the vault's current base-asset holding.
func (v *Vault) Reserve() (*big.Int, error) {
	return v.base.BalanceOf(v.addr)
}

// Deposit takes exactly amount of base asset from caller and mints the
// same amount of ledger units to it. If the mint fails the base asset is
// handed back, so a failed deposit never happened.
func (v *Vault) Deposit(caller types.Address, amount *big.Int, at uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.base.Transfer(caller, v.addr, amount); err != nil {
		return err
	}

	err := v.ledger.Update(func(txn *ledger.Txn) error {
		return txn.Mint(v.addr, caller, amount, at)
	})
	if err != nil {
		if cerr := v.base.Transfer(v.addr, caller, amount); cerr != nil {
			v.log.Crit("deposit compensation failed, base asset stranded in vault",
				"account", caller, "amount", amount, "err", cerr)
		}
		return err
	}

	v.events.Emit(DepositEventName, DepositEvent{Account: caller, Amount: helper.BigCopy(amount)})
	v.log.Info("deposit", "account", caller, "amount", amount)
	return nil
}

// Redeem burns up to requested ledger units from caller and hands back the
// same amount of base asset. The MaxAmount sentinel redeems the whole
// balance. The burn stays staged until the base transfer succeeds; if the
// hand-back fails the call fails with ErrRedeemTransfer and the caller's
// ledger balance is untouched.
func (v *Vault) Redeem(caller types.Address, requested *big.Int, at uint64) (*big.Int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	var redeemed *big.Int
	baseMoved := false

	err := v.ledger.Update(func(txn *ledger.Txn) error {
		burned, err := txn.Burn(v.addr, caller, requested, at)
		if err != nil {
			return err
		}
		redeemed = burned

		if terr := v.base.Transfer(v.addr, caller, burned); terr != nil {
			v.log.Warn("redeem base transfer failed, burn discarded",
				"account", caller, "amount", burned, "err", terr)
			return ErrRedeemTransfer
		}
		baseMoved = true
		return nil
	})
	if err != nil {
		if baseMoved {
			// the ledger commit itself failed after the base asset left;
			// pull it back so neither side of the exchange happened
			if cerr := v.base.Transfer(caller, v.addr, redeemed); cerr != nil {
				v.log.Crit("redeem compensation failed, base asset stranded at caller",
					"account", caller, "amount", redeemed, "err", cerr)
			}
		}
		return nil, err
	}

	v.events.Emit(RedeemEventName, RedeemEvent{Account: caller, Amount: redeemed})
	v.log.Info("redeem", "account", caller, "amount", redeemed)
	return redeemed, nil
}

// Events is the notification bus for deposit and redeem.
func (v *Vault) Events() *emitter.Emitter {
	return v.events
}
