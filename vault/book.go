package vault

import (
	"math/big"
	"sync"

	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"

	"github.com/rebaselabs/go-rebase/common/types"
	"github.com/rebaselabs/go-rebase/store"
)

// Book is the default base-asset custody backend: a plain balance table in
// the store. The daemon hands out genesis allocations through Credit and
// the vault moves reserve through Transfer. Anything implementing
// BaseLedger can replace it.
type Book struct {
	store *store.Store

	mu  sync.Mutex
	log log15.Logger
}

func NewBook(s *store.Store) *Book {
	return &Book{
		store: s,
		log:   log15.New("module", "vault/book"),
	}
}

func (b *Book) BalanceOf(addr types.Address) (*big.Int, error) {
	data, err := b.store.Get(store.CreateBaseBalanceKey(addr))
	if err != nil {
		return nil, errors.Wrap(err, "read base balance")
	}

	balance := new(big.Int)
	if len(data) > 0 {
		balance.SetBytes(data)
	}
	return balance, nil
}

// Transfer moves amount between two base accounts in one batch. It fails
// with ErrInsufficientReserve when from cannot cover amount.
func (b *Book) Transfer(from, to types.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidBaseAmount
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	src, err := b.BalanceOf(from)
	if err != nil {
		return err
	}
	if src.Cmp(amount) < 0 {
		return ErrInsufficientReserve
	}
	if from == to {
		return nil
	}

	dst, err := b.BalanceOf(to)
	if err != nil {
		return err
	}

	src.Sub(src, amount)
	dst.Add(dst, amount)

	batch := b.store.NewBatch()
	batch.Put(store.CreateBaseBalanceKey(from), src.Bytes())
	batch.Put(store.CreateBaseBalanceKey(to), dst.Bytes())
	if err := b.store.Write(batch); err != nil {
		return errors.Wrap(err, "write base transfer")
	}
	return nil
}

// Credit adds amount to addr out of thin air. Genesis allocations and
// reserve top-ups from external reward sources come in through here.
func (b *Book) Credit(addr types.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidBaseAmount
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	balance, err := b.BalanceOf(addr)
	if err != nil {
		return err
	}
	balance.Add(balance, amount)

	batch := b.store.NewBatch()
	batch.Put(store.CreateBaseBalanceKey(addr), balance.Bytes())
	if err := b.store.Write(batch); err != nil {
		return errors.Wrap(err, "write base credit")
	}

	b.log.Info("base credit", "address", addr, "amount", amount)
	return nil
}
