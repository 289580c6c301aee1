package authority

import (
	"errors"
	"strings"
	"sync"

	"github.com/deckarep/golang-set"
	"github.com/inconshreveable/log15"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/rebaselabs/go-rebase/common/types"
	"github.com/rebaselabs/go-rebase/store"
)

// Capability is a bit flag in an account's grant record.
type Capability byte

const (
	CapMintBurn Capability = 1 << iota
	CapSetRate
)

var (
	ErrNotOwner    = errors.New("caller is not the owner")
	ErrNoOwner     = errors.New("owner not set")
	ErrZeroAddress = errors.New("zero address")
)

func (c Capability) String() string {
	var names []string
	if c&CapMintBurn != 0 {
		names = append(names, "mintBurn")
	}
	if c&CapSetRate != 0 {
		names = append(names, "setRate")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// Manager keeps the capability table: which address may mint and burn,
// who may lower the global rate, and who owns the right to change the
// table itself. Grants are durable in the store; the mapset mirrors let
// holders be listed without touching disk.
type Manager struct {
	store *store.Store

	owner  types.Address
	grants map[types.Address]Capability

	minters     mapset.Set
	rateSetters mapset.Set

	mutex sync.RWMutex
	log   log15.Logger
}

func NewManager(s *store.Store) (*Manager, error) {
	m := &Manager{
		store:       s,
		grants:      make(map[types.Address]Capability),
		minters:     mapset.NewSet(),
		rateSetters: mapset.NewSet(),
		log:         log15.New("module", "authority"),
	}
	if err := m.load(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) load() error {
	data, err := m.store.Get(store.CreateOwnerKey())
	if err != nil {
		return err
	}
	if len(data) > 0 {
		if err := m.owner.SetBytes(data); err != nil {
			return err
		}
	}

	iter := m.store.NewIterator(util.BytesPrefix([]byte{store.GrantKeyPrefix}))
	defer iter.Release()

	for iter.Next() {
		addr, err := types.BytesToAddress(iter.Key()[1:])
		if err != nil {
			return err
		}
		if len(iter.Value()) == 0 {
			continue
		}
		m.index(addr, Capability(iter.Value()[0]))
	}
	return iter.Error()
}

// InitOwner sets the owner on first start. An owner already on disk wins.
func (m *Manager) InitOwner(addr types.Address) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !m.owner.IsZero() {
		m.log.Info("owner already initialized", "owner", m.owner)
		return nil
	}
	if addr.IsZero() {
		return ErrZeroAddress
	}

	if err := m.putOwner(addr); err != nil {
		return err
	}
	m.owner = addr
	m.log.Info("owner initialized", "owner", addr)
	return nil
}

func (m *Manager) Owner() types.Address {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.owner
}

func (m *Manager) TransferOwnership(caller, newOwner types.Address) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if err := m.requireOwner(caller); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return ErrZeroAddress
	}

	if err := m.putOwner(newOwner); err != nil {
		return err
	}
	m.log.Info("ownership transferred", "from", caller, "to", newOwner)
	m.owner = newOwner
	return nil
}

// Grant adds caps to addr's grant record. Owner only.
func (m *Manager) Grant(caller, addr types.Address, caps Capability) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if err := m.requireOwner(caller); err != nil {
		return err
	}
	if addr.IsZero() {
		return ErrZeroAddress
	}

	next := m.grants[addr] | caps
	if err := m.putGrant(addr, next); err != nil {
		return err
	}
	m.index(addr, next)
	m.log.Info("capability granted", "address", addr, "caps", caps)
	return nil
}

// Revoke removes caps from addr's grant record. Owner only.
func (m *Manager) Revoke(caller, addr types.Address, caps Capability) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if err := m.requireOwner(caller); err != nil {
		return err
	}

	next := m.grants[addr] &^ caps
	if err := m.putGrant(addr, next); err != nil {
		return err
	}
	m.index(addr, next)
	m.log.Info("capability revoked", "address", addr, "caps", caps)
	return nil
}

// Check reports whether addr holds every capability in caps.
func (m *Manager) Check(addr types.Address, caps Capability) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.grants[addr]&caps == caps
}

// CanMintBurn reports whether addr holds the mint/burn capability. The
// owner gets no free pass here: even the vault is granted explicitly.
func (m *Manager) CanMintBurn(addr types.Address) bool {
	return m.Check(addr, CapMintBurn)
}

// CanSetRate reports whether addr may lower the global rate. The owner
// always may; anyone else needs an explicit grant.
func (m *Manager) CanSetRate(addr types.Address) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if !m.owner.IsZero() && addr == m.owner {
		return true
	}
	return m.grants[addr]&CapSetRate != 0
}

// Holders lists every address holding the given capability.
func (m *Manager) Holders(c Capability) []types.Address {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var set mapset.Set
	switch c {
	case CapMintBurn:
		set = m.minters
	case CapSetRate:
		set = m.rateSetters
	default:
		return nil
	}

	result := make([]types.Address, 0, set.Cardinality())
	for v := range set.Iterator().C {
		result = append(result, v.(types.Address))
	}
	return result
}

func (m *Manager) requireOwner(caller types.Address) error {
	if m.owner.IsZero() {
		return ErrNoOwner
	}
	if caller != m.owner {
		return ErrNotOwner
	}
	return nil
}

func (m *Manager) putOwner(addr types.Address) error {
	batch := m.store.NewBatch()
	batch.Put(store.CreateOwnerKey(), addr.Bytes())
	return m.store.Write(batch)
}

func (m *Manager) putGrant(addr types.Address, caps Capability) error {
	batch := m.store.NewBatch()
	if caps == 0 {
		batch.Delete(store.CreateGrantKey(addr))
	} else {
		batch.Put(store.CreateGrantKey(addr), []byte{byte(caps)})
	}
	return m.store.Write(batch)
}

func (m *Manager) index(addr types.Address, caps Capability) {
	if caps == 0 {
		delete(m.grants, addr)
	} else {
		m.grants[addr] = caps
	}

	if caps&CapMintBurn != 0 {
		m.minters.Add(addr)
	} else {
		m.minters.Remove(addr)
	}
	if caps&CapSetRate != 0 {
		m.rateSetters.Add(addr)
	} else {
		m.rateSetters.Remove(addr)
	}
}
