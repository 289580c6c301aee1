package authority

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rebaselabs/go-rebase/common/types"
	"github.com/rebaselabs/go-rebase/store"
)

func mustAddress(t *testing.T) types.Address {
	addr, err := types.CreateAddress()
	assert.NoError(t, err)
	return addr
}

func newTestManager(t *testing.T) (*Manager, types.Address) {
	m, err := NewManager(store.NewMemStore())
	assert.NoError(t, err)

	owner := mustAddress(t)
	assert.NoError(t, m.InitOwner(owner))
	return m, owner
}

func TestInitOwner(t *testing.T) {
	m, owner := newTestManager(t)
	assert.Equal(t, owner, m.Owner())

	// a second init is a no-op, the stored owner wins
	other := mustAddress(t)
	assert.NoError(t, m.InitOwner(other))
	assert.Equal(t, owner, m.Owner())
}

func TestInitOwnerRejectsZero(t *testing.T) {
	m, err := NewManager(store.NewMemStore())
	assert.NoError(t, err)

	assert.Equal(t, ErrZeroAddress, m.InitOwner(types.ZERO_ADDRESS))
}

func TestGrantRequiresOwner(t *testing.T) {
	m, err := NewManager(store.NewMemStore())
	assert.NoError(t, err)

	caller := mustAddress(t)
	target := mustAddress(t)

	// nobody owns the table yet
	assert.Equal(t, ErrNoOwner, m.Grant(caller, target, CapMintBurn))

	assert.NoError(t, m.InitOwner(mustAddress(t)))
	assert.Equal(t, ErrNotOwner, m.Grant(caller, target, CapMintBurn))
}

func TestGrantAndCheck(t *testing.T) {
	m, owner := newTestManager(t)
	minter := mustAddress(t)

	assert.NoError(t, m.Grant(owner, minter, CapMintBurn))

	assert.True(t, m.CanMintBurn(minter))
	assert.False(t, m.CanSetRate(minter))
	assert.True(t, m.Check(minter, CapMintBurn))
	assert.False(t, m.Check(minter, CapMintBurn|CapSetRate))

	// the owner may always lower the rate but gets no free mint grant
	assert.True(t, m.CanSetRate(owner))
	assert.False(t, m.CanMintBurn(owner))
}

func TestRevoke(t *testing.T) {
	m, owner := newTestManager(t)
	holder := mustAddress(t)

	assert.NoError(t, m.Grant(owner, holder, CapMintBurn|CapSetRate))
	assert.NoError(t, m.Revoke(owner, holder, CapSetRate))

	assert.True(t, m.CanMintBurn(holder))
	assert.False(t, m.Check(holder, CapSetRate))

	assert.NoError(t, m.Revoke(owner, holder, CapMintBurn))
	assert.False(t, m.CanMintBurn(holder))
	assert.Empty(t, m.Holders(CapMintBurn))
}

func TestHolders(t *testing.T) {
	m, owner := newTestManager(t)
	a := mustAddress(t)
	b := mustAddress(t)

	assert.NoError(t, m.Grant(owner, a, CapMintBurn))
	assert.NoError(t, m.Grant(owner, b, CapMintBurn|CapSetRate))

	assert.ElementsMatch(t, []types.Address{a, b}, m.Holders(CapMintBurn))
	assert.ElementsMatch(t, []types.Address{b}, m.Holders(CapSetRate))
}

func TestTransferOwnership(t *testing.T) {
	m, owner := newTestManager(t)
	next := mustAddress(t)

	assert.Equal(t, ErrNotOwner, m.TransferOwnership(next, next))
	assert.Equal(t, ErrZeroAddress, m.TransferOwnership(owner, types.ZERO_ADDRESS))

	assert.NoError(t, m.TransferOwnership(owner, next))
	assert.Equal(t, next, m.Owner())

	// rate setting rides on ownership
	assert.True(t, m.CanSetRate(next))
	assert.False(t, m.CanSetRate(owner))
}

// Owner and grants must survive a reopen over the same store.
func TestManagerReload(t *testing.T) {
	s := store.NewMemStore()

	m, err := NewManager(s)
	assert.NoError(t, err)

	owner := mustAddress(t)
	minter := mustAddress(t)
	assert.NoError(t, m.InitOwner(owner))
	assert.NoError(t, m.Grant(owner, minter, CapMintBurn))

	reloaded, err := NewManager(s)
	assert.NoError(t, err)

	assert.Equal(t, owner, reloaded.Owner())
	assert.True(t, reloaded.CanMintBurn(minter))
	assert.ElementsMatch(t, []types.Address{minter}, reloaded.Holders(CapMintBurn))
}

func TestCapabilityString(t *testing.T) {
	assert.Equal(t, "mintBurn", CapMintBurn.String())
	assert.Equal(t, "setRate", CapSetRate.String())
	assert.Equal(t, "mintBurn|setRate", (CapMintBurn | CapSetRate).String())
	assert.Equal(t, "none", Capability(0).String())
}
