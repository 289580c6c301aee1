package store

import (
	"testing"

	"github.com/syndtr/goleveldb/leveldb/util"
	"gotest.tools/assert"

	"github.com/rebaselabs/go-rebase/common/types"
)

func TestStoreReadWrite(t *testing.T) {
	s := NewMemStore()
	defer s.Close()

	addr, err := types.CreateAddress()
	assert.NilError(t, err)

	key := CreateAccountKey(addr)

	value, err := s.Get(key)
	assert.NilError(t, err)
	assert.Assert(t, value == nil)

	batch := s.NewBatch()
	batch.Put(key, []byte("record"))
	assert.NilError(t, s.Write(batch))

	value, err = s.Get(key)
	assert.NilError(t, err)
	assert.DeepEqual(t, []byte("record"), value)

	has, err := s.Has(key)
	assert.NilError(t, err)
	assert.Assert(t, has)

	batch = s.NewBatch()
	batch.Delete(key)
	assert.NilError(t, s.Write(batch))

	value, err = s.Get(key)
	assert.NilError(t, err)
	assert.Assert(t, value == nil)
}

func TestStoreIterate(t *testing.T) {
	s := NewMemStore()
	defer s.Close()

	batch := s.NewBatch()
	for i := byte(0); i < 5; i++ {
		addr, _ := types.BytesToAddress(append(make([]byte, types.AddressSize-1), i))
		batch.Put(CreateAccountKey(addr), []byte{i})
	}
	batch.Put(CreateSupplyKey(), []byte{99})
	assert.NilError(t, s.Write(batch))

	iter := s.NewIterator(util.BytesPrefix([]byte{AccountKeyPrefix}))
	defer iter.Release()

	count := 0
	for iter.Next() {
		assert.Equal(t, AccountKeyPrefix, iter.Key()[0])
		count++
	}
	assert.NilError(t, iter.Error())
	assert.Equal(t, 5, count)
}

func TestRateHistoryKeyOrder(t *testing.T) {
	early := CreateRateHistoryKey(100)
	late := CreateRateHistoryKey(200)

	assert.Assert(t, string(early) < string(late))
	assert.Equal(t, uint64(100), BytesToUint64(early[1:]))
}
