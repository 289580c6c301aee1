package store

import (
	"fmt"
	"os"

	"github.com/go-errors/errors"
	"github.com/inconshreveable/log15"
	"github.com/patrickmn/go-cache"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Store wraps a leveldb instance with a write-through record cache. All
// mutations go through batches so that a whole operation lands in one
// atomic write.
type Store struct {
	db    *leveldb.DB
	cache *cache.Cache

	dbDir string
	log   log15.Logger
}

func NewStore(dataDir string) (*Store, error) {
	db, err := leveldb.OpenFile(dataDir, nil)
	if err != nil {
		return nil, errors.New(fmt.Sprintf("open leveldb failed. %s, %s", dataDir, err.Error()))
	}

	return &Store{
		db:    db,
		cache: cache.New(cache.NoExpiration, cache.NoExpiration),
		dbDir: dataDir,
		log:   log15.New("module", "store"),
	}, nil
}

// NewMemStore is a memory-backed store for tests.
func NewMemStore() *Store {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		panic(err)
	}

	return &Store{
		db:    db,
		cache: cache.New(cache.NoExpiration, cache.NoExpiration),
		log:   log15.New("module", "store"),
	}
}

func (s *Store) NewBatch() *leveldb.Batch {
	return new(leveldb.Batch)
}

func (s *Store) Get(key []byte) ([]byte, error) {
	if value, ok := s.cache.Get(string(key)); ok {
		return value.([]byte), nil
	}

	value, err := s.db.Get(key, nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}

	s.cache.Set(string(key), value, cache.NoExpiration)
	return value, nil
}

func (s *Store) Has(key []byte) (bool, error) {
	if _, ok := s.cache.Get(string(key)); ok {
		return true, nil
	}
	return s.db.Has(key, nil)
}

// Write commits the batch to disk, then replays it into the cache so reads
// stay consistent without hitting leveldb.
func (s *Store) Write(batch *leveldb.Batch) error {
	if err := s.db.Write(batch, nil); err != nil {
		return errors.New(fmt.Sprintf("write batch failed. %s", err.Error()))
	}
	if err := batch.Replay(&cacheReplayer{cache: s.cache}); err != nil {
		s.log.Error("batch replay failed", "err", err)
	}
	return nil
}

func (s *Store) NewIterator(slice *util.Range) iterator.Iterator {
	return s.db.NewIterator(slice, nil)
}

func (s *Store) Close() error {
	s.cache.Flush()
	s.cache = nil
	return s.db.Close()
}

func (s *Store) Clean() error {
	if err := s.Close(); err != nil {
		return err
	}

	if s.dbDir != "" {
		if err := os.RemoveAll(s.dbDir); err != nil && err != os.ErrNotExist {
			return errors.New(fmt.Sprintf("remove %s failed. %s", s.dbDir, err.Error()))
		}
	}

	s.db = nil
	return nil
}

type cacheReplayer struct {
	cache *cache.Cache
}

func (r *cacheReplayer) Put(key, value []byte) {
	r.cache.Set(string(key), append([]byte(nil), value...), cache.NoExpiration)
}

func (r *cacheReplayer) Delete(key []byte) {
	r.cache.Delete(string(key))
}
