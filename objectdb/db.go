package objectdb

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// ErrNotFound is returned when a key or object is not in the store.
var ErrNotFound = errors.New("not found")

// Options tunes the underlying LevelDB instance.
type Options struct {
	BlockCacheMiB  int
	WriteBufferMiB int
	Logger         *zerolog.Logger // nil discards logs
}

func (o Options) leveldb() *opt.Options {
	return &opt.Options{
		BlockCacheCapacity: o.BlockCacheMiB * opt.MiB,
		WriteBuffer:        o.WriteBufferMiB * opt.MiB,
	}
}

// DB wraps a LevelDB instance holding content-addressed objects.
type DB struct {
	db     *leveldb.DB
	logger zerolog.Logger
}

// NewDB opens (creating if needed) the store at path.
func NewDB(path string, options Options) (*DB, error) {
	db, err := leveldb.OpenFile(path, options.leveldb())
	if err != nil {
		return nil, fmt.Errorf("open object store %q: %w", path, err)
	}
	logger := zerolog.Nop()
	if options.Logger != nil {
		logger = *options.Logger
	}
	logger.Debug().Str("path", path).Msg("object store opened")
	return &DB{db: db, logger: logger}, nil
}

// NewMemDB returns a store kept entirely in memory.
func NewMemDB() (*DB, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("open memory store: %w", err)
	}
	return &DB{db: db, logger: zerolog.Nop()}, nil
}

func (d *DB) Put(key, value []byte) error {
	return d.db.Put(key, value, nil)
}

// Get returns ErrNotFound for a missing key.
func (d *DB) Get(key []byte) ([]byte, error) {
	value, err := d.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, fmt.Errorf("key %x: %w", key, ErrNotFound)
	}
	return value, err
}

func (d *DB) Has(key []byte) (bool, error) {
	return d.db.Has(key, nil)
}

func (d *DB) Close() error {
	return d.db.Close()
}

// GetRange returns the pairs with start <= key < limit.
func (d *DB) GetRange(start, limit []byte) (map[string][]byte, error) {
	iter := d.db.NewIterator(&util.Range{Start: start, Limit: limit}, nil)
	defer iter.Release()

	result := make(map[string][]byte)
	for iter.Next() {
		value := make([]byte, len(iter.Value()))
		copy(value, iter.Value())
		result[string(iter.Key())] = value
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return result, nil
}

// BatchPut writes all pairs atomically.
func (d *DB) BatchPut(kvs map[string][]byte) error {
	batch := new(leveldb.Batch)
	for k, v := range kvs {
		batch.Put([]byte(k), v)
	}
	return d.db.Write(batch, nil)
}
