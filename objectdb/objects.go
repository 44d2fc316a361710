package objectdb

import (
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strings"

	"caf/commit"
	"caf/common"
	"caf/tree"

	"github.com/syndtr/goleveldb/leveldb/util"
)

// MinPrefixLength is the shortest hex prefix FindObjects accepts.
const MinPrefixLength = 4

// ErrAmbiguousPrefix is returned when a hex prefix matches several objects.
var ErrAmbiguousPrefix = errors.New("ambiguous object prefix")

// encodeObject returns the object hash and the stored record: the kind byte
// followed by the payload.
func encodeObject(kind common.Kind, payload []byte) (common.Hash, []byte) {
	value := make([]byte, 0, len(payload)+1)
	value = append(value, byte(kind))
	value = append(value, payload...)
	return common.HashObject(kind, payload), value
}

// PutObject stores payload under its object hash. Storing the same object
// twice is a no-op.
func (d *DB) PutObject(kind common.Kind, payload []byte) (common.Hash, error) {
	hash, value := encodeObject(kind, payload)
	exists, err := d.Has(hash.Bytes())
	if err != nil {
		return common.Hash{}, fmt.Errorf("check %s %s: %w", kind, hash, err)
	}
	if exists {
		return hash, nil
	}
	if err := d.Put(hash.Bytes(), value); err != nil {
		return common.Hash{}, fmt.Errorf("store %s %s: %w", kind, hash, err)
	}
	d.logger.Debug().Stringer("kind", kind).Stringer("hash", hash).Int("size", len(payload)).Msg("object stored")
	return hash, nil
}

// GetObject loads an object and its kind.
func (d *DB) GetObject(hash common.Hash) (common.Kind, []byte, error) {
	value, err := d.Get(hash.Bytes())
	if err != nil {
		return 0, nil, fmt.Errorf("object %s: %w", hash, err)
	}
	if len(value) == 0 {
		return 0, nil, fmt.Errorf("object %s: empty record", hash)
	}
	return common.Kind(value[0]), value[1:], nil
}

func (d *DB) HasObject(hash common.Hash) (bool, error) {
	return d.Has(hash.Bytes())
}

func (d *DB) getKind(hash common.Hash, want common.Kind) ([]byte, error) {
	kind, payload, err := d.GetObject(hash)
	if err != nil {
		return nil, err
	}
	if kind != want {
		return nil, fmt.Errorf("object %s is a %s, not a %s", hash, kind, want)
	}
	return payload, nil
}

func (d *DB) PutBlob(content []byte) (common.Hash, error) {
	return d.PutObject(common.KindBlob, content)
}

func (d *DB) GetBlob(hash common.Hash) ([]byte, error) {
	return d.getKind(hash, common.KindBlob)
}

func (d *DB) PutTree(t *tree.Tree) (common.Hash, error) {
	data, err := t.Encode()
	if err != nil {
		return common.Hash{}, err
	}
	return d.PutObject(common.KindTree, data)
}

func (d *DB) GetTree(hash common.Hash) (*tree.Tree, error) {
	payload, err := d.getKind(hash, common.KindTree)
	if err != nil {
		return nil, err
	}
	return tree.Decode(payload)
}

func (d *DB) PutCommit(c *commit.Commit) (common.Hash, error) {
	data, err := c.Encode()
	if err != nil {
		return common.Hash{}, err
	}
	return d.PutObject(common.KindCommit, data)
}

func (d *DB) GetCommit(hash common.Hash) (*commit.Commit, error) {
	payload, err := d.getKind(hash, common.KindCommit)
	if err != nil {
		return nil, err
	}
	return commit.Decode(payload)
}

// FindObjects returns, in hash order, the objects of the given kind whose
// hex hash starts with prefix.
func (d *DB) FindObjects(prefix string, kind common.Kind) ([]common.Hash, error) {
	prefix = strings.ToLower(prefix)
	if len(prefix) < MinPrefixLength || len(prefix) > common.HashLength*2 {
		return nil, fmt.Errorf("prefix %q: want %d to %d hex characters", prefix, MinPrefixLength, common.HashLength*2)
	}
	start, err := hex.DecodeString(prefix[:len(prefix)&^1])
	if err != nil {
		return nil, fmt.Errorf("prefix %q: %w", prefix, err)
	}
	r := util.BytesPrefix(start)
	pairs, err := d.GetRange(r.Start, r.Limit)
	if err != nil {
		return nil, fmt.Errorf("scan prefix %q: %w", prefix, err)
	}

	var found []common.Hash
	for key, value := range pairs {
		if len(value) == 0 || common.Kind(value[0]) != kind {
			continue
		}
		hash, err := common.BytesToHash([]byte(key))
		if err != nil {
			continue
		}
		if strings.HasPrefix(hash.String(), prefix) {
			found = append(found, hash)
		}
	}
	slices.SortFunc(found, func(a, b common.Hash) int {
		return strings.Compare(a.String(), b.String())
	})
	return found, nil
}

// ResolvePrefix returns the single object of the given kind whose hex hash
// starts with prefix.
func (d *DB) ResolvePrefix(prefix string, kind common.Kind) (common.Hash, error) {
	found, err := d.FindObjects(prefix, kind)
	if err != nil {
		return common.Hash{}, err
	}
	switch len(found) {
	case 0:
		return common.Hash{}, fmt.Errorf("%s %s: %w", kind, prefix, ErrNotFound)
	case 1:
		return found[0], nil
	}
	return common.Hash{}, fmt.Errorf("%s %s matches %d objects: %w", kind, prefix, len(found), ErrAmbiguousPrefix)
}

// Batch stages objects in memory until WriteBatch stores them together.
type Batch struct {
	objects map[string][]byte
}

func NewBatch() *Batch {
	return &Batch{objects: make(map[string][]byte)}
}

// Put stages an object and returns its hash.
func (b *Batch) Put(kind common.Kind, payload []byte) common.Hash {
	hash, value := encodeObject(kind, payload)
	b.objects[string(hash.Bytes())] = value
	return hash
}

func (b *Batch) PutBlob(content []byte) common.Hash {
	return b.Put(common.KindBlob, content)
}

func (b *Batch) PutTree(t *tree.Tree) (common.Hash, error) {
	data, err := t.Encode()
	if err != nil {
		return common.Hash{}, err
	}
	return b.Put(common.KindTree, data), nil
}

func (b *Batch) PutCommit(c *commit.Commit) (common.Hash, error) {
	data, err := c.Encode()
	if err != nil {
		return common.Hash{}, err
	}
	return b.Put(common.KindCommit, data), nil
}

// Len returns the number of distinct staged objects.
func (b *Batch) Len() int {
	return len(b.objects)
}

// WriteBatch stores every staged object in one atomic LevelDB write.
func (d *DB) WriteBatch(b *Batch) error {
	if b.Len() == 0 {
		return nil
	}
	if err := d.BatchPut(b.objects); err != nil {
		return fmt.Errorf("write %d objects: %w", b.Len(), err)
	}
	d.logger.Debug().Int("objects", b.Len()).Msg("batch stored")
	return nil
}
