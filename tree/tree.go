// Package tree models a directory snapshot: an immutable set of records
// keyed by name. Records are kept in name order, which makes the encoded
// form, and therefore the hash, independent of how the tree was assembled.
package tree

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"caf/common"
	"caf/omap"

	"github.com/ethereum/go-ethereum/rlp"
)

// ErrMalformed is returned when an encoded tree cannot be decoded.
var ErrMalformed = errors.New("malformed tree")

type Tree struct {
	records *omap.Map[Record]
}

// New builds a tree from records keyed by name. The record's Name is set to
// its key.
func New(records map[string]Record) *Tree {
	named := make(map[string]Record, len(records))
	for name, r := range records {
		r.Name = name
		named[name] = r
	}
	return &Tree{records: omap.New(named)}
}

// Record looks up the record bound to name.
func (t *Tree) Record(name string) (Record, bool) {
	if t == nil {
		return Record{}, false
	}
	return t.records.Lookup(name)
}

// Records iterates the records in name order.
func (t *Tree) Records() iter.Seq2[string, Record] {
	if t == nil {
		return func(func(string, Record) bool) {}
	}
	return t.records.All()
}

func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return t.records.Len()
}

func (t *Tree) entries() []omap.Entry[Record] {
	if t == nil {
		return nil
	}
	return t.records.Entries()
}

func (t *Tree) Names() []string {
	if t == nil {
		return nil
	}
	return t.records.Keys()
}

// Encode serializes the tree as an RLP list of records in name order.
func (t *Tree) Encode() ([]byte, error) {
	list := make([]Record, 0, t.Len())
	for _, r := range t.Records() {
		list = append(list, r)
	}
	data, err := rlp.EncodeToBytes(list)
	if err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}
	return data, nil
}

// validName reports whether name can be a single path element.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, "/\x00")
}

// Decode parses data produced by Encode. Names must be strictly increasing
// single path elements and every record must carry a known kind.
func Decode(data []byte) (*Tree, error) {
	var list []Record
	if err := rlp.DecodeBytes(data, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	entries := make([]omap.Entry[Record], len(list))
	for i, r := range list {
		if !r.Kind.Valid() {
			return nil, fmt.Errorf("%w: record %q has %s", ErrMalformed, r.Name, r.Kind)
		}
		if !validName(r.Name) {
			return nil, fmt.Errorf("%w: invalid record name %q", ErrMalformed, r.Name)
		}
		if i > 0 && list[i-1].Name >= r.Name {
			return nil, fmt.Errorf("%w: record %q out of order", ErrMalformed, r.Name)
		}
		entries[i] = omap.Entry[Record]{Key: r.Name, Value: r}
	}
	records, err := omap.FromEntries(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &Tree{records: records}, nil
}

// Hash returns the object hash of the encoded tree.
func (t *Tree) Hash() (common.Hash, error) {
	data, err := t.Encode()
	if err != nil {
		return common.Hash{}, err
	}
	return common.HashObject(common.KindTree, data), nil
}
