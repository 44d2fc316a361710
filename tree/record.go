package tree

import (
	"fmt"

	"caf/common"
)

// Record is one named entry of a tree: a blob, a subtree or a commit,
// referenced by hash.
type Record struct {
	Kind common.Kind
	Hash common.Hash
	Name string
}

// NewRecord returns a record of the given kind.
func NewRecord(kind common.Kind, hash common.Hash, name string) Record {
	return Record{Kind: kind, Hash: hash, Name: name}
}

func (r Record) String() string {
	return fmt.Sprintf("%s %s\t%s", r.Kind, r.Hash, r.Name)
}
