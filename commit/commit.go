package commit

import (
	"fmt"
	"time"

	"caf/common"

	"github.com/ethereum/go-ethereum/rlp"
)

type Commit struct {
	Tree      common.Hash // root tree of the snapshot
	Parent    common.Hash // zero for the first commit
	Author    string
	Message   string
	Timestamp uint64 // unix seconds
}

// New returns a commit stamped with the current time.
func New(tree, parent common.Hash, author, message string) *Commit {
	return &Commit{
		Tree:      tree,
		Parent:    parent,
		Author:    author,
		Message:   message,
		Timestamp: uint64(time.Now().Unix()),
	}
}

func (c *Commit) IsRoot() bool {
	return c.Parent.IsZero()
}

func (c *Commit) Time() time.Time {
	return time.Unix(int64(c.Timestamp), 0)
}

func (c *Commit) Encode() ([]byte, error) {
	data, err := rlp.EncodeToBytes(c)
	if err != nil {
		return nil, fmt.Errorf("encode commit: %w", err)
	}
	return data, nil
}

func Decode(data []byte) (*Commit, error) {
	var c Commit
	if err := rlp.DecodeBytes(data, &c); err != nil {
		return nil, fmt.Errorf("decode commit: %w", err)
	}
	return &c, nil
}

func (c *Commit) Hash() (common.Hash, error) {
	data, err := c.Encode()
	if err != nil {
		return common.Hash{}, err
	}
	return common.HashObject(common.KindCommit, data), nil
}
