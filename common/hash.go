package common

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

const (
	HashLength = 32
)

// Kind tags the payload of a stored object. It is part of the hashed bytes,
// so a blob and a tree with identical payloads get different hashes.
type Kind byte

const (
	KindBlob Kind = iota + 1
	KindTree
	KindCommit
)

func (k Kind) String() string {
	switch k {
	case KindBlob:
		return "blob"
	case KindTree:
		return "tree"
	case KindCommit:
		return "commit"
	}
	return fmt.Sprintf("kind(%d)", byte(k))
}

// Valid reports whether k is one of the known object kinds.
func (k Kind) Valid() bool {
	return k >= KindBlob && k <= KindCommit
}

type Hash [HashLength]byte

// HashObject returns the Keccak-256 of kind followed by payload.
func HashObject(kind Kind, payload []byte) Hash {
	return Hash(crypto.Keccak256Hash([]byte{byte(kind)}, payload))
}

// HexToHash parses a 64 character hex string, optionally prefixed with 0x.
func HexToHash(s string) (Hash, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if len(s) != HashLength*2 {
		return Hash{}, fmt.Errorf("invalid hash %q: want %d hex characters", s, HashLength*2)
	}
	data, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, fmt.Errorf("invalid hash %q: %w", s, err)
	}
	var h Hash
	copy(h[:], data)
	return h, nil
}

// BytesToHash copies data into a Hash. It fails unless len(data) is HashLength.
func BytesToHash(data []byte) (Hash, error) {
	if len(data) != HashLength {
		return Hash{}, fmt.Errorf("invalid hash length %d", len(data))
	}
	var h Hash
	copy(h[:], data)
	return h, nil
}

func (h Hash) Bytes() []byte {
	return h[:]
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) IsZero() bool {
	return h == Hash{}
}
