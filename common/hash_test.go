package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashObject(t *testing.T) {
	a := HashObject(KindBlob, []byte("hello"))
	b := HashObject(KindBlob, []byte("hello"))
	c := HashObject(KindTree, []byte("hello"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c, "kind must be part of the hash")
	assert.False(t, a.IsZero())
	assert.Len(t, a.String(), HashLength*2)
}

func TestHexToHash(t *testing.T) {
	h := HashObject(KindCommit, []byte("x"))

	testCases := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "plain", in: h.String()},
		{name: "prefixed", in: "0x" + h.String()},
		{name: "trailing newline", in: h.String() + "\n"},
		{name: "short", in: strings.Repeat("a", 40), wantErr: true},
		{name: "not hex", in: strings.Repeat("z", 64), wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := HexToHash(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, h, got)
		})
	}
}

func TestBytesToHash(t *testing.T) {
	h := HashObject(KindBlob, nil)
	got, err := BytesToHash(h.Bytes())
	require.NoError(t, err)
	assert.Equal(t, h, got)

	_, err = BytesToHash([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "blob", KindBlob.String())
	assert.Equal(t, "tree", KindTree.String())
	assert.Equal(t, "commit", KindCommit.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}

func TestKind_Valid(t *testing.T) {
	for _, k := range []Kind{KindBlob, KindTree, KindCommit} {
		assert.True(t, k.Valid(), k.String())
	}
	for _, k := range []Kind{0, 4, 255} {
		assert.False(t, k.Valid(), k.String())
	}
}
