package tree

import (
	"testing"

	"caf/common"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blob(content string) Record {
	return Record{Kind: common.KindBlob, Hash: common.HashObject(common.KindBlob, []byte(content))}
}

func TestNew_SetsNamesAndOrders(t *testing.T) {
	tr := New(map[string]Record{
		"src":       {Kind: common.KindTree, Hash: common.HashObject(common.KindTree, nil)},
		"README.md": blob("readme"),
		"main.go":   blob("package main"),
	})

	assert.Equal(t, []string{"README.md", "main.go", "src"}, tr.Names())
	for name, r := range tr.Records() {
		assert.Equal(t, name, r.Name)
	}

	r, ok := tr.Record("main.go")
	require.True(t, ok)
	assert.Equal(t, blob("package main").Hash, r.Hash)

	_, ok = tr.Record("missing")
	assert.False(t, ok)
}

func TestEncodeDecode(t *testing.T) {
	tr := New(map[string]Record{
		"b": blob("2"),
		"a": blob("1"),
		"c": {Kind: common.KindTree, Hash: common.HashObject(common.KindTree, []byte("sub"))},
	})

	data, err := tr.Encode()
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	if diff := cmp.Diff(tr.Names(), got.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	for name, want := range tr.Records() {
		r, ok := got.Record(name)
		require.True(t, ok, name)
		assert.Equal(t, want, r)
	}
}

func TestHash_IndependentOfConstruction(t *testing.T) {
	records := map[string]Record{}
	for _, name := range []string{"z", "m", "a", "k", "b"} {
		records[name] = blob(name)
	}

	want, err := New(records).Hash()
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		got, err := New(records).Hash()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	records["b"] = blob("changed")
	changed, err := New(records).Hash()
	require.NoError(t, err)
	assert.NotEqual(t, want, changed)
}

func TestDecode_Malformed(t *testing.T) {
	unsorted, err := rlp.EncodeToBytes([]Record{
		{Kind: common.KindBlob, Name: "b"},
		{Kind: common.KindBlob, Name: "a"},
	})
	require.NoError(t, err)
	duplicate, err := rlp.EncodeToBytes([]Record{
		{Kind: common.KindBlob, Name: "a"},
		{Kind: common.KindBlob, Name: "a"},
	})
	require.NoError(t, err)

	encode := func(records ...Record) []byte {
		data, err := rlp.EncodeToBytes(records)
		require.NoError(t, err)
		return data
	}

	testCases := []struct {
		name string
		data []byte
	}{
		{name: "garbage", data: []byte{0xff, 0x01}},
		{name: "unsorted", data: unsorted},
		{name: "duplicate", data: duplicate},
		{name: "unknown kind", data: encode(Record{Kind: 9, Name: "a"})},
		{name: "zero kind", data: encode(Record{Kind: 0, Name: "a"})},
		{name: "empty name", data: encode(Record{Kind: common.KindBlob, Name: ""})},
		{name: "dot", data: encode(Record{Kind: common.KindTree, Name: "."})},
		{name: "dot dot", data: encode(Record{Kind: common.KindTree, Name: ".."})},
		{name: "parent path", data: encode(Record{Kind: common.KindBlob, Name: "../x"})},
		{name: "nested path", data: encode(Record{Kind: common.KindBlob, Name: "a/b"})},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.data)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestDecode_AcceptsAllKinds(t *testing.T) {
	data, err := rlp.EncodeToBytes([]Record{
		{Kind: common.KindBlob, Name: ".hidden"},
		{Kind: common.KindCommit, Name: "module"},
		{Kind: common.KindTree, Name: "src"},
	})
	require.NoError(t, err)
	tr, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []string{".hidden", "module", "src"}, tr.Names())
}

func TestEmptyTree(t *testing.T) {
	var nilTree *Tree
	empty := New(nil)

	for _, tr := range []*Tree{nilTree, empty} {
		_, ok := tr.Record("anything")
		assert.False(t, ok)
		assert.Equal(t, 0, tr.Len())
	}

	data, err := empty.Encode()
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 0, decoded.Len())
}
