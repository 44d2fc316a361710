package objectdb

import (
	"path/filepath"
	"strings"
	"testing"

	"caf/commit"
	"caf/common"
	"caf/tree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewMemDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDB_PutGet(t *testing.T) {
	db := newTestDB(t)

	pairs := map[string]string{
		"key1": "value1",
		"key2": "value2",
		"key3": "value3",
	}
	for k, v := range pairs {
		require.NoError(t, db.Put([]byte(k), []byte(v)))
	}
	for k, v := range pairs {
		got, err := db.Get([]byte(k))
		require.NoError(t, err)
		assert.Equal(t, v, string(got))
	}

	_, err := db.Get([]byte("nonexistent"))
	assert.ErrorIs(t, err, ErrNotFound)

	ranged, err := db.GetRange([]byte("key1"), []byte("key3"))
	require.NoError(t, err)
	assert.Len(t, ranged, 2)
	assert.Equal(t, "value1", string(ranged["key1"]))
}

func TestDB_BatchPut(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.BatchPut(map[string][]byte{"a": []byte("1"), "b": []byte("2")}))

	for _, key := range []string{"a", "b"} {
		ok, err := db.Has([]byte(key))
		require.NoError(t, err)
		assert.True(t, ok, key)
	}
}

func TestBatch(t *testing.T) {
	db := newTestDB(t)
	batch := NewBatch()

	blobHash := batch.PutBlob([]byte("hello"))
	assert.Equal(t, blobHash, batch.PutBlob([]byte("hello")))
	treeHash, err := batch.PutTree(tree.New(map[string]tree.Record{
		"hello.txt": tree.NewRecord(common.KindBlob, blobHash, ""),
	}))
	require.NoError(t, err)
	commitHash, err := batch.PutCommit(&commit.Commit{Tree: treeHash, Author: "Tester", Message: "m", Timestamp: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, batch.Len())

	ok, err := db.HasObject(blobHash)
	require.NoError(t, err)
	assert.False(t, ok, "staged objects are not visible before WriteBatch")

	require.NoError(t, db.WriteBatch(batch))
	content, err := db.GetBlob(blobHash)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
	loaded, err := db.GetTree(treeHash)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello.txt"}, loaded.Names())
	c, err := db.GetCommit(commitHash)
	require.NoError(t, err)
	assert.Equal(t, treeHash, c.Tree)

	direct, err := db.PutBlob([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, blobHash, direct)
	assert.NoError(t, db.WriteBatch(NewBatch()))
}

func TestFindObjects(t *testing.T) {
	db := newTestDB(t)

	first, err := common.HexToHash("abcd" + strings.Repeat("0", 60))
	require.NoError(t, err)
	second, err := common.HexToHash("abcd" + strings.Repeat("1", 60))
	require.NoError(t, err)
	for _, hash := range []common.Hash{first, second} {
		require.NoError(t, db.Put(hash.Bytes(), []byte{byte(common.KindCommit)}))
	}
	blob, err := db.PutBlob([]byte("content"))
	require.NoError(t, err)

	found, err := db.FindObjects("ABCD", common.KindCommit)
	require.NoError(t, err)
	assert.Equal(t, []common.Hash{first, second}, found)

	found, err = db.FindObjects("abcd", common.KindBlob)
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = db.ResolvePrefix("abcd", common.KindCommit)
	assert.ErrorIs(t, err, ErrAmbiguousPrefix)

	got, err := db.ResolvePrefix("abcd1", common.KindCommit)
	require.NoError(t, err)
	assert.Equal(t, second, got)

	got, err = db.ResolvePrefix(blob.String()[:8], common.KindBlob)
	require.NoError(t, err)
	assert.Equal(t, blob, got)

	_, err = db.ResolvePrefix("ffff", common.KindCommit)
	assert.ErrorIs(t, err, ErrNotFound)

	for _, prefix := range []string{"abc", "zzzz", strings.Repeat("a", 65)} {
		_, err = db.FindObjects(prefix, common.KindCommit)
		assert.Error(t, err, prefix)
	}
}

func TestDB_Objects(t *testing.T) {
	db := newTestDB(t)

	blobHash, err := db.PutBlob([]byte("hello"))
	require.NoError(t, err)
	again, err := db.PutBlob([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, blobHash, again)

	content, err := db.GetBlob(blobHash)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	tr := tree.New(map[string]tree.Record{
		"hello.txt": tree.NewRecord(common.KindBlob, blobHash, ""),
	})
	treeHash, err := db.PutTree(tr)
	require.NoError(t, err)
	want, err := tr.Hash()
	require.NoError(t, err)
	assert.Equal(t, want, treeHash)

	loaded, err := db.GetTree(treeHash)
	require.NoError(t, err)
	r, ok := loaded.Record("hello.txt")
	require.True(t, ok)
	assert.Equal(t, blobHash, r.Hash)

	c := &commit.Commit{Tree: treeHash, Author: "Tester", Message: "First commit", Timestamp: 1}
	commitHash, err := db.PutCommit(c)
	require.NoError(t, err)
	got, err := db.GetCommit(commitHash)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	ok, err = db.HasObject(commitHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDB_ObjectErrors(t *testing.T) {
	db := newTestDB(t)

	_, _, err := db.GetObject(common.HashObject(common.KindBlob, []byte("missing")))
	assert.ErrorIs(t, err, ErrNotFound)

	blobHash, err := db.PutBlob([]byte("not a tree"))
	require.NoError(t, err)
	_, err = db.GetTree(blobHash)
	assert.ErrorContains(t, err, "is a blob, not a tree")

	_, err = db.GetCommit(blobHash)
	assert.Error(t, err)
}

func TestNewDB_OnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "objects")

	db, err := NewDB(path, Options{BlockCacheMiB: 1, WriteBufferMiB: 1})
	require.NoError(t, err)
	hash, err := db.PutBlob([]byte("persisted"))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = NewDB(path, Options{})
	require.NoError(t, err)
	defer db.Close()
	content, err := db.GetBlob(hash)
	require.NoError(t, err)
	assert.Equal(t, "persisted", string(content))
}
