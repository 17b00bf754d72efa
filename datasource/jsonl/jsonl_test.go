package jsonl

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-flo/flo"
	"github.com/pierrec/lz4"
	"github.com/stretchr/testify/require"
)

const fixture = "[1, 2]\n[3, 4]\n[5, 6]\n[7, 8]\n[9, 10]\n"

func writeFixture(t *testing.T, name string, compress bool) string {
	dir, err := ioutil.TempDir("", "jsonl")
	require.Nil(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.Nil(t, err)
	if compress {
		w := lz4.NewWriter(f)
		_, err = w.Write([]byte(fixture))
		require.Nil(t, err)
		require.Nil(t, w.Close())
	} else {
		_, err = f.Write([]byte(fixture))
		require.Nil(t, err)
	}
	require.Nil(t, f.Close())
	return path
}

func drain(t *testing.T, iterable flo.ChunkIterable) []flo.Matrix {
	it, err := iterable.Iterator()
	require.Nil(t, err)
	var chunks []flo.Matrix
	for it.HasNextChunk() {
		chunk, err := it.NextChunk()
		require.Nil(t, err)
		chunks = append(chunks, chunk.(flo.Matrix))
	}
	return chunks
}

func TestChunkIterableParsesRows(t *testing.T) {
	path := writeFixture(t, "data.jsonl", false)
	chunks := drain(t, CreateChunkIterable(path, &Conf{ChunkSize: 2}))
	require.Equal(t, 3, len(chunks))
	require.Equal(t, flo.Matrix{{1, 2}, {3, 4}}, chunks[0])
	require.Equal(t, flo.Matrix{{5, 6}, {7, 8}}, chunks[1])
	require.Equal(t, flo.Matrix{{9, 10}}, chunks[2])
}

func TestChunkIterableIsReplayable(t *testing.T) {
	path := writeFixture(t, "data.jsonl", false)
	iterable := CreateChunkIterable(path, &Conf{ChunkSize: 2})
	first := drain(t, iterable)
	second := drain(t, iterable)
	require.Equal(t, first, second)
}

func TestChunkIterableDecompressesLZ4(t *testing.T) {
	plain := writeFixture(t, "data.jsonl", false)
	compressed := writeFixture(t, "data.jsonl.lz4", true)
	expected := drain(t, CreateChunkIterable(plain, nil))
	actual := drain(t, CreateChunkIterable(compressed, nil))
	require.Equal(t, expected, actual)
}

func TestChunkIterableSkipsBlankLines(t *testing.T) {
	dir, err := ioutil.TempDir("", "jsonl")
	require.Nil(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	path := filepath.Join(dir, "data.jsonl")
	require.Nil(t, ioutil.WriteFile(path, []byte("[1]\n\n[2]\n"), 0644))

	chunks := drain(t, CreateChunkIterable(path, nil))
	require.Equal(t, 1, len(chunks))
	require.Equal(t, flo.Matrix{{1}, {2}}, chunks[0])
}

func TestChunkIterableRejectsNonArrayLines(t *testing.T) {
	dir, err := ioutil.TempDir("", "jsonl")
	require.Nil(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	path := filepath.Join(dir, "data.jsonl")
	require.Nil(t, ioutil.WriteFile(path, []byte("{\"a\": 1}\n"), 0644))

	it, err := CreateChunkIterable(path, nil).Iterator()
	require.Nil(t, err)
	require.True(t, it.HasNextChunk())
	_, err = it.NextChunk()
	require.NotNil(t, err)
}

func TestChunkIterableMissingFile(t *testing.T) {
	_, err := CreateChunkIterable("no/such/file.jsonl", nil).Iterator()
	require.NotNil(t, err)
}
