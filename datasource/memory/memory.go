// Package memory provides a replayable ChunkIterable over in-memory data.
package memory

import (
	"github.com/go-flo/flo"
	"github.com/go-flo/flo/errors"
)

// CreateChunkIterable returns a re-entrant ChunkIterable over the given
// chunks. Every call to Iterator yields a fresh iteration, so the result is
// suitable for multi-phase training.
func CreateChunkIterable(chunks ...flo.Matrix) flo.ChunkIterable {
	return &iterable{chunks: chunks}
}

// CreateChunkedIterable splits one Matrix into chunks of at most chunkRows
// rows and returns a re-entrant ChunkIterable over them
func CreateChunkedIterable(data flo.Matrix, chunkRows int) flo.ChunkIterable {
	if chunkRows <= 0 {
		chunkRows = len(data)
	}
	var chunks []flo.Matrix
	for start := 0; start < len(data); start += chunkRows {
		end := start + chunkRows
		if end > len(data) {
			end = len(data)
		}
		chunks = append(chunks, data[start:end])
	}
	return &iterable{chunks: chunks}
}

type iterable struct {
	chunks []flo.Matrix
}

func (m *iterable) Iterator() (flo.ChunkIterator, error) {
	return &iterator{chunks: m.chunks}, nil
}

type iterator struct {
	chunks []flo.Matrix
	next   int
}

func (it *iterator) HasNextChunk() bool {
	return it.next < len(it.chunks)
}

func (it *iterator) NextChunk() (interface{}, error) {
	if it.next >= len(it.chunks) {
		return nil, errors.NoMoreChunksError{}
	}
	chunk := it.chunks[it.next]
	it.next++
	return chunk, nil
}
