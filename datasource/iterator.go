// Package datasource provides ChunkIterable implementations and adapters for
// feeding data into flows. Sub-packages supply concrete sources (in-memory
// matrices, JSONL files).
package datasource

import (
	"github.com/go-flo/flo"
	"github.com/go-flo/flo/errors"
)

// FromIterator adapts a single-use ChunkIterator to the ChunkIterable
// interface. The first call to Iterator yields the wrapped iterator; every
// later call yields an exhausted one. Suitable only for single-phase
// training or execution - a multi-phase node needs a genuinely re-entrant
// iterable, and the coordinator reports the replay failure with a specific
// diagnostic.
func FromIterator(it flo.ChunkIterator) flo.ChunkIterable {
	return &onceIterable{it: it}
}

type onceIterable struct {
	it   flo.ChunkIterator
	used bool
}

func (o *onceIterable) Iterator() (flo.ChunkIterator, error) {
	if o.used {
		return &emptyIterator{}, nil
	}
	o.used = true
	return o.it, nil
}

type emptyIterator struct{}

func (e *emptyIterator) HasNextChunk() bool {
	return false
}

func (e *emptyIterator) NextChunk() (interface{}, error) {
	return nil, errors.NoMoreChunksError{}
}
