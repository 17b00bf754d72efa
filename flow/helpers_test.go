package flow

import (
	"github.com/go-flo/flo"
	"github.com/go-flo/flo/datasource/memory"
)

func iterableOf(chunks ...flo.Matrix) flo.ChunkIterable {
	return memory.CreateChunkIterable(chunks...)
}
