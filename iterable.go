package flo

// A ChunkIterator iterates over chunks of data from some source
type ChunkIterator interface {
	HasNextChunk() bool
	NextChunk() (interface{}, error)
}

// A ChunkIterable is a re-entrant producer of chunks: every call to Iterator
// must yield a fresh iteration over the same logical sequence of chunks.
// Multi-phase training replays a node's data once per phase, so supplying a
// single-use iterator (see datasource.FromIterator) to a multi-phase node is
// a caller bug which the coordinator reports with a specific diagnostic.
type ChunkIterable interface {
	Iterator() (ChunkIterator, error)
}
