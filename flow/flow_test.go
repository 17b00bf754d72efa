package flow

import (
	"testing"

	"github.com/go-flo/flo"
	"github.com/go-flo/flo/datasource"
	"github.com/go-flo/flo/datasource/memory"
	"github.com/go-flo/flo/errors"
	"github.com/go-flo/flo/nodes"
	"github.com/stretchr/testify/require"
)

func TestFlowTrainAndExecute(t *testing.T) {
	f := Create(nodes.CreateCenter(), nodes.CreateOffset(100))
	data := memory.CreateChunkIterable(flo.Matrix{{1}, {3}}, flo.Matrix{{5}})
	err := f.Train([]flo.ChunkIterable{data, nil})
	require.Nil(t, err)
	require.False(t, f.Get(0).IsTraining())

	// mean is 3, offset adds 100
	out, err := f.Execute(flo.Matrix{{3}}, 0)
	require.Nil(t, err)
	require.Equal(t, 100.0, out.(flo.Matrix)[0][0])
}

func TestFlowTrainsNodesOnPrefixOutput(t *testing.T) {
	// the second Center sees chunks already shifted by the first Offset
	f := Create(nodes.CreateOffset(10), nodes.CreateCenter())
	data := memory.CreateChunkIterable(flo.Matrix{{1}, {3}})
	err := f.Train([]flo.ChunkIterable{nil, data})
	require.Nil(t, err)

	// mean of {11, 13} is 12
	out, err := f.Execute(flo.Matrix{{2}}, 0)
	require.Nil(t, err)
	require.Equal(t, 0.0, out.(flo.Matrix)[0][0])
}

func TestFlowExecuteUpToNode(t *testing.T) {
	f := Create(nodes.CreateOffset(1), nodes.CreateOffset(10), nodes.CreateOffset(100))
	out, err := f.Execute(flo.Matrix{{0}}, 2)
	require.Nil(t, err)
	require.Equal(t, 11.0, out.(flo.Matrix)[0][0])

	out, err = f.Execute(flo.Matrix{{0}}, 0)
	require.Nil(t, err)
	require.Equal(t, 111.0, out.(flo.Matrix)[0][0])
}

func TestFlowExecuteAllConcatenatesInOrder(t *testing.T) {
	f := Create(nodes.CreateOffset(1))
	data := memory.CreateChunkIterable(flo.Matrix{{1}, {2}}, flo.Matrix{{3}})
	out, err := f.ExecuteAll(data, 0)
	require.Nil(t, err)
	require.Equal(t, flo.Matrix{{2}, {3}, {4}}, out)
}

func TestFlowTrainIterableCountMismatch(t *testing.T) {
	f := Create(nodes.CreateCenter(), nodes.CreateCenter())
	data := memory.CreateChunkIterable(flo.Matrix{{1}})
	err := f.Train([]flo.ChunkIterable{data})
	require.IsType(t, errors.IterableCountError{}, err)
}

func TestFlowTrainMissingIterable(t *testing.T) {
	f := Create(nodes.CreateCenter())
	err := f.Train([]flo.ChunkIterable{nil})
	require.IsType(t, errors.MissingIterableError{}, err)
	require.Equal(t, 0, err.(errors.MissingIterableError).NodeIndex)
}

func TestFlowTrainEmptyIterable(t *testing.T) {
	f := Create(nodes.CreateCenter())
	err := f.Train([]flo.ChunkIterable{memory.CreateChunkIterable()})
	require.IsType(t, errors.EmptyIteratorError{}, err)
}

func TestFlowTrainNonReplayableIterable(t *testing.T) {
	// a one-shot iterable satisfies phase 0 of a two-phase node, but its
	// replay for phase 1 is empty and must be reported as such
	f := Create(nodes.CreateStandardize())
	it, err := memory.CreateChunkIterable(flo.Matrix{{1}, {2}}).Iterator()
	require.Nil(t, err)
	err = f.Train([]flo.ChunkIterable{datasource.FromIterator(it)})
	require.IsType(t, errors.NonReplayableIterableError{}, err)
	require.Equal(t, 0, err.(errors.NonReplayableIterableError).NodeIndex)
}

func TestFlowExecuteAllEmptyIterable(t *testing.T) {
	f := Create(nodes.CreateOffset(1))
	_, err := f.ExecuteAll(memory.CreateChunkIterable(), 0)
	require.IsType(t, errors.ExecutionIteratorEmptyError{}, err)
	_, err = f.ExecuteAll(nil, 0)
	require.IsType(t, errors.ExecutionIteratorEmptyError{}, err)
}
