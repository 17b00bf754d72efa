package flow

import (
	"testing"

	"github.com/go-flo/flo"
	"github.com/go-flo/flo/errors"
	"github.com/go-flo/flo/nodes"
	"github.com/stretchr/testify/require"
)

func TestFlowNodeTrainPropagatesThroughPrefix(t *testing.T) {
	center := nodes.CreateCenter()
	require.Nil(t, center.Train(flo.Matrix{{0}, {20}}))
	require.Nil(t, center.StopTraining())
	trailing := nodes.CreateCenter()

	fn := CreateFlowNode(Create(center, trailing))
	require.True(t, fn.IsTraining())
	require.Equal(t, 1, fn.RemainingTrainPhases())

	// the trained Center subtracts its mean of 10 before the chunk
	// reaches the in-training node
	require.Nil(t, fn.Train(flo.Matrix{{12}, {14}}))
	require.Nil(t, fn.StopTraining())
	require.False(t, fn.IsTraining())

	out, err := trailing.Execute(flo.Matrix{{3}})
	require.Nil(t, err)
	require.Equal(t, 0.0, out.(flo.Matrix)[0][0])
}

func TestFlowNodeForkClonesOnlyTrainingNode(t *testing.T) {
	center := nodes.CreateCenter()
	fn := CreateFlowNode(Create(center))

	forked, err := fn.Fork()
	require.Nil(t, err)
	clone := forked.(*FlowNode)
	require.Nil(t, clone.Train(flo.Matrix{{2}, {4}}))

	// the live node has seen nothing until the clone is joined back
	require.Nil(t, fn.Join(clone))
	require.Nil(t, fn.StopTraining())
	require.False(t, center.IsTraining())

	out, err := center.Execute(flo.Matrix{{3}})
	require.Nil(t, err)
	require.Equal(t, 0.0, out.(flo.Matrix)[0][0])
}

func TestFlowNodeForkDeclinedByNode(t *testing.T) {
	fn := CreateFlowNode(Create(nodes.CreateMedianCenter()))
	_, err := fn.Fork()
	require.IsType(t, errors.NonParallelizableError{}, err)
}

func TestFlowNodeForkWithoutTrainingNode(t *testing.T) {
	fn := CreateFlowNode(Create(nodes.CreateOffset(1)))
	_, err := fn.Fork()
	require.IsType(t, errors.NonParallelizableError{}, err)
}

func TestFlowNodeNestsInsideAnotherFlow(t *testing.T) {
	// a FlowNode satisfies flo.ParallelNode, so a whole pipeline can be
	// trained as a single node of an outer flow
	inner := CreateFlowNode(Create(nodes.CreateOffset(1), nodes.CreateCenter()))
	var _ flo.ParallelNode = inner

	outer := Create(inner)
	require.Equal(t, 1, outer.Len())

	err := outer.Train([]flo.ChunkIterable{iterableOf(flo.Matrix{{1}, {3}})})
	require.Nil(t, err)
	require.False(t, inner.IsTraining())

	// inner offset shifts by 1, inner center subtracts the mean of {2, 4}
	out, err := outer.Execute(flo.Matrix{{2}}, 0)
	require.Nil(t, err)
	require.Equal(t, 0.0, out.(flo.Matrix)[0][0])
}

func TestFlowNodeJoinRejectsMismatchedProgress(t *testing.T) {
	fn := CreateFlowNode(Create(nodes.CreateCenter()))
	other := CreateFlowNode(Create(nodes.CreateCenter()))
	require.Nil(t, other.Train(flo.Matrix{{1}}))
	require.Nil(t, other.StopTraining())

	err := fn.Join(other)
	require.IsType(t, errors.IncompatibleResultError{}, err)
}
