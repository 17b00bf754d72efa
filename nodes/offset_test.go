package nodes

import (
	"testing"

	"github.com/go-flo/flo"
	"github.com/stretchr/testify/require"
)

func TestOffsetIsNotTrainable(t *testing.T) {
	node := CreateOffset(1)
	require.False(t, node.IsTraining())
	require.Equal(t, 0, node.RemainingTrainPhases())
	require.NotNil(t, node.Train(flo.Matrix{{1}}))
	require.NotNil(t, node.StopTraining())
}

func TestOffsetExecute(t *testing.T) {
	node := CreateOffset(10)
	out, err := node.Execute(flo.Matrix{{1, 2}, {3, 4}})
	require.Nil(t, err)
	require.Equal(t, flo.Matrix{{11, 12}, {13, 14}}, out)
}
