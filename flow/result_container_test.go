package flow

import (
	"testing"

	"github.com/go-flo/flo"
	"github.com/go-flo/flo/errors"
	"github.com/go-flo/flo/nodes"
	"github.com/stretchr/testify/require"
)

func TestNodeResultContainerJoinsIncrementally(t *testing.T) {
	c := CreateNodeResultContainer()

	for _, chunk := range []flo.Matrix{{{2}}, {{4}}, {{6}}} {
		clone := nodes.CreateCenter()
		require.Nil(t, clone.Train(chunk))
		require.Nil(t, c.AddResult(clone, 0))
	}

	results := c.GetResults()
	require.Equal(t, 1, len(results))
	merged := results[0].(*nodes.Center)
	require.Nil(t, merged.StopTraining())
	out, err := merged.Execute(flo.Matrix{{4}})
	require.Nil(t, err)
	require.Equal(t, 0.0, out.(flo.Matrix)[0][0])
}

func TestNodeResultContainerIgnoresNilResults(t *testing.T) {
	c := CreateNodeResultContainer()
	require.Nil(t, c.AddResult(nil, 0))
	require.Equal(t, 0, len(c.GetResults()))
}

func TestNodeResultContainerRejectsForeignResults(t *testing.T) {
	c := CreateNodeResultContainer()
	err := c.AddResult("not a node", 0)
	require.IsType(t, errors.IncompatibleResultError{}, err)
}

func TestNodeResultContainerDrains(t *testing.T) {
	c := CreateNodeResultContainer()
	require.Nil(t, c.AddResult(nodes.CreateCenter(), 0))
	require.Equal(t, 1, len(c.GetResults()))
	require.Equal(t, 0, len(c.GetResults()))
}
