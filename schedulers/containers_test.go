package schedulers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListResultContainerArrivalOrder(t *testing.T) {
	c := CreateListResultContainer()
	require.Nil(t, c.AddResult("b", 1))
	require.Nil(t, c.AddResult("a", 0))
	require.Equal(t, []interface{}{"b", "a"}, c.GetResults())
	require.Equal(t, []interface{}{}, c.GetResults())
}

func TestOrderedResultContainerSubmissionOrder(t *testing.T) {
	c := CreateOrderedResultContainer()
	require.Nil(t, c.AddResult("c", 2))
	require.Nil(t, c.AddResult("a", 0))
	require.Nil(t, c.AddResult("b", 1))
	require.Equal(t, []interface{}{"a", "b", "c"}, c.GetResults())
	require.Equal(t, []interface{}{}, c.GetResults())
}

func TestSequenceIteration(t *testing.T) {
	first := CreateLocal()
	s := CreateSequence(first, nil)
	require.True(t, s.HasNextScheduler())
	require.Equal(t, first, s.NextScheduler())
	require.True(t, s.HasNextScheduler())
	require.Nil(t, s.NextScheduler())
	require.False(t, s.HasNextScheduler())
	require.Nil(t, s.NextScheduler())
}
