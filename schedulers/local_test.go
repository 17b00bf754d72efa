package schedulers

import (
	"fmt"
	"testing"

	"github.com/go-flo/flo"
	"github.com/go-flo/flo/errors"
	"github.com/stretchr/testify/require"
)

// doublingCallable doubles float64 chunks. Fork counts how often the
// scheduler forked it.
type doublingCallable struct {
	forks *int
	setup *int
	fail  bool
}

func (c *doublingCallable) SetupEnvironment() error {
	if c.setup != nil {
		*c.setup++
	}
	return nil
}

func (c *doublingCallable) Call(chunk interface{}) (interface{}, error) {
	if c.fail {
		return nil, fmt.Errorf("task failed")
	}
	return chunk.(float64) * 2, nil
}

func (c *doublingCallable) Fork() (flo.TaskCallable, error) {
	if c.forks != nil {
		*c.forks++
	}
	return &doublingCallable{forks: c.forks, setup: c.setup, fail: c.fail}, nil
}

func TestLocalSchedulerRunsTasksInline(t *testing.T) {
	forks := 0
	setup := 0
	s := CreateLocal()
	require.Nil(t, s.AddTask(1.0, &doublingCallable{forks: &forks, setup: &setup}))
	require.Nil(t, s.AddTask(2.0, nil))
	require.Nil(t, s.AddTask(3.0, nil))

	results, err := s.GetResults()
	require.Nil(t, err)
	require.Equal(t, []interface{}{2.0, 4.0, 6.0}, results)
	// every task ran on a fresh fork with its environment set up
	require.Equal(t, 3, forks)
	require.Equal(t, 3, setup)
}

func TestLocalSchedulerWithoutCallable(t *testing.T) {
	s := CreateLocal()
	err := s.AddTask(1.0, nil)
	require.IsType(t, errors.MissingCallableError{}, err)
}

func TestLocalSchedulerDrainsBetweenRuns(t *testing.T) {
	s := CreateLocal()
	require.Nil(t, s.AddTask(1.0, &doublingCallable{}))
	results, err := s.GetResults()
	require.Nil(t, err)
	require.Equal(t, 1, len(results))

	results, err = s.GetResults()
	require.Nil(t, err)
	require.Equal(t, 0, len(results))
}

func TestLocalSchedulerShutdown(t *testing.T) {
	s := CreateLocal()
	require.Nil(t, s.Shutdown())
	require.Nil(t, s.Shutdown())
	err := s.AddTask(1.0, &doublingCallable{})
	require.IsType(t, errors.SchedulerShutdownError{}, err)
}

func TestLocalSchedulerResultContainerSwap(t *testing.T) {
	s := CreateLocal()
	container := CreateOrderedResultContainer()
	s.SetResultContainer(container)
	require.Equal(t, container, s.ResultContainer())
}
