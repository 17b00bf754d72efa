package schedulers

import (
	"testing"

	"github.com/go-flo/flo/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPoolSchedulerRunsAllTasks(t *testing.T) {
	s := CreatePool(&PoolConf{NumWorkers: 4})
	defer s.Shutdown()
	require.Nil(t, s.AddTask(0.0, &doublingCallable{}))
	for i := 1; i < 20; i++ {
		require.Nil(t, s.AddTask(float64(i), nil))
	}

	results, err := s.GetResults()
	require.Nil(t, err)
	require.Equal(t, 20, len(results))
	sum := 0.0
	for _, result := range results {
		sum += result.(float64)
	}
	// 2 * (0 + 1 + ... + 19)
	require.Equal(t, 380.0, sum)
}

func TestPoolSchedulerOrderedResults(t *testing.T) {
	s := CreatePool(&PoolConf{NumWorkers: 8})
	defer s.Shutdown()
	s.SetResultContainer(CreateOrderedResultContainer())
	require.Nil(t, s.AddTask(0.0, &doublingCallable{}))
	for i := 1; i < 16; i++ {
		require.Nil(t, s.AddTask(float64(i), nil))
	}

	results, err := s.GetResults()
	require.Nil(t, err)
	require.Equal(t, 16, len(results))
	// submission order survives concurrent completion
	for i, result := range results {
		require.Equal(t, float64(i)*2, result.(float64))
	}
}

func TestPoolSchedulerAggregatesTaskErrors(t *testing.T) {
	s := CreatePool(&PoolConf{NumWorkers: 2})
	defer s.Shutdown()
	require.Nil(t, s.AddTask(1.0, &doublingCallable{fail: true}))
	require.Nil(t, s.AddTask(2.0, nil))

	_, err := s.GetResults()
	require.NotNil(t, err)

	// errors are drained along with results
	require.Nil(t, s.AddTask(3.0, &doublingCallable{}))
	results, err := s.GetResults()
	require.Nil(t, err)
	require.Equal(t, 1, len(results))
}

func TestPoolSchedulerShutdown(t *testing.T) {
	s := CreatePool(nil)
	require.Nil(t, s.Shutdown())
	require.Nil(t, s.Shutdown())
	err := s.AddTask(1.0, &doublingCallable{})
	require.IsType(t, errors.SchedulerShutdownError{}, err)
}

func TestPoolSchedulerWithoutCallable(t *testing.T) {
	s := CreatePool(nil)
	defer s.Shutdown()
	err := s.AddTask(1.0, nil)
	require.IsType(t, errors.MissingCallableError{}, err)
}

func TestPoolSchedulerIDsAreUnique(t *testing.T) {
	a := CreatePool(nil)
	b := CreatePool(nil)
	defer a.Shutdown()
	defer b.Shutdown()
	require.NotEqual(t, a.ID(), b.ID())
}
