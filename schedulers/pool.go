package schedulers

import (
	"context"
	"log"
	"runtime"
	"sync"

	"github.com/go-flo/flo"
	"github.com/go-flo/flo/errors"
	"github.com/go-flo/flo/logging"
	uuid "github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/semaphore"
)

// PoolConf configures a Pool scheduler
type PoolConf struct {
	NumWorkers int // maximum number of tasks in flight. Defaults to runtime.NumCPU().
	LogLevel   int // log threshold for scheduler messages. Defaults to logging.InfoLevel.
}

// ensureDefaultPoolConfValues fills in default values for PoolConf
func ensureDefaultPoolConfValues(conf *PoolConf) *PoolConf {
	if conf == nil {
		conf = &PoolConf{}
	}
	if conf.NumWorkers == 0 {
		conf.NumWorkers = runtime.NumCPU()
	}
	if conf.LogLevel == 0 {
		conf.LogLevel = logging.InfoLevel
	}
	return conf
}

// Pool executes tasks on a bounded pool of goroutines. AddTask blocks once
// NumWorkers tasks are in flight. GetResults waits until every submitted
// task is accounted for, then drains the result container - task errors are
// aggregated and returned together.
type Pool struct {
	id            string
	conf          *PoolConf
	logger        *logging.Logger
	sem           *semaphore.Weighted
	wg            sync.WaitGroup
	container     flo.ResultContainer
	containerLock sync.Mutex
	lastCallable  flo.TaskCallable
	taskIndex     int
	errs          *multierror.Error
	errsLock      sync.Mutex
	shutdown      bool
}

// CreatePool returns a new Pool scheduler
func CreatePool(conf *PoolConf) *Pool {
	conf = ensureDefaultPoolConfValues(conf)
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("failed to generate UUID: %v", err)
	}
	return &Pool{
		id:        id.String(),
		conf:      conf,
		logger:    logging.CreateLogger(conf.LogLevel),
		sem:       semaphore.NewWeighted(int64(conf.NumWorkers)),
		container: CreateListResultContainer(),
	}
}

// ID returns the unique identifier of this scheduler
func (s *Pool) ID() string {
	return s.id
}

// AddTask submits one task for execution on the pool. A nil callable forks
// the last non-nil callable dispatched to this scheduler. Blocks while
// NumWorkers tasks are already in flight.
func (s *Pool) AddTask(chunk interface{}, callable flo.TaskCallable) error {
	if s.shutdown {
		return errors.SchedulerShutdownError{}
	}
	if callable != nil {
		s.lastCallable = callable
	}
	if s.lastCallable == nil {
		return errors.MissingCallableError{}
	}
	forked, err := s.lastCallable.Fork()
	if err != nil {
		return err
	}
	taskIndex := s.taskIndex
	s.taskIndex++
	if err := s.sem.Acquire(context.Background(), 1); err != nil {
		return err
	}
	s.wg.Add(1)
	s.logger.Tracef("pool scheduler %s: dispatching task %d", s.id, taskIndex)
	go func() {
		defer s.wg.Done()
		defer s.sem.Release(1)
		if err := forked.SetupEnvironment(); err != nil {
			s.recordError(err)
			return
		}
		result, err := forked.Call(chunk)
		if err != nil {
			s.recordError(err)
			return
		}
		s.containerLock.Lock()
		defer s.containerLock.Unlock()
		if err := s.container.AddResult(result, taskIndex); err != nil {
			s.recordError(err)
		}
	}()
	return nil
}

// GetResults blocks until all submitted tasks are accounted for, then drains
// their results. If any task failed, the aggregated error is returned and
// partial results are discarded.
func (s *Pool) GetResults() ([]interface{}, error) {
	s.wg.Wait()
	s.taskIndex = 0
	s.errsLock.Lock()
	errs := s.errs
	s.errs = nil
	s.errsLock.Unlock()
	s.containerLock.Lock()
	defer s.containerLock.Unlock()
	results := s.container.GetResults()
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return results, nil
}

// SetResultContainer replaces the container accumulating task results
func (s *Pool) SetResultContainer(container flo.ResultContainer) {
	s.containerLock.Lock()
	defer s.containerLock.Unlock()
	s.container = container
}

// ResultContainer returns the container accumulating task results
func (s *Pool) ResultContainer() flo.ResultContainer {
	s.containerLock.Lock()
	defer s.containerLock.Unlock()
	return s.container
}

// Shutdown waits for in-flight tasks and marks this scheduler as unusable.
// Idempotent.
func (s *Pool) Shutdown() error {
	if s.shutdown {
		return nil
	}
	s.shutdown = true
	s.wg.Wait()
	s.logger.Infof("pool scheduler %s: shut down", s.id)
	return nil
}

// recordError aggregates a task error for the next GetResults
func (s *Pool) recordError(err error) {
	s.errsLock.Lock()
	defer s.errsLock.Unlock()
	s.errs = multierror.Append(s.errs, err)
}
