package schedulers

import (
	"github.com/go-flo/flo"
	"github.com/go-flo/flo/errors"
)

// Local is a pass-through scheduler which executes every task inline on
// AddTask. It is useful for tests, for debugging a pipeline without
// concurrency, and as the implicit scheduler for nil entries in a scheduler
// sequence.
type Local struct {
	container    flo.ResultContainer
	lastCallable flo.TaskCallable
	taskIndex    int
	shutdown     bool
}

// CreateLocal returns a new Local scheduler
func CreateLocal() *Local {
	return &Local{container: CreateListResultContainer()}
}

// AddTask executes one task inline. A nil callable forks the last non-nil
// callable dispatched to this scheduler.
func (s *Local) AddTask(chunk interface{}, callable flo.TaskCallable) error {
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
	if err := forked.SetupEnvironment(); err != nil {
		return err
	}
	result, err := forked.Call(chunk)
	if err != nil {
		return err
	}
	taskIndex := s.taskIndex
	s.taskIndex++
	return s.container.AddResult(result, taskIndex)
}

// GetResults drains the results of all tasks executed since the last drain
func (s *Local) GetResults() ([]interface{}, error) {
	s.taskIndex = 0
	return s.container.GetResults(), nil
}

// SetResultContainer replaces the container accumulating task results
func (s *Local) SetResultContainer(container flo.ResultContainer) {
	s.container = container
}

// ResultContainer returns the container accumulating task results
func (s *Local) ResultContainer() flo.ResultContainer {
	return s.container
}

// Shutdown marks this scheduler as unusable. Idempotent.
func (s *Local) Shutdown() error {
	s.shutdown = true
	return nil
}
