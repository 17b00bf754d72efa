package errors

import (
	"fmt"
)

// TrainingUnderwayError occurs when training or execution is requested while parallel training is already underway
type TrainingUnderwayError struct{}

// Error returns a textual representation of this TrainingUnderwayError
func (e TrainingUnderwayError) Error() string {
	return "Parallel training is underway"
}

// ExecutionUnderwayError occurs when training or execution is requested while parallel execution is already underway
type ExecutionUnderwayError struct{}

// Error returns a textual representation of this ExecutionUnderwayError
func (e ExecutionUnderwayError) Error() string {
	return "Parallel execution is underway"
}

// NoTaskError occurs when a task is requested but none is buffered
type NoTaskError struct{}

// Error returns a textual representation of this NoTaskError
func (e NoTaskError) Error() string {
	return "No task available"
}

// NonParallelizableError signals that a Node declines forking for its current
// training phase. It is a control signal consumed by the coordinator to
// trigger local fallback training, and is never surfaced to callers.
type NonParallelizableError struct{}

// Error returns a textual representation of this NonParallelizableError
func (e NonParallelizableError) Error() string {
	return "Training phase is not parallelizable"
}

// EmptyIteratorError occurs when the training data iterator for a node yields no chunks on its first phase
type EmptyIteratorError struct{ NodeIndex int }

// Error returns a textual representation of this EmptyIteratorError
func (e EmptyIteratorError) Error() string {
	return fmt.Sprintf("Training data iterator for node %d is empty", e.NodeIndex)
}

// NonReplayableIterableError occurs when the training data for a node cannot be
// re-iterated for a phase after the first, which usually means a single-use
// iterator was supplied instead of a re-entrant iterable
type NonReplayableIterableError struct{ NodeIndex int }

// Error returns a textual representation of this NonReplayableIterableError
func (e NonReplayableIterableError) Error() string {
	return fmt.Sprintf("Training data for node %d could not be replayed for a later training phase - a single-use iterator was probably supplied instead of an iterable", e.NodeIndex)
}

// MissingIterableError occurs when no data iterable was supplied for a node which requires training
type MissingIterableError struct{ NodeIndex int }

// Error returns a textual representation of this MissingIterableError
func (e MissingIterableError) Error() string {
	return fmt.Sprintf("No training data iterable was supplied for node %d", e.NodeIndex)
}

// ExecutionIteratorEmptyError occurs when the execution data iterator yields no chunks
type ExecutionIteratorEmptyError struct{}

// Error returns a textual representation of this ExecutionIteratorEmptyError
func (e ExecutionIteratorEmptyError) Error() string {
	return "Execution data iterator is empty"
}

// NoResultsError occurs when a Scheduler yields no results for submitted tasks
type NoResultsError struct{}

// Error returns a textual representation of this NoResultsError
func (e NoResultsError) Error() string {
	return "Could not get any tasks or results for the current phase"
}

// CallableWithoutSchedulerError occurs when a custom callable factory is supplied without a scheduler, which would have no effect
type CallableWithoutSchedulerError struct{}

// Error returns a textual representation of this CallableWithoutSchedulerError
func (e CallableWithoutSchedulerError) Error() string {
	return "A callable factory was specified but no scheduler was given, so it has no effect"
}

// IterableCountError occurs when the number of training iterables does not match the number of nodes in a flow
type IterableCountError struct{ Expected, Actual int }

// Error returns a textual representation of this IterableCountError
func (e IterableCountError) Error() string {
	return fmt.Sprintf("Expected %d training iterables (one per node), got %d", e.Expected, e.Actual)
}

// CheckpointCountError occurs when more checkpoint functions than nodes are supplied
type CheckpointCountError struct{ Expected, Actual int }

// Error returns a textual representation of this CheckpointCountError
func (e CheckpointCountError) Error() string {
	return fmt.Sprintf("Expected at most %d checkpoint functions (one per node), got %d", e.Expected, e.Actual)
}

// IncompatibleResultError occurs when a result returned by a Scheduler is not of the type the coordinator expects for the current phase
type IncompatibleResultError struct{}

// Error returns a textual representation of this IncompatibleResultError
func (e IncompatibleResultError) Error() string {
	return "Result is not of the type expected for the current phase"
}

// NoMoreChunksError occurs when there are no more chunks in a ChunkIterator
type NoMoreChunksError struct{}

// Error returns a textual representation of this NoMoreChunksError
func (e NoMoreChunksError) Error() string {
	return "No more chunks"
}

// MissingCallableError occurs when a task is submitted to a Scheduler without a callable before any callable was dispatched
type MissingCallableError struct{}

// Error returns a textual representation of this MissingCallableError
func (e MissingCallableError) Error() string {
	return "Task submitted without a callable, and no callable was previously dispatched"
}

// SchedulersExhaustedError occurs when a SchedulerIterator runs out of schedulers before training completes
type SchedulersExhaustedError struct{}

// Error returns a textual representation of this SchedulersExhaustedError
func (e SchedulersExhaustedError) Error() string {
	return "Scheduler iterator was exhausted before training completed"
}

// SchedulerShutdownError occurs when a task is submitted to a Scheduler which has been shut down
type SchedulerShutdownError struct{}

// Error returns a textual representation of this SchedulerShutdownError
func (e SchedulerShutdownError) Error() string {
	return "Scheduler has been shut down"
}
