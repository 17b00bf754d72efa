package flo

// A Scheduler executes Tasks, possibly concurrently, possibly on remote
// workers. The coordinator treats it as an opaque capability: it decides
// neither how tasks are ordered nor where they run. GetResults must block
// until all submitted tasks are accounted for - the coordinator treats an
// empty result set for pending work as fatal.
type Scheduler interface {
	// AddTask submits one task. A nil callable means "fork the last non-nil
	// callable dispatched to this Scheduler".
	AddTask(chunk interface{}, callable TaskCallable) error
	// GetResults drains and returns the results of all submitted tasks
	GetResults() ([]interface{}, error)
	// SetResultContainer replaces the container accumulating task results
	SetResultContainer(container ResultContainer)
	// ResultContainer returns the container accumulating task results
	ResultContainer() ResultContainer
	// Shutdown releases scheduler resources. Idempotent.
	Shutdown() error
}

// A SchedulerIterator produces one Scheduler per trained node, so that a
// multi-phase training run can rotate between scheduler instances. A nil
// Scheduler is legal and means "train this node locally".
type SchedulerIterator interface {
	HasNextScheduler() bool
	NextScheduler() Scheduler
}

// A ResultContainer accumulates partial results handed back by a Scheduler.
// Implementations are not required to be thread-safe - the Scheduler must
// serialize calls to AddResult.
type ResultContainer interface {
	AddResult(result interface{}, taskIndex int) error // AddResult stores the result of the task with the given submission index
	GetResults() []interface{}                         // GetResults drains this container
}
