package flow

import (
	"github.com/go-flo/flo"
)

// TrainOptions configures a parallel training run
type TrainOptions struct {
	// Scheduler executes training tasks for the whole run. If nil (and
	// Schedulers is nil), training runs sequentially in-process.
	Scheduler flo.Scheduler
	// Schedulers supplies one scheduler per trained node. After a node
	// finishes training, its scheduler is shut down and the next one is
	// pulled. Nil entries are legal and mean "train this node with an
	// inline scheduler". Mutually exclusive with Scheduler.
	Schedulers flo.SchedulerIterator
	// TrainCallable overrides the default training callable factory. Only
	// meaningful when a scheduler is supplied.
	TrainCallable TrainCallableFactory
	// KeepResultContainer leaves the scheduler's result container alone
	// instead of overwriting it with a NodeResultContainer
	KeepResultContainer bool
}

// ensureDefaultTrainOptions fills in default values for TrainOptions
func ensureDefaultTrainOptions(opts *TrainOptions) *TrainOptions {
	if opts == nil {
		opts = &TrainOptions{}
	}
	return opts
}

// ExecuteOptions configures a parallel execution run
type ExecuteOptions struct {
	// Scheduler executes tasks. If nil, execution runs sequentially
	// in-process.
	Scheduler flo.Scheduler
	// UpToNode is the 1-based index of the last node to execute. 0
	// executes the whole flow.
	UpToNode int
	// ExecuteCallable overrides the default execution callable factory.
	// Only meaningful when a scheduler is supplied.
	ExecuteCallable ExecuteCallableFactory
	// KeepResultContainer leaves the scheduler's result container alone
	// instead of overwriting it with an OrderedResultContainer
	KeepResultContainer bool
}

// ensureDefaultExecuteOptions fills in default values for ExecuteOptions
func ensureDefaultExecuteOptions(opts *ExecuteOptions) *ExecuteOptions {
	if opts == nil {
		opts = &ExecuteOptions{}
	}
	return opts
}
