package flow

import (
	"log"

	"github.com/go-flo/flo"
	"github.com/go-flo/flo/errors"
	"github.com/go-flo/flo/schedulers"
	"github.com/go-flo/flo/stats"
	uuid "github.com/gofrs/uuid"
)

// A ParallelFlow decomposes training and execution into streams of
// independent, serializable tasks which an external Scheduler executes, and
// merges the partial results back into one consistent pipeline state.
//
// Nodes which do not satisfy flo.ParallelNode, or whose Fork declines with
// errors.NonParallelizableError, are trained locally without a scheduler
// round-trip. Parallel execution works for all nodes, since it only relies
// on execution being non-mutating.
//
// Both training and execution can be driven conveniently by supplying a
// scheduler to Train or Execute. Tasks can also be managed manually via
// SetupTraining (or SetupExecution), TaskAvailable, GetTask and UseResults -
// the driver methods show how the manual protocol fits together.
//
// A ParallelFlow is single-threaded cooperative: all its operations execute
// synchronously in the driver's control flow. Concurrency, if any, lives
// entirely inside the Scheduler.
type ParallelFlow struct {
	*Flow
	id string

	trainIterables []flo.ChunkIterable
	trainIterator  flo.ChunkIterator
	// index of the node currently accepting training tasks, -1 when no
	// training is underway
	iTrainNode    int
	flowNode      *FlowNode
	trainCallable TrainCallableFactory

	// live iterator for execution data - also signals whether parallel
	// execution is underway
	execIterator flo.ChunkIterator

	// one-task lookahead buffer - TaskAvailable means "buffer non-empty"
	nextTask *flo.Task

	runStats *stats.RunStatistics
}

// CreateParallel returns a new ParallelFlow over the given nodes
func CreateParallel(nodes ...flo.Node) *ParallelFlow {
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("failed to generate UUID: %v", err)
	}
	return &ParallelFlow{
		Flow:       Create(nodes...),
		id:         id.String(),
		iTrainNode: -1,
		runStats:   &stats.RunStatistics{},
	}
}

// ID returns the unique identifier of this ParallelFlow
func (pf *ParallelFlow) ID() string {
	return pf.id
}

// IsParallelTraining returns true iff parallel training is underway
func (pf *ParallelFlow) IsParallelTraining() bool {
	return pf.iTrainNode >= 0
}

// IsParallelExecuting returns true iff parallel execution is underway
func (pf *ParallelFlow) IsParallelExecuting() bool {
	return pf.execIterator != nil
}

// TrainingNodeIndex returns the index of the node currently accepting
// training tasks, or -1 when no training is underway. External drivers use
// index advancement to decide when to rotate schedulers.
func (pf *ParallelFlow) TrainingNodeIndex() int {
	return pf.iTrainNode
}

// TaskAvailable returns true iff GetTask would return a task. False during a
// run indicates that results are needed before more tasks can exist.
func (pf *ParallelFlow) TaskAvailable() bool {
	return pf.nextTask != nil
}

// Statistics returns the statistics tracker for this flow's runs
func (pf *ParallelFlow) Statistics() *stats.RunStatistics {
	return pf.runStats
}

// SetupTraining prepares the flow for handing out training tasks. After
// setup, pick up tasks with GetTask while TaskAvailable, run them on a
// scheduler, and feed the results back via UseResults. Training may require
// multiple phases, each closed by UseResults. A nil callable factory selects
// the default.
func (pf *ParallelFlow) SetupTraining(iterables []flo.ChunkIterable, callable TrainCallableFactory) error {
	if pf.IsParallelTraining() {
		return errors.TrainingUnderwayError{}
	}
	if pf.IsParallelExecuting() {
		return errors.ExecutionUnderwayError{}
	}
	if len(iterables) != pf.Len() {
		return errors.IterableCountError{Expected: pf.Len(), Actual: len(iterables)}
	}
	if callable == nil {
		callable = CreateTrainCallable
	}
	pf.trainCallable = callable
	pf.trainIterables = iterables
	pf.iTrainNode = 0
	pf.runStats.Start()
	return pf.nextTrainPhase()
}

// nextTrainPhase finds the next node and phase for parallel training and
// buffers the phase's first task. Nodes which cannot fork are trained
// locally, and the walk continues without a scheduler round-trip. When no
// trainable node remains, training transitions to its terminal state.
func (pf *ParallelFlow) nextTrainPhase() error {
	pf.flowNode = CreateFlowNode(pf.Flow)
	for pf.iTrainNode < pf.Len() {
		node := pf.Get(pf.iTrainNode)
		if !node.IsTraining() {
			pf.iTrainNode++
			continue
		}
		iterable := pf.trainIterables[pf.iTrainNode]
		if iterable == nil {
			return errors.MissingIterableError{NodeIndex: pf.iTrainNode}
		}
		forked, err := pf.flowNode.Fork()
		if err == nil {
			// fork succeeded, prepare the parallel phase
			pf.logger.Debugf("flow %s: starting parallel training phase %d of node %d", pf.id, node.CurrentTrainPhase(), pf.iTrainNode)
			pf.runStats.StartPhase(pf.iTrainNode, node.CurrentTrainPhase(), true)
			it, err := iterable.Iterator()
			if err != nil {
				return err
			}
			pf.trainIterator = it
			first, err := pf.createTrainTask()
			if err != nil {
				return err
			}
			if first == nil {
				return emptyIteratorError(pf.iTrainNode, node)
			}
			// the first task of the phase carries the callable
			pf.nextTask = &flo.Task{Chunk: first.Chunk, Callable: pf.trainCallable(forked.(*FlowNode))}
			pf.runStats.TaskProduced()
			return nil
		}
		if _, notParallel := err.(errors.NonParallelizableError); !notParallel {
			return err
		}
		// fork declined - train this phase locally
		pf.logger.Debugf("flow %s: could not fork node %d, starting local training phase %d", pf.id, pf.iTrainNode, node.CurrentTrainPhase())
		pf.runStats.StartPhase(pf.iTrainNode, node.CurrentTrainPhase(), false)
		if err := pf.localTrainPhase(iterable); err != nil {
			return err
		}
		if err := pf.flowNode.StopTraining(); err != nil {
			return err
		}
		if err := pf.afterStopTraining(node); err != nil {
			return err
		}
		pf.runStats.EndPhase()
		if !node.IsTraining() {
			pf.iTrainNode++
		}
	}
	// training is finished
	pf.iTrainNode = -1
	pf.trainIterator = nil
	pf.runStats.Finish()
	pf.logger.Debugf("flow %s: parallel training complete", pf.id)
	return nil
}

// localTrainPhase performs a single training phase inline. The configured
// callable factory wraps the live FlowNode, so custom chunk preprocessing
// applies to local phases as well.
func (pf *ParallelFlow) localTrainPhase(iterable flo.ChunkIterable) error {
	node := pf.Get(pf.iTrainNode)
	callable := pf.trainCallable(pf.flowNode)
	it, err := iterable.Iterator()
	if err != nil {
		return err
	}
	empty := true
	for it.HasNextChunk() {
		chunk, err := it.NextChunk()
		if err != nil {
			return err
		}
		empty = false
		if _, err := callable.Call(chunk); err != nil {
			return err
		}
		pf.runStats.TaskProduced()
	}
	if empty {
		return emptyIteratorError(pf.iTrainNode, node)
	}
	return nil
}

// afterStopTraining runs the post-stop-training hook with no phase open
func (pf *ParallelFlow) afterStopTraining(node flo.Node) error {
	if pf.postStopTrainingHook == nil {
		return nil
	}
	return pf.postStopTrainingHook(pf.iTrainNode, node)
}

// createTrainTask pulls one chunk from the phase iterator and returns it as
// a task without a callable, or nil if the iterator is exhausted
func (pf *ParallelFlow) createTrainTask() (*flo.Task, error) {
	if pf.trainIterator == nil || !pf.trainIterator.HasNextChunk() {
		return nil, nil
	}
	chunk, err := pf.trainIterator.NextChunk()
	if err != nil {
		return nil, err
	}
	return &flo.Task{Chunk: chunk}, nil
}

// createExecuteTask pulls one chunk from the execution iterator and returns
// it as a task without a callable, or nil if the iterator is exhausted
func (pf *ParallelFlow) createExecuteTask() (*flo.Task, error) {
	if pf.execIterator == nil || !pf.execIterator.HasNextChunk() {
		return nil, nil
	}
	chunk, err := pf.execIterator.NextChunk()
	if err != nil {
		return nil, err
	}
	return &flo.Task{Chunk: chunk}, nil
}

// GetTask returns the buffered task and immediately refills the buffer from
// the current phase's data iterator. When the iterator is exhausted the
// buffer stays empty, signaling that accumulated tasks must be submitted and
// results fetched before more tasks can exist. Returns errors.NoTaskError if
// no task is buffered.
func (pf *ParallelFlow) GetTask() (flo.Task, error) {
	if pf.nextTask == nil {
		return flo.Task{}, errors.NoTaskError{}
	}
	task := *pf.nextTask
	var next *flo.Task
	var err error
	if pf.IsParallelTraining() {
		next, err = pf.createTrainTask()
		if next != nil {
			pf.runStats.TaskProduced()
		}
	} else if pf.IsParallelExecuting() {
		next, err = pf.createExecuteTask()
		if next != nil {
			pf.runStats.ExecTaskProduced()
		}
	} else {
		pf.nextTask = nil
		return flo.Task{}, errors.NoTaskError{}
	}
	if err != nil {
		return flo.Task{}, err
	}
	pf.nextTask = next
	return task, nil
}

// UseResults consumes the results of submitted tasks. During training this
// joins every partial result into the live node, closes the phase and starts
// the next one; results may arrive in any order, since Join is commutative.
// During execution this concatenates the ordered results into a single
// Matrix, resets to idle and returns the output.
func (pf *ParallelFlow) UseResults(results []interface{}) (interface{}, error) {
	if pf.IsParallelTraining() {
		node := pf.Get(pf.iTrainNode)
		parallel, ok := node.(flo.ParallelNode)
		if !ok {
			return nil, errors.NonParallelizableError{}
		}
		for _, result := range results {
			if result == nil {
				continue
			}
			clone, ok := result.(flo.ParallelNode)
			if !ok {
				return nil, errors.IncompatibleResultError{}
			}
			if err := parallel.Join(clone); err != nil {
				return nil, err
			}
			pf.runStats.ResultJoined()
		}
		pf.logger.Debugf("flow %s: finished parallel training phase of node %d", pf.id, pf.iTrainNode)
		if err := node.StopTraining(); err != nil {
			return nil, err
		}
		if err := pf.afterStopTraining(node); err != nil {
			return nil, err
		}
		pf.runStats.EndPhase()
		if !node.IsTraining() {
			pf.iTrainNode++
		}
		return nil, pf.nextTrainPhase()
	} else if pf.IsParallelExecuting() {
		pf.execIterator = nil
		pf.runStats.Finish()
		return concatenateResults(results)
	}
	return nil, nil
}

// SetupExecution prepares the flow for handing out execution tasks. Each
// task runs one input chunk through the whole pipeline (or a prefix ending
// at upToNode, 1-based, 0 meaning the whole flow). A nil callable factory
// selects the default.
func (pf *ParallelFlow) SetupExecution(iterable flo.ChunkIterable, upToNode int, callable ExecuteCallableFactory) error {
	if pf.IsParallelTraining() {
		return errors.TrainingUnderwayError{}
	}
	if pf.IsParallelExecuting() {
		return errors.ExecutionUnderwayError{}
	}
	if callable == nil {
		callable = CreateExecuteCallable
	}
	if iterable == nil {
		return errors.ExecutionIteratorEmptyError{}
	}
	it, err := iterable.Iterator()
	if err != nil {
		return err
	}
	pf.execIterator = it
	pf.runStats.Start()
	first, err := pf.createExecuteTask()
	if err != nil {
		return err
	}
	if first == nil {
		pf.execIterator = nil
		return errors.ExecutionIteratorEmptyError{}
	}
	// the first task of the run carries the callable
	pf.nextTask = &flo.Task{Chunk: first.Chunk, Callable: callable(pf.Flow, upToNode)}
	pf.runStats.ExecTaskProduced()
	return nil
}

// Train trains all trainable nodes in the flow. With no scheduler in the
// options, training runs sequentially in-process. With a scheduler (or a
// scheduler sequence), training tasks are dispatched for parallel execution
// and partial results are merged back phase by phase.
func (pf *ParallelFlow) Train(iterables []flo.ChunkIterable, opts *TrainOptions) error {
	opts = ensureDefaultTrainOptions(opts)
	if pf.IsParallelTraining() {
		return errors.TrainingUnderwayError{}
	}
	if opts.Scheduler == nil && opts.Schedulers == nil {
		if opts.TrainCallable != nil {
			return errors.CallableWithoutSchedulerError{}
		}
		return pf.Flow.Train(iterables)
	}
	if err := pf.SetupTraining(iterables, opts.TrainCallable); err != nil {
		return err
	}
	defer func() {
		// drop iterator references - they are not reusable across runs
		pf.trainIterables = nil
		pf.trainIterator = nil
	}()
	scheduler := opts.Scheduler
	rotating := opts.Schedulers != nil
	lastTrainedNode := pf.iTrainNode
	if rotating {
		var err error
		if scheduler, err = nextScheduler(opts.Schedulers); err != nil {
			return err
		}
		// dispose schedulers for nodes which were already fully trained
		// before this run started, counting one per advanced node index
		disposals := 0
		if pf.iTrainNode > 0 {
			disposals = pf.iTrainNode
		} else if pf.iTrainNode < 0 {
			// all nodes are already trained - the last scheduler is
			// shut down on the way out
			disposals = pf.Len() - 1
		}
		for i := 0; i < disposals; i++ {
			shutdownScheduler(scheduler)
			var err error
			if scheduler, err = nextScheduler(opts.Schedulers); err != nil {
				return err
			}
		}
		lastTrainedNode = pf.iTrainNode
		defer func() {
			shutdownScheduler(scheduler)
		}()
	}
	pf.ensureNodeResultContainer(scheduler, opts.KeepResultContainer)
	for pf.IsParallelTraining() {
		runScheduler := scheduler
		if runScheduler == nil {
			// a nil scheduler means "train this node locally"
			runScheduler = schedulers.CreateLocal()
			runScheduler.SetResultContainer(CreateNodeResultContainer())
		}
		for pf.TaskAvailable() {
			task, err := pf.GetTask()
			if err != nil {
				return err
			}
			if err := runScheduler.AddTask(task.Chunk, task.Callable); err != nil {
				return err
			}
		}
		results, err := runScheduler.GetResults()
		if err != nil {
			return err
		}
		if len(results) == 0 {
			return errors.NoResultsError{}
		}
		if _, err := pf.UseResults(results); err != nil {
			return err
		}
		// rotate schedulers, one disposal per advanced node index
		if rotating && pf.iTrainNode >= 0 && pf.iTrainNode > lastTrainedNode {
			for i := 0; i < pf.iTrainNode-lastTrainedNode; i++ {
				shutdownScheduler(scheduler)
				if scheduler, err = nextScheduler(opts.Schedulers); err != nil {
					return err
				}
			}
			lastTrainedNode = pf.iTrainNode
			pf.ensureNodeResultContainer(scheduler, opts.KeepResultContainer)
		}
	}
	return nil
}

// Execute runs every chunk of an iterable through the flow. With no
// scheduler in the options, execution runs sequentially in-process. The
// output preserves input order regardless of how the scheduler reorders
// completion.
func (pf *ParallelFlow) Execute(iterable flo.ChunkIterable, opts *ExecuteOptions) (interface{}, error) {
	opts = ensureDefaultExecuteOptions(opts)
	if pf.IsParallelTraining() {
		return nil, errors.TrainingUnderwayError{}
	}
	if opts.Scheduler == nil {
		if opts.ExecuteCallable != nil {
			return nil, errors.CallableWithoutSchedulerError{}
		}
		return pf.Flow.ExecuteAll(iterable, opts.UpToNode)
	}
	if !opts.KeepResultContainer {
		if _, ok := opts.Scheduler.ResultContainer().(*schedulers.OrderedResultContainer); !ok {
			opts.Scheduler.SetResultContainer(schedulers.CreateOrderedResultContainer())
		}
	}
	if err := pf.SetupExecution(iterable, opts.UpToNode, opts.ExecuteCallable); err != nil {
		return nil, err
	}
	defer func() {
		pf.execIterator = nil
	}()
	for pf.TaskAvailable() {
		task, err := pf.GetTask()
		if err != nil {
			return nil, err
		}
		if err := opts.Scheduler.AddTask(task.Chunk, task.Callable); err != nil {
			return nil, err
		}
	}
	results, err := opts.Scheduler.GetResults()
	if err != nil {
		return nil, err
	}
	return pf.UseResults(results)
}

// ensureNodeResultContainer overwrites a scheduler's result container with a
// NodeResultContainer, unless told to keep it
func (pf *ParallelFlow) ensureNodeResultContainer(scheduler flo.Scheduler, keep bool) {
	if scheduler == nil || keep {
		return
	}
	if _, ok := scheduler.ResultContainer().(*NodeResultContainer); !ok {
		scheduler.SetResultContainer(CreateNodeResultContainer())
	}
}

// nextScheduler pulls the next scheduler from an iterator
func nextScheduler(iter flo.SchedulerIterator) (flo.Scheduler, error) {
	if !iter.HasNextScheduler() {
		return nil, errors.SchedulersExhaustedError{}
	}
	return iter.NextScheduler(), nil
}

// shutdownScheduler shuts a scheduler down, tolerating nil entries
func shutdownScheduler(scheduler flo.Scheduler) {
	if scheduler != nil {
		if err := scheduler.Shutdown(); err != nil {
			log.Printf("scheduler shutdown failed: %v", err)
		}
	}
}
