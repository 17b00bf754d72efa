// Package flow implements Flo's pipeline coordinator: sequential training and
// execution of node pipelines, and the ParallelFlow state machine which
// decomposes both into streams of schedulable tasks.
package flow

import (
	"github.com/go-flo/flo"
	"github.com/go-flo/flo/errors"
	"github.com/go-flo/flo/logging"
)

// A Flow is an ordered sequence of Nodes. Node order never changes during a
// run. A Flow trains its nodes in sequence: chunks for node i are drawn from
// the i-th iterable and propagated through the already-trained prefix before
// being fed to node i's open training phase.
type Flow struct {
	nodes  []flo.Node
	logger *logging.Logger
	// postStopTrainingHook runs after a node closes a training phase,
	// while no phase is open. The checkpoint flow hangs off this.
	postStopTrainingHook func(nodeIndex int, node flo.Node) error
}

// Create returns a new Flow over the given nodes
func Create(nodes ...flo.Node) *Flow {
	return &Flow{
		nodes:  nodes,
		logger: logging.CreateLogger(logging.InfoLevel),
	}
}

// Len returns the number of nodes in this Flow
func (f *Flow) Len() int {
	return len(f.nodes)
}

// Get returns the node at the given index
func (f *Flow) Get(i int) flo.Node {
	return f.nodes[i]
}

// SetVerbose lowers the log threshold so phase transitions are logged
func (f *Flow) SetVerbose(verbose bool) {
	if verbose {
		f.logger = logging.CreateLogger(logging.DebugLevel)
	} else {
		f.logger = logging.CreateLogger(logging.InfoLevel)
	}
}

// Train trains all trainable nodes in sequence, one iterable per node. Nodes
// with multiple training phases replay their iterable once per phase, so the
// iterables must be re-entrant for such nodes.
func (f *Flow) Train(iterables []flo.ChunkIterable) error {
	if len(iterables) != len(f.nodes) {
		return errors.IterableCountError{Expected: len(f.nodes), Actual: len(iterables)}
	}
	for i, node := range f.nodes {
		for node.IsTraining() {
			if err := f.trainNodePhase(i, iterables[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// trainNodePhase runs one full training phase for the node at index i
func (f *Flow) trainNodePhase(i int, iterable flo.ChunkIterable) error {
	node := f.nodes[i]
	if iterable == nil {
		return errors.MissingIterableError{NodeIndex: i}
	}
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
		x, err := f.executePrefix(chunk, i)
		if err != nil {
			return err
		}
		if err := node.Train(x); err != nil {
			return err
		}
	}
	if empty {
		return emptyIteratorError(i, node)
	}
	f.logger.Debugf("finished training phase %d of node %d", node.CurrentTrainPhase(), i)
	if err := node.StopTraining(); err != nil {
		return err
	}
	if f.postStopTrainingHook != nil {
		if err := f.postStopTrainingHook(i, node); err != nil {
			return err
		}
	}
	return nil
}

// executePrefix runs a chunk through the nodes before index upTo
func (f *Flow) executePrefix(chunk interface{}, upTo int) (interface{}, error) {
	x := chunk
	for j := 0; j < upTo; j++ {
		var err error
		x, err = f.nodes[j].Execute(x)
		if err != nil {
			return nil, err
		}
	}
	return x, nil
}

// Execute runs one chunk through the flow. upToNode is the 1-based index of
// the last node to execute - 0 executes the whole flow.
func (f *Flow) Execute(chunk interface{}, upToNode int) (interface{}, error) {
	last := len(f.nodes)
	if upToNode > 0 && upToNode < last {
		last = upToNode
	}
	return f.executePrefix(chunk, last)
}

// ExecuteAll runs every chunk of an iterable through the flow and
// concatenates the outputs into a single Matrix
func (f *Flow) ExecuteAll(iterable flo.ChunkIterable, upToNode int) (interface{}, error) {
	if iterable == nil {
		return nil, errors.ExecutionIteratorEmptyError{}
	}
	it, err := iterable.Iterator()
	if err != nil {
		return nil, err
	}
	var results []interface{}
	for it.HasNextChunk() {
		chunk, err := it.NextChunk()
		if err != nil {
			return nil, err
		}
		out, err := f.Execute(chunk, upToNode)
		if err != nil {
			return nil, err
		}
		results = append(results, out)
	}
	if len(results) == 0 {
		return nil, errors.ExecutionIteratorEmptyError{}
	}
	return concatenateResults(results)
}

// emptyIteratorError distinguishes an empty data source on a node's first
// phase from a source which could not be replayed for a later phase
func emptyIteratorError(i int, node flo.Node) error {
	if node.CurrentTrainPhase() > 0 {
		return errors.NonReplayableIterableError{NodeIndex: i}
	}
	return errors.EmptyIteratorError{NodeIndex: i}
}

// concatenateResults joins execution results into one Matrix, preserving order
func concatenateResults(results []interface{}) (flo.Matrix, error) {
	out := flo.Matrix{}
	for _, result := range results {
		m, ok := result.(flo.Matrix)
		if !ok {
			return nil, errors.IncompatibleResultError{}
		}
		out = append(out, m...)
	}
	return out, nil
}
