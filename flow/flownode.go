package flow

import (
	"github.com/go-flo/flo"
	"github.com/go-flo/flo/errors"
)

// A FlowNode wraps a Flow's node sequence so that the whole pipeline can be
// forked, joined and trained as a single unit during one training phase.
// Chunks fed to Train pass through the already-trained prefix before reaching
// the first in-training node. Forking deep-forks only the in-training node -
// the prefix is execute-only, and execution never mutates shared state, so
// prefix nodes are shared between clones.
//
// A FlowNode is transient: the coordinator creates a fresh one at the start
// of every training phase. It satisfies flo.ParallelNode, so it can also be
// embedded as a single node inside another Flow.
type FlowNode struct {
	nodes []flo.Node
}

// CreateFlowNode wraps the given Flow's nodes in a FlowNode
func CreateFlowNode(f *Flow) *FlowNode {
	nodes := make([]flo.Node, len(f.nodes))
	copy(nodes, f.nodes)
	return &FlowNode{nodes: nodes}
}

// trainingIndex returns the index of the first in-training node, or -1
func (fn *FlowNode) trainingIndex() int {
	for i, node := range fn.nodes {
		if node.IsTraining() {
			return i
		}
	}
	return -1
}

// TrainingNode returns the first node with an open or pending training
// phase, or nil if every node is fully trained
func (fn *FlowNode) TrainingNode() flo.Node {
	i := fn.trainingIndex()
	if i < 0 {
		return nil
	}
	return fn.nodes[i]
}

// IsTraining returns true iff any wrapped node still requires training
func (fn *FlowNode) IsTraining() bool {
	return fn.trainingIndex() >= 0
}

// CurrentTrainPhase returns the current phase of the in-training node
func (fn *FlowNode) CurrentTrainPhase() int {
	node := fn.TrainingNode()
	if node == nil {
		return 0
	}
	return node.CurrentTrainPhase()
}

// RemainingTrainPhases returns the total phases left across all wrapped nodes
func (fn *FlowNode) RemainingTrainPhases() int {
	remaining := 0
	for _, node := range fn.nodes {
		remaining += node.RemainingTrainPhases()
	}
	return remaining
}

// Train advances the in-training node by one chunk, propagating the chunk
// through the trained prefix first
func (fn *FlowNode) Train(chunk interface{}) error {
	i := fn.trainingIndex()
	if i < 0 {
		return nil
	}
	x := chunk
	for j := 0; j < i; j++ {
		var err error
		x, err = fn.nodes[j].Execute(x)
		if err != nil {
			return err
		}
	}
	return fn.nodes[i].Train(x)
}

// Execute runs one chunk through all wrapped nodes
func (fn *FlowNode) Execute(chunk interface{}) (interface{}, error) {
	x := chunk
	for _, node := range fn.nodes {
		var err error
		x, err = node.Execute(x)
		if err != nil {
			return nil, err
		}
	}
	return x, nil
}

// StopTraining closes the in-training node's current phase
func (fn *FlowNode) StopTraining() error {
	i := fn.trainingIndex()
	if i < 0 {
		return nil
	}
	return fn.nodes[i].StopTraining()
}

// Fork returns a FlowNode whose in-training node is an independently mutable
// clone. Returns errors.NonParallelizableError if the in-training node does
// not support forking, or declines it for its current phase.
func (fn *FlowNode) Fork() (flo.ParallelNode, error) {
	i := fn.trainingIndex()
	if i < 0 {
		return nil, errors.NonParallelizableError{}
	}
	parallel, ok := fn.nodes[i].(flo.ParallelNode)
	if !ok {
		return nil, errors.NonParallelizableError{}
	}
	clone, err := parallel.Fork()
	if err != nil {
		return nil, err
	}
	nodes := make([]flo.Node, len(fn.nodes))
	copy(nodes, fn.nodes)
	nodes[i] = clone
	return &FlowNode{nodes: nodes}, nil
}

// Join merges a forked clone's in-training node back into this FlowNode
func (fn *FlowNode) Join(other flo.ParallelNode) error {
	ofn, ok := other.(*FlowNode)
	if !ok {
		return errors.IncompatibleResultError{}
	}
	i := fn.trainingIndex()
	if i < 0 || ofn.trainingIndex() != i {
		return errors.IncompatibleResultError{}
	}
	parallel, ok := fn.nodes[i].(flo.ParallelNode)
	if !ok {
		return errors.NonParallelizableError{}
	}
	clone, ok := ofn.nodes[i].(flo.ParallelNode)
	if !ok {
		return errors.IncompatibleResultError{}
	}
	return parallel.Join(clone)
}
