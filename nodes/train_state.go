// Package nodes provides concrete pipeline nodes: simple incremental
// statistics over Matrix chunks. They double as reference implementations of
// the flo.Node and flo.ParallelNode contracts - in particular, their Join
// methods are commutative and associative, so partial training results can
// be merged in any arrival order.
package nodes

import (
	"fmt"

	"github.com/go-flo/flo"
)

// trainState tracks training phase progress for a node. Embed by value so
// forked clones carry an independent copy.
type trainState struct {
	totalPhases  int
	currentPhase int
}

func createTrainState(totalPhases int) trainState {
	return trainState{totalPhases: totalPhases}
}

// IsTraining returns true iff training phases remain
func (ts *trainState) IsTraining() bool {
	return ts.currentPhase < ts.totalPhases
}

// CurrentTrainPhase returns the zero-based index of the current phase
func (ts *trainState) CurrentTrainPhase() int {
	return ts.currentPhase
}

// RemainingTrainPhases returns the number of phases left, including the
// current one
func (ts *trainState) RemainingTrainPhases() int {
	return ts.totalPhases - ts.currentPhase
}

// closePhase marks the current phase as finished
func (ts *trainState) closePhase() error {
	if !ts.IsTraining() {
		return fmt.Errorf("Node is not training")
	}
	ts.currentPhase++
	return nil
}

// asMatrix asserts that a chunk is a flo.Matrix
func asMatrix(chunk interface{}) (flo.Matrix, error) {
	m, ok := chunk.(flo.Matrix)
	if !ok {
		return nil, fmt.Errorf("Chunk is not a flo.Matrix: %T", chunk)
	}
	return m, nil
}
