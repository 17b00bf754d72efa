package nodes

import (
	"fmt"
	"sort"

	"github.com/go-flo/flo"
	"github.com/go-flo/flo/errors"
)

// MedianCenter learns per-column medians in a single training phase and
// subtracts them during execution. It declines forking: an exact median
// requires all values in one place, so distributing its training phase would
// change the result. Flows train it locally via fallback instead.
type MedianCenter struct {
	trainState
	values [][]float64
	median []float64
}

// CreateMedianCenter returns a new untrained MedianCenter node
func CreateMedianCenter() *MedianCenter {
	return &MedianCenter{trainState: createTrainState(1)}
}

// Train collects per-column values from one chunk
func (n *MedianCenter) Train(chunk interface{}) error {
	if !n.IsTraining() {
		return fmt.Errorf("MedianCenter node is fully trained")
	}
	m, err := asMatrix(chunk)
	if err != nil {
		return err
	}
	for _, row := range m {
		if n.values == nil {
			n.values = make([][]float64, len(row))
		}
		if len(row) != len(n.values) {
			return fmt.Errorf("Row width %d does not match previous width %d", len(row), len(n.values))
		}
		for i, v := range row {
			n.values[i] = append(n.values[i], v)
		}
	}
	return nil
}

// StopTraining fixes the learned medians and closes the training phase
func (n *MedianCenter) StopTraining() error {
	if err := n.closePhase(); err != nil {
		return err
	}
	n.median = make([]float64, len(n.values))
	for i, column := range n.values {
		if len(column) == 0 {
			continue
		}
		sorted := append([]float64(nil), column...)
		sort.Float64s(sorted)
		mid := len(sorted) / 2
		if len(sorted)%2 == 0 {
			n.median[i] = (sorted[mid-1] + sorted[mid]) / 2
		} else {
			n.median[i] = sorted[mid]
		}
	}
	n.values = nil
	return nil
}

// Execute subtracts the learned medians from every row of a chunk
func (n *MedianCenter) Execute(chunk interface{}) (interface{}, error) {
	if n.IsTraining() {
		return nil, fmt.Errorf("MedianCenter node is still training")
	}
	m, err := asMatrix(chunk)
	if err != nil {
		return nil, err
	}
	out := make(flo.Matrix, len(m))
	for i, row := range m {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = v - n.median[j]
		}
	}
	return out, nil
}

// Fork declines parallelization for the training phase
func (n *MedianCenter) Fork() (flo.ParallelNode, error) {
	return nil, errors.NonParallelizableError{}
}

// Join merges another MedianCenter's collected values into this node
func (n *MedianCenter) Join(other flo.ParallelNode) error {
	o, ok := other.(*MedianCenter)
	if !ok {
		return fmt.Errorf("Cannot join %T into a MedianCenter node", other)
	}
	for i, column := range o.values {
		if n.values == nil {
			n.values = make([][]float64, len(o.values))
		}
		n.values[i] = append(n.values[i], column...)
	}
	return nil
}
