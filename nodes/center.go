package nodes

import (
	"fmt"

	"github.com/go-flo/flo"
)

// Center learns per-column means in a single training phase and subtracts
// them during execution. Fully parallelizable: forked clones accumulate
// independent sums which Join adds together.
type Center struct {
	trainState
	sums  []float64
	count float64
	mean  []float64
}

// CreateCenter returns a new untrained Center node
func CreateCenter() *Center {
	return &Center{trainState: createTrainState(1)}
}

// Train accumulates per-column sums from one chunk
func (n *Center) Train(chunk interface{}) error {
	if !n.IsTraining() {
		return fmt.Errorf("Center node is fully trained")
	}
	m, err := asMatrix(chunk)
	if err != nil {
		return err
	}
	for _, row := range m {
		if n.sums == nil {
			n.sums = make([]float64, len(row))
		}
		if len(row) != len(n.sums) {
			return fmt.Errorf("Row width %d does not match previous width %d", len(row), len(n.sums))
		}
		for i, v := range row {
			n.sums[i] += v
		}
		n.count++
	}
	return nil
}

// StopTraining fixes the learned mean and closes the training phase
func (n *Center) StopTraining() error {
	if err := n.closePhase(); err != nil {
		return err
	}
	n.mean = make([]float64, len(n.sums))
	if n.count > 0 {
		for i, sum := range n.sums {
			n.mean[i] = sum / n.count
		}
	}
	return nil
}

// Execute subtracts the learned mean from every row of a chunk
func (n *Center) Execute(chunk interface{}) (interface{}, error) {
	if n.IsTraining() {
		return nil, fmt.Errorf("Center node is still training")
	}
	m, err := asMatrix(chunk)
	if err != nil {
		return nil, err
	}
	out := make(flo.Matrix, len(m))
	for i, row := range m {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = v - n.mean[j]
		}
	}
	return out, nil
}

// Fork returns an independently mutable clone. The clone starts with empty
// accumulators, so it contributes exactly the sums it sees to a later Join.
func (n *Center) Fork() (flo.ParallelNode, error) {
	clone := *n
	clone.sums = nil
	clone.count = 0
	clone.mean = append([]float64(nil), n.mean...)
	return &clone, nil
}

// Join merges a forked clone's accumulated sums into this node. Commutative
// and associative.
func (n *Center) Join(other flo.ParallelNode) error {
	o, ok := other.(*Center)
	if !ok {
		return fmt.Errorf("Cannot join %T into a Center node", other)
	}
	if o.sums == nil {
		n.count += o.count
		return nil
	}
	if n.sums == nil {
		n.sums = make([]float64, len(o.sums))
	}
	if len(o.sums) != len(n.sums) {
		return fmt.Errorf("Cannot join Center nodes of different widths")
	}
	for i, sum := range o.sums {
		n.sums[i] += sum
	}
	n.count += o.count
	return nil
}
