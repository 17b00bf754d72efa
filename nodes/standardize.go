package nodes

import (
	"fmt"
	"math"

	"github.com/go-flo/flo"
)

// Standardize learns per-column means and standard deviations over two
// sequential training phases, then z-scores rows during execution. Phase 0
// accumulates sums for the mean; phase 1 accumulates squared deviations from
// that mean, so the node's data source must be replayable. Fully
// parallelizable in both phases.
type Standardize struct {
	trainState
	sums   []float64
	count  float64
	sqSums []float64
	sqCnt  float64
	mean   []float64
	std    []float64
}

// CreateStandardize returns a new untrained Standardize node
func CreateStandardize() *Standardize {
	return &Standardize{trainState: createTrainState(2)}
}

// Train accumulates statistics for the current phase from one chunk
func (n *Standardize) Train(chunk interface{}) error {
	if !n.IsTraining() {
		return fmt.Errorf("Standardize node is fully trained")
	}
	m, err := asMatrix(chunk)
	if err != nil {
		return err
	}
	for _, row := range m {
		switch n.CurrentTrainPhase() {
		case 0:
			if n.sums == nil {
				n.sums = make([]float64, len(row))
			}
			for i, v := range row {
				n.sums[i] += v
			}
			n.count++
		default:
			if n.sqSums == nil {
				n.sqSums = make([]float64, len(row))
			}
			for i, v := range row {
				d := v - n.mean[i]
				n.sqSums[i] += d * d
			}
			n.sqCnt++
		}
	}
	return nil
}

// StopTraining closes the current phase, fixing the mean after phase 0 and
// the standard deviation after phase 1
func (n *Standardize) StopTraining() error {
	phase := n.CurrentTrainPhase()
	if err := n.closePhase(); err != nil {
		return err
	}
	if phase == 0 {
		n.mean = make([]float64, len(n.sums))
		if n.count > 0 {
			for i, sum := range n.sums {
				n.mean[i] = sum / n.count
			}
		}
		return nil
	}
	n.std = make([]float64, len(n.sqSums))
	for i, sq := range n.sqSums {
		if n.sqCnt > 0 {
			n.std[i] = math.Sqrt(sq / n.sqCnt)
		}
		if n.std[i] == 0 {
			n.std[i] = 1
		}
	}
	return nil
}

// Execute z-scores every row of a chunk using the learned statistics
func (n *Standardize) Execute(chunk interface{}) (interface{}, error) {
	if n.IsTraining() {
		return nil, fmt.Errorf("Standardize node is still training")
	}
	m, err := asMatrix(chunk)
	if err != nil {
		return nil, err
	}
	out := make(flo.Matrix, len(m))
	for i, row := range m {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = (v - n.mean[j]) / n.std[j]
		}
	}
	return out, nil
}

// Fork returns an independently mutable clone. The clone keeps the results
// of closed phases (the mean) but starts with empty accumulators, so it
// contributes exactly the statistics it sees to a later Join.
func (n *Standardize) Fork() (flo.ParallelNode, error) {
	clone := *n
	clone.sums = nil
	clone.count = 0
	clone.sqSums = nil
	clone.sqCnt = 0
	clone.mean = append([]float64(nil), n.mean...)
	clone.std = append([]float64(nil), n.std...)
	return &clone, nil
}

// Join merges a forked clone's accumulators for the current phase into this
// node. Commutative and associative.
func (n *Standardize) Join(other flo.ParallelNode) error {
	o, ok := other.(*Standardize)
	if !ok {
		return fmt.Errorf("Cannot join %T into a Standardize node", other)
	}
	if o.sums != nil {
		if n.sums == nil {
			n.sums = make([]float64, len(o.sums))
		}
		for i, sum := range o.sums {
			n.sums[i] += sum
		}
	}
	if o.sqSums != nil {
		if n.sqSums == nil {
			n.sqSums = make([]float64, len(o.sqSums))
		}
		for i, sq := range o.sqSums {
			n.sqSums[i] += sq
		}
	}
	n.count += o.count
	n.sqCnt += o.sqCnt
	return nil
}
