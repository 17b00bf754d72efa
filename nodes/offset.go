package nodes

import (
	"fmt"

	"github.com/go-flo/flo"
)

// Offset is a non-trainable pass-through node which adds a constant to every
// value during execution
type Offset struct {
	offset float64
}

// CreateOffset returns a new Offset node
func CreateOffset(offset float64) *Offset {
	return &Offset{offset: offset}
}

// Train returns an error - Offset nodes are not trainable
func (n *Offset) Train(chunk interface{}) error {
	return fmt.Errorf("Offset node is not trainable")
}

// Execute adds the configured offset to every value of a chunk
func (n *Offset) Execute(chunk interface{}) (interface{}, error) {
	m, err := asMatrix(chunk)
	if err != nil {
		return nil, err
	}
	out := make(flo.Matrix, len(m))
	for i, row := range m {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = v + n.offset
		}
	}
	return out, nil
}

// IsTraining always returns false
func (n *Offset) IsTraining() bool {
	return false
}

// CurrentTrainPhase always returns 0
func (n *Offset) CurrentTrainPhase() int {
	return 0
}

// RemainingTrainPhases always returns 0
func (n *Offset) RemainingTrainPhases() int {
	return 0
}

// StopTraining returns an error - Offset nodes have no training phase
func (n *Offset) StopTraining() error {
	return fmt.Errorf("Offset node is not trainable")
}
