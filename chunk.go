package flo

// Matrix is the standard chunk payload: a slice of rows, each row a slice of
// float64 samples. Nodes are free to accept other chunk types (custom
// callables can preprocess arbitrary payloads), but execution results are
// concatenated as Matrices.
type Matrix [][]float64

// Copy returns a deep copy of this Matrix
func (m Matrix) Copy() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}
	return out
}
