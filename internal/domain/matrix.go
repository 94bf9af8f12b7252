package domain

import (
	"fmt"
	"math"
)

// Matrix is stored row-per-path: m[path][step]
type Matrix [][]float64

func NewMatrix(rows, cols int) Matrix {
	data := make([]float64, rows*cols)
	m := make(Matrix, rows)
	for i := range m {
		m[i] = data[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return m
}

func (m Matrix) Rows() int {
	return len(m)
}

func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Column copies the values at time index t for every path
func (m Matrix) Column(t int) []float64 {
	out := make([]float64, len(m))
	for i, row := range m {
		out[i] = row[t]
	}
	return out
}

func (m Matrix) Clone() Matrix {
	out := NewMatrix(m.Rows(), m.Cols())
	for i, row := range m {
		copy(out[i], row)
	}
	return out
}

// SameShape reports whether both matrices are rectangular with equal dimensions
func (m Matrix) SameShape(other Matrix) bool {
	if m.Rows() != other.Rows() || m.Cols() != other.Cols() {
		return false
	}
	for i := range m {
		if len(m[i]) != len(other[i]) {
			return false
		}
	}
	return true
}

// ValidatePaths checks the shape of a simulated price matrix: at least one
// path, at least two time columns, rectangular and finite
func (m Matrix) ValidatePaths() error {
	if len(m) == 0 {
		return fmt.Errorf("%w: path matrix has no paths", ErrInvalidInput)
	}
	cols := len(m[0])
	if cols < 2 {
		return fmt.Errorf("%w: path matrix needs at least 2 time columns, got %d", ErrInvalidInput, cols)
	}
	for i, row := range m {
		if len(row) != cols {
			return fmt.Errorf("%w: path %d has %d columns, expected %d", ErrInvalidInput, i, len(row), cols)
		}
		for t, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: non-finite price at path %d step %d", ErrInvalidInput, i, t)
			}
		}
	}
	return nil
}
