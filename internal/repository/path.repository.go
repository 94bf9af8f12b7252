package repository

import (
	"fmt"
	"io"
	"os"
	"sort"

	"lsmc/internal/domain"

	"github.com/gocarina/gocsv"
)

// PathRow is one cell of a path matrix in long format
type PathRow struct {
	Path  int     `csv:"path"`
	Step  int     `csv:"step"`
	Price float64 `csv:"price"`
}

// PathRepository reads and writes simulated price paths as csv with the
// header path,step,price. rows may come in any order but every (path, step)
// pair of the rectangle must be present exactly once
type PathRepository interface {
	Read(r io.Reader) (domain.Matrix, error)
	Write(w io.Writer, paths domain.Matrix) error

	Load(filename string) (domain.Matrix, error)
	Save(filename string, paths domain.Matrix) error
}

type pathRepositoryHandler struct{}

func NewPathRepository() PathRepository {
	return pathRepositoryHandler{}
}

func (h pathRepositoryHandler) Read(r io.Reader) (domain.Matrix, error) {
	rows := []PathRow{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse path csv: %w", err)
	}
	return rowsToMatrix(rows)
}

func (h pathRepositoryHandler) Write(w io.Writer, paths domain.Matrix) error {
	rows := matrixToRows(paths)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write path csv: %w", err)
	}
	return nil
}

func (h pathRepositoryHandler) Load(filename string) (domain.Matrix, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer f.Close()

	return h.Read(f)
}

func (h pathRepositoryHandler) Save(filename string, paths domain.Matrix) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer f.Close()

	if err := h.Write(f, paths); err != nil {
		return err
	}
	return f.Close()
}

func matrixToRows(m domain.Matrix) []PathRow {
	rows := make([]PathRow, 0, m.Rows()*m.Cols())
	for p, row := range m {
		for t, v := range row {
			rows = append(rows, PathRow{Path: p, Step: t, Price: v})
		}
	}
	return rows
}

func rowsToMatrix(rows []PathRow) (domain.Matrix, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: path csv has no rows", domain.ErrInvalidInput)
	}

	numPaths, numSteps := 0, 0
	for _, r := range rows {
		if r.Path < 0 || r.Step < 0 {
			return nil, fmt.Errorf("%w: negative index at path %d step %d", domain.ErrInvalidInput, r.Path, r.Step)
		}
		numPaths = max(numPaths, r.Path+1)
		numSteps = max(numSteps, r.Step+1)
	}
	if len(rows) != numPaths*numSteps {
		return nil, fmt.Errorf(
			"%w: expected %d rows for %d paths x %d steps, got %d",
			domain.ErrInvalidInput,
			numPaths*numSteps,
			numPaths,
			numSteps,
			len(rows),
		)
	}

	// sorting makes duplicates adjacent
	sorted := make([]PathRow, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Path != sorted[j].Path {
			return sorted[i].Path < sorted[j].Path
		}
		return sorted[i].Step < sorted[j].Step
	})

	m := domain.NewMatrix(numPaths, numSteps)
	for i, r := range sorted {
		if i > 0 && sorted[i-1].Path == r.Path && sorted[i-1].Step == r.Step {
			return nil, fmt.Errorf("%w: duplicate row for path %d step %d", domain.ErrInvalidInput, r.Path, r.Step)
		}
		m[r.Path][r.Step] = r.Price
	}

	return m, nil
}
