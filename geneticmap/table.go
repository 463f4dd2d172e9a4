// Package geneticmap holds per-chromosome genetic maps and converts physical
// positions into genetic positions (cM) by linear interpolation.
package geneticmap

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var ErrNoTable = errors.New("no genetic map for chromosome")

// Row is one line of a genetic map file: a physical position in base pairs, an
// unused ratio column, and the genetic position in centiMorgans.
type Row struct {
	Pos   int     `csv:"pos"`
	Ratio string  `csv:"ratio"`
	CM    float64 `csv:"cm"`
}

// Table is a chromosome's map, sorted by non-decreasing physical position.
type Table []Row

// NewTable validates that rows are non-empty and ordered by position.
func NewTable(rows []Row) (Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("genetic map has no rows")
	}

	for i := 1; i < len(rows); i++ {
		if rows[i].Pos < rows[i-1].Pos {
			return nil, fmt.Errorf("genetic map row %d (position %d) precedes row %d (position %d)", i+1, rows[i].Pos, i, rows[i-1].Pos)
		}
	}

	return Table(rows), nil
}

// GeneticPosition returns the cM value at pos. Queries outside the map are
// clamped: anything past the last row takes the last row's value, and anything
// at or before the first row takes the first row's value.
func (t Table) GeneticPosition(pos int) float64 {
	if len(t) == 0 {
		return math.NaN()
	}

	// Leftmost row at or after pos
	r := sort.Search(len(t), func(i int) bool { return t[i].Pos >= pos })

	if r == len(t) {
		return t[r-1].CM
	}

	if t[r].Pos == pos || r == 0 {
		return t[r].CM
	}

	// Y3 = Y1 + (Y2 - Y1) * (X3 - X1) / (X2 - X1)
	behind, ahead := t[r-1], t[r]
	rel := float64(pos-behind.Pos) / float64(ahead.Pos-behind.Pos)

	return behind.CM + rel*(ahead.CM-behind.CM)
}

// Maps holds one Table per chromosome number.
type Maps map[int]Table

func (m Maps) GeneticPosition(chromosome, pos int) (float64, error) {
	t, exists := m[chromosome]
	if !exists {
		return 0, fmt.Errorf("%w %d", ErrNoTable, chromosome)
	}

	return t.GeneticPosition(pos), nil
}

// Chromosomes returns the chromosome numbers that have a map, in ascending
// order.
func (m Maps) Chromosomes() []int {
	out := make([]int, 0, len(m))
	for chrom := range m {
		out = append(out, chrom)
	}
	sort.Ints(out)

	return out
}
