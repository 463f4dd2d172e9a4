package geneticmap

import (
	"errors"
	"testing"
)

type positionExpectation struct {
	Pos int
	CM  float64
}

func TestBoundaryClamp(t *testing.T) {
	table, err := NewTable([]Row{{Pos: 1000, CM: 0.0}, {Pos: 5000, CM: 2.0}})
	if err != nil {
		t.Fatal(err)
	}

	for _, v := range []positionExpectation{
		{500, 0.0},
		{1000, 0.0},
		{3000, 1.0},
		{5000, 2.0},
		{10000, 2.0},
	} {
		if got := table.GeneticPosition(v.Pos); got != v.CM {
			t.Errorf("position %d: got %f, expected %f", v.Pos, got, v.CM)
		}
	}
}

func testTable() Table {
	return Table{
		{Pos: 100, CM: 0.5},
		{Pos: 2500, CM: 1.25},
		{Pos: 2500, CM: 1.5},
		{Pos: 9000, CM: 7.75},
		{Pos: 12000, CM: 7.75},
		{Pos: 40000, CM: 33.1},
	}
}

func TestExactPositions(t *testing.T) {
	table := testTable()

	// Duplicated positions resolve to the leftmost row.
	expected := map[int]float64{100: 0.5, 2500: 1.25, 9000: 7.75, 12000: 7.75, 40000: 33.1}
	for pos, cm := range expected {
		if got := table.GeneticPosition(pos); got != cm {
			t.Errorf("position %d: got %v, expected %v", pos, got, cm)
		}
	}
}

func TestOutsideMap(t *testing.T) {
	table := testTable()

	for _, pos := range []int{-10, 0, 99, 100} {
		if got := table.GeneticPosition(pos); got != table[0].CM {
			t.Errorf("position %d: got %v, expected first row %v", pos, got, table[0].CM)
		}
	}

	for _, pos := range []int{40001, 1e9} {
		if got := table.GeneticPosition(pos); got != table[len(table)-1].CM {
			t.Errorf("position %d: got %v, expected last row %v", pos, got, table[len(table)-1].CM)
		}
	}
}

func TestMonotonic(t *testing.T) {
	table := testTable()

	prior := table.GeneticPosition(101)
	for pos := 102; pos < 40000; pos += 37 {
		got := table.GeneticPosition(pos)
		if got < prior {
			t.Fatalf("position %d: %v is below the value at an earlier position (%v)", pos, got, prior)
		}
		prior = got
	}
}

func TestNewTableRejectsDisorder(t *testing.T) {
	if _, err := NewTable(nil); err == nil {
		t.Error("expected an error for an empty table")
	}

	if _, err := NewTable([]Row{{Pos: 10, CM: 1}, {Pos: 5, CM: 2}}); err == nil {
		t.Error("expected an error for decreasing positions")
	}
}

func TestMapsMissingChromosome(t *testing.T) {
	m := Maps{1: testTable()}

	if _, err := m.GeneticPosition(2, 500); !errors.Is(err, ErrNoTable) {
		t.Errorf("expected ErrNoTable, got %v", err)
	}

	got, err := m.GeneticPosition(1, 100)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0.5 {
		t.Errorf("got %v, expected 0.5", got)
	}
}
