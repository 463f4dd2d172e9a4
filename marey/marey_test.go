package marey

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/carbocation/qtl2prep/qtl2"
)

var (
	testPhysical = []qtl2.MapRow{
		{Marker: "1:1000", Chr: "1", Pos: 0.001},
		{Marker: "2:500", Chr: "2", Pos: 0.0005},
		{Marker: "1:3000", Chr: "1", Pos: 0.003},
		{Marker: "1:9000", Chr: "1", Pos: 0.009},
	}
	testGenetic = []qtl2.MapRow{
		{Marker: "1:1000", Chr: "1", Pos: 0},
		{Marker: "2:500", Chr: "2", Pos: 0.1},
		{Marker: "1:3000", Chr: "1", Pos: 1},
		{Marker: "1:9000", Chr: "1", Pos: 2},
	}
)

func TestGroup(t *testing.T) {
	chromosomes, err := Group(testPhysical, testGenetic)
	if err != nil {
		t.Fatal(err)
	}

	if len(chromosomes) != 2 || chromosomes[0].Label != "1" || chromosomes[1].Label != "2" {
		t.Fatalf("unexpected grouping %+v", chromosomes)
	}
	if len(chromosomes[0].Mb) != 3 || chromosomes[0].CM[2] != 2 {
		t.Errorf("unexpected chromosome 1 %+v", chromosomes[0])
	}
	if !chromosomes[0].Plottable() || chromosomes[1].Plottable() {
		t.Error("only chromosome 1 has enough points to plot")
	}

	if _, err := Group(testPhysical, testGenetic[:2]); err == nil {
		t.Error("expected an error for mismatched lengths")
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, Chromosome{Label: "1", Mb: []float64{1, 2, 3}, CM: []float64{0, 1, 4}}); err != nil {
		t.Fatal(err)
	}

	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestWriteAll(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "marey_")

	written, err := WriteAll(prefix, testPhysical, testGenetic)
	if err != nil {
		t.Fatal(err)
	}

	if len(written) != 1 || written[0] != prefix+"chr1.png" {
		t.Fatalf("unexpected files %v", written)
	}
	if _, err := os.Stat(written[0]); err != nil {
		t.Error(err)
	}
}
