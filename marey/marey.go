// Package marey draws Marey plots: genetic position (cM) against physical
// position (Mb), one PNG per chromosome.
package marey

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/carbocation/pfx"
	"github.com/carbocation/qtl2prep/qtl2"
	"github.com/wcharczuk/go-chart/v2"
)

// Chromosome holds the points of one chromosome in marker order.
type Chromosome struct {
	Label string
	Mb    []float64
	CM    []float64
}

// Plottable is false when the chart would have a zero-width axis.
func (c Chromosome) Plottable() bool {
	if len(c.Mb) < 2 {
		return false
	}

	for _, x := range c.Mb[1:] {
		if x != c.Mb[0] {
			return true
		}
	}

	return false
}

// Group pairs the physical and genetic rows of each marker and splits them
// by chromosome, keeping chromosomes in first-seen order. Both slices must
// describe the same markers in the same order.
func Group(physical, genetic []qtl2.MapRow) ([]Chromosome, error) {
	if len(physical) != len(genetic) {
		return nil, fmt.Errorf("%d physical rows but %d genetic rows", len(physical), len(genetic))
	}

	out := make([]Chromosome, 0)
	index := make(map[string]int)
	for i, p := range physical {
		g := genetic[i]
		if p.Marker != g.Marker {
			return nil, fmt.Errorf("row %d: physical marker %s does not match genetic marker %s", i, p.Marker, g.Marker)
		}

		j, seen := index[p.Chr]
		if !seen {
			j = len(out)
			index[p.Chr] = j
			out = append(out, Chromosome{Label: p.Chr})
		}
		out[j].Mb = append(out[j].Mb, p.Pos)
		out[j].CM = append(out[j].CM, g.Pos)
	}

	return out, nil
}

func Render(w io.Writer, c Chromosome) error {
	graph := chart.Chart{
		Title:  "Chromosome " + c.Label,
		Width:  640,
		Height: 480,
		XAxis: chart.XAxis{
			Name: "Physical position (Mb)",
		},
		YAxis: chart.YAxis{
			Name: "Genetic position (cM)",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "chr" + c.Label,
				XValues: c.Mb,
				YValues: c.CM,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    2,
				},
			},
		},
	}

	return graph.Render(chart.PNG, w)
}

// WriteAll renders every plottable chromosome to <prefix>chr<label>.png and
// returns the files written.
func WriteAll(prefix string, physical, genetic []qtl2.MapRow) ([]string, error) {
	chromosomes, err := Group(physical, genetic)
	if err != nil {
		return nil, pfx.Err(err)
	}

	written := make([]string, 0, len(chromosomes))
	for _, c := range chromosomes {
		if !c.Plottable() {
			log.Printf("Skipping Marey plot for chromosome %s: too few distinct positions\n", c.Label)
			continue
		}

		// Render to a byte buffer
		buffer := bytes.NewBuffer([]byte{})
		if err := Render(buffer, c); err != nil {
			return nil, pfx.Err(fmt.Errorf("chromosome %s: %w", c.Label, err))
		}

		filename := prefix + "chr" + c.Label + ".png"
		if err := os.WriteFile(filename, buffer.Bytes(), 0644); err != nil {
			return nil, pfx.Err(err)
		}
		written = append(written, filename)
	}

	return written, nil
}
