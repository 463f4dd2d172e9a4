package cohort

import (
	"fmt"

	"github.com/carbocation/qtl2prep/genotype"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes how complete a cohort's genotypes are.
type Summary struct {
	Markers int
	Samples int

	// Per-sample call rate: the fraction of markers with a non-missing symbol.
	MeanCallRate   float64
	SDCallRate     float64
	MedianCallRate float64
}

func (c *Cohort) Summary() Summary {
	s := Summary{Markers: len(c.Records), Samples: len(c.Samples)}
	if s.Markers == 0 || s.Samples == 0 {
		return s
	}

	called := make([]float64, s.Samples)
	for _, rec := range c.Records {
		for j, symbol := range rec.Symbols {
			if symbol != genotype.Missing {
				called[j]++
			}
		}
	}
	for j := range called {
		called[j] /= float64(s.Markers)
	}

	s.MeanCallRate, s.SDCallRate = stat.MeanStdDev(called, nil)
	if s.Samples < 2 {
		s.SDCallRate = 0
	}
	s.MedianCallRate, _ = stats.Median(called)

	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d markers, %d samples, call rate mean %.4f (SD %.4f), median %.4f",
		s.Markers, s.Samples, s.MeanCallRate, s.SDCallRate, s.MedianCallRate)
}
