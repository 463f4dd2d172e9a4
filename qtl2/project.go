package qtl2

import (
	"fmt"
	"math"

	"github.com/carbocation/qtl2prep/chrpos"
	"github.com/carbocation/qtl2prep/geneticmap"
)

// GeneticDecimals is the precision of genetic map positions.
const GeneticDecimals = 6

// MapRow is one line of a physical or genetic marker map.
type MapRow struct {
	Marker string `csv:"marker"`

	// Chr is the chromosome as written in the marker ID.
	Chr string  `csv:"chr"`
	Pos float64 `csv:"pos"`
}

// ValidateMarkerIDs parses every ID up front so that an unparsable ID is
// reported before any table is written.
func ValidateMarkerIDs(ids []string) ([]chrpos.MarkerPosition, error) {
	out := make([]chrpos.MarkerPosition, len(ids))
	for i, id := range ids {
		mp, err := chrpos.ParseMarkerID(id)
		if err != nil {
			return nil, err
		}
		out[i] = mp
	}

	return out, nil
}

// Project derives the physical (Mb) and genetic (cM) map rows of each marker,
// in the order of ids.
func Project(ids []string, maps geneticmap.Maps) (physical, genetic []MapRow, err error) {
	positions, err := ValidateMarkerIDs(ids)
	if err != nil {
		return nil, nil, fmt.Errorf("marker map: %w", err)
	}

	physical = make([]MapRow, len(ids))
	genetic = make([]MapRow, len(ids))
	for i, id := range ids {
		mp := positions[i]

		cm, err := maps.GeneticPosition(mp.Chromosome, mp.Position)
		if err != nil {
			return nil, nil, fmt.Errorf("marker %s: %w", id, err)
		}

		physical[i] = MapRow{Marker: id, Chr: mp.Label, Pos: float64(mp.Position) / 1e6}
		genetic[i] = MapRow{Marker: id, Chr: mp.Label, Pos: Round(cm, GeneticDecimals)}
	}

	return physical, genetic, nil
}

func Round(x float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(x*scale) / scale
}
