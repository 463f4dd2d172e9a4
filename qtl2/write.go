package qtl2

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/carbocation/qtl2prep/cohort"
	"github.com/carbocation/qtl2prep/genotype"
	"github.com/gocarina/gocsv"
)

// WriteGenotypes writes the header "id,<sample...>" followed by one row of
// symbols per marker, in the order of ids. Every id must be in c.
func WriteGenotypes(w io.Writer, c *cohort.Cohort, ids []string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(append([]string{"id"}, c.Samples...)); err != nil {
		return err
	}

	row := make([]string, 1+len(c.Samples))
	for _, id := range ids {
		rec, exists := c.Records[id]
		if !exists {
			return fmt.Errorf("marker %s has no genotypes", id)
		}
		if len(rec.Symbols) != len(c.Samples) {
			return fmt.Errorf("marker %s has %d genotypes for %d samples", id, len(rec.Symbols), len(c.Samples))
		}

		row[0] = id
		copy(row[1:], genotype.Strings(rec.Symbols))
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteMap writes the header "marker,chr,pos" followed by rows.
func WriteMap(w io.Writer, rows []MapRow) error {
	return gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csv.NewWriter(w)))
}
