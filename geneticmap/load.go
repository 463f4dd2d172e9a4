package geneticmap

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"runtime"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/carbocation/qtl2prep"
	"github.com/gocarina/gocsv"
	"golang.org/x/sync/errgroup"
)

// DefaultTemplate names the map file of each chromosome.
const DefaultTemplate = "MAP4chr%d.txt"

// Opener opens a map file for reading.
type Opener func(ctx context.Context, path string) (io.ReadCloser, error)

// ReadTable parses a headerless genetic map with three columns: position,
// ratio and cM. The delimiter is detected, defaulting to a single space.
func ReadTable(r io.Reader) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	delim := qtl2prep.DetermineDelimiterOr(bytes.NewReader(data), ' ')
	data = collapseRuns(data, delim)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delim
	cr.Comment = '#'
	cr.FieldsPerRecord = 3

	rows := make([]Row, 0)
	if err := gocsv.UnmarshalCSVWithoutHeaders(cr, &rows); err != nil {
		if err == gocsv.ErrEmptyCSVFile {
			return nil, fmt.Errorf("genetic map has no rows")
		}
		return nil, err
	}

	return NewTable(rows)
}

// collapseRuns trims each line and squeezes repeated delimiters into one so
// that column-aligned files decode as three fields.
func collapseRuns(data []byte, delim rune) []byte {
	sep := string(delim)
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		fields := strings.FieldsFunc(line, func(r rune) bool { return r == delim })
		for j := range fields {
			fields[j] = strings.TrimSpace(fields[j])
		}
		lines[i] = strings.Join(fields, sep)
	}

	return []byte(strings.Join(lines, "\n"))
}

// Chromosomes returns the inclusive range first..last.
func Chromosomes(first, last int) []int {
	out := make([]int, 0)
	for chrom := first; chrom <= last; chrom++ {
		out = append(out, chrom)
	}

	return out
}

// Load reads one map per chromosome from dir, naming each file with template
// (which takes the chromosome number). Files are read concurrently. Any
// failure aborts the load.
func Load(ctx context.Context, dir, template string, chromosomes []int, open Opener) (Maps, error) {
	if template == "" {
		template = DefaultTemplate
	}

	tables := make([]Table, len(chromosomes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, chrom := range chromosomes {
		i, chrom := i, chrom
		g.Go(func() error {
			path := qtl2prep.JoinPath(dir, fmt.Sprintf(template, chrom))

			rc, err := open(ctx, path)
			if err != nil {
				return pfx.Err(err)
			}
			defer rc.Close()

			t, err := ReadTable(rc)
			if err != nil {
				return pfx.Err(fmt.Errorf("%s: %w", path, err))
			}
			tables[i] = t

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(Maps, len(chromosomes))
	nRows := 0
	for i, chrom := range chromosomes {
		out[chrom] = tables[i]
		nRows += len(tables[i])
	}
	log.Printf("Loaded %d genetic map rows across %d chromosomes\n", nRows, len(out))

	return out, nil
}
