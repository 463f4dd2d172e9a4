// Package pheno reshapes a phenotype spreadsheet into the phenotype and
// covariate tables read by R/qtl2. The first column is the sample index.
package pheno

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/carbocation/qtl2prep"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Values that are read as missing.
var NAValues = []string{"", "NA", "NaN", "nan", "N/A", "NULL", "null", "#N/A"}

// gota renders missing string cells as this.
const gotaNA = "NaN"

// Covariate is a column of the covariate table holding one value for every
// sample.
type Covariate struct {
	Name  string
	Value string
}

// ParseCovariate parses "name=value".
func ParseCovariate(s string) (Covariate, error) {
	name, value, found := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !found || name == "" {
		return Covariate{}, fmt.Errorf("covariate %q is not of the form name=value", s)
	}

	return Covariate{Name: name, Value: strings.TrimSpace(value)}, nil
}

type Options struct {
	// Columns removed from the phenotype table. Names not present are
	// skipped.
	Drop []string

	Covariates []Covariate

	// Written in place of missing cells.
	NA string
}

func DefaultOptions() Options {
	return Options{
		Drop:       []string{"idx"},
		Covariates: []Covariate{{Name: "generations", Value: "90"}},
		NA:         "NA",
	}
}

// Reshape reads a delimited phenotype table from in, writes it to phenoOut
// without the dropped columns, and writes the covariate table to covarOut.
func Reshape(in io.Reader, phenoOut, covarOut io.Writer, opts Options) error {
	df, indexName, err := Read(in)
	if err != nil {
		return pfx.Err(err)
	}

	drop := make([]string, 0, len(opts.Drop))
	for _, name := range opts.Drop {
		if name == indexName || name == df.Names()[0] {
			return fmt.Errorf("cannot drop the index column %q", name)
		}
		if !contains(df.Names(), name) {
			log.Printf("Column %q is not present; not dropping it\n", name)
			continue
		}
		drop = append(drop, name)
	}
	if len(drop) > 0 {
		df = df.Drop(drop)
		if df.Err != nil {
			return pfx.Err(df.Err)
		}
	}

	if err := write(phenoOut, df, indexName, opts.NA); err != nil {
		return pfx.Err(err)
	}

	covar := df.Select([]int{0})
	for _, c := range opts.Covariates {
		values := make([]string, covar.Nrow())
		for i := range values {
			values[i] = c.Value
		}
		covar = covar.Mutate(series.New(values, series.String, c.Name))
	}
	if covar.Err != nil {
		return pfx.Err(covar.Err)
	}

	if err := write(covarOut, covar, indexName, opts.NA); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// Read loads a table with a header row, keeping every cell as a string. It
// also returns the header of the index column as written, since gota renames
// a blank header.
func Read(in io.Reader) (dataframe.DataFrame, string, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return dataframe.DataFrame{}, "", err
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = qtl2prep.DetermineDelimiter(bytes.NewReader(data))
	records, err := cr.ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, "", err
	}
	if len(records) < 1 || len(records[0]) < 1 {
		return dataframe.DataFrame{}, "", fmt.Errorf("phenotype table has no columns")
	}

	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(NAValues),
	)
	if df.Err != nil {
		return df, "", df.Err
	}

	return df, records[0][0], nil
}

// write renders df with the original index header and with na in place of
// missing cells.
func write(w io.Writer, df dataframe.DataFrame, indexName, na string) error {
	records := df.Records()
	records[0][0] = indexName

	for _, row := range records[1:] {
		for j, cell := range row {
			if cell == gotaNA {
				row[j] = na
			}
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		return err
	}

	return cw.Error()
}

func contains(haystack []string, needle string) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}

	return false
}
