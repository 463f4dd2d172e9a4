// Package cohort extracts per-marker genotype symbols for every sample of a
// VCF, restricted to a set of marker IDs.
package cohort

import (
	"strconv"

	"github.com/carbocation/qtl2prep/genotype"
	"github.com/carbocation/vcfgo"
)

// Record is one marker as seen in one cohort.
type Record struct {
	Ref string

	// Symbols has one entry per sample, in header order.
	Symbols []genotype.Symbol
}

// Cohort holds the encoded genotypes of one VCF.
type Cohort struct {
	Samples []string
	Records map[string]Record

	// Order lists marker IDs in the order they were first seen.
	Order []string

	// Founder cohorts encode heterozygous calls as missing.
	Founder bool
}

func New(samples []string, founder bool) *Cohort {
	return &Cohort{
		Samples: samples,
		Records: make(map[string]Record),
		Order:   make([]string, 0),
		Founder: founder,
	}
}

// Keep is the set of marker IDs to extract. A nil Keep keeps everything.
type Keep map[string]struct{}

func NewKeep(ids []string) Keep {
	k := make(Keep, len(ids))
	for _, id := range ids {
		k[id] = struct{}{}
	}

	return k
}

func (k Keep) Has(id string) bool {
	if k == nil {
		return true
	}

	_, exists := k[id]
	return exists
}

// MarkerID is the VCF ID column, or contig:pos when the ID is absent.
func MarkerID(v *vcfgo.Variant) string {
	if id := v.Id(); id != "" && id != "." {
		return id
	}

	return v.Chrom() + ":" + strconv.FormatUint(v.Pos, 10)
}

func (c *Cohort) Has(id string) bool {
	_, exists := c.Records[id]
	return exists
}

// Restrict returns the members of ids that are present in the cohort, in the
// order given.
func (c *Cohort) Restrict(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if c.Has(id) {
			out = append(out, id)
		}
	}

	return out
}

// Without returns a copy of the cohort lacking the markers in drop. The
// receiver is not modified.
func (c *Cohort) Without(drop map[string]struct{}) *Cohort {
	out := New(c.Samples, c.Founder)
	for _, id := range c.Order {
		if _, skip := drop[id]; skip {
			continue
		}
		out.Records[id] = c.Records[id]
		out.Order = append(out.Order, id)
	}

	return out
}
