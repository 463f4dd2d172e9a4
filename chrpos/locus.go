package chrpos

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TabixLocus is a region that can be handed to a tabix query.
type TabixLocus struct {
	chrom string
	start int
	end   int
}

func MakeTabixLocus(chrom string, start, end int) TabixLocus {
	return TabixLocus{chrom, start, end}
}

func (tl TabixLocus) Chrom() string {
	return tl.chrom
}

func (tl TabixLocus) Start() uint32 {
	return uint32(tl.start)
}

func (tl TabixLocus) End() uint32 {
	return uint32(tl.end)
}

func (tl TabixLocus) String() string {
	if tl.start == 0 && tl.end == math.MaxInt32 {
		return tl.chrom
	}

	return fmt.Sprintf("%s:%d-%d", tl.chrom, tl.start, tl.end)
}

// ParseLocus accepts "chrom:start-end" or a bare "chrom", which spans the
// whole chromosome. The chromosome is kept exactly as written since it must
// match the contig names of the indexed file.
func ParseLocus(region string) (TabixLocus, error) {
	region = strings.TrimSpace(region)
	if region == "" {
		return TabixLocus{}, fmt.Errorf("empty region")
	}

	chrom, span, found := strings.Cut(region, ":")
	if !found {
		return MakeTabixLocus(chrom, 0, math.MaxInt32), nil
	}

	startText, endText, found := strings.Cut(strings.ReplaceAll(span, ",", ""), "-")
	if !found || chrom == "" {
		return TabixLocus{}, fmt.Errorf("region %q is not of the form chrom:start-end", region)
	}

	start, err := strconv.Atoi(startText)
	if err != nil {
		return TabixLocus{}, fmt.Errorf("region %q: %w", region, err)
	}
	end, err := strconv.Atoi(endText)
	if err != nil {
		return TabixLocus{}, fmt.Errorf("region %q: %w", region, err)
	}
	if start < 0 || end < start {
		return TabixLocus{}, fmt.Errorf("region %q: start must be non-negative and not after end", region)
	}

	return MakeTabixLocus(chrom, start, end), nil
}

// ParseLoci parses a semicolon or whitespace separated list of regions.
func ParseLoci(regions string) ([]TabixLocus, error) {
	fields := strings.FieldsFunc(regions, func(r rune) bool {
		return r == ';' || r == ' ' || r == '\t' || r == '\n'
	})

	out := make([]TabixLocus, 0, len(fields))
	for _, field := range fields {
		locus, err := ParseLocus(field)
		if err != nil {
			return nil, err
		}
		out = append(out, locus)
	}

	if len(out) < 1 {
		return nil, fmt.Errorf("no valid loci identified in %q", regions)
	}

	return out, nil
}
