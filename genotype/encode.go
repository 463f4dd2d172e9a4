package genotype

import (
	"errors"
	"fmt"
)

var ErrMalformedCall = errors.New("genotype call not recognized")

// Encode maps a diploid call onto its R/qtl2 symbol. Founder strains are
// expected to be inbred, so in founder mode a heterozygous call is reported as
// missing instead of H. Calls with exactly one missing allele, or with
// negative allele indices, are malformed.
func Encode(c Call, founder bool) (Symbol, error) {
	a, b := c[0], c[1]

	switch {
	case !a.Valid && !b.Valid:
		return Missing, nil
	case !a.Valid || !b.Valid, a.Int64 < 0, b.Int64 < 0:
		return Missing, fmt.Errorf("%w: %s", ErrMalformedCall, c)
	case a.Int64 == 0 && b.Int64 == 0:
		return HomRef, nil
	case a.Int64 == 0 || b.Int64 == 0:
		if founder {
			return Missing, nil
		}
		return Het, nil
	}

	return HomAlt, nil
}
