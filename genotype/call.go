package genotype

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v3"
)

// Call is a diploid genotype call: two allele indices into the variant's
// allele list, where 0 is the reference allele. An invalid null.Int is a
// missing allele.
type Call [2]null.Int

func NewCall(a, b int64) Call {
	return Call{null.IntFrom(a), null.IntFrom(b)}
}

// MissingCall is the ./. call.
func MissingCall() Call {
	return Call{}
}

// CallFromGT converts a parsed VCF GT field, in which -1 marks a missing
// allele, into a Call. Only diploid calls are accepted.
func CallFromGT(gt []int) (Call, error) {
	if len(gt) != 2 {
		return Call{}, fmt.Errorf("%w: ploidy %d in %v", ErrMalformedCall, len(gt), gt)
	}

	var c Call
	for i, allele := range gt {
		if allele == -1 {
			continue
		}
		c[i] = null.IntFrom(int64(allele))
	}

	return c, nil
}

func (c Call) String() string {
	parts := make([]string, len(c))
	for i, allele := range c {
		if allele.Valid {
			parts[i] = strconv.FormatInt(allele.Int64, 10)
		} else {
			parts[i] = "."
		}
	}

	return strings.Join(parts, "/")
}
