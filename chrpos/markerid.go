package chrpos

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnparsableMarker = errors.New("marker ID is not of the form chrom:pos")

// MarkerPosition is the location encoded in a marker ID.
type MarkerPosition struct {
	// Label is the chromosome text after removing "chr", as written in the ID.
	Label      string
	Chromosome int
	Position   int
}

// ParseMarkerID derives the chromosome and base-pair position from a marker
// ID such as "chr1:1000" or "1:1000". Every occurrence of "chr" is removed
// before splitting on the single colon.
func ParseMarkerID(id string) (MarkerPosition, error) {
	parts := strings.Split(strings.ReplaceAll(id, "chr", ""), ":")
	if len(parts) != 2 {
		return MarkerPosition{}, fmt.Errorf("%w: %q", ErrUnparsableMarker, id)
	}

	chrom, err := strconv.Atoi(parts[0])
	if err != nil {
		return MarkerPosition{}, fmt.Errorf("%w: %q: bad chromosome", ErrUnparsableMarker, id)
	}

	pos, err := strconv.Atoi(parts[1])
	if err != nil {
		return MarkerPosition{}, fmt.Errorf("%w: %q: bad position", ErrUnparsableMarker, id)
	}

	return MarkerPosition{Label: parts[0], Chromosome: chrom, Position: pos}, nil
}
