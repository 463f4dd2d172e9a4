package chrpos

import (
	"errors"
	"math"
	"testing"
)

func TestParseMarkerID(t *testing.T) {
	cases := []struct {
		ID       string
		Label    string
		Chrom    int
		Position int
	}{
		{"1:1000", "1", 1, 1000},
		{"chr1:1000", "1", 1, 1000},
		{"chr20:61234567", "20", 20, 61234567},
		{"07:15", "07", 7, 15},
	}

	for _, c := range cases {
		got, err := ParseMarkerID(c.ID)
		if err != nil {
			t.Fatalf("%s: %v", c.ID, err)
		}
		if got.Label != c.Label || got.Chromosome != c.Chrom || got.Position != c.Position {
			t.Errorf("%s: got %+v", c.ID, got)
		}
	}
}

func TestParseMarkerIDRejects(t *testing.T) {
	for _, id := range []string{"rs123", "1:2:3", "X:100", "1:abc", "", "chr1"} {
		if _, err := ParseMarkerID(id); !errors.Is(err, ErrUnparsableMarker) {
			t.Errorf("%q: expected ErrUnparsableMarker, got %v", id, err)
		}
	}
}

func TestParseLocus(t *testing.T) {
	cases := []struct {
		Region string
		Chrom  string
		Start  uint32
		End    uint32
	}{
		{"chr1:100-200", "chr1", 100, 200},
		{"2:1,000-5,000", "2", 1000, 5000},
		{"3", "3", 0, math.MaxInt32},
	}

	for _, c := range cases {
		got, err := ParseLocus(c.Region)
		if err != nil {
			t.Fatalf("%s: %v", c.Region, err)
		}
		if got.Chrom() != c.Chrom || got.Start() != c.Start || got.End() != c.End {
			t.Errorf("%s: got %v", c.Region, got)
		}
	}

	for _, bad := range []string{"", "1:100", "1:a-5", "1:500-100", ":1-2"} {
		if _, err := ParseLocus(bad); err == nil {
			t.Errorf("%q: expected an error", bad)
		}
	}
}

func TestParseLoci(t *testing.T) {
	loci, err := ParseLoci("1:1-100; 2 3:5-6")
	if err != nil {
		t.Fatal(err)
	}
	if len(loci) != 3 {
		t.Fatalf("got %d loci, expected 3", len(loci))
	}
	if loci[1].String() != "2" || loci[2].String() != "3:5-6" {
		t.Errorf("unexpected loci %v", loci)
	}

	if _, err := ParseLoci(" ; "); err == nil {
		t.Error("expected an error for an empty list")
	}
}
