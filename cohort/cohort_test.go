package cohort

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/carbocation/qtl2prep/genotype"
)

const vcfHeader = "##fileformat=VCFv4.2\n" +
	"##FORMAT=<ID=GT,Number=1,Type=String,Description=\"Genotype\">\n" +
	"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tS1\tS2\tS3\n"

func vcfBody(lines ...string) string {
	return vcfHeader + strings.Join(lines, "\n") + "\n"
}

func TestExtract(t *testing.T) {
	input := vcfBody(
		"1\t1000\trs1\tA\tG\t.\t.\t.\tGT\t0/0\t./.\t0/1",
		"1\t2000\trs2\tC\tT\t.\t.\t.\tGT\t1/1\t1/0\t0|2",
		"2\t3000\t.\tG\tA\t.\t.\t.\tGT\t0/0\t0/0\t1/2",
		"2\t4000\trs4\tT\tC\t.\t.\t.\tGT\t0/0\t0/0\t0/0",
	)

	c, err := ExtractReader(strings.NewReader(input), NewKeep([]string{"rs1", "rs2", "2:3000"}), false)
	if err != nil {
		t.Fatal(err)
	}

	if strings.Join(c.Samples, ",") != "S1,S2,S3" {
		t.Fatalf("unexpected samples %v", c.Samples)
	}

	expected := map[string]string{
		"rs1":    "A-H",
		"rs2":    "BHH",
		"2:3000": "AAB",
	}
	if len(c.Records) != len(expected) {
		t.Fatalf("got %d records, expected %d", len(c.Records), len(expected))
	}
	for id, symbols := range expected {
		rec, ok := c.Records[id]
		if !ok {
			t.Fatalf("%s missing", id)
		}
		if got := strings.Join(genotype.Strings(rec.Symbols), ""); got != symbols {
			t.Errorf("%s: got %s, expected %s", id, got, symbols)
		}
	}

	if c.Records["rs2"].Ref != "C" {
		t.Errorf("rs2: got ref %s", c.Records["rs2"].Ref)
	}

	if strings.Join(c.Order, ",") != "rs1,rs2,2:3000" {
		t.Errorf("unexpected order %v", c.Order)
	}
}

func TestExtractFounderMode(t *testing.T) {
	input := vcfBody("1\t1000\trs1\tA\tG\t.\t.\t.\tGT\t0/0\t0/1\t1/1")

	c, err := ExtractReader(strings.NewReader(input), nil, true)
	if err != nil {
		t.Fatal(err)
	}

	if got := strings.Join(genotype.Strings(c.Records["rs1"].Symbols), ""); got != "A-B" {
		t.Errorf("got %s, expected A-B", got)
	}
}

func TestExtractLastRecordWins(t *testing.T) {
	input := vcfBody(
		"1\t1000\trs1\tA\tG\t.\t.\t.\tGT\t0/0\t0/0\t0/0",
		"1\t1500\trs9\tA\tG\t.\t.\t.\tGT\t0/0\t0/0\t0/0",
		"1\t1000\trs1\tT\tG\t.\t.\t.\tGT\t1/1\t1/1\t1/1",
	)

	c, err := ExtractReader(strings.NewReader(input), nil, false)
	if err != nil {
		t.Fatal(err)
	}

	if c.Records["rs1"].Ref != "T" {
		t.Errorf("expected the later record to replace the earlier one")
	}
	if strings.Join(c.Order, ",") != "rs1,rs9" {
		t.Errorf("unexpected order %v", c.Order)
	}
}

func TestExtractMalformed(t *testing.T) {
	input := vcfBody("1\t1000\trs1\tA\tG\t.\t.\t.\tGT\t0/0\t0/.\t0/0")

	_, err := ExtractReader(strings.NewReader(input), nil, false)
	if !errors.Is(err, genotype.ErrMalformedCall) {
		t.Fatalf("expected ErrMalformedCall, got %v", err)
	}
	if !strings.Contains(err.Error(), "rs1") || !strings.Contains(err.Error(), "S2") {
		t.Errorf("error should name the marker and sample: %v", err)
	}

	// Malformed calls outside the keep-set are never parsed.
	if _, err := ExtractReader(strings.NewReader(input), NewKeep([]string{"rs2"}), false); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestRestrictAndWithout(t *testing.T) {
	c := New([]string{"S1"}, false)
	for _, id := range []string{"a", "b", "c"} {
		c.Records[id] = Record{Ref: "A", Symbols: []genotype.Symbol{genotype.HomRef}}
		c.Order = append(c.Order, id)
	}

	if got := strings.Join(c.Restrict([]string{"c", "x", "a"}), ","); got != "c,a" {
		t.Errorf("Restrict: got %s", got)
	}

	w := c.Without(map[string]struct{}{"b": {}})
	if w.Has("b") || !w.Has("a") || !w.Has("c") {
		t.Errorf("Without: unexpected records %v", w.Records)
	}
	if !c.Has("b") {
		t.Error("Without modified its receiver")
	}
}

func TestSummary(t *testing.T) {
	c := New([]string{"S1", "S2"}, false)
	c.Records["a"] = Record{Symbols: []genotype.Symbol{genotype.HomRef, genotype.Missing}}
	c.Records["b"] = Record{Symbols: []genotype.Symbol{genotype.Het, genotype.HomAlt}}

	s := c.Summary()
	if s.Markers != 2 || s.Samples != 2 {
		t.Fatalf("unexpected counts %+v", s)
	}
	if math.Abs(s.MeanCallRate-0.75) > 1e-12 {
		t.Errorf("mean call rate: got %v", s.MeanCallRate)
	}
	if math.Abs(s.MedianCallRate-0.75) > 1e-12 {
		t.Errorf("median call rate: got %v", s.MedianCallRate)
	}

	if empty := New(nil, false).Summary(); empty.Markers != 0 || empty.MeanCallRate != 0 {
		t.Errorf("unexpected empty summary %+v", empty)
	}
}
