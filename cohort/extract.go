package cohort

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"

	"cloud.google.com/go/storage"
	"github.com/brentp/irelate/interfaces"
	"github.com/carbocation/bix"
	"github.com/carbocation/pfx"
	"github.com/carbocation/qtl2prep"
	"github.com/carbocation/qtl2prep/chrpos"
	"github.com/carbocation/qtl2prep/genotype"
	"github.com/carbocation/vcfgo"
)

const (
	BufferSize       = 4096 * 8
	progressInterval = 100000
)

// Extract reads every record of rdr and encodes the genotypes of the markers
// in keep. When a marker ID repeats, the last record wins. A call that cannot
// be encoded aborts the extraction.
func Extract(rdr *vcfgo.Reader, keep Keep, founder bool) (*Cohort, error) {
	if rdr == nil {
		return nil, fmt.Errorf("nil VCF reader")
	}

	c := New(rdr.Header.SampleNames, founder)

	i := 0
	for ; ; i++ {
		variant := rdr.Read()
		if variant == nil {
			break
		}

		if i > 0 && i%progressInterval == 0 {
			log.Printf("Processed %d variants. Last %s:%d\n", i, variant.Chrom(), variant.Pos)
		}

		if err := c.add(rdr.Header, variant, keep); err != nil {
			return nil, err
		}
	}
	log.Printf("Processed %d variants. Kept %d markers for %d samples.\n", i, len(c.Records), len(c.Samples))

	if err := rdr.Error(); err != nil {
		log.Println("VCF parsing issues were reported:", err)
		rdr.Clear()
	}

	return c, nil
}

func (c *Cohort) add(header *vcfgo.Header, variant *vcfgo.Variant, keep Keep) error {
	id := MarkerID(variant)
	if !keep.Has(id) {
		return nil
	}

	if err := header.ParseSamples(variant); err != nil {
		return fmt.Errorf("%s: %w", id, err)
	}

	if len(variant.Samples) != len(c.Samples) {
		return fmt.Errorf("%s: %d genotypes for %d samples", id, len(variant.Samples), len(c.Samples))
	}

	symbols := make([]genotype.Symbol, len(c.Samples))
	for j, sample := range variant.Samples {
		call := genotype.MissingCall()
		if sample != nil {
			var err error
			call, err = genotype.CallFromGT(sample.GT)
			if err != nil {
				return fmt.Errorf("marker %s sample %s: %w", id, c.Samples[j], err)
			}
		}

		symbol, err := genotype.Encode(call, c.Founder)
		if err != nil {
			return fmt.Errorf("marker %s sample %s: %w", id, c.Samples[j], err)
		}
		symbols[j] = symbol
	}

	if !c.Has(id) {
		c.Order = append(c.Order, id)
	}
	c.Records[id] = Record{Ref: variant.Ref(), Symbols: symbols}

	return nil
}

// ExtractFile streams a local or gs:// VCF, compressed or not.
func ExtractFile(ctx context.Context, path string, client *storage.Client, keep Keep, founder bool) (*Cohort, error) {
	rc, err := qtl2prep.Open(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	c, err := ExtractReader(bufio.NewReaderSize(rc, BufferSize), keep, founder)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return c, nil
}

// ExtractReader parses an uncompressed VCF stream. Sample columns are parsed
// only for kept markers.
func ExtractReader(r io.Reader, keep Keep, founder bool) (*Cohort, error) {
	rdr, err := vcfgo.NewReader(r, true)
	if err != nil {
		if rdr == nil {
			return nil, err
		}
		log.Println("Invalid VCF header. Attempting to continue. Invalid features include:", err)
		rdr.Clear()
	}

	return Extract(rdr, keep, founder)
}

// ExtractRegions queries a tabix-indexed VCF over each locus instead of
// scanning the whole file.
func ExtractRegions(path string, client *storage.Client, loci []chrpos.TabixLocus, keep Keep, founder bool) (*Cohort, error) {
	if !qtl2prep.IsGoogleStoragePath(path) {
		var err error
		if path, err = qtl2prep.ExpandHome(path); err != nil {
			return nil, pfx.Err(err)
		}
	}

	tbx, err := bix.NewGCP(path, client)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}
	defer tbx.Close()

	c := New(tbx.VReader.Header.SampleNames, founder)

	j := 0
	for _, locus := range loci {
		vals, err := tbx.Query(locus)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %w", locus, err))
		}

		for {
			v, err := vals.Next()
			if err == io.EOF {
				break
			} else if err != nil {
				return nil, pfx.Err(err)
			}

			// Unwrap multiple layers to get to vcfgo.Variant{}
			v2, ok := v.(interfaces.VarWrap)
			if !ok {
				return nil, fmt.Errorf("%s:%d: not a valid VarWrap", v.Chrom(), v.End())
			}

			snp, ok := v2.IVariant.(*vcfgo.Variant)
			if !ok {
				return nil, fmt.Errorf("%s:%d: not a valid IVariant", v.Chrom(), v.End())
			}

			if err := c.add(tbx.VReader.Header, snp, keep); err != nil {
				return nil, err
			}

			j++
			if j%progressInterval == 0 {
				log.Printf("Processed %d variants. Last %s:%d\n", j, snp.Chrom(), snp.Pos)
			}
		}
		vals.Close()
	}
	log.Printf("Processed %d variants across %d regions. Kept %d markers for %d samples.\n", j, len(loci), len(c.Records), len(c.Samples))

	return c, nil
}
