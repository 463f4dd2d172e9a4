package convert

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/carbocation/qtl2prep"
	"github.com/carbocation/qtl2prep/chrpos"
	"github.com/carbocation/qtl2prep/cohort"
	"github.com/carbocation/qtl2prep/geneticmap"
	"github.com/carbocation/qtl2prep/marey"
	"github.com/carbocation/qtl2prep/qtl2"
	"github.com/carbocation/qtl2prep/reconcile"
)

// Result holds every table of a conversion, ready to be written.
type Result struct {
	Study   *cohort.Cohort
	Founder *cohort.Cohort

	// Markers is the final marker sequence. It orders the rows of every
	// table.
	Markers []string

	// Removed lists markers dropped for a reference mismatch.
	Removed []string

	Physical []qtl2.MapRow
	Genetic  []qtl2.MapRow
}

// Run converts according to cfg. A Google Storage client is created only if
// an input lives in a bucket.
func Run(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	client, err := qtl2prep.MaybeStorageClient(ctx, cfg.Inputs()...)
	if err != nil {
		return pfx.Err(err)
	}
	if client != nil {
		defer client.Close()
	}

	res, err := Build(ctx, cfg, client)
	if err != nil {
		return err
	}

	return res.Write(cfg)
}

// Build reads every input and produces all tables without writing anything.
func Build(ctx context.Context, cfg Config, client *storage.Client) (*Result, error) {
	chromosomes, err := ParseChromosomes(cfg.Chromosomes)
	if err != nil {
		return nil, err
	}

	maps, err := geneticmap.Load(ctx, cfg.GMapDir, cfg.GMapTemplate, chromosomes, func(ctx context.Context, path string) (io.ReadCloser, error) {
		return qtl2prep.Open(ctx, path, client)
	})
	if err != nil {
		return nil, err
	}

	rec, err := Genotypes(ctx, cfg, client)
	if err != nil {
		return nil, err
	}

	physical, genetic, err := qtl2.Project(rec.Retained, maps)
	if err != nil {
		return nil, err
	}

	return &Result{
		Study:    rec.Study,
		Founder:  rec.Founder,
		Markers:  rec.Retained,
		Removed:  rec.Removed,
		Physical: physical,
		Genetic:  genetic,
	}, nil
}

// Genotypes extracts both cohorts and reconciles them. The founder VCF is
// only consulted for markers the study cohort has.
func Genotypes(ctx context.Context, cfg Config, client *storage.Client) (reconcile.Result, error) {
	var loci []chrpos.TabixLocus
	if cfg.Regions != "" {
		var err error
		loci, err = chrpos.ParseLoci(cfg.Regions)
		if err != nil {
			return reconcile.Result{}, pfx.Err(err)
		}
	}

	var ids []string
	var keep cohort.Keep
	if cfg.SNPs != "" {
		var err error
		ids, err = qtl2prep.ReadMarkerList(ctx, cfg.SNPs, client)
		if err != nil {
			return reconcile.Result{}, err
		}
		keep = cohort.NewKeep(ids)
		log.Printf("Read %d marker IDs from %s\n", len(ids), cfg.SNPs)
	}

	study, err := extract(ctx, cfg.VCF, client, loci, keep, false)
	if err != nil {
		return reconcile.Result{}, err
	}
	log.Println("Study cohort:", study.Summary())

	if ids == nil {
		ids = study.Order
	} else {
		ids = study.Restrict(ids)
	}

	founder, err := extract(ctx, cfg.FounderVCF, client, loci, cohort.NewKeep(ids), true)
	if err != nil {
		return reconcile.Result{}, err
	}
	log.Println("Founders:", founder.Summary())

	ids = founder.Restrict(ids)

	return reconcile.Reconcile(ids, study, founder), nil
}

func extract(ctx context.Context, path string, client *storage.Client, loci []chrpos.TabixLocus, keep cohort.Keep, founder bool) (*cohort.Cohort, error) {
	if loci != nil {
		return cohort.ExtractRegions(path, client, loci, keep, founder)
	}

	return cohort.ExtractFile(ctx, path, client, keep, founder)
}

// Write saves the four tables and, if configured, the Marey plots.
func (r *Result) Write(cfg Config) error {
	if err := writeFile(cfg.GenoOut, func(w io.Writer) error {
		return qtl2.WriteGenotypes(w, r.Study, r.Markers)
	}); err != nil {
		return err
	}

	if err := writeFile(cfg.FounderOut, func(w io.Writer) error {
		return qtl2.WriteGenotypes(w, r.Founder, r.Markers)
	}); err != nil {
		return err
	}

	if err := writeFile(cfg.PMapOut, func(w io.Writer) error {
		return qtl2.WriteMap(w, r.Physical)
	}); err != nil {
		return err
	}

	if err := writeFile(cfg.GMapOut, func(w io.Writer) error {
		return qtl2.WriteMap(w, r.Genetic)
	}); err != nil {
		return err
	}

	log.Printf("Wrote %d markers to %s, %s, %s and %s\n", len(r.Markers), cfg.GenoOut, cfg.FounderOut, cfg.PMapOut, cfg.GMapOut)

	if cfg.MareyPrefix != "" {
		prefix, err := qtl2prep.ExpandHome(cfg.MareyPrefix)
		if err != nil {
			return pfx.Err(err)
		}

		written, err := marey.WriteAll(prefix, r.Physical, r.Genetic)
		if err != nil {
			return err
		}
		log.Printf("Wrote %d Marey plots\n", len(written))
	}

	return nil
}

func writeFile(path string, fill func(w io.Writer) error) error {
	path, err := qtl2prep.ExpandHome(path)
	if err != nil {
		return pfx.Err(err)
	}

	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := fill(w); err != nil {
		return pfx.Err(err)
	}
	if err := w.Flush(); err != nil {
		return pfx.Err(err)
	}

	return f.Close()
}
