package main

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/carbocation/pfx"
	"github.com/carbocation/qtl2prep"
	"github.com/carbocation/qtl2prep/pheno"
	"github.com/spf13/cobra"
)

var (
	phenoIn       string
	phenoOut      string
	covarOut      string
	phenoDrop     []string
	phenoCovars   []string
	phenoNAString string
)

var phenoCmd = &cobra.Command{
	Use:   "pheno --pheno phenotypes.csv --pheno-out pheno.csv --covar-out covar.csv",
	Short: "Write phenotype and covariate tables",
	Long: `pheno copies a phenotype table whose first column holds sample IDs,
removing bookkeeping columns and writing missing values as NA. It also writes
a covariate table with one constant column per --covariate.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if phenoIn == "" || phenoOut == "" || covarOut == "" {
			log.Fatalln("--pheno, --pheno-out and --covar-out are required")
		}

		opts := pheno.Options{Drop: phenoDrop, NA: phenoNAString}
		for _, v := range phenoCovars {
			c, err := pheno.ParseCovariate(v)
			if err != nil {
				log.Fatalln(err)
			}
			opts.Covariates = append(opts.Covariates, c)
		}

		if err := reshapePheno(context.Background(), opts); err != nil {
			log.Fatalln(err)
		}
	},
}

func reshapePheno(ctx context.Context, opts pheno.Options) error {
	client, err := qtl2prep.MaybeStorageClient(ctx, phenoIn)
	if err != nil {
		return pfx.Err(err)
	}
	if client != nil {
		defer client.Close()
	}

	in, err := qtl2prep.Open(ctx, phenoIn, client)
	if err != nil {
		return err
	}
	defer in.Close()

	pf, err := createOutput(phenoOut)
	if err != nil {
		return err
	}
	defer pf.Close()

	cf, err := createOutput(covarOut)
	if err != nil {
		return err
	}
	defer cf.Close()

	pw, cw := bufio.NewWriter(pf), bufio.NewWriter(cf)
	if err := pheno.Reshape(in, pw, cw, opts); err != nil {
		return err
	}
	if err := pw.Flush(); err != nil {
		return pfx.Err(err)
	}
	if err := cw.Flush(); err != nil {
		return pfx.Err(err)
	}

	log.Println("Wrote", phenoOut, "and", covarOut)

	return nil
}

func createOutput(path string) (*os.File, error) {
	path, err := qtl2prep.ExpandHome(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return f, nil
}

func init() {
	defaults := pheno.DefaultOptions()
	defaultCovars := make([]string, 0, len(defaults.Covariates))
	for _, c := range defaults.Covariates {
		defaultCovars = append(defaultCovars, c.Name+"="+c.Value)
	}

	f := phenoCmd.Flags()
	f.StringVar(&phenoIn, "pheno", "", "Phenotype table. The first column must hold the sample IDs")
	f.StringVar(&phenoOut, "pheno-out", "", "Output file for the phenotype table")
	f.StringVar(&covarOut, "covar-out", "", "Output file for the covariate table")
	f.StringSliceVar(&phenoDrop, "drop", defaults.Drop, "Columns to remove from the phenotype table")
	f.StringSliceVar(&phenoCovars, "covariate", defaultCovars, "Constant covariates, as name=value")
	f.StringVar(&phenoNAString, "na", defaults.NA, "Text written for missing values")

	rootCmd.AddCommand(phenoCmd)
}
