package main

import (
	"os"

	"github.com/carbocation/qtl2prep/compileinfo"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "qtl2prep",
	Short: "Prepare R/qtl2 input files",
	Long: `qtl2prep builds the R/qtl2 input tables for a multi-parent cross:

  geno   study and founder genotype tables plus physical and genetic maps,
         from two VCFs and per-chromosome genetic map files
  pheno  phenotype and covariate tables from a phenotype spreadsheet`,
	Version: compileinfo.Get().Short(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		compileinfo.PrintToStdErr()
	},
}

// Execute runs the command named on the command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
