package main

import (
	"context"
	"log"

	"github.com/carbocation/qtl2prep/convert"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var genoConfigFile string

var genoCmd = &cobra.Command{
	Use:   "geno --vcf study.vcf.gz --founder-vcf founders.vcf.gz --gmap-dir maps/ [flags]",
	Short: "Write genotype and marker map tables",
	Long: `geno encodes study and founder genotypes as A/B/H/- and writes them with
the physical (Mb) and genetic (cM) position of every marker. Markers whose
reference allele differs between the two VCFs are removed.

Settings may also be read from a file of "key: value" lines (--config), where
each key is a flag name. Flags given on the command line take precedence.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := genoConfig(cmd.Flags())
		if err != nil {
			log.Fatalln(err)
		}

		if err := convert.Run(context.Background(), cfg); err != nil {
			log.Fatalln(err)
		}
	},
}

// genoConfig layers the config file, if any, over the defaults and then the
// flags that were explicitly set over both.
func genoConfig(flags *pflag.FlagSet) (convert.Config, error) {
	cfg := convert.DefaultConfig()

	if genoConfigFile != "" {
		if err := convert.ReadConfigFile(genoConfigFile, &cfg); err != nil {
			return cfg, err
		}
	}

	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil || f.Name == "config" {
			return
		}
		err = cfg.Set(f.Name, f.Value.String())
	})

	return cfg, err
}

func init() {
	defaults := convert.DefaultConfig()

	f := genoCmd.Flags()
	f.StringVar(&genoConfigFile, "config", "", "File of 'key: value' settings, keyed by flag name")
	f.String(convert.KeyVCF, "", "VCF file for the study cohort. May be compressed or on gs://")
	f.String(convert.KeyFounderVCF, "", "VCF file for the founder strains")
	f.String(convert.KeySNPs, "", "File listing the marker IDs to keep, one per line. If empty, every marker in the study VCF is considered")
	f.String(convert.KeyGMapDir, "", "Directory containing the genetic map files")
	f.String(convert.KeyGMapTemplate, defaults.GMapTemplate, "File name of each genetic map, with %d for the chromosome")
	f.String(convert.KeyChromosomes, defaults.Chromosomes, "Chromosomes with a genetic map, e.g. 1-20 or 1,3,5-7")
	f.String(convert.KeyRegions, "", "Optional tabix regions, e.g. 'chr1:1-5000000;chr2'. Requires indexed VCFs")
	f.String(convert.KeyGenoOut, "", "Output file for the study genotype table")
	f.String(convert.KeyFounderOut, "", "Output file for the founder genotype table")
	f.String(convert.KeyPMapOut, "", "Output file for the physical map")
	f.String(convert.KeyGMapOut, "", "Output file for the genetic map")
	f.String(convert.KeyMareyPrefix, "", "If set, write a Marey plot per chromosome to <prefix>chr<N>.png")

	rootCmd.AddCommand(genoCmd)
}
