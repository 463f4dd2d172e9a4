package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/carbocation/qtl2prep/convert"
	"github.com/spf13/pflag"
)

func TestGenoConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qtl2prep.conf")
	contents := "vcf: from-file.vcf.gz\nfounder-vcf: founders.vcf.gz\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	flags := pflag.NewFlagSet("geno", pflag.ContinueOnError)
	flags.StringVar(&genoConfigFile, "config", "", "")
	flags.String(convert.KeyVCF, "", "")
	flags.String(convert.KeyFounderVCF, "", "")
	flags.String(convert.KeyChromosomes, "1-20", "")
	defer func() { genoConfigFile = "" }()

	if err := flags.Parse([]string{"--config", path, "--vcf", "from-flag.vcf.gz"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := genoConfig(flags)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.VCF != "from-flag.vcf.gz" {
		t.Errorf("flag should override the file, got %s", cfg.VCF)
	}
	if cfg.FounderVCF != "founders.vcf.gz" {
		t.Errorf("file value lost, got %s", cfg.FounderVCF)
	}
	if cfg.Chromosomes != "1-20" {
		t.Errorf("default lost, got %s", cfg.Chromosomes)
	}
}
