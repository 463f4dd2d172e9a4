package convert

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/carbocation/qtl2prep"
	"github.com/carbocation/qtl2prep/geneticmap"
)

type Config struct {
	VCF        string
	FounderVCF string

	// SNPs is an optional allow-list of marker IDs, one per line.
	SNPs string

	GMapDir      string
	GMapTemplate string
	Chromosomes  string

	// Regions, when set, restricts both VCFs to tabix queries over these
	// loci. Both VCFs must then be bgzipped and indexed.
	Regions string

	GenoOut    string
	FounderOut string
	PMapOut    string
	GMapOut    string

	// MareyPrefix, when set, enables one Marey plot per chromosome.
	MareyPrefix string
}

func DefaultConfig() Config {
	return Config{
		GMapTemplate: geneticmap.DefaultTemplate,
		Chromosomes:  "1-20",
	}
}

// Keys accepted by Set, which match the command line flag names.
const (
	KeyVCF          = "vcf"
	KeyFounderVCF   = "founder-vcf"
	KeySNPs         = "snps"
	KeyGMapDir      = "gmap-dir"
	KeyGMapTemplate = "gmap-template"
	KeyChromosomes  = "chromosomes"
	KeyRegions      = "regions"
	KeyGenoOut      = "geno-out"
	KeyFounderOut   = "founder-out"
	KeyPMapOut      = "pmap-out"
	KeyGMapOut      = "gmap-out"
	KeyMareyPrefix  = "marey-prefix"
)

func (c *Config) Set(key, value string) error {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case KeyVCF:
		c.VCF = value
	case KeyFounderVCF:
		c.FounderVCF = value
	case KeySNPs:
		c.SNPs = value
	case KeyGMapDir:
		c.GMapDir = value
	case KeyGMapTemplate:
		c.GMapTemplate = value
	case KeyChromosomes:
		c.Chromosomes = value
	case KeyRegions:
		c.Regions = value
	case KeyGenoOut:
		c.GenoOut = value
	case KeyFounderOut:
		c.FounderOut = value
	case KeyPMapOut:
		c.PMapOut = value
	case KeyGMapOut:
		c.GMapOut = value
	case KeyMareyPrefix:
		c.MareyPrefix = value
	default:
		return fmt.Errorf("unknown configuration key %q", key)
	}

	return nil
}

// ReadConfigFile applies "key: value" lines from path onto c. Blank lines and
// lines starting with # are ignored.
func ReadConfigFile(path string, c *Config) error {
	path, err := qtl2prep.ExpandHome(path)
	if err != nil {
		return err
	}

	configFile, err := os.Open(path)
	if err != nil {
		return err
	}
	defer configFile.Close()

	scanner := bufio.NewScanner(configFile)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("%s:%d: expected key: value", path, lineNo)
		}

		if err := c.Set(parts[0], strings.TrimSpace(parts[1])); err != nil {
			return fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
	}

	return scanner.Err()
}

// Validate checks that every required setting is present and well formed.
// It does not touch the filesystem.
func (c Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{KeyVCF, c.VCF},
		{KeyFounderVCF, c.FounderVCF},
		{KeyGMapDir, c.GMapDir},
		{KeyGenoOut, c.GenoOut},
		{KeyFounderOut, c.FounderOut},
		{KeyPMapOut, c.PMapOut},
		{KeyGMapOut, c.GMapOut},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.key)
		}
	}

	for _, out := range c.Outputs() {
		if qtl2prep.IsGoogleStoragePath(out) {
			return fmt.Errorf("output %s: only local outputs are supported", out)
		}
	}

	if _, err := ParseChromosomes(c.Chromosomes); err != nil {
		return err
	}

	if c.GMapTemplate != "" && !strings.Contains(c.GMapTemplate, "%d") {
		return fmt.Errorf("%s %q must contain %%d", KeyGMapTemplate, c.GMapTemplate)
	}

	return nil
}

// Inputs lists every input path that is set.
func (c Config) Inputs() []string {
	out := make([]string, 0, 4)
	for _, path := range []string{c.VCF, c.FounderVCF, c.SNPs, c.GMapDir} {
		if path != "" {
			out = append(out, path)
		}
	}

	return out
}

func (c Config) Outputs() []string {
	out := []string{c.GenoOut, c.FounderOut, c.PMapOut, c.GMapOut}
	if c.MareyPrefix != "" {
		out = append(out, c.MareyPrefix)
	}

	return out
}

// ParseChromosomes accepts a comma-separated list of chromosome numbers and
// inclusive ranges, e.g. "1-20" or "1,3,5-7".
func ParseChromosomes(s string) ([]int, error) {
	out := make([]int, 0)
	seen := make(map[int]struct{})
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		first, last := field, field
		if a, b, found := strings.Cut(field, "-"); found {
			first, last = a, b
		}

		lo, err := strconv.Atoi(strings.TrimSpace(first))
		if err != nil {
			return nil, fmt.Errorf("chromosomes %q: %w", s, err)
		}
		hi, err := strconv.Atoi(strings.TrimSpace(last))
		if err != nil {
			return nil, fmt.Errorf("chromosomes %q: %w", s, err)
		}
		if lo < 1 || hi < lo {
			return nil, fmt.Errorf("chromosomes %q: bad range %s", s, field)
		}

		for _, chrom := range geneticmap.Chromosomes(lo, hi) {
			if _, dup := seen[chrom]; dup {
				continue
			}
			seen[chrom] = struct{}{}
			out = append(out, chrom)
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no chromosomes in %q", s)
	}

	return out, nil
}
