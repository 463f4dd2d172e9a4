package genotype

// Symbol is the one-character genotype code used by R/qtl2 tables.
type Symbol byte

const (
	HomRef  Symbol = 'A' // both alleles are the reference allele
	HomAlt  Symbol = 'B' // both alleles are non-reference
	Het     Symbol = 'H' // one reference and one non-reference allele
	Missing Symbol = '-'
)

func (s Symbol) String() string {
	return string(s)
}

// Strings formats a row of symbols for output.
func Strings(symbols []Symbol) []string {
	out := make([]string, len(symbols))
	for i, s := range symbols {
		out[i] = s.String()
	}

	return out
}
