package qtl2prep

import (
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file.
func DetermineDelimiter(r io.Reader) rune {
	return DetermineDelimiterOr(r, ',')
}

// DetermineDelimiterOr is like DetermineDelimiter, but returns fallback unless
// a comma, tab, semicolon or pipe is detected.
func DetermineDelimiterOr(r io.Reader, fallback rune) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	for _, delim := range delimiters {
		if delim == "" {
			continue
		}
		switch c := rune(delim[0]); c {
		case ',', '\t', ';', '|':
			return c
		}
	}

	return fallback
}
