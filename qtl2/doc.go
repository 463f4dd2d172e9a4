// Package qtl2 builds and writes the comma-separated genotype and marker map
// tables read by R/qtl2.
package qtl2
