// qtl2prep converts VCF genotypes, genetic maps and phenotype tables into the
// input files of R/qtl2.
package main

func main() {
	Execute()
}
