/*
Package convert turns a study VCF, a founder VCF and a set of per-chromosome
genetic maps into the four R/qtl2 input tables: study genotypes, founder
genotypes, the physical map and the genetic map.

Markers are kept in the order of the allow-list (or, without one, the order
they appear in the study VCF), restricted to markers genotyped in both
cohorts, minus markers whose reference allele disagrees between them.
Nothing is written until every table has been built.
*/
package convert
