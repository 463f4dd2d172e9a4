// Package reconcile removes markers whose reference allele differs between
// the study cohort and the founders.
package reconcile

import (
	"log"

	"github.com/carbocation/qtl2prep/cohort"
)

// Result is the outcome of reconciliation. The input cohorts are left
// untouched; Study and Founder are filtered copies.
type Result struct {
	Retained []string

	// Removed lists mismatched markers in sequence order.
	Removed []string

	Study   *cohort.Cohort
	Founder *cohort.Cohort
}

// Mismatches returns the members of ids whose reference allele differs
// between the cohorts. Every id must be present in both cohorts.
func Mismatches(ids []string, study, founder *cohort.Cohort) map[string]struct{} {
	out := make(map[string]struct{})
	for _, id := range ids {
		if founder.Records[id].Ref != study.Records[id].Ref {
			out[id] = struct{}{}
		}
	}

	return out
}

// Reconcile drops reference-mismatched markers from the sequence and from
// both cohorts, preserving the order of what remains.
func Reconcile(ids []string, study, founder *cohort.Cohort) Result {
	mismatched := Mismatches(ids, study, founder)

	res := Result{
		Retained: make([]string, 0, len(ids)-len(mismatched)),
		Removed:  make([]string, 0, len(mismatched)),
		Study:    study.Without(mismatched),
		Founder:  founder.Without(mismatched),
	}
	for _, id := range ids {
		if _, bad := mismatched[id]; bad {
			res.Removed = append(res.Removed, id)
			continue
		}
		res.Retained = append(res.Retained, id)
	}

	if len(res.Removed) > 0 {
		log.Printf("%d SNPs removed due to reference mismatch.\n", len(res.Removed))
		log.Printf("%d shared SNPs remaining.\n", len(res.Retained))
	}

	return res
}
