// Package metric derives scalar similarity scores from common-subgraph
// sizes.  All functions are pure; the sizes they consume come from the mcs
// solver or, for vertex counts, straight from the graphs.
package metric

// Tanimoto computes common / (na + nb - common) for a common-subgraph size
// against the two graph sizes.  Two empty graphs are defined as identical
// (1.0); a zero denominator with any non-empty input yields 0.0.  The result
// lies in [0, 1] whenever common <= min(na, nb).
func Tanimoto(common, na, nb int) float64 {
	if na == 0 && nb == 0 {
		return 1.0
	}
	denom := na + nb - common
	if denom <= 0 {
		return 0.0
	}
	return float64(common) / float64(denom)
}

// Distance is the edit-style distance max(na, nb) - common: the number of
// units (vertices or edges, matching whatever the sizes count) the larger
// graph carries beyond the common part.  Identical graphs are at distance 0.
func Distance(common, na, nb int) int {
	m := na
	if nb > m {
		m = nb
	}
	d := m - common
	if d < 0 {
		return 0
	}
	return d
}

// GLS is the graph-local-similarity composite: the Tanimoto overlap damped
// by the size ratio of the two graphs, (min+1)/(max+1).  The +1 smoothing
// keeps empty graphs well-defined and makes the penalty gentle on small
// inputs.  GLS of two empty graphs is 1.0; otherwise the score lies in
// [0, 1] and equals 1.0 only for identical sizes with full overlap.
func GLS(common, na, nb int) float64 {
	lo, hi := na, nb
	if lo > hi {
		lo, hi = hi, lo
	}
	return Tanimoto(common, na, nb) * float64(lo+1) / float64(hi+1)
}
