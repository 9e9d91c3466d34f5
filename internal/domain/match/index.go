// Package match implements the compatibility machinery and backtracking
// matchers shared by every graph query: precomputed vertex candidate sets, a
// most-constrained-first search order, and the exact / substructure
// isomorphism tests built on top of them.
package match

import (
	"sort"

	"github.com/turtacn/molgraph/internal/domain/chem"
)

// DegreeRule selects the degree constraint applied when candidate sets are
// built.  Full-graph isomorphism requires equal degrees, substructure
// embedding requires the target to be at least as connected, and
// common-subgraph search imposes no degree constraint at all (a vertex of
// the common subgraph may use only part of its neighborhood on either side).
type DegreeRule uint8

const (
	DegreeExact DegreeRule = iota
	DegreeAtLeast
	DegreeAny
)

// Index holds the precomputed compatibility tables for one (query, target)
// pair: per-query-vertex candidate target vertices and the order in which the
// query vertices should be assigned.  Building an Index never mutates the
// input graphs, and an Index is read-only once built, so it can be shared by
// concurrent searches over the same pair.
type Index struct {
	queryCount  int
	targetCount int
	candidates  [][]int
	order       []int
}

// NewGraphIndex builds the compatibility index for a concrete query graph
// against a concrete target graph under the given degree rule.  Vertex
// compatibility is chem.AtomsEqual.
func NewGraphIndex(query, target *chem.Graph, rule DegreeRule) *Index {
	ix := &Index{
		queryCount:  query.VertexCount(),
		targetCount: target.VertexCount(),
		candidates:  make([][]int, query.VertexCount()),
	}
	for q := 0; q < query.VertexCount(); q++ {
		qa := query.Atom(q)
		qd := query.Degree(q)
		var cands []int
		for t := 0; t < target.VertexCount(); t++ {
			if !chem.AtomsEqual(qa, target.Atom(t)) {
				continue
			}
			if !degreeOK(rule, qd, target.Degree(t)) {
				continue
			}
			cands = append(cands, t)
		}
		ix.candidates[q] = cands
	}
	ix.buildOrder(query.Degree)
	return ix
}

// NewPatternIndex builds the compatibility index for a Pattern query against
// a concrete target.  Pattern compatibility is asymmetric: each pattern
// vertex's constraints decide which concrete atoms are acceptable.  The
// degree rule is always at-least, matching substructure semantics.
func NewPatternIndex(pattern *chem.Pattern, target *chem.Graph) *Index {
	ix := &Index{
		queryCount:  pattern.VertexCount(),
		targetCount: target.VertexCount(),
		candidates:  make([][]int, pattern.VertexCount()),
	}
	for q := 0; q < pattern.VertexCount(); q++ {
		pa := pattern.Atom(q)
		qd := pattern.Degree(q)
		var cands []int
		for t := 0; t < target.VertexCount(); t++ {
			if !pa.Matches(target.Atom(t)) {
				continue
			}
			if target.Degree(t) < qd {
				continue
			}
			cands = append(cands, t)
		}
		ix.candidates[q] = cands
	}
	ix.buildOrder(pattern.Degree)
	return ix
}

func degreeOK(rule DegreeRule, queryDeg, targetDeg int) bool {
	switch rule {
	case DegreeExact:
		return targetDeg == queryDeg
	case DegreeAtLeast:
		return targetDeg >= queryDeg
	default:
		return true
	}
}

// buildOrder sorts query vertices most-constrained-first: fewest candidates,
// then highest degree, then lowest index.  The final index tie-break keeps
// the order fully deterministic, which the solver's reproducibility contract
// depends on.
func (ix *Index) buildOrder(degree func(int) int) {
	ix.order = make([]int, ix.queryCount)
	for i := range ix.order {
		ix.order[i] = i
	}
	sort.SliceStable(ix.order, func(a, b int) bool {
		qa, qb := ix.order[a], ix.order[b]
		ca, cb := len(ix.candidates[qa]), len(ix.candidates[qb])
		if ca != cb {
			return ca < cb
		}
		da, db := degree(qa), degree(qb)
		if da != db {
			return da > db
		}
		return qa < qb
	})
}

// Candidates returns the target vertices query vertex q could map to.  The
// returned slice is owned by the Index and must not be modified.
func (ix *Index) Candidates(q int) []int { return ix.candidates[q] }

// SearchOrder returns the assignment order over query vertices.  The returned
// slice is owned by the Index and must not be modified.
func (ix *Index) SearchOrder() []int { return ix.order }

// QueryCount returns the number of query vertices the index was built for.
func (ix *Index) QueryCount() int { return ix.queryCount }

// TargetCount returns the number of target vertices the index was built for.
func (ix *Index) TargetCount() int { return ix.targetCount }

// HasEmptyCandidateSet reports whether some query vertex has no compatible
// target vertex at all, which lets full-mapping searches fail fast.
func (ix *Index) HasEmptyCandidateSet() bool {
	for _, c := range ix.candidates {
		if len(c) == 0 {
			return true
		}
	}
	return false
}
