package match

import (
	"github.com/turtacn/molgraph/internal/domain/chem"
)

// Mapping is a partial injective mapping from query vertex indices to target
// vertex indices; -1 marks an unmapped query vertex.
type Mapping []int

// NewMapping returns an all-unmapped Mapping for n query vertices.
func NewMapping(n int) Mapping {
	m := make(Mapping, n)
	for i := range m {
		m[i] = -1
	}
	return m
}

// Size returns the number of mapped query vertices.
func (m Mapping) Size() int {
	n := 0
	for _, t := range m {
		if t >= 0 {
			n++
		}
	}
	return n
}

// Clone returns an independent copy.
func (m Mapping) Clone() Mapping {
	c := make(Mapping, len(m))
	copy(c, m)
	return c
}

// matcherNodeBudget caps the number of search nodes a boolean existence
// query may expand.  The ordering heuristic resolves molecular inputs in far
// fewer nodes; the cap exists so adversarial inputs degrade to a false
// answer instead of hanging.  This makes the boolean matchers best-effort on
// pathological graphs, which is documented on the public functions.
const matcherNodeBudget = 1 << 22

// ExactMatch reports whether a and b are isomorphic as attributed graphs: a
// bijection over vertices exists that preserves atom attributes, adjacency,
// and bond attributes.  It short-circuits on mismatched vertex or edge
// counts and otherwise runs backtracking search over the compatibility index
// with an equal-degree constraint.
//
// ExactMatch is best-effort on pathological inputs: if the internal node
// budget is exhausted it reports false.
func ExactMatch(a, b *chem.Graph) bool {
	if a.VertexCount() != b.VertexCount() || a.EdgeCount() != b.EdgeCount() {
		return false
	}
	if a.VertexCount() == 0 {
		return true
	}
	ix := NewGraphIndex(a, b, DegreeExact)
	if ix.HasEmptyCandidateSet() {
		return false
	}
	s := &graphEmbedSearch{query: a, target: b, ix: ix, nodesLeft: matcherNodeBudget}
	return s.run()
}

// SubstructureMatch reports whether an injective mapping of the pattern's
// vertices into the target exists that satisfies every pattern constraint
// and maps every pattern edge onto a compatible target edge.  The target may
// carry any amount of additional structure.  The first complete embedding
// terminates the search.
//
// SubstructureMatch is best-effort on pathological inputs: if the internal
// node budget is exhausted it reports false.
func SubstructureMatch(pattern *chem.Pattern, target *chem.Graph) bool {
	if pattern.VertexCount() > target.VertexCount() || pattern.EdgeCount() > target.EdgeCount() {
		return false
	}
	if pattern.VertexCount() == 0 {
		return true
	}
	ix := NewPatternIndex(pattern, target)
	if ix.HasEmptyCandidateSet() {
		return false
	}
	s := &patternEmbedSearch{pattern: pattern, target: target, ix: ix, nodesLeft: matcherNodeBudget}
	return s.run()
}

// ─────────────────────────────────────────────────────────────────────────────
// Graph-vs-graph embedding (exact isomorphism)
// ─────────────────────────────────────────────────────────────────────────────

// graphEmbedSearch finds a full attribute-preserving embedding of query into
// target.  With equal vertex and edge counts, forward edge preservation over
// a total injective mapping already forces an edge bijection, so no reverse
// adjacency check is needed.
type graphEmbedSearch struct {
	query, target *chem.Graph
	ix            *Index
	mapping       Mapping
	usedTarget    []bool
	nodesLeft     int64
}

func (s *graphEmbedSearch) run() bool {
	s.mapping = NewMapping(s.query.VertexCount())
	s.usedTarget = make([]bool, s.target.VertexCount())
	return s.extend(0)
}

func (s *graphEmbedSearch) extend(depth int) bool {
	if depth == len(s.ix.SearchOrder()) {
		return true
	}
	s.nodesLeft--
	if s.nodesLeft < 0 {
		return false
	}
	q := s.ix.SearchOrder()[depth]
	for _, t := range s.ix.Candidates(q) {
		if s.usedTarget[t] {
			continue
		}
		if !s.consistent(q, t) {
			continue
		}
		s.mapping[q] = t
		s.usedTarget[t] = true
		if s.extend(depth + 1) {
			return true
		}
		s.mapping[q] = -1
		s.usedTarget[t] = false
	}
	return false
}

// consistent checks q→t against all already-mapped neighbors of q: the image
// edge must exist and carry equal bond attributes.
func (s *graphEmbedSearch) consistent(q, t int) bool {
	for _, nb := range s.query.Neighbors(q) {
		mapped := s.mapping[nb.Vertex]
		if mapped < 0 {
			continue
		}
		te, ok := s.target.EdgeBetween(t, mapped)
		if !ok {
			return false
		}
		if !chem.BondsEqual(s.query.Edge(nb.Edge).Bond, s.target.Edge(te).Bond) {
			return false
		}
	}
	return true
}

// ─────────────────────────────────────────────────────────────────────────────
// Pattern-vs-graph embedding (substructure)
// ─────────────────────────────────────────────────────────────────────────────

type patternEmbedSearch struct {
	pattern    *chem.Pattern
	target     *chem.Graph
	ix         *Index
	mapping    Mapping
	usedTarget []bool
	nodesLeft  int64
}

func (s *patternEmbedSearch) run() bool {
	s.mapping = NewMapping(s.pattern.VertexCount())
	s.usedTarget = make([]bool, s.target.VertexCount())
	return s.extend(0)
}

func (s *patternEmbedSearch) extend(depth int) bool {
	if depth == len(s.ix.SearchOrder()) {
		return true
	}
	s.nodesLeft--
	if s.nodesLeft < 0 {
		return false
	}
	q := s.ix.SearchOrder()[depth]
	for _, t := range s.ix.Candidates(q) {
		if s.usedTarget[t] {
			continue
		}
		if !s.consistent(q, t) {
			continue
		}
		s.mapping[q] = t
		s.usedTarget[t] = true
		if s.extend(depth + 1) {
			return true
		}
		s.mapping[q] = -1
		s.usedTarget[t] = false
	}
	return false
}

// consistent checks q→t against all already-mapped pattern neighbors of q:
// the target edge must exist and satisfy the pattern edge's constraints.
// Extra target edges between mapped vertices are allowed, which is the
// asymmetry that distinguishes substructure from induced matching.
func (s *patternEmbedSearch) consistent(q, t int) bool {
	for _, nb := range s.pattern.Neighbors(q) {
		mapped := s.mapping[nb.Vertex]
		if mapped < 0 {
			continue
		}
		te, ok := s.target.EdgeBetween(t, mapped)
		if !ok {
			return false
		}
		if !s.pattern.Edge(nb.Edge).Bond.Matches(s.target.Edge(te).Bond) {
			return false
		}
	}
	return true
}
