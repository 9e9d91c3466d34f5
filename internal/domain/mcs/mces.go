package mcs

import (
	"github.com/turtacn/molgraph/internal/domain/chem"
	"github.com/turtacn/molgraph/internal/domain/match"
)

// MaxCommonEdges finds a vertex mapping between a and b maximizing the
// number of shared edges: mapped pairs adjacent with equal bonds on both
// sides.  Unlike the induced search, edges present on only one side are
// tolerated, so the objective counts edges rather than vertices.  The bound
// adds the count of query edges that still have an unprocessed endpoint,
// precomputed as a suffix sum over the assignment order.
func MaxCommonEdges(a, b *chem.Graph, budget Budget) Result {
	query, target, swapped := a, b, false
	// The bound tightens with fewer query edges, so search from the sparser
	// side.
	if b.EdgeCount() < a.EdgeCount() ||
		(b.EdgeCount() == a.EdgeCount() && b.VertexCount() < a.VertexCount()) {
		query, target, swapped = b, a, true
	}
	ix := match.NewGraphIndex(query, target, match.DegreeAny)
	s := &edgeSearch{
		query:      query,
		target:     target,
		ix:         ix,
		cd:         newCountdown(budget),
		mapping:    match.NewMapping(query.VertexCount()),
		usedTarget: make([]bool, target.VertexCount()),
	}
	s.buildRemaining()
	s.extend(0)
	return finishResult(a, s.best, s.bestEdges, swapped, s.cd)
}

type edgeSearch struct {
	query, target *chem.Graph
	ix            *match.Index
	cd            *countdown

	mapping    match.Mapping
	usedTarget []bool
	edges      int

	// remaining[pos] counts query edges whose later-ordered endpoint sits at
	// position >= pos, i.e. edges that can still be gained from pos on.
	remaining []int

	bestEdges int
	best      match.Mapping
}

// buildRemaining precomputes the admissible bound table from the search
// order.  An edge is decided once both endpoints have been processed, so it
// stays available exactly up to its later endpoint's position.
func (s *edgeSearch) buildRemaining() {
	order := s.ix.SearchOrder()
	posOf := make([]int, s.query.VertexCount())
	for pos, q := range order {
		posOf[q] = pos
	}
	counts := make([]int, len(order)+1)
	for e := 0; e < s.query.EdgeCount(); e++ {
		edge := s.query.Edge(e)
		last := posOf[edge.U]
		if posOf[edge.V] > last {
			last = posOf[edge.V]
		}
		counts[last]++
	}
	s.remaining = make([]int, len(order)+1)
	for pos := len(order) - 1; pos >= 0; pos-- {
		s.remaining[pos] = s.remaining[pos+1] + counts[pos]
	}
}

func (s *edgeSearch) extend(pos int) {
	if !s.cd.spend() {
		return
	}
	if s.edges+s.remaining[pos] <= s.bestEdges {
		return
	}
	order := s.ix.SearchOrder()
	if pos == len(order) {
		return
	}
	q := order[pos]
	for _, t := range s.ix.Candidates(q) {
		if s.usedTarget[t] {
			continue
		}
		gain := s.gain(q, t)
		s.mapping[q] = t
		s.usedTarget[t] = true
		s.edges += gain
		if s.edges > s.bestEdges {
			s.bestEdges = s.edges
			s.best = s.mapping.Clone()
		}
		s.extend(pos + 1)
		s.edges -= gain
		s.usedTarget[t] = false
		s.mapping[q] = -1
		if s.cd.exhausted {
			return
		}
	}
	s.extend(pos + 1)
}

// gain counts the query edges from q to already-mapped neighbors whose image
// pair is adjacent in the target with an equal bond.
func (s *edgeSearch) gain(q, t int) int {
	n := 0
	for _, nb := range s.query.Neighbors(q) {
		t2 := s.mapping[nb.Vertex]
		if t2 < 0 {
			continue
		}
		te, ok := s.target.EdgeBetween(t, t2)
		if !ok {
			continue
		}
		if chem.BondsEqual(s.query.Edge(nb.Edge).Bond, s.target.Edge(te).Bond) {
			n++
		}
	}
	return n
}
