package mcs

import (
	"github.com/turtacn/molgraph/internal/domain/chem"
	"github.com/turtacn/molgraph/internal/domain/match"
	"github.com/turtacn/molgraph/pkg/errors"
)

// Kind selects the common-subgraph flavor being maximized.
type Kind uint8

const (
	// KindInduced maximizes mapped vertices under edge-iff-edge
	// consistency: two mapped vertices are adjacent in one graph exactly
	// when their images are adjacent in the other, with equal bonds.
	KindInduced Kind = iota

	// KindEdge maximizes shared edges: pairs of mapped vertices that are
	// adjacent with equal bonds on both sides.  Edges present on only one
	// side do not disqualify a mapping, they simply do not count.
	KindEdge
)

func (k Kind) String() string {
	switch k {
	case KindInduced:
		return "induced"
	case KindEdge:
		return "edge"
	default:
		return "unknown"
	}
}

// ParseKind converts the wire/CLI spelling of a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "induced", "mcis":
		return KindInduced, nil
	case "edge", "mces":
		return KindEdge, nil
	default:
		return 0, errors.IncompatibleKind(s)
	}
}

// Result is the outcome of one common-subgraph search.
type Result struct {
	// Size is the objective value: mapped vertices for KindInduced,
	// shared edges for KindEdge.
	Size int

	// Mapping is indexed by the first graph's vertices with values in the
	// second graph; -1 marks vertices outside the common subgraph.
	Mapping match.Mapping

	// Exhaustive is true when the search space was fully explored, so
	// Size is the true maximum.  False means the budget ran out and Size
	// is the best lower bound found.
	Exhaustive bool

	// Nodes is the number of search nodes expanded, for observability.
	Nodes int64
}

// Solve runs the common-subgraph search of the requested kind between a and
// b under the given budget.  Both graphs are read-only during the search.
func Solve(a, b *chem.Graph, kind Kind, budget Budget) (Result, error) {
	if err := budget.Validate(); err != nil {
		return Result{}, err
	}
	switch kind {
	case KindInduced:
		return MaxCommonInduced(a, b, budget), nil
	case KindEdge:
		return MaxCommonEdges(a, b, budget), nil
	default:
		return Result{}, errors.IncompatibleKind(kind.String())
	}
}

// finishResult converts the internal best mapping (query-indexed) into an
// a-indexed Result, inverting when the query side was b.
func finishResult(a *chem.Graph, best match.Mapping, size int, swapped bool, cd *countdown) Result {
	out := match.NewMapping(a.VertexCount())
	if !swapped {
		if best != nil {
			copy(out, best)
		}
	} else {
		for qb, ta := range best {
			if ta >= 0 {
				out[ta] = qb
			}
		}
	}
	return Result{
		Size:       size,
		Mapping:    out,
		Exhaustive: !cd.exhausted,
		Nodes:      cd.nodes,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Maximum common induced subgraph
// ─────────────────────────────────────────────────────────────────────────────

// MaxCommonInduced finds a largest vertex set mappable between a and b under
// edge-iff-edge consistency with equal atom and bond attributes.  The search
// is branch-and-bound over the smaller graph's vertices; each vertex is
// either mapped to a compatible unused counterpart or skipped, so every
// common induced subgraph is reachable.  The best mapping found so far is
// recorded on every improvement, which makes the result valid at any budget
// cut-off.
func MaxCommonInduced(a, b *chem.Graph, budget Budget) Result {
	query, target, swapped := a, b, false
	if b.VertexCount() < a.VertexCount() {
		query, target, swapped = b, a, true
	}
	// No degree filtering here: a common-subgraph vertex may use only part
	// of its neighborhood on either side.
	ix := match.NewGraphIndex(query, target, match.DegreeAny)
	s := &inducedSearch{
		query:      query,
		target:     target,
		ix:         ix,
		cd:         newCountdown(budget),
		mapping:    match.NewMapping(query.VertexCount()),
		usedTarget: make([]bool, target.VertexCount()),
	}
	s.extend(0)
	return finishResult(a, s.best, s.bestSize, swapped, s.cd)
}

type inducedSearch struct {
	query, target *chem.Graph
	ix            *match.Index
	cd            *countdown

	mapping    match.Mapping
	usedTarget []bool
	mappedList []int // query vertices in assignment order
	matched    int

	bestSize int
	best     match.Mapping
}

func (s *inducedSearch) extend(pos int) {
	if !s.cd.spend() {
		return
	}
	order := s.ix.SearchOrder()
	// Every remaining query vertex could at best be mapped; prune when even
	// that cannot beat the incumbent.
	if s.matched+(len(order)-pos) <= s.bestSize {
		return
	}
	if pos == len(order) {
		return
	}
	q := order[pos]
	for _, t := range s.ix.Candidates(q) {
		if s.usedTarget[t] || !s.consistent(q, t) {
			continue
		}
		s.assign(q, t)
		if s.matched > s.bestSize {
			s.bestSize = s.matched
			s.best = s.mapping.Clone()
		}
		s.extend(pos + 1)
		s.unassign(q, t)
		if s.cd.exhausted {
			return
		}
	}
	// Leave q outside the common subgraph.
	s.extend(pos + 1)
}

// consistent enforces edge-iff-edge with equal bonds between q→t and every
// mapped pair.  Non-adjacent pairs must stay non-adjacent on both sides, so
// all mapped vertices are checked, not just q's neighbors.
func (s *inducedSearch) consistent(q, t int) bool {
	for _, q2 := range s.mappedList {
		t2 := s.mapping[q2]
		qe, qok := s.query.EdgeBetween(q, q2)
		te, tok := s.target.EdgeBetween(t, t2)
		if qok != tok {
			return false
		}
		if qok && !chem.BondsEqual(s.query.Edge(qe).Bond, s.target.Edge(te).Bond) {
			return false
		}
	}
	return true
}

func (s *inducedSearch) assign(q, t int) {
	s.mapping[q] = t
	s.usedTarget[t] = true
	s.mappedList = append(s.mappedList, q)
	s.matched++
}

func (s *inducedSearch) unassign(q, t int) {
	s.mapping[q] = -1
	s.usedTarget[t] = false
	s.mappedList = s.mappedList[:len(s.mappedList)-1]
	s.matched--
}
