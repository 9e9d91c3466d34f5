package chem

import (
	"fmt"

	"github.com/turtacn/molgraph/pkg/errors"
)

// ConstraintKind tags the variant of an attribute constraint inside a
// Pattern.  Patterns match concrete graphs asymmetrically: a constraint
// decides whether a concrete value is acceptable, never the reverse.
type ConstraintKind uint8

const (
	// ConstraintAny accepts every concrete value ("don't care").
	ConstraintAny ConstraintKind = iota
	// ConstraintExact accepts exactly one concrete value.
	ConstraintExact
	// ConstraintOneOf accepts any value from a finite set, e.g. "any halogen".
	ConstraintOneOf
)

// Constraint is a tagged-variant attribute constraint.  A single Matches
// function dispatches over the tag, keeping pattern compatibility in one
// place instead of scattering duck-typed comparisons.
type Constraint[T comparable] struct {
	Kind   ConstraintKind
	Values []T // one entry for Exact, n entries for OneOf, ignored for Any
}

// Any returns the wildcard constraint.
func Any[T comparable]() Constraint[T] {
	return Constraint[T]{Kind: ConstraintAny}
}

// Exactly returns a constraint matching only v.
func Exactly[T comparable](v T) Constraint[T] {
	return Constraint[T]{Kind: ConstraintExact, Values: []T{v}}
}

// OneOf returns a constraint matching any of vs.
func OneOf[T comparable](vs ...T) Constraint[T] {
	return Constraint[T]{Kind: ConstraintOneOf, Values: vs}
}

// Matches reports whether the concrete value v satisfies the constraint.
func (c Constraint[T]) Matches(v T) bool {
	switch c.Kind {
	case ConstraintAny:
		return true
	case ConstraintExact:
		return len(c.Values) == 1 && c.Values[0] == v
	case ConstraintOneOf:
		for _, w := range c.Values {
			if w == v {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// PatternAtom constrains the attributes of one pattern vertex.
type PatternAtom struct {
	Element  Constraint[string]
	Charge   Constraint[int]
	Aromatic Constraint[bool]
	Isotope  Constraint[int]
}

// ExactAtom builds a PatternAtom that matches concrete atoms with exactly the
// given attributes, which is what a wildcard-free pattern contains.
func ExactAtom(a Atom) PatternAtom {
	return PatternAtom{
		Element:  Exactly(a.Element),
		Charge:   Exactly(a.Charge),
		Aromatic: Exactly(a.Aromatic),
		Isotope:  Exactly(a.Isotope),
	}
}

// Matches reports whether concrete atom a satisfies every constraint.
func (p PatternAtom) Matches(a Atom) bool {
	return p.Element.Matches(a.Element) &&
		p.Charge.Matches(a.Charge) &&
		p.Aromatic.Matches(a.Aromatic) &&
		p.Isotope.Matches(a.Isotope)
}

// PatternBond constrains the attributes of one pattern edge.
type PatternBond struct {
	Order  Constraint[BondOrder]
	Stereo Constraint[bool]
}

// ExactBond builds a PatternBond matching exactly the given bond attributes.
func ExactBond(b Bond) PatternBond {
	return PatternBond{
		Order:  Exactly(b.Order),
		Stereo: Exactly(b.Stereo),
	}
}

// Matches reports whether concrete bond b satisfies every constraint.
func (p PatternBond) Matches(b Bond) bool {
	return p.Order.Matches(b.Order) && p.Stereo.Matches(b.Stereo)
}

// PatternEdgeSpec is the construction-time description of one pattern edge.
type PatternEdgeSpec struct {
	U, V int
	Bond PatternBond
}

// PatternEdge is one validated pattern edge; endpoints are normalised U < V.
type PatternEdge struct {
	U, V  int
	Bond  PatternBond
	Index int
}

// Pattern is the query-side counterpart of Graph for substructure search.
// It shares Graph's structural invariants (dense indices, no duplicate edges
// or self-loops, immutable after construction) but its attributes carry
// constraints rather than concrete values.
type Pattern struct {
	atoms     []PatternAtom
	edges     []PatternEdge
	adj       [][]Neighbor
	pairIndex map[pairKey]int
}

// NewPattern validates pattern atom and edge records, enforcing the same
// structural invariants as NewGraph.
func NewPattern(atoms []PatternAtom, edges []PatternEdgeSpec) (*Pattern, error) {
	p := &Pattern{
		atoms:     make([]PatternAtom, len(atoms)),
		edges:     make([]PatternEdge, 0, len(edges)),
		adj:       make([][]Neighbor, len(atoms)),
		pairIndex: make(map[pairKey]int, len(edges)),
	}
	copy(p.atoms, atoms)

	for _, spec := range edges {
		if spec.U == spec.V {
			return nil, errors.New(errors.ErrCodeGraphSelfLoop, "self-loop edges are not allowed").
				WithDetail(fmt.Sprintf("vertex=%d", spec.U))
		}
		if spec.U < 0 || spec.U >= len(atoms) || spec.V < 0 || spec.V >= len(atoms) {
			return nil, errors.New(errors.ErrCodeGraphDanglingEdge, "edge references an out-of-range vertex index").
				WithDetail(fmt.Sprintf("edge=(%d,%d) vertices=%d", spec.U, spec.V, len(atoms)))
		}
		key := normPair(spec.U, spec.V)
		if _, dup := p.pairIndex[key]; dup {
			return nil, errors.New(errors.ErrCodeGraphDuplicateEdge, "duplicate edge between the same vertex pair").
				WithDetail(fmt.Sprintf("edge=(%d,%d)", spec.U, spec.V))
		}

		idx := len(p.edges)
		e := PatternEdge{U: key.u, V: key.v, Bond: spec.Bond, Index: idx}
		p.edges = append(p.edges, e)
		p.pairIndex[key] = idx
		p.adj[e.U] = append(p.adj[e.U], Neighbor{Vertex: e.V, Edge: idx})
		p.adj[e.V] = append(p.adj[e.V], Neighbor{Vertex: e.U, Edge: idx})
	}
	return p, nil
}

// MustPattern is a test/fixture helper that panics on construction errors.
func MustPattern(atoms []PatternAtom, edges []PatternEdgeSpec) *Pattern {
	p, err := NewPattern(atoms, edges)
	if err != nil {
		panic(err)
	}
	return p
}

// PatternFromGraph lifts a concrete Graph into a wildcard-free Pattern.  It
// is the bridge used when a caller supplies a plain molecule as the query of
// a substructure search.
func PatternFromGraph(g *Graph) *Pattern {
	atoms := make([]PatternAtom, g.VertexCount())
	for i := range atoms {
		atoms[i] = ExactAtom(g.Atom(i))
	}
	edges := make([]PatternEdgeSpec, g.EdgeCount())
	for k := range edges {
		e := g.Edge(k)
		edges[k] = PatternEdgeSpec{U: e.U, V: e.V, Bond: ExactBond(e.Bond)}
	}
	p, err := NewPattern(atoms, edges)
	if err != nil {
		// The source graph already satisfied the same invariants.
		panic(err)
	}
	return p
}

// VertexCount returns the number of pattern atoms.
func (p *Pattern) VertexCount() int { return len(p.atoms) }

// EdgeCount returns the number of pattern bonds.
func (p *Pattern) EdgeCount() int { return len(p.edges) }

// Atom returns the constraints of pattern vertex i.
func (p *Pattern) Atom(i int) PatternAtom { return p.atoms[i] }

// Edge returns pattern edge k.
func (p *Pattern) Edge(k int) PatternEdge { return p.edges[k] }

// Neighbors returns the ordered adjacency list of pattern vertex i.  The
// returned slice is owned by the Pattern and must not be modified.
func (p *Pattern) Neighbors(i int) []Neighbor { return p.adj[i] }

// Degree returns the number of pattern edges incident to vertex i.
func (p *Pattern) Degree(i int) int { return len(p.adj[i]) }

// EdgeBetween returns the index of the pattern edge connecting u and v, or
// false when the vertices are not adjacent.
func (p *Pattern) EdgeBetween(u, v int) (int, bool) {
	idx, ok := p.pairIndex[normPair(u, v)]
	return idx, ok
}
