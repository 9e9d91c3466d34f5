package chem

import (
	"fmt"

	"github.com/turtacn/molgraph/pkg/errors"
)

// EdgeSpec is the construction-time description of one bond: two vertex
// indices and the bond attributes.  NewGraph normalises the endpoint order.
type EdgeSpec struct {
	U, V int
	Bond Bond
}

// Edge is one validated bond inside a Graph.  Endpoints are normalised so
// that U < V; Index is the edge's position in the owning graph's edge list.
type Edge struct {
	U, V  int
	Bond  Bond
	Index int
}

// Other returns the endpoint opposite to v.
func (e Edge) Other(v int) int {
	if e.U == v {
		return e.V
	}
	return e.U
}

// Neighbor is one entry of a vertex's adjacency list: the adjacent vertex and
// the connecting edge's index.
type Neighbor struct {
	Vertex int
	Edge   int
}

// Graph is an immutable attributed molecular graph.  Vertices are identified
// by dense indices 0..n-1; edges hold vertex indices by value, so the
// structure is cycle-free from an ownership perspective.  All exported
// accessors are read-only; a Graph is safe for concurrent use by any number
// of queries once constructed.
type Graph struct {
	atoms []Atom
	edges []Edge
	adj   [][]Neighbor
	// pairIndex maps a normalised (u,v) key to an edge index for O(1)
	// adjacency tests during search.
	pairIndex map[pairKey]int
}

type pairKey struct{ u, v int }

func normPair(u, v int) pairKey {
	if u > v {
		u, v = v, u
	}
	return pairKey{u, v}
}

// NewGraph validates the given atom and edge records and assembles a Graph.
// It fails with a GRAPH_* error when an edge references an out-of-range
// vertex index, when the same vertex pair appears twice, or when an edge is
// a self-loop.  Ring-membership flags on atoms and bonds are derived here
// (an edge is in a ring iff it is not a bridge) and overwrite whatever the
// caller supplied.
//
// An empty graph (no atoms) is legal: the metric layer defines similarity
// over empty inputs, so construction must not reject them.
func NewGraph(atoms []Atom, edges []EdgeSpec) (*Graph, error) {
	g := &Graph{
		atoms:     make([]Atom, len(atoms)),
		edges:     make([]Edge, 0, len(edges)),
		adj:       make([][]Neighbor, len(atoms)),
		pairIndex: make(map[pairKey]int, len(edges)),
	}
	copy(g.atoms, atoms)

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
		if _, dup := g.pairIndex[key]; dup {
			return nil, errors.New(errors.ErrCodeGraphDuplicateEdge, "duplicate edge between the same vertex pair").
				WithDetail(fmt.Sprintf("edge=(%d,%d)", spec.U, spec.V))
		}
		if !spec.Bond.Order.IsValid() {
			return nil, errors.New(errors.ErrCodeValidation, "bond order out of range").
				WithDetail(fmt.Sprintf("edge=(%d,%d) order=%d", spec.U, spec.V, spec.Bond.Order))
		}

		idx := len(g.edges)
		e := Edge{U: key.u, V: key.v, Bond: spec.Bond, Index: idx}
		g.edges = append(g.edges, e)
		g.pairIndex[key] = idx
		g.adj[e.U] = append(g.adj[e.U], Neighbor{Vertex: e.V, Edge: idx})
		g.adj[e.V] = append(g.adj[e.V], Neighbor{Vertex: e.U, Edge: idx})
	}

	g.annotateRings()
	return g, nil
}

// MustGraph is a test/fixture helper that panics on construction errors.
func MustGraph(atoms []Atom, edges []EdgeSpec) *Graph {
	g, err := NewGraph(atoms, edges)
	if err != nil {
		panic(err)
	}
	return g
}

// VertexCount returns the number of atoms.
func (g *Graph) VertexCount() int { return len(g.atoms) }

// EdgeCount returns the number of bonds.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Atom returns the attributes of vertex i.  The index must be in range.
func (g *Graph) Atom(i int) Atom { return g.atoms[i] }

// Edge returns edge k.  The index must be in range.
func (g *Graph) Edge(k int) Edge { return g.edges[k] }

// Neighbors returns the ordered adjacency list of vertex i.  The returned
// slice is owned by the Graph and must not be modified.
func (g *Graph) Neighbors(i int) []Neighbor { return g.adj[i] }

// Degree returns the number of bonds incident to vertex i.
func (g *Graph) Degree(i int) int { return len(g.adj[i]) }

// EdgeBetween returns the index of the edge connecting u and v, or false when
// the vertices are not adjacent.
func (g *Graph) EdgeBetween(u, v int) (int, bool) {
	idx, ok := g.pairIndex[normPair(u, v)]
	return idx, ok
}

// annotateRings derives ring membership: an edge is in a ring iff it is not a
// bridge, and a vertex is in a ring iff some incident edge is.  Bridges are
// found with a single DFS over lowpoint values (iterative, so pathological
// inputs cannot overflow the call stack).
func (g *Graph) annotateRings() {
	n := len(g.atoms)
	if n == 0 {
		return
	}

	disc := make([]int, n)
	low := make([]int, n)
	parentEdge := make([]int, n)
	for i := range disc {
		disc[i] = -1
		parentEdge[i] = -1
	}
	bridge := make([]bool, len(g.edges))

	type frame struct {
		v    int
		next int
	}
	timer := 0
	for start := 0; start < n; start++ {
		if disc[start] != -1 {
			continue
		}
		stack := []frame{{v: start}}
		disc[start], low[start] = timer, timer
		timer++
		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			if f.next < len(g.adj[f.v]) {
				nb := g.adj[f.v][f.next]
				f.next++
				if nb.Edge == parentEdge[f.v] {
					continue
				}
				if disc[nb.Vertex] == -1 {
					disc[nb.Vertex], low[nb.Vertex] = timer, timer
					timer++
					parentEdge[nb.Vertex] = nb.Edge
					stack = append(stack, frame{v: nb.Vertex})
				} else if disc[nb.Vertex] < low[f.v] {
					low[f.v] = disc[nb.Vertex]
				}
			} else {
				stack = stack[:len(stack)-1]
				if len(stack) > 0 {
					p := stack[len(stack)-1].v
					if low[f.v] < low[p] {
						low[p] = low[f.v]
					}
					if low[f.v] > disc[p] {
						bridge[parentEdge[f.v]] = true
					}
				}
			}
		}
	}

	for i := range g.atoms {
		g.atoms[i].InRing = false
	}
	for k := range g.edges {
		if !bridge[k] {
			g.edges[k].Bond.InRing = true
			g.atoms[g.edges[k].U].InRing = true
			g.atoms[g.edges[k].V].InRing = true
		} else {
			g.edges[k].Bond.InRing = false
		}
	}
}
