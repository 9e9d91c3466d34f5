package chem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molgraph/pkg/errors"
)

func carbon() Atom { return Atom{Element: "C", Hydrogens: 4} }
func oxygen() Atom { return Atom{Element: "O", Hydrogens: 2} }
func single() Bond { return Bond{Order: BondSingle} }

// chain builds a path of n carbons.
func chain(n int) *Graph {
	atoms := make([]Atom, n)
	for i := range atoms {
		atoms[i] = carbon()
	}
	edges := make([]EdgeSpec, 0, n-1)
	for i := 0; i+1 < n; i++ {
		edges = append(edges, EdgeSpec{U: i, V: i + 1, Bond: single()})
	}
	return MustGraph(atoms, edges)
}

// ring builds a cycle of n carbons.
func ring(n int) *Graph {
	atoms := make([]Atom, n)
	for i := range atoms {
		atoms[i] = carbon()
	}
	edges := make([]EdgeSpec, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, EdgeSpec{U: i, V: (i + 1) % n, Bond: single()})
	}
	return MustGraph(atoms, edges)
}

func TestNewGraph_Valid(t *testing.T) {
	g, err := NewGraph(
		[]Atom{carbon(), carbon(), oxygen()},
		[]EdgeSpec{
			{U: 0, V: 1, Bond: single()},
			{U: 2, V: 1, Bond: Bond{Order: BondDouble}},
		},
	)
	require.NoError(t, err)
	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 2, g.EdgeCount())

	// Endpoints are normalised.
	e := g.Edge(1)
	assert.Equal(t, 1, e.U)
	assert.Equal(t, 2, e.V)

	idx, ok := g.EdgeBetween(2, 1)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	_, ok = g.EdgeBetween(0, 2)
	assert.False(t, ok)

	assert.Equal(t, 2, g.Degree(1))
	assert.Len(t, g.Neighbors(0), 1)
	assert.Equal(t, 1, g.Neighbors(0)[0].Vertex)
}

func TestNewGraph_EmptyIsLegal(t *testing.T) {
	g, err := NewGraph(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, g.VertexCount())
	assert.Equal(t, 0, g.EdgeCount())
}

func TestNewGraph_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		atoms []Atom
		edges []EdgeSpec
		code  errors.ErrorCode
	}{
		{
			name:  "self_loop",
			atoms: []Atom{carbon()},
			edges: []EdgeSpec{{U: 0, V: 0, Bond: single()}},
			code:  errors.ErrCodeGraphSelfLoop,
		},
		{
			name:  "dangling_index",
			atoms: []Atom{carbon(), carbon()},
			edges: []EdgeSpec{{U: 0, V: 5, Bond: single()}},
			code:  errors.ErrCodeGraphDanglingEdge,
		},
		{
			name:  "negative_index",
			atoms: []Atom{carbon(), carbon()},
			edges: []EdgeSpec{{U: -1, V: 1, Bond: single()}},
			code:  errors.ErrCodeGraphDanglingEdge,
		},
		{
			name:  "duplicate_edge",
			atoms: []Atom{carbon(), carbon()},
			edges: []EdgeSpec{
				{U: 0, V: 1, Bond: single()},
				{U: 1, V: 0, Bond: Bond{Order: BondDouble}},
			},
			code: errors.ErrCodeGraphDuplicateEdge,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGraph(tt.atoms, tt.edges)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code), "want code %s, got %v", tt.code, err)
			assert.True(t, errors.IsMalformedGraph(err))
		})
	}
}

func TestRingAnnotation(t *testing.T) {
	r := ring(6)
	for i := 0; i < r.VertexCount(); i++ {
		assert.True(t, r.Atom(i).InRing, "ring vertex %d", i)
	}
	for k := 0; k < r.EdgeCount(); k++ {
		assert.True(t, r.Edge(k).Bond.InRing, "ring edge %d", k)
	}

	c := chain(4)
	for i := 0; i < c.VertexCount(); i++ {
		assert.False(t, c.Atom(i).InRing, "chain vertex %d", i)
	}
	for k := 0; k < c.EdgeCount(); k++ {
		assert.False(t, c.Edge(k).Bond.InRing, "chain edge %d", k)
	}
}

func TestRingAnnotation_RingWithTail(t *testing.T) {
	// Cyclopropane with a methyl tail: 0-1-2-0 ring, 2-3 bridge.
	atoms := []Atom{carbon(), carbon(), carbon(), carbon()}
	g := MustGraph(atoms, []EdgeSpec{
		{U: 0, V: 1, Bond: single()},
		{U: 1, V: 2, Bond: single()},
		{U: 2, V: 0, Bond: single()},
		{U: 2, V: 3, Bond: single()},
	})
	assert.True(t, g.Atom(0).InRing)
	assert.True(t, g.Atom(2).InRing)
	assert.False(t, g.Atom(3).InRing)

	bridgeIdx, ok := g.EdgeBetween(2, 3)
	require.True(t, ok)
	assert.False(t, g.Edge(bridgeIdx).Bond.InRing)
	ringIdx, _ := g.EdgeBetween(0, 1)
	assert.True(t, g.Edge(ringIdx).Bond.InRing)
}

func TestAtomsEqual(t *testing.T) {
	a := Atom{Element: "C", Charge: 0, Aromatic: true}
	b := Atom{Element: "C", Charge: 0, Aromatic: true, Hydrogens: 1, InRing: true}
	// Hydrogens and ring flags are not part of identity.
	assert.True(t, AtomsEqual(a, b))

	assert.False(t, AtomsEqual(a, Atom{Element: "N", Aromatic: true}))
	assert.False(t, AtomsEqual(a, Atom{Element: "C", Charge: 1, Aromatic: true}))
	assert.False(t, AtomsEqual(a, Atom{Element: "C", Aromatic: false}))
	assert.False(t, AtomsEqual(a, Atom{Element: "C", Aromatic: true, Isotope: 13}))
}

func TestBondsEqual(t *testing.T) {
	assert.True(t, BondsEqual(Bond{Order: BondDouble}, Bond{Order: BondDouble, InRing: true}))
	assert.False(t, BondsEqual(Bond{Order: BondDouble}, Bond{Order: BondSingle}))
	assert.False(t, BondsEqual(Bond{Order: BondSingle, Stereo: true}, Bond{Order: BondSingle}))
}

func TestBondOrderString(t *testing.T) {
	assert.Equal(t, "single", BondSingle.String())
	assert.Equal(t, "aromatic", BondAromatic.String())
	assert.False(t, BondOrder(0).IsValid())
	assert.False(t, BondOrder(9).IsValid())
}
