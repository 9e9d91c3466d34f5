package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/molgraph/internal/domain/chem"
)

func TestExactMatch_Reflexive(t *testing.T) {
	for _, g := range []*chem.Graph{
		cycleGraph(4, atomC()),
		pathGraph(atomC(), atomN(), atomC()),
		chem.MustGraph(nil, nil),
	} {
		assert.True(t, ExactMatch(g, g))
	}
}

func TestExactMatch_FourCycle(t *testing.T) {
	a := cycleGraph(4, atomC())
	// Same 4-cycle with a rotated vertex numbering: edges 1-2,2-3,3-0,0-1.
	b := chem.MustGraph(
		[]chem.Atom{atomC(), atomC(), atomC(), atomC()},
		[]chem.EdgeSpec{
			{U: 1, V: 2, Bond: bondS()},
			{U: 2, V: 3, Bond: bondS()},
			{U: 3, V: 0, Bond: bondS()},
			{U: 0, V: 1, Bond: bondS()},
		},
	)
	assert.True(t, ExactMatch(a, b))
	assert.True(t, ExactMatch(b, a))
}

func TestExactMatch_Negative(t *testing.T) {
	fourCycle := cycleGraph(4, atomC())

	tests := []struct {
		name string
		a, b *chem.Graph
	}{
		{"vertex_count", fourCycle, cycleGraph(5, atomC())},
		{"edge_count", fourCycle, pathGraph(atomC(), atomC(), atomC(), atomC())},
		{
			"atom_attributes",
			pathGraph(atomC(), atomC()),
			pathGraph(atomC(), atomN()),
		},
		{
			"bond_attributes",
			pathGraph(atomC(), atomC()),
			chem.MustGraph(
				[]chem.Atom{atomC(), atomC()},
				[]chem.EdgeSpec{{U: 0, V: 1, Bond: chem.Bond{Order: chem.BondDouble}}},
			),
		},
		{
			// C6 ring vs two C3 rings: same counts and degrees, different shape.
			"topology",
			cycleGraph(6, atomC()),
			chem.MustGraph(
				[]chem.Atom{atomC(), atomC(), atomC(), atomC(), atomC(), atomC()},
				[]chem.EdgeSpec{
					{U: 0, V: 1, Bond: bondS()},
					{U: 1, V: 2, Bond: bondS()},
					{U: 2, V: 0, Bond: bondS()},
					{U: 3, V: 4, Bond: bondS()},
					{U: 4, V: 5, Bond: bondS()},
					{U: 5, V: 3, Bond: bondS()},
				},
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, ExactMatch(tt.a, tt.b))
			assert.False(t, ExactMatch(tt.b, tt.a))
		})
	}
}

func TestSubstructureMatch_PathInRing(t *testing.T) {
	// A 3-vertex path pattern embeds into a 6-ring of the same element.
	path := chem.PatternFromGraph(pathGraph(atomC(), atomC(), atomC()))
	ring := cycleGraph(6, atomC())
	assert.True(t, SubstructureMatch(path, ring))

	// The reverse does not hold: the ring has more vertices than the path.
	ringPattern := chem.PatternFromGraph(ring)
	assert.False(t, SubstructureMatch(ringPattern, pathGraph(atomC(), atomC(), atomC())))
}

func TestSubstructureMatch_ExtraTargetEdgesAllowed(t *testing.T) {
	// Pattern C-C (one bond) against a triangle: mapped vertices are also
	// connected through the third vertex, which must not matter.
	pair := chem.PatternFromGraph(pathGraph(atomC(), atomC()))
	assert.True(t, SubstructureMatch(pair, cycleGraph(3, atomC())))
}

func TestSubstructureMatch_Wildcards(t *testing.T) {
	anyBond := chem.PatternBond{Order: chem.Any[chem.BondOrder](), Stereo: chem.Any[bool]()}
	halogen := chem.PatternAtom{
		Element:  chem.OneOf("F", "Cl", "Br", "I"),
		Charge:   chem.Any[int](),
		Aromatic: chem.Any[bool](),
		Isotope:  chem.Any[int](),
	}
	anyAtom := chem.PatternAtom{
		Element:  chem.Any[string](),
		Charge:   chem.Any[int](),
		Aromatic: chem.Any[bool](),
		Isotope:  chem.Any[int](),
	}

	// *~X: any atom bonded anyhow to a halogen.
	p := chem.MustPattern(
		[]chem.PatternAtom{anyAtom, halogen},
		[]chem.PatternEdgeSpec{{U: 0, V: 1, Bond: anyBond}},
	)

	chloroethane := pathGraph(atomC(), atomC(), chem.Atom{Element: "Cl"})
	assert.True(t, SubstructureMatch(p, chloroethane))

	ethanol := pathGraph(atomC(), atomC(), chem.Atom{Element: "O"})
	assert.False(t, SubstructureMatch(p, ethanol))
}

func TestSubstructureMatch_BondConstraint(t *testing.T) {
	// C=C pattern must not match single-bonded ethane.
	doubleBond := chem.MustPattern(
		[]chem.PatternAtom{chem.ExactAtom(atomC()), chem.ExactAtom(atomC())},
		[]chem.PatternEdgeSpec{{U: 0, V: 1, Bond: chem.ExactBond(chem.Bond{Order: chem.BondDouble})}},
	)
	ethane := pathGraph(atomC(), atomC())
	ethene := chem.MustGraph(
		[]chem.Atom{atomC(), atomC()},
		[]chem.EdgeSpec{{U: 0, V: 1, Bond: chem.Bond{Order: chem.BondDouble}}},
	)
	assert.False(t, SubstructureMatch(doubleBond, ethane))
	assert.True(t, SubstructureMatch(doubleBond, ethene))
}

func TestSubstructureMatch_EmptyPattern(t *testing.T) {
	empty := chem.PatternFromGraph(chem.MustGraph(nil, nil))
	assert.True(t, SubstructureMatch(empty, cycleGraph(3, atomC())))
}

func TestMapping(t *testing.T) {
	m := NewMapping(3)
	assert.Equal(t, 0, m.Size())
	m[1] = 7
	assert.Equal(t, 1, m.Size())

	c := m.Clone()
	c[0] = 2
	assert.Equal(t, -1, m[0])
	assert.Equal(t, 2, c[0])
}
