package chem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molgraph/pkg/errors"
)

func TestConstraint_Matches(t *testing.T) {
	assert.True(t, Any[string]().Matches("C"))
	assert.True(t, Any[string]().Matches(""))

	exact := Exactly("N")
	assert.True(t, exact.Matches("N"))
	assert.False(t, exact.Matches("C"))

	halogen := OneOf("F", "Cl", "Br", "I")
	assert.True(t, halogen.Matches("Cl"))
	assert.False(t, halogen.Matches("C"))

	// Malformed tag never matches.
	assert.False(t, Constraint[string]{Kind: ConstraintKind(99)}.Matches("C"))
}

func TestPatternAtom_Asymmetry(t *testing.T) {
	// "any halogen" accepts Cl but a concrete Cl atom pattern does not
	// accept Br: compatibility is pattern -> concrete only.
	anyHalogen := PatternAtom{
		Element:  OneOf("F", "Cl", "Br", "I"),
		Charge:   Exactly(0),
		Aromatic: Exactly(false),
		Isotope:  Any[int](),
	}
	assert.True(t, anyHalogen.Matches(Atom{Element: "Cl"}))
	assert.True(t, anyHalogen.Matches(Atom{Element: "Br", Isotope: 81}))
	assert.False(t, anyHalogen.Matches(Atom{Element: "C"}))
	assert.False(t, anyHalogen.Matches(Atom{Element: "Cl", Charge: -1}))

	concrete := ExactAtom(Atom{Element: "Cl"})
	assert.True(t, concrete.Matches(Atom{Element: "Cl"}))
	assert.False(t, concrete.Matches(Atom{Element: "Br"}))
}

func TestPatternBond_Matches(t *testing.T) {
	anyOrder := PatternBond{Order: Any[BondOrder](), Stereo: Any[bool]()}
	assert.True(t, anyOrder.Matches(Bond{Order: BondTriple}))

	ringBond := PatternBond{Order: OneOf(BondSingle, BondAromatic), Stereo: Any[bool]()}
	assert.True(t, ringBond.Matches(Bond{Order: BondAromatic}))
	assert.False(t, ringBond.Matches(Bond{Order: BondDouble}))
}

func TestNewPattern_Invariants(t *testing.T) {
	atoms := []PatternAtom{ExactAtom(carbon()), ExactAtom(carbon())}

	_, err := NewPattern(atoms, []PatternEdgeSpec{{U: 0, V: 0}})
	assert.True(t, errors.IsCode(err, errors.ErrCodeGraphSelfLoop))

	_, err = NewPattern(atoms, []PatternEdgeSpec{{U: 0, V: 7}})
	assert.True(t, errors.IsCode(err, errors.ErrCodeGraphDanglingEdge))

	_, err = NewPattern(atoms, []PatternEdgeSpec{
		{U: 0, V: 1, Bond: ExactBond(single())},
		{U: 1, V: 0, Bond: ExactBond(single())},
	})
	assert.True(t, errors.IsCode(err, errors.ErrCodeGraphDuplicateEdge))
}

func TestPatternFromGraph(t *testing.T) {
	g := MustGraph(
		[]Atom{carbon(), oxygen()},
		[]EdgeSpec{{U: 0, V: 1, Bond: Bond{Order: BondDouble}}},
	)
	p := PatternFromGraph(g)
	require.Equal(t, 2, p.VertexCount())
	require.Equal(t, 1, p.EdgeCount())

	assert.True(t, p.Atom(0).Matches(g.Atom(0)))
	assert.False(t, p.Atom(0).Matches(g.Atom(1)))
	assert.True(t, p.Edge(0).Bond.Matches(Bond{Order: BondDouble}))
	assert.False(t, p.Edge(0).Bond.Matches(Bond{Order: BondSingle}))

	idx, ok := p.EdgeBetween(1, 0)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 1, p.Degree(0))
}
