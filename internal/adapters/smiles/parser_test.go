package smiles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molgraph/internal/domain/chem"
	"github.com/turtacn/molgraph/pkg/errors"
)

func TestParse_Ethanol(t *testing.T) {
	g, err := Parse("CCO")
	require.NoError(t, err)
	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 2, g.EdgeCount())

	assert.Equal(t, "C", g.Atom(0).Element)
	assert.Equal(t, "O", g.Atom(2).Element)

	// Implicit hydrogens: CH3, CH2, OH.
	assert.Equal(t, 3, g.Atom(0).Hydrogens)
	assert.Equal(t, 2, g.Atom(1).Hydrogens)
	assert.Equal(t, 1, g.Atom(2).Hydrogens)
}

func TestParse_Benzene(t *testing.T) {
	g, err := Parse("c1ccccc1")
	require.NoError(t, err)
	require.Equal(t, 6, g.VertexCount())
	require.Equal(t, 6, g.EdgeCount())

	for i := 0; i < 6; i++ {
		a := g.Atom(i)
		assert.Equal(t, "C", a.Element)
		assert.True(t, a.Aromatic)
		assert.True(t, a.InRing)
		assert.Equal(t, 1, a.Hydrogens, "benzene carbon %d", i)
	}
	for e := 0; e < 6; e++ {
		assert.Equal(t, chem.BondAromatic, g.Edge(e).Bond.Order)
		assert.True(t, g.Edge(e).Bond.InRing)
	}
}

func TestParse_Pyridine(t *testing.T) {
	g, err := Parse("c1ccncc1")
	require.NoError(t, err)
	require.Equal(t, 6, g.VertexCount())
	n := g.Atom(3)
	assert.Equal(t, "N", n.Element)
	assert.True(t, n.Aromatic)
	assert.Equal(t, 0, n.Hydrogens)
}

func TestParse_Pyrrole(t *testing.T) {
	g, err := Parse("c1cc[nH]c1")
	require.NoError(t, err)
	require.Equal(t, 5, g.VertexCount())
	require.Equal(t, 5, g.EdgeCount())
	n := g.Atom(3)
	assert.Equal(t, "N", n.Element)
	assert.True(t, n.Aromatic)
	assert.Equal(t, 1, n.Hydrogens)
}

func TestParse_Cyclohexane(t *testing.T) {
	g, err := Parse("C1CCCCC1")
	require.NoError(t, err)
	assert.Equal(t, 6, g.VertexCount())
	assert.Equal(t, 6, g.EdgeCount())
	for i := 0; i < 6; i++ {
		assert.True(t, g.Atom(i).InRing)
		assert.Equal(t, 2, g.Atom(i).Hydrogens)
	}
}

func TestParse_Branches(t *testing.T) {
	// Isobutane: central carbon bonded to three methyls.
	g, err := Parse("CC(C)C")
	require.NoError(t, err)
	require.Equal(t, 4, g.VertexCount())
	assert.Equal(t, 3, g.Degree(1))
	assert.Equal(t, 1, g.Atom(1).Hydrogens)
}

func TestParse_BondOrders(t *testing.T) {
	ethene, err := Parse("C=C")
	require.NoError(t, err)
	assert.Equal(t, chem.BondDouble, ethene.Edge(0).Bond.Order)
	assert.Equal(t, 2, ethene.Atom(0).Hydrogens)

	nitrile, err := Parse("C#N")
	require.NoError(t, err)
	assert.Equal(t, chem.BondTriple, nitrile.Edge(0).Bond.Order)
	assert.Equal(t, 1, nitrile.Atom(0).Hydrogens)
	assert.Equal(t, 0, nitrile.Atom(1).Hydrogens)
}

func TestParse_DirectionalBondsAreStereo(t *testing.T) {
	g, err := Parse(`F/C=C/F`)
	require.NoError(t, err)
	require.Equal(t, 3, g.EdgeCount())
	e, ok := g.EdgeBetween(0, 1)
	require.True(t, ok)
	assert.Equal(t, chem.BondSingle, g.Edge(e).Bond.Order)
	assert.True(t, g.Edge(e).Bond.Stereo)
}

func TestParse_BracketAtoms(t *testing.T) {
	tests := []struct {
		input   string
		element string
		isotope int
		charge  int
		hcount  int
	}{
		{"[13CH4]", "C", 13, 0, 4},
		{"[NH4+]", "N", 0, 1, 4},
		{"[O-]", "O", 0, -1, 0},
		{"[Fe+2]", "Fe", 0, 2, 0},
		{"[Cu++]", "Cu", 0, 2, 0},
		{"[2H]", "H", 2, 0, 0},
		{"[C@@H3]", "C", 0, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			g, err := Parse(tt.input)
			require.NoError(t, err)
			require.Equal(t, 1, g.VertexCount())
			a := g.Atom(0)
			assert.Equal(t, tt.element, a.Element)
			assert.Equal(t, tt.isotope, a.Isotope)
			assert.Equal(t, tt.charge, a.Charge)
			assert.Equal(t, tt.hcount, a.Hydrogens)
		})
	}
}

func TestParse_Fragments(t *testing.T) {
	// Sodium chloride as two disconnected atoms.
	g, err := Parse("[Na+].[Cl-]")
	require.NoError(t, err)
	assert.Equal(t, 2, g.VertexCount())
	assert.Equal(t, 0, g.EdgeCount())
}

func TestParse_TwoDigitRingClosure(t *testing.T) {
	g, err := Parse("C%10CCCCC%10")
	require.NoError(t, err)
	assert.Equal(t, 6, g.VertexCount())
	assert.Equal(t, 6, g.EdgeCount())
}

func TestParse_RingClosureBond(t *testing.T) {
	// The closure bond may be written on either occurrence.
	g, err := Parse("C=1CCCCC=1")
	require.NoError(t, err)
	e, ok := g.EdgeBetween(0, 5)
	require.True(t, ok)
	assert.Equal(t, chem.BondDouble, g.Edge(e).Bond.Order)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.ErrorCode
	}{
		{"empty", "", errors.ErrCodeSMILESInvalid},
		{"too_long", strings.Repeat("C", maxInputLength+1), errors.ErrCodeSMILESInvalid},
		{"bad_charset", "C?C", errors.ErrCodeSMILESInvalid},
		{"unbalanced_paren", "C(C", errors.ErrCodeSMILESInvalid},
		{"unbalanced_bracket", "[CH4", errors.ErrCodeSMILESInvalid},
		{"unclosed_ring", "C1CC", errors.ErrCodeSMILESInvalid},
		{"ring_self_bond", "C11", errors.ErrCodeSMILESInvalid},
		{"conflicting_ring_bond", "C=1CCCCC#1", errors.ErrCodeSMILESInvalid},
		{"double_bond_symbol", "C==C", errors.ErrCodeSMILESInvalid},
		{"trailing_bond", "CC-", errors.ErrCodeSMILESInvalid},
		{"leading_ring_digit", "1CC", errors.ErrCodeSMILESInvalid},
		{"branch_before_atom", "(C)C", errors.ErrCodeSMILESInvalid},
		{"empty_bracket", "[]", errors.ErrCodeSMILESInvalid},
		{"unknown_element", "[Xx]", errors.ErrCodeElementUnknown},
		{"unbracketed_metal", "FeO", errors.ErrCodeSMILESInvalid},
		{"aromatic_halogen", "f", errors.ErrCodeSMILESInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code), "got %v", err)
		})
	}
}
