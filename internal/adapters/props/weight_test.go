package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molgraph/internal/adapters/smiles"
	"github.com/turtacn/molgraph/internal/domain/chem"
)

func TestStandardWeight(t *testing.T) {
	tests := []struct {
		name   string
		smiles string
		want   float64
	}{
		{"methane", "C", 16.043},            // 12.011 + 4*1.008
		{"water_as_hydroxide", "O", 18.015}, // O + 2H
		{"ethanol", "CCO", 46.069},
		{"benzene", "c1ccccc1", 78.114},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := smiles.Parse(tt.smiles)
			require.NoError(t, err)
			w, err := StandardWeight(g)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, w, 0.01)
		})
	}
}

func TestStandardWeight_IsotopeOverride(t *testing.T) {
	plain, err := smiles.Parse("C")
	require.NoError(t, err)
	labelled, err := smiles.Parse("[13CH4]")
	require.NoError(t, err)

	wp, err := StandardWeight(plain)
	require.NoError(t, err)
	wl, err := StandardWeight(labelled)
	require.NoError(t, err)
	assert.InDelta(t, 13.0+4*1.008, wl, 0.001)
	assert.Greater(t, wl, wp)
}

func TestStandardWeight_UnknownElement(t *testing.T) {
	g := chem.MustGraph([]chem.Atom{{Element: "Xx"}}, nil)
	_, err := StandardWeight(g)
	assert.Error(t, err)
}

func TestStandardWeight_EmptyGraph(t *testing.T) {
	w, err := StandardWeight(chem.MustGraph(nil, nil))
	require.NoError(t, err)
	assert.Equal(t, 0.0, w)
}
