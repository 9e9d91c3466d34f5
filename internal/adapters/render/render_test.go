package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molgraph/internal/adapters/smiles"
)

func TestToDOT(t *testing.T) {
	g, err := smiles.Parse("CC(=O)[O-]")
	require.NoError(t, err)

	dot := ToDOT(g)
	assert.True(t, strings.HasPrefix(dot, "graph mol {"))
	assert.Contains(t, dot, "n0")
	assert.Contains(t, dot, "--")
	// Charged oxygen keeps its symbol and charge sign.
	assert.Contains(t, dot, `label="O-"`)
	// Plain carbons collapse to skeletal points.
	assert.Contains(t, dot, "shape=point")
	// The carbonyl double bond renders as parallel lines.
	assert.Contains(t, dot, "black:invis:black")
}

func TestToDOT_AromaticStyle(t *testing.T) {
	g, err := smiles.Parse("c1ccccc1")
	require.NoError(t, err)
	dot := ToDOT(g)
	assert.Contains(t, dot, "style=dashed")
}

func TestToDOT_Isotope(t *testing.T) {
	g, err := smiles.Parse("[13CH4]")
	require.NoError(t, err)
	assert.Contains(t, ToDOT(g), `label="13C"`)
}
