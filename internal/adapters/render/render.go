// Package render draws molecule graphs as 2D structure diagrams: a DOT
// description of the attributed graph, laid out and rasterized to SVG with
// Graphviz.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/turtacn/molgraph/internal/domain/chem"
	"github.com/turtacn/molgraph/pkg/errors"
)

// ToDOT converts a molecule graph to Graphviz DOT.  Carbons are drawn as
// bare points the way chemists sketch them; heteroatoms get their symbol
// with charge and isotope annotations.  Bond orders map to edge styles:
// double and triple bonds to parallel lines, aromatic bonds to dashed ones.
func ToDOT(g *chem.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("graph mol {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=plaintext, fontsize=16, width=0.1, height=0.1, margin=\"0.02,0.02\"];\n")
	buf.WriteString("  edge [len=0.9];\n")
	buf.WriteString("\n")

	for i := 0; i < g.VertexCount(); i++ {
		fmt.Fprintf(&buf, "  n%d [%s];\n", i, strings.Join(atomAttrs(g.Atom(i)), ", "))
	}

	buf.WriteString("\n")
	for e := 0; e < g.EdgeCount(); e++ {
		edge := g.Edge(e)
		fmt.Fprintf(&buf, "  n%d -- n%d [%s];\n", edge.U, edge.V, strings.Join(bondAttrs(edge.Bond), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func atomAttrs(a chem.Atom) []string {
	label := a.Element
	if a.Isotope != 0 {
		label = fmt.Sprintf("%d%s", a.Isotope, label)
	}
	switch {
	case a.Charge > 0:
		label += strings.Repeat("+", a.Charge)
	case a.Charge < 0:
		label += strings.Repeat("-", -a.Charge)
	}

	attrs := []string{fmt.Sprintf("label=%q", label)}
	if a.Element == "C" && a.Charge == 0 && a.Isotope == 0 {
		// Skeletal convention: plain carbons are vertices, not letters.
		attrs = []string{`label=""`, "shape=point", "width=0.06"}
	}
	if a.Aromatic {
		attrs = append(attrs, "fontcolor=\"#1f77b4\"")
	}
	return attrs
}

func bondAttrs(b chem.Bond) []string {
	var attrs []string
	switch b.Order {
	case chem.BondDouble:
		attrs = append(attrs, `color="black:invis:black"`)
	case chem.BondTriple:
		attrs = append(attrs, `color="black:invis:black:invis:black"`)
	case chem.BondAromatic:
		attrs = append(attrs, "style=dashed")
	default:
		attrs = append(attrs, "color=black")
	}
	if b.Stereo {
		attrs = append(attrs, "penwidth=1.4")
	}
	return attrs
}

// SVG lays out the molecule with Graphviz and returns the SVG bytes.
func SVG(ctx context.Context, g *chem.Graph) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRenderFailed, "init graphviz")
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(ToDOT(g)))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRenderFailed, "parse DOT")
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRenderFailed, "render SVG")
	}
	return buf.Bytes(), nil
}
