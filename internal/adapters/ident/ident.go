// Package ident derives stable structural identifiers for molecule graphs.
// The key is an InChIKey-shaped digest of an iteratively refined vertex
// invariant, so isomorphic graphs always agree on it regardless of vertex
// numbering.  It is a comparison key, not a registry-grade InChIKey: distinct
// structures can in principle collide, which callers must treat as "maybe
// equal, verify with an exact match".
package ident

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"github.com/turtacn/molgraph/internal/domain/chem"
)

// refinementRounds is the number of neighborhood-refinement iterations.  Each
// round extends every vertex label by one bond of surrounding context;
// molecular graphs are fully discriminated well before ten rounds.
const refinementRounds = 10

// Key returns the 27-character structural key for a molecule,
// formatted XXXXXXXXXXXXXX-XXXXXXXXXX-X like an InChIKey.
func Key(g *chem.Graph) string {
	sum := sha256.Sum256([]byte(CanonicalForm(g)))
	hexStr := strings.ToUpper(hex.EncodeToString(sum[:]))
	return hexStr[:14] + "-" + hexStr[14:24] + "-" + hexStr[24:25]
}

// CanonicalForm returns a vertex-order-independent textual form of the graph:
// the sorted multiset of refined vertex invariants plus the sorted multiset
// of refined edge invariants.  Equal graphs (up to isomorphism) always
// produce equal forms.
func CanonicalForm(g *chem.Graph) string {
	labels := refine(g)

	vertexPart := make([]string, g.VertexCount())
	for i := range vertexPart {
		vertexPart[i] = fmt.Sprintf("%016x", labels[i])
	}
	sort.Strings(vertexPart)

	edgePart := make([]string, g.EdgeCount())
	for e := 0; e < g.EdgeCount(); e++ {
		edge := g.Edge(e)
		lu, lv := labels[edge.U], labels[edge.V]
		if lu > lv {
			lu, lv = lv, lu
		}
		edgePart[e] = fmt.Sprintf("%016x:%016x:%d", lu, lv, edge.Bond.Order)
	}
	sort.Strings(edgePart)

	return fmt.Sprintf("v%d/e%d|%s|%s",
		g.VertexCount(), g.EdgeCount(),
		strings.Join(vertexPart, ","), strings.Join(edgePart, ","))
}

// refine computes per-vertex invariants by iterated neighborhood hashing:
// the initial label encodes the atom's own attributes and degree, then each
// round folds in the sorted (bond, neighbor-label) pairs.
func refine(g *chem.Graph) []uint64 {
	n := g.VertexCount()
	labels := make([]uint64, n)
	for i := 0; i < n; i++ {
		a := g.Atom(i)
		labels[i] = hashParts(
			a.Element,
			fmt.Sprintf("%d/%d/%t/%d/%d", a.Charge, a.Isotope, a.Aromatic, a.Hydrogens, g.Degree(i)),
		)
	}

	next := make([]uint64, n)
	for round := 0; round < refinementRounds; round++ {
		for i := 0; i < n; i++ {
			parts := make([]string, 0, g.Degree(i))
			for _, nb := range g.Neighbors(i) {
				bond := g.Edge(nb.Edge).Bond
				parts = append(parts, fmt.Sprintf("%d/%t/%016x", bond.Order, bond.Stereo, labels[nb.Vertex]))
			}
			sort.Strings(parts)
			next[i] = hashParts(fmt.Sprintf("%016x", labels[i]), strings.Join(parts, ","))
		}
		labels, next = next, labels
	}
	return labels
}

func hashParts(parts ...string) uint64 {
	h := fnv.New64a()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return h.Sum64()
}
