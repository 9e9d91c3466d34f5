// Package chem provides the canonical attributed-graph model for molecules:
// atoms as vertices, bonds as edges, both carrying chemical attributes.  A
// Graph is validated and made immutable at construction; every algorithm in
// the matching and common-subgraph layers operates read-only over it, which
// makes concurrent queries over shared graphs safe without locking.
package chem

import "fmt"

// Atom holds the chemical attributes of a single vertex.  The vertex identity
// is its dense index within the owning Graph, not anything stored here.
type Atom struct {
	// Element is the element symbol, e.g. "C", "N", "Cl".
	Element string `json:"element"`

	// Charge is the formal charge in elementary units.
	Charge int `json:"charge,omitempty"`

	// Aromatic marks atoms that are part of an aromatic system.
	Aromatic bool `json:"aromatic,omitempty"`

	// Isotope is the mass number, or 0 for natural abundance.
	Isotope int `json:"isotope,omitempty"`

	// Hydrogens is the implicit hydrogen count attached to this atom.
	Hydrogens int `json:"hydrogens,omitempty"`

	// InRing marks atoms that lie on at least one cycle.  It is derived
	// during Graph construction and overwritten there; callers do not need
	// to supply it.
	InRing bool `json:"in_ring,omitempty"`
}

func (a Atom) String() string {
	s := a.Element
	if a.Aromatic {
		s += ":ar"
	}
	if a.Charge != 0 {
		s += fmt.Sprintf("%+d", a.Charge)
	}
	if a.Isotope != 0 {
		s = fmt.Sprintf("[%d]%s", a.Isotope, s)
	}
	return s
}

// BondOrder enumerates the bond orders the model distinguishes.
type BondOrder uint8

const (
	BondSingle   BondOrder = 1
	BondDouble   BondOrder = 2
	BondTriple   BondOrder = 3
	BondAromatic BondOrder = 4
)

// IsValid reports whether the bond order is one of the defined constants.
func (o BondOrder) IsValid() bool {
	return o >= BondSingle && o <= BondAromatic
}

func (o BondOrder) String() string {
	switch o {
	case BondSingle:
		return "single"
	case BondDouble:
		return "double"
	case BondTriple:
		return "triple"
	case BondAromatic:
		return "aromatic"
	default:
		return fmt.Sprintf("order(%d)", uint8(o))
	}
}

// Bond holds the chemical attributes of a single edge.  The edge identity is
// the unordered pair of vertex indices it connects.
type Bond struct {
	// Order is the bond order (single/double/triple/aromatic).
	Order BondOrder `json:"order"`

	// Stereo marks bonds carrying cis/trans or wedge stereo annotation.
	Stereo bool `json:"stereo,omitempty"`

	// InRing marks bonds that lie on at least one cycle.  Derived during
	// Graph construction, like Atom.InRing.
	InRing bool `json:"in_ring,omitempty"`
}

// AtomsEqual is the attribute-equality predicate used by exact-isomorphism
// and common-subgraph search.  Element, charge, isotope, and aromaticity must
// agree; implicit-hydrogen counts and ring flags are derived bookkeeping and
// deliberately excluded from identity.
func AtomsEqual(a, b Atom) bool {
	return a.Element == b.Element &&
		a.Charge == b.Charge &&
		a.Isotope == b.Isotope &&
		a.Aromatic == b.Aromatic
}

// BondsEqual is the attribute-equality predicate for edges: bond order and
// stereo annotation must agree; ring flags are excluded, matching AtomsEqual.
func BondsEqual(a, b Bond) bool {
	return a.Order == b.Order && a.Stereo == b.Stereo
}
