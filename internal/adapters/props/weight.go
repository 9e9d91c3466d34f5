// Package props computes scalar molecular properties from molecule graphs.
package props

import (
	"github.com/turtacn/molgraph/internal/domain/chem"
	"github.com/turtacn/molgraph/pkg/errors"
)

// standardWeights maps element symbols to IUPAC standard atomic weights.
var standardWeights = map[string]float64{
	"H": 1.008, "He": 4.003, "Li": 6.94, "Be": 9.012, "B": 10.81,
	"C": 12.011, "N": 14.007, "O": 15.999, "F": 18.998, "Ne": 20.180,
	"Na": 22.990, "Mg": 24.305, "Al": 26.982, "Si": 28.085, "P": 30.974,
	"S": 32.06, "Cl": 35.45, "Ar": 39.948, "K": 39.098, "Ca": 40.078,
	"Ti": 47.867, "Cr": 51.996, "Mn": 54.938, "Fe": 55.845, "Co": 58.933,
	"Ni": 58.693, "Cu": 63.546, "Zn": 65.38, "As": 74.922, "Se": 78.971,
	"Br": 79.904, "Mo": 95.95, "Ru": 101.07, "Pd": 106.42, "Ag": 107.868,
	"Cd": 112.414, "Sn": 118.71, "Sb": 121.76, "Te": 127.60, "I": 126.904,
	"Pt": 195.084, "Au": 196.967, "Hg": 200.592, "Pb": 207.2, "Bi": 208.980,
}

const hydrogenWeight = 1.008

// StandardWeight sums the standard atomic weights of all atoms plus their
// implicit hydrogens.  An atom with a nonzero isotope annotation contributes
// its mass number instead of the element's standard weight, which keeps
// labelled and unlabelled molecules distinguishable.  Unknown element symbols
// are rejected.
func StandardWeight(g *chem.Graph) (float64, error) {
	total := 0.0
	for i := 0; i < g.VertexCount(); i++ {
		a := g.Atom(i)
		if a.Isotope != 0 {
			total += float64(a.Isotope)
		} else {
			w, ok := standardWeights[a.Element]
			if !ok {
				return 0, errors.New(errors.ErrCodeElementUnknown,
					"no standard weight for element").WithDetail(a.Element)
			}
			total += w
		}
		total += float64(a.Hydrogens) * hydrogenWeight
	}
	return total, nil
}
