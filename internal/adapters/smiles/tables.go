package smiles

// knownElements lists the element symbols the parsers accept inside
// brackets.  The set mirrors what the comparison engine is actually asked to
// handle; exotic symbols fail fast with an element error instead of becoming
// silent wildcards.
var knownElements = map[string]bool{
	"H": true, "He": true, "Li": true, "Be": true, "B": true, "C": true,
	"N": true, "O": true, "F": true, "Ne": true, "Na": true, "Mg": true,
	"Al": true, "Si": true, "P": true, "S": true, "Cl": true, "Ar": true,
	"K": true, "Ca": true, "Ti": true, "Cr": true, "Mn": true, "Fe": true,
	"Co": true, "Ni": true, "Cu": true, "Zn": true, "As": true, "Se": true,
	"Br": true, "Mo": true, "Ru": true, "Pd": true, "Ag": true, "Cd": true,
	"Sn": true, "Sb": true, "Te": true, "I": true, "Pt": true, "Au": true,
	"Hg": true, "Pb": true, "Bi": true,
}

// organicSubset lists the elements writable outside brackets, per the SMILES
// organic subset, with their default valence used for implicit-hydrogen
// estimation.
var organicSubset = map[string]int{
	"B": 3, "C": 4, "N": 3, "O": 2, "P": 3, "S": 2,
	"F": 1, "Cl": 1, "Br": 1, "I": 1,
}

// aromaticSubset lists the elements that may be written lowercase-aromatic.
var aromaticSubset = map[string]bool{
	"B": true, "C": true, "N": true, "O": true, "P": true, "S": true,
}
