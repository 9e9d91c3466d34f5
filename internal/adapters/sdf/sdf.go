// Package sdf parses MDL MOL blocks (V2000 connection tables) and
// multi-record SDF files into molecule graphs.  Coordinates are ignored; the
// engine compares connectivity and attributes only.
package sdf

import (
	"strconv"
	"strings"

	"github.com/turtacn/molgraph/internal/domain/chem"
	"github.com/turtacn/molgraph/pkg/errors"
)

// legacyCharges maps the V2000 atom-block charge column to formal charges.
// M  CHG property lines override these when present.
var legacyCharges = map[int]int{
	0: 0, 1: 3, 2: 2, 3: 1, 5: -1, 6: -2, 7: -3,
}

// organicValences drives implicit-hydrogen estimation, as in the SMILES
// parser.  Explicit hydrogen vertices in the connection table count toward
// the bond sum, so files that spell out their hydrogens come out right too.
var organicValences = map[string]int{
	"B": 3, "C": 4, "N": 3, "O": 2, "P": 3, "S": 2,
	"F": 1, "Cl": 1, "Br": 1, "I": 1,
}

// Parse converts a single V2000 MOL block into a molecule graph.
func Parse(block string) (*chem.Graph, error) {
	if strings.TrimSpace(block) == "" {
		return nil, errors.New(errors.ErrCodeSDFInvalid, "MOL block is empty")
	}
	lines := strings.Split(strings.ReplaceAll(block, "\r\n", "\n"), "\n")
	if len(lines) < 4 {
		return nil, errors.New(errors.ErrCodeSDFInvalid, "MOL block shorter than header")
	}

	counts := lines[3]
	if !strings.Contains(counts, "V2000") {
		return nil, errors.New(errors.ErrCodeSDFInvalid, "only V2000 connection tables are supported")
	}
	numAtoms, err := countsField(counts, 0)
	if err != nil {
		return nil, err
	}
	numBonds, err := countsField(counts, 3)
	if err != nil {
		return nil, err
	}
	if len(lines) < 4+numAtoms+numBonds {
		return nil, errors.New(errors.ErrCodeSDFInvalid, "connection table truncated")
	}

	atoms := make([]chem.Atom, numAtoms)
	halfBonds := make([]int, numAtoms)
	for i := 0; i < numAtoms; i++ {
		atom, err := parseAtomLine(lines[4+i])
		if err != nil {
			return nil, err
		}
		atoms[i] = atom
	}

	edges := make([]chem.EdgeSpec, 0, numBonds)
	for i := 0; i < numBonds; i++ {
		line := lines[4+numAtoms+i]
		u, v, bond, err := parseBondLine(line)
		if err != nil {
			return nil, err
		}
		if u < 1 || u > numAtoms || v < 1 || v > numAtoms {
			return nil, errors.New(errors.ErrCodeSDFInvalid, "bond references an atom outside the table").
				WithDetail(line)
		}
		edges = append(edges, chem.EdgeSpec{U: u - 1, V: v - 1, Bond: bond})
		units := 2 * int(bond.Order)
		if bond.Order == chem.BondAromatic {
			units = 3
			atoms[u-1].Aromatic = true
			atoms[v-1].Aromatic = true
		}
		halfBonds[u-1] += units
		halfBonds[v-1] += units
	}

	if err := applyProperties(lines[4+numAtoms+numBonds:], atoms); err != nil {
		return nil, err
	}

	for i := range atoms {
		valence, ok := organicValences[atoms[i].Element]
		if !ok {
			continue
		}
		if h := valence - (halfBonds[i]+1)/2; h > 0 {
			atoms[i].Hydrogens = h
		}
	}

	g, err := chem.NewGraph(atoms, edges)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSDFInvalid, "MOL block describes an invalid graph")
	}
	return g, nil
}

// ParseRecords converts a multi-record SDF file, one graph per $$$$-delimited
// record.  Data items between M  END and the delimiter are skipped.
func ParseRecords(data string) ([]*chem.Graph, error) {
	var graphs []*chem.Graph
	for i, record := range SplitRecords(data) {
		molEnd := strings.Index(record, "M  END")
		if molEnd < 0 {
			return nil, errors.New(errors.ErrCodeSDFInvalid, "record missing M  END").
				WithDetail(strconv.Itoa(i))
		}
		g, err := Parse(record[:molEnd])
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSDFInvalid,
				"record "+strconv.Itoa(i)+" is invalid")
		}
		graphs = append(graphs, g)
	}
	if len(graphs) == 0 {
		return nil, errors.New(errors.ErrCodeSDFInvalid, "no records in SDF input")
	}
	return graphs, nil
}

// SplitRecords cuts a multi-record SDF file into its $$$$-delimited MOL
// blocks without parsing them.  Callers that track per-record outcomes (the
// batch scorer) split first and parse each record on its own.
func SplitRecords(data string) []string {
	var records []string
	for _, rec := range strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "$$$$") {
		// The delimiter's trailing newline ends up at the head of the next
		// record; only leading newlines may be stripped, MOL columns are
		// position-sensitive.
		rec = strings.TrimLeft(rec, "\n")
		if strings.TrimSpace(rec) != "" {
			records = append(records, rec)
		}
	}
	return records
}

// countsField reads one 3-character field from the counts line.
func countsField(line string, offset int) (int, error) {
	if len(line) < offset+3 {
		return 0, errors.New(errors.ErrCodeSDFInvalid, "counts line too short")
	}
	n, err := strconv.Atoi(strings.TrimSpace(line[offset : offset+3]))
	if err != nil || n < 0 {
		return 0, errors.New(errors.ErrCodeSDFInvalid, "malformed counts line").WithDetail(line)
	}
	return n, nil
}

// parseAtomLine reads one atom-block line: three coordinates, a symbol, and
// the legacy charge column.
func parseAtomLine(line string) (chem.Atom, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return chem.Atom{}, errors.New(errors.ErrCodeSDFInvalid, "malformed atom line").WithDetail(line)
	}
	symbol := fields[3]
	atom := chem.Atom{Element: symbol}
	if len(fields) >= 6 {
		code, err := strconv.Atoi(fields[5])
		if err != nil {
			return chem.Atom{}, errors.New(errors.ErrCodeSDFInvalid, "malformed charge column").WithDetail(line)
		}
		atom.Charge = legacyCharges[code]
	}
	return atom, nil
}

func parseBondLine(line string) (int, int, chem.Bond, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return 0, 0, chem.Bond{}, errors.New(errors.ErrCodeSDFInvalid, "malformed bond line").WithDetail(line)
	}
	u, err1 := strconv.Atoi(fields[0])
	v, err2 := strconv.Atoi(fields[1])
	typ, err3 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, chem.Bond{}, errors.New(errors.ErrCodeSDFInvalid, "malformed bond line").WithDetail(line)
	}
	var order chem.BondOrder
	switch typ {
	case 1:
		order = chem.BondSingle
	case 2:
		order = chem.BondDouble
	case 3:
		order = chem.BondTriple
	case 4:
		order = chem.BondAromatic
	default:
		return 0, 0, chem.Bond{}, errors.New(errors.ErrCodeSDFInvalid, "unsupported bond type").
			WithDetail(strconv.Itoa(typ))
	}
	return u, v, chem.Bond{Order: order}, nil
}

// applyProperties handles the property block: M  CHG and M  ISO assignment
// lines, each carrying (atom, value) pairs.  A CHG line overrides every
// legacy charge column per the V2000 specification.
func applyProperties(lines []string, atoms []chem.Atom) error {
	charged := false
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "M  END"):
			return nil
		case strings.HasPrefix(line, "M  CHG"):
			if !charged {
				for i := range atoms {
					atoms[i].Charge = 0
				}
				charged = true
			}
			if err := applyPairs(line, atoms, func(a *chem.Atom, v int) { a.Charge = v }); err != nil {
				return err
			}
		case strings.HasPrefix(line, "M  ISO"):
			if err := applyPairs(line, atoms, func(a *chem.Atom, v int) { a.Isotope = v }); err != nil {
				return err
			}
		}
	}
	return nil
}

func applyPairs(line string, atoms []chem.Atom, set func(*chem.Atom, int)) error {
	fields := strings.Fields(line)
	// "M CHG n a1 v1 a2 v2 ..."
	if len(fields) < 3 {
		return errors.New(errors.ErrCodeSDFInvalid, "malformed property line").WithDetail(line)
	}
	n, err := strconv.Atoi(fields[2])
	if err != nil || len(fields) < 3+2*n {
		return errors.New(errors.ErrCodeSDFInvalid, "malformed property line").WithDetail(line)
	}
	for i := 0; i < n; i++ {
		idx, err1 := strconv.Atoi(fields[3+2*i])
		val, err2 := strconv.Atoi(fields[4+2*i])
		if err1 != nil || err2 != nil || idx < 1 || idx > len(atoms) {
			return errors.New(errors.ErrCodeSDFInvalid, "malformed property line").WithDetail(line)
		}
		set(&atoms[idx-1], val)
	}
	return nil
}
