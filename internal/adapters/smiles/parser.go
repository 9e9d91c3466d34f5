// Package smiles parses SMILES molecule strings and SMARTS-style query
// patterns into the engine's attributed graphs.  The parsers cover the
// organic subset, bracket atoms with isotope/charge/hydrogen annotations,
// branches, ring closures (including %nn), aromatic lowercase notation, and
// dot-separated fragments.  Chirality markers are accepted and ignored.
package smiles

import (
	"fmt"
	"regexp"
	"strconv"
	"unicode"

	"github.com/turtacn/molgraph/internal/domain/chem"
	"github.com/turtacn/molgraph/pkg/errors"
)

// maxInputLength bounds parser input before any scanning happens.
const maxInputLength = 5000

var smilesCharset = regexp.MustCompile(`^[A-Za-z0-9@+\-\[\]()=#$:/\\.%]+$`)

// Parse converts a SMILES string into a molecule graph.  Implicit hydrogens
// are estimated from organic-subset valences; bracket atoms carry exactly
// their declared hydrogen count.
func Parse(input string) (*chem.Graph, error) {
	if err := validateInput(input, smilesCharset, errors.ErrCodeSMILESInvalid); err != nil {
		return nil, err
	}
	p := &moleculeParser{scanner: newScanner(input), rings: map[int]ringOpen{}}
	if err := p.run(); err != nil {
		return nil, err
	}
	p.assignImplicitH()
	g, err := chem.NewGraph(p.atoms, p.edges)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSMILESInvalid, "SMILES describes an invalid graph")
	}
	return g, nil
}

func validateInput(input string, charset *regexp.Regexp, code errors.ErrorCode) error {
	if input == "" {
		return errors.New(code, "input is empty")
	}
	if len(input) > maxInputLength {
		return errors.New(code, "input exceeds maximum length").
			WithDetail(fmt.Sprintf("%d > %d bytes", len(input), maxInputLength))
	}
	if !charset.MatchString(input) {
		return errors.New(code, "input contains invalid characters")
	}
	if !balancedBrackets(input) {
		return errors.New(code, "unbalanced brackets")
	}
	return nil
}

// balancedBrackets checks that [ ] and ( ) are balanced and correctly nested.
func balancedBrackets(s string) bool {
	var stack []rune
	for _, ch := range s {
		switch ch {
		case '[', '(':
			stack = append(stack, ch)
		case ']':
			if len(stack) == 0 || stack[len(stack)-1] != '[' {
				return false
			}
			stack = stack[:len(stack)-1]
		case ')':
			if len(stack) == 0 || stack[len(stack)-1] != '(' {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) == 0
}

// ─────────────────────────────────────────────────────────────────────────────
// Shared scanner machinery
// ─────────────────────────────────────────────────────────────────────────────

type scanner struct {
	runes []rune
	pos   int
}

func newScanner(s string) scanner { return scanner{runes: []rune(s)} }

func (s *scanner) done() bool { return s.pos >= len(s.runes) }
func (s *scanner) peek() rune { return s.runes[s.pos] }
func (s *scanner) next() rune { r := s.runes[s.pos]; s.pos++; return r }
func (s *scanner) backup()    { s.pos-- }
func (s *scanner) peekAt(off int) (rune, bool) {
	if s.pos+off >= len(s.runes) {
		return 0, false
	}
	return s.runes[s.pos+off], true
}

// readDigits consumes a run of ASCII digits and returns their value, or -1
// when none are present.
func (s *scanner) readDigits() int {
	start := s.pos
	for !s.done() && unicode.IsDigit(s.peek()) {
		s.pos++
	}
	if s.pos == start {
		return -1
	}
	n, _ := strconv.Atoi(string(s.runes[start:s.pos]))
	return n
}

// pendingBond carries an explicit bond symbol until the next atom or ring
// closure consumes it.
type pendingBond struct {
	set  bool
	bond chem.Bond
}

// ringOpen remembers the first occurrence of a ring-closure label.
type ringOpen struct {
	atom int
	bond pendingBond
}

// bondForSymbol maps a bond character to its Bond; ok is false for non-bond
// characters.
func bondForSymbol(ch rune) (chem.Bond, bool) {
	switch ch {
	case '-':
		return chem.Bond{Order: chem.BondSingle}, true
	case '=':
		return chem.Bond{Order: chem.BondDouble}, true
	case '#':
		return chem.Bond{Order: chem.BondTriple}, true
	case ':':
		return chem.Bond{Order: chem.BondAromatic}, true
	case '/', '\\':
		// Directional single bond; the direction itself is collapsed into
		// the stereo flag.
		return chem.Bond{Order: chem.BondSingle, Stereo: true}, true
	default:
		return chem.Bond{}, false
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Molecule parser
// ─────────────────────────────────────────────────────────────────────────────

type moleculeParser struct {
	scanner

	atoms []chem.Atom
	edges []chem.EdgeSpec

	// explicitH marks bracket atoms, whose hydrogen count is exactly as
	// declared.  halfBonds accumulates twice the bond order per atom
	// (aromatic counts as 3) for implicit-hydrogen estimation.
	explicitH []bool
	halfBonds []int

	prev    int
	stack   []int
	pending pendingBond
	rings   map[int]ringOpen
}

func (p *moleculeParser) run() error {
	p.prev = -1
	for !p.done() {
		ch := p.next()
		switch {
		case ch == '(':
			if p.prev < 0 {
				return errors.New(errors.ErrCodeSMILESInvalid, "branch opened before any atom")
			}
			p.stack = append(p.stack, p.prev)

		case ch == ')':
			p.prev = p.stack[len(p.stack)-1]
			p.stack = p.stack[:len(p.stack)-1]

		case ch == '.':
			if p.pending.set {
				return errors.New(errors.ErrCodeSMILESInvalid, "bond symbol before fragment separator")
			}
			p.prev = -1

		case ch == '%':
			hi, okHi := p.peekAt(0)
			lo, okLo := p.peekAt(1)
			if !okHi || !okLo || !unicode.IsDigit(hi) || !unicode.IsDigit(lo) {
				return errors.New(errors.ErrCodeSMILESInvalid, "%% must be followed by two digits")
			}
			p.pos += 2
			if err := p.closeRing(int(hi-'0')*10 + int(lo-'0')); err != nil {
				return err
			}

		case unicode.IsDigit(ch):
			if err := p.closeRing(int(ch - '0')); err != nil {
				return err
			}

		case ch == '[':
			atom, hCount, err := p.parseBracketAtom()
			if err != nil {
				return err
			}
			p.addAtom(atom, true)
			p.atoms[len(p.atoms)-1].Hydrogens = hCount

		case ch == '@':
			// Chirality marker outside brackets is noise; ignore.

		default:
			if b, ok := bondForSymbol(ch); ok {
				if p.pending.set {
					return errors.New(errors.ErrCodeSMILESInvalid, "two consecutive bond symbols")
				}
				p.pending = pendingBond{set: true, bond: b}
				continue
			}
			if !unicode.IsLetter(ch) {
				return errors.New(errors.ErrCodeSMILESInvalid, "unexpected character").
					WithDetail(string(ch))
			}
			p.backup()
			atom, err := p.parseOrganicAtom()
			if err != nil {
				return err
			}
			p.addAtom(atom, false)
		}
	}
	if p.pending.set {
		return errors.New(errors.ErrCodeSMILESInvalid, "trailing bond symbol")
	}
	if len(p.rings) > 0 {
		return errors.New(errors.ErrCodeSMILESInvalid, "unclosed ring bond")
	}
	if len(p.atoms) == 0 {
		return errors.New(errors.ErrCodeSMILESInvalid, "no atoms in input")
	}
	return nil
}

// parseOrganicAtom reads an organic-subset atom, lowercase meaning aromatic.
// Two-letter symbols (Cl, Br) are recognized greedily.
func (p *moleculeParser) parseOrganicAtom() (chem.Atom, error) {
	ch := p.next()
	aromatic := unicode.IsLower(ch)
	symbol := string(unicode.ToUpper(ch))
	if !aromatic {
		if lo, ok := p.peekAt(0); ok && unicode.IsLower(lo) {
			two := symbol + string(lo)
			if _, known := organicSubset[two]; known {
				symbol = two
				p.pos++
			}
		}
	}
	if _, ok := organicSubset[symbol]; !ok {
		return chem.Atom{}, errors.New(errors.ErrCodeSMILESInvalid,
			"element must be bracketed").WithDetail(symbol)
	}
	if aromatic && !aromaticSubset[symbol] {
		return chem.Atom{}, errors.New(errors.ErrCodeSMILESInvalid,
			"element cannot be aromatic").WithDetail(symbol)
	}
	return chem.Atom{Element: symbol, Aromatic: aromatic}, nil
}

// parseBracketAtom reads the content between [ and ]:
// isotope? symbol chirality? Hcount? charge? class?.  The opening bracket
// has already been consumed.  Returns the atom and its declared H count.
func (p *moleculeParser) parseBracketAtom() (chem.Atom, int, error) {
	var atom chem.Atom

	if iso := p.readDigits(); iso >= 0 {
		atom.Isotope = iso
	}

	if p.done() || !unicode.IsLetter(p.peek()) {
		return atom, 0, errors.New(errors.ErrCodeSMILESInvalid, "bracket atom without element symbol")
	}
	first := p.next()
	atom.Aromatic = unicode.IsLower(first)
	symbol := string(unicode.ToUpper(first))
	if lo, ok := p.peekAt(0); ok && unicode.IsLower(lo) && lo != 'h' {
		if knownElements[symbol+string(lo)] {
			symbol += string(lo)
			p.pos++
		}
	}
	if !knownElements[symbol] {
		return atom, 0, errors.New(errors.ErrCodeElementUnknown, "unknown element symbol").
			WithDetail(symbol)
	}
	if atom.Aromatic && !aromaticSubset[symbol] {
		return atom, 0, errors.New(errors.ErrCodeSMILESInvalid,
			"element cannot be aromatic").WithDetail(symbol)
	}
	atom.Element = symbol

	hCount := 0
	for !p.done() && p.peek() != ']' {
		switch ch := p.next(); ch {
		case '@':
			// Chirality; ignored.
		case 'H':
			hCount = 1
			if n := p.readDigits(); n >= 0 {
				hCount = n
			}
		case '+', '-':
			sign := 1
			if ch == '-' {
				sign = -1
			}
			mag := 1
			if n := p.readDigits(); n >= 0 {
				mag = n
			} else {
				for !p.done() && p.peek() == ch {
					mag++
					p.pos++
				}
			}
			atom.Charge = sign * mag
		case ':':
			if p.readDigits() < 0 {
				return atom, 0, errors.New(errors.ErrCodeSMILESInvalid, "atom class without number")
			}
		default:
			return atom, 0, errors.New(errors.ErrCodeSMILESInvalid,
				"unexpected character in bracket atom").WithDetail(string(ch))
		}
	}
	if p.done() {
		return atom, 0, errors.New(errors.ErrCodeSMILESInvalid, "unterminated bracket atom")
	}
	p.pos++ // consume ]
	return atom, hCount, nil
}

func (p *moleculeParser) addAtom(atom chem.Atom, bracketed bool) {
	idx := len(p.atoms)
	p.atoms = append(p.atoms, atom)
	p.explicitH = append(p.explicitH, bracketed)
	p.halfBonds = append(p.halfBonds, 0)
	if p.prev >= 0 {
		p.addEdge(p.prev, idx, p.takePending())
	}
	p.prev = idx
}

// takePending resolves the bond to use for the next connection: an explicit
// symbol wins, otherwise aromatic neighbors get an aromatic bond and
// everything else a single bond.  The aromatic default is resolved at edge
// creation time in addEdge, so takePending only reports explicitness.
func (p *moleculeParser) takePending() pendingBond {
	pb := p.pending
	p.pending = pendingBond{}
	return pb
}

func (p *moleculeParser) addEdge(u, v int, pb pendingBond) {
	bond := pb.bond
	if !pb.set {
		bond = chem.Bond{Order: chem.BondSingle}
		if p.atoms[u].Aromatic && p.atoms[v].Aromatic {
			bond = chem.Bond{Order: chem.BondAromatic}
		}
	}
	p.edges = append(p.edges, chem.EdgeSpec{U: u, V: v, Bond: bond})
	p.halfBonds[u] += halfBondUnits(bond.Order)
	p.halfBonds[v] += halfBondUnits(bond.Order)
}

// closeRing handles one occurrence of a ring-closure label: the first opens,
// the second bonds the two atoms.
func (p *moleculeParser) closeRing(label int) error {
	if p.prev < 0 {
		return errors.New(errors.ErrCodeSMILESInvalid, "ring closure before any atom")
	}
	open, ok := p.rings[label]
	if !ok {
		p.rings[label] = ringOpen{atom: p.prev, bond: p.takePending()}
		return nil
	}
	delete(p.rings, label)
	if open.atom == p.prev {
		return errors.New(errors.ErrCodeSMILESInvalid, "ring closure bonds an atom to itself")
	}
	closing := p.takePending()
	if open.bond.set && closing.set && open.bond.bond != closing.bond {
		return errors.New(errors.ErrCodeSMILESInvalid, "conflicting bond symbols on ring closure")
	}
	pb := open.bond
	if closing.set {
		pb = closing
	}
	p.addEdge(open.atom, p.prev, pb)
	return nil
}

// halfBondUnits returns twice the bond order, with aromatic worth 1.5.
func halfBondUnits(o chem.BondOrder) int {
	switch o {
	case chem.BondDouble:
		return 4
	case chem.BondTriple:
		return 6
	case chem.BondAromatic:
		return 3
	default:
		return 2
	}
}

// assignImplicitH fills the hydrogen count of non-bracket atoms from the
// organic-subset valence minus the accumulated bond order, rounding the
// aromatic halves up.  Benzene carbons come out at one hydrogen, pyridine
// nitrogen at zero.
func (p *moleculeParser) assignImplicitH() {
	for i := range p.atoms {
		if p.explicitH[i] {
			continue
		}
		valence := organicSubset[p.atoms[i].Element]
		used := (p.halfBonds[i] + 1) / 2
		if h := valence - used; h > 0 {
			p.atoms[i].Hydrogens = h
		}
	}
}
