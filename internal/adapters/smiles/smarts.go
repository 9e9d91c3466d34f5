package smiles

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/turtacn/molgraph/internal/domain/chem"
	"github.com/turtacn/molgraph/pkg/errors"
)

var smartsCharset = regexp.MustCompile(`^[A-Za-z0-9@+\-\[\]()=#$:/\\.%*~,]+$`)

// ParsePattern converts a SMARTS-style query into a Pattern graph.  The
// supported subset covers what substructure screening needs:
//
//   - organic-subset atoms: uppercase is aliphatic-exact, lowercase is
//     aromatic-exact ("C" matches only non-aromatic carbon, "c" only
//     aromatic carbon)
//   - "*" matches any atom
//   - bracket atoms with isotope, charge, and comma-separated element
//     alternatives: "[13C]", "[N+]", "[F,Cl,Br,I]"
//   - bonds "-", "=", "#", ":" exact by order; "~" matches any bond; an
//     unwritten bond between two aromatic atoms is aromatic, otherwise single
//   - branches, ring closures, and dot-separated fragments as in SMILES
func ParsePattern(input string) (*chem.Pattern, error) {
	if err := validateInput(input, smartsCharset, errors.ErrCodeSMARTSInvalid); err != nil {
		return nil, err
	}
	p := &patternParser{scanner: newScanner(input), rings: map[int]patternRingOpen{}}
	if err := p.run(); err != nil {
		return nil, err
	}
	pat, err := chem.NewPattern(p.atoms, p.edges)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSMARTSInvalid, "SMARTS describes an invalid graph")
	}
	return pat, nil
}

type pendingPatternBond struct {
	set  bool
	bond chem.PatternBond
}

type patternRingOpen struct {
	atom int
	bond pendingPatternBond
}

type patternParser struct {
	scanner

	atoms []chem.PatternAtom
	edges []chem.PatternEdgeSpec

	// aromaticHint tracks which pattern atoms were written in aromatic
	// notation, to pick the default bond between them.
	aromaticHint []bool

	prev    int
	stack   []int
	pending pendingPatternBond
	rings   map[int]patternRingOpen
}

func anyPatternAtom() chem.PatternAtom {
	return chem.PatternAtom{
		Element:  chem.Any[string](),
		Charge:   chem.Any[int](),
		Aromatic: chem.Any[bool](),
		Isotope:  chem.Any[int](),
	}
}

func patternBondForSymbol(ch rune) (chem.PatternBond, bool) {
	if ch == '~' {
		return chem.PatternBond{Order: chem.Any[chem.BondOrder](), Stereo: chem.Any[bool]()}, true
	}
	if b, ok := bondForSymbol(ch); ok {
		return chem.PatternBond{Order: chem.Exactly(b.Order), Stereo: chem.Any[bool]()}, true
	}
	return chem.PatternBond{}, false
}

func (p *patternParser) run() error {
	p.prev = -1
	for !p.done() {
		ch := p.next()
		switch {
		case ch == '(':
			if p.prev < 0 {
				return errors.New(errors.ErrCodeSMARTSInvalid, "branch opened before any atom")
			}
			p.stack = append(p.stack, p.prev)

		case ch == ')':
			p.prev = p.stack[len(p.stack)-1]
			p.stack = p.stack[:len(p.stack)-1]

		case ch == '.':
			if p.pending.set {
				return errors.New(errors.ErrCodeSMARTSInvalid, "bond symbol before fragment separator")
			}
			p.prev = -1

		case ch == '*':
			p.addAtom(anyPatternAtom(), false)

		case ch == '%':
			hi, okHi := p.peekAt(0)
			lo, okLo := p.peekAt(1)
			if !okHi || !okLo || !unicode.IsDigit(hi) || !unicode.IsDigit(lo) {
				return errors.New(errors.ErrCodeSMARTSInvalid, "%% must be followed by two digits")
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
			atom, aromatic, err := p.parseBracketPattern()
			if err != nil {
				return err
			}
			p.addAtom(atom, aromatic)

		default:
			if b, ok := patternBondForSymbol(ch); ok {
				if p.pending.set {
					return errors.New(errors.ErrCodeSMARTSInvalid, "two consecutive bond symbols")
				}
				p.pending = pendingPatternBond{set: true, bond: b}
				continue
			}
			if !unicode.IsLetter(ch) {
				return errors.New(errors.ErrCodeSMARTSInvalid, "unexpected character").
					WithDetail(string(ch))
			}
			p.backup()
			atom, aromatic, err := p.parseOrganicPattern()
			if err != nil {
				return err
			}
			p.addAtom(atom, aromatic)
		}
	}
	if p.pending.set {
		return errors.New(errors.ErrCodeSMARTSInvalid, "trailing bond symbol")
	}
	if len(p.rings) > 0 {
		return errors.New(errors.ErrCodeSMARTSInvalid, "unclosed ring bond")
	}
	if len(p.atoms) == 0 {
		return errors.New(errors.ErrCodeSMARTSInvalid, "no atoms in pattern")
	}
	return nil
}

// parseOrganicPattern reads one organic-subset pattern atom.  Case carries
// meaning: uppercase constrains to non-aromatic, lowercase to aromatic.
func (p *patternParser) parseOrganicPattern() (chem.PatternAtom, bool, error) {
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
		return chem.PatternAtom{}, false, errors.New(errors.ErrCodeSMARTSInvalid,
			"element must be bracketed").WithDetail(symbol)
	}
	if aromatic && !aromaticSubset[symbol] {
		return chem.PatternAtom{}, false, errors.New(errors.ErrCodeSMARTSInvalid,
			"element cannot be aromatic").WithDetail(symbol)
	}
	atom := anyPatternAtom()
	atom.Element = chem.Exactly(symbol)
	atom.Aromatic = chem.Exactly(aromatic)
	return atom, aromatic, nil
}

// parseBracketPattern reads [isotope? element-alternatives charge?].  The
// opening bracket has already been consumed.
func (p *patternParser) parseBracketPattern() (chem.PatternAtom, bool, error) {
	atom := anyPatternAtom()

	if iso := p.readDigits(); iso >= 0 {
		atom.Isotope = chem.Exactly(iso)
	}

	var elems []string
	aromatic := false
	for {
		if p.done() || !unicode.IsLetter(p.peek()) {
			return atom, false, errors.New(errors.ErrCodeSMARTSInvalid,
				"bracket atom without element symbol")
		}
		first := p.next()
		lower := unicode.IsLower(first)
		symbol := string(unicode.ToUpper(first))
		if lo, ok := p.peekAt(0); ok && unicode.IsLower(lo) {
			if knownElements[symbol+string(lo)] {
				symbol += string(lo)
				p.pos++
			}
		}
		if !knownElements[symbol] {
			return atom, false, errors.New(errors.ErrCodeElementUnknown,
				"unknown element symbol").WithDetail(symbol)
		}
		if lower {
			if !aromaticSubset[symbol] {
				return atom, false, errors.New(errors.ErrCodeSMARTSInvalid,
					"element cannot be aromatic").WithDetail(symbol)
			}
			aromatic = true
		}
		elems = append(elems, symbol)
		if p.done() || p.peek() != ',' {
			break
		}
		p.pos++ // consume comma
	}

	if len(elems) == 1 {
		atom.Element = chem.Exactly(elems[0])
		// A single lowercase symbol constrains aromaticity like the
		// organic-subset spelling; alternative lists leave it open.
		atom.Aromatic = chem.Exactly(aromatic)
	} else {
		atom.Element = chem.OneOf(elems...)
	}

	for !p.done() && p.peek() != ']' {
		switch ch := p.next(); ch {
		case '@':
			// Chirality; ignored.
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
			atom.Charge = chem.Exactly(sign * mag)
		default:
			return atom, false, errors.New(errors.ErrCodeSMARTSInvalid,
				"unexpected character in bracket atom").WithDetail(string(ch))
		}
	}
	if p.done() {
		return atom, false, errors.New(errors.ErrCodeSMARTSInvalid, "unterminated bracket atom")
	}
	p.pos++ // consume ]
	return atom, aromatic, nil
}

func (p *patternParser) addAtom(atom chem.PatternAtom, aromatic bool) {
	idx := len(p.atoms)
	p.atoms = append(p.atoms, atom)
	p.aromaticHint = append(p.aromaticHint, aromatic)
	if p.prev >= 0 {
		p.addEdge(p.prev, idx, p.takePending())
	}
	p.prev = idx
}

func (p *patternParser) takePending() pendingPatternBond {
	pb := p.pending
	p.pending = pendingPatternBond{}
	return pb
}

func (p *patternParser) addEdge(u, v int, pb pendingPatternBond) {
	bond := pb.bond
	if !pb.set {
		order := chem.BondSingle
		if p.aromaticHint[u] && p.aromaticHint[v] {
			order = chem.BondAromatic
		}
		bond = chem.PatternBond{Order: chem.Exactly(order), Stereo: chem.Any[bool]()}
	}
	p.edges = append(p.edges, chem.PatternEdgeSpec{U: u, V: v, Bond: bond})
}

func (p *patternParser) closeRing(label int) error {
	if p.prev < 0 {
		return errors.New(errors.ErrCodeSMARTSInvalid, "ring closure before any atom")
	}
	open, ok := p.rings[label]
	if !ok {
		p.rings[label] = patternRingOpen{atom: p.prev, bond: p.takePending()}
		return nil
	}
	delete(p.rings, label)
	if open.atom == p.prev {
		return errors.New(errors.ErrCodeSMARTSInvalid, "ring closure bonds an atom to itself")
	}
	closing := p.takePending()
	if open.bond.set && closing.set && !samePatternBond(open.bond.bond, closing.bond) {
		return errors.New(errors.ErrCodeSMARTSInvalid, "conflicting bond symbols on ring closure")
	}
	pb := open.bond
	if closing.set {
		pb = closing
	}
	p.addEdge(open.atom, p.prev, pb)
	return nil
}

func samePatternBond(a, b chem.PatternBond) bool {
	return a.Order.Kind == b.Order.Kind &&
		strings.Join(orderNames(a.Order.Values), ",") == strings.Join(orderNames(b.Order.Values), ",")
}

func orderNames(vals []chem.BondOrder) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.String()
	}
	return out
}
