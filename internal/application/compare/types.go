package compare

import (
	"time"
)

// Input names one molecule (or pattern) in a textual exchange format.
type Input struct {
	// Text is the structure in the named format.
	Text string `json:"text"`

	// Format selects the parser: "smiles" (default when empty), "smarts",
	// or "mol" / "sdf" for MDL molfile blocks.
	Format string `json:"format,omitempty"`
}

// SearchOptions tunes one common-subgraph search.  Zero values fall back to
// the engine configuration.
type SearchOptions struct {
	// Kind selects the search objective: "induced"/"mcis" (default) or
	// "edge"/"mces".
	Kind string `json:"kind,omitempty"`

	// Timeout bounds the wall-clock time of the search.
	Timeout time.Duration `json:"timeout,omitempty"`

	// MaxNodes caps the number of expanded search nodes.
	MaxNodes int64 `json:"max_nodes,omitempty"`
}

// MatchResult is the outcome of an exact or substructure match.
type MatchResult struct {
	Matched bool `json:"matched"`
}

// CommonResult describes the best common subgraph found within budget.
type CommonResult struct {
	// Kind echoes the search objective that produced this result.
	Kind string `json:"kind"`

	// Size is mapped vertices for induced searches, shared edges for edge
	// searches.
	Size int `json:"size"`

	// Mapping is indexed by the first molecule's atoms with values in the
	// second molecule; -1 marks unmapped atoms.
	Mapping []int `json:"mapping"`

	// Exhaustive is false when the budget ran out before the search space
	// was fully explored; Size is then a lower bound.
	Exhaustive bool `json:"exhaustive"`

	// Nodes is the number of search nodes expanded.
	Nodes int64 `json:"nodes"`
}

// ScoreResult carries one pairwise score together with the search evidence
// behind it.
type ScoreResult struct {
	// Score is the metric value.  For the distance metric it is the edit
	// distance as a whole number.
	Score float64 `json:"score"`

	// Common is the common-subgraph size the score was derived from.
	Common int `json:"common"`

	// SizeA and SizeB are the compared sizes of the two inputs (atoms for
	// induced searches, bonds for edge searches).
	SizeA int `json:"size_a"`
	SizeB int `json:"size_b"`

	// Exhaustive is false when the underlying search was cut off, making
	// Score a conservative estimate.
	Exhaustive bool `json:"exhaustive"`
}

// BatchItem is the outcome for one candidate of a batch comparison.  Exactly
// one of Result and Error is meaningful.
type BatchItem struct {
	// Index is the candidate's position in the request, preserved so the
	// response can be correlated even after concurrent evaluation.
	Index int `json:"index"`

	Result *ScoreResult `json:"result,omitempty"`

	// Error is the failure message for this candidate; other candidates
	// are unaffected.
	Error string `json:"error,omitempty"`
}

// BatchResult is the ordered outcome of a batch comparison.
type BatchResult struct {
	// BatchID identifies this batch in logs.
	BatchID string `json:"batch_id"`

	Items []BatchItem `json:"items"`

	// Failed counts the items that carry an error.
	Failed int `json:"failed"`
}

// MoleculeInfo summarizes one parsed molecule.
type MoleculeInfo struct {
	Atoms int `json:"atoms"`
	Bonds int `json:"bonds"`

	// RingAtoms counts atoms that lie on at least one cycle.
	RingAtoms int `json:"ring_atoms"`

	// AromaticAtoms counts atoms marked aromatic.
	AromaticAtoms int `json:"aromatic_atoms"`

	// Weight is the standard molecular weight including implicit hydrogens.
	Weight float64 `json:"weight"`

	// Key is the canonical structure key; two molecules share a key exactly
	// when their graphs are indistinguishable under renumbering.
	Key string `json:"key"`
}
