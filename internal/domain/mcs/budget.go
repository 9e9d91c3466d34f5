// Package mcs implements the deadline-bounded branch-and-bound search for
// maximum common induced subgraphs (MCIS) and maximum common edge subgraphs
// (MCES).  The solver is anytime: when its budget runs out it returns the
// best mapping found so far together with an exhaustiveness flag, never an
// error.
package mcs

import (
	"time"

	"github.com/turtacn/molgraph/pkg/errors"
)

// Budget bounds one common-subgraph search with a wall-clock deadline and/or
// a maximum expanded-node count.  The zero value means unlimited: the search
// runs to completion.  A Budget is a value object; the solver keeps its own
// countdown state, so one Budget can be reused across calls.
type Budget struct {
	// Deadline is the wall-clock instant after which the search stops.
	// The zero time disables the deadline.
	Deadline time.Time

	// MaxNodes caps the number of search nodes expanded.  Zero disables
	// the cap.
	MaxNodes int64
}

// NewBudget builds a Budget from a relative timeout and node cap.  Zero
// values leave the respective limit disabled.
func NewBudget(timeout time.Duration, maxNodes int64) Budget {
	b := Budget{MaxNodes: maxNodes}
	if timeout > 0 {
		b.Deadline = time.Now().Add(timeout)
	}
	return b
}

// Unlimited reports whether the budget imposes no limit at all.
func (b Budget) Unlimited() bool {
	return b.Deadline.IsZero() && b.MaxNodes == 0
}

// Validate rejects nonsensical budgets (negative node caps).
func (b Budget) Validate() error {
	if b.MaxNodes < 0 {
		return errors.New(errors.ErrCodeMCSInvalidBudget, "node cap must not be negative")
	}
	return nil
}

// countdown is the solver-local mutable state derived from a Budget.  It is
// consulted on every search-node expansion, which is what makes the solver's
// best-so-far contract hold at any cut-off point.
type countdown struct {
	deadline    time.Time
	hasDeadline bool
	nodesLeft   int64
	hasNodeCap  bool
	nodes       int64
	exhausted   bool
}

func newCountdown(b Budget) *countdown {
	return &countdown{
		deadline:    b.Deadline,
		hasDeadline: !b.Deadline.IsZero(),
		nodesLeft:   b.MaxNodes,
		hasNodeCap:  b.MaxNodes > 0,
	}
}

// spend consumes one search node.  It returns false once the budget is
// exhausted; from then on every call returns false so the recursion unwinds
// promptly.
func (c *countdown) spend() bool {
	if c.exhausted {
		return false
	}
	c.nodes++
	if c.hasNodeCap {
		c.nodesLeft--
		if c.nodesLeft < 0 {
			c.exhausted = true
			return false
		}
	}
	if c.hasDeadline && time.Now().After(c.deadline) {
		c.exhausted = true
		return false
	}
	return true
}
