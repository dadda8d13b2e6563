package heuristic

import (
	"fmt"

	"github.com/gaste/heuristic-ccp/pkg/errors"
)

// Kind identifies a decision directive.
type Kind int

const (
	// Choice asks the solver to branch on Decision.Var.
	Choice Kind = iota
	// Restart asks the solver to restart its search.
	Restart
	// UseFallback asks the solver to use its own heuristic for Decision.Steps
	// decisions; Steps <= 0 means for the rest of the search.
	UseFallback
	// Unroll asks the solver to revert the assignment of Decision.Var.
	Unroll
	// Abort asks the solver to stop and report the problem incoherent.
	Abort
)

func (k Kind) String() string {
	switch k {
	case Choice:
		return "choice"
	case Restart:
		return "restart"
	case UseFallback:
		return "fallback"
	case Unroll:
		return "unroll"
	case Abort:
		return "abort"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Wire codes that follow the operand in the solver protocol.
const (
	codeRestart  = 1
	codeFallback = 2
	codeUnroll   = 3
	codeAbort    = 4
)

// Decision is one answer to the solver's request for a branching variable.
type Decision struct {
	Kind  Kind
	Var   int // literal for Choice, variable for Unroll
	Steps int // for UseFallback
}

// Choose returns a decision to branch on lit.
func Choose(lit int) Decision { return Decision{Kind: Choice, Var: lit} }

// FallbackFor returns a decision handing control to the solver's heuristic for n steps.
func FallbackFor(n int) Decision { return Decision{Kind: UseFallback, Steps: n} }

// Ints encodes the decision in the solver's wire form. The first element is
// the most significant instruction and its operands follow it, so a reader
// consumes the slice from the end:
//
//	[v]       branch on v
//	[1, 0]    restart
//	[n, 2, 0] fallback heuristic for n steps
//	[v, 3, 0] unroll v
//	[4, 0]    abort as incoherent
func (d Decision) Ints() []int {
	switch d.Kind {
	case Restart:
		return []int{codeRestart, 0}
	case UseFallback:
		return []int{d.Steps, codeFallback, 0}
	case Unroll:
		return []int{d.Var, codeUnroll, 0}
	case Abort:
		return []int{codeAbort, 0}
	default:
		return []int{d.Var}
	}
}

func (d Decision) String() string {
	switch d.Kind {
	case Choice:
		return fmt.Sprintf("choose %d", d.Var)
	case UseFallback:
		return fmt.Sprintf("fallback %d", d.Steps)
	case Unroll:
		return fmt.Sprintf("unroll %d", d.Var)
	}
	return d.Kind.String()
}

// ParseDecision decodes the wire form produced by [Decision.Ints].
func ParseDecision(xs []int) (Decision, error) {
	switch {
	case len(xs) == 1 && xs[0] != 0:
		return Choose(xs[0]), nil
	case len(xs) == 2 && xs[1] == 0 && xs[0] == codeRestart:
		return Decision{Kind: Restart}, nil
	case len(xs) == 2 && xs[1] == 0 && xs[0] == codeAbort:
		return Decision{Kind: Abort}, nil
	case len(xs) == 3 && xs[2] == 0 && xs[1] == codeFallback:
		return FallbackFor(xs[0]), nil
	case len(xs) == 3 && xs[2] == 0 && xs[1] == codeUnroll && xs[0] > 0:
		return Decision{Kind: Unroll, Var: xs[0]}, nil
	}
	return Decision{}, errors.New(errors.ErrCodeInvalidDecision, "malformed decision %v", xs)
}
