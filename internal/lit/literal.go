// Package lit defines the packed variable/literal/value representation
// shared by every component of the solving core (spec component A).
package lit

import "fmt"

// Var is a problem variable in [0, numVars). There is no reserved sentinel
// value at this layer: callers that need "no variable" use a wrapping type
// (e.g. the dependency graph's NodeID) rather than stealing a Var value.
type Var int

// Literal represents a variable or its negation, packed as 2*v(+1 if
// negative) so that Opposite is a single XOR and VarID is a shift.
type Literal int

// Positive returns the positive literal of variable v.
func Positive(v Var) Literal {
	return Literal(v * 2)
}

// Negative returns the negative literal of variable v.
func Negative(v Var) Literal {
	return Literal(v*2 + 1)
}

// VarID returns the ID of the literal's variable.
func (l Literal) VarID() Var {
	return Var(l / 2)
}

// IsPositive returns true if and only if the literal represents the value of
// its variable (as opposed to its negation).
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Opposite returns the negation of l.
func (l Literal) Opposite() Literal {
	return l ^ 1
}

func (l Literal) String() string {
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.VarID())
	}
	return fmt.Sprintf("-%d", l.VarID())
}
