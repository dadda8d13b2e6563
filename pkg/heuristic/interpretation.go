package heuristic

// Value is the three-valued truth of a solver variable.
type Value int8

const (
	False   Value = -1
	Unknown Value = 0
	True    Value = 1
)

func (v Value) String() string {
	switch v {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// Interpretation is the partial assignment as last reported by the solver,
// indexed by variable id (ids start at 1). Only the assignment notifications
// write it; everything else reads.
type Interpretation struct {
	vals []Value
}

// NewInterpretation allocates an all-unknown interpretation for variables 1..numVars.
func NewInterpretation(numVars int) *Interpretation {
	return &Interpretation{vals: make([]Value, max(numVars, 0)+1)}
}

// Value returns the truth value of variable v. Ids outside the allocated range
// are unknown.
func (in *Interpretation) Value(v int) Value {
	if v <= 0 || v >= len(in.vals) {
		return Unknown
	}
	return in.vals[v]
}

// SetLiteral records lit as true: a positive literal makes its variable true,
// a negative one false. The interpretation grows if the solver reports a
// variable beyond the announced count.
func (in *Interpretation) SetLiteral(lit int) {
	v, val := lit, True
	if lit < 0 {
		v, val = -lit, False
	}
	if v == 0 {
		return
	}
	if v >= len(in.vals) {
		in.vals = append(in.vals, make([]Value, v+1-len(in.vals))...)
	}
	in.vals[v] = val
}

// Unset makes variable v unknown again.
func (in *Interpretation) Unset(v int) {
	if v > 0 && v < len(in.vals) {
		in.vals[v] = Unknown
	}
}

// Len returns the highest variable id that can be held.
func (in *Interpretation) Len() int { return len(in.vals) - 1 }
