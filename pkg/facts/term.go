package facts

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/gaste/heuristic-ccp/pkg/errors"
)

// termExpr is the grammar of a solver variable name: an identifier with an
// optional parenthesized argument list.
type termExpr struct {
	Name string     `@Ident`
	Args []*argExpr `( "(" ( @@ ( "," @@ )* )? ")" )?`
}

// argExpr is one argument. Arguments may themselves be compound terms, which
// are kept as their source text.
type argExpr struct {
	Neg  bool       `@"-"?`
	Atom string     `@( Ident | Int | String )`
	Args []*argExpr `( "(" @@ ( "," @@ )* ")" )?`
}

func (a *argExpr) text(b *strings.Builder) {
	if a.Neg {
		b.WriteByte('-')
	}
	b.WriteString(a.Atom)
	if len(a.Args) == 0 {
		return
	}
	b.WriteByte('(')
	for i, sub := range a.Args {
		if i > 0 {
			b.WriteByte(',')
		}
		sub.text(b)
	}
	b.WriteByte(')')
}

var parseTerm = participle.MustBuild[termExpr]()

// Term is a parsed variable name such as vertex_color(v3,2).
type Term struct {
	Name string
	Args []string
}

// Parse parses a variable name into a Term.
func Parse(name string) (Term, error) {
	expr, err := parseTerm.ParseString("", name)
	if err != nil {
		return Term{}, errors.Wrap(errors.ErrCodeInvalidFact, err, "parse %q", name)
	}
	t := Term{Name: expr.Name, Args: make([]string, len(expr.Args))}
	for i, a := range expr.Args {
		var b strings.Builder
		a.text(&b)
		t.Args[i] = b.String()
	}
	return t, nil
}

// Arity returns the number of arguments.
func (t Term) Arity() int { return len(t.Args) }

// Int returns argument i as an integer.
func (t Term) Int(i int) (int, error) {
	if i < 0 || i >= len(t.Args) {
		return 0, errors.New(errors.ErrCodeInvalidFact, "%s: no argument %d", t, i)
	}
	n, err := strconv.Atoi(t.Args[i])
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidFact, err, "%s: argument %d is not an integer", t, i)
	}
	return n, nil
}

// String renders the term in the solver's syntax.
func (t Term) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	return t.Name + "(" + strings.Join(t.Args, ",") + ")"
}
