package driver

import (
	"bufio"
	"bytes"
	"cmp"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/gaste/heuristic-ccp/pkg/errors"
)

// Name attaches an atom name to a solver variable.
type Name struct {
	Var  int
	Name string
}

// Problem is a CNF formula whose variables may carry atom names.
type Problem struct {
	NumVars    int
	NumClauses int
	Names      []Name // sorted by variable

	cnf []byte
}

// Load reads a named DIMACS CNF. Besides the usual header and clauses it
// accepts comment lines of the form
//
//	c <var> <name>
//
// which name variable <var>. Other comments are ignored. Clauses are checked
// by the solver when the problem is run.
func Load(r io.Reader) (*Problem, error) {
	p := &Problem{}
	names := make(map[int]string)
	var body bytes.Buffer
	header := false

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		switch {
		case text == "":
			continue
		case text == "c" || strings.HasPrefix(text, "c "):
			if v, name, ok := parseName(text); ok {
				names[v] = name
			}
			continue
		case strings.HasPrefix(text, "p "):
			f := strings.Fields(text)
			if len(f) != 4 || f[1] != "cnf" {
				return nil, errors.New(errors.ErrCodeInvalidInput, "line %d: malformed header %q", line, text)
			}
			vars, err1 := strconv.Atoi(f[2])
			clauses, err2 := strconv.Atoi(f[3])
			if err1 != nil || err2 != nil || vars < 0 || clauses < 0 {
				return nil, errors.New(errors.ErrCodeInvalidInput, "line %d: malformed header %q", line, text)
			}
			p.NumVars, p.NumClauses = vars, clauses
			header = true
		case !header:
			return nil, errors.New(errors.ErrCodeInvalidInput, "line %d: clause before header", line)
		}
		body.WriteString(text)
		body.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read cnf")
	}
	if !header {
		return nil, errors.New(errors.ErrCodeInvalidInput, "missing \"p cnf\" header")
	}

	for v, n := range names {
		p.Names = append(p.Names, Name{Var: v, Name: n})
	}
	slices.SortFunc(p.Names, func(a, b Name) int { return cmp.Compare(a.Var, b.Var) })
	p.cnf = body.Bytes()
	return p, nil
}

func parseName(text string) (int, string, bool) {
	f := strings.Fields(text)
	if len(f) < 3 {
		return 0, "", false
	}
	v, err := strconv.Atoi(f[1])
	if err != nil || v <= 0 {
		return 0, "", false
	}
	return v, strings.Join(f[2:], " "), true
}

// NameOf returns the name of variable v, or "" if it has none.
func (p *Problem) NameOf(v int) string {
	i, ok := slices.BinarySearchFunc(p.Names, v, func(n Name, v int) int { return cmp.Compare(n.Var, v) })
	if !ok {
		return ""
	}
	return p.Names[i].Name
}
