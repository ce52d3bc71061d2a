package structure

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"

	"github.com/alexiusacademia/gostatics/internal/equation"
)

// DefaultPrecision is the number of decimal places reactions are rounded to.
const DefaultPrecision = 2

// SolveOptions tunes Solve.
type SolveOptions struct {
	// Precision is the number of decimal places of reported values.
	Precision int

	// Solver resolves the merged linear system.
	Solver equation.Solver
}

// DefaultSolveOptions returns two decimal places and the default solver.
func DefaultSolveOptions() SolveOptions {
	return SolveOptions{Precision: DefaultPrecision, Solver: equation.DefaultSolver()}
}

// Reaction is one solved unknown. Node is the id of the supported node for
// support reactions and 0 otherwise; Axis is "x", "y" or "torque" for them.
type Reaction struct {
	Label  string
	Symbol string
	Value  float64
	Node   int
	Axis   string
}

// Result holds the solved unknowns in order of appearance. Symbols maps
// every symbol of the system, known or not, to its unrounded value.
type Result struct {
	Reactions []Reaction
	Symbols   map[string]float64
	SubBeams  int
	Equations int
	Unknowns  int
}

// Map returns the label -> value mapping of the reactions.
func (r *Result) Map() map[string]float64 {
	out := make(map[string]float64, len(r.Reactions))
	for _, rc := range r.Reactions {
		out[rc.Label] = rc.Value
	}
	return out
}

// Value returns the value reported under label.
func (r *Result) Value(label string) (float64, bool) {
	for _, rc := range r.Reactions {
		if rc.Label == label {
			return rc.Value, true
		}
	}
	return 0, false
}

// Solve computes the unknown reactions of b with DefaultSolveOptions.
func (b *Beam) Solve() (*Result, error) {
	return b.SolveWith(DefaultSolveOptions())
}

// SolveWith validates b, renumbers its entities, splits it at its hinges,
// assembles the equilibrium system of every sub-beam and solves the merged
// system. Validation failures leave b untouched.
func (b *Beam) SolveWith(opts SolveOptions) (*Result, error) {
	if len(b.nodes) == 0 {
		return nil, Errorf(EmptyStructure, "structure has no nodes")
	}
	if !b.hasSupport() {
		return nil, Errorf(NoSupport, "no node carries a support")
	}
	if !b.connected() {
		return nil, Errorf(DisjointStructure, "structure consists of disconnected parts")
	}

	b.reassignIDs()

	subs := Decompose(b)
	b.logger.Debug("decomposed structure", "sub_beams", len(subs))

	var (
		equilibrium []equation.Expr
		bindings    []equation.Expr
		unknowns    []string
		symbols     []string
		seen        = make(map[string]bool)
		isUnknown   = make(map[string]bool)
	)
	for _, sub := range subs {
		asm := Assemble(sub)
		b.logger.Debug("assembled sub-beam",
			"beam", sub.id,
			"equations", len(asm.Equations),
			"unknowns", len(asm.Unknowns),
			"bindings", len(asm.Bindings))
		if b.logger.Enabled(context.Background(), slog.LevelDebug) {
			b.logger.Debug("sub-beam layout\n" + sub.Describe())
		}

		equilibrium = append(equilibrium, asm.Equations...)
		bindings = append(bindings, asm.Bindings...)
		for _, s := range asm.Unknowns {
			if !isUnknown[s] {
				isUnknown[s] = true
				unknowns = append(unknowns, s)
			}
		}
		for _, s := range asm.Symbols {
			if !seen[s] {
				seen[s] = true
				symbols = append(symbols, s)
			}
		}
	}

	if len(unknowns) > len(equilibrium) {
		return nil, Errorf(TooManyUnknowns, "structure is statically indeterminate: %d unknowns, %d equations", len(unknowns), len(equilibrium))
	}

	b.logger.Debug("solving system",
		"equations", len(equilibrium)+len(bindings),
		"symbols", len(symbols),
		"unknowns", len(unknowns))

	values, err := opts.Solver.Solve(append(equilibrium, bindings...), symbols)
	if err != nil {
		return nil, wrap(Unsolvable, err, "cannot solve structure")
	}

	res := &Result{
		Symbols:   values,
		SubBeams:  len(subs),
		Equations: len(equilibrium),
		Unknowns:  len(unknowns),
	}
	for _, s := range unknowns {
		v := round(values[s], opts.Precision)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, Errorf(Unsolvable, "no finite value for %s", s)
		}
		rc := Reaction{Label: Label(s), Symbol: s, Value: v}
		rc.Node, rc.Axis = nodeComponent(s)
		res.Reactions = append(res.Reactions, rc)
	}
	return res, nil
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	r := math.Round(v*p) / p
	if r == 0 {
		return 0 // no negative zero
	}
	return r
}

var (
	nodeSymbol  = regexp.MustCompile(`^node_(\d+)_(x|y|torque)$`)
	hingeSymRe  = regexp.MustCompile(`^hinge_(\d+)_for_beam_(\d+)_force_(x|y)$`)
	axisPhrases = map[string]string{"x": "Horizontal", "y": "Vertical"}
)

// Label turns a symbol into a readable description. Symbols of applied
// loads are returned unchanged.
func Label(symbol string) string {
	if m := nodeSymbol.FindStringSubmatch(symbol); m != nil {
		if m[2] == "torque" {
			return fmt.Sprintf("Moment at node %s", m[1])
		}
		return fmt.Sprintf("%s reaction at node %s", axisPhrases[m[2]], m[1])
	}
	if m := hingeSymRe.FindStringSubmatch(symbol); m != nil {
		return fmt.Sprintf("%s reaction in hinge %s for beam %s", axisPhrases[m[3]], m[1], m[2])
	}
	return symbol
}

// nodeComponent splits a support reaction symbol into node id and axis.
func nodeComponent(symbol string) (int, string) {
	m := nodeSymbol.FindStringSubmatch(symbol)
	if m == nil {
		return 0, ""
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, ""
	}
	return n, m[2]
}
