package structure

import (
	"fmt"

	"github.com/alexiusacademia/gostatics/internal/equation"
)

// Assembly is the equation system of one sub-beam.
type Assembly struct {
	// Equations holds ΣFx, ΣFy and ΣM about the origin, followed by the
	// continuity equations of the hinges this sub-beam is first body of.
	Equations []equation.Expr

	// Bindings fix every known component to its value: symbol - value = 0.
	Bindings []equation.Expr

	// Unknowns lists the symbols to solve for in order of appearance.
	Unknowns []string

	// Symbols lists every symbol, known or not, in order of appearance.
	Symbols []string
}

type assembler struct {
	fx, fy, m  equation.Expr
	continuity []equation.Expr
	out        Assembly
}

// Assemble builds the equilibrium system of sub. Supports contribute their
// reaction components at the node, hinges a pair of unknown internal
// reactions per incident body, and segments their forces and torques.
func Assemble(sub *Beam) Assembly {
	a := &assembler{}

	for _, n := range sub.nodes {
		switch {
		case n.support != nil:
			name := fmt.Sprintf("node_%d", n.id)
			a.force(name, n.support.force, n.x, n.y)
			a.torque(name+"_torque", n.support.torque)
		case n.hinge != nil && n.hinge.hasBody(sub):
			a.hinge(sub, n)
		}
	}

	for _, s := range sub.segments {
		for _, f := range s.forces {
			x, y := s.PointAt(f.offset)
			a.force(fmt.Sprintf("segment_%d_force_%d", s.id, f.id), f, x, y)
		}
		for _, t := range s.torques {
			a.torque(fmt.Sprintf("segment_%d_torque_%d", s.id, t.id), t)
		}
	}

	a.out.Equations = append([]equation.Expr{a.fx, a.fy, a.m}, a.continuity...)
	return a.out
}

// component adds one symbol to the system: free when unknown, otherwise
// bound to value.
func (a *assembler) component(symbol string, value float64, unknown bool) {
	a.out.Symbols = append(a.out.Symbols, symbol)
	if unknown {
		a.out.Unknowns = append(a.out.Unknowns, symbol)
		return
	}
	a.out.Bindings = append(a.out.Bindings, equation.Binding(symbol, value))
}

// force adds both components of f applied at (x, y). The moment about the
// origin is -y·Fx + x·Fy; AddTerm drops the zero lever arm terms.
func (a *assembler) force(name string, f *Force, x, y float64) {
	sx, sy := name+"_x", name+"_y"
	a.component(sx, f.PartX(), f.unknownX)
	a.component(sy, f.PartY(), f.unknownY)

	a.fx.AddTerm(sx, 1)
	a.fy.AddTerm(sy, 1)
	a.m.AddTerm(sx, -y)
	a.m.AddTerm(sy, x)
}

func (a *assembler) torque(symbol string, t *Torque) {
	a.component(symbol, t.value, t.unknown)
	a.m.AddTerm(symbol, 1)
}

// hinge adds the internal reaction pair of sub at hinge node n. The first
// body of the hinge also carries the continuity equations: the reactions
// of all bodies sum to zero in x and in y.
func (a *assembler) hinge(sub *Beam, n *Node) {
	h := n.hinge
	sx, sy := hingeSymbol(h.id, sub.id, "x"), hingeSymbol(h.id, sub.id, "y")
	a.component(sx, 0, true)
	a.component(sy, 0, true)

	a.fx.AddTerm(sx, 1)
	a.fy.AddTerm(sy, 1)
	a.m.AddTerm(sx, -n.y)
	a.m.AddTerm(sy, n.x)

	if h.bodies[0] != sub {
		return
	}
	var cx, cy equation.Expr
	for _, body := range h.bodies {
		cx.AddTerm(hingeSymbol(h.id, body.id, "x"), 1)
		cy.AddTerm(hingeSymbol(h.id, body.id, "y"), 1)
	}
	a.continuity = append(a.continuity, cx, cy)
}

func hingeSymbol(hinge, body int, axis string) string {
	return fmt.Sprintf("hinge_%d_for_beam_%d_force_%s", hinge, body, axis)
}
