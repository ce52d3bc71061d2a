// Package equation holds the linear expressions produced by equilibrium
// assembly and the solver that resolves them over named symbols.
package equation

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr is a linear expression Σ coef·symbol + constant. When used as an
// equation it means Expr = 0.
type Expr struct {
	order    []string
	terms    map[string]float64
	constant float64
}

// Sum returns the expression symbols[0] + symbols[1] + ...
func Sum(symbols ...string) Expr {
	var e Expr
	for _, s := range symbols {
		e.AddTerm(s, 1)
	}
	return e
}

// Binding returns the equation symbol - value = 0.
func Binding(symbol string, value float64) Expr {
	var e Expr
	e.AddTerm(symbol, 1)
	e.AddConst(-value)
	return e
}

// AddTerm adds coef·symbol. An exact zero coefficient adds nothing.
func (e *Expr) AddTerm(symbol string, coef float64) {
	if coef == 0 {
		return
	}
	if e.terms == nil {
		e.terms = make(map[string]float64)
	}
	if _, ok := e.terms[symbol]; !ok {
		e.order = append(e.order, symbol)
	}
	e.terms[symbol] += coef
}

// AddConst adds c to the constant term.
func (e *Expr) AddConst(c float64) {
	e.constant += c
}

// Symbols returns the symbols of e in order of first appearance.
func (e Expr) Symbols() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Coef returns the coefficient of symbol, zero when absent.
func (e Expr) Coef(symbol string) float64 {
	return e.terms[symbol]
}

// Constant returns the constant term.
func (e Expr) Constant() float64 {
	return e.constant
}

// Eval substitutes values into e. It fails when a symbol has no value.
func (e Expr) Eval(values map[string]float64) (float64, error) {
	sum := e.constant
	for _, s := range e.order {
		v, ok := values[s]
		if !ok {
			return 0, fmt.Errorf("equation: no value for symbol %q", s)
		}
		sum += e.terms[s] * v
	}
	return sum, nil
}

// String renders e as "a*x + b*y + c = 0".
func (e Expr) String() string {
	var sb strings.Builder
	for i, s := range e.order {
		c := e.terms[s]
		switch {
		case i == 0 && c < 0:
			sb.WriteString("-")
		case i > 0 && c < 0:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		if abs := absf(c); abs != 1 {
			sb.WriteString(formatFloat(abs))
			sb.WriteString("*")
		}
		sb.WriteString(s)
	}
	if e.constant != 0 || len(e.order) == 0 {
		switch {
		case len(e.order) == 0:
			sb.WriteString(formatFloat(e.constant))
		case e.constant < 0:
			sb.WriteString(" - ")
			sb.WriteString(formatFloat(-e.constant))
		default:
			sb.WriteString(" + ")
			sb.WriteString(formatFloat(e.constant))
		}
	}
	sb.WriteString(" = 0")
	return sb.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func absf(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
