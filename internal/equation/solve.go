package equation

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrInconsistent is returned when no assignment satisfies every equation.
	ErrInconsistent = errors.New("equation: system is inconsistent")
	// ErrUnderdetermined is returned when at least one symbol is left free.
	ErrUnderdetermined = errors.New("equation: system does not determine every symbol")
	// ErrFactorization is returned when the coefficient matrix cannot be factorized.
	ErrFactorization = errors.New("equation: factorization failed")
)

const (
	// DefaultRankTolerance is the singular value cutoff relative to the largest one.
	DefaultRankTolerance = 1e-10
	// DefaultResidualTolerance bounds |Ax - b| relative to max(1, |b|).
	DefaultResidualTolerance = 1e-9
)

// Solver resolves a set of linear equations over named symbols.
type Solver struct {
	RankTolerance     float64
	ResidualTolerance float64
}

// DefaultSolver returns a Solver with the default tolerances.
func DefaultSolver() Solver {
	return Solver{
		RankTolerance:     DefaultRankTolerance,
		ResidualTolerance: DefaultResidualTolerance,
	}
}

// Solve finds the unique values of symbols satisfying every equation in eqs.
// Every symbol referenced by eqs must be listed in symbols.
func (s Solver) Solve(eqs []Expr, symbols []string) (map[string]float64, error) {
	if s.RankTolerance <= 0 {
		s.RankTolerance = DefaultRankTolerance
	}
	if s.ResidualTolerance <= 0 {
		s.ResidualTolerance = DefaultResidualTolerance
	}

	col := make(map[string]int, len(symbols))
	for i, sym := range symbols {
		if _, dup := col[sym]; dup {
			return nil, fmt.Errorf("equation: symbol %q listed twice", sym)
		}
		col[sym] = i
	}

	m, n := len(eqs), len(symbols)
	if n == 0 {
		for _, e := range eqs {
			if math.Abs(e.constant) > s.ResidualTolerance {
				return nil, ErrInconsistent
			}
		}
		return map[string]float64{}, nil
	}
	if m < n {
		return nil, ErrUnderdetermined
	}

	a := mat.NewDense(m, n, nil)
	b := mat.NewVecDense(m, nil)
	for i, e := range eqs {
		for _, sym := range e.order {
			j, ok := col[sym]
			if !ok {
				return nil, fmt.Errorf("equation: symbol %q is not in the symbol list", sym)
			}
			a.Set(i, j, e.terms[sym])
		}
		b.SetVec(i, -e.constant)
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, ErrFactorization
	}
	rank := svd.Rank(s.RankTolerance)
	if rank < n {
		return nil, fmt.Errorf("%w: rank %d of %d", ErrUnderdetermined, rank, n)
	}

	x := mat.NewVecDense(n, nil)
	svd.SolveVecTo(x, b, rank)

	var r mat.VecDense
	r.MulVec(a, x)
	r.SubVec(&r, b)
	scale := math.Max(1, mat.Norm(b, math.Inf(1)))
	if mat.Norm(&r, math.Inf(1)) > s.ResidualTolerance*scale {
		return nil, ErrInconsistent
	}

	out := make(map[string]float64, n)
	for sym, j := range col {
		out[sym] = x.AtVec(j)
	}
	return out, nil
}
