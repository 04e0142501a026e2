// Package calculus binds the HTTP layer to the symbolic kernel and the
// numeric quadrature routine. Every computation runs under a fixed time
// budget and reports failures as plain errors, never panics.
package calculus

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	gosymbol "github.com/njchilds90/gosymbol"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"

	"integramente-backend/internal/parser"
	"integramente-backend/internal/types"
)

var ErrTimeout = errors.New("calculation timed out")

type Service struct {
	timeout   time.Duration
	quadNodes int
}

func NewService(timeout time.Duration, quadNodes int) *Service {
	if quadNodes < 2 {
		quadNodes = 2
	}
	return &Service{timeout: timeout, quadNodes: quadNodes}
}

// Parse validates and converts a textual function into an expression.
func (s *Service) Parse(funcao string) (gosymbol.Expr, error) {
	return parser.Parse(funcao)
}

// Validate parses the function and returns its simplified form.
func (s *Service) Validate(funcao string) (string, error) {
	expr, err := parser.Parse(funcao)
	if err != nil {
		return "", err
	}
	return expr.Simplify().String(), nil
}

// Evaluator adapts an expression to a plain func(x) for quadrature and
// plotting. Undefined points come back as NaN.
func Evaluator(expr gosymbol.Expr) func(float64) float64 {
	return func(x float64) (y float64) {
		defer func() {
			if recover() != nil {
				y = math.NaN()
			}
		}()
		v, ok := expr.Sub("x", gosymbol.NFloat(x)).Simplify().Eval()
		if !ok {
			return math.NaN()
		}
		return v.Float64()
	}
}

// run executes fn under the service time budget, converting panics from
// the symbolic kernel into errors.
func (s *Service) run(ctx context.Context, fn func() error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("calculation failed: %v", r)
			}
		}()
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ErrTimeout
	}
}

// NumericIntegral approximates the definite integral of expr over [a,b]
// with Gauss-Legendre quadrature. The error estimate is the difference
// against the half-order rule.
func (s *Service) NumericIntegral(ctx context.Context, expr gosymbol.Expr, a, b float64) (float64, float64, error) {
	if a == b {
		return 0, 0, nil
	}
	sign := 1.0
	if a > b {
		a, b = b, a
		sign = -1
	}

	f := Evaluator(expr)
	var fine, coarse float64
	err := s.run(ctx, func() error {
		fine = quad.Fixed(f, a, b, s.quadNodes, nil, 0)
		coarse = quad.Fixed(f, a, b, s.quadNodes/2, nil, 0)
		if math.IsNaN(fine) || math.IsInf(fine, 0) {
			return errors.New("function is not finite over the interval")
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return sign * fine, math.Abs(fine - coarse), nil
}

type SymbolicResult struct {
	Antiderivada      string
	AntiderivadaLatex string
	Resultado         *float64
}

// SymbolicIntegral computes the antiderivative and, when both bounds are
// present, evaluates F(b) - F(a).
func (s *Service) SymbolicIntegral(ctx context.Context, expr gosymbol.Expr, a, b *float64) (SymbolicResult, error) {
	var res SymbolicResult
	err := s.run(ctx, func() error {
		anti, ok := gosymbol.Integrate(expr, "x")
		if !ok {
			return errors.New("no closed-form antiderivative found")
		}
		anti = anti.Simplify()
		res.Antiderivada = anti.String()
		res.AntiderivadaLatex = anti.LaTeX()

		if a != nil && b != nil {
			upper, okU := anti.Sub("x", gosymbol.NFloat(*b)).Simplify().Eval()
			lower, okL := anti.Sub("x", gosymbol.NFloat(*a)).Simplify().Eval()
			if okU && okL {
				v := upper.Float64() - lower.Float64()
				if !math.IsNaN(v) && !math.IsInf(v, 0) {
					res.Resultado = &v
				}
			}
		}
		return nil
	})
	return res, err
}

type DerivativeResult struct {
	Derivada      string
	DerivadaLatex string
}

var derivativeOrders = map[string]int{
	"primeira": 1,
	"segunda":  2,
	"terceira": 3,
}

// DerivativeOrder maps a tipo_derivada value to its order.
func DerivativeOrder(tipo string) (int, bool) {
	n, ok := derivativeOrders[tipo]
	return n, ok
}

func (s *Service) Derivative(ctx context.Context, expr gosymbol.Expr, ordem int) (DerivativeResult, error) {
	var res DerivativeResult
	err := s.run(ctx, func() error {
		d := gosymbol.DiffN(expr, "x", ordem).Simplify()
		res.Derivada = d.String()
		res.DerivadaLatex = d.LaTeX()
		return nil
	})
	return res, err
}

type LimitOutcome struct {
	Valor  *float64
	LaTeX  string
	Existe bool
}

// Limit computes lim_{x->p} expr. Two-sided limits go through the
// symbolic kernel; one-sided limits use a numeric approach sequence,
// which the kernel does not provide.
func (s *Service) Limit(ctx context.Context, expr gosymbol.Expr, ponto float64, tipo string) (LimitOutcome, error) {
	var out LimitOutcome
	err := s.run(ctx, func() error {
		switch tipo {
		case "esquerda":
			out = oneSidedLimit(expr, ponto, -1)
		case "direita":
			out = oneSidedLimit(expr, ponto, +1)
		default:
			out = bilateralLimit(expr, ponto)
		}
		return nil
	})
	return out, err
}

// bilateralLimit asks the symbolic kernel first, then checks the answer
// against numeric probes from both sides. The kernel collapses 0*inf
// forms to zero, so a numeric consensus that disagrees wins.
func bilateralLimit(expr gosymbol.Expr, ponto float64) LimitOutcome {
	var symVal *float64
	var symLatex string
	if r := gosymbol.Limit(expr, "x", gosymbol.NFloat(ponto)); r.Success {
		if v, ok := r.Value.Eval(); ok {
			f := v.Float64()
			if !math.IsNaN(f) && !math.IsInf(f, 0) {
				symVal = &f
				symLatex = r.Value.LaTeX()
			}
		}
	}

	left := oneSidedLimit(expr, ponto, -1)
	right := oneSidedLimit(expr, ponto, +1)

	if left.Existe && right.Existe {
		l, rv := *left.Valor, *right.Valor
		if math.Abs(l-rv) > 1e-3*(1+math.Abs(l)) {
			return LimitOutcome{} // the two sides disagree
		}
		v := (l + rv) / 2
		if symVal != nil && math.Abs(*symVal-v) <= 1e-3*(1+math.Abs(v)) {
			return LimitOutcome{Valor: symVal, LaTeX: symLatex, Existe: true}
		}
		return LimitOutcome{Valor: &v, LaTeX: gosymbol.NFloat(v).LaTeX(), Existe: true}
	}

	// Numeric probing was inconclusive (the function may be undefined
	// on one side); fall back to the kernel's answer.
	if symVal != nil {
		return LimitOutcome{Valor: symVal, LaTeX: symLatex, Existe: true}
	}
	return LimitOutcome{}
}

func oneSidedLimit(expr gosymbol.Expr, ponto, side float64) LimitOutcome {
	f := Evaluator(expr)
	var prev float64
	havePrev := false
	for _, h := range []float64{1e-3, 1e-4, 1e-5, 1e-6, 1e-7, 1e-8} {
		v := f(ponto + side*h)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			havePrev = false
			continue
		}
		if havePrev && math.Abs(v-prev) <= 1e-3*(1+math.Abs(v)) {
			latex := gosymbol.NFloat(v).LaTeX()
			return LimitOutcome{Valor: &v, LaTeX: latex, Existe: true}
		}
		prev = v
		havePrev = true
	}
	return LimitOutcome{}
}

// Sample evaluates the expression over [a,b] at the requested resolution,
// dropping points where the function is not finite.
func (s *Service) Sample(expr gosymbol.Expr, a, b float64, resolucao int) []types.Ponto {
	if resolucao < 2 {
		resolucao = 2
	}
	xs := make([]float64, resolucao)
	floats.Span(xs, a, b)

	f := Evaluator(expr)
	pontos := make([]types.Ponto, 0, resolucao)
	for _, x := range xs {
		y := f(x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		pontos = append(pontos, types.Ponto{X: x, Y: y})
	}
	return pontos
}

// Timestamp is the ISO-8601 instant stamped into responses.
func Timestamp() string {
	return time.Now().Format(time.RFC3339)
}

func IntegrationSteps(funcao, antiderivada string, a, b *float64) []string {
	passos := []string{
		"Função original: " + funcao,
		fmt.Sprintf("Aplicando integração: ∫(%s)dx", funcao),
		"Antiderivada: " + antiderivada,
	}
	if a != nil && b != nil {
		passos = append(passos,
			fmt.Sprintf("Aplicando limites de integração: [%g, %g]", *a, *b),
			fmt.Sprintf("Calculando: F(%g) - F(%g)", *b, *a),
		)
	} else {
		passos = append(passos, "Resultado: "+antiderivada+" + C")
	}
	return passos
}

func DerivativeSteps(funcao, derivada, tipo string) []string {
	resultado := fmt.Sprintf("Resultado: f'(x) = %s", derivada)
	if tipo != "primeira" {
		resultado = fmt.Sprintf("Resultado: f''(x) = %s", derivada)
	}
	return []string{
		"Função original: f(x) = " + funcao,
		fmt.Sprintf("Calculando %s derivada", tipo),
		"Aplicando regras de derivação",
		resultado,
	}
}

func LimitSteps(funcao string, ponto float64, valor *float64, tipo string, existe bool) []string {
	simbolo := "lim"
	switch tipo {
	case "esquerda":
		simbolo = "lim⁻"
	case "direita":
		simbolo = "lim⁺"
	}
	passos := []string{
		"Função: f(x) = " + funcao,
		fmt.Sprintf("Calculando: %s(x→%g) f(x)", simbolo, ponto),
		fmt.Sprintf("Substituindo x = %g", ponto),
	}
	if existe && valor != nil {
		passos = append(passos, fmt.Sprintf("Resultado: %g", *valor))
	} else {
		passos = append(passos, "O limite não existe ou é infinito")
	}
	return passos
}
