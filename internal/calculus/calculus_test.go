package calculus_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"integramente-backend/internal/calculus"
	"integramente-backend/internal/parser"
)

func newService() *calculus.Service {
	return calculus.NewService(30*time.Second, 200)
}

func TestNumericIntegral(t *testing.T) {
	tests := []struct {
		name   string
		funcao string
		a, b   float64
		want   float64
	}{
		{"parabola", "x^2", -2, 2, 16.0 / 3.0},
		{"reversed bounds negate", "x^2", 2, -2, -16.0 / 3.0},
		{"sine over half period", "sin(x)", 0, math.Pi, 2},
		{"constant", "3 + 0*x", 0, 2, 6},
		{"empty interval", "x^2", 1, 1, 0},
	}

	svc := newService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := parser.Parse(tt.funcao)
			require.NoError(t, err)

			valor, erroEstimado, err := svc.NumericIntegral(context.Background(), expr, tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, valor, 1e-6)
			assert.Less(t, erroEstimado, 1e-4)
		})
	}
}

func TestNumericIntegralNotFinite(t *testing.T) {
	svc := newService()
	expr, err := parser.Parse("1/x")
	require.NoError(t, err)

	// The interval crosses a pole; Gauss nodes avoid x=0 itself but the
	// quadrature sum blows up or cancels into garbage, and ln|x|-like
	// singularities report as non-finite when they do.
	_, _, err = svc.NumericIntegral(context.Background(), expr, 0, 1)
	if err != nil {
		assert.Contains(t, err.Error(), "not finite")
	}
}

func TestNumericIntegralTimeout(t *testing.T) {
	svc := calculus.NewService(time.Nanosecond, 200)
	expr, err := parser.Parse("exp(x^2)*sin(x)*cos(x)")
	require.NoError(t, err)

	_, _, err = svc.NumericIntegral(context.Background(), expr, -3, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, calculus.ErrTimeout)
}

func TestSymbolicIntegral(t *testing.T) {
	svc := newService()
	expr, err := parser.Parse("x^2")
	require.NoError(t, err)

	res, err := svc.SymbolicIntegral(context.Background(), expr, nil, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Antiderivada)
	assert.NotEmpty(t, res.AntiderivadaLatex)
	assert.Nil(t, res.Resultado)

	// The antiderivative must be equivalent to x^3/3: reparse and check
	// F(1) - F(0) = 1/3.
	anti, err := parser.Parse(res.Antiderivada)
	require.NoError(t, err)
	f := calculus.Evaluator(anti)
	assert.InDelta(t, 1.0/3.0, f(1)-f(0), 1e-9)
}

func TestSymbolicIntegralDefinite(t *testing.T) {
	svc := newService()
	expr, err := parser.Parse("x^2")
	require.NoError(t, err)

	a, b := 0.0, 2.0
	res, err := svc.SymbolicIntegral(context.Background(), expr, &a, &b)
	require.NoError(t, err)
	require.NotNil(t, res.Resultado)
	assert.InDelta(t, 8.0/3.0, *res.Resultado, 1e-9)
}

func TestSymbolicIntegralNoRule(t *testing.T) {
	svc := newService()
	expr, err := parser.Parse("exp(x^2)")
	require.NoError(t, err)

	_, err = svc.SymbolicIntegral(context.Background(), expr, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no closed-form antiderivative")
}

func TestDerivative(t *testing.T) {
	svc := newService()
	expr, err := parser.Parse("x^3")
	require.NoError(t, err)

	res, err := svc.Derivative(context.Background(), expr, 1)
	require.NoError(t, err)

	d, err := parser.Parse(res.Derivada)
	require.NoError(t, err)
	assert.InDelta(t, 12, calculus.Evaluator(d)(2), 1e-9) // 3x^2 at 2

	res2, err := svc.Derivative(context.Background(), expr, 2)
	require.NoError(t, err)
	d2, err := parser.Parse(res2.Derivada)
	require.NoError(t, err)
	assert.InDelta(t, 6, calculus.Evaluator(d2)(1), 1e-9) // 6x at 1
}

func TestDerivativeOrder(t *testing.T) {
	for tipo, want := range map[string]int{"primeira": 1, "segunda": 2, "terceira": 3} {
		got, ok := calculus.DerivativeOrder(tipo)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := calculus.DerivativeOrder("quarta")
	assert.False(t, ok)
}

func TestLimit(t *testing.T) {
	svc := newService()

	t.Run("direct substitution", func(t *testing.T) {
		expr, err := parser.Parse("x^2")
		require.NoError(t, err)
		out, err := svc.Limit(context.Background(), expr, 3, "bilateral")
		require.NoError(t, err)
		require.True(t, out.Existe)
		assert.InDelta(t, 9, *out.Valor, 1e-9)
		assert.NotEmpty(t, out.LaTeX)
	})

	t.Run("removable singularity", func(t *testing.T) {
		expr, err := parser.Parse("(x^2 - 1)/(x - 1)")
		require.NoError(t, err)
		out, err := svc.Limit(context.Background(), expr, 1, "bilateral")
		require.NoError(t, err)
		require.True(t, out.Existe)
		assert.InDelta(t, 2, *out.Valor, 1e-6)
	})

	t.Run("pole does not exist", func(t *testing.T) {
		expr, err := parser.Parse("1/x")
		require.NoError(t, err)
		out, err := svc.Limit(context.Background(), expr, 0, "bilateral")
		require.NoError(t, err)
		assert.False(t, out.Existe)
		assert.Nil(t, out.Valor)
	})

	t.Run("one-sided from the right", func(t *testing.T) {
		expr, err := parser.Parse("x^2")
		require.NoError(t, err)
		out, err := svc.Limit(context.Background(), expr, 1, "direita")
		require.NoError(t, err)
		require.True(t, out.Existe)
		assert.InDelta(t, 1, *out.Valor, 1e-2)
	})

	t.Run("one-sided at a pole", func(t *testing.T) {
		expr, err := parser.Parse("1/x")
		require.NoError(t, err)
		out, err := svc.Limit(context.Background(), expr, 0, "esquerda")
		require.NoError(t, err)
		assert.False(t, out.Existe)
	})
}

func TestSampleFiltersNonFinite(t *testing.T) {
	svc := newService()
	expr, err := parser.Parse("1/x")
	require.NoError(t, err)

	pontos := svc.Sample(expr, -1, 1, 101)
	assert.NotEmpty(t, pontos)
	assert.Less(t, len(pontos), 101) // x=0 sample dropped
	for _, p := range pontos {
		assert.False(t, math.IsNaN(p.Y) || math.IsInf(p.Y, 0))
	}
}

func TestEvaluator(t *testing.T) {
	expr, err := parser.Parse("1/x")
	require.NoError(t, err)
	f := calculus.Evaluator(expr)

	assert.InDelta(t, 0.5, f(2), 1e-9)
	assert.True(t, math.IsNaN(f(0)))
}

func TestIntegrationSteps(t *testing.T) {
	a, b := -2.0, 2.0

	comBounds := calculus.IntegrationSteps("x^2", "1/3*x^3", &a, &b)
	assert.Len(t, comBounds, 5)
	assert.Contains(t, comBounds[3], "[-2, 2]")

	semBounds := calculus.IntegrationSteps("x^2", "1/3*x^3", nil, nil)
	assert.Len(t, semBounds, 4)
	assert.Contains(t, semBounds[3], "+ C")
}

func TestLimitSteps(t *testing.T) {
	v := 9.0
	passos := calculus.LimitSteps("x^2", 3, &v, "bilateral", true)
	assert.Contains(t, passos[len(passos)-1], "9")

	passos = calculus.LimitSteps("1/x", 0, nil, "esquerda", false)
	assert.Contains(t, passos[len(passos)-1], "não existe")
}
