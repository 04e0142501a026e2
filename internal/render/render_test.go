package render_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"integramente-backend/internal/render"
	"integramente-backend/internal/types"
)

func parabolaPoints(n int) []types.Ponto {
	pontos := make([]types.Ponto, n)
	for i := range pontos {
		x := -2 + 4*float64(i)/float64(n-1)
		pontos[i] = types.Ponto{X: x, Y: x * x}
	}
	return pontos
}

func TestPNGBase64(t *testing.T) {
	encoded, err := render.PNGBase64(parabolaPoints(100), "f(x) = x^2", 10, 6)
	require.NoError(t, err)
	require.NotEmpty(t, encoded)

	// A valid base64 PNG starts with the PNG signature.
	assert.True(t, strings.HasPrefix(encoded, "iVBORw0KGgo"), "expected a PNG payload")

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Greater(t, len(raw), 1000)
}

func TestPNGBase64TooFewPoints(t *testing.T) {
	_, err := render.PNGBase64([]types.Ponto{{X: 0, Y: 0}}, "f(x) = 0", 10, 6)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not enough")
}
