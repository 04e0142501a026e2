package exemplos_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"integramente-backend/internal/exemplos"
)

func TestDefaultCatalog(t *testing.T) {
	c := exemplos.Default()

	assert.Len(t, c.Categorias, 6)
	assert.Contains(t, c.Categorias, "basicas")
	assert.Contains(t, c.Categorias, "trigonometricas")
	assert.Contains(t, c.Categorias["basicas"], "x^2")
	assert.Equal(t, 32, c.Total())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exemplos.yaml")
	content := "categorias:\n  minhas:\n    - \"x^4\"\n    - \"cos(x)\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := exemplos.Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Categorias, 1)
	assert.Equal(t, 2, c.Total())
}

func TestLoadErrors(t *testing.T) {
	_, err := exemplos.Load("/nonexistent/exemplos.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "vazio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categorias: {}\n"), 0o644))
	_, err = exemplos.Load(path)
	assert.Error(t, err)
}
