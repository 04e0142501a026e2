package monitor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"integramente-backend/internal/monitor"
)

func TestRecordAndStats(t *testing.T) {
	m := monitor.New(100)

	m.Record(monitor.Calculation{Tipo: "area", Funcao: "x^2", Duracao: 10 * time.Millisecond})
	m.Record(monitor.Calculation{Tipo: "area", Funcao: "x^2", Duracao: time.Millisecond, CacheHit: true})
	m.Record(monitor.Calculation{Tipo: "validar", Funcao: "x^(", Duracao: time.Millisecond, Erro: true})

	stats := m.Stats()
	assert.Equal(t, 3, stats.TotalCalculos)
	assert.Equal(t, 1, stats.CacheHits)
	assert.Equal(t, 1, stats.Erros)
	assert.Equal(t, 2, stats.PorTipo["area"])
	assert.Equal(t, 1, stats.PorTipo["validar"])
	assert.InDelta(t, 12, stats.TempoTotalMs, 0.001)
	assert.InDelta(t, 4, stats.TempoMedioMs, 0.001)
	assert.InDelta(t, 100.0/3.0, stats.TaxaCache, 0.001)
	assert.NotEmpty(t, stats.InicioSessao)
}

func TestEmptyStats(t *testing.T) {
	stats := monitor.New(10).Stats()
	assert.Equal(t, 0, stats.TotalCalculos)
	assert.Zero(t, stats.TempoMedioMs)
	assert.Zero(t, stats.TaxaCache)
}

func TestHistoryBounded(t *testing.T) {
	m := monitor.New(5)
	for i := 0; i < 50; i++ {
		m.Record(monitor.Calculation{Tipo: "area", Duracao: time.Millisecond})
	}
	// Counters keep the full session even though history is trimmed.
	assert.Equal(t, 50, m.Stats().TotalCalculos)
}

func TestReset(t *testing.T) {
	m := monitor.New(10)
	m.Record(monitor.Calculation{Tipo: "area", Duracao: time.Millisecond})
	m.Reset()

	stats := m.Stats()
	assert.Equal(t, 0, stats.TotalCalculos)
	assert.Empty(t, stats.PorTipo)
}
