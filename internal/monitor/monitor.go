// Package monitor keeps per-calculation metrics for the /performance
// endpoint. History is bounded; everything lives in process memory.
package monitor

import (
	"sync"
	"time"
)

type Calculation struct {
	Tipo     string
	Funcao   string
	Duracao  time.Duration
	CacheHit bool
	Erro     bool
}

type Stats struct {
	InicioSessao  string         `json:"inicio_sessao"`
	TotalCalculos int            `json:"total_calculos"`
	TempoTotalMs  float64        `json:"tempo_total_ms"`
	TempoMedioMs  float64        `json:"tempo_medio_ms"`
	CacheHits     int            `json:"cache_hits"`
	TaxaCache     float64        `json:"taxa_cache"`
	Erros         int            `json:"erros"`
	PorTipo       map[string]int `json:"por_tipo"`
}

type Monitor struct {
	mu      sync.Mutex
	max     int
	history []Calculation
	start   time.Time
	total   time.Duration
	hits    int
	erros   int
	porTipo map[string]int
}

func New(maxHistory int) *Monitor {
	if maxHistory < 1 {
		maxHistory = 1
	}
	return &Monitor{
		max:     maxHistory,
		start:   time.Now(),
		porTipo: make(map[string]int),
	}
}

func (m *Monitor) Record(c Calculation) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.history = append(m.history, c)
	if len(m.history) > m.max {
		m.history = m.history[len(m.history)-m.max:]
	}

	m.total += c.Duracao
	m.porTipo[c.Tipo]++
	if c.CacheHit {
		m.hits++
	}
	if c.Erro {
		m.erros++
	}
}

func (m *Monitor) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	porTipo := make(map[string]int, len(m.porTipo))
	for tipo, n := range m.porTipo {
		porTipo[tipo] = n
		total += n
	}

	stats := Stats{
		InicioSessao:  m.start.Format(time.RFC3339),
		TotalCalculos: total,
		TempoTotalMs:  float64(m.total) / float64(time.Millisecond),
		CacheHits:     m.hits,
		Erros:         m.erros,
		PorTipo:       porTipo,
	}
	if total > 0 {
		stats.TempoMedioMs = stats.TempoTotalMs / float64(total)
		stats.TaxaCache = float64(m.hits) / float64(total) * 100
	}
	return stats
}

func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.history = nil
	m.start = time.Now()
	m.total = 0
	m.hits = 0
	m.erros = 0
	m.porTipo = make(map[string]int)
}
