// Package api maps the HTTP contract onto the calculus service. Handlers
// are package-level functions over package state, reset-able for tests.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"integramente-backend/internal/cache"
	"integramente-backend/internal/calculus"
	"integramente-backend/internal/config"
	"integramente-backend/internal/exemplos"
	"integramente-backend/internal/monitor"
	"integramente-backend/internal/render"
	"integramente-backend/internal/types"
)

const Version = "1.0.0"

var (
	cfg     = config.Default()
	svc     = calculus.NewService(cfg.CalcTimeout, cfg.QuadNodes)
	store   cache.Repository = cache.NewMemory(cfg.CacheMaxEntries, cfg.CacheTTL)
	perf    = monitor.New(cfg.MonitorHistory)
	catalog = exemplos.Default()
)

// Setup wires the handlers to a loaded configuration and cache backend.
func Setup(c *config.Config, repo cache.Repository, cat *exemplos.Catalog) {
	cfg = c
	svc = calculus.NewService(c.CalcTimeout, c.QuadNodes)
	store = repo
	perf = monitor.New(c.MonitorHistory)
	catalog = cat
}

func ResetState() {
	cfg = config.Default()
	svc = calculus.NewService(cfg.CalcTimeout, cfg.QuadNodes)
	store = cache.NewMemory(cfg.CacheMaxEntries, cfg.CacheTTL)
	perf = monitor.New(cfg.MonitorHistory)
	catalog = exemplos.Default()
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeCached replays a previously serialized response body.
func writeCached(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(body))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func schemaError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusUnprocessableEntity, types.ErrorResponse{Erro: msg})
}

// resolucao applies the default and enforces the allowed range.
func resolucao(req int) (int, bool) {
	if req == 0 {
		return cfg.DefaultResolution, true
	}
	if req < 50 || req > cfg.MaxResolution {
		return 0, false
	}
	return req, true
}

func boolOrTrue(p *bool) bool {
	return p == nil || *p
}

func floatParam(p *float64) string {
	if p == nil {
		return "nil"
	}
	return fmt.Sprintf("%g", *p)
}

func record(tipo, funcao string, start time.Time, cacheHit, erro bool) {
	perf.Record(monitor.Calculation{
		Tipo:     tipo,
		Funcao:   funcao,
		Duracao:  time.Since(start),
		CacheHit: cacheHit,
		Erro:     erro,
	})
}

func HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "IntegraMente Backend API está funcionando!",
		"version": Version,
		"status":  "online",
		"endpoints": []string{
			"/health",
			"/area",
			"/simbolico",
			"/derivada",
			"/limite",
			"/validar",
			"/exemplos",
			"/grafico",
			"/performance",
		},
	})
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.HealthResponse{
		Status:    "ok",
		Timestamp: calculus.Timestamp(),
	})
}

func HandleValidar(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req types.ValidarRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Funcao) == "" {
		schemaError(w, "Função não pode estar vazia")
		return
	}

	simplificada, err := svc.Validate(req.Funcao)
	if err != nil {
		record("validar", req.Funcao, start, false, true)
		writeJSON(w, http.StatusOK, types.ValidarResponse{
			Valida:   false,
			Mensagem: "Função inválida",
			Erro:     "Erro de sintaxe: " + err.Error(),
		})
		return
	}

	record("validar", req.Funcao, start, false, false)
	writeJSON(w, http.StatusOK, types.ValidarResponse{
		Valida:             true,
		FuncaoSimplificada: simplificada,
		Mensagem:           "Função válida",
	})
}

func HandleArea(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req types.AreaRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Funcao) == "" {
		schemaError(w, "Função não pode estar vazia")
		return
	}
	res, ok := resolucao(req.Resolucao)
	if !ok {
		schemaError(w, fmt.Sprintf("Resolução fora do intervalo [50, %d]", cfg.MaxResolution))
		return
	}

	key := cache.Key("area", req.Funcao,
		fmt.Sprintf("%g", req.A), fmt.Sprintf("%g", req.B), fmt.Sprintf("%d", res))
	if body, hit := store.Get(key); hit {
		record("area", req.Funcao, start, true, false)
		writeCached(w, body)
		return
	}

	expr, err := svc.Parse(req.Funcao)
	if err != nil {
		record("area", req.Funcao, start, false, true)
		writeJSON(w, http.StatusOK, types.AreaResponse{
			Sucesso: false,
			Erro:    "Erro de sintaxe: " + err.Error(),
		})
		return
	}

	valor, erroEstimado, err := svc.NumericIntegral(r.Context(), expr, req.A, req.B)
	if err != nil {
		record("area", req.Funcao, start, false, true)
		writeJSON(w, http.StatusOK, types.AreaResponse{
			Sucesso: false,
			Erro:    "Erro no cálculo da área: " + err.Error(),
		})
		return
	}

	formatada := expr.Simplify().String()
	pontos := svc.Sample(expr, req.A, req.B, res)
	grafico, err := render.PNGBase64(pontos, "f(x) = "+formatada,
		cfg.GraphWidthInches, cfg.GraphHeightInches)
	if err != nil {
		record("area", req.Funcao, start, false, true)
		writeJSON(w, http.StatusOK, types.AreaResponse{
			Sucesso: false,
			Erro:    "Erro ao gerar gráfico: " + err.Error(),
		})
		return
	}

	area := valor
	if area < 0 {
		area = -area
	}
	resp := types.AreaResponse{
		Sucesso:         true,
		ValorIntegral:   &valor,
		AreaTotal:       &area,
		ErroEstimado:    &erroEstimado,
		GraficoBase64:   grafico,
		PontosGrafico:   pontos,
		FuncaoFormatada: formatada,
		Intervalo:       map[string]float64{"a": req.A, "b": req.B},
		CalculadoEm:     calculus.Timestamp(),
	}

	record("area", req.Funcao, start, false, false)
	if body, err := json.Marshal(resp); err == nil {
		store.Set(key, string(body))
	}
	writeJSON(w, http.StatusOK, resp)
}

func HandleSimbolico(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req types.SimbolicoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Funcao) == "" {
		schemaError(w, "Função não pode estar vazia")
		return
	}

	params := []string{
		floatParam(req.A), floatParam(req.B),
		fmt.Sprintf("%v", boolOrTrue(req.MostrarPassos)),
		fmt.Sprintf("%v", boolOrTrue(req.FormatoLatex)),
	}
	key := cache.Key("simbolico", req.Funcao, params...)
	if body, hit := store.Get(key); hit {
		record("simbolico", req.Funcao, start, true, false)
		writeCached(w, body)
		return
	}

	expr, err := svc.Parse(req.Funcao)
	if err != nil {
		record("simbolico", req.Funcao, start, false, true)
		writeJSON(w, http.StatusOK, types.SimbolicoResponse{
			Sucesso: false,
			Erro:    "Erro de sintaxe: " + err.Error(),
		})
		return
	}

	result, err := svc.SymbolicIntegral(r.Context(), expr, req.A, req.B)
	if err != nil {
		record("simbolico", req.Funcao, start, false, true)
		writeJSON(w, http.StatusOK, types.SimbolicoResponse{
			Sucesso: false,
			Erro:    "Erro no cálculo simbólico: " + err.Error(),
		})
		return
	}

	resp := types.SimbolicoResponse{
		Sucesso:            true,
		Antiderivada:       result.Antiderivada,
		ResultadoSimbolico: result.Resultado,
		FuncaoOriginal:     req.Funcao,
		CalculadoEm:        calculus.Timestamp(),
	}
	if boolOrTrue(req.FormatoLatex) {
		resp.AntiderivadaLatex = result.AntiderivadaLatex
	}
	if boolOrTrue(req.MostrarPassos) {
		resp.PassosResolucao = calculus.IntegrationSteps(req.Funcao, result.Antiderivada, req.A, req.B)
	}

	record("simbolico", req.Funcao, start, false, false)
	if body, err := json.Marshal(resp); err == nil {
		store.Set(key, string(body))
	}
	writeJSON(w, http.StatusOK, resp)
}

func HandleDerivada(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req types.DerivadaRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Funcao) == "" {
		schemaError(w, "Função não pode estar vazia")
		return
	}
	tipo := req.TipoDerivada
	if tipo == "" {
		tipo = "primeira"
	}
	ordem, ok := calculus.DerivativeOrder(tipo)
	if !ok {
		schemaError(w, "Tipo de derivada inválido: "+tipo)
		return
	}

	expr, err := svc.Parse(req.Funcao)
	if err != nil {
		record("derivada", req.Funcao, start, false, true)
		writeJSON(w, http.StatusOK, types.DerivadaResponse{
			Sucesso: false,
			Erro:    "Erro de sintaxe: " + err.Error(),
		})
		return
	}

	result, err := svc.Derivative(r.Context(), expr, ordem)
	if err != nil {
		record("derivada", req.Funcao, start, false, true)
		writeJSON(w, http.StatusOK, types.DerivadaResponse{
			Sucesso: false,
			Erro:    "Erro no cálculo de derivada: " + err.Error(),
		})
		return
	}

	resp := types.DerivadaResponse{
		Sucesso:              true,
		Derivada:             result.Derivada,
		DerivadaSimplificada: result.Derivada,
		FuncaoOriginal:       req.Funcao,
		TipoDerivada:         tipo,
		CalculadoEm:          calculus.Timestamp(),
	}
	if boolOrTrue(req.FormatoLatex) {
		resp.DerivadaLatex = result.DerivadaLatex
	}
	if boolOrTrue(req.MostrarPassos) {
		resp.PassosResolucao = calculus.DerivativeSteps(req.Funcao, result.Derivada, tipo)
	}

	record("derivada", req.Funcao, start, false, false)
	writeJSON(w, http.StatusOK, resp)
}

func HandleLimite(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req types.LimiteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Funcao) == "" {
		schemaError(w, "Função não pode estar vazia")
		return
	}
	tipo := req.TipoLimite
	if tipo == "" {
		tipo = "bilateral"
	}
	if tipo != "bilateral" && tipo != "esquerda" && tipo != "direita" {
		schemaError(w, "Tipo de limite inválido: "+tipo)
		return
	}

	expr, err := svc.Parse(req.Funcao)
	if err != nil {
		record("limite", req.Funcao, start, false, true)
		writeJSON(w, http.StatusOK, types.LimiteResponse{
			Sucesso: false,
			Erro:    "Erro de sintaxe: " + err.Error(),
		})
		return
	}

	outcome, err := svc.Limit(r.Context(), expr, req.PontoLimite, tipo)
	if err != nil {
		record("limite", req.Funcao, start, false, true)
		writeJSON(w, http.StatusOK, types.LimiteResponse{
			Sucesso: false,
			Erro:    "Erro no cálculo de limite: " + err.Error(),
		})
		return
	}

	ponto := req.PontoLimite
	existe := outcome.Existe
	resp := types.LimiteResponse{
		Sucesso:        true,
		ValorLimite:    outcome.Valor,
		TipoLimite:     tipo,
		ExisteLimite:   &existe,
		FuncaoOriginal: req.Funcao,
		PontoLimite:    &ponto,
		CalculadoEm:    calculus.Timestamp(),
	}
	if boolOrTrue(req.FormatoLatex) && outcome.Existe {
		resp.LimiteLatex = outcome.LaTeX
	}
	if boolOrTrue(req.MostrarPassos) {
		resp.PassosResolucao = calculus.LimitSteps(req.Funcao, ponto, outcome.Valor, tipo, outcome.Existe)
	}

	record("limite", req.Funcao, start, false, false)
	writeJSON(w, http.StatusOK, resp)
}

func HandleGrafico(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req types.GraficoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Funcao) == "" {
		schemaError(w, "Função não pode estar vazia")
		return
	}
	res, ok := resolucao(req.Resolucao)
	if !ok {
		schemaError(w, fmt.Sprintf("Resolução fora do intervalo [50, %d]", cfg.MaxResolution))
		return
	}

	key := cache.Key("grafico", req.Funcao,
		fmt.Sprintf("%g", req.A), fmt.Sprintf("%g", req.B), fmt.Sprintf("%d", res))
	if body, hit := store.Get(key); hit {
		record("grafico", req.Funcao, start, true, false)
		writeCached(w, body)
		return
	}

	expr, err := svc.Parse(req.Funcao)
	if err != nil {
		record("grafico", req.Funcao, start, false, true)
		writeJSON(w, http.StatusOK, types.GraficoResponse{
			Sucesso: false,
			Erro:    "Erro de sintaxe: " + err.Error(),
		})
		return
	}

	pontos := svc.Sample(expr, req.A, req.B, res)
	grafico, err := render.PNGBase64(pontos, "f(x) = "+expr.Simplify().String(),
		cfg.GraphWidthInches, cfg.GraphHeightInches)
	if err != nil {
		record("grafico", req.Funcao, start, false, true)
		writeJSON(w, http.StatusOK, types.GraficoResponse{
			Sucesso: false,
			Erro:    "Erro ao gerar gráfico: " + err.Error(),
		})
		return
	}

	resp := types.GraficoResponse{
		Sucesso:       true,
		GraficoBase64: grafico,
		PontosGrafico: pontos,
	}

	record("grafico", req.Funcao, start, false, false)
	if body, err := json.Marshal(resp); err == nil {
		store.Set(key, string(body))
	}
	writeJSON(w, http.StatusOK, resp)
}

func HandleExemplos(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.ExemplosResponse{
		Exemplos: catalog.Categorias,
		Total:    catalog.Total(),
	})
}

func HandlePerformance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, perf.Stats())
}
