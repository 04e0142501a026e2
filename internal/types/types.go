// Package types holds the JSON contract shared with the mobile client.
// Field names are kept in Portuguese because the client depends on them.
package types

// Ponto is a single sampled point of a plotted curve.
type Ponto struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type AreaRequest struct {
	Funcao    string  `json:"funcao"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Resolucao int     `json:"resolucao,omitempty"`
}

type AreaResponse struct {
	Sucesso         bool               `json:"sucesso"`
	ValorIntegral   *float64           `json:"valor_integral,omitempty"`
	AreaTotal       *float64           `json:"area_total,omitempty"`
	ErroEstimado    *float64           `json:"erro_estimado,omitempty"`
	GraficoBase64   string             `json:"grafico_base64,omitempty"`
	PontosGrafico   []Ponto            `json:"pontos_grafico,omitempty"`
	FuncaoFormatada string             `json:"funcao_formatada,omitempty"`
	Intervalo       map[string]float64 `json:"intervalo,omitempty"`
	CalculadoEm     string             `json:"calculado_em,omitempty"`
	Erro            string             `json:"erro,omitempty"`
}

type SimbolicoRequest struct {
	Funcao        string   `json:"funcao"`
	A             *float64 `json:"a,omitempty"`
	B             *float64 `json:"b,omitempty"`
	MostrarPassos *bool    `json:"mostrar_passos,omitempty"`
	FormatoLatex  *bool    `json:"formato_latex,omitempty"`
}

type SimbolicoResponse struct {
	Sucesso            bool     `json:"sucesso"`
	Antiderivada       string   `json:"antiderivada,omitempty"`
	AntiderivadaLatex  string   `json:"antiderivada_latex,omitempty"`
	ResultadoSimbolico *float64 `json:"resultado_simbolico,omitempty"`
	PassosResolucao    []string `json:"passos_resolucao,omitempty"`
	FuncaoOriginal     string   `json:"funcao_original,omitempty"`
	CalculadoEm        string   `json:"calculado_em,omitempty"`
	Erro               string   `json:"erro,omitempty"`
}

type DerivadaRequest struct {
	Funcao        string `json:"funcao"`
	TipoDerivada  string `json:"tipo_derivada,omitempty"`
	MostrarPassos *bool  `json:"mostrar_passos,omitempty"`
	FormatoLatex  *bool  `json:"formato_latex,omitempty"`
}

type DerivadaResponse struct {
	Sucesso                bool     `json:"sucesso"`
	Derivada               string   `json:"derivada,omitempty"`
	DerivadaLatex          string   `json:"derivada_latex,omitempty"`
	DerivadaSimplificada   string   `json:"derivada_simplificada,omitempty"`
	PassosResolucao        []string `json:"passos_resolucao,omitempty"`
	FuncaoOriginal         string   `json:"funcao_original,omitempty"`
	TipoDerivada           string   `json:"tipo_derivada,omitempty"`
	CalculadoEm            string   `json:"calculado_em,omitempty"`
	Erro                   string   `json:"erro,omitempty"`
}

type LimiteRequest struct {
	Funcao        string  `json:"funcao"`
	PontoLimite   float64 `json:"ponto_limite"`
	TipoLimite    string  `json:"tipo_limite,omitempty"`
	MostrarPassos *bool   `json:"mostrar_passos,omitempty"`
	FormatoLatex  *bool   `json:"formato_latex,omitempty"`
}

type LimiteResponse struct {
	Sucesso         bool     `json:"sucesso"`
	ValorLimite     *float64 `json:"valor_limite,omitempty"`
	LimiteLatex     string   `json:"limite_latex,omitempty"`
	TipoLimite      string   `json:"tipo_limite,omitempty"`
	ExisteLimite    *bool    `json:"existe_limite,omitempty"`
	PassosResolucao []string `json:"passos_resolucao,omitempty"`
	FuncaoOriginal  string   `json:"funcao_original,omitempty"`
	PontoLimite     *float64 `json:"ponto_limite,omitempty"`
	CalculadoEm     string   `json:"calculado_em,omitempty"`
	Erro            string   `json:"erro,omitempty"`
}

type ValidarRequest struct {
	Funcao string `json:"funcao"`
}

type ValidarResponse struct {
	Valida              bool   `json:"valida"`
	FuncaoSimplificada  string `json:"funcao_simplificada,omitempty"`
	Mensagem            string `json:"mensagem"`
	Erro                string `json:"erro,omitempty"`
}

type GraficoRequest struct {
	Funcao    string  `json:"funcao"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Resolucao int     `json:"resolucao,omitempty"`
}

type GraficoResponse struct {
	Sucesso       bool    `json:"sucesso"`
	GraficoBase64 string  `json:"grafico_base64,omitempty"`
	PontosGrafico []Ponto `json:"pontos_grafico,omitempty"`
	Erro          string  `json:"erro,omitempty"`
}

type ExemplosResponse struct {
	Exemplos map[string][]string `json:"exemplos"`
	Total    int                 `json:"total"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type ErrorResponse struct {
	Erro string `json:"erro"`
}
