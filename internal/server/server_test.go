package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/iwvelando/payment-clauses/internal/conciliacao"
	"github.com/iwvelando/payment-clauses/internal/condicao"
	"github.com/iwvelando/payment-clauses/internal/engine"
	"github.com/iwvelando/payment-clauses/pkg/constants"
	"github.com/iwvelando/payment-clauses/pkg/optimization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const contratoJSON = `{
  "titulo": "Apartamento 101",
  "valor_referencia": 100000,
  "condicoes": [
    {"ordem": 1, "tipo_parcela_codigo": "entrada", "valor": 20000, "quantidade": 1, "evento_vencimento": "assinatura"},
    {"ordem": 2, "tipo_parcela_codigo": "mensal_fixa", "valor": 5000, "quantidade": 10, "data_vencimento": "2025-01-10", "com_correcao": true, "indice_correcao": "INCC"},
    {"ordem": 3, "tipo_parcela_codigo": "residual", "valor": 30000, "quantidade": 1, "evento_vencimento": "entrega_chaves", "quitada": true}
  ]
}`

type reportData struct {
	Clausula    string             `json:"clausula"`
	Conciliacao conciliacao.Result `json:"conciliacao"`
	Cronograma  []json.RawMessage  `json:"cronograma"`
	Avisos      []string           `json:"avisos"`
}

type adjustmentData struct {
	Contrato     condicao.Contrato  `json:"contrato"`
	SkippedCount int                `json:"ignoradas"`
	Conciliacao  conciliacao.Result `json:"conciliacao"`
}

type envelope[T any] struct {
	Status  string   `json:"status"`
	Data    T        `json:"data"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func newTestHandler() http.Handler {
	return NewHandler(zap.NewNop(), engine.New(zap.NewNop(), nil), constants.DefaultMaxBodySizeBytes, "test")
}

func perform(t *testing.T, h http.Handler, method, path, contentType string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var resp envelope[T]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp
}

func TestHealthAndVersion(t *testing.T) {
	h := newTestHandler()

	rr := perform(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"UP"`)

	rr = perform(t, h, http.MethodGet, "/api/version", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var version map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &version))
	assert.Equal(t, "test", version["version"])

	rr = perform(t, NewHandler(nil, nil, 0, "  "), http.MethodGet, "/api/version", "", nil)
	assert.Contains(t, rr.Body.String(), `"dev"`)
}

func TestHandleClausulasJSON(t *testing.T) {
	rr := perform(t, newTestHandler(), http.MethodPost, "/api/v1/clausulas", "application/json", []byte(contratoJSON))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decode[reportData](t, rr)
	assert.Equal(t, "success", resp.Status)
	assert.True(t, strings.HasPrefix(resp.Data.Clausula, "O saldo do preço ajustado será pago"))
	assert.Contains(t, resp.Data.Clausula, "a) A título de sinal e princípio de pagamento, a quantia de R$ 20.000,00 (vinte mil reais), no ato da assinatura.")
	assert.Contains(t, resp.Data.Clausula, "c) O saldo residual, no valor de R$ 30.000,00 (trinta mil reais)")
	assert.True(t, resp.Data.Conciliacao.IsBalanced)
	assert.Len(t, resp.Data.Cronograma, 12)
	assert.Empty(t, resp.Data.Avisos)
}

func TestHandleClausulasYAML(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "test", "test_document.yaml"))
	require.NoError(t, err)

	rr := perform(t, newTestHandler(), http.MethodPost, "/api/v1/clausulas", "application/x-yaml", data)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decode[reportData](t, rr)
	assert.Equal(t, 250000.0, resp.Data.Conciliacao.TotalConfigured)
	assert.True(t, resp.Data.Conciliacao.IsBalanced)
	assert.Contains(t, resp.Data.Clausula, "Em parcelas mensais, da seguinte forma:")
}

func TestHandleClausulasErrors(t *testing.T) {
	tests := []struct {
		name        string
		maxBodySize int64
		body        string
		status      int
		contains    string
	}{
		{
			name:     "Malformed JSON",
			body:     `{"condicoes": [`,
			status:   http.StatusBadRequest,
			contains: "failed to decode contract",
		},
		{
			name:     "Unknown code",
			body:     `{"valor_referencia": 100, "condicoes": [{"ordem": 1, "tipo_parcela_codigo": "entradaa", "valor": 100, "quantidade": 1}]}`,
			status:   http.StatusUnprocessableEntity,
			contains: "did you mean \\\"entrada\\\"",
		},
		{
			name:     "Invalid quantity",
			body:     `{"valor_referencia": 100, "condicoes": [{"ordem": 1, "tipo_parcela_codigo": "entrada", "valor": 100, "quantidade": 0}]}`,
			status:   http.StatusUnprocessableEntity,
			contains: "quantidade",
		},
		{
			name:        "Body too large",
			maxBodySize: 16,
			body:        contratoJSON,
			status:      http.StatusRequestEntityTooLarge,
			contains:    "exceeds limit of 16 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(zap.NewNop(), nil, tt.maxBodySize, "test")
			rr := perform(t, h, http.MethodPost, "/api/v1/clausulas", "application/json", []byte(tt.body))

			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
			assert.Contains(t, rr.Body.String(), tt.contains)
			assert.Contains(t, rr.Body.String(), `"status":"error"`)
		})
	}
}

func TestHandleConciliacao(t *testing.T) {
	body := `{"valor_referencia": 1000, "condicoes": [{"ordem": 1, "tipo_parcela_codigo": "entrada", "valor": 250, "quantidade": 1}]}`
	rr := perform(t, newTestHandler(), http.MethodPost, "/api/v1/conciliacao", "application/json", []byte(body))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decode[conciliacao.Result](t, rr)
	assert.Equal(t, 250.0, resp.Data.TotalConfigured)
	assert.Equal(t, 750.0, resp.Data.Difference)
	assert.Equal(t, 25.0, resp.Data.PercentComplete)
	assert.False(t, resp.Data.IsBalanced)
}

func TestHandleAjuste(t *testing.T) {
	h := newTestHandler()
	body := `{"contrato": ` + contratoJSON + `, "percentual": 10}`

	rr := perform(t, h, http.MethodPost, "/api/v1/ajuste", "application/json", []byte(body))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decode[adjustmentData](t, rr)
	assert.Equal(t, 1, resp.Data.SkippedCount)
	assert.Equal(t, 22000.0, resp.Data.Contrato.Condicoes[0].Valor)
	assert.Equal(t, 30000.0, resp.Data.Contrato.Condicoes[2].Valor)
	assert.Equal(t, -7000.0, resp.Data.Conciliacao.Difference)

	bad := `{"contrato": ` + contratoJSON + `, "percentual": 10, "dimensao": "peso"}`
	rr = perform(t, h, http.MethodPost, "/api/v1/ajuste", "application/json", []byte(bad))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	tooLow := `{"contrato": ` + contratoJSON + `, "percentual": -100}`
	rr = perform(t, h, http.MethodPost, "/api/v1/ajuste", "application/json", []byte(tooLow))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

type closingData struct {
	Contrato    condicao.Contrato      `json:"contrato"`
	Resumos     []optimization.Summary `json:"resumos"`
	Conciliacao conciliacao.Result     `json:"conciliacao"`
}

func TestHandleFechamento(t *testing.T) {
	h := newTestHandler()
	short := strings.Replace(contratoJSON, `"valor_referencia": 100000`, `"valor_referencia": 104000`, 1)

	body := `{"contrato": ` + short + `, "diretivas": [{"ordem": 2, "campo": "valor"}]}`
	rr := perform(t, h, http.MethodPost, "/api/v1/fechamento", "application/json", []byte(body))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decode[closingData](t, rr)
	require.Len(t, resp.Data.Resumos, 1)
	assert.True(t, resp.Data.Resumos[0].Converged)
	assert.Equal(t, 5400.0, resp.Data.Contrato.Condicoes[1].Valor)
	assert.True(t, resp.Data.Conciliacao.IsBalanced)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"No directives", `{"contrato": ` + short + `, "diretivas": []}`, http.StatusBadRequest},
		{"Settled target", `{"contrato": ` + short + `, "diretivas": [{"ordem": 3}]}`, http.StatusUnprocessableEntity},
		{"Unknown ordem", `{"contrato": ` + short + `, "diretivas": [{"ordem": 7}]}`, http.StatusUnprocessableEntity},
		{"Unsupported field", `{"contrato": ` + short + `, "diretivas": [{"ordem": 2, "campo": "prazo"}]}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := perform(t, h, http.MethodPost, "/api/v1/fechamento", "application/json", []byte(tt.body))
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
		})
	}
}

func TestHandleExports(t *testing.T) {
	h := newTestHandler()

	rr := perform(t, h, http.MethodPost, "/api/v1/export/pdf", "application/json", []byte(contratoJSON))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, contentTypePDF, rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "clausula.pdf")
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF-")))

	rr = perform(t, h, http.MethodPost, "/api/v1/export/xlsx", "application/json", []byte(contratoJSON))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, contentTypeXLSX, rr.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("PK")), "xlsx is a zip archive")

	rr = perform(t, h, http.MethodPost, "/api/v1/export/yaml", "application/json", []byte(contratoJSON))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "tipo_parcela_codigo: mensal_fixa")
	assert.Contains(t, rr.Body.String(), "valor_referencia: 100000")

	empty := `{"valor_referencia": 0, "condicoes": []}`
	rr = perform(t, h, http.MethodPost, "/api/v1/export/pdf", "application/json", []byte(empty))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestContratosLifecycle(t *testing.T) {
	h := newTestHandler()
	id := uuid.New()
	path := "/api/v1/contratos/" + id.String()

	rr := perform(t, h, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = perform(t, h, http.MethodPut, path, "application/json", []byte(contratoJSON))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	saved := decode[condicao.Contrato](t, rr)
	assert.Equal(t, id.String(), saved.Data.ID)
	for _, c := range saved.Data.Condicoes {
		assert.NotEmpty(t, c.ID, "conditions get ids when stored")
	}

	rr = perform(t, h, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	report := decode[reportData](t, rr)
	assert.True(t, report.Data.Conciliacao.IsBalanced)

	rr = perform(t, h, http.MethodPost, path+"/ajuste", "application/json", []byte(`{"percentual": -10, "dimensao": "valor"}`))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	adjusted := decode[adjustmentData](t, rr)
	assert.Equal(t, 7000.0, adjusted.Data.Conciliacao.Difference)

	rr = perform(t, h, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	report = decode[reportData](t, rr)
	assert.False(t, report.Data.Conciliacao.IsBalanced)
	assert.Equal(t, 93000.0, report.Data.Conciliacao.TotalConfigured)

	rr = perform(t, h, http.MethodDelete, path, "", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = perform(t, h, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	rr = perform(t, h, http.MethodDelete, path, "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = perform(t, h, http.MethodGet, "/api/v1/contratos/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = perform(t, h, http.MethodPost, "/api/v1/contratos/"+uuid.New().String()+"/ajuste", "application/json", []byte(`{"percentual": 5}`))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
