package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iwvelando/payment-clauses/internal/condicao"
)

const testDocument = "../../test/test_document.yaml"

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Test document",
			configPath: testDocument,
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationExample(t *testing.T) {
	conf, err := LoadConfiguration(testDocument)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Logging.Level != "info" || conf.Logging.Format != "console" {
		t.Errorf("Logging = %+v", conf.Logging)
	}
	if conf.Output.Format != "pretty" {
		t.Errorf("Output.Format = %q, expected pretty", conf.Output.Format)
	}

	contrato := conf.Contrato
	if contrato.ValorReferencia != 250000 {
		t.Errorf("ValorReferencia = %v, expected 250000", contrato.ValorReferencia)
	}
	if len(contrato.Condicoes) != 5 {
		t.Fatalf("expected 5 conditions, got %d", len(contrato.Condicoes))
	}

	mensal := contrato.Condicoes[1]
	if mensal.Quantidade != 10 || mensal.Valor != 5000 || !mensal.ComCorrecao || mensal.DataVencimento != "2025-01-10" {
		t.Errorf("mensal condition decoded as %+v", mensal)
	}
	if !contrato.Condicoes[2].Quitada {
		t.Errorf("quitada flag not decoded")
	}

	if err := conf.Prepare(); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if conf.Contrato.Condicoes[1].Tipo != condicao.TipoMensalFixa {
		t.Errorf("Tipo = %q, expected mensal_fixa", conf.Contrato.Condicoes[1].Tipo)
	}
	if conf.Contrato.Condicoes[3].Tipo != condicao.TipoIntermediaria {
		t.Errorf("Tipo = %q, expected intermediaria", conf.Contrato.Condicoes[3].Tipo)
	}
	if conf.Contrato.Condicoes[4].EventoVencimento != condicao.EventoHabiteSe {
		t.Errorf("EventoVencimento = %q, expected habite_se", conf.Contrato.Condicoes[4].EventoVencimento)
	}

	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("expected a clean document, got warnings %v", warnings)
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	doc := `
contrato:
  valor_referencia: 1000
  condicoes:
    - ordem: 1
      tipo_parcela_codigo: entrada
      valor: 600
      quantidade: 1
      forma_quitacao: veiculo
      bem:
        marca: Fiat
        modelo: Argo
        valor_avaliado: 600
    - ordem: 1
      tipo_parcela_codigo: corretagem
      valor: 10
      valor_tipo: percentual
      quantidade: 1
      indice_correcao: IPCA
`
	conf, err := LoadConfigurationFromReader(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	bem := conf.Contrato.Condicoes[0].Bem
	if bem == nil || bem.Marca != "Fiat" || bem.ValorAvaliado == nil || *bem.ValorAvaliado != 600 {
		t.Fatalf("asset decoded as %+v", bem)
	}
	if err := conf.Prepare(); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	warnings := conf.ValidateConfiguration()
	expected := []string{"do not add up", "Ordem 1 is used by 2 conditions", "names index IPCA"}
	if len(warnings) != len(expected) {
		t.Fatalf("warnings = %v, expected %d", warnings, len(expected))
	}
	for i, want := range expected {
		if !strings.Contains(warnings[i], want) {
			t.Errorf("warning %d = %q, expected %q", i, warnings[i], want)
		}
	}
}

func TestLoadConfigurationFromReaderErrors(t *testing.T) {
	if _, err := LoadConfigurationFromReader(strings.NewReader("contrato: [unclosed")); err == nil {
		t.Errorf("expected error for malformed YAML")
	}

	conf, err := LoadConfigurationFromReader(strings.NewReader(`
contrato:
  valor_referencia: 100
  condicoes:
    - ordem: 1
      tipo_parcela_codigo: mensal
      valor: 100
      quantidade: 1
`))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	err = conf.Prepare()
	if err == nil {
		t.Fatal("Prepare() expected error for unknown tipo")
	}
	if !strings.Contains(err.Error(), "tipo_parcela_codigo") {
		t.Errorf("error should name the field: %v", err)
	}
}

func TestWriteDocumentRoundTrip(t *testing.T) {
	conf, err := LoadConfiguration(testDocument)
	if err != nil {
		t.Fatal(err)
	}
	if err := conf.Prepare(); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteDocument(&buf, *conf); err != nil {
		t.Fatalf("WriteDocument() error = %v", err)
	}
	if !strings.Contains(buf.String(), "tipo_parcela_codigo: mensal_fixa") {
		t.Errorf("document should carry canonical codes:\n%s", buf.String())
	}

	reloaded, err := LoadConfigurationFromReader(&buf)
	if err != nil {
		t.Fatalf("reloading written document: %v", err)
	}
	if len(reloaded.Contrato.Condicoes) != len(conf.Contrato.Condicoes) {
		t.Fatalf("reloaded %d conditions, expected %d", len(reloaded.Contrato.Condicoes), len(conf.Contrato.Condicoes))
	}
	for i := range conf.Contrato.Condicoes {
		if reloaded.Contrato.Condicoes[i].Valor != conf.Contrato.Condicoes[i].Valor {
			t.Errorf("condition %d valor changed on round trip", i)
		}
	}
}

func TestLoadConfigurationFechamento(t *testing.T) {
	doc := `
contrato:
  valor_referencia: 1000
  condicoes:
    - ordem: 1
      tipo_parcela_codigo: residual
      valor: 900
      quantidade: 1
fechamento:
  - ordem: 1
    campo: valor
    max: 1500
    tolerancia: 0.5
`
	conf, err := LoadConfigurationFromReader(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	if len(conf.Fechamento) != 1 {
		t.Fatalf("expected one closing directive, got %d", len(conf.Fechamento))
	}
	d := conf.Fechamento[0]
	if d.Ordem != 1 || d.Field != "valor" || d.Tolerance != 0.5 {
		t.Errorf("directive decoded as %+v", d)
	}
	if d.Max == nil || *d.Max != 1500 || d.Min != nil {
		t.Errorf("bounds decoded as min=%v max=%v", d.Min, d.Max)
	}
}
