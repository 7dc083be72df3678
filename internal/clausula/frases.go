package clausula

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iwvelando/payment-clauses/internal/condicao"
	"github.com/iwvelando/payment-clauses/pkg/extenso"
	"github.com/iwvelando/payment-clauses/pkg/format"
)

const substituto = "ou outro índice oficial que venha a substituí-lo"

// CorrecaoMonetaria returns the correction clause of c in full form.
// plural agrees the participle with "parcelas".
func CorrecaoMonetaria(c condicao.CondicaoPagamento, plural bool) string {
	if !c.ComCorrecao {
		return "sem correção monetária"
	}
	return participio(plural) + " monetariamente " + indice(c.IndiceCorrecao, true) + ", " + substituto
}

// CorrecaoAbreviada is the short form used mid-sentence when several
// installments are described together ("corrigidas pelo INCC").
func CorrecaoAbreviada(c condicao.CondicaoPagamento, plural bool) string {
	if !c.ComCorrecao {
		return "sem correção monetária"
	}
	return participio(plural) + " " + indice(c.IndiceCorrecao, false)
}

func participio(plural bool) string {
	if plural {
		return "corrigidas"
	}
	return "corrigida"
}

func indice(i condicao.IndiceCorrecao, completo bool) string {
	if i == "" {
		return "por índice oficial"
	}
	if nome := i.NomeCompleto(); completo && nome != "" {
		return fmt.Sprintf("pelo %s (%s)", i, nome)
	}
	return "pelo " + string(i)
}

// valor renders the amount of one installment: "R$ 5.000,00 (cinco mil
// reais)" or, for percentages, "12,50% (doze vírgula cinco por cento) do
// preço". Words are computed first so a non-finite value is reported.
func valor(c condicao.CondicaoPagamento) (string, error) {
	if c.IsPercentual() {
		words, err := extenso.PercentualExtenso(c.Valor)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s (%s) do preço", format.FormatarPercentual(c.Valor), words), nil
	}
	return moeda(c.Valor)
}

func moeda(amount float64) (string, error) {
	words, err := extenso.ValorExtenso(amount)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s (%s)", format.FormatarValorMonetario(amount), words), nil
}

// quantia is the amount phrase of a condition: "a quantia de V" for a single
// installment, "03 (três) parcelas de V cada" otherwise.
func quantia(c condicao.CondicaoPagamento) (string, error) {
	v, err := valor(c)
	if err != nil {
		return "", err
	}
	if n := c.Count(); n > 1 {
		return extenso.QuantidadePorExtensoGenero(n, extenso.Feminino, "parcela", "parcelas") + " de " + v + " cada", nil
	}
	return "a quantia de " + v, nil
}

// vencimento returns the due-timing fragment, or "" when neither a date nor a
// milestone is set. The literal date wins over the milestone. serie words the
// date as the due date of the first of several installments.
func vencimento(c condicao.CondicaoPagamento, serie bool) (string, error) {
	if c.HasDataVencimento() {
		data, err := format.FormatarDataExtenso(c.DataVencimento)
		if err != nil {
			return "", fmt.Errorf("data_vencimento: %w", err)
		}
		if serie {
			return "com vencimento da primeira em " + data, nil
		}
		return "com vencimento em " + data, nil
	}
	return marco(c.EventoVencimento), nil
}

func marco(e condicao.EventoVencimento) string {
	switch e {
	case condicao.EventoAssinatura:
		return "no ato da assinatura"
	case condicao.EventoHabiteSe:
		return "na entrega do Habite-se"
	case condicao.EventoEntregaChaves:
		return "na entrega das chaves"
	default:
		return ""
	}
}

// pagamento returns the payment instrument phrase for cash settlements.
func pagamento(c condicao.CondicaoPagamento) string {
	if c.FormaQuitacao.IsDacao() {
		return ""
	}
	return c.FormaPagamento.Descricao()
}

// dacao describes the asset of a dação em pagamento, including its appraised
// value when present. It returns "" for cash settlements.
func dacao(c condicao.CondicaoPagamento) (string, error) {
	if !c.FormaQuitacao.IsDacao() {
		return "", nil
	}
	bem := c.Bem
	if bem == nil {
		bem = &condicao.Bem{}
	}

	var objeto string
	var campos []string
	add := func(prefix, value string) {
		if value != "" {
			campos = append(campos, prefix+value)
		}
	}
	area := ""
	if bem.Area > 0 {
		area = format.FormatarNumero(bem.Area) + " m²"
	}

	switch c.FormaQuitacao {
	case condicao.QuitacaoVeiculo:
		objeto = "do veículo"
		add("marca ", bem.Marca)
		add("modelo ", bem.Modelo)
		add("ano ", bem.Ano)
		add("placa ", bem.Placa)
		add("cor ", bem.Cor)
		add("", bem.Descricao)
	case condicao.QuitacaoImovel:
		objeto = "do imóvel"
		add("", bem.Descricao)
		add("situado em ", bem.Endereco)
		add("matrícula nº ", bem.Matricula)
		add("com área de ", area)
	default:
		objeto = "do bem"
		add("", bem.Descricao)
		add("marca ", bem.Marca)
		add("modelo ", bem.Modelo)
		add("ano ", bem.Ano)
		add("placa ", bem.Placa)
		add("cor ", bem.Cor)
		add("situado em ", bem.Endereco)
		add("matrícula nº ", bem.Matricula)
		add("com área de ", area)
	}

	text := "mediante dação em pagamento " + objeto
	if len(campos) > 0 {
		text += " " + strings.Join(campos, ", ")
	}
	if bem.ValorAvaliado != nil {
		avaliado, err := moeda(*bem.ValorAvaliado)
		if err != nil {
			return "", fmt.Errorf("valor_avaliado: %w", err)
		}
		text += ", avaliado em " + avaliado
	}
	return text, nil
}

// frase joins the non-empty fragments with commas and closes the sentence,
// appending the free-text note verbatim.
func frase(observacao string, fragments ...string) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if f != "" {
			parts = append(parts, f)
		}
	}
	text := strings.Join(parts, ", ") + "."
	if observacao != "" {
		text += " " + observacao
	}
	return text
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func cada(n int) string {
	if n > 1 {
		return " cada"
	}
	return ""
}
