package clausula

import (
	"fmt"
	"strings"

	"github.com/iwvelando/payment-clauses/internal/condicao"
	"github.com/iwvelando/payment-clauses/pkg/extenso"
	"github.com/iwvelando/payment-clauses/pkg/format"
)

func entrada(c condicao.CondicaoPagamento) (string, error) {
	q, err := quantia(c)
	if err != nil {
		return "", wrap(c, err)
	}
	d, err := dacao(c)
	if err != nil {
		return "", wrap(c, err)
	}
	venc, err := vencimento(c, c.Count() > 1)
	if err != nil {
		return "", wrap(c, err)
	}
	return frase(c.ObservacaoTexto, "A título de sinal e princípio de pagamento, "+q, d, venc, pagamento(c)), nil
}

// mensais renders the whole monthly bucket under one label, one line per
// condition. Lines end with ";" and the last one with ".".
func mensais(conds []condicao.CondicaoPagamento) (string, error) {
	lines := make([]string, len(conds))
	for i, c := range conds {
		var line string
		var err error
		if c.Tipo == condicao.TipoMensalSerie {
			line, err = mensalSerie(c)
		} else {
			line, err = mensalFixa(c)
		}
		if err != nil {
			return "", wrap(c, err)
		}

		if i == len(conds)-1 {
			line += "."
		} else {
			line += ";"
		}
		if c.ObservacaoTexto != "" {
			line += " " + c.ObservacaoTexto
		}
		lines[i] = line
	}
	return "Em parcelas mensais, da seguinte forma:\n" + strings.Join(lines, "\n"), nil
}

func parcelasMensais(n int) string {
	if n == 1 {
		return "uma parcela mensal"
	}
	return extenso.NumberToWordsGenero(int64(n), extenso.Feminino) + " parcelas mensais"
}

func mensalFixa(c condicao.CondicaoPagamento) (string, error) {
	n := c.Count()
	v, err := valor(c)
	if err != nil {
		return "", err
	}
	venc, err := vencimento(c, n > 1)
	if err != nil {
		return "", err
	}
	parts := []string{parcelasMensais(n) + " de " + v + cada(n)}
	if venc != "" {
		parts = append(parts, venc)
	}
	parts = append(parts, CorrecaoMonetaria(c, n > 1))
	return strings.Join(parts, ", "), nil
}

func mensalSerie(c condicao.CondicaoPagamento) (string, error) {
	n := c.Count()
	v, err := valor(c)
	if err != nil {
		return "", err
	}

	head := parcelasMensais(n)
	if n > 1 {
		head += ", iguais e sucessivas,"
	}
	parts := []string{head + " de " + v + cada(n)}

	switch {
	case c.HasDataVencimento() && n > 1:
		data, err := format.FormatarDataExtenso(c.DataVencimento)
		if err != nil {
			return "", fmt.Errorf("data_vencimento: %w", err)
		}
		parts = append(parts, "vencendo-se a primeira em "+data+" e as demais no mesmo dia dos meses subsequentes")
	case !c.HasDataVencimento() && c.EventoVencimento.IsSet() && n > 1:
		parts = append(parts, "vencendo-se a primeira "+marco(c.EventoVencimento)+" e as demais nos meses subsequentes")
	default:
		venc, err := vencimento(c, false)
		if err != nil {
			return "", err
		}
		if venc != "" {
			parts = append(parts, venc)
		}
	}

	semCorrecao := c.ParcelasSemCorrecao
	switch {
	case c.ComCorrecao && semCorrecao > 0 && semCorrecao < n:
		parts = append(parts, correcaoEscalonada(c, n, semCorrecao))
	case c.ComCorrecao && semCorrecao >= n:
		parts = append(parts, "sem correção monetária")
	default:
		parts = append(parts, CorrecaoMonetaria(c, n > 1))
	}
	return strings.Join(parts, ", "), nil
}

// correcaoEscalonada distinguishes the first installments, which are not
// corrected, from the corrected remainder.
func correcaoEscalonada(c condicao.CondicaoPagamento, n, semCorrecao int) string {
	primeiras := "sendo a primeira parcela sem correção monetária"
	if semCorrecao > 1 {
		primeiras = "sendo as " +
			extenso.QuantidadePorExtensoGenero(semCorrecao, extenso.Feminino, "primeira parcela", "primeiras parcelas") +
			" sem correção monetária"
	}

	restantes := n - semCorrecao
	demais := "e a última parcela " + CorrecaoAbreviada(c, false)
	if restantes > 1 {
		demais = "e as " +
			extenso.QuantidadePorExtensoGenero(restantes, extenso.Feminino, "parcela restante", "parcelas restantes") +
			" " + CorrecaoAbreviada(c, true)
	}
	return primeiras + " " + demais
}

// intermediarias renders a single balloon inline. Several balloons get a
// header with the installment count and a semicolon separated list; the
// correction clause of the last one closes the list and covers them all.
func intermediarias(conds []condicao.CondicaoPagamento) (string, error) {
	if len(conds) == 1 {
		return intermediariaUnica(conds[0])
	}

	total := 0
	items := make([]string, len(conds))
	var observacoes []string
	for i, c := range conds {
		total += c.Count()
		item, err := intermediariaItem(c)
		if err != nil {
			return "", wrap(c, err)
		}
		items[i] = item
		if c.ObservacaoTexto != "" {
			observacoes = append(observacoes, c.ObservacaoTexto)
		}
	}

	last := conds[len(conds)-1]
	header := extenso.QuantidadePorExtensoGenero(total, extenso.Feminino, "parcela intermediária", "parcelas intermediárias")
	list := strings.Join(items[:len(items)-1], "; ") + "; e " + items[len(items)-1]
	return frase(strings.Join(observacoes, " "), header+", a saber: "+list, CorrecaoMonetaria(last, true)), nil
}

func intermediariaUnica(c condicao.CondicaoPagamento) (string, error) {
	n := c.Count()
	v, err := valor(c)
	if err != nil {
		return "", wrap(c, err)
	}
	venc, err := vencimento(c, n > 1)
	if err != nil {
		return "", wrap(c, err)
	}

	head := "Uma parcela intermediária no valor de " + v
	if n > 1 {
		head = capitalize(extenso.NumberToWordsGenero(int64(n), extenso.Feminino)) + " parcelas intermediárias de " + v + " cada"
	}
	return frase(c.ObservacaoTexto, head, venc, CorrecaoMonetaria(c, n > 1)), nil
}

func intermediariaItem(c condicao.CondicaoPagamento) (string, error) {
	n := c.Count()
	v, err := valor(c)
	if err != nil {
		return "", err
	}
	venc, err := vencimento(c, n > 1)
	if err != nil {
		return "", err
	}
	item := v
	if n > 1 {
		item = extenso.QuantidadePorExtensoGenero(n, extenso.Feminino, "parcela", "parcelas") + " de " + v + " cada"
	}
	if venc != "" {
		item += ", " + venc
	}
	return item, nil
}

func residual(c condicao.CondicaoPagamento) (string, error) {
	n := c.Count()
	v, err := valor(c)
	if err != nil {
		return "", wrap(c, err)
	}

	head := "O saldo residual, no valor de " + v
	if n > 1 {
		head = "O saldo residual, em " +
			extenso.QuantidadePorExtensoGenero(n, extenso.Feminino, "parcela", "parcelas") + " de " + v + " cada"
	}

	var venc string
	if c.HasDataVencimento() {
		venc, err = vencimento(c, n > 1)
		if err != nil {
			return "", wrap(c, err)
		}
	} else if m := marco(c.EventoVencimento); m != "" {
		venc = "vencível " + m
	}

	var correcao string
	if c.ComCorrecao {
		correcao = CorrecaoMonetaria(c, n > 1)
	}
	return frase(c.ObservacaoTexto, head, venc, correcao), nil
}

func corretagem(c condicao.CondicaoPagamento) (string, error) {
	q, err := quantia(c)
	if err != nil {
		return "", wrap(c, err)
	}
	venc, err := vencimento(c, c.Count() > 1)
	if err != nil {
		return "", wrap(c, err)
	}
	return frase(c.ObservacaoTexto, "A título de comissão de corretagem, "+q, venc, pagamento(c)), nil
}

// generica is the fallback for conditions without a dedicated phrasing.
func generica(c condicao.CondicaoPagamento) (string, error) {
	q, err := quantia(c)
	if err != nil {
		return "", wrap(c, err)
	}
	d, err := dacao(c)
	if err != nil {
		return "", wrap(c, err)
	}
	venc, err := vencimento(c, c.Count() > 1)
	if err != nil {
		return "", wrap(c, err)
	}
	var correcao string
	if c.ComCorrecao {
		correcao = CorrecaoMonetaria(c, c.Count() > 1)
	}
	return frase(c.ObservacaoTexto, capitalize(q), d, venc, pagamento(c), correcao), nil
}

// Resumo is a one-line description of a condition, used in schedules and
// exports ("Entrada: a quantia de R$ 50.000,00 (cinquenta mil reais)").
func Resumo(c condicao.CondicaoPagamento) (string, error) {
	q, err := quantia(c)
	if err != nil {
		return "", wrap(c, err)
	}
	return fmt.Sprintf("%s: %s", NomeTipo(c.Tipo), q), nil
}

var nomesTipo = map[condicao.TipoParcela]string{
	condicao.TipoEntrada:       "Entrada",
	condicao.TipoMensalFixa:    "Mensal",
	condicao.TipoMensalSerie:   "Mensal (série)",
	condicao.TipoIntermediaria: "Intermediária",
	condicao.TipoResidual:      "Residual",
	condicao.TipoCorretagem:    "Corretagem",
	condicao.TipoOutro:         "Outra",
}

// NomeTipo returns the display name of a tipo_parcela_codigo. Unknown codes
// are returned as is.
func NomeTipo(t condicao.TipoParcela) string {
	if nome, ok := nomesTipo[t]; ok {
		return nome
	}
	return string(t)
}
