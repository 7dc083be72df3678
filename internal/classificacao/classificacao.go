// Package classificacao partitions an ordered list of payment conditions into
// the buckets the clause text is organised by.
package classificacao

import (
	"sort"

	"github.com/iwvelando/payment-clauses/internal/condicao"
)

// Buckets holds the conditions of each clause group, each in ordem order.
type Buckets struct {
	Entrada       []condicao.CondicaoPagamento
	Mensal        []condicao.CondicaoPagamento
	Intermediaria []condicao.CondicaoPagamento
	Residual      []condicao.CondicaoPagamento
	Corretagem    []condicao.CondicaoPagamento
	Outros        []condicao.CondicaoPagamento
}

// Len returns the number of conditions across all buckets.
func (b Buckets) Len() int {
	return len(b.Entrada) + len(b.Mensal) + len(b.Intermediaria) + len(b.Residual) + len(b.Corretagem) + len(b.Outros)
}

// SortByOrdem returns a copy of conditions stably sorted by Ordem; ties keep
// their input order.
func SortByOrdem(conditions []condicao.CondicaoPagamento) []condicao.CondicaoPagamento {
	sorted := make([]condicao.CondicaoPagamento, len(conditions))
	copy(sorted, conditions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Ordem < sorted[j].Ordem
	})
	return sorted
}

// Classify sorts by ordem and partitions by tipo_parcela_codigo. mensal_fixa
// and mensal_serie share the Mensal bucket; unrecognised codes go to Outros.
// Every input condition lands in exactly one bucket.
func Classify(conditions []condicao.CondicaoPagamento) Buckets {
	var b Buckets
	for _, c := range SortByOrdem(conditions) {
		switch c.Tipo {
		case condicao.TipoEntrada:
			b.Entrada = append(b.Entrada, c)
		case condicao.TipoMensalFixa, condicao.TipoMensalSerie:
			b.Mensal = append(b.Mensal, c)
		case condicao.TipoIntermediaria:
			b.Intermediaria = append(b.Intermediaria, c)
		case condicao.TipoResidual:
			b.Residual = append(b.Residual, c)
		case condicao.TipoCorretagem:
			b.Corretagem = append(b.Corretagem, c)
		default:
			b.Outros = append(b.Outros, c)
		}
	}
	return b
}
