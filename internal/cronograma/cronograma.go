// Package cronograma expands payment conditions into their individual
// installments, each with its due date or due event and amount.
package cronograma

import (
	"fmt"

	"github.com/iwvelando/payment-clauses/internal/classificacao"
	"github.com/iwvelando/payment-clauses/internal/condicao"
	"github.com/iwvelando/payment-clauses/pkg/datetime"
	"github.com/iwvelando/payment-clauses/pkg/events"
	"github.com/iwvelando/payment-clauses/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// Installment is a single installment of a condition.
type Installment struct {
	Ordem      int                       `json:"ordem"`
	CondicaoID string                    `json:"condicao_id,omitempty"`
	Tipo       condicao.TipoParcela      `json:"tipo_parcela_codigo"`
	Numero     int                       `json:"numero"`
	Total      int                       `json:"total"`
	Vencimento string                    `json:"vencimento,omitempty"`
	Evento     condicao.EventoVencimento `json:"evento_vencimento,omitempty"`
	Valor      float64                   `json:"valor"`
	Corrigida  bool                      `json:"corrigida"`
	Indice     condicao.IndiceCorrecao   `json:"indice_correcao,omitempty"`
	Quitada    bool                      `json:"quitada,omitempty"`
}

// Parcela returns the "3/10" installment number.
func (i Installment) Parcela() string {
	return fmt.Sprintf("%d/%d", i.Numero, i.Total)
}

// Expand lists the installments of every condition in ordem order. Dated
// conditions fall due on the same day of the following months, clamped to
// the end of shorter months. Undated conditions carry their due event
// instead. Percentual values resolve against referenceTotal. An installment
// is corrected when its condition has correction and it comes after the
// parcelas_sem_correcao uncorrected ones.
func Expand(conditions []condicao.CondicaoPagamento, referenceTotal float64) ([]Installment, error) {
	sorted := classificacao.SortByOrdem(conditions)

	series := make([]*events.Event, len(sorted))
	for i, c := range sorted {
		series[i] = &events.Event{
			Name:      string(c.Tipo),
			Amount:    c.ValorUnitario(referenceTotal).InexactFloat64(),
			StartDate: c.DataVencimento,
			Count:     c.Count(),
			Frequency: 1,
		}
	}
	if err := events.NewProcessor().ParseDateLists(series); err != nil {
		return nil, fmt.Errorf("expanding schedule: %w", err)
	}

	var out []Installment
	for i, c := range sorted {
		s := series[i]
		for n := 1; n <= s.Count; n++ {
			inst := Installment{
				Ordem:      c.Ordem,
				CondicaoID: c.ID,
				Tipo:       c.Tipo,
				Numero:     n,
				Total:      s.Count,
				Valor:      s.Amount,
				Corrigida:  c.ComCorrecao && n > c.ParcelasSemCorrecao,
				Quitada:    c.Quitada,
			}
			if inst.Corrigida {
				inst.Indice = c.IndiceCorrecao
			}
			if len(s.DateList) > 0 {
				inst.Vencimento = s.DateList[n-1].Format(datetime.DateLayout)
			} else if c.EventoVencimento.IsSet() {
				inst.Evento = c.EventoVencimento
			}
			out = append(out, inst)
		}
	}
	return out, nil
}

// Total sums the installment amounts, rounded to cents.
func Total(installments []Installment) float64 {
	total := decimal.Zero
	for _, inst := range installments {
		total = total.Add(decimal.NewFromFloat(inst.Valor))
	}
	return mathutil.RoundDecimal(total).InexactFloat64()
}
