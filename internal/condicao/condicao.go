// Package condicao defines the payment condition records produced by the
// condition editor and consumed by the clause generator and the
// reconciliation engine.
package condicao

import (
	"github.com/iwvelando/payment-clauses/pkg/constants"
	"github.com/iwvelando/payment-clauses/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// CondicaoPagamento is a single payment condition of a contract or proposal.
type CondicaoPagamento struct {
	ID                  string           `mapstructure:"id" json:"id,omitempty" yaml:"id,omitempty"`
	Ordem               int              `mapstructure:"ordem" json:"ordem" yaml:"ordem"`
	Tipo                TipoParcela      `mapstructure:"tipo_parcela_codigo" json:"tipo_parcela_codigo" yaml:"tipo_parcela_codigo" validate:"required,oneof=entrada mensal_fixa mensal_serie intermediaria residual corretagem other"`
	Valor               float64          `mapstructure:"valor" json:"valor" yaml:"valor" validate:"gte=0"`
	TipoValor           TipoValor        `mapstructure:"valor_tipo" json:"valor_tipo,omitempty" yaml:"valor_tipo,omitempty" validate:"omitempty,oneof=fixo percentual"`
	Quantidade          int              `mapstructure:"quantidade" json:"quantidade" yaml:"quantidade" validate:"gte=1"`
	DataVencimento      string           `mapstructure:"data_vencimento" json:"data_vencimento,omitempty" yaml:"data_vencimento,omitempty"`
	EventoVencimento    EventoVencimento `mapstructure:"evento_vencimento" json:"evento_vencimento,omitempty" yaml:"evento_vencimento,omitempty" validate:"omitempty,oneof=none assinatura habite_se entrega_chaves"`
	ComCorrecao         bool             `mapstructure:"com_correcao" json:"com_correcao" yaml:"com_correcao"`
	IndiceCorrecao      IndiceCorrecao   `mapstructure:"indice_correcao" json:"indice_correcao,omitempty" yaml:"indice_correcao,omitempty" validate:"omitempty,oneof=INCC IPCA IGP-M CUB"`
	ParcelasSemCorrecao int              `mapstructure:"parcelas_sem_correcao" json:"parcelas_sem_correcao,omitempty" yaml:"parcelas_sem_correcao,omitempty" validate:"gte=0,ltefield=Quantidade"`
	FormaQuitacao       FormaQuitacao    `mapstructure:"forma_quitacao" json:"forma_quitacao,omitempty" yaml:"forma_quitacao,omitempty" validate:"omitempty,oneof=dinheiro veiculo imovel outro_bem"`
	FormaPagamento      FormaPagamento   `mapstructure:"forma_pagamento" json:"forma_pagamento,omitempty" yaml:"forma_pagamento,omitempty" validate:"omitempty,oneof=boleto ted pix cheque nota_fiscal"`
	Bem                 *Bem             `mapstructure:"bem" json:"bem,omitempty" yaml:"bem,omitempty"`
	ObservacaoTexto     string           `mapstructure:"observacao_texto" json:"observacao_texto,omitempty" yaml:"observacao_texto,omitempty"`
	Quitada             bool             `mapstructure:"quitada" json:"quitada,omitempty" yaml:"quitada,omitempty"`
}

// Bem describes the asset handed over in a dação em pagamento.
type Bem struct {
	// Veículo
	Marca  string `mapstructure:"marca" json:"marca,omitempty" yaml:"marca,omitempty"`
	Modelo string `mapstructure:"modelo" json:"modelo,omitempty" yaml:"modelo,omitempty"`
	Ano    string `mapstructure:"ano" json:"ano,omitempty" yaml:"ano,omitempty"`
	Placa  string `mapstructure:"placa" json:"placa,omitempty" yaml:"placa,omitempty"`
	Cor    string `mapstructure:"cor" json:"cor,omitempty" yaml:"cor,omitempty"`

	// Imóvel e outros bens
	Descricao string  `mapstructure:"descricao" json:"descricao,omitempty" yaml:"descricao,omitempty"`
	Endereco  string  `mapstructure:"endereco" json:"endereco,omitempty" yaml:"endereco,omitempty"`
	Matricula string  `mapstructure:"matricula" json:"matricula,omitempty" yaml:"matricula,omitempty"`
	Area      float64 `mapstructure:"area" json:"area,omitempty" yaml:"area,omitempty" validate:"gte=0"`

	ValorAvaliado *float64 `mapstructure:"valor_avaliado" json:"valor_avaliado,omitempty" yaml:"valor_avaliado,omitempty" validate:"omitempty,gte=0"`
}

// IsEmpty reports whether no descriptive field is populated.
func (b *Bem) IsEmpty() bool {
	if b == nil {
		return true
	}
	return b.Marca == "" && b.Modelo == "" && b.Ano == "" && b.Placa == "" && b.Cor == "" &&
		b.Descricao == "" && b.Endereco == "" && b.Matricula == "" && b.Area == 0
}

// Count returns Quantidade, treating an unset quantity as a single installment.
func (c CondicaoPagamento) Count() int {
	if c.Quantidade < 1 {
		return 1
	}
	return c.Quantidade
}

// IsPercentual reports whether Valor is a percentage of the reference total.
func (c CondicaoPagamento) IsPercentual() bool {
	return c.TipoValor == ValorPercentual
}

// HasDataVencimento reports whether a literal due date is set.
func (c CondicaoPagamento) HasDataVencimento() bool {
	return c.DataVencimento != ""
}

// ValorUnitario resolves the payable amount of one installment, rounded to
// cents. Percentual values resolve against the reference total. Non-finite
// inputs contribute zero; Validate reports them.
func (c CondicaoPagamento) ValorUnitario(referenceTotal float64) decimal.Decimal {
	return mathutil.RoundDecimal(c.valorExato(referenceTotal))
}

// ValorTotal is Quantidade × valor with no intermediate rounding, so that a
// sub-cent unit amount is only rounded once, by whoever sums the totals.
func (c CondicaoPagamento) ValorTotal(referenceTotal float64) decimal.Decimal {
	return c.valorExato(referenceTotal).Mul(decimal.NewFromInt(int64(c.Count())))
}

func (c CondicaoPagamento) valorExato(referenceTotal float64) decimal.Decimal {
	if !mathutil.IsFinite(c.Valor) {
		return decimal.Zero
	}
	valor := decimal.NewFromFloat(c.Valor)
	if c.IsPercentual() {
		if !mathutil.IsFinite(referenceTotal) {
			return decimal.Zero
		}
		valor = valor.Mul(decimal.NewFromFloat(referenceTotal)).Div(decimal.NewFromFloat(constants.PercentageMultiplier))
	}
	return valor
}

// Clone returns a deep copy, so callers can modify it without touching the
// editor's collection.
func (c CondicaoPagamento) Clone() CondicaoPagamento {
	out := c
	if c.Bem != nil {
		bem := *c.Bem
		if c.Bem.ValorAvaliado != nil {
			v := *c.Bem.ValorAvaliado
			bem.ValorAvaliado = &v
		}
		out.Bem = &bem
	}
	return out
}

// CloneAll deep-copies a slice of conditions.
func CloneAll(conditions []CondicaoPagamento) []CondicaoPagamento {
	if conditions == nil {
		return nil
	}
	out := make([]CondicaoPagamento, len(conditions))
	for i, c := range conditions {
		out[i] = c.Clone()
	}
	return out
}

// IsQuitada is a protection predicate matching already settled conditions.
func IsQuitada(c CondicaoPagamento) bool {
	return c.Quitada
}
