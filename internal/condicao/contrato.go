package condicao

import (
	"fmt"

	"github.com/iwvelando/payment-clauses/pkg/mathutil"
)

// Contrato is a contract or proposal: the reference total the conditions are
// expected to add up to, and the conditions themselves.
type Contrato struct {
	ID              string              `mapstructure:"id" json:"id,omitempty" yaml:"id,omitempty"`
	Titulo          string              `mapstructure:"titulo" json:"titulo,omitempty" yaml:"titulo,omitempty"`
	ValorReferencia float64             `mapstructure:"valor_referencia" json:"valor_referencia" yaml:"valor_referencia"`
	Condicoes       []CondicaoPagamento `mapstructure:"condicoes" json:"condicoes" yaml:"condicoes"`
}

// Clone deep-copies the contract.
func (c Contrato) Clone() Contrato {
	out := c
	out.Condicoes = CloneAll(c.Condicoes)
	return out
}

// Prepare checks the reference total and normalises and validates every
// condition, returning the canonical copy.
func (c Contrato) Prepare() (Contrato, error) {
	if !mathutil.IsFinite(c.ValorReferencia) || c.ValorReferencia < 0 {
		return Contrato{}, fmt.Errorf("%w: field valor_referencia must be a finite amount >= 0, got %v", ErrInvalid, c.ValorReferencia)
	}
	conds, err := Prepare(c.Condicoes)
	if err != nil {
		return Contrato{}, err
	}
	out := c
	out.Condicoes = conds
	return out, nil
}
