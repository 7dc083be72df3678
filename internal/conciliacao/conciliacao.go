// Package conciliacao reconciles the configured payment conditions against the
// reference total of a contract and applies bulk percentage adjustments.
//
// Every function here is pure: conditions and reference totals are supplied on
// each call and nothing is retained between calls. The only stateful type,
// Notifier, belongs to whoever observes results over time.
package conciliacao

import (
	"errors"
	"fmt"

	"github.com/iwvelando/payment-clauses/internal/condicao"
	"github.com/iwvelando/payment-clauses/pkg/constants"
	"github.com/iwvelando/payment-clauses/pkg/mathutil"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidDimension is returned for an adjustment dimension other than valor or area.
	ErrInvalidDimension = errors.New("invalid adjustment dimension")

	// ErrInvalidPercent is returned for a non-finite percent or one that would
	// zero out or invert the adjusted values.
	ErrInvalidPercent = errors.New("invalid adjustment percent")
)

// Result is the balance of a condition list against its reference total.
type Result struct {
	ReferenceTotal  float64 `json:"valor_referencia" yaml:"valor_referencia"`
	TotalConfigured float64 `json:"total_configurado" yaml:"total_configurado"`
	Difference      float64 `json:"diferenca" yaml:"diferenca"`
	PercentComplete float64 `json:"percentual_concluido" yaml:"percentual_concluido"`
	IsBalanced      bool    `json:"equilibrado" yaml:"equilibrado"`
}

// Reconcile sums quantidade × valor over all conditions, resolving percentual
// values against referenceTotal, and compares the sum with referenceTotal.
// The sum is rounded to cents once, after every condition is added. A zero reference total yields a
// PercentComplete of 0; a non-finite one is treated as zero.
func Reconcile(conditions []condicao.CondicaoPagamento, referenceTotal float64) Result {
	if !mathutil.IsFinite(referenceTotal) {
		referenceTotal = 0
	}
	ref := mathutil.RoundDecimal(decimal.NewFromFloat(referenceTotal))

	total := decimal.Zero
	for _, c := range conditions {
		total = total.Add(c.ValorTotal(referenceTotal))
	}
	total = mathutil.RoundDecimal(total)
	diff := mathutil.RoundDecimal(ref.Sub(total))

	var percent decimal.Decimal
	if ref.IsPositive() {
		percent = total.Div(ref).Mul(decimal.NewFromFloat(constants.PercentageMultiplier))
		percent = decimal.Min(percent, decimal.NewFromFloat(constants.MaxPercentComplete))
		percent = mathutil.RoundDecimal(percent)
	}

	r := Result{
		ReferenceTotal:  ref.InexactFloat64(),
		TotalConfigured: total.InexactFloat64(),
		Difference:      diff.InexactFloat64(),
		PercentComplete: percent.InexactFloat64(),
	}
	r.IsBalanced = mathutil.IsZero(r.Difference)
	return r
}

// Dimension is the field scaled by ApplyPercentAdjustment.
type Dimension string

const (
	// DimensionValor scales the amount of each condition.
	DimensionValor Dimension = "valor"
	// DimensionArea scales the area of the asset given in payment.
	DimensionArea Dimension = "area"
)

// ParseDimension validates a dimension name.
func ParseDimension(s string) (Dimension, error) {
	switch d := Dimension(s); d {
	case DimensionValor, DimensionArea:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDimension, s)
	}
}

// Protected reports whether a condition must be left untouched by a bulk
// adjustment, e.g. because it has already been settled.
type Protected func(condicao.CondicaoPagamento) bool

// AdjustmentResult is the outcome of ApplyPercentAdjustment.
type AdjustmentResult struct {
	Updated      []condicao.CondicaoPagamento `json:"condicoes"`
	SkippedCount int                          `json:"ignoradas"`
}

// ApplyPercentAdjustment multiplies the chosen dimension of every condition
// not matched by isProtected by (1 + percent/100), rounding to cents.
// Protected conditions are copied unchanged and counted in SkippedCount. The
// input slice is never modified; on error no result is returned at all. A nil
// isProtected protects nothing.
func ApplyPercentAdjustment(conditions []condicao.CondicaoPagamento, percent float64, dimension Dimension, isProtected Protected) (AdjustmentResult, error) {
	if _, err := ParseDimension(string(dimension)); err != nil {
		return AdjustmentResult{}, err
	}
	if !mathutil.IsFinite(percent) {
		return AdjustmentResult{}, fmt.Errorf("%w: %v is not finite", ErrInvalidPercent, percent)
	}
	if percent <= -constants.PercentageMultiplier {
		return AdjustmentResult{}, fmt.Errorf("%w: %v%% would leave no value", ErrInvalidPercent, percent)
	}

	factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(percent).Div(decimal.NewFromFloat(constants.PercentageMultiplier)))
	scale := func(v float64) float64 {
		if !mathutil.IsFinite(v) {
			return v
		}
		return mathutil.RoundDecimal(decimal.NewFromFloat(v).Mul(factor)).InexactFloat64()
	}

	result := AdjustmentResult{Updated: make([]condicao.CondicaoPagamento, len(conditions))}
	for i, c := range conditions {
		updated := c.Clone()
		if isProtected != nil && isProtected(c) {
			result.SkippedCount++
			result.Updated[i] = updated
			continue
		}

		switch dimension {
		case DimensionValor:
			updated.Valor = scale(updated.Valor)
		case DimensionArea:
			if updated.Bem != nil {
				updated.Bem.Area = scale(updated.Bem.Area)
			}
		}
		result.Updated[i] = updated
	}
	return result, nil
}
