// Package optimizer closes the balance of a contract by searching for the
// value of one field of a chosen condition that makes the conditions add up
// to the reference total.
package optimizer

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/payment-clauses/internal/conciliacao"
	"github.com/iwvelando/payment-clauses/internal/condicao"
	"github.com/iwvelando/payment-clauses/pkg/constants"
	"github.com/iwvelando/payment-clauses/pkg/format"
	"github.com/iwvelando/payment-clauses/pkg/mathutil"
	"github.com/iwvelando/payment-clauses/pkg/optimization"
	"go.uber.org/zap"
)

// Fields a Directive can search.
const (
	FieldValor      = "valor"
	FieldQuantidade = "quantidade"
)

const (
	defaultMaxIterations = 100
	defaultMaxQuantidade = 600
)

var (
	// ErrInvalidDirective is returned for an unsupported field or inconsistent bounds.
	ErrInvalidDirective = errors.New("invalid closing directive")
	// ErrTargetNotFound is returned when no condition has the directive's ordem.
	ErrTargetNotFound = errors.New("no condition with that ordem")
	// ErrProtectedTarget is returned when the directive targets a settled condition.
	ErrProtectedTarget = errors.New("condition is settled and cannot be changed")
)

// Directive asks for the value of Field on the condition with Ordem that
// closes the balance, searched within [Min, Max].
type Directive struct {
	Ordem         int      `mapstructure:"ordem" json:"ordem" yaml:"ordem"`
	Field         string   `mapstructure:"campo" json:"campo" yaml:"campo"`
	Min           *float64 `mapstructure:"min" json:"min,omitempty" yaml:"min,omitempty"`
	Max           *float64 `mapstructure:"max" json:"max,omitempty" yaml:"max,omitempty"`
	Tolerance     float64  `mapstructure:"tolerancia" json:"tolerancia,omitempty" yaml:"tolerancia,omitempty"`
	MaxIterations int      `mapstructure:"max_iteracoes" json:"max_iteracoes,omitempty" yaml:"max_iteracoes,omitempty"`
}

// CanonicalField lowercases and trims a field name.
func CanonicalField(field string) string {
	return strings.ToLower(strings.TrimSpace(field))
}

// Normalize fills the defaults of d.
func (d *Directive) Normalize() {
	d.Field = CanonicalField(d.Field)
	if d.Field == "" {
		d.Field = FieldValor
	}
	if d.MaxIterations <= 0 {
		d.MaxIterations = defaultMaxIterations
	}
	switch d.Field {
	case FieldQuantidade:
		d.Tolerance = math.Max(d.Tolerance, 1)
	default:
		if d.Tolerance <= 0 {
			d.Tolerance = constants.CurrencyTolerance
		}
	}
}

// Validate checks the field name and the bounds of d.
func (d Directive) Validate() error {
	switch CanonicalField(d.Field) {
	case "", FieldValor, FieldQuantidade:
	default:
		return fmt.Errorf("%w: closing field %q is not supported", ErrInvalidDirective, d.Field)
	}
	if d.Min != nil && *d.Min < 0 {
		return fmt.Errorf("%w: closing min must not be negative, got %v", ErrInvalidDirective, *d.Min)
	}
	if d.Min != nil && d.Max != nil && *d.Min > *d.Max {
		return fmt.Errorf("%w: closing min %v exceeds max %v", ErrInvalidDirective, *d.Min, *d.Max)
	}
	return nil
}

// Runner applies closing directives to a copy of a contract.
type Runner struct {
	logger   *zap.Logger
	contrato condicao.Contrato
}

type target struct {
	index    int
	ordem    int
	name     string
	field    string
	minValue float64
	maxValue float64
	original fieldState
	cfg      Directive
}

type evaluation struct {
	value      float64
	display    string
	difference float64
	balanced   bool
}

// feasible reports whether the conditions do not exceed the reference total.
func (e evaluation) feasible() bool {
	return e.balanced || e.difference > 0
}

type fieldState struct {
	numeric float64
	display string
}

// NewRunner constructs a Runner over a copy of contrato.
func NewRunner(logger *zap.Logger, contrato condicao.Contrato) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, contrato: contrato.Clone()}
}

// Contrato returns the contract with every directive applied so far.
func (r *Runner) Contrato() condicao.Contrato {
	return r.contrato.Clone()
}

// Run executes the directives in order. Each directive sees the conditions
// as left by the previous ones.
func (r *Runner) Run(directives []Directive) ([]optimization.Summary, error) {
	summaries := make([]optimization.Summary, 0, len(directives))
	for _, d := range directives {
		t, err := r.resolveTarget(d)
		if err != nil {
			return nil, err
		}
		summary, err := r.closeBalance(t)
		if err != nil {
			return nil, err
		}
		r.logger.Debug("closing directive applied",
			zap.String("op", "optimizer.Run"),
			zap.Int("ordem", t.ordem),
			zap.String("campo", t.field),
			zap.Float64("valor", summary.Value),
			zap.Int("iteracoes", summary.Iterations),
			zap.Bool("convergiu", summary.Converged),
		)
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (r *Runner) resolveTarget(d Directive) (target, error) {
	if err := d.Validate(); err != nil {
		return target{}, fmt.Errorf("ordem %d: %w", d.Ordem, err)
	}
	d.Normalize()

	index := -1
	for i, c := range r.contrato.Condicoes {
		if c.Ordem == d.Ordem {
			index = i
			break
		}
	}
	if index < 0 {
		return target{}, fmt.Errorf("%w: %d", ErrTargetNotFound, d.Ordem)
	}
	c := r.contrato.Condicoes[index]
	if condicao.IsQuitada(c) {
		return target{}, fmt.Errorf("%w: ordem %d", ErrProtectedTarget, d.Ordem)
	}

	minValue, maxValue := r.boundsForField(d, c)
	return target{
		index:    index,
		ordem:    c.Ordem,
		name:     fmt.Sprintf("ordem %d (%s)", c.Ordem, c.Tipo),
		field:    d.Field,
		minValue: minValue,
		maxValue: maxValue,
		original: r.fieldState(d.Field, c),
		cfg:      d,
	}, nil
}

func (r *Runner) boundsForField(d Directive, c condicao.CondicaoPagamento) (float64, float64) {
	var minValue, maxValue float64
	switch d.Field {
	case FieldQuantidade:
		minValue, maxValue = 1, defaultMaxQuantidade
	default:
		maxValue = r.contrato.ValorReferencia
		if c.IsPercentual() {
			maxValue = constants.PercentageMultiplier
		}
	}
	if d.Min != nil {
		minValue = *d.Min
	}
	if d.Max != nil {
		maxValue = *d.Max
	}
	return minValue, math.Max(minValue, maxValue)
}

func (r *Runner) closeBalance(t target) (optimization.Summary, error) {
	lowerEval := r.evaluateTarget(t, t.minValue)
	upperEval := r.evaluateTarget(t, t.maxValue)

	iterations := 0
	finalEval := lowerEval
	var note string

	switch {
	case !lowerEval.feasible():
		note = fmt.Sprintf("conditions exceed the reference total %s even with %s at %s",
			format.FormatarValorMonetario(r.contrato.ValorReferencia), t.field, lowerEval.display)
	case upperEval.feasible():
		finalEval = upperEval
		if !upperEval.balanced {
			note = fmt.Sprintf("unable to close difference %s within bounds %s to %s",
				format.FormatarValorMonetario(upperEval.difference),
				formatFieldDisplay(t.field, t.minValue, false),
				formatFieldDisplay(t.field, t.maxValue, false))
		}
	default:
		lower := lowerEval.value
		upper := upperEval.value
		for iterations < t.cfg.MaxIterations && upper-lower > t.cfg.Tolerance {
			mid := snapFieldValue(t.field, lower+(upper-lower)/2)
			evalMid := r.evaluateTarget(t, mid)
			iterations++
			if evalMid.feasible() {
				finalEval = evalMid
				if evalMid.value == lower {
					break
				}
				lower = evalMid.value
			} else {
				if evalMid.value == upper {
					break
				}
				upper = evalMid.value
			}
		}
		if !finalEval.balanced {
			note = fmt.Sprintf("closest %s leaves a difference of %s",
				t.field, format.FormatarValorMonetario(finalEval.difference))
		}
	}

	applied := r.setFieldValue(t, finalEval.value)

	summary := optimization.Summary{
		Scope:           "contrato",
		TargetName:      t.name,
		Ordem:           t.ordem,
		Field:           t.field,
		Original:        t.original.numeric,
		OriginalDisplay: t.original.display,
		Value:           applied.numeric,
		ValueDisplay:    applied.display,
		ReferenceTotal:  mathutil.Round(r.contrato.ValorReferencia),
		Difference:      finalEval.difference,
		Iterations:      iterations,
		Converged:       finalEval.balanced,
	}
	if note != "" {
		summary.Notes = []string{note}
	}
	return summary, nil
}

// evaluateTarget reconciles the contract with the target field set to value,
// leaving the contract unchanged.
func (r *Runner) evaluateTarget(t target, value float64) evaluation {
	value = clampValue(snapFieldValue(t.field, value), t.minValue, t.maxValue)

	conds := make([]condicao.CondicaoPagamento, len(r.contrato.Condicoes))
	copy(conds, r.contrato.Condicoes)
	c := conds[t.index]
	state := setField(&c, t.field, value)
	conds[t.index] = c

	result := conciliacao.Reconcile(conds, r.contrato.ValorReferencia)
	return evaluation{
		value:      state.numeric,
		display:    state.display,
		difference: result.Difference,
		balanced:   result.IsBalanced,
	}
}

func (r *Runner) setFieldValue(t target, value float64) fieldState {
	c := r.contrato.Condicoes[t.index].Clone()
	state := setField(&c, t.field, value)
	r.contrato.Condicoes[t.index] = c
	return state
}

func (r *Runner) fieldState(field string, c condicao.CondicaoPagamento) fieldState {
	switch field {
	case FieldQuantidade:
		n := c.Count()
		return fieldState{numeric: float64(n), display: formatFieldDisplay(field, float64(n), false)}
	default:
		return fieldState{numeric: c.Valor, display: formatFieldDisplay(field, c.Valor, c.IsPercentual())}
	}
}

func setField(c *condicao.CondicaoPagamento, field string, value float64) fieldState {
	switch field {
	case FieldQuantidade:
		n := int(math.Round(value))
		if n < 1 {
			n = 1
		}
		c.Quantidade = n
		if c.ParcelasSemCorrecao > n {
			c.ParcelasSemCorrecao = n
		}
		return fieldState{numeric: float64(n), display: formatFieldDisplay(field, float64(n), false)}
	default:
		rounded := mathutil.Round(value)
		c.Valor = rounded
		return fieldState{numeric: rounded, display: formatFieldDisplay(field, rounded, c.IsPercentual())}
	}
}

func snapFieldValue(field string, value float64) float64 {
	switch field {
	case FieldQuantidade:
		return math.Round(value)
	default:
		return mathutil.Round(value)
	}
}

func clampValue(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func formatFieldDisplay(field string, value float64, percentual bool) string {
	switch {
	case field == FieldQuantidade:
		return fmt.Sprintf("%d", int(math.Round(value)))
	case percentual:
		return format.FormatarPercentual(value)
	default:
		return format.FormatarValorMonetario(value)
	}
}
