package condicao

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/iwvelando/payment-clauses/pkg/constants"
	"github.com/iwvelando/payment-clauses/pkg/datetime"
	"github.com/iwvelando/payment-clauses/pkg/mathutil"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid payment condition")

var validate = validator.New()

func init() {
	// Report fields by their document key rather than the Go name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	validate.RegisterStructValidation(validateCondicao, CondicaoPagamento{})
}

func validateCondicao(sl validator.StructLevel) {
	c := sl.Current().Interface().(CondicaoPagamento)

	if !mathutil.IsFinite(c.Valor) {
		sl.ReportError(c.Valor, "valor", "Valor", "finite", "")
	}
	if c.IsPercentual() && c.Valor > constants.PercentageMultiplier {
		sl.ReportError(c.Valor, "valor", "Valor", "max_percent", "100")
	}
	if c.ComCorrecao && c.IndiceCorrecao == "" {
		sl.ReportError(c.IndiceCorrecao, "indice_correcao", "IndiceCorrecao", "required_with_correction", "")
	}
	if c.FormaQuitacao.IsDacao() && c.Bem.IsEmpty() {
		sl.ReportError(c.Bem, "bem", "Bem", "required_for_dacao", string(c.FormaQuitacao))
	}
	if c.DataVencimento != "" {
		if _, err := datetime.ParseISODate(c.DataVencimento); err != nil {
			sl.ReportError(c.DataVencimento, "data_vencimento", "DataVencimento", "iso_date", constants.DateLayout)
		}
	}
}

// Validate checks the data-model invariants of a single condition.
func Validate(c CondicaoPagamento) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			errs = append(errs, fmt.Errorf("%w: field %s failed %s=%s", ErrInvalid, fe.Field(), fe.Tag(), fe.Param()))
		} else {
			errs = append(errs, fmt.Errorf("%w: field %s failed %s", ErrInvalid, fe.Field(), fe.Tag()))
		}
	}
	return errors.Join(errs...)
}

// ValidateAll validates every condition, prefixing each error with its
// position and ordem.
func ValidateAll(conditions []CondicaoPagamento) error {
	var errs []error
	for i, c := range conditions {
		if err := Validate(c); err != nil {
			errs = append(errs, fmt.Errorf("condition %d (ordem %d): %w", i, c.Ordem, err))
		}
	}
	return errors.Join(errs...)
}

// Prepare normalises and then validates every condition, returning the
// canonical copies. This is the boundary between editor data and the engine.
func Prepare(conditions []CondicaoPagamento) ([]CondicaoPagamento, error) {
	out := make([]CondicaoPagamento, len(conditions))
	var errs []error
	for i, c := range conditions {
		normalized, err := Normalize(c)
		if err != nil {
			errs = append(errs, fmt.Errorf("condition %d (ordem %d): %w", i, c.Ordem, err))
			continue
		}
		out[i] = normalized
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if err := ValidateAll(out); err != nil {
		return nil, err
	}
	return out, nil
}
