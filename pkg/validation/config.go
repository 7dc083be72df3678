// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"sort"

	"github.com/iwvelando/payment-clauses/pkg/constants"
	"github.com/iwvelando/payment-clauses/pkg/format"
)

// ValidateDueTiming checks that a condition is not tied to both a literal
// date and a milestone. The date wins, so the milestone is only reported.
func ValidateDueTiming(ordem int, dueDate, dueEvent string) string {
	if dueDate == "" || dueEvent == "" || dueEvent == "none" {
		return ""
	}
	return fmt.Sprintf("Condition with ordem %d has both a due date (%s) and a due event (%s); the date is used",
		ordem, dueDate, dueEvent)
}

// ValidatePercent checks that a percentual condition stays within 100% and
// has a reference total to resolve against.
func ValidatePercent(ordem int, percent, referenceTotal float64) []string {
	var warnings []string

	if percent > constants.PercentageMultiplier {
		warnings = append(warnings, fmt.Sprintf("Condition with ordem %d is %s of the reference total, above 100%%",
			ordem, format.FormatarPercentual(percent)))
	}

	if referenceTotal == 0 {
		warnings = append(warnings, fmt.Sprintf("Condition with ordem %d is percentual but the reference total is zero",
			ordem))
	}

	return warnings
}

// DocumentValidator checks a contract document for issues that do not stop
// the clause from being generated but are likely mistakes.
type DocumentValidator struct {
	ReferenceTotal float64
	Difference     float64
	IsBalanced     bool
	Conditions     []ConditionConfig
}

// ConditionConfig is the part of a payment condition the checks look at.
type ConditionConfig struct {
	Ordem          int
	Tipo           string
	Valor          float64
	Percentual     bool
	DataVencimento string
	Evento         string
	ComCorrecao    bool
	Indice         string
}

// ValidateAll validates the entire document and returns warnings
func (dv *DocumentValidator) ValidateAll() []string {
	var warnings []string

	if !dv.IsBalanced {
		warnings = append(warnings, fmt.Sprintf("Conditions do not add up to the reference total %s (difference %s)",
			format.FormatarValorMonetario(dv.ReferenceTotal), format.FormatarValorMonetario(dv.Difference)))
	}

	// Check for conditions sharing an ordem
	counts := make(map[int]int)
	for _, c := range dv.Conditions {
		counts[c.Ordem]++
	}
	var duplicated []int
	for ordem, n := range counts {
		if n > 1 {
			duplicated = append(duplicated, ordem)
		}
	}
	sort.Ints(duplicated)
	for _, ordem := range duplicated {
		warnings = append(warnings, fmt.Sprintf("Ordem %d is used by %d conditions; they keep their document order",
			ordem, counts[ordem]))
	}

	for _, c := range dv.Conditions {
		if warning := ValidateDueTiming(c.Ordem, c.DataVencimento, c.Evento); warning != "" {
			warnings = append(warnings, warning)
		}

		if c.Percentual {
			warnings = append(warnings, ValidatePercent(c.Ordem, c.Valor, dv.ReferenceTotal)...)
		}

		// An index without correction is ignored by the clause text
		if !c.ComCorrecao && c.Indice != "" {
			warnings = append(warnings, fmt.Sprintf("Condition with ordem %d names index %s but has no monetary correction",
				c.Ordem, c.Indice))
		}
	}

	return warnings
}
