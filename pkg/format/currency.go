// Package format renders currency, percentages and dates following the
// Brazilian convention ("R$ 1.234,56", "10 de janeiro de 2025").
package format

import (
	"math"

	"github.com/iwvelando/payment-clauses/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencySymbol prefixes every monetary value.
const CurrencySymbol = "R$"

// FormatarValorMonetario returns a currency string with the real symbol and
// pt-BR separators (e.g., "-R$ 1.234,56").
func FormatarValorMonetario(amount float64) string {
	formatted := formatPositive(math.Abs(amount))
	if amount < 0 && formatted != "0,00" {
		return "-" + CurrencySymbol + " " + formatted
	}
	return CurrencySymbol + " " + formatted
}

// FormatarNumero returns an amount with pt-BR separators and no symbol
// (e.g., "-1.234,56").
func FormatarNumero(amount float64) string {
	formatted := formatPositive(math.Abs(amount))
	if amount < 0 && formatted != "0,00" {
		return "-" + formatted
	}
	return formatted
}

// FormatarPercentual renders a percentage with two decimals ("12,50%").
func FormatarPercentual(percent float64) string {
	return FormatarNumero(percent) + "%"
}

func formatPositive(value float64) string {
	p := message.NewPrinter(language.BrazilianPortuguese)
	return p.Sprint(number.Decimal(mathutil.Round(value), number.Scale(2)))
}
