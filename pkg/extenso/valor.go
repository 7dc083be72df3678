package extenso

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iwvelando/payment-clauses/pkg/constants"
	"github.com/shopspring/decimal"
)

// maxCurrency keeps the cent count inside int64.
const maxCurrency = 9e15

const million = 1_000_000

// ValorExtenso spells out a currency amount in reais and centavos, e.g.
// 1.01 -> "um real e um centavo". Amounts round to the cent first. Both parts
// zero reads "zero reais"; exact millions take "de" ("um milhão de reais").
func ValorExtenso(amount float64) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", fmt.Errorf("%w: %v", ErrNonFinite, amount)
	}
	if math.Abs(amount) >= maxCurrency {
		return "", fmt.Errorf("%w: %v", ErrOutOfRange, amount)
	}

	cents := decimal.NewFromFloat(math.Abs(amount)).
		Round(constants.DecimalPlaces).
		Shift(constants.DecimalPlaces).
		IntPart()
	reais, centavos := cents/100, cents%100

	var parts []string
	if reais > 0 {
		unit := "reais"
		switch {
		case reais == 1:
			unit = "real"
		case reais >= million && reais%million == 0:
			unit = "de reais"
		}
		parts = append(parts, NumberToWords(reais)+" "+unit)
	}
	if centavos > 0 {
		unit := "centavos"
		if centavos == 1 {
			unit = "centavo"
		}
		parts = append(parts, NumberToWords(centavos)+" "+unit)
	}

	if len(parts) == 0 {
		return "zero reais", nil
	}

	result := strings.Join(parts, " e ")
	if amount < 0 {
		result = "menos " + result
	}
	return result, nil
}

// PercentualExtenso spells out a percentage with up to two decimals, e.g.
// 12.5 -> "doze vírgula cinco por cento".
func PercentualExtenso(percent float64) (string, error) {
	if math.IsNaN(percent) || math.IsInf(percent, 0) {
		return "", fmt.Errorf("%w: %v", ErrNonFinite, percent)
	}

	rounded := decimal.NewFromFloat(math.Abs(percent)).Round(constants.DecimalPlaces)
	whole := rounded.IntPart()
	frac := rounded.Sub(decimal.NewFromInt(whole)).Shift(constants.DecimalPlaces).IntPart()

	result := NumberToWords(whole)
	if frac > 0 {
		digits := strings.TrimRight(fmt.Sprintf("%02d", frac), "0")
		var fracWords string
		if strings.HasPrefix(digits, "0") {
			fracWords = "zero " + NumberToWords(frac)
		} else {
			n, _ := strconv.ParseInt(digits, 10, 64)
			fracWords = NumberToWords(n)
		}
		result += " vírgula " + fracWords
	}
	if percent < 0 && !rounded.IsZero() {
		result = "menos " + result
	}
	return result + " por cento", nil
}

// QuantidadePorExtenso renders a count the way contracts do:
// "10 (dez) meses", "01 (um) mês".
func QuantidadePorExtenso(qty int, singular, plural string) string {
	return QuantidadePorExtensoGenero(qty, Masculino, singular, plural)
}

// QuantidadePorExtensoGenero is QuantidadePorExtenso for a noun of the given
// gender: "02 (duas) parcelas".
func QuantidadePorExtensoGenero(qty int, g Genero, singular, plural string) string {
	noun := plural
	if qty == 1 {
		noun = singular
	}
	return fmt.Sprintf("%02d (%s) %s", qty, NumberToWordsGenero(int64(qty), g), noun)
}
