package format

import (
	"fmt"
	"time"

	"github.com/iwvelando/payment-clauses/pkg/datetime"
)

var meses = [12]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// NomeMes returns the Portuguese month name.
func NomeMes(m time.Month) string {
	return meses[m-1]
}

// FormatarDataExtenso renders an ISO date as "10 de janeiro de 2025". The
// first day of the month is written as an ordinal ("1º de março de 2025").
func FormatarDataExtenso(isoDate string) (string, error) {
	t, err := datetime.ParseISODate(isoDate)
	if err != nil {
		return "", err
	}
	return DataExtenso(t), nil
}

// DataExtenso is FormatarDataExtenso for an already parsed date.
func DataExtenso(t time.Time) string {
	day := fmt.Sprintf("%d", t.Day())
	if t.Day() == 1 {
		day = "1º"
	}
	return fmt.Sprintf("%s de %s de %d", day, NomeMes(t.Month()), t.Year())
}

// FormatarDataCurta renders an ISO date as "10/01/2025".
func FormatarDataCurta(isoDate string) (string, error) {
	t, err := datetime.ParseISODate(isoDate)
	if err != nil {
		return "", err
	}
	return t.Format("02/01/2006"), nil
}
