// Package output provides utilities for formatting and displaying clause text,
// balances and installment schedules.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/payment-clauses/internal/conciliacao"
	"github.com/iwvelando/payment-clauses/internal/cronograma"
	"github.com/iwvelando/payment-clauses/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat writes the clause text followed by a human-readable balance
// summary and the warnings, if any.
func PrettyFormat(w io.Writer, text string, result conciliacao.Result, warnings []string) {
	p := message.NewPrinter(language.BrazilianPortuguese)

	if text != "" {
		fmt.Fprintf(w, "%s\n\n", text)
	}

	situacao := "Equilibrado"
	if !result.IsBalanced {
		situacao = "Pendente"
	}

	fmt.Fprintf(w, "--- Conciliação ---\n")
	fmt.Fprintf(w, "Valor de referência | %s\n", format.FormatarValorMonetario(result.ReferenceTotal))
	fmt.Fprintf(w, "Total configurado   | %s\n", format.FormatarValorMonetario(result.TotalConfigured))
	fmt.Fprintf(w, "Diferença           | %s\n", format.FormatarValorMonetario(result.Difference))
	fmt.Fprintf(w, "Concluído           | %s\n", format.FormatarPercentual(result.PercentComplete))
	fmt.Fprintf(w, "Situação            | %s\n", situacao)

	if len(warnings) > 0 {
		_, _ = p.Fprintf(w, "\n--- Avisos (%d) ---\n", len(warnings))
		for _, warning := range warnings {
			fmt.Fprintf(w, "- %s\n", warning)
		}
	}
}

// CsvFormat writes the installment schedule in comma-separated value format.
func CsvFormat(w io.Writer, schedule []cronograma.Installment) {
	fmt.Fprintf(w, `"ordem","tipo","parcela","vencimento","evento","valor","corrigida","indice","quitada"`)
	fmt.Fprintf(w, "\n")
	for _, inst := range schedule {
		fmt.Fprintf(w, `"%d","%s","%s","%s","%s","%.2f","%t","%s","%t"`,
			inst.Ordem, inst.Tipo, inst.Parcela(), inst.Vencimento, inst.Evento,
			inst.Valor, inst.Corrigida, inst.Indice, inst.Quitada)
		fmt.Fprintf(w, "\n")
	}
}

// CsvString returns the CSV rendering of the schedule.
func CsvString(schedule []cronograma.Installment) string {
	var b strings.Builder
	CsvFormat(&b, schedule)
	return b.String()
}
