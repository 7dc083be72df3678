// Package clausula renders payment conditions as the payment clause of a
// Brazilian real estate contract.
//
// The text is built as a pipeline: the conditions are classified into
// buckets, each bucket renders one or more labelled paragraphs and the
// paragraphs are joined after a fixed introduction. Identical input always
// yields identical output.
package clausula

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/payment-clauses/internal/classificacao"
	"github.com/iwvelando/payment-clauses/internal/condicao"
)

// Introducao opens every generated clause.
const Introducao = "O saldo do preço ajustado será pago pelo(a) COMPRADOR(A) nas seguintes condições:"

// Separator joins the introduction and the paragraphs.
const Separator = "\n\n"

// Paragraph is one labelled paragraph of the clause.
type Paragraph struct {
	Label string
	Text  string
}

// String returns the paragraph as it appears in the clause ("a) ...").
func (p Paragraph) String() string {
	return p.Label + " " + p.Text
}

// Label returns the label of the i-th paragraph (zero based): "a)" through
// "z)", then "27)", "28)" and so on.
func Label(i int) string {
	if i >= 0 && i < 26 {
		return string(rune('a'+i)) + ")"
	}
	return strconv.Itoa(i+1) + ")"
}

// Paragraphs renders the labelled paragraphs for conditions. Every entrada,
// residual, corretagem and unrecognised condition gets its own paragraph; all
// mensal conditions share one, as do all intermediária conditions.
func Paragraphs(conditions []condicao.CondicaoPagamento) ([]Paragraph, error) {
	b := classificacao.Classify(conditions)

	var bodies []string
	emit := func(text string, err error) error {
		if err != nil {
			return err
		}
		bodies = append(bodies, text)
		return nil
	}

	for _, c := range b.Entrada {
		if err := emit(entrada(c)); err != nil {
			return nil, err
		}
	}
	if len(b.Mensal) > 0 {
		if err := emit(mensais(b.Mensal)); err != nil {
			return nil, err
		}
	}
	if len(b.Intermediaria) > 0 {
		if err := emit(intermediarias(b.Intermediaria)); err != nil {
			return nil, err
		}
	}
	for _, c := range b.Residual {
		if err := emit(residual(c)); err != nil {
			return nil, err
		}
	}
	for _, c := range b.Corretagem {
		if err := emit(corretagem(c)); err != nil {
			return nil, err
		}
	}
	for _, c := range b.Outros {
		if err := emit(generica(c)); err != nil {
			return nil, err
		}
	}

	paragraphs := make([]Paragraph, len(bodies))
	for i, body := range bodies {
		paragraphs[i] = Paragraph{Label: Label(i), Text: body}
	}
	return paragraphs, nil
}

// GenerateClauseText renders the full payment clause: the introduction
// followed by one paragraph per clause group, separated by blank lines.
// An empty condition list renders the introduction alone. The only error is
// a condition that cannot be rendered, such as a non-finite amount or a
// malformed due date.
func GenerateClauseText(conditions []condicao.CondicaoPagamento) (string, error) {
	paragraphs, err := Paragraphs(conditions)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(Introducao)
	for _, p := range paragraphs {
		sb.WriteString(Separator)
		sb.WriteString(p.String())
	}
	return sb.String(), nil
}

func wrap(c condicao.CondicaoPagamento, err error) error {
	return fmt.Errorf("rendering %s condition (ordem %d): %w", c.Tipo, c.Ordem, err)
}
