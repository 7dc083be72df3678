package condicao

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/schollz/closestmatch"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrUnknownCode is wrapped by every CodeError.
var ErrUnknownCode = errors.New("unknown code")

// CodeError reports an enumerated field holding a value outside its closed set.
type CodeError struct {
	Field      string
	Value      string
	Suggestion string
}

func (e *CodeError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s: %s %q (did you mean %q?)", ErrUnknownCode, e.Field, e.Value, e.Suggestion)
	}
	return fmt.Sprintf("%s: %s %q", ErrUnknownCode, e.Field, e.Value)
}

func (e *CodeError) Unwrap() error {
	return ErrUnknownCode
}

// ParseTipoParcela maps an editor code onto TipoParcela. Matching ignores case,
// accents and punctuation, so "Intermediária" and "mensal-fixa" are accepted.
func ParseTipoParcela(raw string) (TipoParcela, error) {
	return parseCode("tipo_parcela_codigo", raw, TiposParcela)
}

// ParseTipoValor maps a code onto TipoValor; empty means fixo.
func ParseTipoValor(raw string) (TipoValor, error) {
	if strings.TrimSpace(raw) == "" {
		return ValorFixo, nil
	}
	return parseCode("valor_tipo", raw, TiposValor)
}

// ParseEventoVencimento maps a code onto EventoVencimento; empty means none.
func ParseEventoVencimento(raw string) (EventoVencimento, error) {
	if strings.TrimSpace(raw) == "" {
		return EventoNenhum, nil
	}
	return parseCode("evento_vencimento", raw, EventosVencimento)
}

// ParseIndiceCorrecao maps a code onto IndiceCorrecao; empty stays empty.
func ParseIndiceCorrecao(raw string) (IndiceCorrecao, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return parseCode("indice_correcao", raw, IndicesCorrecao)
}

// ParseFormaQuitacao maps a code onto FormaQuitacao; empty means dinheiro.
func ParseFormaQuitacao(raw string) (FormaQuitacao, error) {
	if strings.TrimSpace(raw) == "" {
		return QuitacaoDinheiro, nil
	}
	return parseCode("forma_quitacao", raw, FormasQuitacao)
}

// ParseFormaPagamento maps a code onto FormaPagamento; empty stays empty.
func ParseFormaPagamento(raw string) (FormaPagamento, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return parseCode("forma_pagamento", raw, FormasPagamento)
}

// Normalize canonicalises every enumerated field of c, collecting one error
// per field that does not parse.
func Normalize(c CondicaoPagamento) (CondicaoPagamento, error) {
	var errs []error
	out := c.Clone()

	var err error
	if out.Tipo, err = ParseTipoParcela(string(c.Tipo)); err != nil {
		errs = append(errs, err)
	}
	if out.TipoValor, err = ParseTipoValor(string(c.TipoValor)); err != nil {
		errs = append(errs, err)
	}
	if out.EventoVencimento, err = ParseEventoVencimento(string(c.EventoVencimento)); err != nil {
		errs = append(errs, err)
	}
	if out.IndiceCorrecao, err = ParseIndiceCorrecao(string(c.IndiceCorrecao)); err != nil {
		errs = append(errs, err)
	}
	if out.FormaQuitacao, err = ParseFormaQuitacao(string(c.FormaQuitacao)); err != nil {
		errs = append(errs, err)
	}
	if out.FormaPagamento, err = ParseFormaPagamento(string(c.FormaPagamento)); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return c, errors.Join(errs...)
	}
	return out, nil
}

func parseCode[T ~string](field, raw string, valid []T) (T, error) {
	key := codeKey(raw)
	keys := make([]string, 0, len(valid))
	byKey := make(map[string]T, len(valid))
	for _, v := range valid {
		k := codeKey(string(v))
		keys = append(keys, k)
		byKey[k] = v
	}

	if v, ok := byKey[key]; ok {
		return v, nil
	}

	codeErr := &CodeError{Field: field, Value: raw}
	if key != "" {
		cm := closestmatch.New(keys, []int{2, 3})
		if match := cm.Closest(key); match != "" {
			codeErr.Suggestion = string(byKey[match])
		}
	}
	var zero T
	return zero, codeErr
}

// codeKey lowercases, strips accents and drops everything but letters and digits.
func codeKey(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}

	var b strings.Builder
	for _, r := range strings.ToLower(stripped) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
