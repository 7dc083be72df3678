// Package extenso spells numbers out in Brazilian Portuguese, the way they
// appear in contracts: "R$ 1.500,00 (mil e quinhentos reais)".
package extenso

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrNonFinite is returned when a NaN or infinite value is spelled out.
var ErrNonFinite = errors.New("extenso: value is not a finite number")

// ErrOutOfRange is returned when a value does not fit in an int64.
var ErrOutOfRange = errors.New("extenso: value out of range")

// Genero is the grammatical gender of the noun being counted.
type Genero int

const (
	// Masculino is used for reais, centavos and most counts.
	Masculino Genero = iota
	// Feminino is used when counting parcelas ("duas parcelas").
	Feminino
)

var unidades = [20]string{
	"zero", "um", "dois", "três", "quatro", "cinco", "seis", "sete", "oito", "nove",
	"dez", "onze", "doze", "treze", "quatorze", "quinze", "dezesseis", "dezessete", "dezoito", "dezenove",
}

var dezenas = [10]string{
	"", "", "vinte", "trinta", "quarenta", "cinquenta", "sessenta", "setenta", "oitenta", "noventa",
}

var centenas = [10]string{
	"", "cento", "duzentos", "trezentos", "quatrocentos", "quinhentos", "seiscentos", "setecentos", "oitocentos", "novecentos",
}

var centenasFemininas = [10]string{
	"", "cento", "duzentas", "trezentas", "quatrocentas", "quinhentas", "seiscentas", "setecentas", "oitocentas", "novecentas",
}

// escalas holds the scale word for each base-1000 group, lowest first.
var escalas = [...]struct{ singular, plural string }{
	{"", ""},
	{"mil", "mil"},
	{"milhão", "milhões"},
	{"bilhão", "bilhões"},
	{"trilhão", "trilhões"},
	{"quatrilhão", "quatrilhões"},
	{"quintilhão", "quintilhões"},
}

// NumberToWords spells out n in the masculine form. Zero is "zero" and
// negative values are prefixed with "menos".
func NumberToWords(n int64) string {
	return NumberToWordsGenero(n, Masculino)
}

// NumberToWordsGenero spells out n agreeing with the given gender. Scale words
// from milhão upwards are masculine nouns and keep their masculine count.
func NumberToWordsGenero(n int64, g Genero) string {
	if n == 0 {
		return unidades[0]
	}

	negative := n < 0
	abs := uint64(n)
	if negative {
		abs = uint64(-(n + 1)) + 1
	}

	var grupos []int
	for abs > 0 {
		grupos = append(grupos, int(abs%1000))
		abs /= 1000
	}

	var parts []string
	last := 0
	for i := len(grupos) - 1; i >= 0; i-- {
		v := grupos[i]
		if v == 0 {
			continue
		}
		last = v
		switch i {
		case 0:
			parts = append(parts, grupo(v, g))
		case 1:
			if v == 1 {
				parts = append(parts, escalas[1].singular)
			} else {
				parts = append(parts, grupo(v, g)+" "+escalas[1].plural)
			}
		default:
			word := escalas[i].plural
			if v == 1 {
				word = escalas[i].singular
			}
			parts = append(parts, grupo(v, Masculino)+" "+word)
		}
	}

	result := parts[len(parts)-1]
	if len(parts) > 1 {
		sep := ", "
		if last < 100 || last%100 == 0 {
			sep = " e "
		}
		result = strings.Join(parts[:len(parts)-1], ", ") + sep + result
	}

	if negative {
		return "menos " + result
	}
	return result
}

// FloatToWords spells out the integer part of f. NaN and infinities are
// rejected with ErrNonFinite instead of being read as zero.
func FloatToWords(f float64) (string, error) {
	n, err := toInt64(f)
	if err != nil {
		return "", err
	}
	return NumberToWords(n), nil
}

func toInt64(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v", ErrNonFinite, f)
	}
	t := math.Trunc(f)
	if t >= math.MaxInt64 || t < math.MinInt64 {
		return 0, fmt.Errorf("%w: %v", ErrOutOfRange, f)
	}
	return int64(t), nil
}

// grupo spells out a single group in 1..999.
func grupo(n int, g Genero) string {
	if n == 100 {
		return "cem"
	}
	h, r := n/100, n%100

	var parts []string
	if h > 0 {
		if g == Feminino {
			parts = append(parts, centenasFemininas[h])
		} else {
			parts = append(parts, centenas[h])
		}
	}
	if r > 0 {
		parts = append(parts, dezena(r, g))
	}
	return strings.Join(parts, " e ")
}

// dezena spells out 1..99.
func dezena(n int, g Genero) string {
	if n < 20 {
		return unidade(n, g)
	}
	d, u := n/10, n%10
	if u == 0 {
		return dezenas[d]
	}
	return dezenas[d] + " e " + unidade(u, g)
}

func unidade(n int, g Genero) string {
	if g == Feminino {
		switch n {
		case 1:
			return "uma"
		case 2:
			return "duas"
		}
	}
	return unidades[n]
}
