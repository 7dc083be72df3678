package extenso

import (
	"errors"
	"math"
	"testing"
)

func TestValorExtenso(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"Zero", 0, "zero reais"},
		{"One real", 1, "um real"},
		{"One real and one centavo", 1.01, "um real e um centavo"},
		{"Centavos only", 0.5, "cinquenta centavos"},
		{"One centavo", 0.01, "um centavo"},
		{"Reais only", 5000, "cinco mil reais"},
		{"Reais and centavos", 1234.56, "mil, duzentos e trinta e quatro reais e cinquenta e seis centavos"},
		{"Cem mil", 100000, "cem mil reais"},
		{"Exact million takes de", 1_000_000, "um milhão de reais"},
		{"Exact millions take de", 3_000_000, "três milhões de reais"},
		{"Million with cents keeps de", 1_000_000.5, "um milhão de reais e cinquenta centavos"},
		{"Million with thousands", 1_500_000, "um milhão e quinhentos mil reais"},
		{"Rounds to the cent", 2.999, "três reais"},
		{"Sub-cent rounds to zero", 0.004, "zero reais"},
		{"Negative", -10.5, "menos dez reais e cinquenta centavos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValorExtenso(tt.input)
			if err != nil {
				t.Fatalf("ValorExtenso(%v) unexpected error: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("ValorExtenso(%v) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValorExtensoErrors(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := ValorExtenso(v); !errors.Is(err, ErrNonFinite) {
			t.Errorf("ValorExtenso(%v) error = %v, expected ErrNonFinite", v, err)
		}
	}
	if _, err := ValorExtenso(1e16); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("ValorExtenso(1e16) error = %v, expected ErrOutOfRange", err)
	}
}

func TestPercentualExtenso(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{10, "dez por cento"},
		{100, "cem por cento"},
		{0, "zero por cento"},
		{12.5, "doze vírgula cinco por cento"},
		{12.25, "doze vírgula vinte e cinco por cento"},
		{12.05, "doze vírgula zero cinco por cento"},
		{0.5, "zero vírgula cinco por cento"},
		{-5, "menos cinco por cento"},
	}

	for _, tt := range tests {
		result, err := PercentualExtenso(tt.input)
		if err != nil {
			t.Fatalf("PercentualExtenso(%v) unexpected error: %v", tt.input, err)
		}
		if result != tt.expected {
			t.Errorf("PercentualExtenso(%v) = %q, expected %q", tt.input, result, tt.expected)
		}
	}

	if _, err := PercentualExtenso(math.NaN()); !errors.Is(err, ErrNonFinite) {
		t.Errorf("PercentualExtenso(NaN) error = %v, expected ErrNonFinite", err)
	}
}

func TestQuantidadePorExtenso(t *testing.T) {
	tests := []struct {
		name     string
		qty      int
		genero   Genero
		expected string
	}{
		{"Singular masculine", 1, Masculino, "01 (um) mês"},
		{"Plural masculine", 10, Masculino, "10 (dez) meses"},
		{"Singular feminine", 1, Feminino, "01 (uma) parcela"},
		{"Plural feminine", 2, Feminino, "02 (duas) parcelas"},
		{"Three digits", 120, Feminino, "120 (cento e vinte) parcelas"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			singular, plural := "parcela", "parcelas"
			if tt.genero == Masculino {
				singular, plural = "mês", "meses"
			}
			var result string
			if tt.genero == Masculino {
				result = QuantidadePorExtenso(tt.qty, singular, plural)
			} else {
				result = QuantidadePorExtensoGenero(tt.qty, tt.genero, singular, plural)
			}
			if result != tt.expected {
				t.Errorf("QuantidadePorExtenso(%d) = %q, expected %q", tt.qty, result, tt.expected)
			}
		})
	}
}
