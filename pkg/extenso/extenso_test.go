package extenso

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestNumberToWords(t *testing.T) {
	tests := []struct {
		name     string
		input    int64
		expected string
	}{
		{"Zero", 0, "zero"},
		{"One", 1, "um"},
		{"Irregular teen", 14, "quatorze"},
		{"Nineteen", 19, "dezenove"},
		{"Exact ten", 20, "vinte"},
		{"Tens with unit", 21, "vinte e um"},
		{"Ninety nine", 99, "noventa e nove"},
		{"Exactly one hundred", 100, "cem"},
		{"Cento with unit", 101, "cento e um"},
		{"Cento with teen", 115, "cento e quinze"},
		{"Exact hundreds", 200, "duzentos"},
		{"Full group", 999, "novecentos e noventa e nove"},
		{"Thousand without um", 1000, "mil"},
		{"Thousand and unit", 1001, "mil e um"},
		{"Thousand and cem", 1100, "mil e cem"},
		{"Thousand and round hundreds", 1500, "mil e quinhentos"},
		{"Thousand and full group", 1234, "mil, duzentos e trinta e quatro"},
		{"Two thousand", 2000, "dois mil"},
		{"Fifty thousand", 50000, "cinquenta mil"},
		{"Hundred thousand", 100000, "cem mil"},
		{"Hundred and one thousand", 101000, "cento e um mil"},
		{"One million", 1_000_000, "um milhão"},
		{"Two million", 2_000_000, "dois milhões"},
		{"Million and cem", 1_000_100, "um milhão e cem"},
		{"Million and round thousands", 2_100_000, "dois milhões e cem mil"},
		{"Million and full thousands", 1_234_000, "um milhão, duzentos e trinta e quatro mil"},
		{"All groups", 1_234_567, "um milhão, duzentos e trinta e quatro mil, quinhentos e sessenta e sete"},
		{"Skipped zero group", 3_000_045, "três milhões e quarenta e cinco"},
		{"One billion", 1_000_000_000, "um bilhão"},
		{"Billions", 2_500_000_000, "dois bilhões e quinhentos milhões"},
		{"Negative", -5, "menos cinco"},
		{"Negative thousand", -1000, "menos mil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NumberToWords(tt.input)
			if result != tt.expected {
				t.Errorf("NumberToWords(%d) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNumberToWordsGeneroFeminino(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{1, "uma"},
		{2, "duas"},
		{12, "doze"},
		{21, "vinte e uma"},
		{22, "vinte e duas"},
		{200, "duzentas"},
		{201, "duzentas e uma"},
		{100, "cem"},
		{120, "cento e vinte"},
		{2000, "duas mil"},
		{2_000_000, "dois milhões"},
		{1_000_002, "um milhão e duas"},
	}

	for _, tt := range tests {
		if result := NumberToWordsGenero(tt.input, Feminino); result != tt.expected {
			t.Errorf("NumberToWordsGenero(%d, Feminino) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestNumberToWordsExhaustiveGroup(t *testing.T) {
	seen := make(map[string]int64, 1000)
	for n := int64(0); n < 1000; n++ {
		words := NumberToWords(n)
		if words == "" {
			t.Fatalf("NumberToWords(%d) returned empty string", n)
		}
		if strings.Contains(words, "  ") || strings.HasPrefix(words, " ") || strings.HasSuffix(words, " ") {
			t.Errorf("NumberToWords(%d) = %q has irregular spacing", n, words)
		}
		if strings.HasPrefix(words, "e ") || strings.HasSuffix(words, " e") {
			t.Errorf("NumberToWords(%d) = %q has a dangling conjunction", n, words)
		}
		if prev, dup := seen[words]; dup {
			t.Errorf("NumberToWords(%d) and NumberToWords(%d) both produce %q", prev, n, words)
		}
		seen[words] = n

		if n > 100 && n < 200 && !strings.HasPrefix(words, "cento") {
			t.Errorf("NumberToWords(%d) = %q, expected a cento prefix", n, words)
		}
		if n > 0 && n%100 != 0 && n > 100 && !strings.Contains(words, " e ") {
			t.Errorf("NumberToWords(%d) = %q, expected a conjunction after the hundreds", n, words)
		}
	}
}

func TestNumberToWordsExtremes(t *testing.T) {
	maxWords := NumberToWords(math.MaxInt64)
	if !strings.HasPrefix(maxWords, "nove quintilhões, duzentos e vinte e três quatrilhões") {
		t.Errorf("NumberToWords(MaxInt64) = %q", maxWords)
	}
	minWords := NumberToWords(math.MinInt64)
	if !strings.HasPrefix(minWords, "menos nove quintilhões") {
		t.Errorf("NumberToWords(MinInt64) = %q", minWords)
	}
	if !strings.HasSuffix(minWords, "oitocentos e oito") {
		t.Errorf("NumberToWords(MinInt64) = %q, expected trailing oitocentos e oito", minWords)
	}
}

func TestFloatToWords(t *testing.T) {
	tests := []struct {
		name      string
		input     float64
		expected  string
		wantError error
	}{
		{"Integral value", 1000, "mil", nil},
		{"Fraction truncated", 21.9, "vinte e um", nil},
		{"Negative", -3, "menos três", nil},
		{"NaN", math.NaN(), "", ErrNonFinite},
		{"Positive infinity", math.Inf(1), "", ErrNonFinite},
		{"Negative infinity", math.Inf(-1), "", ErrNonFinite},
		{"Too large", 1e19, "", ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := FloatToWords(tt.input)
			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Errorf("FloatToWords(%v) error = %v, expected %v", tt.input, err, tt.wantError)
				}
				return
			}
			if err != nil {
				t.Fatalf("FloatToWords(%v) unexpected error: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("FloatToWords(%v) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}
