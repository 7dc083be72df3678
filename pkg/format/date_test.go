package format

import (
	"testing"
	"time"
)

func TestFormatarDataExtenso(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  string
		wantError bool
	}{
		{"Regular day", "2025-01-10", "10 de janeiro de 2025", false},
		{"First of month is ordinal", "2025-03-01", "1º de março de 2025", false},
		{"December", "2026-12-31", "31 de dezembro de 2026", false},
		{"RFC3339 timestamp", "2025-07-15T00:00:00Z", "15 de julho de 2025", false},
		{"Invalid date", "2025-13-01", "", true},
		{"Empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := FormatarDataExtenso(tt.input)
			if tt.wantError {
				if err == nil {
					t.Errorf("FormatarDataExtenso(%q) expected error but got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("FormatarDataExtenso(%q) unexpected error: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("FormatarDataExtenso(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNomeMes(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		if NomeMes(m) == "" {
			t.Errorf("NomeMes(%v) returned empty string", m)
		}
	}
	if NomeMes(time.March) != "março" {
		t.Errorf("NomeMes(March) = %q", NomeMes(time.March))
	}
}

func TestFormatarDataCurta(t *testing.T) {
	got, err := FormatarDataCurta("2025-01-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "10/01/2025" {
		t.Errorf("FormatarDataCurta = %q, expected 10/01/2025", got)
	}
}
