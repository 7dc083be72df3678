// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/payment-clauses/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	for _, f := range constants.OutputFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("expected output format of %s, got %s",
		strings.Join(constants.OutputFormats, ", "), format)
}

// IsBinaryFormat reports whether the format must be written to a file rather
// than printed.
func IsBinaryFormat(format string) bool {
	return format == constants.OutputFormatPDF || format == constants.OutputFormatXLSX
}
