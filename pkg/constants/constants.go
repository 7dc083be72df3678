// Package constants provides shared constants for the payment-clauses application.
package constants

import "time"

// DateLayout is the ISO date format used for due dates in contract documents.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// DecimalPlaces is the number of decimal places kept for currency values
	DecimalPlaces = 2

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// MaxPercentComplete caps the reconciliation progress indicator
	MaxPercentComplete = 100.0
)

// Output format constants
const (
	// OutputFormatPretty prints the clause text followed by a balance summary
	OutputFormatPretty = "pretty"

	// OutputFormatCSV prints the installment schedule as CSV
	OutputFormatCSV = "csv"

	// OutputFormatPDF writes the clause text to a PDF file
	OutputFormatPDF = "pdf"

	// OutputFormatXLSX writes the schedule and balance to a spreadsheet
	OutputFormatXLSX = "xlsx"

	// OutputFormatYAML prints the (possibly adjusted) contract document
	OutputFormatYAML = "yaml"
)

// OutputFormats lists every supported output format.
var OutputFormats = []string{OutputFormatPretty, OutputFormatCSV, OutputFormatPDF, OutputFormatXLSX, OutputFormatYAML}

// Configuration file constants
const (
	// DefaultConfigFile is the default contract document file name
	DefaultConfigFile = "contrato.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024

	// DefaultReadTimeout bounds reading a request
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout bounds writing a response, PDF and XLSX exports included
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout bounds idle keep-alive connections
	DefaultIdleTimeout = 60 * time.Second

	// DefaultShutdownTimeout bounds graceful shutdown
	DefaultShutdownTimeout = 15 * time.Second
)
