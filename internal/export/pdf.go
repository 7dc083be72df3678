// Package export renders the generated clause and the installment schedule as
// documents: the clause as PDF, the schedule and balance as a spreadsheet.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 20.0
	pdfLineHeight = 5.5
)

// ErrEmptyText is returned when there is no clause text to export.
var ErrEmptyText = errors.New("export: empty clause text")

// PDFOptions tunes the PDF output.
type PDFOptions struct {
	// Compress deflates page streams. Disabled in tests to inspect the text.
	Compress bool
}

// WriteClausePDF writes the clause text to w as an A4 PDF with the given
// title. Paragraphs are separated by blank lines in text; line breaks inside a
// paragraph are kept.
func WriteClausePDF(w io.Writer, title, text string) error {
	return WriteClausePDFWithOptions(w, title, text, PDFOptions{Compress: true})
}

// WriteClausePDFWithOptions is WriteClausePDF with explicit options.
func WriteClausePDFWithOptions(w io.Writer, title, text string, opts PDFOptions) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(opts.Compress)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle(title, true)
	pdf.AliasNbPages("")

	// Core fonts are cp1252; accented Portuguese must be translated.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Página %d/{nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pdfMargin

	if title != "" {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(contentW, 7, tr(title), "", "C", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "", 10)
	for i, paragraph := range strings.Split(text, "\n\n") {
		if i > 0 {
			pdf.Ln(3)
		}
		pdf.MultiCell(contentW, pdfLineHeight, tr(paragraph), "", "J", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: write: %w", err)
	}
	return nil
}
