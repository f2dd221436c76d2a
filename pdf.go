package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth  = 210 // A4 width in mm
	pdfMargin     = 10  // Margin in mm
	pdfLineHeight = 5   // Line height in mm
	pdfFontSize   = 9
	pdfTitleSize  = 14
)

// generatePDF writes a run report: configuration, per-file outcomes and totals.
func generatePDF(summary Summary, cfg Config, outputPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle("urlswap report", true)
	pdf.AddPage()

	textWidth := float64(pdfPageWidth - 2*pdfMargin)
	// Core fonts are cp1252; translate so non-ASCII paths don't garble.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", pdfTitleSize)
	pdf.CellFormat(textWidth, pdfLineHeight*2, "URL replacement report", "", 1, "L", false, 0, "")
	pdf.Ln(pdfLineHeight / 2)

	pdf.SetFont("Courier", "", pdfFontSize)
	header := []string{
		"Root:         " + summary.Root,
		"From:         " + quoteList(cfg.Search),
		"To:           '" + cfg.Replacement + "'",
		"Suffixes:     " + strings.Join(cfg.Suffixes, " "),
		"Ignored dirs: " + quoteList(cfg.ExcludeDirs),
	}
	pdf.MultiCell(textWidth, pdfLineHeight, tr(strings.Join(header, "\n")), "", "L", false)
	pdf.Ln(pdfLineHeight)

	pdf.SetFont("Helvetica", "B", pdfFontSize+1)
	pdf.CellFormat(textWidth, pdfLineHeight, "Files", "B", 1, "L", false, 0, "")
	pdf.SetFont("Courier", "", pdfFontSize)

	outcomeWidth := 30.0
	for _, r := range summary.Results {
		if r.Outcome == OutcomeUnchanged {
			continue
		}
		rel, err := filepath.Rel(summary.Root, r.Path)
		if err != nil {
			rel = r.Path
		}
		line := rel
		if r.Outcome == OutcomeModified {
			line = fmt.Sprintf("%s (%d replaced)", rel, r.Replacements)
		} else if r.Err != nil {
			line = fmt.Sprintf("%s: %v", rel, r.Err)
		}
		pdf.CellFormat(outcomeWidth, pdfLineHeight, r.Outcome.String(), "", 0, "L", false, 0, "")
		pdf.MultiCell(textWidth-outcomeWidth, pdfLineHeight, tr(line), "", "L", false)
	}
	pdf.Ln(pdfLineHeight)

	pdf.SetFont("Helvetica", "", pdfFontSize+1)
	pdf.MultiCell(textWidth, pdfLineHeight, tr(formatTotals(summary)), "", "L", false)

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("failed to write PDF %s: %w", outputPath, err)
	}
	return nil
}
