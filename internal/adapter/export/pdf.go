package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/iho/bankrec/internal/domain"
)

// ContentTypePDF is the media type of documents written here.
const ContentTypePDF = "application/pdf"

// Page geometry in points on A4 portrait.
const (
	marginTop    = 36.0
	marginBottom = 36.0
	marginLeft   = 90.0
	marginRight  = 36.0

	amountWidth = 95.0
	lineHeight  = 16.0
	fontFamily  = "Helvetica"
)

// PDFRenderer renders statements as A4 PDF documents.
type PDFRenderer struct {
	compress bool
}

// NewPDFRenderer creates a new PDF renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{compress: true}
}

// RenderStatement lays out and writes one statement.
func (r *PDFRenderer) RenderStatement(w io.Writer, s *domain.Statement, heading string) error {
	return renderPDF(w, BuildDocument(s, heading), r.compress)
}

// RenderPDF writes doc as a compressed PDF.
func RenderPDF(w io.Writer, doc Document) error {
	return renderPDF(w, doc, true)
}

func renderPDF(w io.Writer, doc Document, compress bool) error {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetCompression(compress)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("bankrec", false)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageWidth, _ := pdf.GetPageSize()
	contentWidth := pageWidth - marginLeft - marginRight
	labelWidth := contentWidth - 2*amountWidth

	pdf.AddPage()

	if doc.Heading != "" {
		pdf.SetFont(fontFamily, "B", 16)
		pdf.CellFormat(contentWidth, 22, tr(doc.Heading), "", 1, "C", false, 0, "")
	}
	pdf.SetFont(fontFamily, "B", 13)
	pdf.CellFormat(contentWidth, 20, tr(doc.Title), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont(fontFamily, "", 10)
	for _, f := range doc.Meta {
		pdf.SetFont(fontFamily, "B", 10)
		pdf.CellFormat(110, lineHeight, tr(f.Label+":"), "", 0, "L", false, 0, "")
		pdf.SetFont(fontFamily, "", 10)
		pdf.CellFormat(contentWidth-110, lineHeight, tr(f.Value), "", 1, "L", false, 0, "")
	}
	pdf.Ln(10)

	for _, section := range []Section{doc.BankSection, doc.BookSection} {
		writeSection(pdf, tr, section, labelWidth)
		pdf.Ln(12)
	}

	pdf.SetFillColor(235, 235, 235)
	pdf.SetFont(fontFamily, "B", 11)
	status := "Difference"
	if doc.Reconciled {
		status = "Difference (Reconciled)"
	}
	pdf.CellFormat(labelWidth+amountWidth, 20, status, "TB", 0, "L", true, 0, "")
	pdf.CellFormat(amountWidth, 20, FormatAmount(doc.Difference), "TB", 1, "R", true, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func writeSection(pdf *fpdf.Fpdf, tr func(string) string, s Section, labelWidth float64) {
	pdf.SetFont(fontFamily, "B", 11)
	pdf.CellFormat(labelWidth+2*amountWidth, 18, tr(s.Title), "B", 1, "L", false, 0, "")

	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(labelWidth+amountWidth, lineHeight, tr(s.OpeningLabel), "", 0, "L", false, 0, "")
	pdf.CellFormat(amountWidth, lineHeight, FormatAmount(s.Opening), "", 1, "R", false, 0, "")

	for _, g := range []Group{s.Additions, s.Deductions} {
		pdf.SetFont(fontFamily, "I", 10)
		pdf.CellFormat(labelWidth+2*amountWidth, lineHeight, g.Title, "", 1, "L", false, 0, "")

		pdf.SetFont(fontFamily, "", 10)
		for _, line := range g.Lines {
			parts := narrationLines(pdf, tr(line.Narration), labelWidth-12)
			for i, part := range parts {
				pdf.CellFormat(12, lineHeight, "", "", 0, "L", false, 0, "")
				if i < len(parts)-1 {
					pdf.CellFormat(labelWidth-12, lineHeight, part, "", 1, "L", false, 0, "")
					continue
				}
				pdf.CellFormat(labelWidth-12, lineHeight, part, "", 0, "L", false, 0, "")
				pdf.CellFormat(amountWidth, lineHeight, FormatAmount(line.Amount), "", 0, "R", false, 0, "")
				pdf.CellFormat(amountWidth, lineHeight, FormatAmount(line.Running), "", 1, "R", false, 0, "")
			}
		}

		pdf.SetFont(fontFamily, "B", 10)
		pdf.CellFormat(labelWidth+amountWidth, lineHeight, "Total", "", 0, "R", false, 0, "")
		pdf.CellFormat(amountWidth, lineHeight, FormatAmount(g.Total), "T", 1, "R", false, 0, "")
	}

	pdf.SetFont(fontFamily, "B", 10)
	pdf.CellFormat(labelWidth+amountWidth, lineHeight+2, tr(s.ClosingLabel), "T", 0, "L", false, 0, "")
	pdf.CellFormat(amountWidth, lineHeight+2, FormatAmount(s.Closing), "T", 1, "R", false, 0, "")
}

// narrationLines wraps already-translated text to width. It works on bytes
// because translated text is in the font's single-byte encoding.
func narrationLines(pdf *fpdf.Fpdf, text string, width float64) []string {
	var parts []string
	for _, line := range pdf.SplitLines([]byte(text), width) {
		parts = append(parts, string(line))
	}
	if len(parts) == 0 {
		parts = []string{""}
	}
	return parts
}

// FormatAmount renders an amount with two decimals and thousands separators,
// e.g. -1,234.50.
func FormatAmount(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if d.Round(2).IsNegative() {
		b.WriteByte('-')
	}
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
