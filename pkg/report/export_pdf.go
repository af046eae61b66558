package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/goliatone/go-firform/pkg/fir"
)

const (
	pdfMarginLeft   = 40.0
	pdfMarginRight  = 40.0
	pdfMarginTop    = 60.0
	pdfMarginBottom = 40.0
	pdfFontSize     = 7.0
	pdfCellPadding  = 3.0
	pdfColumnsPage  = 10
)

type rgb struct{ r, g, b int }

var (
	pdfHeaderFill = rgb{41, 128, 185}
	pdfHeaderText = rgb{255, 255, 255}
	pdfAltRowFill = rgb{240, 240, 240}
	pdfGridLine   = rgb{200, 200, 200}
)

// WritePDF renders a landscape A4 report. The columns are split into grids of
// ten, one grid per page group, so every cell stays legible.
func WritePDF(w io.Writer, records []fir.Record, opts Options) error {
	if len(records) == 0 {
		return ErrNoData
	}
	opts = opts.resolved()

	pdf := fpdf.New("L", "pt", "A4", "")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(false, pdfMarginBottom)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headers := fir.Headers(true)
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.Row(opts.Location))
	}

	for start := 0; start < len(headers); start += pdfColumnsPage {
		end := start + pdfColumnsPage
		if end > len(headers) {
			end = len(headers)
		}
		pdf.AddPage()
		if start == 0 {
			writeTitle(pdf, tr, opts)
		}
		part := make([][]string, len(rows))
		for i, row := range rows {
			part[i] = row[start:end]
		}
		drawGrid(pdf, tr, headers[start:end], part)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("report: pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("report: pdf write: %w", err)
	}
	return nil
}

func writeTitle(pdf *fpdf.Fpdf, tr func(string) string, opts Options) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(pdfMarginLeft, 30, tr(opts.PDFTitle))

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(pdfMarginLeft, 45, tr(generatedOn(opts.Now(), opts.Location)))
}

func generatedOn(now time.Time, loc *time.Location) string {
	return "Generated on: " + now.In(loc).Format("2/1/2006, 3:04:05 pm")
}

func drawGrid(pdf *fpdf.Fpdf, tr func(string) string, headers []string, rows [][]string) {
	pageW, pageH := pdf.GetPageSize()
	width := (pageW - pdfMarginLeft - pdfMarginRight) / float64(len(headers))
	lineH := pdfFontSize * 1.2

	pdf.SetFont("Helvetica", "", pdfFontSize)
	pdf.SetLineWidth(0.5)
	pdf.SetDrawColor(pdfGridLine.r, pdfGridLine.g, pdfGridLine.b)

	y := pdfMarginTop
	drawRow(pdf, tr, headers, y, width, lineH, &pdfHeaderFill, pdfHeaderText)
	y += rowHeight(pdf, tr, headers, width, lineH)

	for i, row := range rows {
		h := rowHeight(pdf, tr, row, width, lineH)
		if y+h > pageH-pdfMarginBottom {
			pdf.AddPage()
			y = pdfMarginTop
			drawRow(pdf, tr, headers, y, width, lineH, &pdfHeaderFill, pdfHeaderText)
			y += rowHeight(pdf, tr, headers, width, lineH)
		}
		var fill *rgb
		if i%2 == 1 {
			fill = &pdfAltRowFill
		}
		drawRow(pdf, tr, row, y, width, lineH, fill, rgb{0, 0, 0})
		y += h
	}
}

func rowHeight(pdf *fpdf.Fpdf, tr func(string) string, cells []string, width, lineH float64) float64 {
	lines := 1
	for _, cell := range cells {
		if n := len(pdf.SplitText(tr(cell), width-2*pdfCellPadding)); n > lines {
			lines = n
		}
	}
	return float64(lines)*lineH + 2*pdfCellPadding
}

func drawRow(pdf *fpdf.Fpdf, tr func(string) string, cells []string, y, width, lineH float64, fill *rgb, text rgb) {
	h := rowHeight(pdf, tr, cells, width, lineH)
	style := "D"
	if fill != nil {
		pdf.SetFillColor(fill.r, fill.g, fill.b)
		style = "FD"
	}
	pdf.SetTextColor(text.r, text.g, text.b)
	for i, cell := range cells {
		x := pdfMarginLeft + float64(i)*width
		pdf.Rect(x, y, width, h, style)
		pdf.SetXY(x+pdfCellPadding, y+pdfCellPadding)
		pdf.MultiCell(width-2*pdfCellPadding, lineH, tr(cell), "", "L", false)
	}
}
