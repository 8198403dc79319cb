// Package report renders the portfolio into a multi-section PDF: summary
// totals, top movers, sector breakdown and the full position table.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/camuig/foliowatch/internal/analytics"
	"github.com/camuig/foliowatch/internal/pricecache"
	"github.com/camuig/foliowatch/internal/storage"
)

const pageBreakY = 270 // mm, A4 portrait

func Build(positions []storage.Position, prices map[string]pricecache.Quote, out io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Portfolio Report", false)
	pdf.AddPage()

	writeHeader(pdf)
	writeSummary(pdf, analytics.Value(positions, prices))
	writeMovers(pdf, positions, prices)
	writeSectors(pdf, positions, prices)
	writePositions(pdf, positions, prices)

	if err := pdf.Output(out); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func writeHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Portfolio Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 6, time.Now().Format("January 2, 2006 15:04"), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
}

func writeSummary(pdf *fpdf.Fpdf, v analytics.Valuation) {
	sectionTitle(pdf, "Summary")
	pdf.SetFont("Helvetica", "", 11)
	rows := [][2]string{
		{"Total Value", money(v.TotalValue)},
		{"Total Cost Basis", money(v.TotalCost)},
		{"Total P&L", money(v.TotalPL)},
		{"Total P&L %", fmt.Sprintf("%+.2f%%", v.TotalPLPct)},
	}
	for _, row := range rows {
		pdf.CellFormat(60, 7, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, row[1], "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func writeMovers(pdf *fpdf.Fpdf, positions []storage.Position, prices map[string]pricecache.Quote) {
	gainers, losers := analytics.Movers(positions, prices)

	sectionTitle(pdf, "Top Gainers")
	moverRows(pdf, gainers)
	sectionTitle(pdf, "Top Losers")
	moverRows(pdf, losers)
}

func moverRows(pdf *fpdf.Fpdf, movers []analytics.Mover) {
	pdf.SetFont("Helvetica", "", 11)
	if len(movers) == 0 {
		pdf.CellFormat(0, 7, "None", "", 1, "L", false, 0, "")
		pdf.Ln(2)
		return
	}
	for _, m := range movers {
		pdf.CellFormat(30, 7, m.Ticker, "", 0, "L", false, 0, "")
		pdf.CellFormat(45, 7, money(m.Value), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%+.2f%%", m.PLPct), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)
}

func writeSectors(pdf *fpdf.Fpdf, positions []storage.Position, prices map[string]pricecache.Quote) {
	sectionTitle(pdf, "Sector Breakdown")
	pdf.SetFont("Helvetica", "", 11)

	sectors := analytics.SectorBreakdown(positions, prices)
	var total float64
	for _, s := range sectors {
		total += s.Value
	}
	for _, s := range sectors {
		pct := 0.0
		if total > 0 {
			pct = s.Value / total * 100
		}
		pdf.CellFormat(60, 7, s.Sector, "", 0, "L", false, 0, "")
		pdf.CellFormat(45, 7, money(s.Value), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.1f%%", pct), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

var positionHeaders = []struct {
	label string
	width float64
	align string
}{
	{"Ticker", 24, "L"},
	{"Account", 24, "L"},
	{"Shares", 26, "R"},
	{"Avg Cost", 26, "R"},
	{"Price", 26, "R"},
	{"Value", 32, "R"},
	{"P&L %", 22, "R"},
}

func writePositions(pdf *fpdf.Fpdf, positions []storage.Position, prices map[string]pricecache.Quote) {
	sectionTitle(pdf, "Positions")
	positionTableHead(pdf)

	pdf.SetFont("Helvetica", "", 10)
	for _, p := range positions {
		if pdf.GetY() > pageBreakY {
			pdf.AddPage()
			positionTableHead(pdf)
			pdf.SetFont("Helvetica", "", 10)
		}
		price := prices[p.Ticker].Current
		value := price * p.Shares
		cost := p.AvgCost * p.Shares
		pct := 0.0
		if cost > 0 {
			pct = (value - cost) / cost * 100
		}
		cells := []string{
			p.Ticker,
			p.Account,
			fmt.Sprintf("%.4f", p.Shares),
			money(p.AvgCost),
			money(price),
			money(value),
			fmt.Sprintf("%+.2f%%", pct),
		}
		for i, c := range cells {
			pdf.CellFormat(positionHeaders[i].width, 6, c, "B", 0, positionHeaders[i].align, false, 0, "")
		}
		pdf.Ln(6)
	}
}

func positionTableHead(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	for _, h := range positionHeaders {
		pdf.CellFormat(h.width, 7, h.label, "B", 0, h.align, false, 0, "")
	}
	pdf.Ln(7)
}

func sectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
