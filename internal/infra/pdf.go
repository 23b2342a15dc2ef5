package infra

// pdf.go — Daily sales report rendering using go-pdf/fpdf.
// Pure formatter: takes already-queried rows and a summary, returns PDF bytes.
// File placement is the export service's concern.

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// RapportVenteRow is one line of the daily sales report table.
type RapportVenteRow struct {
	Heure        string
	Client       string
	Produit      string
	Quantite     int
	PrixUnitaire decimal.Decimal
	Total        decimal.Decimal
	Benefice     decimal.Decimal
}

// RapportResume is the totals block under the table.
type RapportResume struct {
	NombreVentes   int
	TotalVentes    decimal.Decimal
	TotalBenefices decimal.Decimal
}

// GenerateRapportVentesPDF renders the A4 sales report for one day.
func GenerateRapportVentesPDF(date time.Time, rows []RapportVenteRow, resume RapportResume) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Title ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 10, tr(fmt.Sprintf("Rapport des Ventes - %s", date.Format("02/01/2006"))), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if len(rows) == 0 {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW, 6, tr("Aucune vente enregistrée pour cette date."), "", 1, "L", false, 0, "")
	} else {
		// Column widths tuned for A4: time, client, product, qty, price, total, profit
		widths := []float64{18, 36, 42, 12, 24, 24, 24}
		headers := []string{"Heure", "Client", "Produit", "Qté", "Prix Unit.", "Total", "Bénéfice"}

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(128, 128, 128)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFillColor(245, 245, 220)
		for _, r := range rows {
			client := truncate(r.Client, 20)
			produit := truncate(r.Produit, 24)
			pdf.CellFormat(widths[0], 6, r.Heure, "1", 0, "C", true, 0, "")
			pdf.CellFormat(widths[1], 6, tr(client), "1", 0, "L", true, 0, "")
			pdf.CellFormat(widths[2], 6, tr(produit), "1", 0, "L", true, 0, "")
			pdf.CellFormat(widths[3], 6, fmt.Sprintf("%d", r.Quantite), "1", 0, "C", true, 0, "")
			pdf.CellFormat(widths[4], 6, r.PrixUnitaire.StringFixed(0), "1", 0, "R", true, 0, "")
			pdf.CellFormat(widths[5], 6, r.Total.StringFixed(0), "1", 0, "R", true, 0, "")
			pdf.CellFormat(widths[6], 6, r.Benefice.StringFixed(0), "1", 1, "R", true, 0, "")
		}

		// TOTAL row
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(211, 211, 211)
		pdf.CellFormat(widths[0]+widths[1]+widths[2]+widths[3]+widths[4], 7, "TOTAL:", "1", 0, "R", true, 0, "")
		pdf.CellFormat(widths[5], 7, resume.TotalVentes.StringFixed(0), "1", 0, "R", true, 0, "")
		pdf.CellFormat(widths[6], 7, resume.TotalBenefices.StringFixed(0), "1", 1, "R", true, 0, "")

		// ── Résumé ───────────────────────────────────────────────────────────
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 6, tr("Résumé du jour:"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW, 5, tr(fmt.Sprintf("Nombre de ventes: %d", resume.NombreVentes)), "", 1, "L", false, 0, "")
		pdf.CellFormat(contentW, 5, tr(fmt.Sprintf("Chiffre d'affaires: %s Ar", resume.TotalVentes.StringFixed(0))), "", 1, "L", false, 0, "")
		pdf.CellFormat(contentW, 5, tr(fmt.Sprintf("Bénéfices totaux: %s Ar", resume.TotalBenefices.StringFixed(0))), "", 1, "L", false, 0, "")
	}

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, tr(fmt.Sprintf("Généré le %s - Gestion Commerciale", time.Now().Format("02/01/2006 à 15:04"))), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max-1] + "…"
	}
	return s
}
