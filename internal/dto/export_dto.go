package dto

// ExportManuelRequest triggers a synchronous export for an arbitrary date.
// Empty date = today.
type ExportManuelRequest struct {
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// ExportFiles lists the artifacts produced for one day.
type ExportFiles struct {
	VentesCSV string `json:"ventes_csv"`
	StockCSV  string `json:"stock_csv"`
	VentesPDF string `json:"ventes_pdf"`
	Date      string `json:"date"`
}
