package dto

import "github.com/shopspring/decimal"

type CreerVenteRequest struct {
	ProduitID string  `json:"produit_id" validate:"required,uuid"`
	Quantite  int     `json:"quantite"   validate:"required,min=1"`
	// ClientID nil = vente directe (walk-in)
	ClientID *string `json:"client_id"  validate:"omitempty,uuid"`
}

type VenteFilter struct {
	Date  string `form:"date"` // YYYY-MM-DD; empty = all
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VenteResponse struct {
	ID           string          `json:"id"`
	ProduitID    string          `json:"produit_id"`
	Produit      string          `json:"produit"`
	ClientID     *string         `json:"client_id"`
	Client       string          `json:"client"`
	Quantite     int             `json:"quantite"`
	PrixUnitaire decimal.Decimal `json:"prix_unitaire"`
	Total        decimal.Decimal `json:"total"`
	Benefice     decimal.Decimal `json:"benefice"`
	DateVente    string          `json:"date_vente"`
}

type VenteListResponse struct {
	Data  []VenteResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

type StatistiquesFinancieresResponse struct {
	TotalVentes    decimal.Decimal `json:"total_ventes"`
	TotalBenefices decimal.Decimal `json:"total_benefices"`
	NombreVentes   int64           `json:"nombre_ventes"`
	VentesJour     decimal.Decimal `json:"ventes_jour"`
	VentesMois     decimal.Decimal `json:"ventes_mois"`
	MoyenneVente   decimal.Decimal `json:"moyenne_vente"`
}

// StatistiquePeriode is one calendar bucket of the time series, ordered
// chronologically ascending.
type StatistiquePeriode struct {
	Periode        string          `json:"periode"`
	TotalVentes    decimal.Decimal `json:"total_ventes"`
	NombreVentes   int             `json:"nombre_ventes"`
	QuantiteVendue int             `json:"quantite_vendue"`
}
