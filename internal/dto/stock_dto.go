package dto

import "github.com/shopspring/decimal"

type MouvementRequest struct {
	ProduitID     string `json:"produit_id"     validate:"required,uuid"`
	TypeMouvement string `json:"type_mouvement" validate:"required,oneof=entree sortie"`
	Quantite      int    `json:"quantite"       validate:"required,min=1"`
	Motif         string `json:"motif"`
}

type MouvementResponse struct {
	ID            string `json:"id"`
	ProduitID     string `json:"produit_id"`
	Produit       string `json:"produit"`
	TypeMouvement string `json:"type_mouvement"`
	Quantite      int    `json:"quantite"`
	Motif         string `json:"motif"`
	StockAvant    int    `json:"stock_avant"`
	StockApres    int    `json:"stock_apres"`
	DateMouvement string `json:"date_mouvement"`
}

type MouvementFilter struct {
	ProduitID string `form:"produit_id" validate:"omitempty,uuid"`
	Type      string `form:"type"       validate:"omitempty,oneof=entree sortie"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type MouvementListResponse struct {
	Data  []MouvementResponse `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}

type EtatStockResponse struct {
	TotalProduits    int               `json:"total_produits"`
	ProduitsStockBas int               `json:"produits_stock_bas"`
	ValeurStockTotal decimal.Decimal   `json:"valeur_stock_total"`
	Produits         []ProduitResponse `json:"produits"`
}

// ReapproRequest: nil cible = 3× the alert threshold.
type ReapproRequest struct {
	QuantiteCible *int `json:"quantite_cible" validate:"omitempty,min=1"`
}
