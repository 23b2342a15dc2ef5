package dto

import "github.com/shopspring/decimal"

type CreerProduitRequest struct {
	Nom          string          `json:"nom"           validate:"required,min=1"`
	PrixAchat    decimal.Decimal `json:"prix_achat"    validate:"min=0"`
	PrixUnitaire decimal.Decimal `json:"prix_unitaire" validate:"required,gt=0"`
	Stock        int             `json:"stock"         validate:"min=0"`
	SeuilAlerte  int             `json:"seuil_alerte"  validate:"min=0"`
}

// ModifierProduitRequest: nil fields are left untouched. Stock is absent on
// purpose, stock only moves through the ledger.
type ModifierProduitRequest struct {
	Nom          *string          `json:"nom"`
	PrixAchat    *decimal.Decimal `json:"prix_achat"`
	PrixUnitaire *decimal.Decimal `json:"prix_unitaire"`
	SeuilAlerte  *int             `json:"seuil_alerte"`
}

type ProduitFilter struct {
	Nom   string `form:"nom"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ProduitResponse struct {
	ID            string          `json:"id"`
	Nom           string          `json:"nom"`
	PrixAchat     decimal.Decimal `json:"prix_achat"`
	PrixUnitaire  decimal.Decimal `json:"prix_unitaire"`
	MargeBenefice decimal.Decimal `json:"marge_benefice"`
	Stock         int             `json:"stock"`
	SeuilAlerte   int             `json:"seuil_alerte"`
	StockBas      bool            `json:"stock_bas"`
	CreatedAt     string          `json:"created_at"`
}

type ProduitListResponse struct {
	Data  []ProduitResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
