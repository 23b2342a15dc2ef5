package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Vente is immutable after creation. PrixUnitaire is a frozen copy of the
// product price at sale time — later price edits never touch it.
type Vente struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProduitID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClientID     *uuid.UUID `gorm:"type:uuid;index"` // nil = vente directe
	Quantite     int        `gorm:"not null"`
	PrixUnitaire decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DateVente    time.Time       `gorm:"index;autoCreateTime"`

	Produit *Produit `gorm:"foreignKey:ProduitID"`
	Client  *Client  `gorm:"foreignKey:ClientID"`
}

// Benefice recomputes (prix_unitaire − prix_achat) × quantite from the loaded
// product. Zero when the relation is not preloaded.
func (v *Vente) Benefice() decimal.Decimal {
	if v.Produit == nil {
		return decimal.Zero
	}
	return v.PrixUnitaire.Sub(v.Produit.PrixAchat).Mul(decimal.NewFromInt(int64(v.Quantite)))
}
