package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Produit is a catalog entry. Stock is only ever mutated through the stock
// ledger (see service.StockService) so that every change leaves a
// MouvementStock row behind.
type Produit struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nom          string          `gorm:"index;not null"`
	PrixAchat    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PrixUnitaire decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock        int             `gorm:"not null;default:0;check:stock >= 0"`
	SeuilAlerte  int             `gorm:"not null;default:10"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MargeBenefice is derived, never stored: prix de vente − prix d'achat.
func (p *Produit) MargeBenefice() decimal.Decimal {
	return p.PrixUnitaire.Sub(p.PrixAchat)
}

func (p *Produit) EstStockBas() bool {
	return p.Stock <= p.SeuilAlerte
}
