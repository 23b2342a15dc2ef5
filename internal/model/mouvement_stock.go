package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeEntree = "entree"
	TypeSortie = "sortie"
)

// MouvementStock is the immutable audit row appended for every stock change.
// Rows are never updated or deleted by business logic.
type MouvementStock struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProduitID     uuid.UUID `gorm:"type:uuid;not null;index"`
	TypeMouvement string    `gorm:"type:varchar(20);not null"` // "entree" | "sortie"
	Quantite      int       `gorm:"not null"`                  // always > 0; direction is TypeMouvement
	Motif         string
	StockAvant    int       `gorm:"not null"`
	StockApres    int       `gorm:"not null"`
	DateMouvement time.Time `gorm:"index;autoCreateTime"`

	Produit *Produit `gorm:"foreignKey:ProduitID"`
}

// TableName overrides GORM's pluralization (mouvement_stocks → mouvements_stock).
func (MouvementStock) TableName() string { return "mouvements_stock" }
