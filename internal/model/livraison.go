package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	LivraisonEnCours = "En cours"
	LivraisonLivree  = "Livré"
	LivraisonAnnulee = "Annulé"
)

// Livraison tracks a client delivery. Independent of stock: marking a delivery
// does not move inventory.
type Livraison struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Adresse       string    `gorm:"not null"`
	Statut        string    `gorm:"type:varchar(50);not null;default:'En cours'"`
	DatePrevue    *time.Time
	// DateLivraison is stamped exactly once, on the transition to "Livré".
	DateLivraison *time.Time
	Notes         string
	CreatedAt     time.Time

	Client *Client `gorm:"foreignKey:ClientID"`
}

func (l *Livraison) EstTerminale() bool {
	return l.Statut == LivraisonLivree || l.Statut == LivraisonAnnulee
}
