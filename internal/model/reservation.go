package model

import (
	"time"

	"github.com/google/uuid"
)

// Reservation statuses. "En attente" is the only non-terminal state.
const (
	ReservationEnAttente = "En attente"
	ReservationConfirmee = "Confirmé"
	ReservationAnnulee   = "Annulé"
)

// Reservation is a soft hold: it never decrements stock while pending. Stock is
// debited only when confirmation creates the corresponding Vente.
type Reservation struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProduitID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ClientID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantite        int       `gorm:"not null"`
	Statut          string    `gorm:"type:varchar(50);not null;default:'En attente'"`
	DateReservation time.Time `gorm:"autoCreateTime"`
	DateLimite      *time.Time
	Notes           string

	Produit *Produit `gorm:"foreignKey:ProduitID"`
	Client  *Client  `gorm:"foreignKey:ClientID"`
}

// EstTerminale reports whether no further status transition is permitted.
func (r *Reservation) EstTerminale() bool {
	return r.Statut == ReservationConfirmee || r.Statut == ReservationAnnulee
}
