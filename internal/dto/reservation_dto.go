package dto

import "time"

type CreerReservationRequest struct {
	ProduitID  string     `json:"produit_id" validate:"required,uuid"`
	ClientID   string     `json:"client_id"  validate:"required,uuid"`
	Quantite   int        `json:"quantite"   validate:"required,min=1"`
	DateLimite *time.Time `json:"date_limite"`
	Notes      string     `json:"notes"`
}

// ModifierStatutRequest: the status vocabulary has spaces ("En attente"), so
// the allowed set is enforced by the service, not a oneof tag.
type ModifierStatutRequest struct {
	Statut string `json:"statut" validate:"required"`
	Notes  string `json:"notes"`
}

type ReservationResponse struct {
	ID              string  `json:"id"`
	ProduitID       string  `json:"produit_id"`
	Produit         string  `json:"produit"`
	ClientID        string  `json:"client_id"`
	Client          string  `json:"client"`
	Quantite        int     `json:"quantite"`
	Statut          string  `json:"statut"`
	DateReservation string  `json:"date_reservation"`
	DateLimite      *string `json:"date_limite"`
	Notes           string  `json:"notes"`
}

// ConfirmationResponse distinguishes the "insufficient stock" business outcome
// from a confirmed reservation. Both are 200-level answers.
type ConfirmationResponse struct {
	Confirmee bool   `json:"confirmee"`
	Message   string `json:"message"`
}

type StatistiquesReservationsResponse struct {
	TotalReservations int64 `json:"total_reservations"`
	EnAttente         int64 `json:"en_attente"`
	Confirmees        int64 `json:"confirmees"`
	Annulees          int64 `json:"annulees"`
}
