package dto

import "time"

type CreerLivraisonRequest struct {
	ClientID   string     `json:"client_id" validate:"required,uuid"`
	Adresse    string     `json:"adresse"   validate:"required,min=1"`
	DatePrevue *time.Time `json:"date_prevue"`
	Notes      string     `json:"notes"`
}

type LivraisonResponse struct {
	ID            string  `json:"id"`
	ClientID      string  `json:"client_id"`
	Client        string  `json:"client"`
	Adresse       string  `json:"adresse"`
	Statut        string  `json:"statut"`
	DatePrevue    *string `json:"date_prevue"`
	DateLivraison *string `json:"date_livraison"`
	Notes         string  `json:"notes"`
	CreatedAt     string  `json:"created_at"`
}

type StatistiquesLivraisonsResponse struct {
	TotalLivraisons int64 `json:"total_livraisons"`
	EnCours         int64 `json:"en_cours"`
	Livrees         int64 `json:"livrees"`
	Annulees        int64 `json:"annulees"`
}
