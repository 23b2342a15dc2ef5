package dto

// DashboardResponse aggregates the landing-page widgets in one call.
type DashboardResponse struct {
	Finances     StatistiquesFinancieresResponse  `json:"finances"`
	Stock        EtatStockResponse                `json:"stock"`
	Reservations StatistiquesReservationsResponse `json:"reservations"`
	Livraisons   StatistiquesLivraisonsResponse   `json:"livraisons"`
}
