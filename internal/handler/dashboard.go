package handler

import (
	"net/http"

	"gescom/internal/dto"
	"gescom/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	ventes       service.VenteService
	stock        service.StockService
	reservations service.ReservationService
	livraisons   service.LivraisonService
}

func NewDashboardHandler(
	ventes service.VenteService,
	stock service.StockService,
	reservations service.ReservationService,
	livraisons service.LivraisonService,
) *DashboardHandler {
	return &DashboardHandler{
		ventes:       ventes,
		stock:        stock,
		reservations: reservations,
		livraisons:   livraisons,
	}
}

// Obtenir aggregates the landing-page widgets in one round-trip.
func (h *DashboardHandler) Obtenir(c *gin.Context) {
	ctx := c.Request.Context()

	finances, err := h.ventes.StatistiquesFinancieres(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	etatStock, err := h.stock.EtatStock(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	reservations, err := h.reservations.Statistiques(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	livraisons, err := h.livraisons.Statistiques(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DashboardResponse{
		Finances:     *finances,
		Stock:        *etatStock,
		Reservations: *reservations,
		Livraisons:   *livraisons,
	})
}
