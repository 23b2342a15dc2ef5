package handler

import (
	"net/http"

	"gescom/internal/apierror"
	"gescom/internal/dto"
	"gescom/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VentesHandler struct{ svc service.VenteService }

func NewVentesHandler(svc service.VenteService) *VentesHandler { return &VentesHandler{svc: svc} }

// Creer godoc
// @Summary      Enregistrer une vente
// @Description  Débite le stock, fige le prix et écrit le mouvement de stock dans la même transaction.
// @Tags         ventes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreerVenteRequest true "Détail de la vente"
// @Success      201  {object} dto.VenteResponse
// @Failure      409  {object} apierror.APIError "Stock insuffisant"
// @Router       /v1/ventes [post]
func (h *VentesHandler) Creer(c *gin.Context) {
	var req dto.CreerVenteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreerVente(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *VentesHandler) Lister(c *gin.Context) {
	var filter dto.VenteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListerVentes(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VentesHandler) ObtenirParID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	resp, err := h.svc.ObtenirParID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Statistiques godoc
// @Summary      Statistiques financières
// @Description  Totaux, bénéfices et moyennes, servis depuis le cache Redis quand il est chaud.
// @Tags         ventes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.StatistiquesFinancieresResponse
// @Router       /v1/ventes/statistiques [get]
func (h *VentesHandler) Statistiques(c *gin.Context) {
	resp, err := h.svc.StatistiquesFinancieres(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StatistiquesPeriode buckets sales by day, ISO week or month.
func (h *VentesHandler) StatistiquesPeriode(c *gin.Context) {
	periode := c.DefaultQuery("periode", "journalier")
	switch periode {
	case "journalier", "hebdomadaire", "mensuel":
	default:
		c.JSON(http.StatusBadRequest, apierror.New("periode doit être journalier, hebdomadaire ou mensuel"))
		return
	}
	resp, err := h.svc.StatistiquesParPeriode(c.Request.Context(), periode)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
