package handler

import (
	"net/http"

	"gescom/internal/apierror"
	"gescom/internal/dto"
	"gescom/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StocksHandler struct{ svc service.StockService }

func NewStocksHandler(svc service.StockService) *StocksHandler { return &StocksHandler{svc: svc} }

// AjouterMouvement godoc
// @Summary      Enregistrer un mouvement de stock
// @Description  Entrée ou sortie manuelle; le niveau avant/après est journalisé atomiquement.
// @Tags         stocks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.MouvementRequest true "Mouvement"
// @Success      201  {object} dto.MouvementResponse
// @Failure      409  {object} apierror.APIError "Stock insuffisant"
// @Router       /v1/stocks/mouvements [post]
func (h *StocksHandler) AjouterMouvement(c *gin.Context) {
	var req dto.MouvementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjouterMouvement(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *StocksHandler) ListerMouvements(c *gin.Context) {
	var filter dto.MouvementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListerMouvements(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StocksHandler) StockBas(c *gin.Context) {
	resp, err := h.svc.ProduitsStockBas(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EtatStock godoc
// @Summary      État du stock
// @Description  Compteurs, valorisation au prix d'achat et détail par produit.
// @Tags         stocks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.EtatStockResponse
// @Router       /v1/stocks/etat [get]
func (h *StocksHandler) EtatStock(c *gin.Context) {
	resp, err := h.svc.EtatStock(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StocksHandler) Reapprovisionner(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	var req dto.ReapproRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Reapprovisionner(c.Request.Context(), id, req.QuantiteCible)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if resp == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Stock déjà au niveau cible, aucun mouvement créé"})
		return
	}
	c.JSON(http.StatusCreated, resp)
}
