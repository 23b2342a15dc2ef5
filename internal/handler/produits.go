package handler

import (
	"net/http"

	"gescom/internal/apierror"
	"gescom/internal/dto"
	"gescom/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProduitsHandler struct{ svc service.ProduitService }

func NewProduitsHandler(svc service.ProduitService) *ProduitsHandler {
	return &ProduitsHandler{svc: svc}
}

// Creer godoc
// @Summary      Créer un produit
// @Tags         produits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreerProduitRequest true "Produit"
// @Success      201  {object} dto.ProduitResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/produits [post]
func (h *ProduitsHandler) Creer(c *gin.Context) {
	var req dto.CreerProduitRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Creer(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProduitsHandler) Lister(c *gin.Context) {
	var filter dto.ProduitFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Lister(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProduitsHandler) ObtenirParID(c *gin.Context) {
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

func (h *ProduitsHandler) Actualiser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	var req dto.ModifierProduitRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualiser(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Supprimer godoc
// @Summary      Supprimer un produit
// @Description  Supprime le produit ainsi que ses ventes, mouvements et réservations.
// @Tags         produits
// @Security     BearerAuth
// @Param        id path string true "UUID du produit"
// @Success      204
// @Failure      404  {object} apierror.APIError
// @Router       /v1/produits/{id} [delete]
func (h *ProduitsHandler) Supprimer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	if err := h.svc.Supprimer(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
