package handler

import (
	"net/http"

	"gescom/internal/apierror"
	"gescom/internal/dto"
	"gescom/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LivraisonsHandler struct{ svc service.LivraisonService }

func NewLivraisonsHandler(svc service.LivraisonService) *LivraisonsHandler {
	return &LivraisonsHandler{svc: svc}
}

func (h *LivraisonsHandler) Creer(c *gin.Context) {
	var req dto.CreerLivraisonRequest
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

func (h *LivraisonsHandler) Lister(c *gin.Context) {
	resp, err := h.svc.Lister(c.Request.Context(), c.Query("statut"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LivraisonsHandler) ObtenirParID(c *gin.Context) {
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

// ModifierStatut stamps the delivery date on the transition to "Livré";
// terminal states reject further changes.
func (h *LivraisonsHandler) ModifierStatut(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	var req dto.ModifierStatutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ModifierStatut(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LivraisonsHandler) Statistiques(c *gin.Context) {
	resp, err := h.svc.Statistiques(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
