package handler

import (
	"net/http"

	"gescom/internal/apierror"
	"gescom/internal/dto"
	"gescom/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationsHandler struct{ svc service.ReservationService }

func NewReservationsHandler(svc service.ReservationService) *ReservationsHandler {
	return &ReservationsHandler{svc: svc}
}

func (h *ReservationsHandler) Creer(c *gin.Context) {
	var req dto.CreerReservationRequest
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

func (h *ReservationsHandler) Lister(c *gin.Context) {
	resp, err := h.svc.Lister(c.Request.Context(), c.Query("statut"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReservationsHandler) ObtenirParID(c *gin.Context) {
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

func (h *ReservationsHandler) ModifierStatut(c *gin.Context) {
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

// Confirmer godoc
// @Summary      Confirmer une réservation
// @Description  Convertit la réservation en vente dans une transaction unique. Si le stock ne couvre plus la quantité, la réservation reste en attente et la réponse l'indique.
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la réservation"
// @Success      200  {object} dto.ConfirmationResponse
// @Failure      422  {object} apierror.APIError "Réservation déjà terminale"
// @Router       /v1/reservations/{id}/confirmer [post]
func (h *ReservationsHandler) Confirmer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	confirmee, err := h.svc.Confirmer(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !confirmee {
		c.JSON(http.StatusOK, dto.ConfirmationResponse{
			Confirmee: false,
			Message:   "Stock insuffisant, la réservation reste en attente",
		})
		return
	}
	c.JSON(http.StatusOK, dto.ConfirmationResponse{
		Confirmee: true,
		Message:   "Réservation confirmée, vente enregistrée",
	})
}

func (h *ReservationsHandler) Expirees(c *gin.Context) {
	resp, err := h.svc.Expirees(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReservationsHandler) Statistiques(c *gin.Context) {
	resp, err := h.svc.Statistiques(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
