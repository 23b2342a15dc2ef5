package handler

import (
	"net/http"
	"time"

	"gescom/internal/apierror"
	"gescom/internal/dto"
	"gescom/internal/scheduler"
	"gescom/internal/service"

	"github.com/gin-gonic/gin"
)

type ExportsHandler struct {
	svc   service.ExportService
	sched *scheduler.Scheduler
}

func NewExportsHandler(svc service.ExportService, sched *scheduler.Scheduler) *ExportsHandler {
	return &ExportsHandler{svc: svc, sched: sched}
}

func (h *ExportsHandler) Lister(c *gin.Context) {
	resp, err := h.svc.ListerExports(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Exporter godoc
// @Summary      Export manuel
// @Description  Produit immédiatement les artefacts du jour demandé (date vide = aujourd'hui).
// @Tags         exports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ExportManuelRequest true "Date à exporter"
// @Success      200  {object} dto.ExportFiles
// @Router       /v1/exports [post]
func (h *ExportsHandler) Exporter(c *gin.Context) {
	var req dto.ExportManuelRequest
	if !bindAndValidate(c, &req) {
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Date invalide, format attendu: AAAA-MM-JJ"))
			return
		}
		date = parsed
	}

	resp, err := h.sched.RunManualExport(c.Request.Context(), date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
