package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hungerscrm/internal/services"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

// @Summary      Dashboard operativo
// @Tags         Reports
// @Produce      json
// @Param        search   query  string  false  "Búsqueda"
// @Param        country  query  string  false  "País"
// @Param        seller   query  string  false  "Vendedor"
// @Success      200  {object}  services.DashboardSummary
// @Router       /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	summary, err := h.Service.Dashboard(filterFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary      Tablero de pipeline
// @Tags         Reports
// @Produce      json
// @Success      200  {array}  services.StageColumn
// @Router       /reports/pipeline [get]
func (h *ReportHandler) Pipeline(c *gin.Context) {
	columns, err := h.Service.Pipeline(filterFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, columns)
}
