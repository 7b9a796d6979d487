package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hungerscrm/internal/services"
)

type ExportHandler struct {
	Service *services.ExportService
}

func NewExportHandler(service *services.ExportService) *ExportHandler {
	return &ExportHandler{Service: service}
}

// @Summary      Exportar CSV
// @Description  Exporta los tratos filtrados; nombre de archivo con fecha del día
// @Tags         Export
// @Produce      text/csv
// @Router       /export/csv [get]
func (h *ExportHandler) CSV(c *gin.Context) {
	body, filename, err := h.Service.CSV(filterFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
}

// @Summary      Exportar PDF
// @Tags         Export
// @Produce      application/pdf
// @Router       /export/pdf [get]
func (h *ExportHandler) PDF(c *gin.Context) {
	body, filename, err := h.Service.PDF(filterFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", body)
}
