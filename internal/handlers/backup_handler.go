package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hungerscrm/internal/models"
	"hungerscrm/internal/services"
)

type BackupHandler struct {
	Service *services.BackupService
}

func NewBackupHandler(service *services.BackupService) *BackupHandler {
	return &BackupHandler{Service: service}
}

// writeBackupError maps the backup error taxonomy onto HTTP codes.
// Configuration errors carry a configure hint so the client can route
// the user to the settings screen.
func writeBackupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoToken), errors.Is(err, services.ErrBadRepo):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "configure": true})
	case errors.Is(err, services.ErrSyncInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNoBackup), errors.Is(err, services.ErrInvalidBackup):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNoPendingPull):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

func (h *BackupHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.State())
}

func (h *BackupHandler) GetConfig(c *gin.Context) {
	cfg, err := h.Service.Config()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	// Never echo the stored credential back in full.
	masked := cfg
	if len(masked.Token) > 8 {
		masked.Token = masked.Token[:4] + "..." + masked.Token[len(masked.Token)-4:]
	}
	c.JSON(http.StatusOK, masked)
}

func (h *BackupHandler) UpdateConfig(c *gin.Context) {
	var cfg models.BackupConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.UpdateConfig(cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "backup config updated"})
}

// @Summary      Push a GitHub
// @Description  Sube la colección completa de tratos al repositorio configurado
// @Tags         Backup
// @Produce      json
// @Success      200  {object}  models.SyncResult
// @Failure      400  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]string
// @Router       /backup/push [post]
func (h *BackupHandler) Push(c *gin.Context) {
	result, err := h.Service.Push()
	if err != nil {
		writeBackupError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary      Pull desde GitHub (fase 1)
// @Description  Descarga el respaldo y devuelve un descriptor de confirmación; no toca el estado local
// @Tags         Backup
// @Produce      json
// @Success      200  {object}  models.PendingPull
// @Router       /backup/pull [post]
func (h *BackupHandler) Pull(c *gin.Context) {
	pending, err := h.Service.RequestPull()
	if err != nil {
		writeBackupError(c, err)
		return
	}
	c.JSON(http.StatusOK, pending)
}

// @Summary      Confirmar pull (fase 2)
// @Description  Reemplaza la colección local por el respaldo descargado
// @Tags         Backup
// @Produce      json
// @Success      200  {object}  models.SyncResult
// @Router       /backup/pull/{id}/confirm [post]
func (h *BackupHandler) ConfirmPull(c *gin.Context) {
	result, err := h.Service.ConfirmPull(c.Param("id"))
	if err != nil {
		writeBackupError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BackupHandler) CancelPull(c *gin.Context) {
	if err := h.Service.CancelPull(c.Param("id")); err != nil {
		writeBackupError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pull cancelled"})
}
