package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hungerscrm/internal/models"
	"hungerscrm/internal/services"
)

type DealHandler struct {
	Service *services.DealService
	Advisor *services.AdvisorService
}

func NewDealHandler(service *services.DealService, advisor *services.AdvisorService) *DealHandler {
	return &DealHandler{Service: service, Advisor: advisor}
}

// @Summary      Crear trato
// @Tags         Deals
// @Accept       json
// @Produce      json
// @Param        deal  body      models.Deal  true  "Trato"
// @Success      201   {object}  models.Deal
// @Router       /deals [post]
func (h *DealHandler) Create(c *gin.Context) {
	var deal models.Deal
	if err := c.ShouldBindJSON(&deal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.Create(&deal); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrDuplicateDeal) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, deal)
}

func (h *DealHandler) List(c *gin.Context) {
	deals, err := h.Service.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve deals"})
		return
	}
	c.JSON(http.StatusOK, deals)
}

func (h *DealHandler) GetByID(c *gin.Context) {
	deal, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if deal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "deal not found"})
		return
	}
	c.JSON(http.StatusOK, deal)
}

func (h *DealHandler) Update(c *gin.Context) {
	var body models.Deal
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.Service.Update(c.Param("id"), body)
	if err != nil {
		if errors.Is(err, services.ErrDealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "deal not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *DealHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrDealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "deal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type updateDealStatusRequest struct {
	To models.DealStatus `json:"to" binding:"required"`
}

// @Summary      Mover trato de etapa
// @Tags         Deals
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "ID del trato"
// @Param        body  body      updateDealStatusRequest  true  "Etapa destino"
// @Success      200   {object}  models.Deal
// @Router       /deals/{id}/status [post]
func (h *DealHandler) UpdateStatus(c *gin.Context) {
	var req updateDealStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.Service.UpdateStatus(c.Param("id"), req.To)
	if err != nil {
		if errors.Is(err, services.ErrDealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "deal not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

type scheduleActivityRequest struct {
	Type    models.ActivityType `json:"type"`
	Content string              `json:"content" binding:"required"`
	Date    string              `json:"date"`
}

// @Summary      Programar actividad
// @Tags         Deals
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "ID del trato"
// @Param        body  body      scheduleActivityRequest  true  "Actividad"
// @Success      200   {object}  models.Deal
// @Router       /deals/{id}/activities [post]
func (h *DealHandler) ScheduleActivity(c *gin.Context) {
	var req scheduleActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.Service.ScheduleActivity(c.Param("id"), req.Type, req.Content, req.Date)
	if err != nil {
		if errors.Is(err, services.ErrDealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "deal not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary      Análisis IA del trato
// @Description  Pide a Gemini recomendaciones de cierre; nunca falla, degrada a texto fijo
// @Tags         Deals
// @Produce      json
// @Param        id  path      string  true  "ID del trato"
// @Success      200 {object}  map[string]string
// @Router       /deals/{id}/analyze [post]
func (h *DealHandler) Analyze(c *gin.Context) {
	deal, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if deal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "deal not found"})
		return
	}
	analysis := h.Advisor.Analyze(c.Request.Context(), deal)
	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}
