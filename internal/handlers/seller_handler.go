package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hungerscrm/internal/models"
)

type SellerHandler struct{}

func NewSellerHandler() *SellerHandler {
	return &SellerHandler{}
}

// Sellers are a fixed reference dataset, immutable at runtime.
func (h *SellerHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, models.Sellers)
}
