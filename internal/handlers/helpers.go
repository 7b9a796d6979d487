package handlers

import (
	"github.com/gin-gonic/gin"

	"hungerscrm/internal/services"
)

// filterFromQuery reads the shared view filters. Absent params mean
// "All"; the explicit literal "All" is also accepted.
func filterFromQuery(c *gin.Context) services.Filter {
	return services.Filter{
		Search:  c.Query("search"),
		Country: c.Query("country"),
		Seller:  c.Query("seller"),
	}
}
