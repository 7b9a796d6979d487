package routes

import (
	"github.com/gin-gonic/gin"

	"hungerscrm/internal/handlers"
	"hungerscrm/internal/middleware"
	"hungerscrm/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	dealHandler *handlers.DealHandler,
	sellerHandler *handlers.SellerHandler,
	reportHandler *handlers.ReportHandler,
	exportHandler *handlers.ExportHandler,
	backupHandler *handlers.BackupHandler,
) *gin.Engine {

	// ---- public
	r.POST("/login", authHandler.Login)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	// ---- protected
	r.Use(middleware.AuthMiddleware(authService))

	r.POST("/auth/password", authHandler.ChangePassword)

	// DEALS
	deals := r.Group("/deals")
	{
		deals.POST("/", dealHandler.Create)
		deals.GET("/", dealHandler.List)
		deals.GET("/:id", dealHandler.GetByID)
		deals.PUT("/:id", dealHandler.Update)
		deals.DELETE("/:id", dealHandler.Delete)
		deals.POST("/:id/status", dealHandler.UpdateStatus)
		deals.POST("/:id/activities", dealHandler.ScheduleActivity)
		deals.POST("/:id/analyze", dealHandler.Analyze)
	}

	// SELLERS (fixed reference data)
	r.GET("/sellers", sellerHandler.List)

	// REPORTS
	reports := r.Group("/reports")
	{
		reports.GET("/dashboard", reportHandler.Dashboard)
		reports.GET("/pipeline", reportHandler.Pipeline)
	}

	// EXPORT
	export := r.Group("/export")
	{
		export.GET("/csv", exportHandler.CSV)
		export.GET("/pdf", exportHandler.PDF)
	}

	// BACKUP (GitHub)
	backup := r.Group("/backup")
	{
		backup.GET("/status", backupHandler.Status)
		backup.GET("/config", backupHandler.GetConfig)
		backup.PUT("/config", backupHandler.UpdateConfig)
		backup.POST("/push", backupHandler.Push)
		backup.POST("/pull", backupHandler.Pull)
		backup.POST("/pull/:id/confirm", backupHandler.ConfirmPull)
		backup.POST("/pull/:id/cancel", backupHandler.CancelPull)
	}

	return r
}
