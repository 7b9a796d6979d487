package app

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "hungerscrm/docs"
	"hungerscrm/internal/config"
	"hungerscrm/internal/handlers"
	"hungerscrm/internal/pdf"
	"hungerscrm/internal/repositories"
	"hungerscrm/internal/routes"
	"hungerscrm/internal/services"
	"hungerscrm/internal/store"
)

func Run() {
	cfg := config.LoadConfig()

	// === Local store ===
	st, err := store.Open(cfg.Storage.Path)
	if err != nil {
		log.Fatal("failed to open local store: ", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Printf("failed to close local store: %v", err)
		}
	}()

	// === Repos ===
	dealRepo := repositories.NewDealRepository(st)
	settingsRepo := repositories.NewSettingsRepository(st, cfg.GitHub.DefaultRepo)

	// === Services ===
	authService, err := services.NewAuthService(settingsRepo, cfg.Admin.Email, cfg.Admin.InitialPassword, cfg.Admin.JWTSecret)
	if err != nil {
		log.Fatal("failed to init auth: ", err)
	}

	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
		cfg.Email.NotifyEmail,
	)
	telegramService := services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.ChatID)

	dealService := services.NewDealService(dealRepo, emailService, telegramService)
	backupService := services.NewBackupService(dealService, settingsRepo, telegramService, cfg.GitHub.APIBaseURL, cfg.GitHub.BackupPath)
	reportService := services.NewReportService(dealService, backupService)
	advisorService := services.NewAdvisorService(cfg.Gemini.APIKey, cfg.Gemini.Model)

	pdfGen := pdf.NewReportGenerator()
	exportService := services.NewExportService(dealService, pdfGen)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(authService)
	dealHandler := handlers.NewDealHandler(dealService, advisorService)
	sellerHandler := handlers.NewSellerHandler()
	reportHandler := handlers.NewReportHandler(reportService)
	exportHandler := handlers.NewExportHandler(exportService)
	backupHandler := handlers.NewBackupHandler(backupService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authService,
		authHandler,
		dealHandler,
		sellerHandler,
		reportHandler,
		exportHandler,
		backupHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Hungers CRM listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server failed: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
