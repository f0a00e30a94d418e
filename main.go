package main

import (
	"database/sql"
	"log"
	"os"

	"receivables-service/internal/database"
	"receivables-service/internal/handlers"
	"receivables-service/internal/legacy"
	"receivables-service/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	// Initialize Database
	database.Connect()
	database.Migrate()
	db := database.DB

	outputDir := os.Getenv("OUTPUT_DIR")
	if outputDir == "" {
		outputDir = "output"
	}
	// Init Services
	masterService := services.NewMasterService(db)
	reconcileService := services.NewReconcileService(db, masterService)
	reportingService := services.NewReportingService(db)

	// Redis/Asynq Client
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	exportService := services.NewExportService(db, asynqClient, outputDir)

	// Handlers
	uploadHandler := handlers.NewUploadHandler(reconcileService)
	reportHandler := handlers.NewReportHandler(reportingService)
	statementHandler := handlers.NewStatementHandler(exportService)

	// Initialize Gin
	r := gin.Default()

	// Ping endpoint
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Welcome to Receivables service",
		})
	})

	r.POST("/orders", uploadHandler.AddOrder)
	r.POST("/uploads/bank-payments", uploadHandler.UploadBankPayments)
	r.POST("/uploads/orders", uploadHandler.UploadOrders)
	r.GET("/reports/receivables", reportHandler.Receivables)
	r.GET("/reports/daily", reportHandler.DailyGrid)
	r.POST("/statements/export", statementHandler.SubmitExport)
	r.GET("/statements/export/:task_id", statementHandler.ExportStatus)
	r.GET("/statements/export/:task_id/download", statementHandler.DownloadExport)

	// Legacy ERP routes are only mounted when the upstream store is
	// configured.
	if legacyDSN := os.Getenv("LEGACY_DATABASE_URL"); legacyDSN != "" {
		legacyDB, err := sql.Open("mysql", legacyDSN)
		if err != nil {
			log.Fatalf("Failed to open legacy database: %v", err)
		}
		legacyService := services.NewLegacyLoadService(legacy.NewSQLClient(legacyDB), outputDir)
		legacyHandler := handlers.NewLegacyHandler(legacyService)
		r.POST("/legacy/daily-load", legacyHandler.RunDailyLoad)
		r.GET("/legacy/daily-load/:file", legacyHandler.DownloadExtract)

		if os.Getenv("LEGACY_SCHEDULER") == "true" {
			legacyService.StartScheduler()
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting HTTP server on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
