package main

import (
	"log"
	"os"
	"strconv"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"receivables-service/internal/consumers"
	"receivables-service/internal/converter"
	"receivables-service/internal/database"
	"receivables-service/internal/services"
	"receivables-service/internal/worker"
)

func main() {
	// Load env
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found in ../../.env, trying .env")
		if err := godotenv.Load(".env"); err != nil {
			log.Println("No .env file found, using system env")
		}
	}

	// Connect DB
	database.Connect()
	db := database.DB

	outputDir := os.Getenv("OUTPUT_DIR")
	if outputDir == "" {
		outputDir = "output"
	}
	templatePath := os.Getenv("STATEMENT_TEMPLATE")
	if templatePath == "" {
		templatePath = "detail_form.xlsx"
	}
	converterBin := os.Getenv("CONVERTER_BIN")
	convertLimit := 2
	if v := os.Getenv("CONVERT_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			convertLimit = n
		}
	}

	// Statement pipeline
	officeConverter := converter.NewOfficeConverter(converterBin, convertLimit)
	merger := &converter.PdfcpuMerger{}
	statementService := services.NewStatementService(db, officeConverter, merger,
		templatePath, outputDir, services.SupplierFromEnv())

	// Processor
	processor := consumers.NewStatementProcessor(db, statementService)

	// Redis
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisOpt := asynq.RedisClientOpt{Addr: redisAddr}

	log.Println("Starting Asynq Worker...")
	worker.StartWorker(redisOpt, processor)
}
