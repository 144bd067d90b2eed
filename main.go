package main

import (
	"log"
	"os"

	"github.com/Aashish23092/ocr-invoice-extraction/client"
	"github.com/Aashish23092/ocr-invoice-extraction/config"
	"github.com/Aashish23092/ocr-invoice-extraction/handler"
	"github.com/Aashish23092/ocr-invoice-extraction/service"
	"github.com/Aashish23092/ocr-invoice-extraction/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// Tesseract v5 needs the tessdata prefix set before the first client
	os.Setenv("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata/")
	log.Println("TESSDATA_PREFIX set to:", os.Getenv("TESSDATA_PREFIX"))

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)
	qrClient := client.NewQRClient()
	pdfProcessor := service.NewPDFProcessor()
	extractor := utils.NewExtractor(cfg.Tuning)

	extractionService := service.NewExtractionService(tesseractClient, qrClient, pdfProcessor, extractor)
	extractHandler := handler.NewExtractHandler(extractionService)

	router := gin.Default()

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "OCR Invoice Field Extraction",
		})
	})

	api := router.Group("/api/v1")
	{
		invoice := api.Group("/invoice")
		{
			invoice.POST("/extract", extractHandler.ExtractFields)
			invoice.POST("/extract-file", extractHandler.ExtractFile)
		}
	}

	log.Printf("Starting OCR Invoice Extraction Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
