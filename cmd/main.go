package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inventree/pos-service/internal/events"
	"github.com/inventree/pos-service/internal/handler"
	"github.com/inventree/pos-service/internal/repository"
	"github.com/inventree/pos-service/internal/service"
	"github.com/inventree/pos-service/pkg/config"
	"github.com/inventree/pos-service/pkg/middleware"
	pkgtls "github.com/inventree/pos-service/pkg/tls"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	dynamoClient, err := repository.NewDynamoDBClient(cfg)
	if err != nil {
		log.Fatal("Failed to create DynamoDB client:", err)
	}

	productRepo := repository.NewProductRepository(dynamoClient, cfg.ProductTableName)
	saleRepo := repository.NewSaleRepository(dynamoClient, cfg.SaleTableName, cfg.ProductTableName)
	categoryRepo := repository.NewCategoryRepository(dynamoClient, cfg.CategoryTableName)

	var publisher service.SaleEventPublisher
	var producer *events.KafkaProducer
	if cfg.KafkaBrokers != "" {
		producer = events.NewKafkaProducer(cfg.KafkaBrokers, logger)
		publisher = producer
		logger.Info("Kafka producer enabled", zap.String("brokers", cfg.KafkaBrokers))
	}

	catalogService := service.NewCatalogService(productRepo, categoryRepo, logger)
	saleService := service.NewSaleService(saleRepo, productRepo, publisher, logger)
	reportService := service.NewReportService(saleRepo, logger)
	invoiceService := service.NewInvoiceService()

	productHandler := handler.NewProductHandler(catalogService, logger)
	categoryHandler := handler.NewCategoryHandler(catalogService, logger)
	saleHandler := handler.NewSaleHandler(saleService, invoiceService, logger)
	reportHandler := handler.NewReportHandler(reportService, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.RequestID())

	v1 := router.Group("/api/v1")
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// Every operation below requires a logged-in caller.
	authed := v1.Group("")
	authed.Use(middleware.Auth(cfg.JWTSecret))
	{
		authed.POST("/products", productHandler.CreateProduct)
		authed.GET("/products", productHandler.ListProducts)
		authed.GET("/products/export", productHandler.ExportProducts)
		authed.GET("/products/low-stock", productHandler.ListLowStock)
		authed.GET("/products/barcode/:code", productHandler.GetProductByBarcode)
		authed.GET("/products/:id", productHandler.GetProduct)
		authed.PUT("/products/:id", productHandler.UpdateProduct)
		authed.DELETE("/products/:id", productHandler.DeleteProduct)
		authed.POST("/products/:id/stock", productHandler.AdjustStock)

		authed.POST("/categories", categoryHandler.CreateCategory)
		authed.GET("/categories", categoryHandler.ListCategories)
		authed.DELETE("/categories/:id", categoryHandler.DeleteCategory)

		authed.POST("/sales", saleHandler.CreateSale)
		authed.GET("/sales", saleHandler.ListSales)
		authed.GET("/sales/:id", saleHandler.GetSale)
		authed.GET("/sales/:id/invoice", saleHandler.GetInvoice)

		authed.GET("/reports/today", reportHandler.GetTodaysSales)
		authed.GET("/reports/sales", reportHandler.GetSalesReport)
	}

	var tlsCfg pkgtls.TLSConfig
	if err := envconfig.Process("", &tlsCfg); err != nil {
		log.Fatal("Failed to load TLS config:", err)
	}
	tlsConfig, err := pkgtls.LoadTLSConfig(&tlsCfg, logger)
	if err != nil {
		log.Fatal("Failed to load TLS config:", err)
	}

	srv := &http.Server{
		Addr:      ":" + cfg.Port,
		Handler:   router,
		TLSConfig: tlsConfig,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port))

		var err error
		if tlsConfig != nil {
			go pkgtls.WatchCertificates(&tlsCfg, logger)
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("Failed to close Kafka producer", zap.Error(err))
		}
	}
	pkgtls.Cleanup()

	logger.Info("Server exited")
}
