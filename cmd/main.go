package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"github.com/redis/go-redis/v9"

	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/caching"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/handlers"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/jobs"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/jobs/background"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/middleware"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/repositories"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/internal/services"
	"github.com/techwithPranab/InventoryManagementWeb-sub001/pkg/database"
)

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(context.Background(), databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	minioSvc, err := services.NewMinioService(services.MinioConfig{
		Endpoint:  minioEndpoint,
		AccessKey: minioAccessKey,
		SecretKey: minioSecretKey,
		UseSSL:    useSSL,
		Region:    os.Getenv("MINIO_REGION"),
	})
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}

	// Repositories
	tenantRepo := repositories.NewTenantRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	productImageRepo := repositories.NewProductImageRepository(pool)
	warehouseRepo := repositories.NewWarehouseRepository(pool)
	supplierRepo := repositories.NewSupplierRepository(pool)
	stockRepo := repositories.NewStockRepository(pool)
	movementRepo := repositories.NewMovementRepository(pool)
	transferRepo := repositories.NewTransferRepository(pool)
	orderRepo := repositories.NewPurchaseOrderRepository(pool)

	// Cache
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr, Password: redisPassword, DB: redisDB})

	// Services
	productSvc := services.NewProductService(productRepo, productImageRepo, minioSvc, cacheSvc)
	warehouseSvc := services.NewWarehouseService(warehouseRepo)
	supplierSvc := services.NewSupplierService(supplierRepo)
	stockSvc := services.NewStockService(stockRepo, movementRepo, cacheSvc)
	adjustmentSvc := services.NewAdjustmentService(stockRepo, movementRepo, productRepo, warehouseRepo, cacheSvc)
	alertSvc := services.NewAlertService(stockRepo, productRepo, cacheSvc)
	transferSvc := services.NewTransferService(pool, transferRepo, stockRepo, movementRepo, productRepo, warehouseRepo, cacheSvc)
	orderSvc := services.NewPurchaseOrderService(pool, orderRepo, productRepo, supplierRepo, warehouseRepo, adjustmentSvc)

	// Handlers
	productHandlers := handlers.NewProductHandlers(productSvc)
	warehouseHandlers := handlers.NewWarehouseHandlers(warehouseSvc)
	supplierHandlers := handlers.NewSupplierHandlers(supplierSvc)
	inventoryHandlers := handlers.NewInventoryHandlers(stockSvc, adjustmentSvc, alertSvc)
	transferHandlers := handlers.NewTransferHandlers(transferSvc)
	orderHandlers := handlers.NewPurchaseOrderHandlers(orderSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, redisClient)

	// Background jobs
	sweeper := jobs.NewAlertSweeper(tenantRepo, alertSvc)
	scheduler, err := background.NewJobScheduler(sweeper)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop scheduler: %v", err)
		}
	}()

	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/live", healthHandlers.Liveness)

	v1 := e.Group("/v1")
	v1.Use(echojwt.WithConfig(middleware.JWTConfig(jwtSecret)))

	// Catalog routes
	v1.GET("/products", productHandlers.ListProducts)
	v1.POST("/products", productHandlers.CreateProduct)
	v1.GET("/products/:id", productHandlers.GetProduct)
	v1.PUT("/products/:id", productHandlers.UpdateProduct)
	v1.DELETE("/products/:id", productHandlers.DeleteProduct)
	v1.POST("/products/:id/images", productHandlers.UploadProductImage)
	v1.GET("/products/:id/images", productHandlers.ListProductImages)

	v1.GET("/warehouses", warehouseHandlers.ListWarehouses)
	v1.POST("/warehouses", warehouseHandlers.CreateWarehouse)
	v1.GET("/warehouses/:id", warehouseHandlers.GetWarehouse)
	v1.PUT("/warehouses/:id", warehouseHandlers.UpdateWarehouse)
	v1.DELETE("/warehouses/:id", warehouseHandlers.DeleteWarehouse)

	v1.GET("/suppliers", supplierHandlers.ListSuppliers)
	v1.POST("/suppliers", supplierHandlers.CreateSupplier)
	v1.GET("/suppliers/:id", supplierHandlers.GetSupplier)
	v1.PUT("/suppliers/:id", supplierHandlers.UpdateSupplier)
	v1.DELETE("/suppliers/:id", supplierHandlers.DeleteSupplier)

	// Stock ledger routes
	v1.GET("/stock", inventoryHandlers.ListStock)
	v1.GET("/stock/:warehouseID/:productID", inventoryHandlers.GetStockRecord)
	v1.POST("/stock/adjustments", inventoryHandlers.CreateAdjustment)
	v1.GET("/stock/movements", inventoryHandlers.ListMovements)
	v1.GET("/stock/alerts", inventoryHandlers.ListAlerts)
	v1.GET("/stock/valuation", inventoryHandlers.GetValuation)

	// Transfer workflow routes
	v1.GET("/transfers", transferHandlers.ListTransfers)
	v1.POST("/transfers", transferHandlers.CreateTransfer)
	v1.GET("/transfers/:id", transferHandlers.GetTransfer)
	v1.POST("/transfers/:id/approve", transferHandlers.ApproveTransfer)
	v1.POST("/transfers/:id/complete", transferHandlers.CompleteTransfer)
	v1.POST("/transfers/:id/cancel", transferHandlers.CancelTransfer)

	// Purchase order workflow routes
	v1.GET("/purchase-orders", orderHandlers.ListPurchaseOrders)
	v1.POST("/purchase-orders", orderHandlers.CreatePurchaseOrder)
	v1.GET("/purchase-orders/:id", orderHandlers.GetPurchaseOrder)
	v1.PUT("/purchase-orders/:id", orderHandlers.UpdatePurchaseOrder)
	v1.DELETE("/purchase-orders/:id", orderHandlers.DeletePurchaseOrder)
	v1.POST("/purchase-orders/:id/submit", orderHandlers.SubmitPurchaseOrder)
	v1.POST("/purchase-orders/:id/approve", orderHandlers.ApprovePurchaseOrder)
	v1.POST("/purchase-orders/:id/reject", orderHandlers.RejectPurchaseOrder)
	v1.POST("/purchase-orders/:id/send", orderHandlers.MarkPurchaseOrderSent)
	v1.POST("/purchase-orders/:id/confirm", orderHandlers.MarkPurchaseOrderConfirmed)
	v1.POST("/purchase-orders/:id/receive-partial", orderHandlers.MarkPurchaseOrderPartial)
	v1.POST("/purchase-orders/:id/receive", orderHandlers.MarkPurchaseOrderReceived)
	v1.POST("/purchase-orders/:id/cancel", orderHandlers.CancelPurchaseOrder)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		if err := e.Start(":" + port); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down")
	if err := e.Close(); err != nil {
		log.Printf("Server close error: %v", err)
	}
}
