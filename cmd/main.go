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
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/events"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/handler"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/repository"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/service"
	"github.com/cloud-wave-best-zizon/storefront-service/pkg/config"
	"github.com/cloud-wave-best-zizon/storefront-service/pkg/middleware"
	pkgtls "github.com/cloud-wave-best-zizon/storefront-service/pkg/tls"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	var (
		inventory service.InventoryStore
		orders    service.OrderStore
		sessions  service.SessionStore
	)

	if cfg.LocalMode {
		logger.Info("Running in local mode with in-memory stores")
		inventory = repository.NewMemoryProductStore()
		orders = repository.NewMemoryOrderStore()
		sessions = repository.NewMemorySessionStore()
	} else {
		dynamoClient, err := repository.NewDynamoDBClient(cfg)
		if err != nil {
			log.Fatal("Failed to create DynamoDB client:", err)
		}
		inventory = repository.NewProductRepository(dynamoClient, cfg.ProductTableName)
		orders = repository.NewOrderRepository(dynamoClient, cfg.OrderTableName)

		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		sessions = repository.NewRedisSessionStore(redisClient, cfg.SessionTTL)
	}

	var publisher service.EventPublisher
	if cfg.KafkaEnabled {
		producer := events.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer producer.Close()
		publisher = producer
	}

	productService := service.NewProductService(inventory, logger)
	cartService := service.NewCartService(inventory, sessions, logger)
	checkoutService := service.NewCheckoutService(inventory, orders, sessions, publisher, logger)

	productHandler := handler.NewProductHandler(productService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	orderHandler := handler.NewOrderHandler(checkoutService, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.RequestID())

	// Storefront routes carry the visitor's session
	store := router.Group("/")
	store.Use(middleware.Session(sessions, logger))
	{
		store.GET("/cart", cartHandler.ViewCart)
		store.POST("/cart/add/:id", cartHandler.AddItem)
		store.GET("/cart/remove/:id", cartHandler.RemoveItem)
		store.POST("/cart/remove/:id", cartHandler.RemoveItem)
		store.POST("/cart/increase/:id", cartHandler.IncreaseQuantity)
		store.POST("/cart/decrease/:id", cartHandler.DecreaseQuantity)
		store.POST("/cart/update/:id", cartHandler.UpdateQuantity)

		store.GET("/checkout", orderHandler.ShowCheckout)
		store.POST("/checkout", orderHandler.Checkout)

		store.GET("/orders/history", orderHandler.OrderHistory)
		store.GET("/orders/reorder/:id", orderHandler.Reorder)
		store.GET("/orders/payment", orderHandler.ShowPayment)
		store.POST("/orders/payment", orderHandler.ConfirmPayment)
	}

	// Catalog / admin API
	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", productHandler.ListProducts)
		v1.GET("/products/:id", productHandler.GetProduct)
		v1.POST("/products", productHandler.CreateProduct)
		v1.PUT("/products/:id", productHandler.UpdateProduct)
		v1.PUT("/products/:id/stock", productHandler.UpdateStock)
		v1.POST("/products/:id/toggle", productHandler.ToggleAvailability)
		v1.DELETE("/products/:id", productHandler.DeleteProduct)
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "healthy"})
		})
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	tlsListener, err := pkgtls.Load(context.Background(), &cfg.TLS, logger)
	if err != nil {
		log.Fatal("Failed to load TLS config:", err)
	}
	defer tlsListener.Close()

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port))

		var serveErr error
		if tlsListener != nil {
			srv.TLSConfig = tlsListener.Config
			serveErr = srv.ListenAndServeTLS("", "")
		} else {
			serveErr = srv.ListenAndServe()
		}
		if serveErr != nil && serveErr != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(serveErr))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
