package main

import (
	"log"
	"time"

	"github.com/Ricky06202/tshirt-stryd/internal/config"
	"github.com/Ricky06202/tshirt-stryd/internal/controllers/http"
	"github.com/Ricky06202/tshirt-stryd/internal/infra"
	"github.com/Ricky06202/tshirt-stryd/internal/infra/blob"
	"github.com/Ricky06202/tshirt-stryd/internal/infra/cache"
	"github.com/Ricky06202/tshirt-stryd/internal/infra/database"
	"github.com/Ricky06202/tshirt-stryd/internal/infra/rabbitmq"
	"github.com/Ricky06202/tshirt-stryd/internal/repository/gormdb"
	"github.com/Ricky06202/tshirt-stryd/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	store, err := newBlobStore(cfg)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	sizes := gormdb.NewSizeRepository(db)
	styles := gormdb.NewStyleRepository(db)
	orders := gormdb.NewOrderRepository(db)

	var publisher rabbitmq.PublisherInterface = rabbitmq.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.EventsExchange)
		if err != nil {
			log.Fatalf("failed to init publisher: %v", err)
		}
		defer p.Close()
		publisher = p
	}

	catalog := services.NewCatalogService(sizes, styles)
	if cfg.RedisHost != "" {
		catalog.SetCache(cache.NewRedisCache(cache.NewRedisClient(cfg.RedisHost), "tshirts:"), cfg.CatalogCacheTTL)
	}

	orderService := services.NewOrderService(orders, styles, sizes, publisher)
	orderService.SetContact(services.ContactConfig{WhatsAppPhone: cfg.WhatsAppPhone, PaymentPhone: cfg.PaymentPhone})
	if cfg.TurnstileSecret != "" {
		orderService.SetChallengeVerifier(infra.NewTurnstileClient(infra.TurnstileVerifyURL, cfg.TurnstileSecret, 5*time.Second))
	}

	handler := http.NewHandler(
		catalog,
		services.NewStyleService(styles, store, catalog),
		orderService,
		services.NewImageService(store),
	)
	handler.SetTurnstileSiteKey(cfg.TurnstileSiteKey)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	handler.RegisterRoutes(r)

	log.Printf("Starting shirt order service on port %s (db=%s, blob=%s)", cfg.Port, cfg.Database.Driver, cfg.BlobDriver)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}

func newBlobStore(cfg *config.Config) (blob.Store, error) {
	if cfg.BlobDriver == config.BlobDriverS3 {
		return blob.NewS3Store(cfg.S3)
	}
	return blob.NewFSStore(cfg.BlobDir)
}
