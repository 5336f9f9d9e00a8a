package main

import (
	"context"
	"log"
	"time"

	"github.com/JJ00428/market-api/internal/config"
	httpc "github.com/JJ00428/market-api/internal/controllers/http"
	"github.com/JJ00428/market-api/internal/infra/mailer"
	mmysql "github.com/JJ00428/market-api/internal/infra/mysql"
	"github.com/JJ00428/market-api/internal/infra/rabbitmq"
	"github.com/JJ00428/market-api/internal/infra/token"
	mysqlrepo "github.com/JJ00428/market-api/internal/repository/mysql"
	"github.com/JJ00428/market-api/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := mmysql.New(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	userRepo := mysqlrepo.NewUserRepository(db)
	productRepo := mysqlrepo.NewProductRepository(db)
	orderRepo := mysqlrepo.NewOrderRepository(db)

	orderPublisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.OrderExchange)
	if err != nil {
		log.Fatalf("failed to init order publisher: %v", err)
	}
	defer orderPublisher.Close()

	mailPublisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.MailExchange)
	if err != nil {
		log.Fatalf("failed to init mail publisher: %v", err)
	}
	defer mailPublisher.Close()

	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTExpiresIn)
	mail := mailer.NewQueueMailer(mailPublisher)

	authService := services.NewAuthService(userRepo, tokens, mail, cfg.BaseURL)
	userService := services.NewUserService(userRepo)
	cartService := services.NewCartService(userRepo, productRepo)
	productService := services.NewProductService(productRepo, userRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, userRepo, orderPublisher)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		DB:           0,
		PoolSize:     200,
		MinIdleConns: 20,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	cache := services.NewProductCache(redisClient, time.Minute)
	productService.SetCache(cache)
	orderService.SetCache(cache)

	go func() {
		time.Sleep(5 * time.Second)
		ctx := context.Background()
		if err := productService.WarmupCache(ctx, []uint64{1, 2, 3, 4, 5}); err != nil {
			log.Printf("failed to warm up cache: %v", err)
		}
	}()

	handler := httpc.NewHandler(authService, userService, cartService, productService, orderService, cfg.Development())

	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r)

	log.Printf("Starting market API on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
