package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andriiBychkovskiy/proshop/internal/auth"
	"github.com/andriiBychkovskiy/proshop/internal/cart"
	"github.com/andriiBychkovskiy/proshop/internal/catalog"
	"github.com/andriiBychkovskiy/proshop/internal/config"
	"github.com/andriiBychkovskiy/proshop/internal/db"
	"github.com/andriiBychkovskiy/proshop/internal/events"
	"github.com/andriiBychkovskiy/proshop/internal/httpapi"
	"github.com/andriiBychkovskiy/proshop/internal/order"
	"github.com/andriiBychkovskiy/proshop/internal/user"
)

func main() {
	cfg := config.Load()

	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.Lshortfile)

	if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
		logger.Fatalf("run migrations: %v", err)
	}

	database := db.MustOpen(cfg.DatabaseDSN)
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalf("open pgx pool: %v", err)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	rabbitConn := events.MustDial(cfg.RabbitURL)
	defer rabbitConn.Close()

	sequenceRepo := events.NewSequenceRepository(database)
	publisher, err := events.NewRabbitPublisher(rabbitConn, sequenceRepo)
	if err != nil {
		logger.Fatalf("create event publisher: %v", err)
	}

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.SecureCookie)

	userService := user.NewService(user.NewRepository(database))
	catalogService := catalog.NewService(catalog.NewPostgresRepository(pool), cfg.PageSize)
	cartStore := cart.NewStore(cart.NewRedisPersister(redisClient))
	orderService := order.NewService(
		order.NewRepository(database),
		cartStore,
		catalogService,
		publisher,
		logger,
		order.WithDeliveryRequiresPayment(cfg.DeliveryRequiresPayment),
	)

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Auth:           httpapi.NewAuthMiddleware(tokens, userService),
		Users:          httpapi.NewUserHandler(userService, tokens),
		Products:       httpapi.NewProductHandler(catalogService),
		Cart:           httpapi.NewCartHandler(cartStore, catalogService),
		Orders:         httpapi.NewOrderHandler(orderService),
		PayPalClientID: cfg.PayPalClientID,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("storefront listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Printf("shutdown signal received")
	case err := <-errCh:
		logger.Fatalf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown error: %v", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Printf("publisher close error: %v", err)
	}
}
