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
	"go.uber.org/zap"

	"github.com/PedroLucas003/virada-brewery-store/cart"
	"github.com/PedroLucas003/virada-brewery-store/checkout"
	"github.com/PedroLucas003/virada-brewery-store/config"
	"github.com/PedroLucas003/virada-brewery-store/controllers"
	"github.com/PedroLucas003/virada-brewery-store/gateway"
	"github.com/PedroLucas003/virada-brewery-store/logger"
	"github.com/PedroLucas003/virada-brewery-store/routes"
	"github.com/PedroLucas003/virada-brewery-store/session"
	"github.com/PedroLucas003/virada-brewery-store/tokenstore"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	// Persistent token store; the session survives restarts through it.
	redisClient := tokenstore.NewRedisClient(cfg.RedisURL)
	tokens := tokenstore.NewRedis(redisClient)

	api := gateway.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, tokens, logger.Log)

	sessions := session.NewManager(tokens, api, logger.Log)
	api.SetUnauthorizedHandler(sessions.HandleUnauthorized)

	cartStore := cart.NewStore()
	cartStore.Subscribe(func(ev cart.Event) {
		fields := []zap.Field{zap.String("event", string(ev.Kind))}
		if ev.Item != nil {
			fields = append(fields, zap.String("product", ev.Item.Name), zap.Int("quantity", ev.Item.Quantity))
		}
		logger.Log.Info("Cart changed", fields...)
	})
	sessions.Subscribe(func(ev session.Event) {
		logger.Log.Info("Session changed", zap.String("event", string(ev.Kind)))
	})

	orchestrator := checkout.NewOrchestrator(cartStore, sessions, api, cfg.ShippingFee, logger.Log)

	// Startup revalidation must resolve before anything gating on
	// authentication is served.
	initCtx, cancelInit := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	sessions.Initialize(initCtx)
	cancelInit()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	routes.Register(
		router,
		controllers.NewSessionController(sessions),
		controllers.NewCartController(cartStore),
		controllers.NewCheckoutController(orchestrator),
		controllers.NewCatalogController(api),
		controllers.NewOrdersController(api),
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("Storefront is running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Log.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown error: %v", err)
	}
	logger.Log.Info("Server shutdown complete")
}
