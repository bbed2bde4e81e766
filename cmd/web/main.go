package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/xDonalx/BuildStore/internal/assets"
	"github.com/xDonalx/BuildStore/internal/config"
	"github.com/xDonalx/BuildStore/internal/db"
	"github.com/xDonalx/BuildStore/internal/httpserver"
	productrepo "github.com/xDonalx/BuildStore/internal/repository/product"
	userrepo "github.com/xDonalx/BuildStore/internal/repository/user"
	cartsvc "github.com/xDonalx/BuildStore/internal/service/cart"
	catalogsvc "github.com/xDonalx/BuildStore/internal/service/catalog"
	identitysvc "github.com/xDonalx/BuildStore/internal/service/identity"
	profilesvc "github.com/xDonalx/BuildStore/internal/service/profile"
	"github.com/xDonalx/BuildStore/internal/session"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[web] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	sessionStore := buildSessionStore(ctx, cfg, logger)
	sessions := session.NewManager(sessionStore, int(cfg.SessionTTL.Seconds()), cfg.SecureCookies)

	assetStore, err := assets.NewStore(cfg.UploadDir, logger)
	if err != nil {
		logger.Fatalf("init asset store: %v", err)
	}

	userRepo := userrepo.NewPostgres(dbpool, logger)
	productRepo := productrepo.NewPostgres(dbpool, logger)

	identityService := identitysvc.New(userRepo)
	catalogService := catalogsvc.New(productRepo, assetStore)
	cartService := cartsvc.New(productRepo)
	profileService := profilesvc.New(userRepo, assetStore)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		IdentitySvc:    identityService,
		CatalogSvc:     catalogService,
		CartSvc:        cartService,
		ProfileSvc:     profileService,
		Sessions:       sessions,
		TemplateGlob:   cfg.TemplateGlob,
		UploadDir:      cfg.UploadDir,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

// buildSessionStore prefers Redis and falls back to process-local
// sessions when no Redis address is configured.
func buildSessionStore(ctx context.Context, cfg config.Config, logger *log.Logger) session.Store {
	if cfg.RedisAddr == "" {
		logger.Printf("REDIS_ADDR empty, using in-memory sessions")
		return session.NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Fatalf("connect to redis: %v", err)
	}

	return session.NewRedisStore(client, cfg.SessionTTL)
}
