package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"qzone/internal/config"
	"qzone/internal/handler"
	"qzone/internal/middleware"
	"qzone/internal/repository"
	"qzone/internal/service"
	"qzone/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	// --- Configuration ---
	cfg, warnings, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	log := cfg.NewLogger()
	for _, w := range warnings {
		log.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(ctx, &cfg.DB, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	if err := config.Migrate(ctx, dbPool, log); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Wiring ---
	hasher := utils.NewPasswordHasher(cfg.HashCost)
	if hasher.Cost() != cfg.HashCost {
		log.Warnf("BCRYPT_COST %d out of range, using %d", cfg.HashCost, hasher.Cost())
	}

	userRepo := repository.NewUserRepository(dbPool)
	sectorRepo := repository.NewSectorRepository(dbPool)

	authService := service.NewAuthService(userRepo, hasher)
	sectorService := service.NewSectorService(sectorRepo, rand.New(rand.NewSource(time.Now().UnixNano())))

	metrics := middleware.NewMetrics()

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handler.NewRouter(handler.RouterDeps{
		Auth:    handler.NewAuthHandler(authService, metrics, log),
		Sectors: handler.NewSectorHandler(sectorService, log),
		System:  handler.NewSystemHandler(dbPool, cfg.StaticDir),
		Metrics: metrics,
		Log:     log,
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("port", cfg.ServerPort).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// --- Graceful Shutdown ---
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Server stopped with error")
		os.Exit(1)
	}
	log.Info("Server exiting")
}
