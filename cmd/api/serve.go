package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/config"
	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/database"
	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/logger"
	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/metrics"
	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/middleware"
	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/repository"
	routes "github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/server"
	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/services"
	"github.com/AgusMolinaCode/Genesis_Dashboard.git/internal/views"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 10 * time.Second

func serve(c *cli.Context) error {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Desugar().Sync() //nolint:errcheck

	log.Infow("config",
		"env", cfg.Env,
		"port", cfg.Port,
		"database", cfg.MongoDatabase,
		"registryCollection", cfg.RegistryCollection,
		"counterAsset", cfg.CounterAsset,
		"queryTimeout", cfg.MongoQueryTimeout,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Conectar a Mongo
	client, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoConnectTimeout)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warnw("error al desconectar Mongo", "error", err)
		}
	}()
	db := client.Database(cfg.MongoDatabase)

	// Métricas
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(registry)
	if err != nil {
		return fmt.Errorf("error al crear las métricas: %w", err)
	}

	// Repositorios y servicios
	swaps := repository.NewSwapRepository(db, cfg.CounterAsset, log)
	personas := repository.NewPersonaRepository(db, cfg.RegistryCollection, log)
	dashboard := services.NewDashboardService(swaps, cfg.MongoQueryTimeout, m, log)
	handler := middleware.NewDashboardHandler(
		dashboard,
		personas,
		views.NewFormatter(cfg.ExplorerTxURL, cfg.MakerPrefixLen),
		func(ctx context.Context) error { return database.Ping(ctx, client) },
		cfg.CardColumns,
		cfg.MongoQueryTimeout,
		log,
	)

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log))

	// Configurar CORS para la API JSON
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowOrigins
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	router.SetHTMLTemplate(views.Templates())
	routes.RegisterRoutes(router, handler, m, registry)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("servidor escuchando", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("apagando el servidor...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error al iniciar el servidor: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error al apagar el servidor: %w", err)
	}
	return nil
}
