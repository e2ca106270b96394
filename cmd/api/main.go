package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fasthttp/router"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	deliveryHttp "panda-menu/internal/adapter/delivery/http"
	"panda-menu/internal/adapter/fetch"
	handlerHttp "panda-menu/internal/adapter/handler/http"
	"panda-menu/internal/adapter/storage/memory"
	"panda-menu/internal/adapter/storage/registry"
	"panda-menu/internal/application"
	"panda-menu/internal/config"
	"panda-menu/internal/domain/hoststyle"
	"panda-menu/internal/logger"
	"panda-menu/internal/metrics"
)

func main() {
	// --- Configuration ---
	cfgPath := "configs"
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration from %s: %v", cfgPath, err)
	}

	// --- Logger ---
	appLogger, err := logger.NewLogger(cfg.Logger, cfg.App.Name)
	if err != nil {
		log.Fatalf("Failed to setup logger: %v", err)
	}
	defer appLogger.Sync()
	appLogger.Info("Logger initialized", zap.Any("config", cfg.Logger))

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Dependency Injection (Manual) ---
	appLogger.Info("Initializing dependencies...")

	var (
		m        *metrics.Metrics
		gatherer prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(metrics.WithNamespace(cfg.Metrics.Namespace), metrics.WithRegistry(reg))
		gatherer = reg
	}

	fetchClient := fetch.NewClient(appLogger,
		fetch.WithUserAgent(cfg.Registry.UserAgent),
		fetch.WithMaxResponseBodySize(cfg.Registry.GetMaxBodySize()),
	)
	registryRepo := registry.NewRepository(cfg.Registry, fetchClient, appLogger)
	cacheRepo := memory.NewCacheRepository(cfg.Cache, appLogger)

	menuService := application.NewMenuService(rootCtx, registryRepo, cacheRepo, m, appLogger, *cfg)

	hostRules := hoststyle.DefaultRules()
	if cfg.Menu.HostRulesFile != "" {
		hostRules, err = hoststyle.LoadRules(cfg.Menu.HostRulesFile)
		if err != nil {
			appLogger.Fatal("Failed to load host rules", zap.String("file", cfg.Menu.HostRulesFile), zap.Error(err))
		}
		appLogger.Info("Loaded host rules", zap.String("file", cfg.Menu.HostRulesFile), zap.Int("rules", len(hostRules)))
	}

	variant, err := hoststyle.ParseVariant(cfg.Menu.Variant)
	if err != nil {
		appLogger.Fatal("Invalid menu variant", zap.Error(err))
	}

	menuHandler := handlerHttp.NewMenuHandler(menuService, hostRules, variant, *cfg, appLogger)

	// --- HTTP Router & Server ---
	appLogger.Info("Setting up HTTP router...")
	r := router.New()
	deliveryHttp.RegisterRoutes(r, menuHandler, gatherer, appLogger)

	server := &fasthttp.Server{
		Handler: deliveryHttp.Logging(appLogger)(deliveryHttp.Recover(appLogger)(r.Handler)),
		Name:    cfg.App.Name,
	}

	serverAddr := ":" + cfg.Server.Port
	appLogger.Info("Starting HTTP server", zap.String("address", serverAddr))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe(serverAddr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	case <-rootCtx.Done():
		appLogger.Info("Shutdown signal received, stopping HTTP server")
		if err := server.Shutdown(); err != nil {
			appLogger.Error("Server shutdown failed", zap.Error(err))
		}
	}
}
