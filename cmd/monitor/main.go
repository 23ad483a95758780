package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"longshotwatch/internal/alert"
	"longshotwatch/internal/client/polymarket/data"
	"longshotwatch/internal/client/polymarket/gamma"
	"longshotwatch/internal/config"
	cronrunner "longshotwatch/internal/cron"
	"longshotwatch/internal/db"
	"longshotwatch/internal/detector"
	"longshotwatch/internal/discovery"
	"longshotwatch/internal/handler"
	"longshotwatch/internal/logger"
	gormrepository "longshotwatch/internal/repository/gorm"
)

func main() {
	// Secrets for the alert channels usually live in .env.
	_ = godotenv.Load()

	cfgPath := os.Getenv("LW_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	envOnly := false
	if raw := os.Getenv("LW_ENV_ONLY"); raw != "" {
		envOnly = strings.EqualFold(raw, "true") || raw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting polymarket longshot monitor",
		zap.Duration("detect_interval", cfg.Detector.Interval),
		zap.Duration("discovery_interval", cfg.Discovery.Interval),
		zap.Float64("probability_threshold", cfg.Discovery.ProbabilityThreshold),
		zap.Float64("min_trade_size", cfg.Detector.MinSize))
	for _, w := range cfg.Warnings() {
		log.Warn(w)
	}

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		log.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)
	if err := db.AutoMigrate(dbConn); err != nil {
		log.Fatal("auto-migrate failed", zap.Error(err))
	}

	gammaHTTP := &http.Client{Timeout: cfg.Gamma.Timeout}
	gammaClient := gamma.NewClient(gammaHTTP, cfg.Gamma.BaseURL)
	dataHTTP := &http.Client{Timeout: cfg.DataAPI.Timeout}
	dataClient := data.NewClient(dataHTTP, cfg.DataAPI.BaseURL, cfg.DataAPI.RatePerSecond, cfg.DataAPI.RateBurst)
	dataClient.SetLogger(log)

	store := gormrepository.New(dbConn.Gorm)

	disc := &discovery.Discovery{
		Source: gammaClient,
		Repo:   store,
		Config: cfg.Discovery,
		Logger: log,
	}
	det := &detector.Detector{
		Source:    dataClient,
		Watch:     store,
		Ledger:    store,
		Config:    cfg.Detector,
		Threshold: cfg.Discovery.ProbabilityThreshold,
		Logger:    log,
	}

	var channels []alert.Notifier
	if cfg.Discord.WebhookURL != "" {
		channels = append(channels, &alert.DiscordNotifier{WebhookURL: cfg.Discord.WebhookURL})
	}
	if cfg.Email.Enabled {
		channels = append(channels, &alert.EmailNotifier{Config: cfg.Email})
	}
	dispatcher := &alert.Dispatcher{Channels: channels, Logger: log}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	detectCycle := func(ctx context.Context) {
		trades, err := det.Detect(ctx)
		if err != nil {
			log.Warn("detection cycle failed", zap.Error(err))
		}
		if len(trades) == 0 {
			return
		}
		log.Info("new large trades found", zap.Int("count", len(trades)))
		sent := dispatcher.Dispatch(ctx, trades)
		log.Info("alerts dispatched", zap.Int("delivered", sent), zap.Int("total", len(trades)))
	}
	discoveryCycle := func(ctx context.Context) {
		markets, err := disc.Refresh(ctx)
		if err != nil {
			log.Warn("discovery cycle failed", zap.Error(err))
			return
		}
		log.Info("watching low-probability markets", zap.Int("count", len(markets)))
	}

	// Seed the watch set before the first detection pass. Cycles run to
	// completion even if a shutdown signal arrives while one is in flight.
	log.Info("initial market discovery")
	cycleCtx := context.WithoutCancel(ctx)
	discoveryCycle(cycleCtx)
	detectCycle(cycleCtx)

	cronRunner := cronrunner.New(log, ctx)
	if _, err := cronRunner.Add("@every "+cfg.Detector.Interval.String(), detectCycle); err != nil {
		log.Fatal("cron register detection failed", zap.Error(err))
	}
	if _, err := cronRunner.Add("@every "+cfg.Discovery.Interval.String(), discoveryCycle); err != nil {
		log.Fatal("cron register discovery failed", zap.Error(err))
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("monitor stopped")
}
