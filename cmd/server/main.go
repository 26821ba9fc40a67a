package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"TradeScope/internal/ai"
	"TradeScope/internal/analysis"
	"TradeScope/internal/cache"
	"TradeScope/internal/collector"
	"TradeScope/internal/config"
	"TradeScope/internal/news"
	"TradeScope/internal/scheduler"
	"TradeScope/internal/server"
	"TradeScope/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	zl, err := logger.New(cfg.Server.LogLevel, cfg.Server.DevMode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()
	zl.Info("TradeScope starting", zap.String("addr", cfg.Server.Addr))

	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	mem := cache.NewMemory()

	// provider chain: Alpha Vantage when a key is configured, Yahoo as fallback
	var fetchers []collector.Fetcher
	if cfg.Providers.AlphaVantageKey != "" {
		fetchers = append(fetchers, collector.NewAlphaVantageFetcher(cfg.Providers.AlphaVantageKey))
	}
	fetchers = append(fetchers, collector.NewYahooFetcher())
	chain := collector.NewChainFetcher(zl, fetchers...)
	col := collector.New(chain, mem, zl)

	var summarizer ai.Summarizer = ai.Noop{}
	var translator ai.Translator = ai.Noop{}
	if cfg.AI.OllamaURL != "" {
		ollama := ai.NewOllamaClient(cfg.AI.OllamaURL, cfg.AI.OllamaModel)
		summarizer = ollama
		translator = ollama
		zl.Info("ollama enabled", zap.String("model", ollama.Model))
	}

	newsSvc := news.NewService(mem, translator, cfg.News.Feeds, zl)
	analyzer := analysis.NewAnalyzer(zl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.New(ctx, col, newsSvc, cfg.Market.OverviewSymbols, zl)
	if err := sched.RegisterAll(cfg.Schedule.OverviewCron, cfg.Schedule.NewsCron); err != nil {
		zl.Fatal("register cron tasks", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("WARM_ON_START") == "true" {
		go sched.WarmUpNow()
	}

	srv := server.New(col, analyzer, newsSvc, summarizer, cfg.Market.OverviewSymbols, zl)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		zl.Info("shutdown signal received")
		cancel()
	}()

	if err := srv.Run(ctx, cfg.Server.Addr); err != nil {
		zl.Error("server stopped", zap.Error(err))
	}
	zl.Info("TradeScope stopped")
}
