package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"TradeScope/internal/backtest"
	"TradeScope/internal/cache"
	"TradeScope/internal/collector"
	"TradeScope/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	symbol := flag.String("symbol", "SP500", "symbol to backtest")
	days := flag.Int("days", 365, "number of daily bars to replay")
	flag.Parse()

	zl, err := logger.New("info", true)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()

	var fetchers []collector.Fetcher
	if key := os.Getenv("ALPHA_VANTAGE_KEY"); key != "" {
		fetchers = append(fetchers, collector.NewAlphaVantageFetcher(key))
	}
	fetchers = append(fetchers, collector.NewYahooFetcher())
	chain := collector.NewChainFetcher(zl, fetchers...)
	col := collector.New(chain, cache.NewMemory(), zl)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	bars, err := col.DailyBars(ctx, *symbol, *days)
	if err != nil {
		log.Fatalf("fetch bars: %v", err)
	}

	report := backtest.Run(*symbol, bars)

	fmt.Printf("Backtest %s over %d bars\n", report.Symbol, report.Bars)
	fmt.Printf("  RSI        %3d signals, %5.1f%% win rate\n", report.RSI.Signals, report.RSI.WinRate()*100)
	fmt.Printf("  MACD       %3d signals, %5.1f%% win rate\n", report.MACD.Signals, report.MACD.WinRate()*100)
	fmt.Printf("  Bollinger  %3d signals, %5.1f%% win rate\n", report.Bollinger.Signals, report.Bollinger.WinRate()*100)
	fmt.Printf("  Composite  %3d signals, %5.1f%% win rate\n", report.Composite.Signals, report.Composite.WinRate()*100)
	fmt.Printf("  Levels     %3d tested, %5.1f%% hold rate\n", report.LevelsTested, report.LevelHoldRate*100)
}
