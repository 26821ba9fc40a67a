package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr     string `yaml:"addr"`
		LogLevel string `yaml:"log_level"`
		DevMode  bool   `yaml:"dev_mode"`
	} `yaml:"server"`
	Providers struct {
		AlphaVantageKey string `yaml:"alpha_vantage_key"`
	} `yaml:"providers"`
	Market struct {
		OverviewSymbols []string `yaml:"overview_symbols"`
		HistoryDays     int      `yaml:"history_days"`
	} `yaml:"market"`
	News struct {
		Feeds map[string][]string `yaml:"feeds"`
	} `yaml:"news"`
	AI struct {
		OllamaURL   string `yaml:"ollama_url"`
		OllamaModel string `yaml:"ollama_model"`
	} `yaml:"ai"`
	Schedule struct {
		OverviewCron string `yaml:"overview_cron"`
		NewsCron     string `yaml:"news_cron"`
	} `yaml:"schedule"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Server.LogLevel = v
	}
	if v := os.Getenv("DEV_MODE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Server.DevMode = b
		}
	}
	if v := os.Getenv("ALPHA_VANTAGE_KEY"); v != "" {
		cfg.Providers.AlphaVantageKey = v
	}
	if v := os.Getenv("OLLAMA_URL"); v != "" {
		cfg.AI.OllamaURL = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		cfg.AI.OllamaModel = v
	}
	if v := os.Getenv("HISTORY_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Market.HistoryDays = n
		}
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if len(cfg.Market.OverviewSymbols) == 0 {
		cfg.Market.OverviewSymbols = []string{"KOSPI", "KOSDAQ", "SP500", "NASDAQ", "USD/KRW"}
	}
	if cfg.Market.HistoryDays == 0 {
		cfg.Market.HistoryDays = 365
	}
	if cfg.Schedule.OverviewCron == "" {
		cfg.Schedule.OverviewCron = "@every 3m"
	}
	if cfg.Schedule.NewsCron == "" {
		cfg.Schedule.NewsCron = "@every 5m"
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Market.HistoryDays < 60 {
		return fmt.Errorf("market.history_days must be at least 60, got %d", c.Market.HistoryDays)
	}
	if len(c.Market.OverviewSymbols) == 0 {
		return fmt.Errorf("market.overview_symbols must not be empty")
	}
	return nil
}
