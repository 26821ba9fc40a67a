package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err, "a missing file should not error")

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 365, cfg.Market.HistoryDays)
	assert.NotEmpty(t, cfg.Market.OverviewSymbols)
	assert.Equal(t, "@every 3m", cfg.Schedule.OverviewCron)
	assert.NoError(t, cfg.Validate())
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  addr: ":9000"
  log_level: debug
providers:
  alpha_vantage_key: from-file
market:
  history_days: 400
news:
  feeds:
    us:
      - https://example.com/rss
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("ALPHA_VANTAGE_KEY", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "from-env", cfg.Providers.AlphaVantageKey, "env should override file")
	assert.Equal(t, 400, cfg.Market.HistoryDays)
	assert.Equal(t, []string{"https://example.com/rss"}, cfg.News.Feeds["us"])
}

func TestValidateRejectsShortHistory(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	cfg.Market.HistoryDays = 10
	assert.Error(t, cfg.Validate())

	cfg.Market.HistoryDays = 365
	cfg.Market.OverviewSymbols = nil
	assert.Error(t, cfg.Validate())
}
