// Package scheduler runs the periodic cache warmers: the market overview and
// the news feeds are refreshed in the background so API responses stay hot.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"TradeScope/internal/collector"
	"TradeScope/internal/news"
)

// Scheduler manages the cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	News      *news.Service
	Symbols   []string
	Ctx       context.Context
	log       *zap.Logger
}

func New(ctx context.Context, col *collector.Collector, n *news.Service, symbols []string, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		Cron:      cron.New(),
		Collector: col,
		News:      n,
		Symbols:   symbols,
		Ctx:       ctx,
		log:       log,
	}
}

// RegisterAll registers the overview and news refresh tasks.
func (s *Scheduler) RegisterAll(overviewCron, newsCron string) error {
	if _, err := s.Cron.AddFunc(overviewCron, s.refreshOverview); err != nil {
		return fmt.Errorf("register overview refresh: %w", err)
	}
	if _, err := s.Cron.AddFunc(newsCron, s.refreshNews); err != nil {
		return fmt.Errorf("register news refresh: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.log.Info("scheduler stopped")
}

// WarmUpNow refreshes everything immediately, for use at startup.
func (s *Scheduler) WarmUpNow() {
	s.refreshOverview()
	s.refreshNews()
}

func (s *Scheduler) refreshOverview() {
	quotes := s.Collector.Overview(s.Ctx, s.Symbols)
	s.log.Info("overview refreshed",
		zap.Int("requested", len(s.Symbols)),
		zap.Int("fetched", len(quotes)))
}

func (s *Scheduler) refreshNews() {
	for _, region := range s.News.Regions() {
		if _, err := s.News.Latest(s.Ctx, region); err != nil {
			s.log.Warn("news refresh failed", zap.String("region", region), zap.Error(err))
		}
	}
}
