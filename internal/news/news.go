// Package news aggregates financial headlines from RSS feeds, grouped by
// region, with optional machine translation of foreign headlines.
package news

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"TradeScope/internal/ai"
	"TradeScope/internal/cache"
	"TradeScope/internal/model"
)

const (
	maxArticles = 20
	newsTTL     = 5 * time.Minute
	feedTimeout = 15 * time.Second
)

// DefaultFeeds maps a region key to its RSS feed URLs.
var DefaultFeeds = map[string][]string{
	"korea": {
		"https://www.mk.co.kr/rss/30100041/",
		"https://rss.hankyung.com/feed/finance.xml",
	},
	"us": {
		"https://feeds.finance.yahoo.com/rss/2.0/headline?s=%5EGSPC&region=US&lang=en-US",
		"https://www.cnbc.com/id/100003114/device/rss/rss.html",
	},
}

// Service fetches and merges feeds for a region, newest first, capped at
// twenty articles. Results are cached per region.
type Service struct {
	parser     *gofeed.Parser
	cache      cache.Cache
	translator ai.Translator
	feeds      map[string][]string
	log        *zap.Logger
}

func NewService(c cache.Cache, translator ai.Translator, feeds map[string][]string, log *zap.Logger) *Service {
	if translator == nil {
		translator = ai.Noop{}
	}
	if feeds == nil {
		feeds = DefaultFeeds
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		parser:     gofeed.NewParser(),
		cache:      c,
		translator: translator,
		feeds:      feeds,
		log:        log,
	}
}

// Latest returns the newest articles for region. Unknown regions error;
// individual feed failures are logged and skipped.
func (s *Service) Latest(ctx context.Context, region string) ([]model.NewsArticle, error) {
	region = strings.ToLower(strings.TrimSpace(region))
	urls, ok := s.feeds[region]
	if !ok {
		return nil, fmt.Errorf("unknown news region %q", region)
	}

	key := "news:" + region
	if v, ok := s.cache.Get(key); ok {
		return v.([]model.NewsArticle), nil
	}

	articles := s.fetchAll(ctx, urls)
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
	if len(articles) > maxArticles {
		articles = articles[:maxArticles]
	}

	// foreign articles get best-effort Korean translations
	if region != "korea" {
		s.translateArticles(ctx, articles)
	}

	s.cache.Put(key, articles, newsTTL)
	return articles, nil
}

// Regions lists the configured region keys, sorted.
func (s *Service) Regions() []string {
	regions := make([]string, 0, len(s.feeds))
	for r := range s.feeds {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	return regions
}

func (s *Service) fetchAll(ctx context.Context, urls []string) []model.NewsArticle {
	var (
		mu       sync.Mutex
		articles []model.NewsArticle
		wg       sync.WaitGroup
	)
	for _, u := range urls {
		wg.Add(1)
		go func(feedURL string) {
			defer wg.Done()
			fetched, err := s.fetchFeed(ctx, feedURL)
			if err != nil {
				s.log.Warn("feed fetch failed", zap.String("url", feedURL), zap.Error(err))
				return
			}
			mu.Lock()
			articles = append(articles, fetched...)
			mu.Unlock()
		}(u)
	}
	wg.Wait()
	return articles
}

func (s *Service) fetchFeed(ctx context.Context, feedURL string) ([]model.NewsArticle, error) {
	ctx, cancel := context.WithTimeout(ctx, feedTimeout)
	defer cancel()

	feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	articles := make([]model.NewsArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Title == "" || item.Link == "" {
			continue
		}
		article := model.NewsArticle{
			Headline: strings.TrimSpace(item.Title),
			Summary:  strings.TrimSpace(item.Description),
			URL:      item.Link,
			Source:   feed.Title,
		}
		if item.PublishedParsed != nil {
			article.PublishedAt = *item.PublishedParsed
		}
		if item.Image != nil {
			article.Image = item.Image.URL
		}
		articles = append(articles, article)
	}
	return articles, nil
}

func (s *Service) translateArticles(ctx context.Context, articles []model.NewsArticle) {
	for i := range articles {
		articles[i].HeadlineKo = s.translate(ctx, articles[i].Headline)
		articles[i].SummaryKo = s.translate(ctx, articles[i].Summary)
	}
}

// translate returns the Korean rendering of text, or "" when the text is
// empty, the translator fails, or it echoes the input unchanged.
func (s *Service) translate(ctx context.Context, text string) string {
	if text == "" {
		return ""
	}
	translated, err := s.translator.Translate(ctx, text, "ko")
	if err != nil {
		s.log.Debug("translation failed", zap.Error(err))
		return ""
	}
	if translated == text {
		return ""
	}
	return translated
}
