// Package server exposes the HTTP API: market overview and quotes, candle
// series, chart analysis, aggregated news, and text summarization.
package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"TradeScope/internal/ai"
	"TradeScope/internal/analysis"
	"TradeScope/internal/collector"
	"TradeScope/internal/model"
	"TradeScope/internal/news"
)

const (
	defaultCandleDays = 180
	maxCandleDays     = 730
	analysisDays      = 365
)

// Server wires the HTTP handlers to the application services.
type Server struct {
	collector       *collector.Collector
	analyzer        *analysis.Analyzer
	news            *news.Service
	summarizer      ai.Summarizer
	overviewSymbols []string
	log             *zap.Logger
}

func New(c *collector.Collector, a *analysis.Analyzer, n *news.Service,
	s ai.Summarizer, overviewSymbols []string, log *zap.Logger) *Server {
	if s == nil {
		s = ai.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		collector:       c,
		analyzer:        a,
		news:            n,
		summarizer:      s,
		overviewSymbols: overviewSymbols,
		log:             log,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), corsMiddleware())

	r.GET("/healthz", s.handleHealth)

	api := r.Group("/api")
	{
		market := api.Group("/market")
		{
			market.GET("/overview", s.handleOverview)
			market.GET("/quote", s.handleQuote)
			market.GET("/candles", s.handleCandles)
		}
		api.GET("/analysis/chart", s.handleChartAnalysis)
		api.GET("/news", s.handleNews)
		api.POST("/summarize", s.handleSummarize)
	}
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()))
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleOverview(c *gin.Context) {
	quotes := s.collector.Overview(c.Request.Context(), s.overviewSymbols)
	c.JSON(http.StatusOK, gin.H{"quotes": quotes})
}

func (s *Server) handleQuote(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}
	quote, err := s.collector.Quote(c.Request.Context(), symbol)
	if err != nil {
		s.log.Error("quote failed", zap.String("symbol", symbol), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "quote unavailable"})
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (s *Server) handleCandles(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}
	days := defaultCandleDays
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxCandleDays {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 730"})
			return
		}
		days = n
	}

	bars, err := s.collector.DailyBars(c.Request.Context(), symbol, days)
	if err != nil {
		s.log.Error("candles failed", zap.String("symbol", symbol), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "candles unavailable"})
		return
	}
	c.JSON(http.StatusOK, model.CandlesFromBars(symbol, "D", bars))
}

func (s *Server) handleChartAnalysis(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}
	bars, err := s.collector.DailyBars(c.Request.Context(), symbol, analysisDays)
	if err != nil {
		s.log.Error("analysis fetch failed", zap.String("symbol", symbol), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "market data unavailable"})
		return
	}
	c.JSON(http.StatusOK, s.analyzer.AnalyzeChart(symbol, bars))
}

func (s *Server) handleNews(c *gin.Context) {
	region := c.DefaultQuery("region", "us")
	articles, err := s.news.Latest(c.Request.Context(), region)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"region": region, "articles": articles})
}

type summarizeRequest struct {
	Text string `json:"text" binding:"required"`
}

func (s *Server) handleSummarize(c *gin.Context) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	summary, err := s.summarizer.Summarize(c.Request.Context(), req.Text)
	if err != nil {
		s.log.Error("summarize failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "summarizer unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
