package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/shouni/go-jaundice/internal/config"
	"github.com/shouni/go-jaundice/internal/metrics"
	"github.com/shouni/go-jaundice/pkg/analyzer"
)

// Server は、記事解析APIのHTTPサーバーです。
type Server struct {
	httpServer *http.Server
	cfg        config.ServerConfig
	analyzer   *analyzer.Analyzer
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// New は、ルーターとミドルウェアを組み立てた新しいServerを生成します。
func New(cfg config.ServerConfig, a *analyzer.Analyzer, m *metrics.Metrics, logger *zap.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		analyzer: a,
		metrics:  m,
		logger:   logger,
	}

	router := chi.NewRouter()
	router.Use(requestIDMiddleware)
	router.Use(s.loggingMiddleware)
	router.Use(s.recoveryMiddleware)
	router.Use(s.rateLimitMiddleware(cfg.RateLimit))
	router.Use(middleware.Timeout(time.Duration(cfg.RequestTimeout) * time.Second))

	router.Get("/", s.handleAnalyze)
	router.Get("/{name}", s.handleAnalyze)
	router.Get("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	s.httpServer = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler はテスト用にルーターを公開します。
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start は、リッスンを開始してブロックします。
func (s *Server) Start() error {
	s.logger.Info("HTTPサーバーを起動します", zap.String("addr", s.cfg.Addr()))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown は、進行中のリクエストの完了を待ってサーバーを停止します。
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTPサーバーを停止します")
	return s.httpServer.Shutdown(ctx)
}
