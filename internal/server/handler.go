package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// MaxURLsPerRequest は、一回のリクエストで受け付けるURL数の上限です。
const MaxURLsPerRequest = 10

// errTooManyURLs は、上限超過時のエラーメッセージです。
const errTooManyURLs = "too many urls in request, should be 10 or less"

type errorResponse struct {
	Error string `json:"error"`
}

// handleAnalyze は、`urls` クエリパラメータのカンマ区切りURL群を解析して
// 結果のJSON配列を返します。
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	urls := splitURLsParam(r.URL.Query().Get("urls"))

	if len(urls) > MaxURLsPerRequest {
		writeJSONError(w, http.StatusBadRequest, errTooManyURLs)
		return
	}

	start := time.Now()
	results := s.analyzer.ProcessBatch(r.Context(), urls)

	if s.metrics != nil {
		statuses := make([]string, 0, len(results))
		for _, res := range results {
			statuses = append(statuses, string(res.Status))
		}
		s.metrics.ObserveResults(statuses, time.Since(start).Seconds())
	}

	s.logger.Info("バッチ解析完了",
		zap.String("request_id", requestIDFrom(r.Context())),
		zap.Int("url_count", len(urls)),
		zap.Duration("elapsed", time.Since(start)),
	)

	writeJSON(w, http.StatusOK, results)
}

// handleHealth は、死活監視用のエンドポイントです。
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// splitURLsParam は、カンマ区切りのパラメータをトリムしつつ分割します。
// 空要素は捨てられます。
func splitURLsParam(param string) []string {
	if strings.TrimSpace(param) == "" {
		return nil
	}

	parts := strings.Split(param, ",")
	urls := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		urls = append(urls, trimmed)
	}
	return urls
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, errorResponse{Error: message})
}
