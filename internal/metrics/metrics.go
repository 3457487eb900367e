package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics は、解析パイプラインとHTTPサーバーの計測値を保持します。
type Metrics struct {
	ArticlesProcessed *prometheus.CounterVec
	BatchDuration     prometheus.Histogram
	BatchSize         prometheus.Histogram
	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
}

// New は、指定されたRegistererへメトリクスを登録して返します。
// テストでは prometheus.NewRegistry() を渡すことで二重登録を避けられます。
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ArticlesProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "jaundice_articles_processed_total",
			Help: "処理された記事の総数（終端ステータス別）",
		}, []string{"status"}),

		BatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "jaundice_batch_duration_seconds",
			Help:    "バッチ全体の処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}),

		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "jaundice_batch_size_urls",
			Help:    "一回のバッチで要求されたURL数",
			Buckets: []float64{1, 2, 3, 5, 8, 10},
		}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "jaundice_http_requests_total",
			Help: "HTTPリクエストの総数（メソッド・パス・ステータスコード別）",
		}, []string{"method", "path", "code"}),

		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jaundice_http_request_duration_seconds",
			Help:    "HTTPリクエストの処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}

// ObserveResults は、一回のバッチの結果をメトリクスへ反映します。
func (m *Metrics) ObserveResults(statuses []string, durationSeconds float64) {
	for _, status := range statuses {
		m.ArticlesProcessed.WithLabelValues(status).Inc()
	}
	m.BatchDuration.Observe(durationSeconds)
	m.BatchSize.Observe(float64(len(statuses)))
}
