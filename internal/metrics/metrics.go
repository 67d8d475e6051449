// Package metrics は、リクエストの Prometheus メトリクスを収集する
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// unmatchedRoute は未登録ルートのラベル値
const unmatchedRoute = "unmatched"

// Metrics はサーバーで使う Prometheus コレクタの集合
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	RequestDurationSec *prometheus.HistogramVec
	TestPings          prometheus.Counter

	registry *prometheus.Registry
}

// New はコレクタを作成して registry に登録する
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "yipee_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"route", "method", "status"}),
		RequestDurationSec: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "yipee_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		TestPings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "yipee_test_pings_total",
			Help: "Total number of POST /test calls.",
		}),
		registry: registry,
	}

	registry.MustRegister(
		m.RequestsTotal,
		m.RequestDurationSec,
		m.TestPings,
	)

	return m
}

// Middleware はリクエスト数と処理時間を記録する gin ミドルウェアを返す
// ラベルには登録済みルートのパスを使い、未登録パスは一つにまとめる
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startedAt := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		status := strconv.Itoa(c.Writer.Status())
		m.RequestsTotal.WithLabelValues(route, c.Request.Method, status).Inc()
		m.RequestDurationSec.WithLabelValues(route, c.Request.Method, status).Observe(time.Since(startedAt).Seconds())
	}
}

// Handler は /metrics 用のハンドラを返す
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
