// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// サービス層とミドルウェアから利用する。
type MetricsCollector interface {
	RecordClassifySuccess(label string)
	RecordClassifyFallback()
	RecordClassifyLatency(duration time.Duration)
	RecordUpsert()
	RecordReply(source string)
	RecordHTTPStatus(method, path string, status int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	classifySuccess  *prometheus.CounterVec
	classifyFallback prometheus.Counter
	classifyLatency  prometheus.Histogram
	recordsUpserted  prometheus.Counter
	replies          *prometheus.CounterVec
	httpStatus       *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		classifySuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kokoro_classify_success_total",
			Help: "感情分類成功のラベル別合計数",
		}, []string{"label"}),
		classifyFallback: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kokoro_classify_fallback_total",
			Help: "Unknownへのフォールバック回数",
		}),
		classifyLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kokoro_classify_latency_seconds",
			Help:    "感情分類のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		recordsUpserted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kokoro_records_upserted_total",
			Help: "保存された感情レコードの合計数",
		}),
		replies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kokoro_replies_total",
			Help: "生成されたリプライのソース別合計数",
		}, []string{"source"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kokoro_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"method", "status_code"}),
	}

	reg.MustRegister(
		c.classifySuccess,
		c.classifyFallback,
		c.classifyLatency,
		c.recordsUpserted,
		c.replies,
		c.httpStatus,
	)

	return c
}

// RecordClassifySuccess は分類成功をラベル別に記録する。
func (c *Collector) RecordClassifySuccess(label string) {
	c.classifySuccess.WithLabelValues(label).Inc()
}

// RecordClassifyFallback はUnknownへのフォールバックを記録する。
func (c *Collector) RecordClassifyFallback() {
	c.classifyFallback.Inc()
}

// RecordClassifyLatency は分類のレイテンシを記録する。
func (c *Collector) RecordClassifyLatency(duration time.Duration) {
	c.classifyLatency.Observe(duration.Seconds())
}

// RecordUpsert は感情レコードの保存を記録する。
func (c *Collector) RecordUpsert() {
	c.recordsUpserted.Inc()
}

// RecordReply はリプライ生成をソース別に記録する。
func (c *Collector) RecordReply(source string) {
	c.replies.WithLabelValues(source).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
// パスはカーディナリティ抑制のためラベルに含めない。
func (c *Collector) RecordHTTPStatus(method, path string, status int) {
	c.httpStatus.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
