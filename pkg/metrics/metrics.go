// Package metrics 提供基于Prometheus的指标收集
//
// 指标分两类:
//   - HTTP指标:请求总数、耗时分布、并发请求数(由HTTP中间件记录)
//   - 业务指标:图书写操作次数、限流拒绝次数
//
// 使用方式:
//
//	metrics.InitMetrics()                  // 进程启动时调用一次
//	metrics.RecordBookMutation("create")   // 业务代码中记录
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 图书写操作类型(books_mutations_total的operation标签)
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

var (
	initOnce sync.Once

	// HTTPRequestsTotal HTTP请求总数
	// 标签:method、path(路由模板,如/api/books/:book)、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时(秒)
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// BookMutationsTotal 图书写操作次数(只统计真正改动了数据的操作)
	BookMutationsTotal *prometheus.CounterVec

	// RateLimitRejectionsTotal 被限流拒绝的请求数
	RateLimitRejectionsTotal prometheus.Counter
)

// InitMetrics 注册所有指标到默认Registry,重复调用无副作用
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时(秒)",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		BookMutationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "books_mutations_total",
				Help: "图书写操作次数",
			},
			[]string{"operation"},
		)

		RateLimitRejectionsTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "rate_limit_rejections_total",
				Help: "被限流拒绝的请求数",
			},
		)
	})
}

// ObserveHTTPRequest 记录一次HTTP请求
// path为空(未匹配路由)时记为"unmatched",避免标签基数爆炸
func ObserveHTTPRequest(method, path string, status int, elapsed time.Duration) {
	InitMetrics()
	if path == "" {
		path = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// TrackInProgress 并发请求数+1,返回的函数用于-1
func TrackInProgress() func() {
	InitMetrics()
	HTTPRequestsInProgress.Inc()
	return HTTPRequestsInProgress.Dec
}

// RecordBookMutation 记录一次图书写操作
func RecordBookMutation(operation string) {
	InitMetrics()
	BookMutationsTotal.WithLabelValues(operation).Inc()
}

// RecordRateLimitRejection 记录一次限流拒绝
func RecordRateLimitRejection() {
	InitMetrics()
	RateLimitRejectionsTotal.Inc()
}
